package svginspect

import (
	"math"
	"strconv"
	"strings"
)

// parseLeadingFloat reads the longest number at the start of `s`
// (after leading white space), ignoring any trailing garbage:
// "10px" is 10, "1.5.2" is 1.5, "1e2x" is 100.
// It returns false if `s` does not start with a number,
// or if the number overflows a float64.
func parseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for ; i < len(s) && isDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	end := i
	// the exponent is only used if it has digits
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for ; k < len(s) && isDigit(s[k]); k++ {
		}
		if k > j {
			end = k
		}
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil { // including out of range values like 1e400
		return 0, false
	}
	return f, true
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// finite maps NaN to 0 and the infinities to the largest floats,
// so that results stay serializable.
func finite(f float64) float64 {
	switch {
	case math.IsNaN(f):
		return 0
	case math.IsInf(f, 1):
		return math.MaxFloat64
	case math.IsInf(f, -1):
		return -math.MaxFloat64
	default:
		return f
	}
}

// parseDimension keeps only digits and dots from `s`
// before reading it, so that "100px" and "50%" are 100 and 50.
// It returns NaN when nothing usable is left.
func parseDimension(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if r == '.' || ('0' <= r && r <= '9') {
			return r
		}
		return -1
	}, s)
	f, ok := parseLeadingFloat(cleaned)
	if !ok {
		return math.NaN()
	}
	return f
}

// parseCoordinate returns 0 for an absent or invalid attribute.
func parseCoordinate(attrs map[string]string, name string) float64 {
	v, ok := attrs[name]
	if !ok {
		return 0
	}
	f, ok := parseLeadingFloat(v)
	if !ok {
		return 0
	}
	return f
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
}
