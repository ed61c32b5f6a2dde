package svginspect

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var errInvalidColor = errors.New("invalid color")

// ParseColor parses a fill value: hexadecimal (#rgb or #rrggbb),
// rgb(r, g, b) with integer or percentage components,
// one of the SVG 1.1 color names, or "none" (transparent).
// References to paint servers (url(...)) are not resolved and
// return an error.
func ParseColor(colorStr string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(colorStr))
	switch {
	case v == "none", v == "transparent":
		return color.NRGBA{}, nil
	case strings.HasPrefix(v, "#"):
		r, g, b, err := parseColorHex(v[1:])
		if err != nil {
			return color.NRGBA{}, err
		}
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		vals := strings.Split(v[len("rgb("):len(v)-1], ",")
		if len(vals) != 3 {
			return color.NRGBA{}, errInvalidColor
		}
		var cvals [3]uint8
		for i := range cvals {
			c, err := parseColorValue(strings.TrimSpace(vals[i]))
			if err != nil {
				return color.NRGBA{}, err
			}
			cvals[i] = c
		}
		return color.NRGBA{R: cvals[0], G: cvals[1], B: cvals[2], A: 0xff}, nil
	}
	if cn, ok := colornames.Map[v]; ok {
		return color.NRGBA{R: cn.R, G: cn.G, B: cn.B, A: cn.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w: %q", errInvalidColor, colorStr)
}

// parseColorHex reads rrggbb or rgb, the SVG specs
// saying to duplicate characters in the 3 digits form.
func parseColorHex(s string) (r, g, b uint8, err error) {
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return 0, 0, 0, fmt.Errorf("%w: #%s", errInvalidColor, s)
	}
	for _, v := range []struct {
		c *uint8
		s string
	}{
		{&r, s[0:2]},
		{&g, s[2:4]},
		{&b, s[4:6]},
	} {
		t, err := strconv.ParseUint(v.s, 16, 8)
		if err != nil {
			return 0, 0, 0, err
		}
		*v.c = uint8(t)
	}
	return r, g, b, nil
}

// parseColorValue reads a component, clamped to [0, 255]
func parseColorValue(v string) (uint8, error) {
	if strings.HasSuffix(v, "%") {
		n, err := strconv.ParseFloat(strings.TrimSpace(v[:len(v)-1]), 64)
		if err != nil {
			return 0, err
		}
		return clampComponent(n * 0xff / 100), nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	return clampComponent(float64(n)), nil
}

func clampComponent(f float64) uint8 {
	if f < 0 {
		return 0
	}
	if f > 0xff {
		return 0xff
	}
	return uint8(f + 0.5)
}

// Swatch summarizes the rectangles sharing the same fill value.
type Swatch struct {
	Fill  string  `json:"fill" yaml:"fill"`
	Count int     `json:"count" yaml:"count"`
	Area  float64 `json:"area" yaml:"area"`
	// Hex is the parsed color as #rrggbbaa, empty if the fill is not a color.
	Hex string `json:"hex,omitempty" yaml:"hex,omitempty"`

	Color color.NRGBA `json:"-" yaml:"-"`
	Valid bool        `json:"-" yaml:"-"`
}

// Palette groups the rectangles by fill value,
// in the order of first appearance.
func Palette(items []Rectangle) []Swatch {
	var out []Swatch
	index := map[string]int{}
	for _, item := range items {
		i, ok := index[item.Fill]
		if !ok {
			i = len(out)
			index[item.Fill] = i
			sw := Swatch{Fill: item.Fill}
			if c, err := ParseColor(item.Fill); err == nil {
				sw.Color, sw.Valid = c, true
				sw.Hex = fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
			}
			out = append(out, sw)
		}
		out[i].Count++
		out[i].Area = finite(out[i].Area + item.Area())
	}
	return out
}
