package svginspect

import (
	"math"
	"strconv"
)

// Canvas is the declared drawing area of a document.
type Canvas struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Area returns Width * Height.
func (c Canvas) Area() float64 { return c.Width * c.Height }

// DefaultCanvas is used when neither the size attributes
// nor the viewBox give a dimension.
var DefaultCanvas = Canvas{Width: 100, Height: 100}

// ResolveCanvas computes the canvas size from the attributes
// of the root element, using in priority:
//   - the width and height attributes, units being ignored
//   - the width and height of the viewBox, for a missing or null dimension
//   - DefaultCanvas, if no dimension at all could be found
//
// Note that when only one dimension is missing, it stays at 0.
func ResolveCanvas(attrs map[string]string) Canvas {
	width, height := math.NaN(), math.NaN()
	if v, ok := attrs["width"]; ok {
		width = parseDimension(v)
	}
	if v, ok := attrs["height"]; ok {
		height = parseDimension(v)
	}

	if unresolved(width) || unresolved(height) {
		if vb, ok := parseViewBox(attrs["viewBox"]); ok {
			if unresolved(width) {
				width = vb[2]
			}
			if unresolved(height) {
				height = vb[3]
			}
		}
	}

	if unresolved(width) && unresolved(height) {
		return DefaultCanvas
	}
	if math.IsNaN(width) {
		width = 0
	}
	if math.IsNaN(height) {
		height = 0
	}
	return Canvas{Width: width, Height: height}
}

func unresolved(f float64) bool { return f == 0 || math.IsNaN(f) }

// parseViewBox returns minX, minY, width, height.
// Only a list of exactly four numbers is accepted.
func parseViewBox(v string) (vb [4]float64, ok bool) {
	fields := splitOnCommaOrSpace(v)
	if len(fields) != 4 {
		return vb, false
	}
	for i, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return vb, false
		}
		vb[i] = f
	}
	return vb, true
}
