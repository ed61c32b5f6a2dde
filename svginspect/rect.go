package svginspect

import (
	"math"

	"github.com/benoitkugler/svgaudit/svgtree"
)

// IssueKind identifies a structural problem.
type IssueKind string

const (
	// Empty : the document has no drawing element at all
	Empty IssueKind = "EMPTY"
	// OutOfBounds : a rectangle is not contained in the canvas
	OutOfBounds IssueKind = "OUT_OF_BOUNDS"
)

// DefaultFill is used for rectangles without fill attribute.
const DefaultFill = "#000000"

// Rectangle is a <rect> element found in the document.
// Coordinates are the raw attribute values: transforms are not applied.
type Rectangle struct {
	X      float64   `json:"x" yaml:"x"`
	Y      float64   `json:"y" yaml:"y"`
	Width  float64   `json:"width" yaml:"width"`
	Height float64   `json:"height" yaml:"height"`
	Fill   string    `json:"fill" yaml:"fill"`
	Issue  IssueKind `json:"issue,omitempty" yaml:"issue,omitempty"`
}

// Area returns Width * Height, a negative size counting as 0.
func (r Rectangle) Area() float64 {
	return math.Max(r.Width, 0) * math.Max(r.Height, 0)
}

// Inside returns true if the rectangle is contained in the canvas.
func (r Rectangle) Inside(c Canvas) bool {
	return !(r.X < 0 || r.Y < 0 || r.X+r.Width > c.Width || r.Y+r.Height > c.Height)
}

// extractRect never fails: invalid numbers are read as 0.
func extractRect(n *svgtree.Node, canvas Canvas) Rectangle {
	r := Rectangle{
		X:      parseCoordinate(n.Attrs, "x"),
		Y:      parseCoordinate(n.Attrs, "y"),
		Width:  parseCoordinate(n.Attrs, "width"),
		Height: parseCoordinate(n.Attrs, "height"),
		Fill:   DefaultFill,
	}
	if fill, ok := n.Attr("fill"); ok {
		r.Fill = fill
	}
	if !r.Inside(canvas) {
		r.Issue = OutOfBounds
	}
	return r
}
