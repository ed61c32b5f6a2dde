// Implements a raster backend measuring the area
// really painted by the rectangles of an inspected document,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"image/color"
	"math"

	"github.com/benoitkugler/svgaudit/svginspect"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// DefaultMaxSide is the default size, in pixels, of the longest side of the mask.
const DefaultMaxSide = 256

// Renderer paints rectangles, in canvas coordinates, on an alpha mask.
type Renderer struct {
	filler *rasterx.Filler
	mask   *image.Alpha
	canvas svginspect.Canvas
	scale  float64 // pixels per canvas unit
}

// NewRenderer returns a renderer whose longest side is `maxSide` pixels
// (DefaultMaxSide if `maxSide` is not positive).
// It returns nil if the canvas has a null or invalid dimension.
func NewRenderer(canvas svginspect.Canvas, maxSide int) *Renderer {
	if !(canvas.Width > 0 && canvas.Height > 0) || math.IsInf(canvas.Area(), 0) {
		return nil
	}
	if maxSide <= 0 {
		maxSide = DefaultMaxSide
	}
	scale := float64(maxSide) / math.Max(canvas.Width, canvas.Height)
	w := max(int(math.Ceil(canvas.Width*scale)), 1)
	h := max(int(math.Ceil(canvas.Height*scale)), 1)
	mask := image.NewAlpha(image.Rect(0, 0, w, h))

	scanner := rasterx.NewScannerGV(w, h, mask, mask.Bounds())
	filler := rasterx.NewFiller(w, h, scanner)
	filler.SetColor(color.Opaque)
	return &Renderer{filler: filler, mask: mask, canvas: canvas, scale: scale}
}

// Mask returns the painted pixels.
func (rd *Renderer) Mask() *image.Alpha { return rd.mask }

func (rd *Renderer) toFixed(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(x * rd.scale * 64),
		Y: fixed.Int26_6(y * rd.scale * 64),
	}
}

// FillRect paints the part of `r` inside the canvas.
// Rectangles with a negative size cover nothing, as for Rectangle.Area.
func (rd *Renderer) FillRect(r svginspect.Rectangle) {
	minX, maxX := math.Max(r.X, 0), math.Min(r.X+r.Width, rd.canvas.Width)
	minY, maxY := math.Max(r.Y, 0), math.Min(r.Y+r.Height, rd.canvas.Height)
	if !(minX < maxX && minY < maxY) { // empty or outside: nothing to paint
		return
	}

	rd.filler.Clear()
	rd.filler.Start(rd.toFixed(minX, minY))
	rd.filler.Line(rd.toFixed(maxX, minY))
	rd.filler.Line(rd.toFixed(maxX, maxY))
	rd.filler.Line(rd.toFixed(minX, maxY))
	rd.filler.Stop(true)
	rd.filler.Draw()
}

// Ratio returns the painted fraction of the canvas, in [0, 1].
// It is 0 when the scaled canvas rounds to a null area.
func (rd *Renderer) Ratio() float64 {
	var sum float64
	for _, a := range rd.mask.Pix {
		sum += float64(a)
	}
	// the mask may be slightly larger than the scaled canvas
	area := rd.canvas.Width * rd.scale * rd.canvas.Height * rd.scale
	if !(area > 0) {
		return 0
	}
	ratio := sum / 0xff / area
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

// PaintedRatio returns the fraction of the canvas covered by
// at least one rectangle of `res`.
// Contrary to the coverage ratio, overlapping areas and areas outside
// of the canvas are only counted once, or not at all.
// It returns 0 for a canvas with a null dimension.
func PaintedRatio(res *svginspect.Result, maxSide int) float64 {
	rd := NewRenderer(res.Canvas, maxSide)
	if rd == nil {
		return 0
	}
	for _, item := range res.Items {
		rd.FillRect(item)
	}
	return rd.Ratio()
}
