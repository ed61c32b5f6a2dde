package svgraster

import (
	"bytes"
	"context"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/svgaudit/svginspect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(canvas svginspect.Canvas, items ...svginspect.Rectangle) *svginspect.Result {
	return &svginspect.Result{Canvas: canvas, Items: items}
}

func TestPaintedRatio(t *testing.T) {
	canvas := svginspect.Canvas{Width: 100, Height: 100}
	for _, test := range []struct {
		name string
		res  *svginspect.Result
		want float64
	}{
		{"nothing", result(canvas), 0},
		{"full", result(canvas, svginspect.Rectangle{Width: 100, Height: 100}), 1},
		{"quarter", result(canvas, svginspect.Rectangle{X: 50, Y: 50, Width: 50, Height: 50}), 0.25},
		{"overlap is counted once", result(canvas,
			svginspect.Rectangle{X: 10, Y: 10, Width: 20, Height: 20},
			svginspect.Rectangle{X: 10, Y: 10, Width: 20, Height: 20},
			svginspect.Rectangle{X: 20, Y: 10, Width: 20, Height: 20},
		), 0.06},
		{"clipped to the canvas", result(canvas, svginspect.Rectangle{X: 90, Y: 90, Width: 20, Height: 20}), 0.01},
		{"outside", result(canvas, svginspect.Rectangle{X: 200, Y: 0, Width: 20, Height: 20}), 0},
		{"negative size", result(canvas, svginspect.Rectangle{X: 50, Y: 50, Width: -50, Height: -50}), 0},
		{"negative width", result(canvas, svginspect.Rectangle{X: 50, Y: 50, Width: -50, Height: 50}), 0},
		{"larger than the canvas", result(canvas, svginspect.Rectangle{X: -10, Y: -10, Width: 500, Height: 500}), 1},
		{"flat canvas", result(svginspect.Canvas{Width: 100}, svginspect.Rectangle{Width: 10, Height: 10}), 0},
		{"wide canvas", result(svginspect.Canvas{Width: 1000, Height: 10},
			svginspect.Rectangle{Width: 500, Height: 10}), 0.5},
	} {
		t.Run(test.name, func(t *testing.T) {
			assert.InDelta(t, test.want, PaintedRatio(test.res, 0), 0.005)
		})
	}
}

func TestPaintedRatioOfDocument(t *testing.T) {
	res, err := svginspect.ReadFile(context.Background(), filepath.Join("..", "svginspect", "testdata", "basic.svg"))
	require.NoError(t, err)

	// no overlap: both ratios agree
	assert.InDelta(t, res.CoverageRatio, PaintedRatio(res, 512), 0.005)
}

func TestMask(t *testing.T) {
	rd := NewRenderer(svginspect.Canvas{Width: 50, Height: 200}, 100)
	require.NotNil(t, rd)
	assert.Equal(t, 25, rd.Mask().Bounds().Dx())
	assert.Equal(t, 100, rd.Mask().Bounds().Dy())

	rd.FillRect(svginspect.Rectangle{Width: 50, Height: 100})
	assert.InDelta(t, 0.5, rd.Ratio(), 0.005)
	assert.Equal(t, uint8(0xff), rd.Mask().AlphaAt(10, 10).A)
	assert.Equal(t, uint8(0), rd.Mask().AlphaAt(10, 90).A)

	var b bytes.Buffer
	require.NoError(t, png.Encode(&b, rd.Mask()))
	require.NoError(t, os.WriteFile(filepath.Join(t.TempDir(), "mask.png"), b.Bytes(), os.ModePerm))

	assert.Nil(t, NewRenderer(svginspect.Canvas{Width: 0, Height: 10}, 100))
}

func TestExtremeAspectRatio(t *testing.T) {
	canvas := svginspect.Canvas{Width: 1e308, Height: 1e-308}
	rd := NewRenderer(canvas, 0)
	require.NotNil(t, rd)
	// the flat side still has one pixel
	assert.Equal(t, DefaultMaxSide, rd.Mask().Bounds().Dx())
	assert.Equal(t, 1, rd.Mask().Bounds().Dy())

	ratio := PaintedRatio(result(canvas, svginspect.Rectangle{Width: 1e308, Height: 1e-308}), 0)
	assert.False(t, math.IsNaN(ratio))
	assert.Equal(t, 0., ratio)
}
