package svginspect

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	for _, test := range []struct {
		in   string
		want color.NRGBA
	}{
		{"#000000", color.NRGBA{0, 0, 0, 0xff}},
		{"#f00", color.NRGBA{0xff, 0, 0, 0xff}},
		{"#336699", color.NRGBA{0x33, 0x66, 0x99, 0xff}},
		{" #ABCDEF ", color.NRGBA{0xab, 0xcd, 0xef, 0xff}},
		{"rgb(255, 0, 10)", color.NRGBA{255, 0, 10, 0xff}},
		{"rgb(100%,50%,0%)", color.NRGBA{255, 128, 0, 0xff}},
		{"rgb(300,-4,0)", color.NRGBA{255, 0, 0, 0xff}},
		{"red", color.NRGBA{0xff, 0, 0, 0xff}},
		{"SteelBlue", color.NRGBA{0x46, 0x82, 0xb4, 0xff}},
		{"none", color.NRGBA{}},
	} {
		got, err := ParseColor(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.want, got, test.in)
	}

	for _, in := range []string{"", "#12", "#ggg", "rgb(1,2)", "url(#grad)", "notacolor"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

func TestPalette(t *testing.T) {
	items := []Rectangle{
		{Width: 10, Height: 10, Fill: "#f00"},
		{Width: 2, Height: 3, Fill: "url(#grad)"},
		{Width: 1, Height: 1, Fill: "#f00"},
		{Width: 4, Height: 4, Fill: DefaultFill},
	}
	got := Palette(items)
	require.Len(t, got, 3)

	assert.Equal(t, "#f00", got[0].Fill)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, 101., got[0].Area)
	assert.True(t, got[0].Valid)
	assert.Equal(t, "#ff0000ff", got[0].Hex)

	assert.Equal(t, "url(#grad)", got[1].Fill)
	assert.False(t, got[1].Valid)
	assert.Empty(t, got[1].Hex)

	assert.Equal(t, DefaultFill, got[2].Fill)
	assert.Equal(t, color.NRGBA{0, 0, 0, 0xff}, got[2].Color)

	assert.Empty(t, Palette(nil))
}
