package svgtree

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<!-- a comment -->
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="200" height="100">
	<title>Sample &amp; co</title>
	<rect x="1" y="2" width="3" height="4" fill="#f00"/>
	<g id="layer">
		<rect x="5" y="6" width="7" height="8"></rect>
		<circle cx="1" cy="1" r="1"/>
	</g>
	<rect x="9" y="10" width="11" height="12" fill="a&lt;b"/>
	<use xlink:href="#layer"/>
</svg>`

func builders() map[string]Builder {
	return map[string]Builder{"xml": XML{}, "lex": Lex{}}
}

func TestBuildSample(t *testing.T) {
	for name, b := range builders() {
		t.Run(name, func(t *testing.T) {
			root, err := b.Build(strings.NewReader(sample))
			require.NoError(t, err)

			assert.Equal(t, "svg", root.Tag)
			w, ok := root.Attr("width")
			assert.True(t, ok)
			assert.Equal(t, "200", w)

			rects := root.ChildrenOf("rect")
			require.Len(t, rects, 2)
			assert.Equal(t, "1", rects[0].Attrs["x"])
			assert.Equal(t, "9", rects[1].Attrs["x"])
			assert.Equal(t, "a<b", rects[1].Attrs["fill"])

			groups := root.ChildrenOf("g")
			require.Len(t, groups, 1)
			assert.Len(t, groups[0].ChildrenOf("rect"), 1)
			assert.Len(t, groups[0].ChildrenOf("circle"), 1)

			uses := root.ChildrenOf("use")
			require.Len(t, uses, 1)
			assert.Equal(t, "#layer", uses[0].Attrs["href"])

			assert.Len(t, root.ChildrenOf("title"), 1)
			assert.Nil(t, root.ChildrenOf("path"))
		})
	}
}

func TestBuildNoAttributes(t *testing.T) {
	for name, b := range builders() {
		t.Run(name, func(t *testing.T) {
			root, err := b.Build(strings.NewReader("<svg><g/></svg>"))
			require.NoError(t, err)
			assert.Nil(t, root.Attrs)
			g := root.ChildrenOf("g")
			require.Len(t, g, 1)
			assert.Nil(t, g[0].Attrs)
			assert.Nil(t, g[0].Children)
		})
	}
}

func TestBuildMalformed(t *testing.T) {
	for _, input := range []string{
		"",
		"   ",
		"<!-- only a comment -->",
		"<svg><rect></svg>",
		"<svg><g>",
		"<svg/><svg/>",
	} {
		for name, b := range builders() {
			_, err := b.Build(strings.NewReader(input))
			assert.Error(t, err, "builder %s, input %q", name, input)
		}
	}
}

func TestXMLCharset(t *testing.T) {
	// 0xE9 is 'é' in latin-1, invalid as UTF-8
	input := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><svg><text id=\"caf\xe9\"/></svg>"
	root, err := XML{}.Build(strings.NewReader(input))
	require.NoError(t, err)
	text := root.ChildrenOf("text")
	require.Len(t, text, 1)
	assert.Equal(t, "café", text[0].Attrs["id"])
}

func TestByName(t *testing.T) {
	b, ok := ByName("")
	assert.True(t, ok)
	assert.IsType(t, XML{}, b)

	b, ok = ByName("lex")
	assert.True(t, ok)
	assert.IsType(t, Lex{}, b)

	_, ok = ByName("html")
	assert.False(t, ok)
}

func TestNodeHelpers(t *testing.T) {
	root := NewNode("svg").SetAttr("width", "10")
	root.AddChild(NewNode("rect")).AddChild(NewNode("rect")).AddChild(NewNode("g"))
	assert.Len(t, root.ChildrenOf("rect"), 2)
	assert.Len(t, root.ChildrenOf("g"), 1)
	assert.Equal(t, "10", root.Attrs["width"])

	var called bool
	f := BuilderFunc(func(r io.Reader) (*Node, error) {
		called = true
		return root, nil
	})
	got, err := f.Build(strings.NewReader(""))
	require.NoError(t, err)
	assert.True(t, called)
	assert.Same(t, root, got)
}
