package svgtree

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
	"golang.org/x/net/html"
)

// Lex builds the tree with the tdewolff XML lexer.
// It is more lenient than XML regarding the prolog and entities,
// but still rejects badly nested elements.
// The input must be UTF-8.
type Lex struct{}

func (Lex) Build(stream io.Reader) (*Node, error) {
	l := xml.NewLexer(parse.NewInput(stream))
	var (
		open    stack
		root    *Node
		current *Node // element whose start tag is being read
		inPI    bool  // attributes of a processing instruction are ignored
	)
	for {
		tt, _ := l.Next()
		switch tt {
		case xml.ErrorToken:
			if err := l.Err(); err != io.EOF {
				return nil, err
			}
			if len(open) != 0 || current != nil {
				return nil, fmt.Errorf("invalid svg xml document: unclosed element <%s>", open.top().Tag)
			}
			if root == nil {
				return nil, errNoElement
			}
			return root, nil
		case xml.StartTagPIToken:
			inPI = true
		case xml.StartTagClosePIToken:
			inPI = false
		case xml.StartTagToken:
			current = NewNode(localName(l.Text()))
			if len(open) == 0 {
				if root != nil {
					return nil, fmt.Errorf("invalid svg xml document: multiple root elements")
				}
				root = current
			}
			open.push(current)
		case xml.AttributeToken:
			if inPI || current == nil {
				continue
			}
			current.SetAttr(localName(l.Text()), attrValue(l.AttrVal()))
		case xml.StartTagCloseToken:
			current = nil
		case xml.StartTagCloseVoidToken:
			current = nil
			open.pop()
		case xml.EndTagToken:
			name := localName(l.Text())
			top := open.top()
			if top == nil || top.Tag != name {
				return nil, fmt.Errorf("invalid svg xml document: unexpected end element </%s>", name)
			}
			open.pop()
		}
	}
}

// localName drops the namespace prefix, if any.
func localName(name []byte) string {
	if i := bytes.LastIndexByte(name, ':'); i != -1 {
		name = name[i+1:]
	}
	return string(name)
}

// attrValue removes the quotes and resolves the entities.
func attrValue(raw []byte) string {
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') && raw[len(raw)-1] == raw[0] {
		raw = raw[1 : len(raw)-1]
	}
	return html.UnescapeString(string(raw))
}
