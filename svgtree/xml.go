package svgtree

import (
	"encoding/xml"
	"errors"
	"io"

	"golang.org/x/net/html/charset"
)

// XML builds the tree with the standard XML decoder.
// Non UTF-8 documents are supported, as long as their
// encoding is declared in the prolog.
type XML struct{}

func (XML) Build(stream io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	var (
		open stack
		root *Node
	)
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			n := NewNode(se.Name.Local)
			for _, attr := range se.Attr {
				n.SetAttr(attr.Name.Local, attr.Value)
			}
			if len(open) == 0 {
				if root != nil {
					return nil, errors.New("invalid svg xml document: multiple root elements")
				}
				root = n
			}
			open.push(n)
		case xml.EndElement:
			// the decoder already checks the nesting
			open.pop()
		}
	}
	if root == nil {
		return nil, errNoElement
	}
	return root, nil
}
