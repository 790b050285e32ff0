package xml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

const xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"

// Attr is a namespace-resolved attribute.
type Attr struct {
	Space, Local, Value string
}

// Node is a namespace-resolved element.
type Node struct {
	Space, Local string
	Attrs        []Attr
	Text         string
	Children     []*Node
}

// Parse reads one XML document into a tree.
func Parse(r io.Reader) (*Node, error) {
	d := xml.NewDecoder(r)

	var (
		root   *Node
		stack  []*Node
		scopes []map[string]string
		text   []strings.Builder
	)

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			scope := map[string]string{}
			for _, a := range t.Attr {
				switch {
				case a.Name.Space == "xmlns":
					scope[a.Name.Local] = a.Value
				case a.Name.Space == "" && a.Name.Local == "xmlns":
					scope[""] = a.Value
				}
			}
			scopes = append(scopes, scope)

			n := &Node{Space: t.Name.Space, Local: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Space == "" && a.Name.Local == "xmlns" {
					continue
				}
				value := a.Value
				if a.Name.Space == xsiNamespace && a.Name.Local == "type" {
					value = resolveQName(scopes, value)
				}
				n.Attrs = append(n.Attrs, Attr{Space: a.Name.Space, Local: a.Name.Local, Value: value})
			}
			slices.SortFunc(n.Attrs, func(a, b Attr) int {
				if c := strings.Compare(a.Space, b.Space); c != 0 {
					return c
				}
				return strings.Compare(a.Local, b.Local)
			})

			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("xml: multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
			text = append(text, strings.Builder{})

		case xml.EndElement:
			n := stack[len(stack)-1]
			if len(n.Children) == 0 {
				n.Text = text[len(text)-1].String()
			} else {
				n.Text = strings.TrimSpace(text[len(text)-1].String())
			}
			stack = stack[:len(stack)-1]
			scopes = scopes[:len(scopes)-1]
			text = text[:len(text)-1]

		case xml.CharData:
			if len(text) != 0 {
				text[len(text)-1].Write(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("xml: no root element")
	}
	return root, nil
}

// resolveQName rewrites prefix:name as {namespace}name.
func resolveQName(scopes []map[string]string, qname string) string {
	prefix, local, ok := strings.Cut(qname, ":")
	if !ok {
		prefix, local = "", qname
	}
	for i := len(scopes) - 1; i >= 0; i-- {
		if ns, ok := scopes[i][prefix]; ok {
			return "{" + ns + "}" + local
		}
	}
	return qname
}

// Map converts the tree under n into generic values for path queries.
// Elements with neither attributes nor children become their text; other
// elements become maps keyed by child local name, "@"+attribute local name
// and "#text". Repeated children become lists.
func (n *Node) Map() interface{} {
	if len(n.Attrs) == 0 && len(n.Children) == 0 {
		return n.Text
	}

	m := make(map[string]interface{}, len(n.Attrs)+len(n.Children)+1)
	for _, a := range n.Attrs {
		m["@"+a.Local] = a.Value
	}
	if len(n.Text) != 0 {
		m["#text"] = n.Text
	}
	for _, c := range n.Children {
		v := c.Map()
		switch prev := m[c.Local].(type) {
		case nil:
			m[c.Local] = v
		case []interface{}:
			m[c.Local] = append(prev, v)
		default:
			m[c.Local] = []interface{}{prev, v}
		}
	}
	return m
}

// Document wraps n in a map keyed by its local name.
func (n *Node) Document() map[string]interface{} {
	return map[string]interface{}{n.Local: n.Map()}
}
