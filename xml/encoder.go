package xml

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

const (
	leftAngleBracket  = '<'
	rightAngleBracket = '>'
	forwardSlash      = '/'
	colon             = ':'
	equals            = '='
	quote             = '"'
)

const (
	// XMLNSNamespace is the namespace bound to the xmlns prefix.
	XMLNSNamespace = "http://www.w3.org/2000/xmlns/"

	// XMLNamespace is the namespace bound to the xml prefix.
	XMLNamespace = "http://www.w3.org/XML/1998/namespace"
)

// ErrNoOpenElement is returned when content, attributes or an end element are
// written while no element is open.
var ErrNoOpenElement = errors.New("xml: no open element")

type writer interface {
	io.Writer
	io.ByteWriter
	io.StringWriter
}

// Encoder is a streaming XML writer.
type Encoder struct {
	w       writer
	buf     *bytes.Buffer
	flusher *bufio.Writer
	scratch []byte

	stack   []scope
	tagOpen bool
	err     error
}

// NewEncoder returns an encoder writing to w. Writes to w are buffered unless
// w is a *bytes.Buffer; call Flush once writing is complete.
func NewEncoder(w io.Writer) *Encoder {
	e := &Encoder{scratch: make([]byte, 0, 64)}

	switch v := w.(type) {
	case *bytes.Buffer:
		e.w, e.buf = v, v
	case *bufio.Writer:
		e.w, e.flusher = v, v
	default:
		bw := bufio.NewWriter(w)
		e.w, e.flusher = bw, bw
	}

	return e
}

// NewBufferEncoder returns an encoder writing to an internal buffer.
func NewBufferEncoder() *Encoder {
	return NewEncoder(bytes.NewBuffer(nil))
}

// String returns the output written so far by a buffer encoder.
func (e *Encoder) String() string {
	if e.buf == nil {
		return ""
	}
	return e.buf.String()
}

// Bytes returns the output written so far by a buffer encoder.
func (e *Encoder) Bytes() []byte {
	if e.buf == nil {
		return nil
	}
	return e.buf.Bytes()
}

// Depth returns the number of open elements.
func (e *Encoder) Depth() int {
	return len(e.stack)
}

// Err returns the first error encountered by the encoder.
func (e *Encoder) Err() error {
	return e.err
}

// Flush writes any buffered output to the underlying writer.
func (e *Encoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	if e.flusher != nil {
		e.setErr(e.flusher.Flush())
	}
	return e.err
}

func (e *Encoder) setErr(err error) {
	if err != nil && e.err == nil {
		e.err = err
	}
}

func (e *Encoder) writeString(s string) {
	if e.err != nil {
		return
	}
	_, err := e.w.WriteString(s)
	e.setErr(err)
}

func (e *Encoder) writeByte(b byte) {
	if e.err != nil {
		return
	}
	e.setErr(e.w.WriteByte(b))
}

func (e *Encoder) write(p []byte) {
	if e.err != nil {
		return
	}
	_, err := e.w.Write(p)
	e.setErr(err)
}

func (e *Encoder) top() *scope {
	if len(e.stack) == 0 {
		return nil
	}
	return &e.stack[len(e.stack)-1]
}

// closeStartTag terminates a pending start tag so that content can follow.
func (e *Encoder) closeStartTag() {
	if e.tagOpen {
		e.writeByte(rightAngleBracket)
		e.tagOpen = false
	}
}

// WriteStartElement opens the element local in namespace ns. A non-empty
// prefix is used as given and declared when it is not bound to ns in scope.
func (e *Encoder) WriteStartElement(local, ns, prefix string) error {
	if e.err != nil {
		return e.err
	}
	if len(local) == 0 {
		return fmt.Errorf("xml: start element name cannot be empty")
	}

	e.closeStartTag()

	parentDefault := ""
	if t := e.top(); t != nil {
		parentDefault = t.defaultNS
	}

	s := scope{defaultNS: parentDefault}
	var declare *nsDecl

	switch {
	case len(prefix) != 0:
		if uri, ok := e.resolvePrefix(prefix); !ok || uri != ns {
			declare = &nsDecl{prefix: prefix, uri: ns}
		}
	case ns == parentDefault:
	default:
		if p, ok := e.lookupBoundPrefix(ns); ok {
			prefix = p
		} else {
			declare = &nsDecl{uri: ns}
		}
	}

	if len(prefix) != 0 {
		s.qname = prefix + string(colon) + local
	} else {
		s.qname = local
	}

	e.writeByte(leftAngleBracket)
	e.writeString(s.qname)

	if declare != nil {
		s.bind(declare.prefix, declare.uri)
		e.writeXmlns(declare.prefix, declare.uri)
	}

	e.stack = append(e.stack, s)
	e.tagOpen = true

	return e.err
}

// WriteEndElement closes the innermost open element. An element without
// content is written as an empty element tag.
func (e *Encoder) WriteEndElement() error {
	if e.err != nil {
		return e.err
	}
	t := e.top()
	if t == nil {
		return ErrNoOpenElement
	}

	if e.tagOpen {
		e.writeByte(forwardSlash)
		e.writeByte(rightAngleBracket)
		e.tagOpen = false
	} else {
		e.writeByte(leftAngleBracket)
		e.writeByte(forwardSlash)
		e.writeString(t.qname)
		e.writeByte(rightAngleBracket)
	}

	e.stack = e.stack[:len(e.stack)-1]
	return e.err
}

// WriteNamespaceDecl declares ns on the open start tag. With an empty prefix
// the declaration is skipped when ns is already in scope, otherwise a
// d{depth}p{n} prefix is generated.
func (e *Encoder) WriteNamespaceDecl(prefix, ns string) error {
	if e.err != nil {
		return e.err
	}
	t := e.top()
	if t == nil || !e.tagOpen {
		return ErrNoOpenElement
	}

	if len(prefix) == 0 {
		if _, ok := e.LookupPrefix(ns); ok {
			return nil
		}
		prefix = e.generatePrefix(t)
	} else if uri, ok := e.resolvePrefix(prefix); ok && uri == ns {
		return nil
	}

	t.bind(prefix, ns)
	e.writeXmlns(prefix, ns)
	return e.err
}

// WriteAttributeString writes an attribute on the open start tag. An
// attribute in a namespace that has no prefix in scope declares one.
func (e *Encoder) WriteAttributeString(prefix, local, ns, value string) error {
	if e.err != nil {
		return e.err
	}
	t := e.top()
	if t == nil || !e.tagOpen {
		return ErrNoOpenElement
	}

	if ns == XMLNSNamespace {
		return e.WriteNamespaceDecl(local, value)
	}

	if len(ns) != 0 {
		switch {
		case len(prefix) != 0:
			if uri, ok := e.resolvePrefix(prefix); !ok || uri != ns {
				t.bind(prefix, ns)
				e.writeXmlns(prefix, ns)
			}
		default:
			if p, ok := e.lookupBoundPrefix(ns); ok {
				prefix = p
			} else {
				prefix = e.generatePrefix(t)
				t.bind(prefix, ns)
				e.writeXmlns(prefix, ns)
			}
		}
	} else {
		prefix = ""
	}

	e.writeByte(' ')
	if len(prefix) != 0 {
		e.writeString(prefix)
		e.writeByte(colon)
	}
	e.writeString(local)
	e.writeByte(equals)
	e.writeByte(quote)
	e.escapeAttr(value)
	e.writeByte(quote)

	return e.err
}

// WriteRaw writes xml into the content of the open element without escaping.
func (e *Encoder) WriteRaw(xml string) error {
	if err := e.beginContent(); err != nil {
		return err
	}
	e.writeString(xml)
	return e.err
}

// LookupPrefix returns the prefix bound to ns in the current scope. The
// empty prefix is returned for the default namespace.
func (e *Encoder) LookupPrefix(ns string) (string, bool) {
	if t := e.top(); t != nil && t.defaultNS == ns {
		return "", true
	}
	return e.lookupBoundPrefix(ns)
}

// lookupBoundPrefix returns a non-empty prefix bound to ns in scope.
func (e *Encoder) lookupBoundPrefix(ns string) (string, bool) {
	if ns == XMLNamespace {
		return "xml", true
	}

	for i := len(e.stack) - 1; i >= 0; i-- {
		decls := e.stack[i].decls
		for j := len(decls) - 1; j >= 0; j-- {
			d := decls[j]
			if d.uri != ns || len(d.prefix) == 0 {
				continue
			}
			// an inner scope may rebind the prefix
			if uri, _ := e.resolvePrefix(d.prefix); uri == ns {
				return d.prefix, true
			}
		}
	}

	return "", false
}

func (e *Encoder) resolvePrefix(prefix string) (string, bool) {
	if prefix == "xml" {
		return XMLNamespace, true
	}
	for i := len(e.stack) - 1; i >= 0; i-- {
		decls := e.stack[i].decls
		for j := len(decls) - 1; j >= 0; j-- {
			if decls[j].prefix == prefix {
				return decls[j].uri, true
			}
		}
	}
	return "", false
}

func (e *Encoder) generatePrefix(t *scope) string {
	for {
		t.generated++
		p := "d" + strconv.Itoa(len(e.stack)) + "p" + strconv.Itoa(t.generated)
		if _, taken := e.resolvePrefix(p); !taken {
			return p
		}
	}
}

func (e *Encoder) writeXmlns(prefix, uri string) {
	e.writeString(" xmlns")
	if len(prefix) != 0 {
		e.writeByte(colon)
		e.writeString(prefix)
	}
	e.writeByte(equals)
	e.writeByte(quote)
	e.escapeAttr(uri)
	e.writeByte(quote)
}

// beginContent closes a pending start tag before element content is written.
func (e *Encoder) beginContent() error {
	if e.err != nil {
		return e.err
	}
	if len(e.stack) == 0 {
		return ErrNoOpenElement
	}
	e.closeStartTag()
	return nil
}
