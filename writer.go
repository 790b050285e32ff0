package datacontract

import (
	"github.com/aws/smithy-datacontract/primitive"
)

const (
	// XSINamespace is the XML Schema instance namespace of the type and nil
	// markers, bound to the i prefix.
	XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"

	// XSDNamespace is the namespace of the built-in primitive contracts.
	XSDNamespace = primitive.XSDNamespace

	// SerializationNamespace holds the object reference attributes, bound to
	// the z prefix.
	SerializationNamespace = "http://schemas.microsoft.com/2003/10/Serialization/"

	// ArraysNamespace is the default namespace of collection contracts.
	ArraysNamespace = "http://schemas.microsoft.com/2003/10/Serialization/Arrays"
)

// XMLWriter is the streaming writer surface the generated writers call into.
// Errors returned by the writer are propagated unchanged.
type XMLWriter interface {
	primitive.Writer

	// WriteStartElement opens an element. The start tag stays open for
	// namespace declarations and attributes until content is written.
	WriteStartElement(local, ns, prefix string) error
	WriteEndElement() error

	// WriteNamespaceDecl declares ns on the open start tag. An empty prefix
	// is generated unless ns is already in scope.
	WriteNamespaceDecl(prefix, ns string) error
	WriteAttributeString(prefix, local, ns, value string) error
	LookupPrefix(ns string) (string, bool)
	WriteRaw(xml string) error
}

// WriteTypeMarker writes the i:type attribute naming the contract name in ns
// on the open start tag, declaring ns first when it has no prefix in scope.
func WriteTypeMarker(w XMLWriter, name, ns string) error {
	value := name
	if len(ns) != 0 {
		prefix, ok := w.LookupPrefix(ns)
		if !ok {
			if err := w.WriteNamespaceDecl("", ns); err != nil {
				return err
			}
			prefix, _ = w.LookupPrefix(ns)
		}
		if len(prefix) != 0 {
			value = prefix + ":" + name
		}
	}
	return w.WriteAttributeString("i", "type", XSINamespace, value)
}
