// Package xml usage guidelines:
//
// Encoder is a streaming XML writer. Elements are opened with
// WriteStartElement and must be closed with WriteEndElement. Until content is
// written the start tag stays open, so namespace declarations and attributes
// may still be added to it.
//
// Namespaces are tracked per element scope. An element whose namespace is
// neither the default namespace in scope nor bound to a prefix declares it as
// the default namespace. WriteNamespaceDecl with an empty prefix binds a
// generated d{depth}p{n} prefix, which later elements and attribute values in
// that scope reuse.
//
// The first error returned by the underlying io.Writer is sticky: every later
// call returns it and nothing more is written.
package xml
