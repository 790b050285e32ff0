// Package xml parses XML documents into namespace-resolved trees for
// comparison in tests. Prefixes, namespace declarations, attribute order and
// whitespace between elements do not affect the tree; type marker values are
// resolved to the namespace their prefix is bound to.
package xml
