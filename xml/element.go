package xml

// nsDecl binds a prefix to a namespace URI within an element scope. The
// empty prefix binds the default namespace.
type nsDecl struct {
	prefix, uri string
}

// scope is an open element.
type scope struct {
	qname     string
	defaultNS string
	decls     []nsDecl
	generated int
}

func (s *scope) bind(prefix, uri string) {
	s.decls = append(s.decls, nsDecl{prefix: prefix, uri: uri})
	if len(prefix) == 0 {
		s.defaultNS = uri
	}
}
