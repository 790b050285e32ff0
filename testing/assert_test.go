package testing

import (
	"fmt"
	"strings"
	"testing"
)

type recordT struct {
	errors []string
}

func (r *recordT) Error(args ...interface{})                 { r.errors = append(r.errors, fmt.Sprint(args...)) }
func (r *recordT) Errorf(format string, args ...interface{}) { r.errors = append(r.errors, fmt.Sprintf(format, args...)) }
func (r *recordT) Helper()                                   {}

func TestXMLEqual(t *testing.T) {
	cases := map[string]struct {
		Expect, Actual string
		Equal          bool
	}{
		"identical": {
			Expect: `<a xmlns="urn:x"><b>1</b></a>`,
			Actual: `<a xmlns="urn:x"><b>1</b></a>`,
			Equal:  true,
		},
		"prefix differs": {
			Expect: `<a xmlns="urn:x"><b>1</b></a>`,
			Actual: `<p:a xmlns:p="urn:x"><p:b>1</p:b></p:a>`,
			Equal:  true,
		},
		"attribute order": {
			Expect: `<a x="1" y="2"/>`,
			Actual: `<a y="2" x="1"></a>`,
			Equal:  true,
		},
		"type marker prefix": {
			Expect: `<a xmlns:i="http://www.w3.org/2001/XMLSchema-instance" xmlns:d1p1="urn:t" i:type="d1p1:T"/>`,
			Actual: `<a xmlns:i="http://www.w3.org/2001/XMLSchema-instance" xmlns:q="urn:t" i:type="q:T"/>`,
			Equal:  true,
		},
		"namespace differs": {
			Expect: `<a xmlns="urn:x"/>`,
			Actual: `<a xmlns="urn:y"/>`,
		},
		"text differs": {
			Expect: `<a><b>1</b></a>`,
			Actual: `<a><b>2</b></a>`,
		},
		"order differs": {
			Expect: `<a><b/><c/></a>`,
			Actual: `<a><c/><b/></a>`,
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			err := XMLEqual([]byte(c.Expect), []byte(c.Actual))
			if c.Equal && err != nil {
				t.Errorf("expect equal, got %v", err)
			}
			if !c.Equal && err == nil {
				t.Errorf("expect not equal")
			}
		})
	}
}

func TestAssertXMLEqual(t *testing.T) {
	var r recordT
	if AssertXMLEqual(&r, []byte(`<a/>`), []byte(`<b/>`)) {
		t.Fatalf("expect assertion to fail")
	}
	if e, a := 1, len(r.errors); e != a {
		t.Fatalf("expect %d errors, got %d", e, a)
	}
	if !strings.Contains(r.errors[0], "mismatch") {
		t.Errorf("expect diff in error, got %q", r.errors[0])
	}
}

func TestQueryXML(t *testing.T) {
	doc := []byte(`<Order xmlns="urn:o" xmlns:i="http://www.w3.org/2001/XMLSchema-instance">` +
		`<Id>7</Id><Lines><Line>a</Line><Line>b</Line></Lines><Note i:nil="true"/></Order>`)

	cases := map[string]struct {
		Expression string
		Expect     interface{}
	}{
		"leaf":      {Expression: "Order.Id", Expect: "7"},
		"repeated":  {Expression: "Order.Lines.Line", Expect: []interface{}{"a", "b"}},
		"attribute": {Expression: `Order.Note."@nil"`, Expect: "true"},
		"missing":   {Expression: "Order.Other", Expect: nil},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			AssertXMLPath(t, doc, c.Expression, c.Expect)
		})
	}
}

func TestQueryXMLMalformed(t *testing.T) {
	if _, err := QueryXML([]byte(`<a>`), "a"); err == nil {
		t.Errorf("expect error for malformed document")
	}
}
