package testing

import (
	"bytes"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/jmespath/go-jmespath"

	"github.com/aws/smithy-datacontract/testing/xml"
)

// QueryXML evaluates the JMESPath expression over doc. The document is
// queried in the shape of xml.Node.Document: the root element is the single
// top level key, attributes are "@name" keys and repeated elements are lists.
func QueryXML(doc []byte, expression string) (interface{}, error) {
	root, err := xml.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML, %v", err)
	}

	result, err := jmespath.Search(expression, root.Document())
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate %q, %v", expression, err)
	}
	return result, nil
}

// AssertXMLPath evaluates the JMESPath expression over doc and compares the
// result with expect. Emits a testing error, and returns false if they differ.
func AssertXMLPath(t T, doc []byte, expression string, expect interface{}) bool {
	t.Helper()

	actual, err := QueryXML(doc, expression)
	if err != nil {
		t.Errorf("expect query to succeed, %v", err)
		return false
	}
	if diff := cmp.Diff(expect, actual); len(diff) != 0 {
		t.Errorf("%s mismatch (-expect +actual):\n%s", expression, diff)
		return false
	}

	return true
}
