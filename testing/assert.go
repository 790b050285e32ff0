package testing

import (
	"bytes"
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/aws/smithy-datacontract/testing/xml"
)

// T provides the testing interface for capturing failures with testing assert
// utilities.
type T interface {
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Helper()
}

// XMLEqual compares two XML documents after resolving namespaces. Prefixes,
// namespace declarations and attribute order are ignored. Returns an error
// describing the difference if the documents are not equal.
func XMLEqual(expectBytes, actualBytes []byte) error {
	expect, err := xml.Parse(bytes.NewReader(expectBytes))
	if err != nil {
		return fmt.Errorf("failed to parse expected XML, %v", err)
	}

	actual, err := xml.Parse(bytes.NewReader(actualBytes))
	if err != nil {
		return fmt.Errorf("failed to parse actual XML, %v", err)
	}

	if diff := cmp.Diff(expect, actual); len(diff) != 0 {
		return fmt.Errorf("XML mismatch (-expect +actual):\n%s", diff)
	}

	return nil
}

// AssertXMLEqual compares two XML documents and identifies if the documents
// contain the same elements. Emits a testing error, and returns false if the
// documents are not equal.
func AssertXMLEqual(t T, expect, actual []byte) bool {
	t.Helper()

	if err := XMLEqual(expect, actual); err != nil {
		t.Errorf("expect XML documents to be equal, %v", err)
		return false
	}

	return true
}
