package generator

import (
	"reflect"

	datacontract "github.com/aws/smithy-datacontract"
)

// Backend builds writer procedures for class and collection contracts.
type Backend interface {
	ClassWriter(g *Generator, c *datacontract.Contract) (Procedure, error)
	CollectionWriter(g *Generator, c *datacontract.Contract) (Procedure, error)
}

// Procedure writes values of one contract. A procedure is immutable and may
// be invoked concurrently, each invocation with its own writer and context.
type Procedure interface {
	Contract() *datacontract.Contract

	// Write writes the content of v, a value of the contract's type, into
	// the open element of w.
	Write(w datacontract.XMLWriter, v reflect.Value, sc *datacontract.Context) error
}
