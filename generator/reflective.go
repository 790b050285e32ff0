package generator

import (
	"reflect"
	"unsafe"

	datacontract "github.com/aws/smithy-datacontract"
)

// reflectiveBackend walks the contract metadata again on every call. It
// reads unexported fields through their addresses.
type reflectiveBackend struct{}

type reflectiveClass struct {
	g *Generator
	c *datacontract.Contract
}

type reflectiveCollection struct {
	g *Generator
	c *datacontract.Contract
}

func (reflectiveBackend) ClassWriter(g *Generator, c *datacontract.Contract) (Procedure, error) {
	return &reflectiveClass{g: g, c: c}, nil
}

func (reflectiveBackend) CollectionWriter(g *Generator, c *datacontract.Contract) (Procedure, error) {
	return &reflectiveCollection{g: g, c: c}, nil
}

func (p *reflectiveClass) Contract() *datacontract.Contract { return p.c }

func (p *reflectiveClass) Write(w datacontract.XMLWriter, v reflect.Value, sc *datacontract.Context) error {
	return p.g.writeClass(w, sc, p.g.buildClassPlan(p.c, privateField), v, privateField)
}

func (p *reflectiveCollection) Contract() *datacontract.Contract { return p.c }

func (p *reflectiveCollection) Write(w datacontract.XMLWriter, v reflect.Value, sc *datacontract.Context) error {
	return p.g.writeCollection(w, sc, p.g.buildCollectionPlan(p.c), v)
}

// privateField reads the field at index of v whether or not it is exported.
// Values read through unexported fields are made usable by rebuilding them
// from their address.
func privateField(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}
			}
			v = v.Elem()
		}
		v = expose(v.Field(x))
	}
	return v
}

func expose(v reflect.Value) reflect.Value {
	if v.CanInterface() || !v.CanAddr() {
		return v
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}
