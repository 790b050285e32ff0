package generator

import (
	"reflect"

	datacontract "github.com/aws/smithy-datacontract"
)

// compiledBackend resolves the member plan of a contract once and reuses it
// for every call. It reads exported fields only.
type compiledBackend struct{}

type compiledClass struct {
	g    *Generator
	plan *classPlan
}

type compiledCollection struct {
	g    *Generator
	plan *collectionPlan
}

func (compiledBackend) ClassWriter(g *Generator, c *datacontract.Contract) (Procedure, error) {
	hierarchy := c.Hierarchy()
	for i, level := range hierarchy {
		if i > 0 {
			if err := checkExported(level, level.BaseIndex()); err != nil {
				return nil, err
			}
		}
		for _, m := range level.Members() {
			if m.Getter() != nil {
				continue
			}
			if err := checkExported(level, m.FieldIndex()); err != nil {
				return nil, err
			}
		}
	}

	return &compiledClass{g: g, plan: g.buildClassPlan(c, exportedField)}, nil
}

func (compiledBackend) CollectionWriter(g *Generator, c *datacontract.Contract) (Procedure, error) {
	return &compiledCollection{g: g, plan: g.buildCollectionPlan(c)}, nil
}

func (p *compiledClass) Contract() *datacontract.Contract { return p.plan.contract }

func (p *compiledClass) Write(w datacontract.XMLWriter, v reflect.Value, sc *datacontract.Context) error {
	return p.g.writeClass(w, sc, p.plan, v, exportedField)
}

func (p *compiledCollection) Contract() *datacontract.Contract { return p.plan.contract }

func (p *compiledCollection) Write(w datacontract.XMLWriter, v reflect.Value, sc *datacontract.Context) error {
	return p.g.writeCollection(w, sc, p.plan, v)
}

// checkExported fails with an AuthorizationError when a field on the index
// path through the type of level is unexported.
func checkExported(level *datacontract.Contract, index []int) error {
	t := level.Type()
	for _, i := range index {
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		f := t.Field(i)
		if !f.IsExported() {
			return &datacontract.AuthorizationError{Contract: level.String(), Type: level.Type(), Field: f.Name}
		}
		t = f.Type
	}
	return nil
}

// exportedField reads an exported field. A nil embedded pointer on the path
// reads as an absent value.
func exportedField(v reflect.Value, index []int) reflect.Value {
	f, err := v.FieldByIndexErr(index)
	if err != nil {
		return reflect.Value{}
	}
	return f
}
