package generator

import (
	"reflect"

	datacontract "github.com/aws/smithy-datacontract"
	"github.com/aws/smithy-datacontract/primitive"
	"github.com/aws/smithy-datacontract/xml"
)

// element is a resolved member or item element.
type element struct {
	name    string
	ns      string
	childNS string

	declared    reflect.Type
	forceMarker bool

	// fast writes the content of values of a built-in primitive declared
	// type directly.
	fast primitive.ContentFunc

	// static is the class or collection contract of the declared type.
	static *datacontract.Contract
}

func (g *Generator) newElement(name, ns, childNS string, declared reflect.Type, forceMarker bool) element {
	e := element{
		name:        name,
		ns:          ns,
		childNS:     childNS,
		declared:    declared,
		forceMarker: forceMarker,
	}

	// nil byte slices are written as nil markers
	if k := primitive.FromReflectType(declared); k != 0 && k != primitive.KindBase64 {
		if entry, ok := primitive.LookupKind(k); ok {
			e.fast = entry.Write
		}
	}
	if c, ok := g.registry.Lookup(declaredType(declared)); ok {
		if c.Kind() == datacontract.KindClass || c.Kind() == datacontract.KindCollection {
			e.static = c
		}
	}

	return e
}

func (g *Generator) writeElement(w datacontract.XMLWriter, sc *datacontract.Context, e *element, v reflect.Value) error {
	// an invalid v was read through a nil embedded pointer and is absent
	if e.fast != nil && !e.forceMarker && v.IsValid() {
		if err := w.WriteStartElement(e.name, e.ns, ""); err != nil {
			return err
		}
		if err := e.fast(w, v); err != nil {
			return err
		}
		return w.WriteEndElement()
	}

	if err := sc.CheckReadOnly(e.static); err != nil {
		return err
	}
	if err := w.WriteStartElement(e.name, e.ns, ""); err != nil {
		return err
	}
	if len(e.childNS) != 0 {
		if err := w.WriteNamespaceDecl("", e.childNS); err != nil {
			return err
		}
	}
	if err := g.writeValue(w, sc, e.declared, v, e.forceMarker); err != nil {
		return err
	}
	return w.WriteEndElement()
}

func (g *Generator) writeValue(w datacontract.XMLWriter, sc *datacontract.Context, declared reflect.Type, v reflect.Value, forceMarker bool) error {
	v, absent := unwrap(v)
	if absent {
		if declared == nil {
			declared = typeOfAny
		}
		return sc.WriteNull(w, declared, g.registry.IsSerializable(declared))
	}

	rt := v.Type()
	c, ok := g.registry.Lookup(rt)
	if !ok {
		return &datacontract.UnsupportedTypeError{Type: rt, Reason: "no data contract"}
	}
	marker := forceMarker || rt != declaredType(declared)

	switch c.Kind() {
	case datacontract.KindPrimitive:
		entry, ok := primitive.LookupKind(c.PrimitiveKind())
		if !ok {
			return &datacontract.UnsupportedTypeError{Type: rt, Reason: "no primitive writer"}
		}
		if marker {
			if err := datacontract.WriteTypeMarker(w, c.Name(), c.Namespace()); err != nil {
				return err
			}
		}
		if rt != entry.Type {
			v = v.Convert(entry.Type)
		}
		return entry.Write(w, v)

	case datacontract.KindEnum:
		s, err := c.FormatEnum(v)
		if err != nil {
			return err
		}
		if marker {
			if err := datacontract.WriteTypeMarker(w, c.Name(), c.Namespace()); err != nil {
				return err
			}
		}
		return w.WriteString(s)
	}

	if err := sc.CheckReadOnly(c); err != nil {
		return err
	}
	proc, err := g.GetWriter(c)
	if err != nil {
		return err
	}
	return g.writeObject(w, sc, proc, v, marker)
}

// writeObject writes a class or collection value through its procedure,
// with reference ids for reference contracts and cycle detection for the
// rest.
func (g *Generator) writeObject(w datacontract.XMLWriter, sc *datacontract.Context, proc Procedure, v reflect.Value, marker bool) error {
	c := proc.Contract()

	getOnly := sc.IsGetOnlyCollection()
	sc.ResetIsGetOnlyCollection()

	key, keyed := objectKey(v)
	if c.IsReference() && keyed && !getOnly {
		id, seen := sc.ReferenceID(key)
		if seen {
			return w.WriteAttributeString("z", "Ref", datacontract.SerializationNamespace, id)
		}
		if marker {
			if err := datacontract.WriteTypeMarker(w, c.Name(), c.Namespace()); err != nil {
				return err
			}
		}
		if err := w.WriteAttributeString("z", "Id", datacontract.SerializationNamespace, id); err != nil {
			return err
		}
		return proc.Write(w, v, sc)
	}

	if marker {
		if err := datacontract.WriteTypeMarker(w, c.Name(), c.Namespace()); err != nil {
			return err
		}
	}
	if keyed {
		if err := sc.PushObject(key); err != nil {
			return err
		}
		defer sc.PopObject(key)
	}
	return proc.Write(w, v, sc)
}

// writeISerializable writes the entries a Serializable value adds to its
// SerializationInfo, each in the empty namespace with its runtime type.
func (g *Generator) writeISerializable(w datacontract.XMLWriter, sc *datacontract.Context, c *datacontract.Contract, v reflect.Value) error {
	var s datacontract.Serializable
	if v.CanAddr() {
		s, _ = v.Addr().Interface().(datacontract.Serializable)
	}
	if s == nil {
		var ok bool
		if s, ok = v.Interface().(datacontract.Serializable); !ok {
			return &datacontract.UnsupportedTypeError{Type: v.Type(), Reason: "contract " + c.String() + " is not Serializable"}
		}
	}

	var info datacontract.SerializationInfo
	if err := s.GetObjectData(&info); err != nil {
		return err
	}
	if err := sc.IncrementItemCount(info.Len()); err != nil {
		return err
	}

	for _, entry := range info.Entries() {
		if err := w.WriteStartElement(xml.EncodeLocalName(entry.Name), "", ""); err != nil {
			return err
		}
		if err := g.writeValue(w, sc, typeOfAny, reflect.ValueOf(entry.Value), false); err != nil {
			return err
		}
		if err := w.WriteEndElement(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) writeExtensionData(w datacontract.XMLWriter, sc *datacontract.Context, members []datacontract.ExtensionDataMember) error {
	for _, m := range members {
		if m.Value == nil && len(m.XML) != 0 {
			if err := w.WriteRaw(m.XML); err != nil {
				return err
			}
			continue
		}

		if err := w.WriteStartElement(xml.EncodeLocalName(m.Name), m.Namespace, ""); err != nil {
			return err
		}
		if err := g.writeValue(w, sc, typeOfAny, reflect.ValueOf(m.Value), false); err != nil {
			return err
		}
		if err := w.WriteEndElement(); err != nil {
			return err
		}
	}
	return nil
}
