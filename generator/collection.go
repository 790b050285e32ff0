package generator

import (
	"reflect"

	datacontract "github.com/aws/smithy-datacontract"
	"github.com/aws/smithy-datacontract/primitive"
)

// collectionPlan is the item loop of a collection contract.
type collectionPlan struct {
	contract *datacontract.Contract

	item element

	// bulk writes a whole array of primitive items.
	bulk primitive.ArrayFunc

	// dictionaries wrap each entry in an item element holding key and value
	key, value element
}

func (g *Generator) buildCollectionPlan(c *datacontract.Contract) *collectionPlan {
	plan := &collectionPlan{contract: c}
	ns := c.Namespace()

	if c.CollectionKind().IsDictionary() {
		plan.item = element{name: c.ItemName(), ns: ns}
		plan.key = g.newElement(c.KeyName(), ns, "", c.KeyType(), false)
		plan.value = g.newElement(c.ValueName(), ns, "", c.ItemType(), false)
		return plan
	}

	plan.item = g.newElement(c.ItemName(), ns, "", c.ItemType(), false)
	if c.CollectionKind() == datacontract.CollectionArray && c.Type().Elem() == c.ItemType() {
		plan.bulk, _ = primitive.LookupArray(c.ItemType())
	}
	return plan
}

func (g *Generator) writeCollection(w datacontract.XMLWriter, sc *datacontract.Context, plan *collectionPlan, v reflect.Value) error {
	c := plan.contract
	if err := sc.CheckReadOnly(c); err != nil {
		return err
	}
	if ns := c.ChildElementNamespace(); len(ns) != 0 {
		if err := w.WriteNamespaceDecl("", ns); err != nil {
			return err
		}
	}

	switch {
	case c.CollectionKind() == datacontract.CollectionArray:
		return g.writeArray(w, sc, plan, v)
	case c.CollectionKind().IsDictionary():
		return g.writeDictionary(w, sc, plan, v)
	}

	cur, err := c.Cursor(v)
	if err != nil {
		return err
	}
	defer cur.Close()

	counted := false
	if n, ok := c.Count(v); ok {
		if err := sc.IncrementItemCount(n); err != nil {
			return err
		}
		counted = true
	}
	for cur.Next() {
		if !counted {
			if err := sc.IncrementItemCount(1); err != nil {
				return err
			}
		}
		if err := g.writeElement(w, sc, &plan.item, cur.Current()); err != nil {
			return err
		}
	}
	return cur.Err()
}

func (g *Generator) writeArray(w datacontract.XMLWriter, sc *datacontract.Context, plan *collectionPlan, v reflect.Value) error {
	if err := sc.IncrementItemCount(v.Len()); err != nil {
		return err
	}
	if plan.bulk != nil {
		return plan.bulk(w, plan.item.name, plan.item.ns, v)
	}

	for i := 0; i < v.Len(); i++ {
		if err := g.writeElement(w, sc, &plan.item, v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) writeDictionary(w datacontract.XMLWriter, sc *datacontract.Context, plan *collectionPlan, v reflect.Value) error {
	c := plan.contract
	cur, err := c.Entries(v)
	if err != nil {
		return err
	}
	defer cur.Close()

	counted := false
	if n, ok := c.Count(v); ok {
		if err := sc.IncrementItemCount(n); err != nil {
			return err
		}
		counted = true
	}
	for cur.Next() {
		if !counted {
			if err := sc.IncrementItemCount(1); err != nil {
				return err
			}
		}

		if err := w.WriteStartElement(plan.item.name, plan.item.ns, ""); err != nil {
			return err
		}
		if err := g.writeElement(w, sc, &plan.key, cur.Key()); err != nil {
			return err
		}
		if err := g.writeElement(w, sc, &plan.value, cur.Value()); err != nil {
			return err
		}
		if err := w.WriteEndElement(); err != nil {
			return err
		}
	}
	return cur.Err()
}
