package datacontract

import (
	"cmp"
	"iter"
	"reflect"
	"slices"
)

// Cursor iterates the items of a collection value. Next reports false once
// the items are exhausted or iteration failed; Err returns the failure.
type Cursor interface {
	Next() bool
	Current() reflect.Value
	Err() error
	Close()
}

// EntryCursor iterates the entries of a dictionary value.
type EntryCursor interface {
	Next() bool
	Key() reflect.Value
	Value() reflect.Value
	Err() error
	Close()
}

// KeyValue is a dictionary entry yielded by custom dictionary cursors.
type KeyValue struct {
	Key   any
	Value any
}

// Cursor returns an iteration cursor over the collection value v.
func (c *Contract) Cursor(v reflect.Value) (Cursor, error) {
	if c.enumerator != nil {
		return c.enumerator(v), nil
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return &indexCursor{v: v, i: -1}, nil
	case reflect.Func:
		if v.Type().CanSeq() {
			next, stop := iter.Pull(v.Seq())
			return &seqCursor{next: next, stop: stop}, nil
		}
	}

	return nil, &UnsupportedTypeError{Type: v.Type(), Reason: "no item cursor for " + c.collectionKind.String()}
}

// Entries returns an entry cursor over the dictionary value v.
func (c *Contract) Entries(v reflect.Value) (EntryCursor, error) {
	if c.enumerator != nil {
		return &keyValueCursor{items: c.enumerator(v)}, nil
	}

	switch v.Kind() {
	case reflect.Map:
		return newMapCursor(v), nil
	case reflect.Slice, reflect.Array:
		return &keyValueCursor{items: &indexCursor{v: v, i: -1}}, nil
	case reflect.Func:
		if v.Type().CanSeq2() {
			next, stop := iter.Pull2(v.Seq2())
			return &seq2Cursor{next: next, stop: stop}, nil
		}
	}

	return nil, &UnsupportedTypeError{Type: v.Type(), Reason: "no entry cursor for " + c.collectionKind.String()}
}

// Count returns the number of items in the collection value v when it is
// known without iterating.
func (c *Contract) Count(v reflect.Value) (int, bool) {
	if c.counter != nil {
		return c.counter(v), true
	}
	if c.enumerator != nil {
		return 0, false
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return v.Len(), true
	}
	return 0, false
}

type indexCursor struct {
	v reflect.Value
	i int
}

func (c *indexCursor) Next() bool {
	c.i++
	return c.i < c.v.Len()
}

func (c *indexCursor) Current() reflect.Value { return c.v.Index(c.i) }
func (c *indexCursor) Err() error             { return nil }
func (c *indexCursor) Close()                 {}

type mapEntry struct {
	key, value reflect.Value
}

// mapCursor walks the entries of a map in key order. Entries are read with
// MapRange since keys such as NaN cannot be looked up again.
type mapCursor struct {
	entries []mapEntry
	i       int
}

func newMapCursor(v reflect.Value) *mapCursor {
	entries := make([]mapEntry, 0, v.Len())
	for it := v.MapRange(); it.Next(); {
		entries = append(entries, mapEntry{key: it.Key(), value: it.Value()})
	}
	slices.SortFunc(entries, func(a, b mapEntry) int {
		if c := compareKeys(a.key, b.key); c != 0 {
			return c
		}
		return compareKeys(a.value, b.value)
	})
	return &mapCursor{entries: entries, i: -1}
}

func (c *mapCursor) Next() bool {
	c.i++
	return c.i < len(c.entries)
}

func (c *mapCursor) Key() reflect.Value   { return c.entries[c.i].key }
func (c *mapCursor) Value() reflect.Value { return c.entries[c.i].value }
func (c *mapCursor) Err() error           { return nil }
func (c *mapCursor) Close()               {}

type seqCursor struct {
	next    func() (reflect.Value, bool)
	stop    func()
	current reflect.Value
}

func (c *seqCursor) Next() bool {
	v, ok := c.next()
	c.current = v
	return ok
}

func (c *seqCursor) Current() reflect.Value { return c.current }
func (c *seqCursor) Err() error             { return nil }
func (c *seqCursor) Close()                 { c.stop() }

type seq2Cursor struct {
	next       func() (reflect.Value, reflect.Value, bool)
	stop       func()
	key, value reflect.Value
}

func (c *seq2Cursor) Next() bool {
	k, v, ok := c.next()
	c.key, c.value = k, v
	return ok
}

func (c *seq2Cursor) Key() reflect.Value   { return c.key }
func (c *seq2Cursor) Value() reflect.Value { return c.value }
func (c *seq2Cursor) Err() error           { return nil }
func (c *seq2Cursor) Close()               { c.stop() }

// keyValueCursor adapts a cursor over KeyValue items, or structs with Key and
// Value fields, to an entry cursor.
type keyValueCursor struct {
	items      Cursor
	key, value reflect.Value
	err        error
}

func (c *keyValueCursor) Next() bool {
	if c.err != nil || !c.items.Next() {
		return false
	}

	item := c.items.Current()
	for item.Kind() == reflect.Interface || item.Kind() == reflect.Pointer {
		if item.IsNil() {
			c.err = &UnsupportedTypeError{Type: item.Type(), Reason: "nil dictionary entry"}
			return false
		}
		item = item.Elem()
	}

	c.key, c.value = reflect.Value{}, reflect.Value{}
	if item.Kind() == reflect.Struct {
		c.key = item.FieldByName("Key")
		c.value = item.FieldByName("Value")
	}
	if !c.key.IsValid() || !c.value.IsValid() {
		c.err = &UnsupportedTypeError{Type: item.Type(), Reason: "dictionary entry has no Key and Value fields"}
		return false
	}
	return true
}

func (c *keyValueCursor) Key() reflect.Value   { return c.key }
func (c *keyValueCursor) Value() reflect.Value { return c.value }
func (c *keyValueCursor) Close()               { c.items.Close() }

func (c *keyValueCursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.items.Err()
}

// compareKeys orders map keys so dictionaries are written deterministically.
func compareKeys(a, b reflect.Value) int {
	if a.Kind() != b.Kind() {
		return cmp.Compare(a.Kind(), b.Kind())
	}

	switch a.Kind() {
	case reflect.String:
		return cmp.Compare(a.String(), b.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.Bool:
		switch {
		case a.Bool() == b.Bool():
			return 0
		case a.Bool():
			return 1
		}
		return -1
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return cmp.Compare(boolRank(!a.IsNil()), boolRank(!b.IsNil()))
		}
		ae, be := a.Elem(), b.Elem()
		if ae.Type() != be.Type() {
			return cmp.Compare(ae.Type().String(), be.Type().String())
		}
		return compareKeys(ae, be)
	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if c := compareKeys(a.Field(i), b.Field(i)); c != 0 {
				return c
			}
		}
		return 0
	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if c := compareKeys(a.Index(i), b.Index(i)); c != 0 {
				return c
			}
		}
		return 0
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return cmp.Compare(a.Pointer(), b.Pointer())
	}

	return 0
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
