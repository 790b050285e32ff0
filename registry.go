package datacontract

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"github.com/aws/smithy-datacontract/primitive"
)

// nameTables are the element names and namespaces of a class hierarchy,
// computed once at registration.
type nameTables struct {
	contractNamespaces []string
	memberNames        []string
	memberNamespaces   []string
	childNamespaces    []string
}

var (
	typeOfAny              = reflect.TypeFor[any]()
	typeOfUnsafePointer    = reflect.TypeFor[unsafe.Pointer]()
	typeOfPointerSurrogate = reflect.TypeFor[PointerSurrogate]()
)

// builtins are the contracts of the primitive types, keyed by type.
var builtins = func() map[reflect.Type]*Contract {
	m := make(map[reflect.Type]*Contract, primitive.KindTotal)
	for k := primitive.Kind(1); int(k) < primitive.KindTotal; k++ {
		entry, ok := primitive.LookupKind(k)
		if !ok {
			continue
		}
		m[entry.Type] = &Contract{
			kind:          KindPrimitive,
			typ:           entry.Type,
			name:          k.XSDName(),
			namespace:     XSDNamespace,
			primitiveKind: k,
		}
	}
	return m
}()

// anyType names values declared as an interface.
var anyType = &Contract{
	kind:      KindPrimitive,
	typ:       typeOfAny,
	name:      "anyType",
	namespace: XSDNamespace,
}

// Registry is an immutable set of contracts, with the built-in primitive
// contracts, the member conflict table and the element name tables they are
// written with.
type Registry struct {
	contracts []*Contract
	byType    map[reflect.Type]*Contract
	conflicts map[*Member][]*Member

	binding map[*Contract]bool
}

// NewRegistry validates the contracts and returns a registry holding them.
// Base contracts are added along with the contracts deriving from them.
func NewRegistry(contracts ...*Contract) (*Registry, error) {
	r := &Registry{
		byType:    map[reflect.Type]*Contract{},
		conflicts: map[*Member][]*Member{},
		binding:   map[*Contract]bool{},
	}

	seen := map[*Contract]bool{}
	for _, c := range contracts {
		if err := r.collect(c, seen, nil); err != nil {
			return nil, err
		}
	}

	for _, c := range r.contracts {
		if err := r.register(c); err != nil {
			return nil, &InvalidContractError{Contract: contractLabel(c), Err: err}
		}
	}

	// bases are collected before derived classes
	for _, c := range r.contracts {
		var err error
		switch c.kind {
		case KindClass:
			err = r.bindClass(c)
		case KindEnum:
			err = c.validateEnum()
		case KindPrimitive:
			if c.primitiveKind == 0 {
				err = fmt.Errorf("type %s has no primitive kind", c.typ)
			}
		}
		if err != nil {
			return nil, &InvalidContractError{Contract: contractLabel(c), Err: err}
		}
	}

	for _, c := range r.contracts {
		if c.kind != KindCollection {
			continue
		}
		if err := r.bindCollection(c); err != nil {
			return nil, &InvalidContractError{Contract: contractLabel(c), Err: err}
		}
	}

	r.buildConflicts()
	for _, c := range r.contracts {
		if c.kind == KindClass {
			c.tables = r.buildTables(c)
		}
	}

	for i, c := range r.contracts {
		c.registry = r
		c.id = i
	}
	r.binding = nil

	return r, nil
}

func contractLabel(c *Contract) string {
	if s := c.String(); len(s) != 0 {
		return s
	}
	if c.typ != nil {
		return c.typ.String()
	}
	return "<nil>"
}

func (r *Registry) collect(c *Contract, seen map[*Contract]bool, path []*Contract) error {
	if c == nil {
		return errors.New("datacontract: nil contract")
	}
	for _, p := range path {
		if p == c {
			return &InvalidContractError{Contract: contractLabel(c), Err: errors.New("contract is its own base")}
		}
	}
	if seen[c] {
		return nil
	}
	if c.base != nil {
		if err := r.collect(c.base, seen, append(path, c)); err != nil {
			return err
		}
	}
	seen[c] = true
	r.contracts = append(r.contracts, c)
	return nil
}

func (r *Registry) register(c *Contract) error {
	if c.typ == nil {
		return errors.New("contract has no type")
	}
	if c.registry != nil {
		return errors.New("contract already belongs to a registry")
	}
	if _, ok := builtins[c.typ]; ok {
		return fmt.Errorf("type %s has a built-in contract", c.typ)
	}
	if c.typ.Kind() == reflect.Interface || c.typ.Kind() == reflect.Pointer {
		return fmt.Errorf("type %s cannot have a contract", c.typ)
	}
	if prev, ok := r.byType[c.typ]; ok {
		return fmt.Errorf("type %s already has contract %s", c.typ, contractLabel(prev))
	}

	if len(c.name) == 0 && c.kind != KindCollection {
		c.name = c.typ.Name()
		if len(c.name) == 0 {
			return fmt.Errorf("unnamed type %s needs a contract name", c.typ)
		}
	}

	r.byType[c.typ] = c
	return nil
}

func (r *Registry) bindClass(c *Contract) error {
	if c.typ.Kind() != reflect.Struct {
		return fmt.Errorf("class type %s is not a struct", c.typ)
	}

	offset := 0
	c.hierarchy = []*Contract{c}
	if base := c.base; base != nil {
		if base.kind != KindClass {
			return fmt.Errorf("base %s is not a class contract", contractLabel(base))
		}

		field := c.baseField
		if len(field) == 0 {
			field = base.typ.Name()
		}
		f, ok := c.typ.FieldByName(field)
		if !ok || !f.Anonymous || f.Type != base.typ {
			return fmt.Errorf("type %s does not embed base type %s as field %q", c.typ, base.typ, field)
		}
		c.baseIndex = f.Index

		c.hierarchy = append(append([]*Contract(nil), base.hierarchy...), c)
		for _, level := range base.hierarchy {
			offset += len(level.members)
		}
	}

	names := make(map[string]struct{}, len(c.members))
	for i, m := range c.members {
		if m == nil {
			return fmt.Errorf("member %d is nil", i)
		}
		if len(m.name) == 0 {
			return fmt.Errorf("member %d has no name", i)
		}
		if _, ok := names[m.name]; ok {
			return fmt.Errorf("duplicate member %s", m.name)
		}
		names[m.name] = struct{}{}

		if m.owner != nil && m.owner != c {
			return fmt.Errorf("member %s already belongs to %s", m.name, contractLabel(m.owner))
		}
		m.owner = c
		m.globalSlot = offset + i

		if m.getter != nil {
			if m.typ == nil {
				return fmt.Errorf("accessor member %s has no type", m.name)
			}
			continue
		}
		f, ok := c.typ.FieldByName(m.field)
		if !ok {
			return fmt.Errorf("type %s has no field %s for member %s", c.typ, m.field, m.name)
		}
		m.index = f.Index
		m.typ = f.Type
	}

	ptr := reflect.PointerTo(c.typ)
	if c.iserializable {
		serializable := reflect.TypeFor[Serializable]()
		if !c.typ.Implements(serializable) && !ptr.Implements(serializable) {
			return fmt.Errorf("type %s does not implement Serializable", c.typ)
		}
	}
	if c.extensionData {
		extensible := reflect.TypeFor[ExtensibleDataObject]()
		if !c.typ.Implements(extensible) && !ptr.Implements(extensible) {
			return fmt.Errorf("type %s does not implement ExtensibleDataObject", c.typ)
		}
	}

	return nil
}

func (r *Registry) bindCollection(c *Contract) error {
	if done, ok := r.binding[c]; ok {
		if !done {
			return fmt.Errorf("collection type %s contains itself", c.typ)
		}
		return nil
	}
	r.binding[c] = false

	t := c.typ
	kind := c.collectionKind
	if kind < CollectionArray || kind > CollectionEnumerable {
		return fmt.Errorf("unknown collection kind %d", kind)
	}

	var key, item reflect.Type
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		item = t.Elem()
		if kind.IsDictionary() {
			key, item = entryTypes(item)
		}
	case reflect.Map:
		key, item = t.Key(), t.Elem()
	case reflect.Func:
		switch {
		case t.CanSeq2():
			key, item = t.In(0).In(0), t.In(0).In(1)
		case t.CanSeq():
			item = t.In(0).In(0)
		}
	}

	switch {
	case kind == CollectionArray:
		if t.Kind() != reflect.Slice && t.Kind() != reflect.Array {
			return fmt.Errorf("array type %s is not a slice or array", t)
		}
	case c.enumerator != nil:
	case kind.IsDictionary():
		if t.Kind() == reflect.Func && !t.CanSeq2() || t.Kind() != reflect.Func && key == nil {
			return fmt.Errorf("dictionary type %s has no entries", t)
		}
	default:
		if t.Kind() == reflect.Map || item == nil || t.Kind() == reflect.Func && !t.CanSeq() {
			return fmt.Errorf("collection type %s has no items", t)
		}
	}

	if !kind.IsGeneric() {
		key, item = typeOfAny, typeOfAny
	}
	if key == nil {
		key = typeOfAny
	}
	if item == nil {
		item = typeOfAny
	}
	if c.keyType != nil {
		key = c.keyType
	}
	if c.itemType != nil {
		item = c.itemType
	}
	c.itemType = item
	if kind.IsDictionary() {
		c.keyType = key
	} else {
		c.keyType = nil
	}

	for _, dep := range []reflect.Type{c.keyType, c.itemType} {
		if dep == nil {
			continue
		}
		if inner, ok := r.byType[stripPointers(dep)]; ok && inner.kind == KindCollection {
			if err := r.bindCollection(inner); err != nil {
				return err
			}
		}
	}

	if len(c.keyName) == 0 {
		c.keyName = "Key"
	}
	if len(c.valueName) == 0 {
		c.valueName = "Value"
	}
	if len(c.itemName) == 0 {
		if kind.IsDictionary() {
			c.itemName = "KeyValueOf" + r.TypeName(c.keyType) + r.TypeName(c.itemType)
		} else {
			c.itemName = r.TypeName(c.itemType)
		}
	}
	if len(c.name) == 0 {
		c.name = "ArrayOf" + c.itemName
	}
	if len(c.namespace) == 0 {
		c.namespace = ArraysNamespace
	}
	if !c.childNamespaceSet {
		c.childNamespace = r.childNamespace(c.itemType, c.namespace)
	}

	r.binding[c] = true
	return nil
}

// entryTypes returns the Key and Value field types of a dictionary entry
// struct.
func entryTypes(t reflect.Type) (key, value reflect.Type) {
	t = stripPointers(t)
	if t.Kind() != reflect.Struct {
		return nil, nil
	}
	k, ok := t.FieldByName("Key")
	if !ok {
		return nil, nil
	}
	v, ok := t.FieldByName("Value")
	if !ok {
		return nil, nil
	}
	return k.Type, v.Type
}

func (r *Registry) buildConflicts() {
	trees := map[*Contract][]*Contract{}
	var roots []*Contract
	for _, c := range r.contracts {
		if c.kind != KindClass {
			continue
		}
		root := c.hierarchy[0]
		if _, ok := trees[root]; !ok {
			roots = append(roots, root)
		}
		trees[root] = append(trees[root], c)
	}

	for _, root := range roots {
		byName := map[string][]*Member{}
		for _, c := range trees[root] {
			for _, m := range c.members {
				byName[m.name] = append(byName[m.name], m)
			}
		}
		for _, same := range byName {
			if len(same) < 2 {
				continue
			}
			for _, m := range same {
				others := make([]*Member, 0, len(same)-1)
				for _, o := range same {
					if o != m {
						others = append(others, o)
					}
				}
				r.conflicts[m] = others
			}
		}
	}
}

func (r *Registry) buildTables(c *Contract) nameTables {
	var t nameTables
	for _, level := range c.hierarchy {
		t.contractNamespaces = append(t.contractNamespaces, level.namespace)
		for _, m := range level.members {
			t.memberNames = append(t.memberNames, m.name)
			t.memberNamespaces = append(t.memberNamespaces, level.namespace)
			t.childNamespaces = append(t.childNamespaces, r.ChildElementNamespace(m))
		}
	}
	return t
}

// Contracts returns the registered contracts, bases before derived classes.
func (r *Registry) Contracts() []*Contract { return r.contracts }

// Lookup returns the contract of type t, including the built-in primitive
// contracts and anyType for interface types.
func (r *Registry) Lookup(t reflect.Type) (*Contract, bool) {
	if t == nil {
		return nil, false
	}
	if c, ok := r.byType[t]; ok {
		return c, true
	}
	if c, ok := builtins[t]; ok {
		return c, true
	}
	if t.Kind() == reflect.Interface {
		return anyType, true
	}
	return nil, false
}

// IsSerializable reports whether values declared as t can be written, so a
// nil value of t may be written as a nil marker.
func (r *Registry) IsSerializable(t reflect.Type) bool {
	t = stripPointers(t)
	if t == typeOfUnsafePointer {
		t = typeOfPointerSurrogate
	}
	_, ok := r.Lookup(t)
	return ok
}

// TypeName returns the contract name of t, used for default item names.
func (r *Registry) TypeName(t reflect.Type) string {
	t = stripPointers(t)
	if c, ok := r.Lookup(t); ok {
		if len(c.name) == 0 && c.kind == KindCollection {
			return "ArrayOf" + r.TypeName(c.itemType)
		}
		return c.name
	}
	if n := t.Name(); len(n) != 0 {
		return n
	}
	return t.Kind().String()
}

// ConflictingMembers returns the other members of m's inheritance tree
// sharing its name.
func (r *Registry) ConflictingMembers(m *Member) []*Member {
	return r.conflicts[m]
}

// HasConflictingType reports whether a member sharing m's name elsewhere in
// its inheritance tree has a different type. Such members are always written
// with a type marker.
func (r *Registry) HasConflictingType(m *Member) bool {
	for _, o := range r.conflicts[m] {
		if o.typ != m.typ {
			return true
		}
	}
	return false
}

// ChildElementNamespace returns the namespace declared on m's element for
// the members or items of its value, or the empty string.
func (r *Registry) ChildElementNamespace(m *Member) string {
	return r.childNamespace(m.typ, m.Namespace())
}

func (r *Registry) childNamespace(t reflect.Type, parent string) string {
	if t == nil {
		return ""
	}
	t = stripPointers(t)
	if t.Kind() == reflect.Interface {
		return ""
	}
	c, ok := r.byType[t]
	if !ok || c.kind != KindClass && c.kind != KindCollection {
		return ""
	}
	if len(c.namespace) == 0 || c.namespace == parent {
		return ""
	}
	return c.namespace
}

func stripPointers(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
