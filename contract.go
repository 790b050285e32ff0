package datacontract

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aws/smithy-datacontract/primitive"
)

//go:generate go tool stringer -type=ContractKind,CollectionKind -output=kind_string.go

// ContractKind is the shape of a data contract.
type ContractKind int

// Enumerates ContractKind.
const (
	KindPrimitive ContractKind = iota
	KindClass
	KindCollection
	KindEnum
)

// CollectionKind is the iteration protocol of a collection contract.
type CollectionKind int

// Enumerates CollectionKind.
const (
	CollectionArray CollectionKind = iota
	CollectionCollection
	CollectionList
	CollectionDictionary
	CollectionGenericCollection
	CollectionGenericList
	CollectionGenericDictionary
	CollectionGenericEnumerable
	CollectionEnumerable
)

// IsDictionary reports whether items of the kind are key/value entries.
func (k CollectionKind) IsDictionary() bool {
	return k == CollectionDictionary || k == CollectionGenericDictionary
}

// IsGeneric reports whether the kind carries static item types. Items of the
// other kinds are declared as any.
func (k CollectionKind) IsGeneric() bool {
	switch k {
	case CollectionArray, CollectionGenericCollection, CollectionGenericList,
		CollectionGenericDictionary, CollectionGenericEnumerable:
		return true
	}
	return false
}

// Callback is a serialization lifecycle hook. v is a pointer to the value of
// the contract level that registered the hook.
type Callback func(v any, sc *Context) error

// EnumMember is a named value of an enum contract.
type EnumMember struct {
	Name  string
	Value int64
}

// Contract describes how a Go type maps to XML. Contracts are built with
// the New*Contract functions and become immutable once added to a Registry.
type Contract struct {
	kind      ContractKind
	typ       reflect.Type
	name      string
	namespace string

	// primitive
	primitiveKind primitive.Kind

	// class
	members       []*Member
	base          *Contract
	baseField     string
	baseIndex     []int
	readOnly      bool
	iserializable bool
	extensionData bool
	isReference   bool
	onSerializing Callback
	onSerialized  Callback

	// collection
	collectionKind    CollectionKind
	itemType          reflect.Type
	keyType           reflect.Type
	itemName          string
	keyName           string
	valueName         string
	enumerator        func(reflect.Value) Cursor
	counter           func(reflect.Value) int
	childNamespace    string
	childNamespaceSet bool

	// enum
	enumMembers []EnumMember
	flags       bool

	// set when the contract is added to a registry
	registry  *Registry
	id        int
	hierarchy []*Contract
	tables    nameTables
}

// ContractOptions configures a new Contract.
type ContractOptions struct {
	members       []*Member
	base          *Contract
	baseField     string
	readOnly      bool
	iserializable bool
	extensionData bool
	isReference   bool
	onSerializing Callback
	onSerialized  Callback

	itemType          reflect.Type
	keyType           reflect.Type
	itemName          string
	keyName           string
	valueName         string
	enumerator        func(reflect.Value) Cursor
	counter           func(reflect.Value) int
	childNamespace    string
	childNamespaceSet bool

	flags bool
}

// WithMembers appends members to a class contract in declared order.
func WithMembers(members ...*Member) func(*ContractOptions) {
	return func(o *ContractOptions) {
		o.members = append(o.members, members...)
	}
}

// WithBase sets the base class contract. field names the embedded struct
// field of the class type that holds the base level's value.
func WithBase(base *Contract, field string) func(*ContractOptions) {
	return func(o *ContractOptions) {
		o.base = base
		o.baseField = field
	}
}

// WithReadOnly marks the class type as immutable. Read-only contracts are
// serialized only when the context permits it.
func WithReadOnly() func(*ContractOptions) {
	return func(o *ContractOptions) {
		o.readOnly = true
	}
}

// WithISerializable delegates serialization of the class to its
// Serializable implementation.
func WithISerializable() func(*ContractOptions) {
	return func(o *ContractOptions) {
		o.iserializable = true
	}
}

// WithExtensionData writes the ExtensionDataObject of values implementing
// ExtensibleDataObject between members.
func WithExtensionData() func(*ContractOptions) {
	return func(o *ContractOptions) {
		o.extensionData = true
	}
}

// WithIsReference preserves object identity for the class: repeated
// occurrences of one value are written as references to the first.
func WithIsReference() func(*ContractOptions) {
	return func(o *ContractOptions) {
		o.isReference = true
	}
}

// WithOnSerializing registers the hook called before members of this level
// are written.
func WithOnSerializing(fn Callback) func(*ContractOptions) {
	return func(o *ContractOptions) {
		o.onSerializing = fn
	}
}

// WithOnSerialized registers the hook called after all members are written.
func WithOnSerialized(fn Callback) func(*ContractOptions) {
	return func(o *ContractOptions) {
		o.onSerialized = fn
	}
}

// WithItemType overrides the declared item type of a collection. For
// dictionaries this is the value type.
func WithItemType(t reflect.Type) func(*ContractOptions) {
	return func(o *ContractOptions) {
		o.itemType = t
	}
}

// WithKeyType overrides the declared key type of a dictionary.
func WithKeyType(t reflect.Type) func(*ContractOptions) {
	return func(o *ContractOptions) {
		o.keyType = t
	}
}

// WithItemName sets the element name wrapping each collection item.
func WithItemName(name string) func(*ContractOptions) {
	return func(o *ContractOptions) {
		o.itemName = name
	}
}

// WithKeyValueNames sets the key and value element names of a dictionary.
func WithKeyValueNames(key, value string) func(*ContractOptions) {
	return func(o *ContractOptions) {
		o.keyName = key
		o.valueName = value
	}
}

// WithEnumerator sets the accessor returning an iteration cursor over a
// collection value. Cursors of dictionaries yield KeyValue items, or structs
// with Key and Value fields.
func WithEnumerator(fn func(v reflect.Value) Cursor) func(*ContractOptions) {
	return func(o *ContractOptions) {
		o.enumerator = fn
	}
}

// WithCounter sets the hook returning the number of items in a collection
// value, so the item quota is charged once per collection.
func WithCounter(fn func(v reflect.Value) int) func(*ContractOptions) {
	return func(o *ContractOptions) {
		o.counter = fn
	}
}

// WithChildElementNamespace sets the namespace declared on the collection
// element for its items' children. The empty string disables the
// declaration.
func WithChildElementNamespace(ns string) func(*ContractOptions) {
	return func(o *ContractOptions) {
		o.childNamespace = ns
		o.childNamespaceSet = true
	}
}

// WithFlags marks an enum as a bit set written as space separated names.
func WithFlags() func(*ContractOptions) {
	return func(o *ContractOptions) {
		o.flags = true
	}
}

func applyOptions(opts []func(*ContractOptions)) ContractOptions {
	var o ContractOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewClassContract returns a contract for the struct type t.
func NewClassContract(t reflect.Type, name, namespace string, opts ...func(*ContractOptions)) *Contract {
	o := applyOptions(opts)
	return &Contract{
		kind:          KindClass,
		typ:           t,
		name:          name,
		namespace:     namespace,
		members:       o.members,
		base:          o.base,
		baseField:     o.baseField,
		readOnly:      o.readOnly,
		iserializable: o.iserializable,
		extensionData: o.extensionData,
		isReference:   o.isReference,
		onSerializing: o.onSerializing,
		onSerialized:  o.onSerialized,
	}
}

// NewCollectionContract returns a contract for the collection type t. Empty
// names default from the item type, e.g. ArrayOfint.
func NewCollectionContract(t reflect.Type, kind CollectionKind, name, namespace string, opts ...func(*ContractOptions)) *Contract {
	o := applyOptions(opts)
	return &Contract{
		kind:              KindCollection,
		typ:               t,
		name:              name,
		namespace:         namespace,
		collectionKind:    kind,
		itemType:          o.itemType,
		keyType:           o.keyType,
		itemName:          o.itemName,
		keyName:           o.keyName,
		valueName:         o.valueName,
		enumerator:        o.enumerator,
		counter:           o.counter,
		childNamespace:    o.childNamespace,
		childNamespaceSet: o.childNamespaceSet,
	}
}

// NewEnumContract returns a contract for the integer type t.
func NewEnumContract(t reflect.Type, name, namespace string, members []EnumMember, opts ...func(*ContractOptions)) *Contract {
	o := applyOptions(opts)
	return &Contract{
		kind:        KindEnum,
		typ:         t,
		name:        name,
		namespace:   namespace,
		enumMembers: append([]EnumMember(nil), members...),
		flags:       o.flags,
	}
}

// NewPrimitiveContract returns a contract writing the named scalar type t as
// its underlying primitive kind.
func NewPrimitiveContract(t reflect.Type, name, namespace string) *Contract {
	return &Contract{
		kind:          KindPrimitive,
		typ:           t,
		name:          name,
		namespace:     namespace,
		primitiveKind: underlyingKind(t),
	}
}

// Kind returns the contract's kind.
func (c *Contract) Kind() ContractKind { return c.kind }

// Type returns the Go type the contract describes.
func (c *Contract) Type() reflect.Type { return c.typ }

// Name returns the XML name of the contract.
func (c *Contract) Name() string { return c.name }

// Namespace returns the XML namespace of the contract.
func (c *Contract) Namespace() string { return c.namespace }

// Registry returns the registry the contract belongs to, nil until
// registered.
func (c *Contract) Registry() *Registry { return c.registry }

// ID returns the contract's position within its registry.
func (c *Contract) ID() int { return c.id }

func (c *Contract) String() string {
	if len(c.namespace) == 0 {
		return c.name
	}
	return "{" + c.namespace + "}" + c.name
}

// PrimitiveKind returns the scalar kind of a primitive contract.
func (c *Contract) PrimitiveKind() primitive.Kind { return c.primitiveKind }

// Members returns the members declared at this level, in order.
func (c *Contract) Members() []*Member { return c.members }

// Base returns the base class contract, or nil.
func (c *Contract) Base() *Contract { return c.base }

// BaseIndex returns the index path of the embedded base field.
func (c *Contract) BaseIndex() []int { return c.baseIndex }

// Hierarchy returns the inheritance chain of a class, root base first and c
// last.
func (c *Contract) Hierarchy() []*Contract { return c.hierarchy }

// IsReadOnly reports whether the class type is immutable.
func (c *Contract) IsReadOnly() bool { return c.readOnly }

// IsISerializable reports whether the class writes itself through
// Serializable.
func (c *Contract) IsISerializable() bool { return c.iserializable }

// HasExtensionData reports whether values carry an ExtensionDataObject.
func (c *Contract) HasExtensionData() bool { return c.extensionData }

// IsReference reports whether object identity is preserved.
func (c *Contract) IsReference() bool { return c.isReference }

// OnSerializing returns the level's pre-serialization hook, or nil.
func (c *Contract) OnSerializing() Callback { return c.onSerializing }

// OnSerialized returns the level's post-serialization hook, or nil.
func (c *Contract) OnSerialized() Callback { return c.onSerialized }

// ContractNamespaces returns the namespace of each hierarchy level, indexed
// by inheritance depth.
func (c *Contract) ContractNamespaces() []string { return c.tables.contractNamespaces }

// MemberNames returns the element name of every member of the hierarchy,
// indexed by global member index.
func (c *Contract) MemberNames() []string { return c.tables.memberNames }

// MemberNamespaces returns the element namespace of every member of the
// hierarchy, indexed by global member index.
func (c *Contract) MemberNamespaces() []string { return c.tables.memberNamespaces }

// ChildElementNamespaces returns the namespace declared on each member
// element for its children, indexed by global member index. Empty entries
// declare nothing.
func (c *Contract) ChildElementNamespaces() []string { return c.tables.childNamespaces }

// CollectionKind returns the iteration protocol of a collection.
func (c *Contract) CollectionKind() CollectionKind { return c.collectionKind }

// ItemType returns the declared item type of a collection. For dictionaries
// this is the value type.
func (c *Contract) ItemType() reflect.Type { return c.itemType }

// KeyType returns the declared key type of a dictionary.
func (c *Contract) KeyType() reflect.Type { return c.keyType }

// ItemName returns the element name wrapping each item.
func (c *Contract) ItemName() string { return c.itemName }

// KeyName returns the key element name of a dictionary entry.
func (c *Contract) KeyName() string { return c.keyName }

// ValueName returns the value element name of a dictionary entry.
func (c *Contract) ValueName() string { return c.valueName }

// ChildElementNamespace returns the namespace declared on the collection
// element, or the empty string.
func (c *Contract) ChildElementNamespace() string { return c.childNamespace }

// EnumMembers returns the named values of an enum.
func (c *Contract) EnumMembers() []EnumMember { return c.enumMembers }

// IsFlags reports whether the enum is a bit set.
func (c *Contract) IsFlags() bool { return c.flags }

// FormatEnum returns the XML text of the enum value v.
func (c *Contract) FormatEnum(v reflect.Value) (string, error) {
	var n int64
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n = v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n = int64(v.Uint())
	default:
		return "", &UnsupportedTypeError{Type: v.Type(), Reason: "enum value is not an integer"}
	}

	for _, m := range c.enumMembers {
		if m.Value == n {
			return m.Name, nil
		}
	}
	if !c.flags {
		return "", &InvalidEnumValueError{Contract: c.String(), Value: n}
	}
	if n == 0 {
		return "", nil
	}

	var names []string
	remaining := uint64(n)
	for _, m := range c.enumMembers {
		bitsOf := uint64(m.Value)
		if bitsOf == 0 || bitsOf&remaining != bitsOf {
			continue
		}
		names = append(names, m.Name)
		remaining &^= bitsOf
	}
	if remaining != 0 {
		return "", &InvalidEnumValueError{Contract: c.String(), Value: n}
	}

	return strings.Join(names, " "), nil
}

// underlyingKind returns the primitive kind of t's underlying type.
func underlyingKind(t reflect.Type) primitive.Kind {
	if t == nil {
		return 0
	}
	if k := primitive.FromReflectType(t); k != 0 {
		return k
	}

	switch t.Kind() {
	case reflect.Bool:
		return primitive.KindBoolean
	case reflect.Int8:
		return primitive.KindInt8
	case reflect.Int16:
		return primitive.KindInt16
	case reflect.Int32:
		return primitive.KindInt32
	case reflect.Int64:
		return primitive.KindInt64
	case reflect.Int:
		return primitive.KindInt
	case reflect.Uint8:
		return primitive.KindUint8
	case reflect.Uint16:
		return primitive.KindUint16
	case reflect.Uint32:
		return primitive.KindUint32
	case reflect.Uint64:
		return primitive.KindUint64
	case reflect.Uint:
		return primitive.KindUint
	case reflect.Uintptr:
		return primitive.KindUintptr
	case reflect.Float32:
		return primitive.KindFloat32
	case reflect.Float64:
		return primitive.KindFloat64
	case reflect.String:
		return primitive.KindString
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return primitive.KindBase64
		}
	}

	return 0
}

func (c *Contract) validateEnum() error {
	switch c.typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
	default:
		return fmt.Errorf("enum type %s is not an integer type", c.typ)
	}

	seen := make(map[string]struct{}, len(c.enumMembers))
	for _, m := range c.enumMembers {
		if len(m.Name) == 0 {
			return fmt.Errorf("enum member with value %d has no name", m.Value)
		}
		if _, ok := seen[m.Name]; ok {
			return fmt.Errorf("duplicate enum member %s", m.Name)
		}
		seen[m.Name] = struct{}{}
	}
	return nil
}
