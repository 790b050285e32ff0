package datacontract

import (
	"math"
	"reflect"
	"strconv"

	"github.com/google/uuid"
)

// DefaultMaxItemsInObjectGraph is the item quota of contexts that do not
// configure one.
const DefaultMaxItemsInObjectGraph = math.MaxInt32

// ContextOptions configures a Context.
type ContextOptions struct {
	// MaxItemsInObjectGraph bounds the members, items and entries written by
	// one call. Zero uses DefaultMaxItemsInObjectGraph.
	MaxItemsInObjectGraph int

	// SerializeReadOnlyTypes permits contracts marked read-only.
	SerializeReadOnlyTypes bool

	// IgnoreExtensionDataObject skips extension data.
	IgnoreExtensionDataObject bool
}

// ObjectKey identifies a value in an object graph by address and type.
type ObjectKey struct {
	Addr uintptr
	Type reflect.Type
}

// Context is the state of one serialization call. A Context must not be
// shared between concurrent calls.
type Context struct {
	id      string
	options ContextOptions

	itemCount int
	getOnly   bool

	stack   map[ObjectKey]struct{}
	refs    map[ObjectKey]string
	nextRef int
}

// NewContext returns a context for one serialization call.
func NewContext(optFns ...func(*ContextOptions)) *Context {
	var o ContextOptions
	for _, fn := range optFns {
		fn(&o)
	}
	if o.MaxItemsInObjectGraph <= 0 {
		o.MaxItemsInObjectGraph = DefaultMaxItemsInObjectGraph
	}

	return &Context{
		id:      uuid.NewString(),
		options: o,
	}
}

// ID returns the identifier of the call, for correlating log entries.
func (sc *Context) ID() string { return sc.id }

// MaxItemsInObjectGraph returns the item quota.
func (sc *Context) MaxItemsInObjectGraph() int { return sc.options.MaxItemsInObjectGraph }

// ItemCount returns the number of items charged so far.
func (sc *Context) ItemCount() int { return sc.itemCount }

// IncrementItemCount charges n items against the quota, failing once the
// count exceeds it.
func (sc *Context) IncrementItemCount(n int) error {
	sc.itemCount += n
	if sc.itemCount > sc.options.MaxItemsInObjectGraph {
		return &QuotaExceededError{Max: sc.options.MaxItemsInObjectGraph}
	}
	return nil
}

// SerializeReadOnlyTypes reports whether read-only contracts may be written.
func (sc *Context) SerializeReadOnlyTypes() bool { return sc.options.SerializeReadOnlyTypes }

// CheckReadOnly fails for a read-only contract unless the context permits
// read-only types.
func (sc *Context) CheckReadOnly(c *Contract) error {
	if c == nil || !c.readOnly || sc.options.SerializeReadOnlyTypes {
		return nil
	}
	return &ReadOnlyContractError{Contract: c.String(), Type: c.typ}
}

// WriteNull writes the nil marker on the open start tag for an absent value
// of type t. isSerializable is the caller's policy decision on whether t may
// be written at all.
func (sc *Context) WriteNull(w XMLWriter, t reflect.Type, isSerializable bool) error {
	if !isSerializable {
		return &UnsupportedTypeError{Type: t, Reason: "no contract for nil value"}
	}
	return w.WriteAttributeString("i", "nil", XSINamespace, "true")
}

// ExtensionData returns the extension data of the class value v, nil when
// there is none or the context ignores extension data.
func (sc *Context) ExtensionData(v reflect.Value) *ExtensionDataObject {
	if sc.options.IgnoreExtensionDataObject {
		return nil
	}

	if v.CanAddr() {
		if e, ok := v.Addr().Interface().(ExtensibleDataObject); ok {
			return e.ExtensionData()
		}
	}
	if e, ok := v.Interface().(ExtensibleDataObject); ok {
		return e.ExtensionData()
	}
	return nil
}

// StoreIsGetOnlyCollection records that the member being written is a
// get-only collection.
func (sc *Context) StoreIsGetOnlyCollection() { sc.getOnly = true }

// IsGetOnlyCollection reports whether the member being written is a get-only
// collection.
func (sc *Context) IsGetOnlyCollection() bool { return sc.getOnly }

// ResetIsGetOnlyCollection clears the get-only collection flag.
func (sc *Context) ResetIsGetOnlyCollection() { sc.getOnly = false }

// PushObject records key as being written. It fails with a CycleError when
// key is already on the stack.
func (sc *Context) PushObject(key ObjectKey) error {
	if _, ok := sc.stack[key]; ok {
		return &CycleError{Type: key.Type}
	}
	if sc.stack == nil {
		sc.stack = map[ObjectKey]struct{}{}
	}
	sc.stack[key] = struct{}{}
	return nil
}

// PopObject removes key from the stack of values being written.
func (sc *Context) PopObject(key ObjectKey) {
	delete(sc.stack, key)
}

// ReferenceID returns the reference identifier of key, assigning the next
// one on first use. seen reports whether key was already assigned.
func (sc *Context) ReferenceID(key ObjectKey) (id string, seen bool) {
	if id, ok := sc.refs[key]; ok {
		return id, true
	}
	if sc.refs == nil {
		sc.refs = map[ObjectKey]string{}
	}
	sc.nextRef++
	id = "i" + strconv.Itoa(sc.nextRef)
	sc.refs[key] = id
	return id, false
}
