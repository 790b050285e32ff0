package datacontract

import (
	"reflect"
)

// Getter reads a computed member from the value of its declaring level.
type Getter func(level reflect.Value) reflect.Value

// Member is a data member of one class contract level.
type Member struct {
	name              string
	field             string
	getter            Getter
	typ               reflect.Type
	emitDefault       bool
	required          bool
	getOnlyCollection bool

	// set when the owning contract is registered
	index      []int
	owner      *Contract
	globalSlot int
}

// MemberOptions configures a new Member.
type MemberOptions struct {
	emitDefault       bool
	required          bool
	getOnlyCollection bool
}

// EmitDefaultValue controls whether a member holding its type's zero value
// is written. Members emit default values unless configured otherwise.
func EmitDefaultValue(v bool) func(*MemberOptions) {
	return func(o *MemberOptions) {
		o.emitDefault = v
	}
}

// Required marks the member as required. A required member that is not
// emitted fails serialization.
func Required() func(*MemberOptions) {
	return func(o *MemberOptions) {
		o.required = true
	}
}

// GetOnlyCollection marks a collection member that is populated in place
// rather than assigned. Such members bypass reference tracking.
func GetOnlyCollection() func(*MemberOptions) {
	return func(o *MemberOptions) {
		o.getOnlyCollection = true
	}
}

func applyMemberOptions(opts []func(*MemberOptions)) MemberOptions {
	o := MemberOptions{emitDefault: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewMember returns a member written as the element name, read from the
// struct field of the declaring level. An empty field uses name.
func NewMember(name, field string, opts ...func(*MemberOptions)) *Member {
	o := applyMemberOptions(opts)
	if len(field) == 0 {
		field = name
	}
	return &Member{
		name:              name,
		field:             field,
		emitDefault:       o.emitDefault,
		required:          o.required,
		getOnlyCollection: o.getOnlyCollection,
	}
}

// NewAccessorMember returns a member whose value of type t is computed by
// get.
func NewAccessorMember(name string, t reflect.Type, get Getter, opts ...func(*MemberOptions)) *Member {
	o := applyMemberOptions(opts)
	return &Member{
		name:              name,
		getter:            get,
		typ:               t,
		emitDefault:       o.emitDefault,
		required:          o.required,
		getOnlyCollection: o.getOnlyCollection,
	}
}

// Name returns the element name of the member.
func (m *Member) Name() string { return m.name }

// FieldName returns the Go field the member reads, empty for accessor
// members.
func (m *Member) FieldName() string { return m.field }

// FieldIndex returns the index path of the member's field within its
// declaring level's struct type.
func (m *Member) FieldIndex() []int { return m.index }

// Getter returns the accessor of a computed member, or nil.
func (m *Member) Getter() Getter { return m.getter }

// Type returns the declared type of the member.
func (m *Member) Type() reflect.Type { return m.typ }

// EmitDefaultValue reports whether a zero value is written.
func (m *Member) EmitDefaultValue() bool { return m.emitDefault }

// IsRequired reports whether the member must be written.
func (m *Member) IsRequired() bool { return m.required }

// IsGetOnlyCollection reports whether the member is a get-only collection.
func (m *Member) IsGetOnlyCollection() bool { return m.getOnlyCollection }

// Owner returns the class contract level declaring the member.
func (m *Member) Owner() *Contract { return m.owner }

// Namespace returns the element namespace, the namespace of the declaring
// level.
func (m *Member) Namespace() string {
	if m.owner == nil {
		return ""
	}
	return m.owner.namespace
}

// Index returns the member's position across its hierarchy, counting the
// members of every base level first. Name tables and extension data are
// keyed by it.
func (m *Member) Index() int { return m.globalSlot }

// Value reads the member from level, the value of its declaring level.
func (m *Member) Value(level reflect.Value) reflect.Value {
	if m.getter != nil {
		return m.getter(level)
	}
	return level.FieldByIndex(m.index)
}
