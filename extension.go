package datacontract

// ExtensionDataMember is member data carried through for a future version of
// a contract. It is written after the member slot at MemberIndex, or before
// the first member when MemberIndex is -1.
type ExtensionDataMember struct {
	Name        string
	Namespace   string
	MemberIndex int

	// Value is written through its runtime contract with a type marker.
	Value any

	// XML is a complete element written verbatim when Value is nil.
	XML string
}

// ExtensionDataObject holds the extension data of one value.
type ExtensionDataObject struct {
	Members []ExtensionDataMember
}

// Add appends a member.
func (o *ExtensionDataObject) Add(m ExtensionDataMember) {
	o.Members = append(o.Members, m)
}

// At returns the members written after the member slot index, in order. It
// is safe to call on a nil object.
func (o *ExtensionDataObject) At(index int) []ExtensionDataMember {
	if o == nil {
		return nil
	}
	var at []ExtensionDataMember
	for _, m := range o.Members {
		if m.MemberIndex == index {
			at = append(at, m)
		}
	}
	return at
}

// ExtensibleDataObject is implemented by values of contracts configured
// WithExtensionData.
type ExtensibleDataObject interface {
	ExtensionData() *ExtensionDataObject
}

// Serializable is implemented by values of contracts configured
// WithISerializable. GetObjectData adds the values to write to info.
type Serializable interface {
	GetObjectData(info *SerializationInfo) error
}

// SerializationEntry is a named value of a SerializationInfo.
type SerializationEntry struct {
	Name  string
	Value any
}

// SerializationInfo collects the values a Serializable writes.
type SerializationInfo struct {
	entries []SerializationEntry
}

// AddValue appends a named value.
func (i *SerializationInfo) AddValue(name string, v any) {
	i.entries = append(i.entries, SerializationEntry{Name: name, Value: v})
}

// Entries returns the values in the order they were added.
func (i *SerializationInfo) Entries() []SerializationEntry { return i.entries }

// Len returns the number of values.
func (i *SerializationInfo) Len() int { return len(i.entries) }

// PointerSurrogate boxes an unsafe.Pointer so it can be written through a
// registered contract.
type PointerSurrogate struct {
	Address uintptr
}
