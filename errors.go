package datacontract

import (
	"fmt"
	"reflect"
)

// RequiredMemberError is returned when a required member holds its type's
// zero value and is configured not to emit it.
type RequiredMemberError struct {
	Contract string
	Member   string
}

func (e *RequiredMemberError) Error() string {
	return fmt.Sprintf("datacontract: required member %s of %s has its default value", e.Member, e.Contract)
}

// ReadOnlyContractError is returned when a read-only contract is serialized
// by a context that does not permit read-only types.
type ReadOnlyContractError struct {
	Contract string
	Type     reflect.Type
}

func (e *ReadOnlyContractError) Error() string {
	return fmt.Sprintf("datacontract: type %s of read-only contract %s cannot be serialized", e.Type, e.Contract)
}

// UnsupportedTypeError is returned for values whose type has no contract or
// whose shape the contract cannot write.
type UnsupportedTypeError struct {
	Type   reflect.Type
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	if len(e.Reason) == 0 {
		return fmt.Sprintf("datacontract: unsupported type %v", e.Type)
	}
	return fmt.Sprintf("datacontract: unsupported type %v, %s", e.Type, e.Reason)
}

// QuotaExceededError is returned once more items than the context permits
// have been written.
type QuotaExceededError struct {
	Max int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("datacontract: maximum number of items in an object graph, %d, exceeded", e.Max)
}

// AuthorizationError is returned when a compiled writer would need access to
// unexported struct fields.
type AuthorizationError struct {
	Contract string
	Type     reflect.Type
	Field    string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("datacontract: compiled writer for %s cannot access unexported field %s of %s", e.Contract, e.Field, e.Type)
}

// CycleError is returned when a value that does not preserve object
// references contains itself.
type CycleError struct {
	Type reflect.Type
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("datacontract: object graph for type %s contains cycles and cannot be serialized without references", e.Type)
}

// InvalidEnumValueError is returned for enum values no enum member names.
type InvalidEnumValueError struct {
	Contract string
	Value    int64
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("datacontract: enum value %d is invalid for %s", e.Value, e.Contract)
}

// InvalidContractError is returned by NewRegistry for contracts that cannot
// describe their type.
type InvalidContractError struct {
	Contract string
	Err      error
}

func (e *InvalidContractError) Error() string {
	return fmt.Sprintf("datacontract: invalid contract %s, %v", e.Contract, e.Err)
}

func (e *InvalidContractError) Unwrap() error { return e.Err }
