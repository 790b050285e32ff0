package generator

import (
	"reflect"
	"unsafe"

	datacontract "github.com/aws/smithy-datacontract"
)

var (
	typeOfAny              = reflect.TypeFor[any]()
	typeOfUnsafePointer    = reflect.TypeFor[unsafe.Pointer]()
	typeOfPointerSurrogate = reflect.TypeFor[datacontract.PointerSurrogate]()
)

// unwrap strips pointer and interface layers from v and returns the
// innermost value, or absent when a layer is nil. Nil slices, maps and
// functions are absent too. An unsafe.Pointer is boxed into a
// PointerSurrogate.
func unwrap(v reflect.Value) (reflect.Value, bool) {
	for {
		if !v.IsValid() {
			return v, true
		}

		switch v.Kind() {
		case reflect.Pointer, reflect.Interface:
			if v.IsNil() {
				return v, true
			}
			v = v.Elem()
		case reflect.Slice, reflect.Map, reflect.Func:
			return v, v.IsNil()
		case reflect.UnsafePointer:
			return reflect.ValueOf(datacontract.PointerSurrogate{Address: uintptr(v.UnsafePointer())}), false
		default:
			return v, false
		}
	}
}

// declaredType returns the type a value declared as t is compared with to
// decide whether a type marker is needed.
func declaredType(t reflect.Type) reflect.Type {
	if t == nil {
		return typeOfAny
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == typeOfUnsafePointer {
		return typeOfPointerSurrogate
	}
	return t
}

// objectKey identifies a class or collection value for reference tracking
// and cycle detection. Values without identity report false.
func objectKey(v reflect.Value) (datacontract.ObjectKey, bool) {
	switch v.Kind() {
	case reflect.Map:
		return datacontract.ObjectKey{Addr: v.Pointer(), Type: v.Type()}, true
	case reflect.Slice:
		if v.Len() == 0 {
			return datacontract.ObjectKey{}, false
		}
		return datacontract.ObjectKey{Addr: v.Pointer(), Type: v.Type()}, true
	case reflect.Func:
		return datacontract.ObjectKey{}, false
	}
	if v.CanAddr() && v.Type().Size() != 0 {
		return datacontract.ObjectKey{Addr: v.UnsafeAddr(), Type: v.Type()}, true
	}
	return datacontract.ObjectKey{}, false
}
