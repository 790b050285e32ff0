package primitive

import (
	"fmt"
	"math/big"
	"reflect"
	"time"
)

// ContentWriter writes the text content of the currently open element, one
// method per scalar kind.
type ContentWriter interface {
	WriteBoolean(v bool) error
	WriteInt32(v int32) error
	WriteInt64(v int64) error
	WriteUint64(v uint64) error
	WriteFloat32(v float32) error
	WriteFloat64(v float64) error
	WriteString(v string) error
	WriteDateTime(v time.Time) error
	WriteDuration(v time.Duration) error
	WriteBase64(v []byte) error
	WriteDecimal(v *big.Float) error
	WriteInteger(v *big.Int) error
}

// ArrayWriter writes a whole array of scalars, each item wrapped in an
// element with the given name and namespace.
type ArrayWriter interface {
	WriteBooleanArray(itemName, itemNamespace string, v []bool) error
	WriteInt32Array(itemName, itemNamespace string, v []int32) error
	WriteInt64Array(itemName, itemNamespace string, v []int64) error
	WriteFloat32Array(itemName, itemNamespace string, v []float32) error
	WriteFloat64Array(itemName, itemNamespace string, v []float64) error
	WriteDecimalArray(itemName, itemNamespace string, v []big.Float) error
	WriteDateTimeArray(itemName, itemNamespace string, v []time.Time) error
}

// Writer is the scalar surface of a streaming XML writer.
type Writer interface {
	ContentWriter
	ArrayWriter
}

// ContentFunc writes v as element content.
type ContentFunc func(w ContentWriter, v reflect.Value) error

// ArrayFunc writes every item of the slice or array v.
type ArrayFunc func(w ArrayWriter, itemName, itemNamespace string, v reflect.Value) error

// Entry is a row of the dispatch table.
type Entry struct {
	Kind  Kind
	Type  reflect.Type
	Write ContentFunc
}

var table [KindTotal]Entry

func init() {
	register := func(k Kind, t reflect.Type, fn ContentFunc) {
		table[k] = Entry{Kind: k, Type: t, Write: fn}
	}

	writeInt := func(w ContentWriter, v reflect.Value) error { return w.WriteInt32(int32(v.Int())) }
	writeLong := func(w ContentWriter, v reflect.Value) error { return w.WriteInt64(v.Int()) }
	writeUnsigned := func(w ContentWriter, v reflect.Value) error { return w.WriteUint64(v.Uint()) }

	register(KindBoolean, reflect.TypeOf(false), func(w ContentWriter, v reflect.Value) error {
		return w.WriteBoolean(v.Bool())
	})
	register(KindInt8, reflect.TypeOf(int8(0)), writeInt)
	register(KindInt16, reflect.TypeOf(int16(0)), writeInt)
	register(KindInt32, reflect.TypeOf(int32(0)), writeInt)
	register(KindInt64, reflect.TypeOf(int64(0)), writeLong)
	register(KindInt, reflect.TypeOf(int(0)), writeLong)
	register(KindUint8, reflect.TypeOf(uint8(0)), writeUnsigned)
	register(KindUint16, reflect.TypeOf(uint16(0)), writeUnsigned)
	register(KindUint32, reflect.TypeOf(uint32(0)), writeUnsigned)
	register(KindUint64, reflect.TypeOf(uint64(0)), writeUnsigned)
	register(KindUint, reflect.TypeOf(uint(0)), writeUnsigned)
	register(KindUintptr, reflect.TypeOf(uintptr(0)), writeUnsigned)
	register(KindFloat32, reflect.TypeOf(float32(0)), func(w ContentWriter, v reflect.Value) error {
		return w.WriteFloat32(float32(v.Float()))
	})
	register(KindFloat64, reflect.TypeOf(float64(0)), func(w ContentWriter, v reflect.Value) error {
		return w.WriteFloat64(v.Float())
	})
	register(KindString, reflect.TypeOf(""), func(w ContentWriter, v reflect.Value) error {
		return w.WriteString(v.String())
	})
	register(KindDateTime, typeOfTime, func(w ContentWriter, v reflect.Value) error {
		return w.WriteDateTime(v.Interface().(time.Time))
	})
	register(KindDuration, typeOfDuration, func(w ContentWriter, v reflect.Value) error {
		return w.WriteDuration(time.Duration(v.Int()))
	})
	register(KindBase64, typeOfBytes, func(w ContentWriter, v reflect.Value) error {
		return w.WriteBase64(v.Bytes())
	})
	register(KindDecimal, typeOfDecimal, func(w ContentWriter, v reflect.Value) error {
		f := v.Interface().(big.Float)
		return w.WriteDecimal(&f)
	})
	register(KindInteger, typeOfInteger, func(w ContentWriter, v reflect.Value) error {
		i := v.Interface().(big.Int)
		return w.WriteInteger(&i)
	})
}

// Lookup returns the dispatch entry for t.
func Lookup(t reflect.Type) (Entry, bool) {
	k := FromReflectType(t)
	if k == 0 {
		return Entry{}, false
	}
	return table[k], true
}

// LookupKind returns the dispatch entry for k.
func LookupKind(k Kind) (Entry, bool) {
	if k <= 0 || int(k) >= KindTotal {
		return Entry{}, false
	}
	return table[k], true
}

// LookupArray returns the bulk array writer for collections whose item type is
// t. Only booleans, date-times, decimals, 32 and 64 bit integers and
// floating point numbers have one.
func LookupArray(t reflect.Type) (ArrayFunc, bool) {
	switch FromReflectType(t) {
	case KindBoolean:
		return func(w ArrayWriter, name, ns string, v reflect.Value) error {
			return w.WriteBooleanArray(name, ns, asSlice[bool](v))
		}, true
	case KindInt32:
		return func(w ArrayWriter, name, ns string, v reflect.Value) error {
			return w.WriteInt32Array(name, ns, asSlice[int32](v))
		}, true
	case KindInt64:
		return func(w ArrayWriter, name, ns string, v reflect.Value) error {
			return w.WriteInt64Array(name, ns, asSlice[int64](v))
		}, true
	case KindInt:
		return func(w ArrayWriter, name, ns string, v reflect.Value) error {
			ints := asSlice[int](v)
			longs := make([]int64, len(ints))
			for i, n := range ints {
				longs[i] = int64(n)
			}
			return w.WriteInt64Array(name, ns, longs)
		}, true
	case KindFloat32:
		return func(w ArrayWriter, name, ns string, v reflect.Value) error {
			return w.WriteFloat32Array(name, ns, asSlice[float32](v))
		}, true
	case KindFloat64:
		return func(w ArrayWriter, name, ns string, v reflect.Value) error {
			return w.WriteFloat64Array(name, ns, asSlice[float64](v))
		}, true
	case KindDecimal:
		return func(w ArrayWriter, name, ns string, v reflect.Value) error {
			return w.WriteDecimalArray(name, ns, asSlice[big.Float](v))
		}, true
	case KindDateTime:
		return func(w ArrayWriter, name, ns string, v reflect.Value) error {
			return w.WriteDateTimeArray(name, ns, asSlice[time.Time](v))
		}, true
	}

	return nil, false
}

// asSlice views the slice or array v as a []T. v may be a named slice type or
// a fixed size array; arrays that are not addressable are copied.
func asSlice[T any](v reflect.Value) []T {
	switch v.Kind() {
	case reflect.Array:
		if !v.CanAddr() {
			tmp := reflect.New(v.Type()).Elem()
			tmp.Set(v)
			v = tmp
		}
		v = v.Slice(0, v.Len())
	case reflect.Slice:
	default:
		panic(fmt.Sprintf("primitive: cannot view %s as a slice", v.Type()))
	}

	return v.Convert(reflect.TypeOf([]T(nil))).Interface().([]T)
}
