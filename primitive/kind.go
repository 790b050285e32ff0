package primitive

import (
	"math/big"
	"reflect"
	"time"
)

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind identifies a scalar type that has a direct writer method.
type Kind int

const (
	_ Kind = iota // zero value is not a primitive

	KindBoolean
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindUint
	KindUintptr
	KindFloat32
	KindFloat64
	KindString
	KindDateTime
	KindDuration
	KindBase64
	KindDecimal
	KindInteger

	// KindTotal is the number of kinds defined, including the zero value.
	KindTotal = int(iota)
)

// XSDNamespace is the namespace of the XML Schema built-in datatypes.
const XSDNamespace = "http://www.w3.org/2001/XMLSchema"

var xsdNames = [KindTotal]string{
	KindBoolean:  "boolean",
	KindInt8:     "byte",
	KindInt16:    "short",
	KindInt32:    "int",
	KindInt64:    "long",
	KindInt:      "long",
	KindUint8:    "unsignedByte",
	KindUint16:   "unsignedShort",
	KindUint32:   "unsignedInt",
	KindUint64:   "unsignedLong",
	KindUint:     "unsignedLong",
	KindUintptr:  "unsignedLong",
	KindFloat32:  "float",
	KindFloat64:  "double",
	KindString:   "string",
	KindDateTime: "dateTime",
	KindDuration: "duration",
	KindBase64:   "base64Binary",
	KindDecimal:  "decimal",
	KindInteger:  "integer",
}

// XSDName returns the XML Schema datatype name of the kind.
func (k Kind) XSDName() string {
	if k <= 0 || int(k) >= KindTotal {
		return ""
	}
	return xsdNames[k]
}

var (
	typeOfTime     = reflect.TypeOf(time.Time{})
	typeOfDuration = reflect.TypeOf(time.Duration(0))
	typeOfBytes    = reflect.TypeOf([]byte(nil))
	typeOfDecimal  = reflect.TypeOf(big.Float{})
	typeOfInteger  = reflect.TypeOf(big.Int{})
)

// FromReflectType returns the primitive kind of rtype, or zero if rtype is
// not a primitive. Only the exact built-in types map to a kind; named types
// such as enums are not primitives even when their underlying type is.
func FromReflectType(rtype reflect.Type) Kind {
	if rtype == nil {
		return 0
	}

	switch rtype {
	case reflect.TypeOf(false):
		return KindBoolean
	case reflect.TypeOf(int8(0)):
		return KindInt8
	case reflect.TypeOf(int16(0)):
		return KindInt16
	case reflect.TypeOf(int32(0)):
		return KindInt32
	case reflect.TypeOf(int64(0)):
		return KindInt64
	case reflect.TypeOf(int(0)):
		return KindInt
	case reflect.TypeOf(uint8(0)):
		return KindUint8
	case reflect.TypeOf(uint16(0)):
		return KindUint16
	case reflect.TypeOf(uint32(0)):
		return KindUint32
	case reflect.TypeOf(uint64(0)):
		return KindUint64
	case reflect.TypeOf(uint(0)):
		return KindUint
	case reflect.TypeOf(uintptr(0)):
		return KindUintptr
	case reflect.TypeOf(float32(0)):
		return KindFloat32
	case reflect.TypeOf(float64(0)):
		return KindFloat64
	case reflect.TypeOf(""):
		return KindString
	case typeOfTime:
		return KindDateTime
	case typeOfDuration:
		return KindDuration
	case typeOfBytes:
		return KindBase64
	case typeOfDecimal:
		return KindDecimal
	case typeOfInteger:
		return KindInteger
	}

	return 0
}
