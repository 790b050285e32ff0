package primitive_test

import (
	"fmt"
	"math/big"
	"reflect"
	"time"

	"github.com/aws/smithy-datacontract/primitive"
)

func Example() {
	type Celsius float64
	type Empty struct{}

	fmt.Println(primitive.FromReflectType(reflect.TypeOf(int32(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf("")))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Time{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Duration(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(big.Float{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf([]byte(nil))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(Celsius(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(Empty{})))
	// Output:
	// KindInt32
	// KindString
	// KindDateTime
	// KindDuration
	// KindDecimal
	// KindBase64
	// Kind(0)
	// Kind(0)
}

func ExampleKind_XSDName() {
	fmt.Println(primitive.KindInt32.XSDName())
	fmt.Println(primitive.KindInt.XSDName())
	fmt.Println(primitive.KindBase64.XSDName())
	// Output:
	// int
	// long
	// base64Binary
}
