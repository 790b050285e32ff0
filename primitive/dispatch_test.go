package primitive

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type recorder struct {
	calls []string
}

func (r *recorder) add(format string, v ...interface{}) error {
	r.calls = append(r.calls, fmt.Sprintf(format, v...))
	return nil
}

func (r *recorder) WriteBoolean(v bool) error           { return r.add("bool %v", v) }
func (r *recorder) WriteInt32(v int32) error            { return r.add("int32 %v", v) }
func (r *recorder) WriteInt64(v int64) error            { return r.add("int64 %v", v) }
func (r *recorder) WriteUint64(v uint64) error          { return r.add("uint64 %v", v) }
func (r *recorder) WriteFloat32(v float32) error        { return r.add("float32 %v", v) }
func (r *recorder) WriteFloat64(v float64) error        { return r.add("float64 %v", v) }
func (r *recorder) WriteString(v string) error          { return r.add("string %v", v) }
func (r *recorder) WriteDateTime(v time.Time) error     { return r.add("time %v", v.Unix()) }
func (r *recorder) WriteDuration(v time.Duration) error { return r.add("duration %v", v) }
func (r *recorder) WriteBase64(v []byte) error          { return r.add("bytes %q", v) }
func (r *recorder) WriteDecimal(v *big.Float) error     { return r.add("decimal %v", v.Text('f', 2)) }
func (r *recorder) WriteInteger(v *big.Int) error       { return r.add("integer %v", v) }

func (r *recorder) WriteBooleanArray(name, ns string, v []bool) error {
	return r.add("[]bool %s %v", name, v)
}
func (r *recorder) WriteInt32Array(name, ns string, v []int32) error {
	return r.add("[]int32 %s %v", name, v)
}
func (r *recorder) WriteInt64Array(name, ns string, v []int64) error {
	return r.add("[]int64 %s %v", name, v)
}
func (r *recorder) WriteFloat32Array(name, ns string, v []float32) error {
	return r.add("[]float32 %s %v", name, v)
}
func (r *recorder) WriteFloat64Array(name, ns string, v []float64) error {
	return r.add("[]float64 %s %v", name, v)
}
func (r *recorder) WriteDecimalArray(name, ns string, v []big.Float) error {
	parts := make([]string, len(v))
	for i := range v {
		parts[i] = v[i].Text('f', 1)
	}
	return r.add("[]decimal %s %s", name, strings.Join(parts, ","))
}
func (r *recorder) WriteDateTimeArray(name, ns string, v []time.Time) error {
	return r.add("[]time %s %d", name, len(v))
}

func TestLookup(t *testing.T) {
	type Count int32

	cases := map[string]struct {
		value  interface{}
		expect []string
		absent bool
	}{
		"int8 widens":    {value: int8(-3), expect: []string{"int32 -3"}},
		"int is long":    {value: 7, expect: []string{"int64 7"}},
		"uint16":         {value: uint16(9), expect: []string{"uint64 9"}},
		"uintptr":        {value: uintptr(12), expect: []string{"uint64 12"}},
		"float32":        {value: float32(1.5), expect: []string{"float32 1.5"}},
		"string":         {value: "a<b", expect: []string{"string a<b"}},
		"duration":       {value: 2 * time.Second, expect: []string{"duration 2s"}},
		"bytes":          {value: []byte("hi"), expect: []string{`bytes "hi"`}},
		"decimal":        {value: *big.NewFloat(1.25), expect: []string{"decimal 1.25"}},
		"integer":        {value: *big.NewInt(42), expect: []string{"integer 42"}},
		"time":           {value: time.Unix(60, 0).UTC(), expect: []string{"time 60"}},
		"named is not":   {value: Count(1), absent: true},
		"pointer is not": {value: new(int32), absent: true},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			entry, ok := Lookup(reflect.TypeOf(c.value))
			if c.absent {
				if ok {
					t.Fatalf("expect no entry, got %v", entry.Kind)
				}
				return
			}
			if !ok {
				t.Fatalf("expect entry for %T", c.value)
			}

			var r recorder
			if err := entry.Write(&r, reflect.ValueOf(c.value)); err != nil {
				t.Fatalf("expect no error, got %v", err)
			}
			if diff := cmp.Diff(c.expect, r.calls); len(diff) != 0 {
				t.Errorf("calls mismatch (-expect +actual):\n%s", diff)
			}
		})
	}
}

func TestLookupArray(t *testing.T) {
	type Scores []int32

	cases := map[string]struct {
		value  interface{}
		expect []string
		absent bool
	}{
		"int32 slice":   {value: []int32{1, 2, 3}, expect: []string{"[]int32 item [1 2 3]"}},
		"named slice":   {value: Scores{4, 5}, expect: []string{"[]int32 item [4 5]"}},
		"fixed array":   {value: [2]bool{true, false}, expect: []string{"[]bool item [true false]"}},
		"int widens":    {value: []int{1, -1}, expect: []string{"[]int64 item [1 -1]"}},
		"float64":       {value: []float64{0.5}, expect: []string{"[]float64 item [0.5]"}},
		"decimal":       {value: []big.Float{*big.NewFloat(2)}, expect: []string{"[]decimal item 2.0"}},
		"date-time":     {value: []time.Time{{}, {}}, expect: []string{"[]time item 2"}},
		"string has no": {value: []string{"a"}, absent: true},
		"int16 has no":  {value: []int16{1}, absent: true},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			rv := reflect.ValueOf(c.value)
			fn, ok := LookupArray(rv.Type().Elem())
			if c.absent {
				if ok {
					t.Fatalf("expect no bulk writer for %T", c.value)
				}
				return
			}
			if !ok {
				t.Fatalf("expect bulk writer for %T", c.value)
			}

			var r recorder
			if err := fn(&r, "item", "", rv); err != nil {
				t.Fatalf("expect no error, got %v", err)
			}
			if diff := cmp.Diff(c.expect, r.calls); len(diff) != 0 {
				t.Errorf("calls mismatch (-expect +actual):\n%s", diff)
			}
		})
	}
}
