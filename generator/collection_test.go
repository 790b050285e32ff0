package generator

import (
	"errors"
	"iter"
	"math"
	"reflect"
	"strings"
	"testing"

	datacontract "github.com/aws/smithy-datacontract"
	"github.com/aws/smithy-datacontract/xml"
)

const arraysOpen = `<Root xmlns="http://schemas.microsoft.com/2003/10/Serialization/Arrays"` + xsiDecl + `>`

// recordingWriter counts the int32 writes that pass through it.
type recordingWriter struct {
	*xml.Encoder
	bulk, single int
}

func (w *recordingWriter) WriteInt32Array(itemName, itemNamespace string, v []int32) error {
	w.bulk++
	return w.Encoder.WriteInt32Array(itemName, itemNamespace, v)
}

func (w *recordingWriter) WriteInt32(v int32) error {
	w.single++
	return w.Encoder.WriteInt32(v)
}

func TestArrayBulkWrite(t *testing.T) {
	cases := map[string]struct {
		Kind   datacontract.CollectionKind
		Bulk   int
		Single int
	}{
		"array": {
			Kind: datacontract.CollectionArray,
			Bulk: 1,
		},
		"generic list": {
			Kind:   datacontract.CollectionGenericList,
			Single: 5,
		},
	}

	const expect = arraysOpen + `<int>1</int><int>2</int><int>3</int><int>4</int><int>5</int>` + rootClose

	for mode, m := range modes {
		for name, c := range cases {
			t.Run(mode+"/"+name, func(t *testing.T) {
				ints := datacontract.NewCollectionContract(reflect.TypeFor[[]int32](), c.Kind, "", "")
				g := New(newRegistry(t, ints), withMode(m))

				w := &recordingWriter{Encoder: xml.NewBufferEncoder()}
				sc := datacontract.NewContext()
				if err := w.WriteStartElement("Root", datacontract.ArraysNamespace, ""); err != nil {
					t.Fatalf("expect no error, got %v", err)
				}
				if err := w.WriteNamespaceDecl("i", datacontract.XSINamespace); err != nil {
					t.Fatalf("expect no error, got %v", err)
				}
				if err := g.WriteValue(w, sc, reflect.TypeFor[[]int32](), reflect.ValueOf([]int32{1, 2, 3, 4, 5})); err != nil {
					t.Fatalf("expect no error, got %v", err)
				}
				if err := w.WriteEndElement(); err != nil {
					t.Fatalf("expect no error, got %v", err)
				}

				if e, a := expect, w.String(); e != a {
					t.Errorf("expect\n%s\ngot\n%s", e, a)
				}
				if e, a := c.Bulk, w.bulk; e != a {
					t.Errorf("expect %d bulk writes, got %d", e, a)
				}
				if e, a := c.Single, w.single; e != a {
					t.Errorf("expect %d item writes, got %d", e, a)
				}
				if e, a := 5, sc.ItemCount(); e != a {
					t.Errorf("expect item count %d, got %d", e, a)
				}
			})
		}
	}
}

type Bag []any

type Ring struct {
	items []string
}

type sliceCursor struct {
	items []string
	i     int
	err   error
}

func (c *sliceCursor) Next() bool {
	if c.i >= len(c.items) {
		return false
	}
	c.i++
	return true
}

func (c *sliceCursor) Current() reflect.Value { return reflect.ValueOf(c.items[c.i-1]) }
func (c *sliceCursor) Err() error             { return c.err }
func (c *sliceCursor) Close()                 {}

func TestCollectionWriter(t *testing.T) {
	cases := map[string]struct {
		Declared  reflect.Type
		Value     any
		Expect    string
		ItemCount int
	}{
		"generic dictionary": {
			Declared: reflect.TypeFor[map[string]int32](),
			Value:    map[string]int32{"c": 3, "a": 1, "b": 2},
			Expect: arraysOpen +
				`<KeyValueOfstringint><Key>a</Key><Value>1</Value></KeyValueOfstringint>` +
				`<KeyValueOfstringint><Key>b</Key><Value>2</Value></KeyValueOfstringint>` +
				`<KeyValueOfstringint><Key>c</Key><Value>3</Value></KeyValueOfstringint>` +
				rootClose,
			ItemCount: 3,
		},
		"empty dictionary": {
			Declared:  reflect.TypeFor[map[string]int32](),
			Value:     map[string]int32{},
			Expect:    `<Root xmlns="http://schemas.microsoft.com/2003/10/Serialization/Arrays"` + xsiDecl + `/>`,
			ItemCount: 0,
		},
		"not a number key": {
			Declared: reflect.TypeFor[map[float64]int32](),
			Value:    map[float64]int32{math.NaN(): 1, 2: 3},
			Expect: arraysOpen +
				`<KeyValueOfdoubleint><Key>NaN</Key><Value>1</Value></KeyValueOfdoubleint>` +
				`<KeyValueOfdoubleint><Key>2</Key><Value>3</Value></KeyValueOfdoubleint>` +
				rootClose,
			ItemCount: 2,
		},
		"non-generic dictionary": {
			Declared: reflect.TypeFor[map[string]any](),
			Value:    map[string]any{"k": int32(1)},
			Expect: arraysOpen + `<KeyValueOfanyTypeanyType>` +
				`<Key xmlns:d3p1="http://www.w3.org/2001/XMLSchema" i:type="d3p1:string">k</Key>` +
				`<Value xmlns:d3p1="http://www.w3.org/2001/XMLSchema" i:type="d3p1:int">1</Value>` +
				`</KeyValueOfanyTypeanyType>` + rootClose,
			ItemCount: 1,
		},
		"non-generic list": {
			Declared: reflect.TypeFor[Bag](),
			Value:    Bag{"s", nil},
			Expect: arraysOpen +
				`<anyType xmlns:d2p1="http://www.w3.org/2001/XMLSchema" i:type="d2p1:string">s</anyType>` +
				`<anyType i:nil="true"/>` + rootClose,
			ItemCount: 2,
		},
		"sequence": {
			Declared: reflect.TypeFor[iter.Seq[int32]](),
			Value: iter.Seq[int32](func(yield func(int32) bool) {
				for i := int32(1); i <= 2; i++ {
					if !yield(i) {
						return
					}
				}
			}),
			Expect:    arraysOpen + `<int>1</int><int>2</int>` + rootClose,
			ItemCount: 2,
		},
		"enumerator and counter": {
			Declared:  reflect.TypeFor[Ring](),
			Value:     Ring{items: []string{"x", "y"}},
			Expect:    arraysOpen + `<string>x</string><string>y</string>` + rootClose,
			ItemCount: 2,
		},
	}

	for mode, m := range modes {
		for name, c := range cases {
			t.Run(mode+"/"+name, func(t *testing.T) {
				g := New(newRegistry(t, collectionContracts()...), withMode(m))

				actual, sc, err := serialize(g, datacontract.ArraysNamespace, c.Declared, c.Value)
				if err != nil {
					t.Fatalf("expect no error, got %v", err)
				}
				if c.Expect != actual {
					t.Errorf("expect\n%s\ngot\n%s", c.Expect, actual)
				}
				if e, a := c.ItemCount, sc.ItemCount(); e != a {
					t.Errorf("expect item count %d, got %d", e, a)
				}
			})
		}
	}
}

func collectionContracts() []*datacontract.Contract {
	return []*datacontract.Contract{
		datacontract.NewCollectionContract(reflect.TypeFor[map[string]int32](), datacontract.CollectionGenericDictionary, "", ""),
		datacontract.NewCollectionContract(reflect.TypeFor[map[float64]int32](), datacontract.CollectionGenericDictionary, "", ""),
		datacontract.NewCollectionContract(reflect.TypeFor[map[string]any](), datacontract.CollectionDictionary, "", ""),
		datacontract.NewCollectionContract(reflect.TypeFor[Bag](), datacontract.CollectionList, "", ""),
		datacontract.NewCollectionContract(reflect.TypeFor[iter.Seq[int32]](), datacontract.CollectionGenericEnumerable, "", ""),
		datacontract.NewCollectionContract(reflect.TypeFor[Ring](), datacontract.CollectionCollection, "", "",
			datacontract.WithItemType(reflect.TypeFor[string]()),
			datacontract.WithEnumerator(func(v reflect.Value) datacontract.Cursor {
				return &sliceCursor{items: v.Interface().(Ring).items}
			}),
			datacontract.WithCounter(func(v reflect.Value) int {
				return len(v.Interface().(Ring).items)
			}),
		),
	}
}

func TestCollectionCursorError(t *testing.T) {
	failure := errors.New("cursor failed")

	for mode, m := range modes {
		t.Run(mode, func(t *testing.T) {
			ring := datacontract.NewCollectionContract(reflect.TypeFor[Ring](), datacontract.CollectionCollection, "", "",
				datacontract.WithItemType(reflect.TypeFor[string]()),
				datacontract.WithEnumerator(func(v reflect.Value) datacontract.Cursor {
					return &sliceCursor{items: []string{"x"}, err: failure}
				}),
			)
			g := New(newRegistry(t, ring), withMode(m))

			actual, _, err := serialize(g, datacontract.ArraysNamespace, reflect.TypeFor[Ring](), Ring{})
			if !errors.Is(err, failure) {
				t.Fatalf("expect cursor error, got %v", err)
			}
			if !strings.Contains(actual, "<string>x</string>") {
				t.Errorf("expect items before the failure in output, got %s", actual)
			}
		})
	}
}

func TestItemQuota(t *testing.T) {
	cases := map[string]struct {
		Max   int
		Err   bool
		Items int
	}{
		"under quota": {
			Max:   5,
			Items: 5,
		},
		"exactly at quota": {
			Max:   4,
			Items: 4,
		},
		"crossing quota": {
			Max:   3,
			Err:   true,
			Items: 3,
		},
	}

	seq := iter.Seq[int32](func(yield func(int32) bool) {
		for i := int32(0); i < 4; i++ {
			if !yield(i) {
				return
			}
		}
	})

	for mode, m := range modes {
		for name, c := range cases {
			t.Run(mode+"/"+name, func(t *testing.T) {
				g := New(newRegistry(t, collectionContracts()...), withMode(m))

				actual, sc, err := serialize(g, datacontract.ArraysNamespace, reflect.TypeFor[iter.Seq[int32]](), seq,
					func(o *datacontract.ContextOptions) { o.MaxItemsInObjectGraph = c.Max })
				if c.Err {
					var quota *datacontract.QuotaExceededError
					if !errors.As(err, &quota) {
						t.Fatalf("expect QuotaExceededError, got %v", err)
					}
					if e, a := c.Max, quota.Max; e != a {
						t.Errorf("expect max %d, got %d", e, a)
					}
				} else if err != nil {
					t.Fatalf("expect no error, got %v", err)
				} else if e, a := 4, sc.ItemCount(); e != a {
					t.Errorf("expect item count %d, got %d", e, a)
				}

				if e, a := min(c.Items, 4), strings.Count(actual, "<int>"); e != a {
					t.Errorf("expect %d items written, got %d", e, a)
				}
			})
		}
	}
}

func TestClassQuota(t *testing.T) {
	cases := map[string]struct {
		Max int
		Err bool
	}{
		"exactly at quota": {Max: 4},
		"one short":        {Max: 3, Err: true},
	}

	for mode, m := range modes {
		for name, c := range cases {
			t.Run(mode+"/"+name, func(t *testing.T) {
				_, derived := hierarchy(nil, nil)
				g := New(newRegistry(t, derived), withMode(m))

				_, sc, err := serialize(g, testNamespace, reflect.TypeFor[Derived](), Derived{},
					func(o *datacontract.ContextOptions) { o.MaxItemsInObjectGraph = c.Max })
				if c.Err {
					var quota *datacontract.QuotaExceededError
					if !errors.As(err, &quota) {
						t.Fatalf("expect QuotaExceededError, got %v", err)
					}
					return
				}
				if err != nil {
					t.Fatalf("expect no error, got %v", err)
				}
				if e, a := 4, sc.ItemCount(); e != a {
					t.Errorf("expect item count %d, got %d", e, a)
				}
			})
		}
	}
}

type Team struct {
	Members []string
}

func TestGetOnlyCollection(t *testing.T) {
	for mode, m := range modes {
		t.Run(mode, func(t *testing.T) {
			list := datacontract.NewCollectionContract(reflect.TypeFor[[]string](), datacontract.CollectionGenericList, "", "")
			team := datacontract.NewClassContract(reflect.TypeFor[Team](), "", testNamespace, datacontract.WithMembers(
				datacontract.NewMember("Members", "", datacontract.GetOnlyCollection()),
			))
			g := New(newRegistry(t, team, list), withMode(m))

			actual, sc, err := serialize(g, testNamespace, reflect.TypeFor[Team](), Team{Members: []string{"a"}})
			if err != nil {
				t.Fatalf("expect no error, got %v", err)
			}
			expect := rootOpen + `<Members xmlns:d2p1="http://schemas.microsoft.com/2003/10/Serialization/Arrays">` +
				`<d2p1:string>a</d2p1:string></Members>` + rootClose
			if expect != actual {
				t.Errorf("expect\n%s\ngot\n%s", expect, actual)
			}
			if sc.IsGetOnlyCollection() {
				t.Errorf("expect get-only flag consumed by the collection write")
			}
		})
	}
}
