package xml

import (
	"bytes"
	"errors"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const xsi = "http://www.w3.org/2001/XMLSchema-instance"

func TestEncoder(t *testing.T) {
	cases := map[string]struct {
		write  func(e *Encoder) error
		expect string
	}{
		"default namespace inherited": {
			write: func(e *Encoder) error {
				e.WriteStartElement("Person", "http://ns", "")
				e.WriteNamespaceDecl("i", xsi)
				e.WriteStartElement("Name", "http://ns", "")
				e.WriteString("a<b")
				e.WriteEndElement()
				e.WriteStartElement("Age", "http://ns", "")
				e.WriteEndElement()
				return e.WriteEndElement()
			},
			expect: `<Person xmlns="http://ns" xmlns:i="http://www.w3.org/2001/XMLSchema-instance"><Name>a&lt;b</Name><Age/></Person>`,
		},
		"generated prefix reused": {
			write: func(e *Encoder) error {
				e.WriteStartElement("Root", "a", "")
				e.WriteNamespaceDecl("", "b")
				e.WriteStartElement("X", "b", "")
				e.WriteInt32(1)
				e.WriteEndElement()
				return e.WriteEndElement()
			},
			expect: `<Root xmlns="a" xmlns:d1p1="b"><d1p1:X>1</d1p1:X></Root>`,
		},
		"declaration in scope skipped": {
			write: func(e *Encoder) error {
				e.WriteStartElement("Root", "a", "")
				e.WriteNamespaceDecl("", "a")
				e.WriteNamespaceDecl("p", "c")
				e.WriteNamespaceDecl("p", "c")
				return e.WriteEndElement()
			},
			expect: `<Root xmlns="a" xmlns:p="c"/>`,
		},
		"new default namespace": {
			write: func(e *Encoder) error {
				e.WriteStartElement("Root", "a", "")
				e.WriteStartElement("Child", "b", "")
				e.WriteStartElement("Leaf", "b", "")
				e.WriteEndElement()
				e.WriteEndElement()
				return e.WriteEndElement()
			},
			expect: `<Root xmlns="a"><Child xmlns="b"><Leaf/></Child></Root>`,
		},
		"attribute declares prefix": {
			write: func(e *Encoder) error {
				e.WriteStartElement("Root", "", "")
				e.WriteAttributeString("i", "nil", xsi, "true")
				return e.WriteEndElement()
			},
			expect: `<Root xmlns:i="http://www.w3.org/2001/XMLSchema-instance" i:nil="true"/>`,
		},
		"attribute reuses prefix": {
			write: func(e *Encoder) error {
				e.WriteStartElement("Root", "", "")
				e.WriteNamespaceDecl("i", xsi)
				e.WriteStartElement("Child", "", "")
				e.WriteAttributeString("", "type", xsi, "int")
				e.WriteEndElement()
				return e.WriteEndElement()
			},
			expect: `<Root xmlns:i="http://www.w3.org/2001/XMLSchema-instance"><Child i:type="int"/></Root>`,
		},
		"attribute escaping": {
			write: func(e *Encoder) error {
				e.WriteStartElement("Root", "", "")
				e.WriteAttributeString("", "v", "", "a\"b<&\n\t")
				return e.WriteEndElement()
			},
			expect: `<Root v="a&#34;b&lt;&amp;&#xA;&#x9;"/>`,
		},
		"text escaping": {
			write: func(e *Encoder) error {
				e.WriteStartElement("Root", "", "")
				e.WriteString("\"q\" > \r\x01")
				return e.WriteEndElement()
			},
			expect: "<Root>\"q\" &gt; &#xD;\uFFFD</Root>",
		},
		"explicit prefix": {
			write: func(e *Encoder) error {
				e.WriteStartElement("Envelope", "urn:env", "s")
				e.WriteStartElement("Body", "urn:env", "s")
				e.WriteEndElement()
				return e.WriteEndElement()
			},
			expect: `<s:Envelope xmlns:s="urn:env"><s:Body/></s:Envelope>`,
		},
		"raw content": {
			write: func(e *Encoder) error {
				e.WriteStartElement("Root", "", "")
				e.WriteRaw("<x/>")
				return e.WriteEndElement()
			},
			expect: `<Root><x/></Root>`,
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			e := NewBufferEncoder()
			if err := c.write(e); err != nil {
				t.Fatalf("expect no error, got %v", err)
			}
			if diff := cmp.Diff(c.expect, e.String()); len(diff) != 0 {
				t.Errorf("output mismatch (-expect +actual):\n%s", diff)
			}
			if e, a := 0, e.Depth(); e != a {
				t.Errorf("expect depth %v, got %v", e, a)
			}
		})
	}
}

func TestEncoderScalars(t *testing.T) {
	cases := map[string]struct {
		write  func(e *Encoder) error
		expect string
	}{
		"bool":           {write: func(e *Encoder) error { return e.WriteBoolean(true) }, expect: "true"},
		"int32":          {write: func(e *Encoder) error { return e.WriteInt32(-12) }, expect: "-12"},
		"uint64":         {write: func(e *Encoder) error { return e.WriteUint64(math.MaxUint64) }, expect: "18446744073709551615"},
		"float":          {write: func(e *Encoder) error { return e.WriteFloat32(1.5) }, expect: "1.5"},
		"small double":   {write: func(e *Encoder) error { return e.WriteFloat64(0.0000001) }, expect: "1e-7"},
		"large double":   {write: func(e *Encoder) error { return e.WriteFloat64(1e21) }, expect: "1e+21"},
		"infinity":       {write: func(e *Encoder) error { return e.WriteFloat64(math.Inf(1)) }, expect: "INF"},
		"neg infinity":   {write: func(e *Encoder) error { return e.WriteFloat32(float32(math.Inf(-1))) }, expect: "-INF"},
		"nan":            {write: func(e *Encoder) error { return e.WriteFloat64(math.NaN()) }, expect: "NaN"},
		"base64":         {write: func(e *Encoder) error { return e.WriteBase64([]byte("hi")) }, expect: "aGk="},
		"empty base64":   {write: func(e *Encoder) error { return e.WriteBase64(nil) }, expect: ""},
		"whole decimal":  {write: func(e *Encoder) error { return e.WriteDecimal(big.NewFloat(2)) }, expect: "2"},
		"decimal":        {write: func(e *Encoder) error { return e.WriteDecimal(big.NewFloat(1.25)) }, expect: "1.25"},
		"integer":        {write: func(e *Encoder) error { return e.WriteInteger(big.NewInt(-42)) }, expect: "-42"},
		"duration":       {write: func(e *Encoder) error { return e.WriteDuration(90 * time.Minute) }, expect: "PT1H30M"},
		"date-time":      {write: func(e *Encoder) error { return e.WriteDateTime(time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC)) }, expect: "2001-02-03T04:05:06Z"},
		"long base64": {
			write:  func(e *Encoder) error { return e.WriteBase64(bytes.Repeat([]byte{0}, 900)) },
			expect: string(bytes.Repeat([]byte("A"), 1200)),
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			e := NewBufferEncoder()
			e.WriteStartElement("v", "", "")
			if err := c.write(e); err != nil {
				t.Fatalf("expect no error, got %v", err)
			}
			e.WriteEndElement()

			expect := "<v>" + c.expect + "</v>"
			if diff := cmp.Diff(expect, e.String()); len(diff) != 0 {
				t.Errorf("output mismatch (-expect +actual):\n%s", diff)
			}
		})
	}
}

func TestEncoderArrays(t *testing.T) {
	e := NewBufferEncoder()
	e.WriteStartElement("ArrayOfint", "urn:a", "")
	if err := e.WriteInt32Array("int", "urn:a", []int32{1, 2}); err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
	if err := e.WriteBooleanArray("boolean", "urn:b", []bool{true}); err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
	if err := e.WriteDecimalArray("decimal", "urn:a", []big.Float{*big.NewFloat(0.5)}); err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
	if err := e.WriteInt64Array("long", "urn:a", nil); err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
	e.WriteEndElement()

	expect := `<ArrayOfint xmlns="urn:a"><int>1</int><int>2</int><boolean xmlns="urn:b">true</boolean><decimal>0.5</decimal></ArrayOfint>`
	if diff := cmp.Diff(expect, e.String()); len(diff) != 0 {
		t.Errorf("output mismatch (-expect +actual):\n%s", diff)
	}
}

func TestEncoderLookupPrefix(t *testing.T) {
	e := NewBufferEncoder()
	e.WriteStartElement("Root", "urn:default", "")
	e.WriteNamespaceDecl("p", "urn:a")

	if p, ok := e.LookupPrefix("urn:a"); !ok || p != "p" {
		t.Errorf("expect prefix p, got %q %v", p, ok)
	}
	if p, ok := e.LookupPrefix("urn:default"); !ok || p != "" {
		t.Errorf("expect default namespace, got %q %v", p, ok)
	}
	if p, ok := e.LookupPrefix(XMLNamespace); !ok || p != "xml" {
		t.Errorf("expect xml prefix, got %q %v", p, ok)
	}

	e.WriteStartElement("Child", "urn:default", "")
	e.WriteNamespaceDecl("p", "urn:b")
	if _, ok := e.LookupPrefix("urn:a"); ok {
		t.Errorf("expect urn:a to be shadowed")
	}

	e.WriteEndElement()
	if p, ok := e.LookupPrefix("urn:a"); !ok || p != "p" {
		t.Errorf("expect prefix p restored, got %q %v", p, ok)
	}
}

func TestEncoderNoOpenElement(t *testing.T) {
	cases := map[string]func(e *Encoder) error{
		"content":     func(e *Encoder) error { return e.WriteString("x") },
		"end element": func(e *Encoder) error { return e.WriteEndElement() },
		"attribute":   func(e *Encoder) error { return e.WriteAttributeString("", "a", "", "b") },
		"namespace":   func(e *Encoder) error { return e.WriteNamespaceDecl("p", "urn:a") },
		"raw":         func(e *Encoder) error { return e.WriteRaw("x") },
	}

	for name, write := range cases {
		t.Run(name, func(t *testing.T) {
			err := write(NewBufferEncoder())
			if !errors.Is(err, ErrNoOpenElement) {
				t.Errorf("expect ErrNoOpenElement, got %v", err)
			}
		})
	}
}

func TestEncoderAttributeAfterContent(t *testing.T) {
	e := NewBufferEncoder()
	e.WriteStartElement("Root", "", "")
	e.WriteString("x")
	if err := e.WriteAttributeString("", "a", "", "b"); !errors.Is(err, ErrNoOpenElement) {
		t.Errorf("expect ErrNoOpenElement, got %v", err)
	}
}

type failingWriter struct {
	err error
}

func (w failingWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

func TestEncoderStickyError(t *testing.T) {
	failure := errors.New("disk full")
	e := NewEncoder(failingWriter{err: failure})

	e.WriteStartElement("Root", "", "")
	e.WriteEndElement()
	if err := e.Flush(); !errors.Is(err, failure) {
		t.Fatalf("expect flush error, got %v", err)
	}

	if err := e.WriteStartElement("Next", "", ""); !errors.Is(err, failure) {
		t.Errorf("expect sticky error, got %v", err)
	}
	if err := e.Err(); !errors.Is(err, failure) {
		t.Errorf("expect sticky error, got %v", err)
	}
}

func TestEncoderFlush(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(struct{ *bytes.Buffer }{&buf})

	e.WriteStartElement("Root", "", "")
	e.WriteEndElement()
	if e, a := 0, buf.Len(); e != a {
		t.Errorf("expect output buffered, got %v bytes", a)
	}
	if err := e.Flush(); err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
	if e, a := "<Root/>", buf.String(); e != a {
		t.Errorf("expect %v, got %v", e, a)
	}
}

func TestEncoderEmptyName(t *testing.T) {
	e := NewBufferEncoder()
	if err := e.WriteStartElement("", "", ""); err == nil {
		t.Errorf("expect error for empty element name")
	}
}
