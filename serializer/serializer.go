// Package serializer writes object graphs as XML documents through the
// contracts of a registry.
package serializer

import (
	"bytes"
	"fmt"
	"io"
	"reflect"

	datacontract "github.com/aws/smithy-datacontract"
	"github.com/aws/smithy-datacontract/generator"
	"github.com/aws/smithy-datacontract/logging"
	"github.com/aws/smithy-datacontract/xml"
)

// Options configures a Serializer.
type Options struct {
	// Generator supplies writer procedures; serializers sharing a generator
	// share its cache. When nil a generator is created from Mode,
	// FallbackToReflection and Logger.
	Generator *generator.Generator

	Mode                 generator.Mode
	FallbackToReflection bool

	// Logger defaults to logging.Noop.
	Logger logging.Logger

	// MaxItemsInObjectGraph bounds the members, items and entries written by
	// one call. Zero uses datacontract.DefaultMaxItemsInObjectGraph.
	MaxItemsInObjectGraph int

	SerializeReadOnlyTypes    bool
	IgnoreExtensionDataObject bool

	// RootName and RootNamespace override the root element name, which
	// defaults to the name and namespace of the root contract.
	RootName      string
	RootNamespace string
}

// Serializer writes values of one declared root type. A Serializer is safe
// for concurrent use.
type Serializer struct {
	registry  *datacontract.Registry
	generator *generator.Generator
	options   Options

	root         reflect.Type
	rootContract *datacontract.Contract
	rootName     string
	rootNS       string
}

// New returns a serializer for values declared as root.
func New(registry *datacontract.Registry, root reflect.Type, optFns ...func(*Options)) (*Serializer, error) {
	var o Options
	for _, fn := range optFns {
		fn(&o)
	}
	if o.Logger == nil {
		o.Logger = logging.Noop{}
	}

	if root == nil {
		return nil, fmt.Errorf("serializer: root type is nil")
	}
	c, ok := registry.Lookup(stripPointers(root))
	if !ok {
		return nil, &datacontract.UnsupportedTypeError{Type: root, Reason: "no data contract for root type"}
	}

	g := o.Generator
	if g == nil {
		g = generator.New(registry, func(gopts *generator.Options) {
			gopts.Mode = o.Mode
			gopts.FallbackToReflection = o.FallbackToReflection
			gopts.Logger = o.Logger
		})
	} else if g.Registry() != registry {
		return nil, fmt.Errorf("serializer: generator belongs to a different registry")
	}

	s := &Serializer{
		registry:     registry,
		generator:    g,
		options:      o,
		root:         root,
		rootContract: c,
		rootName:     c.Name(),
		rootNS:       c.Namespace(),
	}
	if len(o.RootName) != 0 {
		s.rootName = o.RootName
		s.rootNS = o.RootNamespace
	}
	if len(s.rootName) == 0 {
		return nil, fmt.Errorf("serializer: root contract %s has no name", c)
	}
	return s, nil
}

// For returns a serializer for values declared as T.
func For[T any](registry *datacontract.Registry, optFns ...func(*Options)) (*Serializer, error) {
	return New(registry, reflect.TypeFor[T](), optFns...)
}

// RootType returns the declared root type.
func (s *Serializer) RootType() reflect.Type { return s.root }

// Serialize writes v as an XML document to out.
func (s *Serializer) Serialize(out io.Writer, v any) error {
	enc := xml.NewEncoder(out)
	if err := s.WriteObject(enc, v); err != nil {
		return err
	}
	return enc.Flush()
}

// Marshal returns the XML document of v.
func (s *Serializer) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Serialize(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteObject writes v as the root element through w. Any error leaves the
// output of w incomplete.
func (s *Serializer) WriteObject(w datacontract.XMLWriter, v any) error {
	sc := s.newContext()
	s.options.Logger.Logf(logging.Debug, "serializing %s as {%s}%s, call %s", s.root, s.rootNS, s.rootName, sc.ID())

	if k := s.rootContract.Kind(); k == datacontract.KindClass || k == datacontract.KindCollection {
		if err := sc.CheckReadOnly(s.rootContract); err != nil {
			return err
		}
	}

	if err := w.WriteStartElement(s.rootName, s.rootNS, ""); err != nil {
		return err
	}
	if err := w.WriteNamespaceDecl("i", datacontract.XSINamespace); err != nil {
		return err
	}
	// members of a renamed root stay in the contract namespace
	if ns := s.rootContract.Namespace(); s.rootContract.Kind() == datacontract.KindClass && len(ns) != 0 && ns != s.rootNS {
		if err := w.WriteNamespaceDecl("", ns); err != nil {
			return err
		}
	}
	if err := s.generator.WriteValue(w, sc, s.root, reflect.ValueOf(v)); err != nil {
		return err
	}
	return w.WriteEndElement()
}

func (s *Serializer) newContext() *datacontract.Context {
	return datacontract.NewContext(func(o *datacontract.ContextOptions) {
		o.MaxItemsInObjectGraph = s.options.MaxItemsInObjectGraph
		o.SerializeReadOnlyTypes = s.options.SerializeReadOnlyTypes
		o.IgnoreExtensionDataObject = s.options.IgnoreExtensionDataObject
	})
}

func stripPointers(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
