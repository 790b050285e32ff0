// Package generator builds and caches the writer procedures that serialize
// values of class and collection contracts.
//
// Two backends build procedures. The compiled backend resolves member
// accessors, element names and primitive writers once per contract; the
// reflective backend walks the contract metadata again on every call and can
// read unexported fields. Both produce identical output.
package generator

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"golang.org/x/sync/singleflight"

	datacontract "github.com/aws/smithy-datacontract"
	"github.com/aws/smithy-datacontract/logging"
)

//go:generate go tool stringer -type=Mode -output=mode_string.go

// Mode selects the backend that builds writer procedures.
type Mode int

// Enumerates Mode.
const (
	ModeCompiled Mode = iota
	ModeReflective
)

// Options configures a Generator.
type Options struct {
	// Mode selects the backend. The zero value is ModeCompiled.
	Mode Mode

	// FallbackToReflection builds a reflective procedure when the compiled
	// backend fails with an AuthorizationError, instead of returning it.
	FallbackToReflection bool

	// Logger receives generation diagnostics. Defaults to logging.Noop.
	Logger logging.Logger
}

// Generator returns the writer procedure of each contract of a registry,
// building it on first use. A Generator is safe for concurrent use.
type Generator struct {
	registry *datacontract.Registry
	options  Options

	compiled   Backend
	reflective Backend

	cache writerCache
	group singleflight.Group
}

// New returns a generator for the contracts of registry.
func New(registry *datacontract.Registry, optFns ...func(*Options)) *Generator {
	var o Options
	for _, fn := range optFns {
		fn(&o)
	}
	if o.Logger == nil {
		o.Logger = logging.Noop{}
	}

	return &Generator{
		registry:   registry,
		options:    o,
		compiled:   compiledBackend{},
		reflective: reflectiveBackend{},
	}
}

// Registry returns the registry the generator writes contracts of.
func (g *Generator) Registry() *datacontract.Registry { return g.registry }

// Mode returns the configured backend mode.
func (g *Generator) Mode() Mode { return g.options.Mode }

// GetWriter returns the writer procedure of the class or collection contract
// c. Procedures are generated at most once per contract; a failed
// generation is cached and returned to every later caller.
func (g *Generator) GetWriter(c *datacontract.Contract) (Procedure, error) {
	if cw, ok := g.cache.Load(c); ok {
		return cw.proc, cw.err
	}
	if c.Registry() != g.registry {
		return nil, fmt.Errorf("generator: contract %s is not registered with the generator's registry", c)
	}

	v, _, _ := g.group.Do(strconv.Itoa(c.ID()), func() (any, error) {
		if cw, ok := g.cache.Load(c); ok {
			return cw, nil
		}
		proc, err := g.generate(c)
		cw, _ := g.cache.LoadOrStore(c, &cachedWriter{proc: proc, err: err})
		return cw, nil
	})

	cw := v.(*cachedWriter)
	return cw.proc, cw.err
}

func (g *Generator) generate(c *datacontract.Contract) (Procedure, error) {
	mode := g.options.Mode
	backend := g.backend(mode)

	proc, err := build(backend, g, c)
	var authErr *datacontract.AuthorizationError
	if errors.As(err, &authErr) && mode == ModeCompiled && g.options.FallbackToReflection {
		g.options.Logger.Logf(logging.Warn, "compiled writer for %s unavailable, using reflection: %v", c, err)
		mode = ModeReflective
		proc, err = build(g.reflective, g, c)
	}
	if err != nil {
		return nil, fmt.Errorf("generate writer for %s: %w", c, err)
	}

	g.options.Logger.Logf(logging.Debug, "generated %s writer for %s", mode, c)
	return proc, nil
}

func (g *Generator) backend(mode Mode) Backend {
	if mode == ModeReflective {
		return g.reflective
	}
	return g.compiled
}

func build(b Backend, g *Generator, c *datacontract.Contract) (Procedure, error) {
	switch c.Kind() {
	case datacontract.KindClass:
		return b.ClassWriter(g, c)
	case datacontract.KindCollection:
		return b.CollectionWriter(g, c)
	}
	return nil, &datacontract.UnsupportedTypeError{Type: c.Type(), Reason: "no writer for " + c.Kind().String() + " contracts"}
}

// WriteValue writes the content of v, declared as type declared, into the
// open element of w. The runtime type of v selects the contract; a type
// marker is written when it differs from declared.
func (g *Generator) WriteValue(w datacontract.XMLWriter, sc *datacontract.Context, declared reflect.Type, v reflect.Value) error {
	return g.writeValue(w, sc, declared, v, false)
}
