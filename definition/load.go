package definition

import (
	"fmt"
	"io"
	"os"

	datacontract "github.com/aws/smithy-datacontract"
)

// LoadFile reads the definition file at path and builds its registry.
func LoadFile(path string, types *TypeRegistry) (*datacontract.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file %s: %w", path, err)
	}
	return load(data, types)
}

// Load reads a definition file from r and builds its registry.
func Load(r io.Reader, types *TypeRegistry) (*datacontract.Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	return load(data, types)
}

func load(data []byte, types *TypeRegistry) (*datacontract.Registry, error) {
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return f.Build(types)
}

// Build creates the contracts of f and a registry holding them. Bases may be
// declared after the contracts deriving from them.
func (f *File) Build(types *TypeRegistry) (*datacontract.Registry, error) {
	b := builder{
		types:    types,
		defs:     make(map[string]*Contract, len(f.Contracts)),
		built:    make(map[string]*datacontract.Contract, len(f.Contracts)),
		building: map[string]bool{},
	}
	for i := range f.Contracts {
		def := &f.Contracts[i]
		if len(def.Type) == 0 {
			return nil, fmt.Errorf("definition: contract %d has no type", i)
		}
		if _, ok := b.defs[def.Type]; ok {
			return nil, fmt.Errorf("definition: type %s defined more than once", def.Type)
		}
		b.defs[def.Type] = def
	}

	contracts := make([]*datacontract.Contract, 0, len(f.Contracts))
	for i := range f.Contracts {
		c, err := b.contract(f.Contracts[i].Type)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}

	r, err := datacontract.NewRegistry(contracts...)
	if err != nil {
		return nil, fmt.Errorf("definition: %w", err)
	}
	return r, nil
}

type builder struct {
	types    *TypeRegistry
	defs     map[string]*Contract
	built    map[string]*datacontract.Contract
	building map[string]bool
}

func (b *builder) contract(name string) (*datacontract.Contract, error) {
	if c, ok := b.built[name]; ok {
		return c, nil
	}
	def, ok := b.defs[name]
	if !ok {
		return nil, fmt.Errorf("definition: no contract defined for type %s", name)
	}
	if b.building[name] {
		return nil, fmt.Errorf("definition: contract %s is its own base", name)
	}
	b.building[name] = true
	defer delete(b.building, name)

	t, ok := b.types.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("definition: contract %s: type is not registered", name)
	}

	var c *datacontract.Contract
	switch def.Kind {
	case KindClass:
		opts, err := b.classOptions(def)
		if err != nil {
			return nil, err
		}
		c = datacontract.NewClassContract(t, def.Name, def.Namespace, opts...)

	case KindCollection:
		var opts []func(*datacontract.ContractOptions)
		if len(def.ItemName) != 0 {
			opts = append(opts, datacontract.WithItemName(def.ItemName))
		}
		if len(def.KeyName) != 0 || len(def.ValueName) != 0 {
			opts = append(opts, datacontract.WithKeyValueNames(def.KeyName, def.ValueName))
		}
		c = datacontract.NewCollectionContract(t, datacontract.CollectionKind(def.CollectionKind), def.Name, def.Namespace, opts...)

	case KindEnum:
		members := make([]datacontract.EnumMember, 0, len(def.Values))
		for _, v := range def.Values {
			members = append(members, datacontract.EnumMember{Name: v.Name, Value: v.Value})
		}
		var opts []func(*datacontract.ContractOptions)
		if def.Flags {
			opts = append(opts, datacontract.WithFlags())
		}
		c = datacontract.NewEnumContract(t, def.Name, def.Namespace, members, opts...)

	case KindPrimitive:
		c = datacontract.NewPrimitiveContract(t, def.Name, def.Namespace)

	default:
		return nil, fmt.Errorf("definition: contract %s: unknown kind %q", name, def.Kind)
	}

	b.built[name] = c
	return c, nil
}

func (b *builder) classOptions(def *Contract) ([]func(*datacontract.ContractOptions), error) {
	var opts []func(*datacontract.ContractOptions)

	if len(def.Base) != 0 {
		base, err := b.contract(def.Base)
		if err != nil {
			return nil, fmt.Errorf("definition: contract %s: base: %w", def.Type, err)
		}
		opts = append(opts, datacontract.WithBase(base, def.BaseField))
	}
	if def.ReadOnly {
		opts = append(opts, datacontract.WithReadOnly())
	}
	if def.ISerializable {
		opts = append(opts, datacontract.WithISerializable())
	}
	if def.ExtensionData {
		opts = append(opts, datacontract.WithExtensionData())
	}
	if def.IsReference {
		opts = append(opts, datacontract.WithIsReference())
	}

	members := make([]*datacontract.Member, 0, len(def.Members))
	for i, m := range def.Members {
		if len(m.Name) == 0 {
			return nil, fmt.Errorf("definition: contract %s: member %d has no name", def.Type, i)
		}
		var mopts []func(*datacontract.MemberOptions)
		if m.EmitDefaultValue != nil {
			mopts = append(mopts, datacontract.EmitDefaultValue(*m.EmitDefaultValue))
		}
		if m.Required {
			mopts = append(mopts, datacontract.Required())
		}
		if m.GetOnlyCollection {
			mopts = append(mopts, datacontract.GetOnlyCollection())
		}
		members = append(members, datacontract.NewMember(m.Name, m.Field, mopts...))
	}
	opts = append(opts, datacontract.WithMembers(members...))

	return opts, nil
}
