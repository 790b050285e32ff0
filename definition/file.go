// Package definition loads data contracts from YAML definition files.
//
// A definition file names Go types through a TypeRegistry and describes
// their contracts:
//
//	namespace: urn:orders
//	contracts:
//	  - type: Order
//	    kind: class
//	    members:
//	      - name: Id
//	      - name: Lines
//	        emitDefaultValue: false
//	  - type: Lines
//	    kind: collection
//	    collectionKind: genericList
//	    itemName: Line
package definition

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	datacontract "github.com/aws/smithy-datacontract"
)

// File is a parsed definition file.
type File struct {
	// Namespace is the default namespace of contracts that declare none.
	Namespace string     `yaml:"namespace"`
	Contracts []Contract `yaml:"contracts"`
}

// Kind is the kind of a contract definition.
type Kind string

// Contract kinds.
const (
	KindClass      Kind = "class"
	KindCollection Kind = "collection"
	KindEnum       Kind = "enum"
	KindPrimitive  Kind = "primitive"
)

// Contract is the definition of one contract.
type Contract struct {
	Type      string `yaml:"type"`
	Kind      Kind   `yaml:"kind"`
	Name      string `yaml:"name"`
	Namespace string `yaml:"namespace"`

	// class
	Base          string   `yaml:"base"`
	BaseField     string   `yaml:"baseField"`
	ReadOnly      bool     `yaml:"readOnly"`
	ISerializable bool     `yaml:"iserializable"`
	ExtensionData bool     `yaml:"extensionData"`
	IsReference   bool     `yaml:"isReference"`
	Members       []Member `yaml:"members"`

	// collection
	CollectionKind CollectionKind `yaml:"collectionKind"`
	ItemName       string         `yaml:"itemName"`
	KeyName        string         `yaml:"keyName"`
	ValueName      string         `yaml:"valueName"`

	// enum
	Values []EnumValue `yaml:"values"`
	Flags  bool        `yaml:"flags"`
}

// Member is the definition of a class member.
type Member struct {
	Name  string `yaml:"name"`
	Field string `yaml:"field"`

	// EmitDefaultValue defaults to true.
	EmitDefaultValue  *bool `yaml:"emitDefaultValue"`
	Required          bool  `yaml:"required"`
	GetOnlyCollection bool  `yaml:"getOnlyCollection"`
}

// EnumValue is a named enum value.
type EnumValue struct {
	Name  string `yaml:"name"`
	Value int64  `yaml:"value"`
}

// CollectionKind is a collection kind written by name, such as genericList.
type CollectionKind datacontract.CollectionKind

var collectionKinds = map[string]datacontract.CollectionKind{
	"array":             datacontract.CollectionArray,
	"collection":        datacontract.CollectionCollection,
	"list":              datacontract.CollectionList,
	"dictionary":        datacontract.CollectionDictionary,
	"genericcollection": datacontract.CollectionGenericCollection,
	"genericlist":       datacontract.CollectionGenericList,
	"genericdictionary": datacontract.CollectionGenericDictionary,
	"genericenumerable": datacontract.CollectionGenericEnumerable,
	"enumerable":        datacontract.CollectionEnumerable,
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *CollectionKind) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}

	kind, ok := collectionKinds[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("line %d: unknown collection kind %q", value.Line, name)
	}
	*k = CollectionKind(kind)
	return nil
}

// Parse parses a YAML definition file.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse definition YAML: %w", err)
	}

	applyDefaults(&f)
	return &f, nil
}

func applyDefaults(f *File) {
	for i := range f.Contracts {
		c := &f.Contracts[i]
		if len(c.Namespace) == 0 && c.Kind != KindCollection {
			c.Namespace = f.Namespace
		}
		for j := range c.Members {
			m := &c.Members[j]
			if len(m.Field) == 0 {
				m.Field = m.Name
			}
		}
	}
}
