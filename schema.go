package conform

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Schema is a contract declared as data instead of code, so that the shape
// a computation must honor can live alongside configuration. The document
// form:
//
//	name: add_all
//	params:
//	  - name: numbers
//	    type: list[int]
//	  - name: start
//	    type: int
//	    default: 0
//	return: int
//
// Types use the ParseType grammar; an omitted type leaves that position
// unchecked. Defaults are plain YAML values translated through ToValue.
type Schema struct {
	name   string
	params []Param
	ret    Descriptor
}

type (
	schemaDoc struct {
		Name   string           `yaml:"name"`
		Params []schemaParamDoc `yaml:"params"`
		Return string           `yaml:"return"`
	}
	schemaParamDoc struct {
		Name    string    `yaml:"name"`
		Type    string    `yaml:"type"`
		Default yaml.Node `yaml:"default"`
	}
)

// ParseSchema decodes and compiles a schema document. Every type
// expression is parsed eagerly so a bad document fails here, not at call
// time.
func ParseSchema(src []byte) (*Schema, error) {
	var doc schemaDoc
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("cannot decode contract schema: %w", err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("contract schema has no name")
	}
	schema := &Schema{name: doc.Name}
	for _, param := range doc.Params {
		if param.Name == "" {
			return nil, fmt.Errorf("schema %v has an unnamed parameter", doc.Name)
		}
		compiled := Param{Name: param.Name}
		if param.Type != "" {
			desc, err := ParseType(param.Type)
			if err != nil {
				return nil, fmt.Errorf("schema %v parameter %q: %w", doc.Name, param.Name, err)
			}
			compiled.Type = desc
		}
		if param.Default.Kind != 0 {
			def, err := decodeDefault(&param.Default)
			if err != nil {
				return nil, fmt.Errorf("schema %v parameter %q: %w", doc.Name, param.Name, err)
			}
			compiled.Default = def
		}
		schema.params = append(schema.params, compiled)
	}
	if doc.Return != "" {
		ret, err := ParseType(doc.Return)
		if err != nil {
			return nil, fmt.Errorf("schema %v return: %w", doc.Name, err)
		}
		schema.ret = ret
	}
	return schema, nil
}

func (s *Schema) Name() string { return s.name }

// Params returns a copy of the compiled parameter declarations.
func (s *Schema) Params() []Param { return append([]Param{}, s.params...) }

// Contract binds the schema to its computation.
func (s *Schema) Contract(fn Func) (*Contract, error) {
	return NewContract(s.name, fn, s.ret, s.params...)
}

func decodeDefault(node *yaml.Node) (Value, error) {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return nil, fmt.Errorf("cannot decode default: %w", err)
	}
	return ToValue(raw), nil
}
