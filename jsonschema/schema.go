package jsonschema

import (
	"bytes"

	j "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	sc "github.com/reoring/sensorcheck"
)

// Draft is the JSON Schema dialect produced by FromNode.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	// Core
	Dialect     string `json:"$schema,omitempty" yaml:"$schema,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`

	// Object
	Properties           Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string   `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties any        `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
}

// Property is one entry of a Schema's properties keyword.
type Property struct {
	Name   string
	Schema *Schema
}

// Properties is written as a JSON or YAML object whose members keep the
// declaration order of the schema tree.
type Properties []Property

// Get returns the schema of the named property, or nil.
func (ps Properties) Get(name string) *Schema {
	for _, p := range ps {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

func (ps Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range ps {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := j.Marshal(p.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "property %q", p.Name)
		}
		v, err := j.Marshal(p.Schema)
		if err != nil {
			return nil, errors.Wrapf(err, "property %q", p.Name)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (ps Properties) MarshalYAML() (any, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range ps {
		var v yaml.Node
		if err := v.Encode(p.Schema); err != nil {
			return nil, errors.Wrapf(err, "property %q", p.Name)
		}
		m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Name}, &v)
	}
	return m, nil
}

// FromNode projects a schema tree into JSON Schema. UnknownStrict objects get
// additionalProperties=false; other objects leave it unset (anything allowed).
func FromNode(n *sc.Node) *Schema {
	s := fromNode(n)
	s.Dialect = Draft
	return s
}

func fromNode(n *sc.Node) *Schema {
	s := &Schema{Type: n.Kind.String()}
	if n.Kind != sc.NodeObject {
		return s
	}
	for _, p := range n.Properties {
		s.Properties = append(s.Properties, Property{Name: p.Name, Schema: fromNode(p.Node)})
		if n.IsRequired(p.Name) {
			s.Required = append(s.Required, p.Name)
		}
	}
	if n.Unknown == sc.UnknownStrict {
		s.AdditionalProperties = false
	}
	return s
}

// MarshalJSON renders s as indented JSON.
func MarshalJSON(s *Schema) ([]byte, error) {
	b, err := j.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal json schema")
	}
	return b, nil
}

// MarshalYAML renders s as YAML.
func MarshalYAML(s *Schema) ([]byte, error) {
	b, err := yaml.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "marshal yaml schema")
	}
	return b, nil
}
