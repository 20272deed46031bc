package jsonschema

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	sc "github.com/reoring/sensorcheck"
)

// Diag collects non-fatal notes produced while importing a schema.
type Diag struct{ warnings []string }

func (d *Diag) HasWarnings() bool  { return len(d.warnings) > 0 }
func (d *Diag) Warnings() []string { return append([]string(nil), d.warnings...) }
func (d *Diag) warnf(f string, a ...any) {
	d.warnings = append(d.warnings, fmt.Sprintf(f, a...))
}

// ignored keywords carry no validation meaning for the tree.
var ignored = map[string]bool{"$schema": true, "$id": true, "$comment": true, "title": true, "description": true, "examples": true}

// Import builds a schema tree from a JSON Schema document written in JSON or
// YAML. It understands type (object, string, number, integer, boolean),
// properties, required and a boolean additionalProperties. Properties keep
// the order in which the document lists them. Other keywords are ignored and
// noted in the returned Diag. Structural problems are *sc.SchemaError.
func Import(data []byte) (*sc.Node, *Diag, error) {
	d := &Diag{}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, d, &sc.SchemaError{Path: "", Reason: "unreadable schema document: " + err.Error()}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, d, &sc.SchemaError{Path: "", Reason: "empty schema document"}
	}
	n, err := importNode(doc.Content[0], "", d)
	if err != nil {
		return nil, d, err
	}
	if err := n.Check(); err != nil {
		return nil, d, err
	}
	return n, d, nil
}

// ImportFile reads and imports the schema document at path.
func ImportFile(path string) (*sc.Node, *Diag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Diag{}, errors.Wrap(err, "read schema")
	}
	return Import(data)
}

func importNode(y *yaml.Node, path string, d *Diag) (*sc.Node, error) {
	if y.Kind != yaml.MappingNode {
		return nil, &sc.SchemaError{Path: path, Reason: "schema must be an object"}
	}
	var (
		typ      string
		props    *yaml.Node
		required *yaml.Node
		strict   bool
	)
	for i := 0; i+1 < len(y.Content); i += 2 {
		key, val := y.Content[i].Value, y.Content[i+1]
		switch key {
		case "type":
			if val.Kind != yaml.ScalarNode {
				return nil, &sc.SchemaError{Path: path, Reason: "type must be a single name"}
			}
			typ = val.Value
		case "properties":
			props = val
		case "required":
			required = val
		case "additionalProperties":
			var allowed bool
			if val.Kind != yaml.ScalarNode || val.Decode(&allowed) != nil {
				d.warnf("additionalProperties schema at %s treated as true", sc.DottedPath(path))
				continue
			}
			strict = !allowed
		default:
			if !ignored[key] {
				d.warnf("keyword %q at %s ignored", key, sc.DottedPath(path))
			}
		}
	}
	if typ == "" && props != nil {
		typ = "object"
	}

	n := &sc.Node{}
	switch typ {
	case "object":
		n.Kind = sc.NodeObject
	case "string":
		n.Kind = sc.NodeString
	case "number":
		n.Kind = sc.NodeNumber
	case "integer":
		d.warnf("integer at %s accepted as number", sc.DottedPath(path))
		n.Kind = sc.NodeNumber
	case "boolean":
		n.Kind = sc.NodeBoolean
	case "":
		return nil, &sc.SchemaError{Path: path, Reason: "missing type"}
	default:
		return nil, &sc.SchemaError{Path: path, Reason: fmt.Sprintf("unsupported type %q", typ)}
	}
	if n.Kind != sc.NodeObject {
		if (props != nil && len(props.Content) > 0) || required != nil {
			return nil, &sc.SchemaError{Path: path, Reason: typ + " node cannot declare properties"}
		}
		return n, nil
	}

	if props != nil {
		if props.Kind != yaml.MappingNode {
			return nil, &sc.SchemaError{Path: path, Reason: "properties must be an object"}
		}
		for i := 0; i+1 < len(props.Content); i += 2 {
			name := props.Content[i].Value
			child, err := importNode(props.Content[i+1], sc.JoinPointer(path, name), d)
			if err != nil {
				return nil, err
			}
			n.Properties = append(n.Properties, sc.Property{Name: name, Node: child})
		}
	}
	if required != nil {
		var names []string
		if err := required.Decode(&names); err != nil {
			return nil, &sc.SchemaError{Path: path, Reason: "required must be a list of names"}
		}
		n.Required = names
	}
	if strict {
		n.Unknown = sc.UnknownStrict
	}
	return n, nil
}
