package sensorcheck

import (
	"fmt"

	"github.com/reoring/sensorcheck/document"
)

// NodeKind is the kind of value a schema node accepts.
type NodeKind int

const (
	NodeObject NodeKind = iota
	NodeString
	NodeNumber
	NodeBoolean
)

// String returns the JSON Schema type name.
func (k NodeKind) String() string {
	switch k {
	case NodeObject:
		return "object"
	case NodeString:
		return "string"
	case NodeNumber:
		return "number"
	case NodeBoolean:
		return "boolean"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// Accepts reports whether a document value of kind k satisfies nodes of this
// kind. There is no coercion: a numeric string is not a number.
func (k NodeKind) Accepts(dk document.Kind) bool {
	switch k {
	case NodeObject:
		return dk == document.KindObject
	case NodeString:
		return dk == document.KindString
	case NodeNumber:
		return dk == document.KindNumber
	case NodeBoolean:
		return dk == document.KindBool
	}
	return false
}

// Property is a named child of an object node.
type Property struct {
	Name string
	Node *Node
}

// Node is one descriptor of the schema tree. Object nodes list their
// properties in declaration order and name the mandatory ones in Required.
//
// Nodes are built once (see package dsl) and must not be modified afterwards.
type Node struct {
	Kind       NodeKind
	Properties []Property
	Required   []string
	Unknown    UnknownPolicy
}

// Property looks up a declared property by name.
func (n *Node) Property(name string) (*Node, bool) {
	for _, p := range n.Properties {
		if p.Name == name {
			return p.Node, true
		}
	}
	return nil, false
}

// IsRequired reports whether name is mandatory on this object node.
func (n *Node) IsRequired(name string) bool {
	for _, r := range n.Required {
		if r == name {
			return true
		}
	}
	return false
}

// SchemaError reports a malformed schema tree.
type SchemaError struct {
	Path   string // JSON Pointer of the offending node
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema at %s: %s", DottedPath(e.Path), e.Reason)
}

// Check verifies that the tree rooted at n is well formed. Only object nodes
// may declare properties, names must be non-empty and unique, and every
// required name must be declared.
func (n *Node) Check() error { return n.check("") }

func (n *Node) check(path string) error {
	if n == nil {
		return &SchemaError{Path: path, Reason: "nil node"}
	}
	switch n.Kind {
	case NodeObject:
	case NodeString, NodeNumber, NodeBoolean:
		if len(n.Properties) > 0 || len(n.Required) > 0 {
			return &SchemaError{Path: path, Reason: n.Kind.String() + " node cannot declare properties"}
		}
		return nil
	default:
		return &SchemaError{Path: path, Reason: "unknown node kind " + n.Kind.String()}
	}
	seen := make(map[string]struct{}, len(n.Properties))
	for _, p := range n.Properties {
		if p.Name == "" {
			return &SchemaError{Path: path, Reason: "empty property name"}
		}
		if _, dup := seen[p.Name]; dup {
			return &SchemaError{Path: path, Reason: fmt.Sprintf("property '%s' declared twice", p.Name)}
		}
		seen[p.Name] = struct{}{}
		if err := p.Node.check(JoinPointer(path, p.Name)); err != nil {
			return err
		}
	}
	for _, r := range n.Required {
		if _, ok := seen[r]; !ok {
			return &SchemaError{Path: path, Reason: fmt.Sprintf("required property '%s' is not declared", r)}
		}
	}
	return nil
}
