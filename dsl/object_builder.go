package dsl

import (
	sc "github.com/reoring/sensorcheck"
)

type objectBuilder struct {
	props    []sc.Property
	index    map[string]int
	required []string
	unknown  sc.UnknownPolicy
	err      error
}

type fieldStep struct {
	b    *objectBuilder
	name string
}

// Object creates a new object builder. Undeclared keys are ignored unless
// UnknownStrict is called.
func Object() *objectBuilder {
	return &objectBuilder{
		index:   map[string]int{},
		unknown: sc.UnknownIgnore,
	}
}

// Field registers a property with its node. Properties are validated in the
// order they are registered. Registering a name twice is reported by Build.
func (b *objectBuilder) Field(name string, n *sc.Node) *fieldStep {
	if _, dup := b.index[name]; dup {
		if b.err == nil {
			b.err = &sc.SchemaError{Path: "", Reason: "property '" + name + "' declared twice"}
		}
	} else {
		b.index[name] = len(b.props)
		b.props = append(b.props, sc.Property{Name: name, Node: n})
	}
	return &fieldStep{b: b, name: name}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	f.b.Require(f.name)
	return f.b
}

// Optional marks the field as optional (default) and returns the builder.
func (f *fieldStep) Optional() *objectBuilder {
	out := f.b.required[:0]
	for _, r := range f.b.required {
		if r != f.name {
			out = append(out, r)
		}
	}
	f.b.required = out
	return f.b
}

func (f *fieldStep) Field(name string, n *sc.Node) *fieldStep { return f.b.Field(name, n) }
func (f *fieldStep) Require(names ...string) *objectBuilder   { return f.b.Require(names...) }
func (f *fieldStep) UnknownStrict() *objectBuilder            { return f.b.UnknownStrict() }
func (f *fieldStep) UnknownIgnore() *objectBuilder            { return f.b.UnknownIgnore() }
func (f *fieldStep) Build() (*sc.Node, error)                 { return f.b.Build() }
func (f *fieldStep) MustBuild() *sc.Node                      { return f.b.MustBuild() }

// Require marks one or more fields as required. Names keep the order of the
// first call that mentions them.
func (b *objectBuilder) Require(names ...string) *objectBuilder {
	for _, n := range names {
		if !contains(b.required, n) {
			b.required = append(b.required, n)
		}
	}
	return b
}

// UnknownStrict rejects keys that are not declared with Field.
func (b *objectBuilder) UnknownStrict() *objectBuilder {
	b.unknown = sc.UnknownStrict
	return b
}

// UnknownIgnore accepts and skips undeclared keys.
func (b *objectBuilder) UnknownIgnore() *objectBuilder {
	b.unknown = sc.UnknownIgnore
	return b
}

// Build finalizes the object node and checks the whole subtree.
func (b *objectBuilder) Build() (*sc.Node, error) {
	if b.err != nil {
		return nil, b.err
	}
	n := &sc.Node{
		Kind:       sc.NodeObject,
		Properties: append([]sc.Property(nil), b.props...),
		Required:   append([]string(nil), b.required...),
		Unknown:    b.unknown,
	}
	if err := n.Check(); err != nil {
		return nil, err
	}
	return n, nil
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() *sc.Node {
	n, err := b.Build()
	if err != nil {
		panic(err)
	}
	return n
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
