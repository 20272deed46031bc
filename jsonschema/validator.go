package jsonschema

import (
	"bytes"
	"context"
	"sort"
	"strings"

	j "github.com/goccy/go-json"
	"github.com/pkg/errors"
	santhosh "github.com/santhosh-tekuri/jsonschema/v5"

	sc "github.com/reoring/sensorcheck"
	"github.com/reoring/sensorcheck/document"
	"github.com/reoring/sensorcheck/i18n"
)

const resourceURL = "sensorcheck.schema.json"

// Validator checks documents with a compiled JSON Schema and reports the
// failures as sc.Issues, worded and ordered like sc.Validate.
type Validator struct {
	node     *sc.Node
	compiled *santhosh.Schema
	nodes    map[string]nodeEntry
}

type nodeEntry struct {
	node  *sc.Node
	names []string // unescaped segments from the root
	rank  int      // pre-order position in declaration order
	end   int      // last rank inside the subtree
}

// Compile exports n with FromNode and compiles the result.
func Compile(n *sc.Node) (*Validator, error) {
	if err := n.Check(); err != nil {
		return nil, err
	}
	raw, err := j.Marshal(FromNode(n))
	if err != nil {
		return nil, errors.Wrap(err, "marshal schema")
	}
	c := santhosh.NewCompiler()
	c.Draft = santhosh.Draft2020
	if err := c.AddResource(resourceURL, bytes.NewReader(raw)); err != nil {
		return nil, errors.Wrap(err, "load schema")
	}
	compiled, err := c.Compile(resourceURL)
	if err != nil {
		return nil, errors.Wrap(err, "compile schema")
	}
	v := &Validator{node: n, compiled: compiled, nodes: map[string]nodeEntry{}}
	v.index(n, "", nil, 0)
	return v, nil
}

func (v *Validator) index(n *sc.Node, ptr string, names []string, rank int) int {
	e := nodeEntry{node: n, names: names, rank: rank}
	last := rank
	for _, p := range n.Properties {
		child := append(append([]string(nil), names...), p.Name)
		last = v.index(p.Node, sc.JoinPointer(ptr, p.Name), child, last+1)
	}
	e.end = last
	v.nodes[ptr] = e
	return last
}

// Validate returns nil when val conforms and sc.Issues otherwise. Unless
// opt.CollectAll is set only the first issue is returned.
func (v *Validator) Validate(ctx context.Context, val document.Value, opt sc.ValidateOpt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := v.compiled.Validate(val.Interface())
	if err == nil {
		return nil
	}
	var ve *santhosh.ValidationError
	if !errors.As(err, &ve) {
		return errors.Wrap(err, "jsonschema validate")
	}
	iss := v.issues(ve, val)
	if len(iss) == 0 {
		return errors.Errorf("jsonschema: %s", ve.Message)
	}
	if !opt.CollectAll {
		iss = iss[:1]
	}
	return iss
}

type rankedIssue struct {
	sc.Issue
	rank int
	key  string
}

func (v *Validator) issues(root *santhosh.ValidationError, val document.Value) sc.Issues {
	var ranked []rankedIssue
	seen := map[string]struct{}{}
	add := func(r rankedIssue) {
		id := r.Code + " " + r.Path
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		ranked = append(ranked, r)
	}
	for _, leaf := range leaves(root) {
		kw := keyword(leaf.KeywordLocation)
		loc := leaf.InstanceLocation
		e, ok := v.nodes[loc]
		if !ok && kw == "additionalProperties" {
			// some drafts report the offending member rather than the object
			loc = parentPointer(loc)
			e, ok = v.nodes[loc]
		}
		if !ok {
			continue
		}
		at := valueAt(val, e.names)
		switch kw {
		case "type":
			add(rankedIssue{Issue: sc.TypeIssue(loc, e.node.Kind.String(), at.Kind().String()), rank: e.rank})
		case "required":
			for _, p := range e.node.Properties {
				if !e.node.IsRequired(p.Name) {
					continue
				}
				if _, present := at.Get(p.Name); present {
					continue
				}
				ptr := sc.JoinPointer(loc, p.Name)
				add(rankedIssue{Issue: sc.RequiredIssue(ptr), rank: v.nodes[ptr].rank})
			}
		case "additionalProperties":
			for _, k := range at.Keys() {
				if _, declared := e.node.Property(k); declared {
					continue
				}
				ptr := sc.JoinPointer(loc, k)
				it := sc.Issue{Path: ptr}
				msg := i18n.T(sc.CodeUnknownKey, map[string]string{"name": it.Field(), "at": it.Parent()})
				add(rankedIssue{Issue: sc.IssueAt(ptr, sc.CodeUnknownKey, msg, nil), rank: e.end, key: k})
			}
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].rank != ranked[b].rank {
			return ranked[a].rank < ranked[b].rank
		}
		return ranked[a].key < ranked[b].key
	})
	out := make(sc.Issues, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Issue)
	}
	return out
}

func leaves(e *santhosh.ValidationError) []*santhosh.ValidationError {
	if len(e.Causes) == 0 {
		return []*santhosh.ValidationError{e}
	}
	var out []*santhosh.ValidationError
	for _, c := range e.Causes {
		out = append(out, leaves(c)...)
	}
	return out
}

func keyword(loc string) string {
	if i := strings.LastIndexByte(loc, '/'); i >= 0 {
		return loc[i+1:]
	}
	return loc
}

func parentPointer(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return ""
}

func valueAt(v document.Value, names []string) document.Value {
	for _, n := range names {
		v, _ = v.Get(n)
	}
	return v
}
