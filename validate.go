package sensorcheck

import (
	"context"
	"sort"

	"github.com/reoring/sensorcheck/document"
	"github.com/reoring/sensorcheck/i18n"
)

// Validate checks v against the schema rooted at n. It returns nil when v
// conforms and Issues otherwise. Unless opt.CollectAll is set, it stops at the
// first issue.
//
// Declared properties are visited in declaration order; undeclared keys are
// ignored unless the node is UnknownStrict, in which case they are reported in
// ascending key order after the declared ones.
func Validate(ctx context.Context, n *Node, v document.Value, opt ValidateOpt) error {
	w := walker{ctx: ctx, opt: opt}
	w.node(n, v, "")
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(w.issues) > 0 {
		return w.issues
	}
	return nil
}

type walker struct {
	ctx    context.Context
	opt    ValidateOpt
	issues Issues
}

func (w *walker) done() bool {
	return (!w.opt.CollectAll && len(w.issues) > 0) || w.ctx.Err() != nil
}

func (w *walker) add(it Issue) { w.issues = AppendIssues(w.issues, it) }

func (w *walker) node(n *Node, v document.Value, path string) {
	if !n.Kind.Accepts(v.Kind()) {
		w.add(typeIssue(path, n.Kind.String(), v.Kind().String()))
		return
	}
	if n.Kind != NodeObject {
		return
	}
	members, _ := v.AsObject()
	for _, p := range n.Properties {
		if w.done() {
			return
		}
		child := JoinPointer(path, p.Name)
		mv, ok := members[p.Name]
		if !ok {
			if n.IsRequired(p.Name) {
				w.add(requiredIssue(child))
			}
			continue
		}
		w.node(p.Node, mv, child)
	}
	if n.Unknown != UnknownStrict {
		return
	}
	for _, k := range sortedKeys(members) {
		if w.done() {
			return
		}
		if _, known := n.Property(k); !known {
			child := JoinPointer(path, k)
			w.add(IssueAt(child, CodeUnknownKey, i18n.T(CodeUnknownKey, placement(child)), nil))
		}
	}
}

func requiredIssue(path string) Issue {
	return IssueAt(path, CodeRequired, i18n.T(CodeRequired, placement(path)), nil)
}

func typeIssue(path, expected, got string) Issue {
	params := map[string]any{"expected": expected, "got": got}
	if path == "" {
		msg := i18n.T("invalid_type_root", map[string]string{"expected": expected, "got": got})
		return Issue{Path: "/", Code: CodeInvalidType, Message: msg, Params: params}
	}
	data := placement(path)
	data["expected"], data["got"] = expected, got
	return Issue{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, data), Params: params}
}

// placement names the property at path and the object holding it.
func placement(path string) map[string]string {
	it := Issue{Path: path}
	return map[string]string{"name": it.Field(), "at": it.Parent()}
}

func sortedKeys(m map[string]document.Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
