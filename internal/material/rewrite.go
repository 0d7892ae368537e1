// internal/material/rewrite.go
package material

import "gopkg.in/yaml.v3"

// Default field names of an eligible mapping.
const (
	DefaultField     = "material"
	DefaultTypeField = "material_type"
	DefaultMarker    = "slimefun"
)

// Change records one replaced scalar.
// Node already holds New when the change is reported.
type Change struct {
	Node *yaml.Node
	Old  string
	New  string
}

// Rewriter walks YAML trees and rewrites eligible material fields in place.
type Rewriter struct {
	Resolver *Resolver

	Field     string
	TypeField string
	Marker    string

	// Changes accumulates every replacement made by this rewriter.
	Changes []Change

	// anchored scalars replaced in their slot; aliases to them keep the old value
	detached map[*yaml.Node]struct{}
}

// NewRewriter returns a rewriter using the default field names.
func NewRewriter(r *Resolver) *Rewriter {
	return &Rewriter{
		Resolver:  r,
		Field:     DefaultField,
		TypeField: DefaultTypeField,
		Marker:    DefaultMarker,
	}
}

// Rewrite visits node and everything below it exactly once.
// It reports whether any field was replaced.
func (rw *Rewriter) Rewrite(node *yaml.Node) bool {
	if node == nil {
		return false
	}

	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		rw.expandAliases(node)
		changed := false
		for _, child := range node.Content {
			if rw.Rewrite(child) {
				changed = true
			}
		}
		return changed

	case yaml.MappingNode:
		rw.expandAliases(node)
		changed := rw.rewriteField(node)
		for i := 1; i < len(node.Content); i += 2 {
			if rw.Rewrite(node.Content[i]) {
				changed = true
			}
		}
		return changed

	default:
		// scalars, and aliases (their anchor is visited where it is defined)
		return false
	}
}

// RewriteAll rewrites every document of a stream.
func (rw *Rewriter) RewriteAll(docs []*yaml.Node) bool {
	changed := false
	for _, d := range docs {
		if rw.Rewrite(d) {
			changed = true
		}
	}
	return changed
}

func (rw *Rewriter) rewriteField(m *yaml.Node) bool {
	marker, _ := lookup(m, rw.TypeField)
	marker = deref(marker)
	if !isString(marker) || marker.Value != rw.Marker {
		return false
	}

	slot, at := lookup(m, rw.Field)
	field := deref(slot)
	if !isString(field) {
		return false
	}

	old := field.Value
	v, ok := rw.Resolver.Resolve(old)
	if !ok || v == old {
		return false
	}

	// plain value owned by this mapping: edit it where it is
	if at >= 0 && slot == field && field.Anchor == "" {
		field.Value = v
		rw.Changes = append(rw.Changes, Change{Node: field, Old: old, New: v})
		return true
	}

	// anchored, aliased or merged value: only this mapping's slot changes
	n := unanchored(field, slot)
	n.Value = v

	if at >= 0 {
		m.Content[at] = n
		if slot == field {
			rw.detach(field)
		}
	} else {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: rw.Field}
		n.Line, n.Column = 0, 0
		n.HeadComment, n.LineComment, n.FootComment = "", "", ""
		m.Content = append(m.Content, key, n)
	}

	rw.Changes = append(rw.Changes, Change{Node: n, Old: old, New: v})
	return true
}

func (rw *Rewriter) detach(n *yaml.Node) {
	if rw.detached == nil {
		rw.detached = map[*yaml.Node]struct{}{}
	}
	rw.detached[n] = struct{}{}
}

// expandAliases replaces aliases of detached anchors with plain copies
// of the value they referred to.
func (rw *Rewriter) expandAliases(node *yaml.Node) {
	if len(rw.detached) == 0 {
		return
	}
	for i, c := range node.Content {
		if c.Kind != yaml.AliasNode || c.Alias == nil {
			continue
		}
		if _, ok := rw.detached[c.Alias]; ok {
			node.Content[i] = unanchored(c.Alias, c)
		}
	}
}

// unanchored copies scalar src without its anchor, taking position and
// comments from at.
func unanchored(src, at *yaml.Node) *yaml.Node {
	n := *src
	n.Anchor = ""
	n.Line, n.Column = at.Line, at.Column
	n.HeadComment, n.LineComment, n.FootComment = at.HeadComment, at.LineComment, at.FootComment
	return &n
}

// lookup returns the value node of the first key equal to name and its
// index in m.Content. Keys inherited through "<<" merges are found too,
// with index -1.
func lookup(m *yaml.Node, name string) (*yaml.Node, int) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		k := m.Content[i]
		if k.Kind == yaml.ScalarNode && k.Value == name && !isMerge(k) {
			return m.Content[i+1], i + 1
		}
	}

	for i := 0; i+1 < len(m.Content); i += 2 {
		if !isMerge(m.Content[i]) {
			continue
		}
		src := deref(m.Content[i+1])
		if src == nil {
			continue
		}

		sources := []*yaml.Node{src}
		if src.Kind == yaml.SequenceNode {
			sources = src.Content
		}
		for _, s := range sources {
			s = deref(s)
			if s == nil || s.Kind != yaml.MappingNode {
				continue
			}
			if v, _ := lookup(s, name); v != nil {
				return v, -1
			}
		}
	}

	return nil, -1
}

func deref(n *yaml.Node) *yaml.Node {
	if n != nil && n.Kind == yaml.AliasNode {
		return n.Alias
	}
	return n
}

func isMerge(k *yaml.Node) bool {
	return k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge"
}

func isString(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str"
}
