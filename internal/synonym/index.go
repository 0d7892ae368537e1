// internal/synonym/index.go
package synonym

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrNoTable is returned by Load when the synonym table does not exist.
var ErrNoTable = errors.New("synonym: table not found")

// Index maps an identifier to the members of the group it belongs to.
// It is built once and never mutated afterwards.
type Index struct {
	groups map[string][]string
	labels map[string]string
}

// Empty returns an index with no entries.
func Empty() *Index {
	return &Index{
		groups: map[string][]string{},
		labels: map[string]string{},
	}
}

// Lookup returns the group members for id.
// The returned slice is shared and MUST NOT be modified.
func (x *Index) Lookup(id string) ([]string, bool) {
	if x == nil {
		return nil, false
	}
	g, ok := x.groups[id]
	return g, ok
}

// Len is the number of indexed identifiers.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.groups)
}

// Entry is one indexed identifier with the group it resolved to.
type Entry struct {
	ID      string
	Group   string
	Members []string
}

// Entries lists every identifier in byte order together with the label
// of the group that won it.
func (x *Index) Entries() []Entry {
	if x == nil {
		return nil
	}

	ids := make([]string, 0, len(x.groups))
	for id := range x.groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Entry, 0, len(ids))
	for _, id := range ids {
		out = append(out, Entry{
			ID:      id,
			Group:   x.labels[id],
			Members: append([]string(nil), x.groups[id]...),
		})
	}
	return out
}

// Load reads a synonym table from path.
// It always returns a usable index: on failure the index is empty and
// the error explains why. Per-entry problems do not fail the load; they
// are returned as skipped.
func Load(path string) (idx *Index, skipped []error, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Empty(), nil, fmt.Errorf("%w: %s", ErrNoTable, path)
		}
		return Empty(), nil, fmt.Errorf("synonym: read %s: %w", path, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(b, &root); err != nil {
		return Empty(), nil, fmt.Errorf("synonym: parse %s: %w", path, err)
	}

	idx, skipped = Build(&root)
	return idx, skipped, nil
}

// Build derives an index from a table of group label -> identifiers.
// Groups are read in document order; when an identifier appears in
// several groups the last one wins.
func Build(root *yaml.Node) (*Index, []error) {
	idx := Empty()
	if root == nil {
		return idx, nil
	}

	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return idx, nil
		}
		root = root.Content[0]
	}

	// empty stream, empty document or explicit null
	if root.Kind == 0 || (root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null") {
		return idx, nil
	}
	if root.Kind != yaml.MappingNode {
		return idx, []error{fmt.Errorf("synonym: line %d: table must be a mapping", root.Line)}
	}

	var skipped []error

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		label := key.Value

		if val.Kind == yaml.AliasNode && val.Alias != nil {
			val = val.Alias
		}
		if val.Kind != yaml.SequenceNode {
			skipped = append(skipped, fmt.Errorf(
				"synonym: line %d: group %q is not a sequence",
				val.Line, label,
			))
			continue
		}

		members := make([]string, 0, len(val.Content))
		for _, m := range val.Content {
			if m.Kind != yaml.ScalarNode || m.ShortTag() != "!!str" {
				skipped = append(skipped, fmt.Errorf(
					"synonym: line %d: group %q: member is not a string",
					m.Line, label,
				))
				continue
			}
			members = append(members, m.Value)
		}

		for _, id := range members {
			idx.groups[id] = members
			idx.labels[id] = label
		}
	}

	return idx, skipped
}
