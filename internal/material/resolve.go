// internal/material/resolve.go
package material

import (
	"sort"
	"strings"

	"github.com/tamzrod/material-normalizer/internal/synonym"
)

// Separator joins identifiers in the canonical multi-identifier form.
const Separator = " | "

// Resolver decides whether a material value needs a canonical replacement.
// It holds no mutable state; the index is shared read-only.
type Resolver struct {
	Index *synonym.Index

	// OnChange is called once per accepted replacement. Optional.
	OnChange func(old, new string)
}

// Resolve returns the replacement for value and true, or "" and false
// when nothing should change. Non-string values never change.
func (r *Resolver) Resolve(value any) (string, bool) {
	s, ok := value.(string)
	if !ok {
		return "", false
	}

	var out string
	if strings.Contains(s, "|") {
		out, ok = r.expand(s)
	} else {
		out, ok = r.replace(s)
	}
	if !ok {
		return "", false
	}

	if r.OnChange != nil {
		r.OnChange(s, out)
	}
	return out, true
}

// expand tops up an identifier set with missing group members.
// Formatting alone never triggers a change.
func (r *Resolver) expand(s string) (string, bool) {
	parts := strings.Split(strings.ReplaceAll(s, " ", ""), "|")

	original := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		original[p] = struct{}{}
	}

	grown := make(map[string]struct{}, len(original))
	for p := range original {
		grown[p] = struct{}{}
	}

	added := false
	for p := range original {
		group, ok := r.Index.Lookup(p)
		if !ok {
			continue
		}
		for _, id := range group {
			if _, seen := grown[id]; !seen {
				grown[id] = struct{}{}
				added = true
			}
		}
	}

	if !added {
		return "", false
	}
	return Canonical(keys(grown)), true
}

// replace swaps a bare identifier for its full group.
func (r *Resolver) replace(s string) (string, bool) {
	group, ok := r.Index.Lookup(s)
	if !ok {
		return "", false
	}

	set := make(map[string]struct{}, len(group))
	for _, id := range group {
		set[id] = struct{}{}
	}

	// group is exactly {s}
	if _, self := set[s]; self && len(set) == 1 {
		return "", false
	}
	return Canonical(keys(set)), true
}

// Canonical renders identifiers sorted ascending, deduplicated,
// joined by Separator.
func Canonical(ids []string) string {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	out := keys(set)
	return strings.Join(out, Separator)
}

// keys returns the sorted members of set.
func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
