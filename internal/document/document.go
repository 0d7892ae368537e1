// internal/document/document.go
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/material-normalizer/internal/material"
)

// DefaultIndent is used when a document has to be fully re-encoded.
const DefaultIndent = 2

// Document is one YAML stream loaded from disk.
type Document struct {
	Path   string
	Source []byte
	Docs   []*yaml.Node

	// Indent applies to full re-encoding only.
	Indent int

	changes []material.Change
}

// Load reads and parses every YAML document in the file at path.
func Load(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document: read %s: %w", path, err)
	}

	docs, err := decodeAll(b)
	if err != nil {
		return nil, fmt.Errorf("document: parse %s: %w", path, err)
	}

	return &Document{
		Path:   path,
		Source: b,
		Docs:   docs,
		Indent: DefaultIndent,
	}, nil
}

func decodeAll(b []byte) ([]*yaml.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))

	var docs []*yaml.Node
	for {
		var n yaml.Node
		err := dec.Decode(&n)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, &n)
	}
}

// Apply runs rw over every document in the stream and reports whether
// anything changed. Changes are kept for Render.
func (d *Document) Apply(rw *material.Rewriter) bool {
	start := len(rw.Changes)
	changed := rw.RewriteAll(d.Docs)
	d.changes = append(d.changes, rw.Changes[start:]...)
	return changed
}

// Changes returns the replacements made by Apply.
func (d *Document) Changes() []material.Change {
	return d.changes
}

// Render returns the bytes to persist.
// Without changes the source is returned untouched. Otherwise each change
// is spliced into the source in place; when that cannot be done safely the
// whole stream is re-encoded.
func (d *Document) Render() ([]byte, error) {
	if len(d.changes) == 0 {
		return d.Source, nil
	}

	if out, err := splice(d.Source, d.changes); err == nil {
		if ok, _ := d.equivalent(out); ok {
			return out, nil
		}
	}

	return d.encode()
}

func (d *Document) encode() ([]byte, error) {
	indent := d.Indent
	if indent <= 0 {
		indent = DefaultIndent
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)

	for _, n := range d.Docs {
		if err := enc.Encode(n); err != nil {
			return nil, fmt.Errorf("document: encode %s: %w", d.Path, err)
		}
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("document: encode %s: %w", d.Path, err)
	}

	return buf.Bytes(), nil
}

// equivalent reports whether out decodes to the same data as the
// rewritten tree.
func (d *Document) equivalent(out []byte) (bool, error) {
	patched, err := decodeAll(out)
	if err != nil {
		return false, err
	}
	if len(patched) != len(d.Docs) {
		return false, nil
	}

	for i := range patched {
		var got, want any
		if err := patched[i].Decode(&got); err != nil {
			return false, err
		}
		if err := d.Docs[i].Decode(&want); err != nil {
			return false, err
		}
		if !reflect.DeepEqual(got, want) {
			return false, nil
		}
	}
	return true, nil
}
