// internal/document/splice.go
package document

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/material-normalizer/internal/material"
)

var errNoSplice = errors.New("document: change cannot be spliced")

type edit struct {
	start int
	end   int
	text  []byte
}

// splice replaces each changed scalar token in src with its new value,
// rendered in the token's original quoting style. Everything else in src
// is kept byte for byte.
func splice(src []byte, changes []material.Change) ([]byte, error) {
	lines := lineOffsets(src)

	edits := make([]edit, 0, len(changes))
	for _, c := range changes {
		e, err := locate(src, lines, c)
		if err != nil {
			return nil, err
		}
		edits = append(edits, e)
	}

	// apply back to front so earlier offsets stay valid
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })
	for i := 1; i < len(edits); i++ {
		if edits[i].end > edits[i-1].start {
			return nil, errNoSplice
		}
	}

	out := append([]byte(nil), src...)
	for _, e := range edits {
		tail := append(append([]byte(nil), e.text...), out[e.end:]...)
		out = append(out[:e.start], tail...)
	}
	return out, nil
}

func locate(src []byte, lines []int, c material.Change) (edit, error) {
	n := c.Node
	if n == nil || n.Line < 1 || n.Line > len(lines) || n.Column < 1 {
		return edit{}, errNoSplice
	}

	start, ok := columnOffset(src, lines[n.Line-1], n.Column)
	if !ok {
		return edit{}, errNoSplice
	}

	old, err := token(n.Style, c.Old)
	if err != nil {
		return edit{}, err
	}
	if !bytes.HasPrefix(src[start:], old) {
		return edit{}, errNoSplice
	}

	end := start + len(old)
	if n.Style == 0 && !plainEnd(src, end) {
		return edit{}, errNoSplice
	}

	text, err := token(n.Style, c.New)
	if err != nil {
		return edit{}, err
	}

	return edit{start: start, end: end, text: text}, nil
}

// token renders value as a single-line scalar in the given style.
func token(style yaml.Style, value string) ([]byte, error) {
	if style&(yaml.LiteralStyle|yaml.FoldedStyle|yaml.TaggedStyle) != 0 {
		return nil, errNoSplice
	}

	b, err := yaml.Marshal(&yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Style: style,
		Value: value,
	})
	if err != nil {
		return nil, fmt.Errorf("document: render scalar: %w", err)
	}

	b = bytes.TrimSuffix(b, []byte("\n"))
	if len(b) == 0 || bytes.ContainsAny(b, "\r\n") {
		return nil, errNoSplice
	}
	return b, nil
}

// lineOffsets returns the byte offset of the start of every line.
func lineOffsets(src []byte) []int {
	offs := []int{0}
	for i, c := range src {
		if c == '\n' {
			offs = append(offs, i+1)
		}
	}
	return offs
}

// columnOffset converts a 1-based character column into a byte offset.
func columnOffset(src []byte, lineStart, column int) (int, bool) {
	off := lineStart
	for col := 1; col < column; col++ {
		if off >= len(src) || src[off] == '\n' {
			return 0, false
		}
		_, size := utf8.DecodeRune(src[off:])
		off += size
	}
	return off, off <= len(src)
}

// plainEnd reports whether a plain scalar may end at off.
func plainEnd(src []byte, off int) bool {
	if off >= len(src) {
		return true
	}
	switch src[off] {
	case ' ', '\t', '\r', '\n', ',', ']', '}':
		return true
	}
	return false
}
