package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tamzrod/material-normalizer/internal/material"
	"github.com/tamzrod/material-normalizer/internal/synonym"
)

func rewriter(t *testing.T, table string) *material.Rewriter {
	t.Helper()

	var root yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(table), &root))
	idx, skipped := synonym.Build(&root)
	require.Empty(t, skipped)

	return material.NewRewriter(&material.Resolver{Index: idx})
}

func write(t *testing.T, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.yml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func process(t *testing.T, src string) (string, bool) {
	t.Helper()

	d, err := Load(write(t, src))
	require.NoError(t, err)

	changed := d.Apply(rewriter(t, `g: [a, b]`))
	out, err := d.Render()
	require.NoError(t, err)
	return string(out), changed
}

func TestRender_PreservesFormatting(t *testing.T) {
	src := `# machine definitions
machines:
    grinder:   # keep this comment
        material_type: slimefun
        material: a
        name: 'Grinder'
        lore: ["first",   "second"]
`
	out, changed := process(t, src)
	require.True(t, changed)

	want := `# machine definitions
machines:
    grinder:   # keep this comment
        material_type: slimefun
        material: a | b
        name: 'Grinder'
        lore: ["first",   "second"]
`
	assert.Equal(t, want, out)
}

func TestRender_KeepsQuoteStyle(t *testing.T) {
	out, changed := process(t, "material_type: slimefun\nmaterial: 'a'\nother: \"b\"\n")
	require.True(t, changed)
	assert.Equal(t, "material_type: slimefun\nmaterial: 'a | b'\nother: \"b\"\n", out)

	out, changed = process(t, "material_type: slimefun\nmaterial: \"a\"  # c\n")
	require.True(t, changed)
	assert.Equal(t, "material_type: slimefun\nmaterial: \"a | b\"  # c\n", out)
}

func TestRender_FlowMapping(t *testing.T) {
	out, changed := process(t, "items: [{material_type: slimefun, material: a}, {material: a}]\n")
	require.True(t, changed)
	assert.Equal(t, "items: [{material_type: slimefun, material: a | b}, {material: a}]\n", out)
}

func TestRender_MultipleChangesAndUnicode(t *testing.T) {
	src := "- name: \"铜锭\"\n  material_type: slimefun\n  material: a\n- {name: 锡, material_type: slimefun, material: b}\n"
	out, changed := process(t, src)
	require.True(t, changed)
	assert.Equal(t, "- name: \"铜锭\"\n  material_type: slimefun\n  material: a | b\n- {name: 锡, material_type: slimefun, material: a | b}\n", out)
}

func TestRender_MultiDocumentStream(t *testing.T) {
	src := "x: 1\n---\nmaterial_type: slimefun\nmaterial: b\n"
	out, changed := process(t, src)
	require.True(t, changed)
	assert.Equal(t, "x: 1\n---\nmaterial_type: slimefun\nmaterial: a | b\n", out)
}

func TestRender_FallsBackToEncoding(t *testing.T) {
	// tagged scalars cannot be spliced
	out, changed := process(t, "material_type: slimefun\nmaterial: !!str a\n")
	require.True(t, changed)

	var got map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "a | b", got["material"])
	assert.Equal(t, "slimefun", got["material_type"])
}

func TestRender_UnchangedIsByteIdentical(t *testing.T) {
	src := "material_type: slimefun\nmaterial:    'a | b'   # canonical\n\n\nodd:   [1,2]\n"
	out, changed := process(t, src)
	assert.False(t, changed)
	assert.Equal(t, src, out)
}

func TestLoad_EmptyFile(t *testing.T) {
	d, err := Load(write(t, ""))
	require.NoError(t, err)
	assert.Empty(t, d.Docs)
	assert.False(t, d.Apply(rewriter(t, `g: [a, b]`)))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	_, err = Load(write(t, "a: [b\n"))
	assert.Error(t, err)
}

func TestApply_RecordsChanges(t *testing.T) {
	d, err := Load(write(t, "material_type: slimefun\nmaterial: a\n"))
	require.NoError(t, err)

	require.True(t, d.Apply(rewriter(t, `g: [a, b]`)))
	require.Len(t, d.Changes(), 1)
	assert.Equal(t, "a", d.Changes()[0].Old)
	assert.Equal(t, "a | b", d.Changes()[0].New)
}

func TestRender_AnchoredFieldKeepsAliasValue(t *testing.T) {
	out, changed := process(t, "item:\n  material_type: slimefun\n  material: &m a\ndisplay:\n  icon: *m\n")
	require.True(t, changed)

	var got map[string]map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "a | b", got["item"]["material"])
	assert.Equal(t, "a", got["display"]["icon"])
}
