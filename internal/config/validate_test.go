// internal/config/validate_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper to tweak a default config quickly
func with(mut func(n *NormalizerConfig)) *Config {
	cfg := Default()
	mut(&cfg.Normalizer)
	return cfg
}

// ---- validate ----

func TestValidate_DefaultIsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]func(n *NormalizerConfig){
		"no synonyms":      func(n *NormalizerConfig) { n.Synonyms = "" },
		"no root":          func(n *NormalizerConfig) { n.Root = "" },
		"no extensions":    func(n *NormalizerConfig) { n.Extensions = nil },
		"dot extension":    func(n *NormalizerConfig) { n.Extensions = []string{"."} },
		"nested exclude":   func(n *NormalizerConfig) { n.ExcludeDirs = []string{"a/b"} },
		"empty exclude":    func(n *NormalizerConfig) { n.ExcludeDirs = []string{""} },
		"no marker":        func(n *NormalizerConfig) { n.Marker = "" },
		"same field names": func(n *NormalizerConfig) { n.TypeField = n.Field },
		"zero indent":      func(n *NormalizerConfig) { n.Indent = 0 },
		"huge indent":      func(n *NormalizerConfig) { n.Indent = 9 },
	}

	for name, mut := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, Validate(with(mut)))
		})
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := with(func(n *NormalizerConfig) { n.Extensions = []string{"YML"} })
	require.NoError(t, Validate(cfg))
	assert.Equal(t, []string{"YML"}, cfg.Normalizer.Extensions)
}

func TestValidate_Nil(t *testing.T) {
	assert.Error(t, Validate(nil))
}

// ---- normalize ----

func TestNormalize_Extensions(t *testing.T) {
	cfg := with(func(n *NormalizerConfig) { n.Extensions = []string{"YML", ".yaml", " .Yml "} })
	Normalize(cfg)
	assert.Equal(t, []string{".yml", ".yaml"}, cfg.Normalizer.Extensions)
}

// ---- load ----

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "matfix.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
normalizer:
  synonyms: data/groups.yml
  root: /srv/addons
  exclude_dirs: [backup]
  dry_run: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	n := cfg.Normalizer
	assert.Equal(t, filepath.Join(dir, "data", "groups.yml"), n.Synonyms)
	assert.Equal(t, "/srv/addons", n.Root)
	assert.Equal(t, []string{"backup"}, n.ExcludeDirs)
	assert.True(t, n.DryRun)

	// untouched defaults
	assert.Equal(t, "material", n.Field)
	assert.Equal(t, "slimefun", n.Marker)
	assert.Equal(t, 2, n.Indent)
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "matfix.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mappings.yml"), cfg.Normalizer.Synonyms)
	assert.Equal(t, filepath.Join(dir, "addons"), cfg.Normalizer.Root)
}

func TestLoad_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matfix.yaml")
	require.NoError(t, os.WriteFile(path, []byte("normalizer:\n  materal: x\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
