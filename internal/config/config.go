// internal/config/config.go
package config

type Config struct {
	Normalizer NormalizerConfig `yaml:"normalizer"`
}

// ---- NORMALIZER ----

type NormalizerConfig struct {
	// Synonym table: group label -> identifiers
	Synonyms string `yaml:"synonyms"`

	// Document discovery
	Root        string   `yaml:"root"`
	ExcludeDirs []string `yaml:"exclude_dirs"`
	Extensions  []string `yaml:"extensions"`

	// Eligible mapping: <type_field>: <marker> next to <field>
	Field     string `yaml:"field"`
	TypeField string `yaml:"type_field"`
	Marker    string `yaml:"marker"`

	// Output
	Indent int  `yaml:"indent"` // full re-encode only
	DryRun bool `yaml:"dry_run"`
}

// Default returns the configuration used when no file is given.
// Paths are relative to the working directory.
func Default() *Config {
	return &Config{
		Normalizer: NormalizerConfig{
			Synonyms:    "mappings.yml",
			Root:        "addons",
			ExcludeDirs: []string{"saveditems", "scripts"},
			Extensions:  []string{".yml", ".yaml"},
			Field:       "material",
			TypeField:   "material_type",
			Marker:      "slimefun",
			Indent:      2,
		},
	}
}
