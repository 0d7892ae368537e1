// internal/writer/types.go
package writer

// Plan describes how rewritten documents are persisted.
type Plan struct {
	// DryRun reports writes without touching the filesystem.
	DryRun bool
}

// Writer persists one rendered document back to its location.
type Writer interface {
	Write(path string, data []byte) error
}
