// internal/status/encode.go
package status

import "fmt"

// Summary renders the final operator line for a run.
// No IO. No side effects.
func Summary(s Snapshot, dryRun bool) string {
	verb := "modified"
	if dryRun {
		verb = "would modify"
	}

	line := fmt.Sprintf("processed %d files, %s %d files (%d fields)",
		s.Examined, verb, s.Modified, s.Changes)

	if s.Failed > 0 {
		line += fmt.Sprintf(", %d failed", s.Failed)
	}
	return line
}
