// internal/status/snapshot.go
package status

// Snapshot holds the counters of one run.
// It contains no logic beyond counting.
type Snapshot struct {
	Examined int
	Modified int
	Failed   int
	Changes  int
}

// Record counts one examined document and the field changes made to it.
func (s *Snapshot) Record(outcome int, changes int) {
	s.Examined++

	switch outcome {
	case OutcomeModified:
		s.Modified++
		s.Changes += changes
	case OutcomeFailed:
		s.Failed++
	}
}
