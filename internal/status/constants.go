// internal/status/constants.go
package status

// Per-document outcomes.
// Every examined document ends in exactly one of these.

// OutcomeUnchanged means no eligible field needed a replacement.
const OutcomeUnchanged = 0

// OutcomeModified means at least one field was replaced and persisted.
const OutcomeModified = 1

// OutcomeFailed means the document could not be read, parsed or written.
const OutcomeFailed = 2
