package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSeverity marks a CVE severity that could not be parsed or
	// is out of range. Fatal to the single finding, not the batch.
	ErrInvalidSeverity = errors.New("invalid severity")

	// ErrUnknownTier marks a priority tier missing from the SLA table.
	// The table is total by construction, so this signals a config bug.
	ErrUnknownTier = errors.New("unknown priority tier")

	// ErrMalformedFinding marks a raw finding missing a required
	// identifier. The record is dropped with a reported reason.
	ErrMalformedFinding = errors.New("malformed finding")
)

// FindingError records why one raw finding was excluded from a run.
type FindingError struct {
	Index     int    // position in the raw input
	ProjectID string // may be empty for malformed records
	CVE       string
	Err       error
}

func (e FindingError) Error() string {
	return fmt.Sprintf("finding %d (project %q, cve %q): %v", e.Index, e.ProjectID, e.CVE, e.Err)
}

func (e FindingError) Unwrap() error {
	return e.Err
}
