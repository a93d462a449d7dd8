package engine

import "fmt"

// Aggregation is the deterministic result of merging raw findings by
// project. Iteration order is the order of first appearance in the
// input, so the same input always yields the same output regardless of
// how the raw records were collected.
type Aggregation struct {
	order    []string
	findings map[string]ProjectFinding

	// Errors lists every raw record excluded from the result, with the
	// reason. One bad record never aborts the batch.
	Errors []FindingError
}

// Aggregate merges a list of raw findings into one ProjectFinding per
// project. A project seen through multiple dependency paths gets its
// risk factors OR-merged and keeps the maximum observed severity; the
// project name and owner come from the first occurrence, later
// disagreements are source-data noise and ignored. Records missing a
// project or CVE identifier, or carrying an unparseable severity, are
// dropped and reported.
func Aggregate(raw []RawFinding) *Aggregation {
	agg := &Aggregation{findings: make(map[string]ProjectFinding)}

	for i, rf := range raw {
		if rf.ProjectID == "" || rf.CVE == "" {
			agg.Errors = append(agg.Errors, FindingError{
				Index:     i,
				ProjectID: rf.ProjectID,
				CVE:       rf.CVE,
				Err:       fmt.Errorf("%w: missing project or CVE identifier", ErrMalformedFinding),
			})
			continue
		}

		severity, err := ParseSeverity(rf.Severity)
		if err != nil {
			agg.Errors = append(agg.Errors, FindingError{
				Index:     i,
				ProjectID: rf.ProjectID,
				CVE:       rf.CVE,
				Err:       err,
			})
			continue
		}

		existing, seen := agg.findings[rf.ProjectID]
		if !seen {
			agg.order = append(agg.order, rf.ProjectID)
			agg.findings[rf.ProjectID] = ProjectFinding{
				ProjectID:      rf.ProjectID,
				ProjectName:    rf.ProjectName,
				CVE:            CveReference{ID: rf.CVE, Severity: severity},
				RiskFactors:    rf.RiskFactors,
				OwnerAccountID: rf.OwnerAccountID,
			}
			continue
		}

		existing.RiskFactors = existing.RiskFactors.Merge(rf.RiskFactors)
		existing.CVE.Severity = existing.CVE.Severity.Max(severity)
		agg.findings[rf.ProjectID] = existing
	}

	return agg
}

// Projects returns the aggregated findings in first-appearance order.
func (a *Aggregation) Projects() []ProjectFinding {
	out := make([]ProjectFinding, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.findings[id])
	}
	return out
}

// Find looks up the aggregated finding for a project.
func (a *Aggregation) Find(projectID string) (ProjectFinding, bool) {
	f, ok := a.findings[projectID]
	return f, ok
}

// Len returns the number of aggregated projects.
func (a *Aggregation) Len() int {
	return len(a.order)
}
