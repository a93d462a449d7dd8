package engine

import (
	"fmt"
	"time"
)

// Pipeline runs the scoring stage: aggregate raw findings, assign a
// priority tier per project, derive the SLA due date, and build ticket
// specs. No I/O and no retained state; each run is independent.
type Pipeline struct {
	engine *PriorityEngine
	sla    SLATable
}

// NewPipeline validates the configuration surface once so the run
// itself cannot hit a partial table.
func NewPipeline(thresholds Thresholds, sla SLATable) (*Pipeline, error) {
	engine, err := NewPriorityEngine(thresholds)
	if err != nil {
		return nil, err
	}
	if err := sla.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{engine: engine, sla: sla}, nil
}

// Run produces one TicketSpec per aggregated project, plus the list of
// per-finding errors. Per-finding failures are collected, never fatal;
// an SLA lookup failure is a config bug and aborts the run.
func (p *Pipeline) Run(raw []RawFinding, referenceDate time.Time) ([]TicketSpec, []FindingError, error) {
	agg := Aggregate(raw)
	findingErrs := agg.Errors

	specs := make([]TicketSpec, 0, agg.Len())
	for _, f := range agg.Projects() {
		tier, err := p.engine.Score(f.CVE, f.RiskFactors)
		if err != nil {
			findingErrs = append(findingErrs, FindingError{
				ProjectID: f.ProjectID,
				CVE:       f.CVE.ID,
				Err:       err,
			})
			continue
		}

		dueDate, err := p.sla.DueDate(tier, referenceDate)
		if err != nil {
			return nil, findingErrs, err
		}

		spec, err := BuildTicketSpec(f, tier, dueDate, p.sla[tier])
		if err != nil {
			return nil, findingErrs, fmt.Errorf("project %s: %w", f.ProjectID, err)
		}
		specs = append(specs, spec)
	}

	return specs, findingErrs, nil
}
