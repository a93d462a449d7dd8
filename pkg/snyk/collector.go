package snyk

import (
	"context"
	"fmt"

	"github.com/gammazero/workerpool"

	"github.com/user/cvetriage/pkg/engine"
	"github.com/user/cvetriage/pkg/owners"
)

const defaultWorkers = 8

// Collector fetches the projects impacted by a CVE and turns their
// issues into raw findings for the scoring pipeline. Issue fetching
// fans out across projects; results keep the project listing order so
// downstream aggregation is deterministic.
type Collector struct {
	Client  *Client
	Owners  owners.Directory
	Workers int
}

// Collect returns one raw finding per (project, matching issue) pair.
// A project hit through several dependency paths yields several
// findings; the aggregator merges them.
func (c *Collector) Collect(ctx context.Context, orgID, cveID string) ([]engine.RawFinding, error) {
	projects, err := c.Client.ListProjects(ctx, orgID)
	if err != nil {
		return nil, err
	}

	workers := c.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	perProject := make([][]engine.RawFinding, len(projects))
	errs := make([]error, len(projects))

	wp := workerpool.New(workers)
	for i, project := range projects {
		i, project := i, project
		wp.Submit(func() {
			issues, err := c.Client.ListIssues(ctx, orgID, project.ID)
			if err != nil {
				errs[i] = err
				return
			}
			perProject[i] = findingsForCVE(project, issues, cveID, c.Owners)
		})
	}
	wp.StopWait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("issue collection failed: %w", err)
		}
	}

	var findings []engine.RawFinding
	for _, batch := range perProject {
		findings = append(findings, batch...)
	}
	return findings, nil
}

func findingsForCVE(project Project, issues []Issue, cveID string, dir owners.Directory) []engine.RawFinding {
	var out []engine.RawFinding
	for _, issue := range issues {
		if !matchesCVE(issue, cveID) {
			continue
		}
		owner, _ := dir.Lookup(project.ID, project.Attributes.Name)
		out = append(out, engine.RawFinding{
			ProjectID:      project.ID,
			ProjectName:    project.Attributes.Name,
			CVE:            cveID,
			Severity:       issue.Attributes.EffectiveSeverityLevel,
			RiskFactors:    riskFactors(issue.Attributes.Characteristics),
			OwnerAccountID: owner,
		})
	}
	return out
}

func matchesCVE(issue Issue, cveID string) bool {
	for _, id := range issue.Attributes.Identifiers.CVE {
		if id == cveID {
			return true
		}
	}
	return false
}

// riskFactors derives the four signals from AppRisk characteristics.
// A missing signal stays false: absence of evidence is never treated
// as risk.
func riskFactors(ch Characteristics) engine.RiskFactorSet {
	return engine.RiskFactorSet{
		Deployed:      boolValue(ch.IsDeployed),
		PublicFacing:  boolValue(ch.IsPublicFacing),
		LoadedPackage: boolValue(ch.IsLoadedPackage),
		OSCondition:   boolValue(ch.OSConditionMatch),
	}
}

func boolValue(b *bool) bool {
	return b != nil && *b
}
