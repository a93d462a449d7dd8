package engine

// CveReference identifies one CVE with its normalized severity.
type CveReference struct {
	ID       string   `json:"id"`
	Severity Severity `json:"severity"`
}

// RawFinding is one unaggregated scan record: a single (project, CVE)
// observation from one dependency path. Severity arrives as the raw
// value reported by the scan source and is normalized during
// aggregation.
type RawFinding struct {
	ProjectID      string        `json:"project_id"`
	ProjectName    string        `json:"project_name"`
	CVE            string        `json:"cve"`
	Severity       string        `json:"severity"`
	RiskFactors    RiskFactorSet `json:"risk_factors"`
	OwnerAccountID string        `json:"owner_account_id,omitempty"`
}

// ProjectFinding is the aggregated, immutable view of one impacted
// project for one CVE. Built once by the aggregator and consumed once
// by the ticket builder.
type ProjectFinding struct {
	ProjectID      string        `json:"project_id"`
	ProjectName    string        `json:"project_name"`
	CVE            CveReference  `json:"cve"`
	RiskFactors    RiskFactorSet `json:"risk_factors"`
	OwnerAccountID string        `json:"owner_account_id,omitempty"`
}
