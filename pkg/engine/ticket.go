package engine

import (
	"bytes"
	"fmt"
	"text/template"
	"time"
)

// TicketSpec is the normalized ticket-creation request for one
// aggregated finding. Built once, never mutated, handed to the
// ticketing collaborator exactly once.
type TicketSpec struct {
	ProjectID   string
	ProjectName string
	CVE         string
	Priority    Tier
	DueDate     time.Time
	Assignee    string // accountId; empty means unassigned
	RiskFactors []RiskFactor
	Summary     string
	Description string
}

var descriptionTmpl = template.Must(template.New("ticket").Parse(
	`Application '{{.ProjectName}}' (Project ID: {{.ProjectID}}) is impacted by {{.CVE}}.

Severity: {{.Severity}}

Risk Factors:
{{- range .Factors}}
  - {{.Name}}: {{if .Present}}yes{{else}}no{{end}}
{{- end}}

Due Date: {{.DueDate}} (based on {{.SLADays}}-day SLA for {{.Priority}} priority)

Please investigate and remediate this vulnerability.
`))

// BuildTicketSpec assembles the ticketing payload for one finding. Pure
// transform: priority, due date, and owner are already resolved
// upstream. The rendered description tells the assignee which risk
// factors drove the priority.
func BuildTicketSpec(f ProjectFinding, tier Tier, dueDate time.Time, slaDays int) (TicketSpec, error) {
	factors := f.RiskFactors.Summary()

	var buf bytes.Buffer
	err := descriptionTmpl.Execute(&buf, map[string]interface{}{
		"ProjectName": f.ProjectName,
		"ProjectID":   f.ProjectID,
		"CVE":         f.CVE.ID,
		"Severity":    f.CVE.Severity.String(),
		"Factors":     factors,
		"DueDate":     dueDate.Format("2006-01-02"),
		"SLADays":     slaDays,
		"Priority":    tier.String(),
	})
	if err != nil {
		return TicketSpec{}, fmt.Errorf("failed to render ticket description: %w", err)
	}

	return TicketSpec{
		ProjectID:   f.ProjectID,
		ProjectName: f.ProjectName,
		CVE:         f.CVE.ID,
		Priority:    tier,
		DueDate:     dueDate,
		Assignee:    f.OwnerAccountID,
		RiskFactors: factors,
		Summary:     fmt.Sprintf("Vulnerability %s in %s", f.CVE.ID, f.ProjectName),
		Description: buf.String(),
	}, nil
}
