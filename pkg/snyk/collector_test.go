package snyk

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"

	"github.com/user/cvetriage/pkg/engine"
	"github.com/user/cvetriage/pkg/owners"
)

func TestRiskFactorsFailClosed(t *testing.T) {
	// No characteristics observed at all: every factor stays false.
	require.Equal(t, engine.RiskFactorSet{}, riskFactors(Characteristics{}))

	tr, fa := true, false
	got := riskFactors(Characteristics{
		IsDeployed:       &tr,
		IsPublicFacing:   &fa,
		OSConditionMatch: &tr,
	})
	want := engine.RiskFactorSet{Deployed: true, OSCondition: true}
	require.Equal(t, want, got)
}

func TestFindingsForCVEFiltersAndMaps(t *testing.T) {
	tr := true
	project := Project{ID: "p1"}
	project.Attributes.Name = "api"

	issues := []Issue{
		{ID: "i1", Attributes: IssueAttributes{
			EffectiveSeverityLevel: "critical",
			Identifiers:            Identifiers{CVE: []string{"CVE-2024-1111"}},
			Characteristics:        Characteristics{IsPublicFacing: &tr},
		}},
		{ID: "i2", Attributes: IssueAttributes{
			EffectiveSeverityLevel: "low",
			Identifiers:            Identifiers{CVE: []string{"CVE-2020-9999"}},
		}},
		{ID: "i3", Attributes: IssueAttributes{
			EffectiveSeverityLevel: "high",
			Identifiers:            Identifiers{CVE: []string{"CVE-2024-1111"}},
			Characteristics:        Characteristics{IsLoadedPackage: &tr},
		}},
	}

	dir := owners.Directory{"p1": "u1"}
	findings := findingsForCVE(project, issues, "CVE-2024-1111", dir)

	require.Len(t, findings, 2, "only the two matching issues should produce findings")
	require.Equal(t, "p1", findings[0].ProjectID)
	require.Equal(t, "api", findings[0].ProjectName)
	require.Equal(t, "critical", findings[0].Severity)
	require.Equal(t, "u1", findings[0].OwnerAccountID)
	require.True(t, findings[0].RiskFactors.PublicFacing)
	require.True(t, findings[1].RiskFactors.LoadedPackage)
}

func TestCollectAcrossProjects(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodGet,
		"https://snyk.test/rest/orgs/org1/projects?version=2023-06-22&limit=100",
		httpmock.NewStringResponder(200, `{
			"data": [
				{"id": "p1", "attributes": {"name": "api"}},
				{"id": "p2", "attributes": {"name": "worker"}}
			],
			"links": {}
		}`))
	httpmock.RegisterResponder(http.MethodGet,
		"https://snyk.test/rest/orgs/org1/issues?version=2023-06-22&limit=100&project_ids=p1",
		httpmock.NewStringResponder(200, `{
			"data": [{
				"id": "i1",
				"attributes": {
					"effective_severity_level": "high",
					"identifiers": {"CVE": ["CVE-2024-1111"]},
					"characteristics": {"is_deployed": true}
				}
			}],
			"links": {}
		}`))
	httpmock.RegisterResponder(http.MethodGet,
		"https://snyk.test/rest/orgs/org1/issues?version=2023-06-22&limit=100&project_ids=p2",
		httpmock.NewStringResponder(200, `{"data": [], "links": {}}`))

	collector := &Collector{Client: c, Owners: owners.Directory{}, Workers: 2}
	findings, err := collector.Collect(context.Background(), "org1", "CVE-2024-1111")
	require.NoError(t, err)
	require.Len(t, findings, 1)
	require.Equal(t, "p1", findings[0].ProjectID)
	require.True(t, findings[0].RiskFactors.Deployed)
	require.False(t, findings[0].RiskFactors.PublicFacing)
}
