package snyk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	// DefaultBaseURL is the Snyk REST API endpoint.
	DefaultBaseURL = "https://api.snyk.io/rest"

	apiVersion = "2023-06-22"
	pageLimit  = 100
)

// Client talks to the Snyk REST API. Retries and backoff live here at
// the boundary; callers see already-resolved data.
type Client struct {
	BaseURL string

	token string
	http  *retryablehttp.Client
}

// NewClient builds a Snyk client authenticated with the given API token.
func NewClient(token string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = nil
	return &Client{
		BaseURL: DefaultBaseURL,
		token:   token,
		http:    rc,
	}
}

// Project is one Snyk project (JSON:API resource).
type Project struct {
	ID         string `json:"id"`
	Attributes struct {
		Name string `json:"name"`
	} `json:"attributes"`
}

// Issue is one Snyk issue for a project.
type Issue struct {
	ID         string          `json:"id"`
	Attributes IssueAttributes `json:"attributes"`
}

// IssueAttributes carries the subset of issue data the triage pipeline
// consumes: severity, CVE identifiers, and AppRisk characteristics.
type IssueAttributes struct {
	Title                  string          `json:"title"`
	EffectiveSeverityLevel string          `json:"effective_severity_level"`
	Identifiers            Identifiers     `json:"identifiers"`
	Characteristics        Characteristics `json:"characteristics"`
}

// Identifiers lists the vulnerability identifiers attached to an issue.
type Identifiers struct {
	CVE []string `json:"CVE"`
}

// Characteristics are the Snyk AppRisk risk-factor signals. Pointers
// distinguish "observed false" from "not observed"; both collapse to
// false downstream (fail closed toward lower priority).
type Characteristics struct {
	IsDeployed       *bool `json:"is_deployed"`
	IsPublicFacing   *bool `json:"is_public_facing"`
	IsLoadedPackage  *bool `json:"is_loaded_package"`
	OSConditionMatch *bool `json:"os_condition_match"`
}

type page struct {
	Data  json.RawMessage `json:"data"`
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
}

// ListProjects fetches all projects in the organization, following
// pagination links.
func (c *Client) ListProjects(ctx context.Context, orgID string) ([]Project, error) {
	path := fmt.Sprintf("/orgs/%s/projects?version=%s&limit=%d", url.PathEscape(orgID), apiVersion, pageLimit)

	var projects []Project
	for path != "" {
		var pg page
		if err := c.get(ctx, path, &pg); err != nil {
			return nil, fmt.Errorf("failed to fetch projects: %w", err)
		}
		var batch []Project
		if err := json.Unmarshal(pg.Data, &batch); err != nil {
			return nil, fmt.Errorf("failed to decode projects page: %w", err)
		}
		projects = append(projects, batch...)
		path = pg.Links.Next
	}
	return projects, nil
}

// ListIssues fetches all issues for one project, following pagination
// links.
func (c *Client) ListIssues(ctx context.Context, orgID, projectID string) ([]Issue, error) {
	path := fmt.Sprintf("/orgs/%s/issues?version=%s&limit=%d&project_ids=%s",
		url.PathEscape(orgID), apiVersion, pageLimit, url.QueryEscape(projectID))

	var issues []Issue
	for path != "" {
		var pg page
		if err := c.get(ctx, path, &pg); err != nil {
			return nil, fmt.Errorf("failed to fetch issues for project %s: %w", projectID, err)
		}
		var batch []Issue
		if err := json.Unmarshal(pg.Data, &batch); err != nil {
			return nil, fmt.Errorf("failed to decode issues page: %w", err)
		}
		issues = append(issues, batch...)
		path = pg.Links.Next
	}
	return issues, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.api+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("snyk API returned %d: %s", resp.StatusCode, body)
	}
	return json.Unmarshal(body, out)
}
