// Package jira files remediation tickets from computed TicketSpecs.
// Ticket creation is idempotent across runs: every ticket is labeled
// with its CVE and project, and FindExisting checks those labels before
// a new ticket is filed.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/user/cvetriage/pkg/engine"
)

// Client talks to the JIRA Cloud REST API with basic auth.
type Client struct {
	BaseURL    string
	Email      string
	APIToken   string
	ProjectKey string
	IssueType  string

	http *retryablehttp.Client
}

// NewClient builds a JIRA client for one site and project.
func NewClient(baseURL, email, apiToken, projectKey, issueType string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = nil
	if issueType == "" {
		issueType = "Task"
	}
	return &Client{
		BaseURL:    baseURL,
		Email:      email,
		APIToken:   apiToken,
		ProjectKey: projectKey,
		IssueType:  issueType,
		http:       rc,
	}
}

// CreatedTicket is the API response for a filed ticket.
type CreatedTicket struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

// BrowseURL returns the human-facing URL of a ticket key.
func (c *Client) BrowseURL(key string) string {
	return fmt.Sprintf("%s/browse/%s", c.BaseURL, key)
}

type issueFields struct {
	Project     keyRef   `json:"project"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	IssueType   nameRef  `json:"issuetype"`
	Priority    nameRef  `json:"priority"`
	DueDate     string   `json:"duedate"`
	Labels      []string `json:"labels"`
	Assignee    *idRef   `json:"assignee,omitempty"`
}

type keyRef struct {
	Key string `json:"key"`
}

type nameRef struct {
	Name string `json:"name"`
}

type idRef struct {
	AccountID string `json:"accountId"`
}

// CreateTicket files one remediation ticket for a TicketSpec.
func (c *Client) CreateTicket(ctx context.Context, spec engine.TicketSpec) (*CreatedTicket, error) {
	fields := issueFields{
		Project:     keyRef{Key: c.ProjectKey},
		Summary:     spec.Summary,
		Description: spec.Description,
		IssueType:   nameRef{Name: c.IssueType},
		Priority:    nameRef{Name: spec.Priority.String()},
		DueDate:     spec.DueDate.Format("2006-01-02"),
		Labels:      ticketLabels(spec),
	}
	if spec.Assignee != "" {
		fields.Assignee = &idRef{AccountID: spec.Assignee}
	}

	payload, err := json.Marshal(map[string]interface{}{"fields": fields})
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/rest/api/3/issue", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.Email, c.APIToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to create ticket for %s: %d - %s", spec.ProjectName, resp.StatusCode, body)
	}

	var ticket CreatedTicket
	if err := json.Unmarshal(body, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

type searchResult struct {
	Issues []struct {
		Key string `json:"key"`
	} `json:"issues"`
}

// FindExisting returns the key of an open ticket already filed for this
// (project, CVE) pair, or "" if none exists.
func (c *Client) FindExisting(ctx context.Context, spec engine.TicketSpec) (string, error) {
	jql := fmt.Sprintf(`project = %q AND labels = %q AND labels = %q AND statusCategory != Done`,
		c.ProjectKey, cveLabel(spec.CVE), projectLabel(spec.ProjectID))

	query := url.Values{}
	query.Set("jql", jql)
	query.Set("maxResults", "1")
	query.Set("fields", "key")

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/rest/api/3/search?"+query.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.Email, c.APIToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ticket search failed: %d - %s", resp.StatusCode, body)
	}

	var result searchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if len(result.Issues) == 0 {
		return "", nil
	}
	return result.Issues[0].Key, nil
}

func ticketLabels(spec engine.TicketSpec) []string {
	return []string{cveLabel(spec.CVE), projectLabel(spec.ProjectID)}
}

func cveLabel(cveID string) string {
	return "cve-triage-" + cveID
}

func projectLabel(projectID string) string {
	return "snyk-project-" + projectID
}
