package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/user/cvetriage/pkg/engine"
)

type SnykConfig struct {
	Token string `yaml:"token"`
	OrgID string `yaml:"org_id"`
}

type JiraConfig struct {
	URL        string `yaml:"url"`
	Email      string `yaml:"email"`
	APIToken   string `yaml:"api_token"`
	ProjectKey string `yaml:"project_key"`
	IssueType  string `yaml:"issue_type"`
}

type Config struct {
	Snyk       SnykConfig         `yaml:"snyk"`
	Jira       JiraConfig         `yaml:"jira"`
	SLADays    map[string]int     `yaml:"sla_days,omitempty"`
	Thresholds *engine.Thresholds `yaml:"priority_thresholds,omitempty"`
	OwnersFile string             `yaml:"owners_file,omitempty"`
}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".cvetriage")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// Return default config
		return &Config{Jira: JiraConfig{IssueType: "Task"}}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Jira.IssueType == "" {
		cfg.Jira.IssueType = "Task"
	}
	return &cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// 0600 permissions for security (api tokens)
	return os.WriteFile(path, data, 0600)
}

// SnykToken returns the configured Snyk token, falling back to the
// SNYK_TOKEN environment variable.
func (c *Config) SnykToken() string {
	if c.Snyk.Token != "" {
		return c.Snyk.Token
	}
	return os.Getenv("SNYK_TOKEN")
}

// JiraToken returns the configured JIRA token, falling back to the
// JIRA_API_TOKEN environment variable.
func (c *Config) JiraToken() string {
	if c.Jira.APIToken != "" {
		return c.Jira.APIToken
	}
	return os.Getenv("JIRA_API_TOKEN")
}

// SLATable resolves the configured SLA override onto the default table
// and validates it.
func (c *Config) SLATable() (engine.SLATable, error) {
	table := engine.SLATable{}
	for tier, days := range engine.DefaultSLATable {
		table[tier] = days
	}
	for name, days := range c.SLADays {
		tier, err := parseTier(name)
		if err != nil {
			return nil, err
		}
		table[tier] = days
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// PriorityThresholds resolves the configured threshold override.
func (c *Config) PriorityThresholds() (engine.Thresholds, error) {
	if c.Thresholds == nil {
		return engine.DefaultThresholds, nil
	}
	if err := c.Thresholds.Validate(); err != nil {
		return engine.Thresholds{}, err
	}
	return *c.Thresholds, nil
}

func parseTier(name string) (engine.Tier, error) {
	for _, tier := range engine.Tiers {
		if string(tier) == name {
			return tier, nil
		}
	}
	return "", fmt.Errorf("unknown priority tier %q in sla_days", name)
}
