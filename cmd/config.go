package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/cvetriage/pkg/config"
	"github.com/user/cvetriage/pkg/engine"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration (credentials, SLA table, thresholds)",
}

var setSnykCmd = &cobra.Command{
	Use:   "set-snyk",
	Short: "Set Snyk API token and organization",
	Run: func(cmd *cobra.Command, args []string) {
		token, _ := cmd.Flags().GetString("token")
		org, _ := cmd.Flags().GetString("org")

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		if token != "" {
			cfg.Snyk.Token = token
		}
		if org != "" {
			cfg.Snyk.OrgID = org
		}

		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			return
		}
		fmt.Println("Snyk configuration saved.")
	},
}

var setJiraCmd = &cobra.Command{
	Use:   "set-jira",
	Short: "Set JIRA site, credentials, and target project",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		if v, _ := cmd.Flags().GetString("url"); v != "" {
			cfg.Jira.URL = v
		}
		if v, _ := cmd.Flags().GetString("email"); v != "" {
			cfg.Jira.Email = v
		}
		if v, _ := cmd.Flags().GetString("token"); v != "" {
			cfg.Jira.APIToken = v
		}
		if v, _ := cmd.Flags().GetString("project"); v != "" {
			cfg.Jira.ProjectKey = v
		}
		if v, _ := cmd.Flags().GetString("issue-type"); v != "" {
			cfg.Jira.IssueType = v
		}

		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			return
		}
		fmt.Println("JIRA configuration saved.")
	},
}

var setSlaCmd = &cobra.Command{
	Use:   "set-sla",
	Short: "Override the SLA day count for priority tiers",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		if cfg.SLADays == nil {
			cfg.SLADays = make(map[string]int)
		}
		for _, tier := range engine.Tiers {
			flag := map[engine.Tier]string{
				engine.TierHighest: "highest",
				engine.TierHigh:    "high",
				engine.TierMedium:  "medium",
				engine.TierLow:     "low",
			}[tier]
			if days, _ := cmd.Flags().GetInt(flag); days > 0 {
				cfg.SLADays[string(tier)] = days
			}
		}

		// Reject a broken table before it hits disk
		if _, err := cfg.SLATable(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			return
		}
		fmt.Println("SLA table saved.")
	},
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		fmt.Printf("Snyk org:         %s\n", cfg.Snyk.OrgID)
		fmt.Printf("Snyk token set:   %v\n", cfg.SnykToken() != "")
		fmt.Printf("JIRA site:        %s\n", cfg.Jira.URL)
		fmt.Printf("JIRA project:     %s (%s)\n", cfg.Jira.ProjectKey, cfg.Jira.IssueType)
		fmt.Printf("JIRA token set:   %v\n", cfg.JiraToken() != "")
		fmt.Printf("Owners file:      %s\n", cfg.OwnersFile)

		table, err := cfg.SLATable()
		if err != nil {
			fmt.Printf("SLA table:        invalid (%v)\n", err)
			return
		}
		fmt.Print("SLA table:        ")
		for i, tier := range engine.Tiers {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Printf("%s=%dd", tier, table[tier])
		}
		fmt.Println()

		thresholds, err := cfg.PriorityThresholds()
		if err != nil {
			fmt.Printf("Thresholds:       invalid (%v)\n", err)
			return
		}
		fmt.Printf("Thresholds:       Highest>=%d, High>=%d, Medium>=%d\n",
			thresholds.Highest, thresholds.High, thresholds.Medium)
	},
}

func init() {
	setSnykCmd.Flags().StringP("token", "t", "", "Snyk API token")
	setSnykCmd.Flags().StringP("org", "o", "", "Snyk organization ID")

	setJiraCmd.Flags().String("url", "", "JIRA site URL (e.g. https://example.atlassian.net)")
	setJiraCmd.Flags().String("email", "", "JIRA user email")
	setJiraCmd.Flags().StringP("token", "t", "", "JIRA API token")
	setJiraCmd.Flags().StringP("project", "p", "", "JIRA project key")
	setJiraCmd.Flags().String("issue-type", "", "JIRA issue type (default Task)")

	setSlaCmd.Flags().Int("highest", 0, "Days for Highest priority")
	setSlaCmd.Flags().Int("high", 0, "Days for High priority")
	setSlaCmd.Flags().Int("medium", 0, "Days for Medium priority")
	setSlaCmd.Flags().Int("low", 0, "Days for Low priority")

	configCmd.AddCommand(setSnykCmd)
	configCmd.AddCommand(setJiraCmd)
	configCmd.AddCommand(setSlaCmd)
	configCmd.AddCommand(showConfigCmd)
	rootCmd.AddCommand(configCmd)
}
