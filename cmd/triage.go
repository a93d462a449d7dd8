package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/cvetriage/pkg/cli"
	"github.com/user/cvetriage/pkg/config"
	"github.com/user/cvetriage/pkg/engine"
	"github.com/user/cvetriage/pkg/jira"
	"github.com/user/cvetriage/pkg/owners"
	"github.com/user/cvetriage/pkg/snyk"
)

var cvePattern = regexp.MustCompile(`^CVE-\d{4}-\d+$`)

var (
	triageDryRun bool
	triageYes    bool
	triageOrg    string
)

var triageCmd = &cobra.Command{
	Use:   "triage <CVE-ID>",
	Short: "Find projects impacted by a CVE and file remediation tickets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cveID := strings.ToUpper(strings.TrimSpace(args[0]))
		if !cvePattern.MatchString(cveID) {
			return fmt.Errorf("invalid CVE identifier %q (expected CVE-YYYY-NNNN)", args[0])
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		snykToken := cfg.SnykToken()
		if snykToken == "" {
			return fmt.Errorf("Snyk token not configured. Run 'cvetriage config set-snyk' or set SNYK_TOKEN")
		}
		orgID := triageOrg
		if orgID == "" {
			orgID = cfg.Snyk.OrgID
		}
		if orgID == "" {
			return fmt.Errorf("Snyk organization not configured. Run 'cvetriage config set-snyk --org <id>' or pass --org")
		}

		thresholds, err := cfg.PriorityThresholds()
		if err != nil {
			return err
		}
		slaTable, err := cfg.SLATable()
		if err != nil {
			return err
		}
		pipeline, err := engine.NewPipeline(thresholds, slaTable)
		if err != nil {
			return err
		}

		dir, err := owners.Load(cfg.OwnersFile)
		if err != nil {
			return err
		}

		ctx := context.Background()
		collector := &snyk.Collector{
			Client: snyk.NewClient(snykToken),
			Owners: dir,
		}

		cli.Infof("Searching for projects impacted by %s...", cveID)
		raw, err := collector.Collect(ctx, orgID, cveID)
		if err != nil {
			return err
		}
		cli.Debugf("Collected %d raw findings", len(raw))

		referenceDate := time.Now().UTC().Truncate(24 * time.Hour)
		specs, findingErrs, err := pipeline.Run(raw, referenceDate)
		if err != nil {
			return err
		}

		for _, fe := range findingErrs {
			cli.Errorf("Skipped: %v", fe)
		}

		if len(specs) == 0 {
			cli.Infof("No projects found impacted by %s.", cveID)
			return nil
		}

		cli.Infof("\nProjects impacted by %s:", cveID)
		for _, spec := range specs {
			cli.Infof("\nProject: %s (%s)", spec.ProjectName, spec.ProjectID)
			cli.Infof("  Priority: %s  Due: %s", cli.TierLabel(spec.Priority), spec.DueDate.Format("2006-01-02"))
			for _, rf := range spec.RiskFactors {
				if rf.Present {
					cli.Infof("  Risk Factor: %s", rf.Name)
				}
			}
			if spec.Assignee != "" {
				cli.Infof("  Assignee: %s", spec.Assignee)
			}
		}

		if triageDryRun {
			cli.Infof("\nDry run: %d ticket(s) would be created.", len(specs))
			return nil
		}

		if !triageYes && !confirm(fmt.Sprintf("\nCreate %d JIRA ticket(s) for %s? [y/N] ", len(specs), cveID)) {
			cli.Infof("Aborted. No tickets created.")
			return nil
		}

		jiraToken := cfg.JiraToken()
		if cfg.Jira.URL == "" || cfg.Jira.Email == "" || jiraToken == "" || cfg.Jira.ProjectKey == "" {
			return fmt.Errorf("JIRA not configured. Run 'cvetriage config set-jira' or set JIRA_API_TOKEN")
		}
		jc := jira.NewClient(cfg.Jira.URL, cfg.Jira.Email, jiraToken, cfg.Jira.ProjectKey, cfg.Jira.IssueType)

		for _, spec := range specs {
			existing, err := jc.FindExisting(ctx, spec)
			if err != nil {
				cli.Errorf("Failed to check existing tickets for %s: %v", spec.ProjectName, err)
				continue
			}
			if existing != "" {
				cli.Infof("Ticket already filed for %s: %s", spec.ProjectName, jc.BrowseURL(existing))
				continue
			}

			ticket, err := jc.CreateTicket(ctx, spec)
			if err != nil {
				cli.Errorf("Failed to create ticket for %s: %v", spec.ProjectName, err)
				continue
			}
			cli.Successf("Created ticket: %s (Priority: %s, Due: %s)",
				jc.BrowseURL(ticket.Key), spec.Priority, spec.DueDate.Format("2006-01-02"))
		}
		return nil
	},
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func init() {
	triageCmd.Flags().BoolVar(&triageDryRun, "dry-run", false, "Compute ticket specs without filing tickets")
	triageCmd.Flags().BoolVarP(&triageYes, "yes", "y", false, "Skip the ticket creation confirmation")
	triageCmd.Flags().StringVar(&triageOrg, "org", "", "Snyk organization ID (overrides config)")
	rootCmd.AddCommand(triageCmd)
}
