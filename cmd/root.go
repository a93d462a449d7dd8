package cmd

import (
	"github.com/spf13/cobra"

	"github.com/user/cvetriage/pkg/cli"
)

var rootCmd = &cobra.Command{
	Use:   "cvetriage",
	Short: "CVE triage and remediation ticketing",
	Long: `cvetriage correlates Snyk scan findings for a specific CVE with
real-world risk factors (deployment, public exposure, package loading,
OS conditions), assigns a priority tier with an SLA-derived due date,
and files JIRA remediation tickets for every impacted project.`,
}

var DebugMode bool

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&DebugMode, "debug", false, "Enable debug logging")
	cobra.OnInitialize(func() {
		cli.DebugEnabled = DebugMode
	})
}
