package command

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "patient-records",
	Short: "Patient records REST API",
	Long: `Patient records REST API backed by PostgreSQL.
Patients own their visits; every mutation is written to the audit trail.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".env", "config file path")

	rootCmd.AddCommand(newServeCommand())
}
