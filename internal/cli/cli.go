package cli

import (
	"github.com/spf13/cobra"
)

var (
	flagConfigFile string
	flagManifests  []string
	flagLogLevel   string
	flagLogFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "bindkit",
	Short: "Validate module implementations against task contracts",
	Long: `bindkit loads task and module manifests, introspects the referenced run
functions and admits only modules whose signatures satisfy the contract
of the task they claim to implement.`,
	SilenceUsage: true,
}

func init() {
	// Assigned here rather than in the composite literal to avoid an
	// initialization cycle: loadConfig refers back to rootCmd.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	}

	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "config file (default: bindkit.yaml in . or ~/.bindkit)")
	rootCmd.PersistentFlags().StringSliceVarP(&flagManifests, "manifest", "m", nil, "manifest file or directory; repeatable")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: 'debug', 'info', 'warn' or 'error'")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: 'text' or 'json'")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command and returns its error, if any. Exit
// codes are the caller's concern.
func Execute() error {
	return rootCmd.Execute()
}
