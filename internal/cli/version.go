package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the release version. It is overridden at build time via
// -ldflags "-X github.com/bindkit/bindkit/internal/cli.Version=...".
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the bindkit version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bindkit %s\n", Version)
	},
}
