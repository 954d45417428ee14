package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bindkit/bindkit/internal/app"
)

var validateCmd = &cobra.Command{
	Use:   "validate [paths...]",
	Short: "Load all manifests and validate every module binding",
	Long: `validate registers the built-in modules, loads every manifest from the
configured paths and admits each module into the registry. The command
fails if any module's run function does not satisfy its task contract.
Positional paths are searched in addition to the configured ones.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := *appConfig
		cfg.ManifestPaths = append(append([]string{}, cfg.ManifestPaths...), args...)

		a, err := app.New(cmd.ErrOrStderr(), &cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d tasks, %d bindings\n", a.Catalog().Len(), a.Registry().Len())
		return nil
	},
}
