package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/bindkit/bindkit/internal/app"
)

var flagJSON bool

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the admitted types, tasks and bindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.New(cmd.ErrOrStderr(), appConfig)
		if err != nil {
			return err
		}
		report := a.Report()

		if flagJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		writeReport(cmd.OutOrStdout(), report)
		return nil
	},
}

func init() {
	describeCmd.Flags().BoolVar(&flagJSON, "json", false, "render the report as JSON")
}

// writeReport renders the report as indented plain text.
func writeReport(w io.Writer, r *app.Report) {
	fmt.Fprintln(w, "types:")
	for _, name := range r.Types {
		fmt.Fprintf(w, "  %s\n", name)
	}

	fmt.Fprintln(w, "tasks:")
	for _, t := range r.Tasks {
		fmt.Fprintf(w, "  %s\n", t.Name)
		writeParameters(w, "parameter", t.UnaryParameters)
		writeParameters(w, "streaming parameter", t.StreamingParameters)
		if t.UnaryOutput != "" {
			fmt.Fprintf(w, "    output: %s\n", t.UnaryOutput)
		}
		if t.StreamingOutput != "" {
			fmt.Fprintf(w, "    streaming output: %s\n", t.StreamingOutput)
		}
	}

	fmt.Fprintln(w, "bindings:")
	for _, b := range r.Bindings {
		fmt.Fprintf(w, "  %s %s", b.Name, b.Version)
		if b.Task != "" {
			fmt.Fprintf(w, " task=%s", b.Task)
		}
		if b.Parent != "" {
			fmt.Fprintf(w, " extends=%s", b.Parent)
		}
		fmt.Fprintln(w)
	}
}

func writeParameters(w io.Writer, label string, params map[string]string) {
	for _, name := range slices.Sorted(maps.Keys(params)) {
		fmt.Fprintf(w, "    %s %s: %s\n", label, name, params[name])
	}
}
