package cli

import (
	"encoding/json"
	"fmt"

	"github.com/agilira/chiron-sub000/internal/resolver"
	"github.com/spf13/cobra"
)

var validateJSON bool

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [plugin...]",
	Short: "Check a plugin set and report every problem",
	Long: `Validate walks the same dependency graph as resolve but does not stop at
the first problem. Missing plugins, missing dependencies, cycles and version
mismatches are errors; missing optional dependencies are warnings.
With no arguments the plugins enabled in the site file are validated.
Exits with status 1 when the plugin set is invalid.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := requestedPlugins(args)
		if err != nil {
			return err
		}
		r, err := loadResolver(cmd)
		if err != nil {
			return err
		}

		report := r.Validate(names)
		out := cmd.OutOrStdout()

		if validateJSON {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		} else {
			resolver.PrintReport(out, report)
			if diags := r.LoadDiagnostics(); len(diags) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "  Skipped descriptors:")
				for _, d := range diags {
					fmt.Fprintf(out, "    [%s] %s\n", d.Kind, d.Message)
				}
			}
		}

		if !report.Valid {
			return errReported
		}
		return nil
	},
}
