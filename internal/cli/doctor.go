package cli

import (
	"fmt"

	"github.com/agilira/chiron-sub000/internal/config"
	"github.com/agilira/chiron-sub000/internal/doctor"
	"github.com/agilira/chiron-sub000/internal/resolver"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check plugin roots and the full plugin graph",
	Long: `Check that every plugin root is readable, report skipped and shadowed
descriptors and ambiguous capabilities, and validate the full plugin set.
Exits with status 1 when any check fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := pluginSources(cmd)
		if err != nil {
			return err
		}
		settings, err := config.Current()
		if err != nil {
			return err
		}

		res, err := doctor.Check(cmd.Context(), cmd.OutOrStdout(), sources,
			resolver.WithLogger(logger),
			resolver.WithConcurrency(settings.Loader.Concurrency))
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%d ok, %d warnings, %d failures, %d missing\n", res.OK, res.Warn, res.Fail, res.Miss)
		if !res.Healthy() {
			return errReported
		}
		return nil
	},
}
