package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var resolveJSON bool

func init() {
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [plugin...]",
	Short: "Print the activation order for a set of plugins",
	Long: `Resolve the requested plugins and their required dependencies into an
activation order. Each plugin is printed after everything it requires.
Capability names may be requested in place of plugin names. With no
arguments the plugins enabled in the site file are resolved.`,
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

		order, err := r.Resolve(names)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if resolveJSON {
			data, err := json.MarshalIndent(map[string][]string{"order": order}, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, string(data))
			return err
		}
		for _, name := range order {
			fmt.Fprintln(out, name)
		}
		return nil
	},
}
