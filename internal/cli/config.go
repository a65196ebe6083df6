package cli

import (
	"fmt"
	"slices"

	"github.com/agilira/chiron-sub000/internal/config"
	"github.com/spf13/cobra"
)

var knownKeys = []string{
	config.KeyPluginsDir,
	config.KeyPluginRoots,
	config.KeyLogLevel,
	config.KeyLogFormat,
	config.KeyLoaderConcurrency,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long:  `Read and write configuration stored at ~/.chiron/config.yaml.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if !slices.Contains(knownKeys, key) {
			return fmt.Errorf("unknown config key %q (known: %v)", key, knownKeys)
		}
		var err error
		if cfgFile != "" {
			err = config.SetFile(cfgFile, key, value)
		} else {
			err = config.Set(key, value)
		}
		if err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}
