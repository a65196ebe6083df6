package cli

import (
	"errors"
	"fmt"

	"github.com/agilira/chiron-sub000/internal/config"
	"github.com/agilira/chiron-sub000/internal/site"
	"github.com/spf13/cobra"
)

var enableForce bool

func init() {
	enableCmd.Flags().BoolVar(&enableForce, "force", false, "Enable even if the plugin is not in the registry")
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [plugin...]",
	Short: "Create a site file enabling plugins",
	Long:  `Create .chiron/site.yaml in the site directory (--site) with the given plugins enabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := site.Init(siteDir, config.Get(config.KeyPluginsDir), args)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%d plugins enabled)\n", site.Path(siteDir), len(cfg.Plugins))
		return nil
	},
}

var enableCmd = &cobra.Command{
	Use:   "enable <plugin>...",
	Short: "Enable plugins in the site file",
	Long: `Add plugins to the site's enabled list. Each name must be a registered
plugin or capability unless --force is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := mustLoadSite()
		if err != nil {
			return err
		}

		if !enableForce {
			r, err := loadResolver(cmd)
			if err != nil {
				return err
			}
			for _, name := range args {
				if r.HasPlugin(name) {
					continue
				}
				if _, err := r.Registry().FindProvider(name); err != nil {
					return fmt.Errorf("plugin %q not found in registry (use --force to enable anyway)", name)
				}
			}
		}

		out := cmd.OutOrStdout()
		for _, name := range args {
			if cfg.Enable(name) {
				fmt.Fprintf(out, "Enabled %s\n", name)
			} else {
				fmt.Fprintf(out, "%s already enabled\n", name)
			}
		}
		return site.Save(siteDir, cfg)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <plugin>...",
	Short: "Disable plugins in the site file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := mustLoadSite()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range args {
			if cfg.Disable(name) {
				fmt.Fprintf(out, "Disabled %s\n", name)
			} else {
				fmt.Fprintf(out, "%s was not enabled\n", name)
			}
		}
		return site.Save(siteDir, cfg)
	},
}

func mustLoadSite() (*site.Config, error) {
	cfg, err := site.Load(siteDir)
	if errors.Is(err, site.ErrNoSite) {
		return nil, fmt.Errorf("no site file at %s; run 'init' first", site.Path(siteDir))
	}
	return cfg, err
}
