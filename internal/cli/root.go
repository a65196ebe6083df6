package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/agilira/chiron-sub000/internal/branding"
	"github.com/agilira/chiron-sub000/internal/config"
	"github.com/agilira/chiron-sub000/internal/logging"
	"github.com/agilira/chiron-sub000/internal/registry"
	"github.com/agilira/chiron-sub000/internal/resolver"
	"github.com/agilira/chiron-sub000/internal/site"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	cfgFile string
	siteDir string
	logger  = logging.Discard()
)

// errReported is returned by commands that already printed their failure
// and only need a non-zero exit status.
var errReported = errors.New("reported")

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` reads plugin descriptors from a documentation site's plugins
directory and computes the order in which plugins must be activated for a build.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default: ~/"+branding.HomeDir()+"/config.yaml)")
	flags.StringVar(&siteDir, "site", ".", "Documentation site directory holding .chiron/site.yaml")
	flags.String("plugins-dir", "plugins", "Primary plugins root")
	flags.StringSlice("root", nil, "Additional plugin roots, searched after the primary one")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (text, json)")
	flags.Int("concurrency", 0, "Maximum descriptors parsed in parallel (0 = GOMAXPROCS)")

	_ = viper.BindPFlag(config.KeyPluginsDir, flags.Lookup("plugins-dir"))
	_ = viper.BindPFlag(config.KeyPluginRoots, flags.Lookup("root"))
	_ = viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	_ = viper.BindPFlag(config.KeyLoaderConcurrency, flags.Lookup("concurrency"))
}

func setup(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.FilePath()
	}
	if err := config.LoadFile(path); err != nil {
		return err
	}

	settings, err := config.Current()
	if err != nil {
		return err
	}
	l, err := logging.New(cmd.ErrOrStderr(), settings.Log.Level, settings.Log.Format)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// pluginSources returns the effective plugin roots, primary first. An
// explicit --plugins-dir wins over the site file, which wins over the config
// file and environment. Site roots are searched before configured ones.
func pluginSources(cmd *cobra.Command) ([]registry.Source, error) {
	settings, err := config.Current()
	if err != nil {
		return nil, err
	}

	primary := settings.PluginsDir
	var roots []string

	sc, err := loadSite()
	if err != nil {
		return nil, err
	}
	if sc != nil {
		dir, siteRoots := sc.ResolvePaths(siteDir)
		if dir != "" && !cmd.Flags().Changed("plugins-dir") {
			primary = dir
		}
		roots = append(roots, siteRoots...)
	}
	roots = append(roots, settings.PluginRoots...)

	sources := []registry.Source{{Name: "plugins", BasePath: primary}}
	for _, root := range roots {
		sources = append(sources, registry.Source{Name: root, BasePath: root})
	}
	return sources, nil
}

// loadSite returns the site file in --site, or nil if there is none.
func loadSite() (*site.Config, error) {
	sc, err := site.Load(siteDir)
	if errors.Is(err, site.ErrNoSite) {
		return nil, nil
	}
	return sc, err
}

// loadResolver builds a resolver from the effective settings and loads its
// registry.
func loadResolver(cmd *cobra.Command) (*resolver.Resolver, error) {
	sources, err := pluginSources(cmd)
	if err != nil {
		return nil, err
	}
	settings, err := config.Current()
	if err != nil {
		return nil, err
	}

	r := resolver.New(sources[0].BasePath,
		resolver.WithSources(sources[1:]...),
		resolver.WithLogger(logger),
		resolver.WithConcurrency(settings.Loader.Concurrency))
	if err := r.LoadRegistry(cmd.Context()); err != nil {
		return nil, err
	}
	return r, nil
}

// requestedPlugins returns args, or the site's enabled plugins when no
// plugin was named.
func requestedPlugins(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	sc, err := loadSite()
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, fmt.Errorf("no plugins named and no site file at %s", site.Path(siteDir))
	}
	if len(sc.Plugins) == 0 {
		return nil, fmt.Errorf("no plugins enabled in %s", site.Path(siteDir))
	}
	return sc.Plugins, nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
