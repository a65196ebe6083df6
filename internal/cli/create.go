package cli

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/agilira/chiron-sub000/internal/branding"
	"github.com/agilira/chiron-sub000/internal/scaffold"
	"github.com/spf13/cobra"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9@][A-Za-z0-9._/@-]*$`)

var (
	createOutputDir   string
	createDescription string
	createVersion     string
	createProvides    []string
	createRequires    []string
	createOptional    []string
)

func init() {
	f := createCmd.Flags()
	f.StringVar(&createOutputDir, "output-dir", "", "Output directory (default: <plugins-dir>/<name>)")
	f.StringVar(&createDescription, "description", "", "Plugin description")
	f.StringVar(&createVersion, "version", "0.1.0", "Initial plugin version")
	f.StringSliceVar(&createProvides, "provides", nil, "Capabilities the plugin provides")
	f.StringSliceVar(&createRequires, "requires", nil, "Required dependencies, as name or name@constraint")
	f.StringSliceVar(&createOptional, "optional", nil, "Optional dependencies, as name or name@constraint")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Scaffold a new plugin",
	Long: `Create a new plugin directory with a plugin.yaml descriptor and a README.

Examples:
  ` + branding.CLIName() + ` create cookie-consent --requires i18n,cookie-detection --optional analytics
  ` + branding.CLIName() + ` create seo --requires components@^1.2 --provides sitemap`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := validateName(name); err != nil {
			return err
		}

		data := scaffold.NewScaffoldData(name)
		if createDescription != "" {
			data.Description = createDescription
		}
		data.Version = createVersion
		data.Provides = createProvides
		data.Required = scaffold.ParseDependencies(createRequires)
		data.Optional = scaffold.ParseDependencies(createOptional)

		outDir := createOutputDir
		if outDir == "" {
			sources, err := pluginSources(cmd)
			if err != nil {
				return err
			}
			outDir = filepath.Join(sources[0].BasePath, name)
		}

		result, err := scaffold.Generate(data, outDir)
		if err != nil {
			return err
		}
		printScaffoldResult(cmd, result)
		return nil
	},
}

func validateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid plugin name %q: use letters, digits, '.', '_', '-', '/' or '@'", name)
	}
	return nil
}

func printScaffoldResult(cmd *cobra.Command, result *scaffold.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", result.OutputDir)
	for _, f := range result.Files {
		fmt.Fprintf(out, "  %s\n", f)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "  Warning: %s\n", w)
	}
}
