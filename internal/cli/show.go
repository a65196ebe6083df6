package cli

import (
	"fmt"
	"strings"

	"github.com/agilira/chiron-sub000/internal/manifest"
	"github.com/spf13/cobra"
)

var showJSON bool

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <plugin>",
	Short: "Show a plugin's descriptor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadResolver(cmd)
		if err != nil {
			return err
		}
		d, err := r.GetPlugin(args[0])
		if err != nil {
			return err
		}
		if showJSON {
			return printJSON(cmd, d)
		}

		out := cmd.OutOrStdout()
		version := d.Version
		if version == "" {
			version = "(unversioned)"
		}
		fmt.Fprintf(out, "Name:        %s\n", d.Name)
		fmt.Fprintf(out, "Version:     %s\n", version)
		if d.Description != "" {
			fmt.Fprintf(out, "Description: %s\n", d.Description)
		}
		fmt.Fprintf(out, "Descriptor:  %s\n", d.SourcePath)

		if len(d.Provides) > 0 {
			fmt.Fprintln(out, "Provides:")
			for _, c := range d.Provides {
				others := without(providersOf(r.Registry(), c), d.Name)
				if len(others) > 0 {
					fmt.Fprintf(out, "  - %s (also provided by %s)\n", c, strings.Join(others, ", "))
				} else {
					fmt.Fprintf(out, "  - %s\n", c)
				}
			}
		}
		printSpecs(cmd, "Requires", d.Dependencies.Required)
		printSpecs(cmd, "Optional", d.Dependencies.Optional)
		return nil
	},
}

func printSpecs(cmd *cobra.Command, title string, specs []manifest.DependencySpec) {
	if len(specs) == 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s:\n", title)
	for _, s := range specs {
		fmt.Fprintf(out, "  - %s\n", s)
	}
}

func without(list []string, name string) []string {
	var out []string
	for _, n := range list {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
