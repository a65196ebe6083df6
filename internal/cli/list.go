package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/agilira/chiron-sub000/internal/manifest"
	"github.com/agilira/chiron-sub000/internal/registry"
	"github.com/spf13/cobra"
)

var (
	listJSON    bool
	listSkipped bool
	listSearch  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered plugins",
	Long:  `List every plugin loaded from the plugins roots, or with --skipped the directories that were not loaded and why.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listSkipped, "skipped", false, "List skipped plugin directories instead")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Only list plugins whose name, description or capabilities match")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a registered plugin for display.
type listEntry struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description,omitempty"`
	Provides    []string `json:"provides,omitempty"`
	Path        string   `json:"path"`
}

// skippedEntry represents a plugin directory that was not loaded.
type skippedEntry struct {
	Source string `json:"source"`
	Dir    string `json:"dir"`
	Reason string `json:"reason"`
	Error  string `json:"error"`
}

func runList(cmd *cobra.Command, args []string) error {
	r, err := loadResolver(cmd)
	if err != nil {
		return err
	}

	if listSkipped {
		var entries []skippedEntry
		for _, o := range r.LoadReport().Skipped() {
			entries = append(entries, skippedEntry{
				Source: o.Source,
				Dir:    o.Dir,
				Reason: o.Reason(),
				Error:  o.Err.Error(),
			})
		}
		if listJSON {
			return printJSON(cmd, entries)
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No plugin directories were skipped.")
			return nil
		}
		return printSkippedTable(cmd, entries)
	}

	var entries []listEntry
	for _, d := range r.Registry().List() {
		if !matchesSearch(d, listSearch) {
			continue
		}
		entries = append(entries, listEntry{
			Name:        d.Name,
			Version:     d.Version,
			Description: d.Description,
			Provides:    d.Provides,
			Path:        d.SourcePath,
		})
	}

	if listJSON {
		return printJSON(cmd, entries)
	}
	if len(entries) == 0 {
		if listSearch != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No plugins matching %q\n", listSearch)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No plugins found.")
		}
		return nil
	}
	return printListTable(cmd, entries)
}

// matchesSearch reports whether a descriptor matches a case-insensitive query
// against its name, description and capabilities.
func matchesSearch(d *manifest.Descriptor, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(d.Name), q) ||
		strings.Contains(strings.ToLower(d.Description), q) {
		return true
	}
	for _, c := range d.Provides {
		if strings.Contains(strings.ToLower(c), q) {
			return true
		}
	}
	return false
}

func printListTable(cmd *cobra.Command, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tPROVIDES\tPATH")
	for _, e := range entries {
		version := e.Version
		if version == "" {
			version = "-"
		}
		provides := strings.Join(e.Provides, ",")
		if provides == "" {
			provides = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, version, provides, filepath.Dir(e.Path))
	}
	return w.Flush()
}

func printSkippedTable(cmd *cobra.Command, entries []skippedEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "DIR\tREASON\tERROR")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Dir, e.Reason, e.Error)
	}
	return w.Flush()
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// providersOf lists every plugin that provides capability, for display.
func providersOf(reg *registry.Registry, capability string) []string {
	m, err := reg.FindProvider(capability)
	if err != nil {
		return nil
	}
	return m.Candidates
}
