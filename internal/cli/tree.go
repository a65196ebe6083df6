package cli

import (
	"github.com/agilira/chiron-sub000/internal/resolver"
	"github.com/spf13/cobra"
)

var treeJSON bool

func init() {
	treeCmd.Flags().BoolVar(&treeJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(treeCmd)
}

var treeCmd = &cobra.Command{
	Use:   "tree <plugin>",
	Short: "Print a plugin's dependency tree",
	Long: `Print the required and optional dependencies of a plugin as a tree.
Plugins already shown elsewhere in the tree are marked (deduped); missing
dependencies and cycles are marked instead of failing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadResolver(cmd)
		if err != nil {
			return err
		}
		root, err := r.Tree(args[0])
		if err != nil {
			return err
		}
		if treeJSON {
			return printJSON(cmd, root)
		}
		resolver.PrintTree(cmd.OutOrStdout(), root, "", true)
		return nil
	},
}
