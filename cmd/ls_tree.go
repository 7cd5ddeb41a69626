package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umpire-scm/umpire/internal/constants"
	"github.com/umpire-scm/umpire/utils"
)

var lsTreeCmd = &cobra.Command{
	Use:   "ls-tree <tree-ish>",
	Short: "List the entries of a tree object",
	Long: `Resolve a name to a tree, following commits to their root tree and tags
to their target, and print one line per entry: mode, kind, hash and name in
canonical entry order.`,
	SilenceUsage: true,
	Args:         exactArgs(constants.LsTreeCmdName, 1),
	RunE:         runLsTree,
}

func init() {
	rootCmd.AddCommand(lsTreeCmd)
}

func runLsTree(cmd *cobra.Command, args []string) error {
	resolver, store, err := openResolver()
	if err != nil {
		return err
	}

	hash, err := resolver.Resolve(args[0], utils.TreeObjectType, true)
	if err != nil {
		return err
	}

	tree, err := store.ReadTree(hash)
	if err != nil {
		return err
	}

	for _, entry := range tree.Entries() {
		child, err := store.Read(entry.Hash())
		if err != nil {
			return fmt.Errorf("failed to read entry %s: %w", entry.Name(), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%06s %s %s\t%s\n",
			entry.Mode(), child.Kind(), entry.Hash(), entry.Name())
	}

	return nil
}
