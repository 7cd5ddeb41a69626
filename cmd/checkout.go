package cmd

import (
	"github.com/spf13/cobra"

	"github.com/umpire-scm/umpire/internal/constants"
	"github.com/umpire-scm/umpire/internal/worktree"
	"github.com/umpire-scm/umpire/utils"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout <commit> <directory>",
	Short: "Materialize a commit's tree into an empty directory",
	Long: `Resolve a name to a commit, then write its root tree into the given
directory. The directory must not exist or must be empty; the checkout is
staged and renamed into place, so a failure leaves it untouched.`,
	SilenceUsage: true,
	Args:         exactArgs(constants.CheckoutCmdName, 2),
	RunE:         runCheckout,
}

func init() {
	rootCmd.AddCommand(checkoutCmd)
}

func runCheckout(cmd *cobra.Command, args []string) error {
	resolver, store, err := openResolver()
	if err != nil {
		return err
	}

	treeHash, err := resolver.Resolve(args[0], utils.TreeObjectType, true)
	if err != nil {
		return err
	}

	tree, err := store.ReadTree(treeHash)
	if err != nil {
		return err
	}

	return worktree.Materialize(store, tree, args[1])
}
