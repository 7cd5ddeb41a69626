package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umpire-scm/umpire/internal/constants"
	"github.com/umpire-scm/umpire/internal/refs"
)

var showRefCmd = &cobra.Command{
	Use:   "show-ref",
	Short: "List references and the hashes they resolve to",
	Long: `Enumerate every reference under refs/ in lexical order, recursing into
nested namespaces, and print the resolved hash and full ref path per line.`,
	SilenceUsage: true,
	Args:         maximumArgs(constants.ShowRefCmdName, 0),
	RunE:         runShowRef,
}

func init() {
	rootCmd.AddCommand(showRefCmd)
}

func runShowRef(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}

	listed, err := refs.NewRefStore(repo).List(constants.Refs)
	if err != nil {
		return err
	}

	for _, ref := range refs.Flatten(listed) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ref.Hash, ref.Path)
	}

	return nil
}
