package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umpire-scm/umpire/internal/constants"
	"github.com/umpire-scm/umpire/internal/history"
)

var logCmd = &cobra.Command{
	Use:   "log [commit]",
	Short: "Export commit ancestry as a graphviz digraph",
	Long: `Walk the parent graph from the given commit (HEAD by default) and print
one graphviz edge per parent link. Each commit is emitted at most once, so
merge diamonds stay readable:

  ump log | dot -Tpdf -o history.pdf`,
	SilenceUsage: true,
	Args:         maximumArgs(constants.LogCmdName, 1),
	RunE:         runLog,
}

func init() {
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	name := constants.Head
	if len(args) > 0 {
		name = args[0]
	}

	resolver, store, err := openResolver()
	if err != nil {
		return err
	}

	start, err := resolver.Resolve(name, "", false)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "digraph umplog{")
	err = history.Walk(store, start, func(child, parent string) error {
		_, err := fmt.Fprintf(out, "\tc_%s -> c_%s;\n", child, parent)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "}")

	return nil
}
