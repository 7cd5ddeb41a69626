package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umpire-scm/umpire/internal/constants"
	"github.com/umpire-scm/umpire/internal/objects"
	"github.com/umpire-scm/umpire/utils"
)

var revParseCmd = &cobra.Command{
	Use:   "rev-parse <name>",
	Short: "Resolve a name to a full object hash",
	Long: `Resolve a branch, tag, HEAD or hash prefix to its full 40-character
object hash. With --ump-type, follow tag and commit indirection until an
object of that kind is reached.`,
	SilenceUsage: true,
	Args:         exactArgs(constants.RevParseCmdName, 1),
	RunE:         runRevParse,
}

var revParseTypeFlag string

func init() {
	rootCmd.AddCommand(revParseCmd)

	revParseCmd.Flags().StringVar(&revParseTypeFlag, "ump-type", "", "Required object kind: blob, tree, commit or tag")
}

func runRevParse(cmd *cobra.Command, args []string) error {
	var kind utils.ObjectType
	if revParseTypeFlag != "" {
		parsed, ok := utils.ParseObjectType(revParseTypeFlag)
		if !ok {
			return fmt.Errorf("%w: %q", objects.ErrUnknownObjectType, revParseTypeFlag)
		}
		kind = parsed
	}

	resolver, _, err := openResolver()
	if err != nil {
		return err
	}

	hash, err := resolver.Resolve(args[0], kind, true)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
