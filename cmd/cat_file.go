package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umpire-scm/umpire/internal/constants"
	"github.com/umpire-scm/umpire/internal/objects"
	"github.com/umpire-scm/umpire/utils"
)

var catFileCmd = &cobra.Command{
	Use:   "cat-file <type> <object>",
	Short: "Print the canonical payload of a stored object",
	Long: `Resolve a name (hash prefix, branch, tag or HEAD) to an object of the
given kind, following tag and commit indirection, and write its canonical
payload bytes to stdout.`,
	SilenceUsage: true,
	Args:         exactArgs(constants.CatFileCmdName, 2),
	RunE:         runCatFile,
}

func init() {
	rootCmd.AddCommand(catFileCmd)
}

func runCatFile(cmd *cobra.Command, args []string) error {
	kind, ok := utils.ParseObjectType(args[0])
	if !ok {
		return fmt.Errorf("%w: %q", objects.ErrUnknownObjectType, args[0])
	}

	resolver, store, err := openResolver()
	if err != nil {
		return err
	}

	hash, err := resolver.Resolve(args[1], kind, true)
	if err != nil {
		return err
	}

	obj, err := store.Read(hash)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(obj.Serialize())
	return err
}
