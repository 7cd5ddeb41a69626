package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umpire-scm/umpire/internal/constants"
	"github.com/umpire-scm/umpire/internal/objects"
	"github.com/umpire-scm/umpire/utils"
)

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object <filepath>",
	Short: "Compute object hash and optionally create and store an object from a file",
	Long: `Compute the object hash (SHA-1 hash) for a file's content.
Optionally write the resulting object into the objects folder.

Examples:
  # Compute hash without storing
  ump hash-object myfile.txt

  # Compute hash and store in .ump/objects
  ump hash-object -w myfile.txt

  # Hash file content as a commit payload
  ump hash-object -t commit -w commit.txt`,
	SilenceUsage: true,
	Args:         exactArgs(constants.HashObjectCmdName, 1),
	RunE:         runHashObject,
}

var (
	writeFlag    bool
	hashTypeFlag string
)

func init() {
	rootCmd.AddCommand(hashObjectCmd)

	hashObjectCmd.Flags().BoolVarP(&writeFlag, "write", "w", false, "Write the object into the objects folder")
	hashObjectCmd.Flags().StringVarP(&hashTypeFlag, "type", "t", string(utils.BlobObjectType), "Object kind: blob, tree, commit or tag")
}

// runHashObject computes hash and optionally stores the object.
func runHashObject(cmd *cobra.Command, args []string) error {
	kind, ok := utils.ParseObjectType(hashTypeFlag)
	if !ok {
		return fmt.Errorf("%w: %q", objects.ErrUnknownObjectType, hashTypeFlag)
	}

	blob, err := objects.NewBlobFromFile(args[0])
	if err != nil {
		return err
	}

	// Non-blob kinds must decode as that kind's canonical payload
	obj, err := objects.Deserialize(kind, blob.Content())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), obj.Hash())

	if writeFlag {
		store, err := openStore()
		if err != nil {
			return err
		}
		if err := store.Store(obj); err != nil {
			return fmt.Errorf("failed to store object: %w", err)
		}
	}

	return nil
}
