package cmd

import (
	"fmt"
	"path"
	"time"

	"github.com/spf13/cobra"

	"github.com/umpire-scm/umpire/internal/constants"
	"github.com/umpire-scm/umpire/internal/objects"
	"github.com/umpire-scm/umpire/internal/refs"
)

var tagCmd = &cobra.Command{
	Use:   "tag [name [object]]",
	Short: "List tags or create a tag",
	Long: `With no arguments, list tag names under refs/tags. With a name, create a
lightweight tag (a ref) pointing at the given object, HEAD by default. With
-a, create an annotated tag object and point the ref at it.`,
	SilenceUsage: true,
	Args:         maximumArgs(constants.TagCmdName, 2),
	RunE:         runTag,
}

var (
	annotateFlag   bool
	tagMessageFlag string
)

func init() {
	rootCmd.AddCommand(tagCmd)

	tagCmd.Flags().BoolVarP(&annotateFlag, "annotate", "a", false, "Create an annotated tag object")
	tagCmd.Flags().StringVarP(&tagMessageFlag, "message", "m", "", "Message for the annotated tag")
}

func runTag(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	store := objects.NewObjectStore(repo)
	refStore := refs.NewRefStore(repo)

	if len(args) == 0 {
		listed, err := refStore.List(path.Join(constants.Refs, constants.Tags))
		if err != nil {
			return err
		}
		for _, ref := range refs.Flatten(listed) {
			fmt.Fprintln(cmd.OutOrStdout(), ref.Name)
		}
		return nil
	}

	name := args[0]
	target := constants.Head
	if len(args) > 1 {
		target = args[1]
	}

	resolver := refs.NewResolver(refStore, store)
	hash, err := resolver.Resolve(target, "", false)
	if err != nil {
		return err
	}

	if annotateFlag {
		obj, err := store.Read(hash)
		if err != nil {
			return err
		}

		tagger := objects.Author{
			Name:      repo.ConfigValue("user", "name"),
			Email:     repo.ConfigValue("user", "email"),
			Timestamp: time.Now(),
		}
		tag, err := objects.NewTag(name, hash, obj.Kind(), tagMessageFlag, tagger)
		if err != nil {
			return err
		}
		if err := store.Store(tag); err != nil {
			return fmt.Errorf("failed to store tag object: %w", err)
		}
		hash = tag.Hash()
	}

	return refStore.Create(path.Join(constants.Refs, constants.Tags, name), hash)
}
