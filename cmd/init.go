package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umpire-scm/umpire/internal/constants"
	"github.com/umpire-scm/umpire/internal/repository"
	"github.com/umpire-scm/umpire/utils"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a new umpire repository",
	Long: `The 'init' command sets up a new umpire repository in the current directory.
It creates a .ump directory with the objects and refs layout, a HEAD file
pointing at the default branch, and the repository configuration file.
If a repository already exists, the command will not overwrite existing data.`,
	SilenceUsage: true,
	Args:         maximumArgs(constants.InitCmdName, 1),
	RunE:         runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// runInit executes repository initialization at specified or current directory.
func runInit(cmd *cobra.Command, args []string) error {
	dirPath := "."
	if len(args) > 0 {
		dirPath = args[0]
	}

	if _, err := repository.Init(dirPath); err != nil {
		return fmt.Errorf("failed to initialize repository - %w", err)
	}

	cmd.Printf("Initialized empty umpire repository in %s\n", utils.BuildDirPath(dirPath, constants.UmpDir))
	return nil
}
