package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/umpire-scm/umpire/internal/objects"
	"github.com/umpire-scm/umpire/internal/refs"
	"github.com/umpire-scm/umpire/internal/repository"
)

// rootCmd defines the base command for the ump CLI.
// All subcommands (init, cat-file, log, etc.) register under this root.
// Uses cobra for command parsing, flag handling, and help generation.
var rootCmd = &cobra.Command{
	Use:   "ump",
	Short: "A content-addressable version control store",
	Long: `Umpire is a minimal content-addressable object store modeled on Git's
storage layer. It persists immutable blobs, trees, commits and tags keyed by
the SHA-1 of their canonical encoding and resolves names (branches, tags,
HEAD, hash prefixes) down to those keys.`,
}

// Execute runs the root command and handles exit codes.
// Called from main.go to start CLI execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openRepository locates the repository enclosing the working directory.
func openRepository() (*repository.Repository, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return repository.Find(dir)
}

// openStore opens the enclosing repository's object store.
func openStore() (*objects.ObjectStore, error) {
	repo, err := openRepository()
	if err != nil {
		return nil, err
	}
	return objects.NewObjectStore(repo), nil
}

// openResolver wires the enclosing repository's ref store and object store
// into a name resolver.
func openResolver() (*refs.Resolver, *objects.ObjectStore, error) {
	repo, err := openRepository()
	if err != nil {
		return nil, nil, err
	}
	store := objects.NewObjectStore(repo)
	return refs.NewResolver(refs.NewRefStore(repo), store), store, nil
}

// exactArgs validates command receives exactly n positional arguments.
// Enables usage printing in case of error.
func exactArgs(command string, n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			cmd.SilenceUsage = false
			return fmt.Errorf("%s command requires exactly %d argument(s), received %d", command, n, len(args))
		}
		return nil
	}
}

// maximumArgs validates command receives at most n positional arguments.
// Returns error with usage help if argument limit exceeded.
func maximumArgs(command string, n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			cmd.SilenceUsage = false
			return fmt.Errorf("%s command accepts at most %d arg(s), received %d", command, n, len(args))
		}
		return nil
	}
}
