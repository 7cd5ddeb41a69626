// Package worktree materializes stored trees into working directories.
package worktree

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/umpire-scm/umpire/internal/constants"
	"github.com/umpire-scm/umpire/internal/objects"
)

var (
	// ErrNotADirectory reports a destination path occupied by a file.
	ErrNotADirectory = errors.New("destination is not a directory")

	// ErrDirectoryNotEmpty reports a destination directory with entries.
	ErrDirectoryNotEmpty = errors.New("destination directory is not empty")
)

// Materialize writes every entry of tree under destination, creating
// subdirectories for nested trees and files for blobs. The destination must
// be absent or an empty directory; that is checked once at the top level.
//
// The tree is staged into a temporary sibling directory and renamed into
// place only after every object has been written, so a failure partway
// through leaves the destination untouched.
func Materialize(store *objects.ObjectStore, tree *objects.Tree, destination string) error {
	destination = filepath.Clean(destination)

	info, err := os.Stat(destination)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrNotADirectory, destination)
		}
		entries, err := os.ReadDir(destination)
		if err != nil {
			return fmt.Errorf("failed to inspect destination %s: %w", destination, err)
		}
		if len(entries) > 0 {
			return fmt.Errorf("%w: %s", ErrDirectoryNotEmpty, destination)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to inspect destination %s: %w", destination, err)
	}

	staging, err := os.MkdirTemp(filepath.Dir(destination), ".ump-checkout-*")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}

	if err := materializeInto(store, tree, staging); err != nil {
		if cleanupErr := os.RemoveAll(staging); cleanupErr != nil {
			slog.Warn("Failed to remove checkout staging directory",
				"path", staging,
				"error", cleanupErr)
		}
		return err
	}

	// Replace the (verified empty) destination with the staged tree
	if err := os.Remove(destination); err != nil && !errors.Is(err, fs.ErrNotExist) {
		os.RemoveAll(staging)
		return fmt.Errorf("failed to replace destination %s: %w", destination, err)
	}
	if err := os.Rename(staging, destination); err != nil {
		os.RemoveAll(staging)
		return fmt.Errorf("failed to move checkout into place: %w", err)
	}

	return nil
}

// materializeInto recursively writes tree entries under dir, dispatching on
// the kind of each referenced object.
func materializeInto(store *objects.ObjectStore, tree *objects.Tree, dir string) error {
	for _, entry := range tree.Entries() {
		obj, err := store.Read(entry.Hash())
		if err != nil {
			return fmt.Errorf("failed to read entry %s: %w", entry.Name(), err)
		}
		target := filepath.Join(dir, entry.Name())

		switch typed := obj.(type) {
		case *objects.Tree:
			if err := os.Mkdir(target, constants.DirPerms); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			if err := materializeInto(store, typed, target); err != nil {
				return err
			}
		case *objects.Blob:
			perms := constants.FilePerms
			if entry.IsExecutable() {
				perms = constants.ExecPerms
			}
			if err := os.WriteFile(target, typed.Content(), perms); err != nil {
				return fmt.Errorf("failed to write file %s: %w", target, err)
			}
		default:
			return fmt.Errorf("%w: tree entry %s references a %s",
				objects.ErrMalformedObject, entry.Name(), obj.Kind())
		}
	}

	return nil
}
