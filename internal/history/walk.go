// Package history traverses the commit ancestry graph.
package history

import (
	"github.com/umpire-scm/umpire/internal/objects"
)

// Visitor receives one parent edge per call. The walk stops early when it
// returns an error.
type Visitor func(childHash, parentHash string) error

// Walk traverses the ancestry graph depth-first from startHash, invoking
// the visitor once per parent edge. A visited set guarantees each commit is
// expanded at most once, so diamond-shaped merge histories emit the shared
// ancestor a single time; the same set is what keeps the walk from looping
// on cyclic parent data, which only corrupt storage can produce.
func Walk(store *objects.ObjectStore, startHash string, visit Visitor) error {
	seen := make(map[string]bool)
	return walk(store, startHash, visit, seen)
}

func walk(store *objects.ObjectStore, hash string, visit Visitor, seen map[string]bool) error {
	if seen[hash] {
		return nil
	}
	seen[hash] = true

	commit, err := store.ReadCommit(hash)
	if err != nil {
		return err
	}

	for _, parent := range commit.Parents() {
		if err := visit(hash, parent); err != nil {
			return err
		}
		if err := walk(store, parent, visit, seen); err != nil {
			return err
		}
	}

	return nil
}
