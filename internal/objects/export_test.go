package objects

import (
	"testing"
	"time"

	"github.com/umpire-scm/umpire/testutils"
	"github.com/umpire-scm/umpire/utils"
)

// assertBlobHash verifies blob hash matches expected value for given content.
func assertBlobHash(t *testing.T, blob *Blob, content []byte) {
	t.Helper()

	expectedHash, err := utils.ComputeHash(content, utils.BlobObjectType)
	if err != nil {
		t.Fatalf("Hash computation failed: %v", err)
	}

	if blob.Hash() != expectedHash {
		t.Fatalf("Expected hash [%s], got [%s]", expectedHash, blob.Hash())
	}
}

// createTreeEntry creates tree entry and fails test on error.
func createTreeEntry(t *testing.T, mode FileMode, name, hash string) TreeEntry {
	t.Helper()

	entry, err := NewTreeEntry(mode, name, hash)
	if err != nil {
		t.Fatalf("Failed to create tree entry: %v", err)
	}

	return *entry
}

// createTree creates tree from entries and fails test on error.
func createTree(t *testing.T, entries []TreeEntry) *Tree {
	t.Helper()

	tree, err := NewTree(entries)
	if err != nil {
		t.Fatalf("Failed to create tree: %v", err)
	}

	return tree
}

// createTestAuthor returns a deterministic author so object hashes are
// stable across runs.
func createTestAuthor() Author {
	return Author{
		Name:      "Test Author",
		Email:     "author@example.com",
		Timestamp: time.Unix(1700000000, 0).UTC(),
	}
}

// createCommit creates a commit and fails test on error.
func createCommit(t *testing.T, treeHash string, parents []string, message string) *Commit {
	t.Helper()

	commit, err := NewCommit(treeHash, parents, message, createTestAuthor())
	if err != nil {
		t.Fatalf("Failed to create commit: %v", err)
	}

	return commit
}

// createAndStoreCommit creates a commit, stores it, and returns it.
func createAndStoreCommit(t *testing.T, store *ObjectStore, treeHash string, parents []string, message string) *Commit {
	t.Helper()

	commit := createCommit(t, treeHash, parents, message)
	if err := store.Store(commit); err != nil {
		t.Fatalf("Failed to store commit: %v", err)
	}

	return commit
}

// assertTreeEntryEqual verifies two tree entries match.
func assertTreeEntryEqual(t *testing.T, actual, expected TreeEntry) {
	t.Helper()

	if actual.Name() != expected.Name() {
		t.Errorf("Entry name mismatch: expected %s, got %s", expected.Name(), actual.Name())
	}
	if actual.Hash() != expected.Hash() {
		t.Errorf("Entry hash mismatch: expected %s, got %s", expected.Hash(), actual.Hash())
	}
	if actual.Mode() != expected.Mode() {
		t.Errorf("Entry mode mismatch: expected %s, got %s", expected.Mode(), actual.Mode())
	}
}

// setupStore creates an initialized repository and returns its object store.
func setupStore(t *testing.T) *ObjectStore {
	t.Helper()

	return NewObjectStore(testutils.SetupTestRepo(t))
}
