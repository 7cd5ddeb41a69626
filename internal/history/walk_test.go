package history

import (
	"errors"
	"testing"
	"time"

	"github.com/umpire-scm/umpire/internal/objects"
	"github.com/umpire-scm/umpire/testutils"
)

func setupStore(t *testing.T) *objects.ObjectStore {
	t.Helper()

	return objects.NewObjectStore(testutils.SetupTestRepo(t))
}

// storeCommit stores a commit with the given parents and returns its hash.
// The message doubles as a label to keep each node's hash distinct.
func storeCommit(t *testing.T, store *objects.ObjectStore, label string, parents ...string) string {
	t.Helper()

	author := objects.Author{
		Name:      "Test Author",
		Email:     "author@example.com",
		Timestamp: time.Unix(1700000000, 0).UTC(),
	}
	commit, err := objects.NewCommit(testutils.RandomHash(), parents, label, author)
	if err != nil {
		t.Fatalf("Failed to create commit %s: %v", label, err)
	}
	if err := store.Store(commit); err != nil {
		t.Fatalf("Failed to store commit %s: %v", label, err)
	}
	return commit.Hash()
}

type edge struct {
	child  string
	parent string
}

// collectEdges walks from start and records every visited edge in order.
func collectEdges(t *testing.T, store *objects.ObjectStore, start string) []edge {
	t.Helper()

	var edges []edge
	err := Walk(store, start, func(child, parent string) error {
		edges = append(edges, edge{child, parent})
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	return edges
}

func TestWalk_LinearHistory(t *testing.T) {
	store := setupStore(t)

	root := storeCommit(t, store, "root\n")
	middle := storeCommit(t, store, "middle\n", root)
	tip := storeCommit(t, store, "tip\n", middle)

	edges := collectEdges(t, store, tip)

	expected := []edge{
		{tip, middle},
		{middle, root},
	}
	if len(edges) != len(expected) {
		t.Fatalf("Edge count = %d, want %d", len(edges), len(expected))
	}
	for i, want := range expected {
		if edges[i] != want {
			t.Errorf("Edge %d = %v, want %v", i, edges[i], want)
		}
	}
}

func TestWalk_SingleCommit(t *testing.T) {
	store := setupStore(t)

	root := storeCommit(t, store, "lonely root\n")

	edges := collectEdges(t, store, root)
	if len(edges) != 0 {
		t.Errorf("Expected no edges for a parentless commit, got %v", edges)
	}
}

// A diamond history (two branches merging back to one ancestor) must visit
// and expand the shared ancestor exactly once.
func TestWalk_DiamondVisitsAncestorOnce(t *testing.T) {
	store := setupStore(t)

	root := storeCommit(t, store, "root\n")
	ancestor := storeCommit(t, store, "ancestor\n", root)
	left := storeCommit(t, store, "left\n", ancestor)
	right := storeCommit(t, store, "right\n", ancestor)
	merge := storeCommit(t, store, "merge\n", left, right)

	edges := collectEdges(t, store, merge)

	// Depth-first, first parent first: the ancestor is expanded under the
	// left branch and only referenced as a parent under the right branch.
	expected := []edge{
		{merge, left},
		{left, ancestor},
		{ancestor, root},
		{merge, right},
		{right, ancestor},
	}
	if len(edges) != len(expected) {
		t.Fatalf("Edge count = %d, want %d: %v", len(edges), len(expected), edges)
	}
	for i, want := range expected {
		if edges[i] != want {
			t.Errorf("Edge %d = %v, want %v", i, edges[i], want)
		}
	}

	ancestorExpansions := 0
	for _, e := range edges {
		if e.child == ancestor {
			ancestorExpansions++
		}
	}
	if ancestorExpansions != 1 {
		t.Errorf("Shared ancestor expanded %d times, want 1", ancestorExpansions)
	}
}

func TestWalk_MissingCommit(t *testing.T) {
	store := setupStore(t)

	err := Walk(store, testutils.RandomHash(), func(child, parent string) error {
		return nil
	})
	if err == nil {
		t.Fatal("Expected error walking from a missing commit")
	}
	if !errors.Is(err, objects.ErrObjectNotFound) {
		t.Errorf("Expected ErrObjectNotFound, got: %v", err)
	}
}

func TestWalk_VisitorErrorStopsWalk(t *testing.T) {
	store := setupStore(t)

	root := storeCommit(t, store, "root\n")
	tip := storeCommit(t, store, "tip\n", root)

	stop := errors.New("stop here")
	calls := 0
	err := Walk(store, tip, func(child, parent string) error {
		calls++
		return stop
	})

	if !errors.Is(err, stop) {
		t.Errorf("Expected visitor error to propagate, got: %v", err)
	}
	if calls != 1 {
		t.Errorf("Visitor called %d times, want 1", calls)
	}
}

func TestWalk_ShortParentHash(t *testing.T) {
	store := setupStore(t)

	// Header values are preserved verbatim, so a one-character parent is
	// storable; walking into it must fail, not panic.
	tip := storeCommit(t, store, "bad parent\n", "a")

	err := Walk(store, tip, func(child, parent string) error {
		return nil
	})
	if err == nil {
		t.Fatal("Expected error walking into a malformed parent hash")
	}
	if !errors.Is(err, objects.ErrObjectNotFound) {
		t.Errorf("Expected ErrObjectNotFound, got: %v", err)
	}
}
