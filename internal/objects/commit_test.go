package objects

import (
	"bytes"
	"strings"
	"testing"

	"github.com/umpire-scm/umpire/testutils"
)

func TestCommit_SerializeTwoParents(t *testing.T) {
	treeHash := testutils.RandomHash()
	firstParent := testutils.RandomHash()
	secondParent := testutils.RandomHash()

	commit := createCommit(t, treeHash, []string{firstParent, secondParent}, "fix bug\n")

	payload := string(commit.Serialize())

	// Both parent lines survive in original order, message after one blank line
	expectedPrefix := "tree " + treeHash + "\nparent " + firstParent + "\nparent " + secondParent + "\n"
	if !strings.HasPrefix(payload, expectedPrefix) {
		t.Errorf("Payload prefix mismatch:\n got %q\nwant prefix %q", payload, expectedPrefix)
	}
	if !strings.HasSuffix(payload, "\n\nfix bug\n") {
		t.Errorf("Expected message after a single blank line, got %q", payload)
	}
}

func TestCommit_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		parents []string
	}{
		{"initial commit", nil},
		{"one parent", []string{testutils.RandomHash()}},
		{"merge commit", []string{testutils.RandomHash(), testutils.RandomHash(), testutils.RandomHash()}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			commit := createCommit(t, testutils.RandomHash(), test.parents, "some change\n")

			decoded, err := DeserializeCommit(commit.Serialize())
			if err != nil {
				t.Fatalf("Failed to deserialize commit: %v", err)
			}

			if decoded.Hash() != commit.Hash() {
				t.Errorf("Hash changed through round trip: %s vs %s", commit.Hash(), decoded.Hash())
			}
			if !bytes.Equal(decoded.Serialize(), commit.Serialize()) {
				t.Errorf("Payload changed through round trip")
			}
			if decoded.TreeHash() != commit.TreeHash() {
				t.Errorf("Tree hash = %s, want %s", decoded.TreeHash(), commit.TreeHash())
			}

			parents := decoded.Parents()
			if len(parents) != len(test.parents) {
				t.Fatalf("Parent count = %d, want %d", len(parents), len(test.parents))
			}
			for i, parent := range parents {
				if parent != test.parents[i] {
					t.Errorf("Parent %d = %s, want %s", i, parent, test.parents[i])
				}
			}
		})
	}
}

func TestCommit_MessageNewlineAppended(t *testing.T) {
	commit := createCommit(t, testutils.RandomHash(), nil, "no trailing newline")

	if commit.Message() != "no trailing newline\n" {
		t.Errorf("Message = %q, want trailing newline appended", commit.Message())
	}
}

func TestCommit_IsInitialCommit(t *testing.T) {
	initial := createCommit(t, testutils.RandomHash(), nil, "first\n")
	if !initial.IsInitialCommit() {
		t.Error("Expected commit without parents to be initial")
	}

	child := createCommit(t, testutils.RandomHash(), []string{initial.Hash()}, "second\n")
	if child.IsInitialCommit() {
		t.Error("Expected commit with a parent to not be initial")
	}
}

func TestCommit_AuthorLine(t *testing.T) {
	commit := createCommit(t, testutils.RandomHash(), nil, "change\n")

	// Deterministic author: unix 1700000000, UTC
	expected := "Test Author <author@example.com> 1700000000 +0000"
	if commit.AuthorLine() != expected {
		t.Errorf("Author line = %q, want %q", commit.AuthorLine(), expected)
	}
}

func TestCommit_UnknownHeadersRoundTrip(t *testing.T) {
	payload := []byte("tree " + testutils.RandomHash() + "\n" +
		"custom-header some value\n" +
		"\n" +
		"message\n")

	commit, err := DeserializeCommit(payload)
	if err != nil {
		t.Fatalf("Failed to deserialize commit: %v", err)
	}

	if !bytes.Equal(commit.Serialize(), payload) {
		t.Errorf("Unknown header not preserved:\n got %q\nwant %q", commit.Serialize(), payload)
	}
}
