package cmd

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/umpire-scm/umpire/internal/constants"
	"github.com/umpire-scm/umpire/internal/objects"
	"github.com/umpire-scm/umpire/internal/refs"
	"github.com/umpire-scm/umpire/internal/repository"
	"github.com/umpire-scm/umpire/testutils"
)

// seedCommit stores a blob, tree and commit, points master at the commit,
// and returns the stored objects' hashes.
func seedCommit(t *testing.T, repo *repository.Repository) (commitHash, treeHash, blobHash string) {
	t.Helper()

	store := objects.NewObjectStore(repo)

	blob := objects.NewBlob([]byte("hello\n"))
	if err := store.Store(blob); err != nil {
		t.Fatalf("Failed to store blob: %v", err)
	}

	treeEntry, err := objects.NewTreeEntry(objects.ModeRegularFile, "hello.txt", blob.Hash())
	if err != nil {
		t.Fatalf("Failed to create tree entry: %v", err)
	}
	tree, err := objects.NewTree([]objects.TreeEntry{*treeEntry})
	if err != nil {
		t.Fatalf("Failed to create tree: %v", err)
	}
	if err := store.Store(tree); err != nil {
		t.Fatalf("Failed to store tree: %v", err)
	}

	author := objects.Author{
		Name:      "Test Author",
		Email:     "author@example.com",
		Timestamp: time.Unix(1700000000, 0).UTC(),
	}
	commit, err := objects.NewCommit(tree.Hash(), nil, "initial\n", author)
	if err != nil {
		t.Fatalf("Failed to create commit: %v", err)
	}
	if err := store.Store(commit); err != nil {
		t.Fatalf("Failed to store commit: %v", err)
	}

	testutils.WriteRef(t, repo, "refs/heads/"+constants.DefaultBranch, commit.Hash())

	return commit.Hash(), tree.Hash(), blob.Hash()
}

func TestCatFileCommand_Blob(t *testing.T) {
	repo := setupInitializedRepo(t)
	_, _, blobHash := seedCommit(t, repo)

	testRootCmd := createTestRootCmd(catFileCmd)
	stdout := captureStdout(testRootCmd)
	testRootCmd.SetArgs([]string{constants.CatFileCmdName, "blob", blobHash})

	if err := testRootCmd.Execute(); err != nil {
		t.Fatalf("%s command failed: %v", constants.CatFileCmdName, err)
	}

	if stdout.String() != "hello\n" {
		t.Errorf("Output = %q, want %q", stdout.String(), "hello\n")
	}
}

func TestCatFileCommand_TreeViaHEAD(t *testing.T) {
	repo := setupInitializedRepo(t)
	seedCommit(t, repo)

	// HEAD is a commit; requesting a tree follows the commit's tree header
	testRootCmd := createTestRootCmd(catFileCmd)
	stdout := captureStdout(testRootCmd)
	testRootCmd.SetArgs([]string{constants.CatFileCmdName, "tree", "HEAD"})

	if err := testRootCmd.Execute(); err != nil {
		t.Fatalf("%s command failed: %v", constants.CatFileCmdName, err)
	}

	if !strings.Contains(stdout.String(), "hello.txt") {
		t.Errorf("Expected tree payload with hello.txt entry, got %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "100644") {
		t.Errorf("Expected tree payload with file mode, got %q", stdout.String())
	}
}

func TestCatFileCommand_UnknownName(t *testing.T) {
	repo := setupInitializedRepo(t)
	seedCommit(t, repo)

	testRootCmd := createTestRootCmd(catFileCmd)
	captureStdout(testRootCmd)
	captureStderr(testRootCmd)
	testRootCmd.SetArgs([]string{constants.CatFileCmdName, "blob", "deadbeef"})

	err := testRootCmd.Execute()
	if err == nil {
		t.Fatal("Expected error for unknown name")
	}
	if !errors.Is(err, refs.ErrNoSuchReference) {
		t.Errorf("Expected ErrNoSuchReference, got: %v", err)
	}
}

func TestRevParseCommand_ShortHash(t *testing.T) {
	repo := setupInitializedRepo(t)
	commitHash, _, _ := seedCommit(t, repo)

	testRootCmd := createTestRootCmd(revParseCmd)
	stdout := captureStdout(testRootCmd)
	testRootCmd.SetArgs([]string{constants.RevParseCmdName, commitHash[:8]})

	if err := testRootCmd.Execute(); err != nil {
		t.Fatalf("%s command failed: %v", constants.RevParseCmdName, err)
	}

	if strings.TrimSpace(stdout.String()) != commitHash {
		t.Errorf("Output = %q, want %s", stdout.String(), commitHash)
	}
}

func TestShowRefCommand_ListsRefs(t *testing.T) {
	repo := setupInitializedRepo(t)
	commitHash, _, _ := seedCommit(t, repo)

	testRootCmd := createTestRootCmd(showRefCmd)
	stdout := captureStdout(testRootCmd)
	testRootCmd.SetArgs([]string{constants.ShowRefCmdName})

	if err := testRootCmd.Execute(); err != nil {
		t.Fatalf("%s command failed: %v", constants.ShowRefCmdName, err)
	}

	expected := commitHash + " refs/heads/" + constants.DefaultBranch
	if !strings.Contains(stdout.String(), expected) {
		t.Errorf("Output = %q, want line %q", stdout.String(), expected)
	}
}

func TestLogCommand_EmitsDigraph(t *testing.T) {
	repo := setupInitializedRepo(t)
	seedCommit(t, repo)

	testRootCmd := createTestRootCmd(logCmd)
	stdout := captureStdout(testRootCmd)
	testRootCmd.SetArgs([]string{constants.LogCmdName})

	if err := testRootCmd.Execute(); err != nil {
		t.Fatalf("%s command failed: %v", constants.LogCmdName, err)
	}

	output := stdout.String()
	if !strings.HasPrefix(output, "digraph umplog{\n") || !strings.HasSuffix(output, "}\n") {
		t.Errorf("Expected graphviz digraph, got %q", output)
	}
}
