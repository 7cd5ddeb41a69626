package testutils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/umpire-scm/umpire/internal/constants"
	"github.com/umpire-scm/umpire/internal/repository"
)

// RandomString generates a random hex string of n bytes
func RandomString(n int) string {
	bytes := make([]byte, n)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// RandomHash generates a random 40-character SHA-1 hash
func RandomHash() string {
	return RandomString(constants.HashByteLength)
}

// SetupTestRepo creates a fully initialized .ump repository in a temporary
// directory and returns it opened.
func SetupTestRepo(t *testing.T) *repository.Repository {
	t.Helper()

	repo, err := repository.Init(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to initialize test repository: %v", err)
	}
	return repo
}

// WriteRef writes a ref file with the given content (a hash or a symbolic
// "ref: ..." line), creating parent directories as needed.
func WriteRef(t *testing.T, repo *repository.Repository, name, content string) {
	t.Helper()

	refPath := repo.Path(filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(refPath), constants.DirPerms); err != nil {
		t.Fatalf("Failed to create ref directory for %s: %v", name, err)
	}
	if err := os.WriteFile(refPath, []byte(content+"\n"), constants.FilePerms); err != nil {
		t.Fatalf("Failed to write ref %s: %v", name, err)
	}
}

// CreateTestFile creates a file with given content in the specified directory.
// Returns the full path to the created file.
func CreateTestFile(t *testing.T, dir, filename string, content []byte) string {
	t.Helper()

	filePath := filepath.Join(dir, filename)
	if err := os.WriteFile(filePath, content, constants.FilePerms); err != nil {
		t.Fatalf("Failed to create test file %s: %v", filename, err)
	}

	return filePath
}

// AssertFileExists checks that a file exists at the given path.
// Fails the test if the file doesn't exist.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected file to exist at %s", path)
	}
}

// AssertFileNotExists checks that a file does NOT exist at the given path.
// Fails the test if the file exists.
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to NOT exist at %s", path)
	}
}

// AssertDirExists checks that a directory exists at the given path.
// Fails the test if the directory doesn't exist.
func AssertDirExists(t *testing.T, path string) {
	t.Helper()

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected directory to exist at %s", path)
		return
	}
	if err != nil {
		t.Errorf("Failed to stat directory %s: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("Expected %s to be a directory, but it's a file", path)
	}
}

// AssertRepositoryStructure validates the complete .ump directory structure.
// Verifies objects/, refs/heads/, refs/tags/ exist and HEAD contains the
// default branch reference.
func AssertRepositoryStructure(t *testing.T, repoPath string) {
	t.Helper()

	umpDir := filepath.Join(repoPath, constants.UmpDir)
	AssertDirExists(t, umpDir)

	expectedDirs := []string{
		constants.Objects,
		constants.Refs,
		filepath.Join(constants.Refs, constants.Heads),
		filepath.Join(constants.Refs, constants.Tags),
	}
	for _, dir := range expectedDirs {
		AssertDirExists(t, filepath.Join(umpDir, dir))
	}

	headPath := filepath.Join(umpDir, constants.Head)
	AssertFileExists(t, headPath)

	content, err := os.ReadFile(headPath)
	if err != nil {
		t.Fatalf("Failed to read %s file: %v", constants.Head, err)
	}

	expectedContent := constants.DefaultRefPrefix + constants.DefaultBranch + "\n"
	if string(content) != expectedContent {
		t.Errorf("%s content = %q, want %q", constants.Head, content, expectedContent)
	}

	configPath := filepath.Join(umpDir, constants.Config)
	AssertFileExists(t, configPath)
}
