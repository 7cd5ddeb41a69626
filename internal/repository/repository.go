package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/umpire-scm/umpire/internal/constants"
)

// Repository locates one umpire repository on disk: a worktree directory
// and its .ump metadata directory. Every object, ref and config path is
// derived through the Path/FilePath/DirPath helpers.
type Repository struct {
	worktree string
	umpDir   string
	config   *ini.File
}

// Worktree returns the repository's working directory root.
func (r *Repository) Worktree() string {
	return r.worktree
}

// UmpDir returns the .ump metadata directory.
func (r *Repository) UmpDir() string {
	return r.umpDir
}

// ConfigValue returns a repository config value, or "" when unset.
func (r *Repository) ConfigValue(section, key string) string {
	if r.config == nil {
		return ""
	}
	return r.config.Section(section).Key(key).String()
}

// Path joins elements under the .ump directory without touching the disk.
func (r *Repository) Path(elem ...string) string {
	return filepath.Join(append([]string{r.umpDir}, elem...)...)
}

// FilePath returns the path of a metadata file, creating its parent
// directories when mkdir is true.
func (r *Repository) FilePath(mkdir bool, elem ...string) (string, error) {
	if len(elem) > 1 {
		if _, err := r.DirPath(mkdir, elem[:len(elem)-1]...); err != nil {
			return "", err
		}
	}
	return r.Path(elem...), nil
}

// DirPath returns the path of a metadata directory, creating it when mkdir
// is true. An existing non-directory at the path is an error.
func (r *Repository) DirPath(mkdir bool, elem ...string) (string, error) {
	path := r.Path(elem...)

	info, err := os.Stat(path)
	switch {
	case err == nil:
		if !info.IsDir() {
			return "", fmt.Errorf("not a directory: %s", path)
		}
		return path, nil
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("failed to check directory %s: %w", path, err)
	}

	if !mkdir {
		return path, nil
	}
	if err := os.MkdirAll(path, constants.DirPerms); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return path, nil
}

// Open loads an existing repository at path, validating the metadata
// directory and the config file's repository format version.
func Open(path string) (*Repository, error) {
	repo := &Repository{
		worktree: path,
		umpDir:   filepath.Join(path, constants.UmpDir),
	}

	info, err := os.Stat(repo.umpDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("not an umpire repository: %s", path)
	}

	configPath := repo.Path(constants.Config)
	config, err := ini.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read repository config: %w", err)
	}

	version, err := config.Section("core").Key("repositoryformatversion").Int()
	if err != nil {
		return nil, fmt.Errorf("failed to read repositoryformatversion: %w", err)
	}
	if version != constants.RepositoryFormatVersion {
		return nil, fmt.Errorf("unsupported repository format version %d", version)
	}

	repo.config = config
	return repo, nil
}

// Init creates a new repository at path and returns it opened.
func Init(path string) (*Repository, error) {
	umpDir := filepath.Join(path, constants.UmpDir)

	if err := checkRepositoryDoesNotExist(umpDir); err != nil {
		return nil, err
	}

	// Track if initialization of umpire directories and files was successful.
	// A deferred cleanup removes any partially created metadata when it is
	// still false on return.
	var initSuccess bool

	defer func() {
		if !initSuccess {
			cleanupRepository(umpDir)
		}
	}()

	directories := []string{
		umpDir,
		filepath.Join(umpDir, constants.Branches),
		filepath.Join(umpDir, constants.Objects),
		filepath.Join(umpDir, constants.Refs, constants.Heads),
		filepath.Join(umpDir, constants.Refs, constants.Tags),
	}

	for _, directory := range directories {
		if err := os.MkdirAll(directory, constants.DirPerms); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", directory, err)
		}
	}

	descriptionFile := filepath.Join(umpDir, constants.Description)
	if err := os.WriteFile(descriptionFile, []byte(constants.DefaultDescription), constants.FilePerms); err != nil {
		return nil, fmt.Errorf("failed to create description file: %w", err)
	}

	// HEAD points at the default branch, which does not exist yet
	headFile := filepath.Join(umpDir, constants.Head)
	headContent := constants.DefaultRefPrefix + constants.DefaultBranch + "\n"
	if err := os.WriteFile(headFile, []byte(headContent), constants.FilePerms); err != nil {
		return nil, fmt.Errorf("failed to create HEAD file: %w", err)
	}

	configFile := filepath.Join(umpDir, constants.Config)
	if err := defaultConfig().SaveTo(configFile); err != nil {
		return nil, fmt.Errorf("failed to create config file: %w", err)
	}

	repo, err := Open(path)
	if err != nil {
		return nil, err
	}

	initSuccess = true
	return repo, nil
}

// defaultConfig builds the config written at init: format version 0,
// filemode tracking off, non-bare.
func defaultConfig() *ini.File {
	config := ini.Empty()
	core := config.Section("core")
	core.Key("repositoryformatversion").SetValue(fmt.Sprint(constants.RepositoryFormatVersion))
	core.Key("filemode").SetValue("false")
	core.Key("bare").SetValue("false")
	return config
}

// Find locates the repository containing start by walking up the directory
// tree until a .ump directory appears, failing at the filesystem root.
func Find(start string) (*Repository, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", start, err)
	}

	for {
		umpPath := filepath.Join(dir, constants.UmpDir)
		if info, err := os.Stat(umpPath); err == nil && info.IsDir() {
			return Open(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding .ump
			return nil, fmt.Errorf("no umpire repository found in %s or any parent directory", start)
		}
		dir = parent
	}
}

func checkRepositoryDoesNotExist(path string) error {
	_, err := os.Stat(path)

	// If path doesn't exist there is no error
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to check repository path: %w", err)
	}

	return fmt.Errorf("repository already exists at %s", path)
}

// Removes the entire .ump directory if it exists
func cleanupRepository(umpDir string) {
	if _, err := os.Stat(umpDir); err == nil {
		slog.Debug("Cleaning up partial repository initialization",
			"path", umpDir)

		if err := os.RemoveAll(umpDir); err != nil {
			slog.Warn("Failed to cleanup repository directory",
				"path", umpDir,
				"error", err)
		} else {
			slog.Debug("Successfully cleaned up repository directory",
				"path", umpDir)
		}
	}
}
