package objects

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/umpire-scm/umpire/internal/constants"
	"github.com/umpire-scm/umpire/internal/repository"
	"github.com/umpire-scm/umpire/utils"
)

// ObjectStore maps object hashes to compressed envelopes on disk under
// .ump/objects/<hash[0:2]>/<hash[2:]>. Content addressing makes writes
// idempotent: storing the same content twice leaves exactly one object.
type ObjectStore struct {
	repo *repository.Repository
}

func NewObjectStore(repo *repository.Repository) *ObjectStore {
	return &ObjectStore{
		repo: repo,
	}
}

// objectPath derives the fanout path for a hash, creating the prefix
// directory when mkdir is true. The hash must be a full 40-digit hex
// string; header values and ref contents flow in here uninspected, so a
// short or non-hex reference fails with ErrObjectNotFound instead of
// slicing out of range.
func (store *ObjectStore) objectPath(hash string, mkdir bool) (string, error) {
	if len(hash) != constants.HashStringLength || !utils.IsHex(hash) {
		return "", fmt.Errorf("%w: malformed hash reference %q", ErrObjectNotFound, hash)
	}

	dir, err := store.repo.DirPath(mkdir, constants.Objects, hash[:constants.HashDirPrefixLength])
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, hash[constants.HashDirPrefixLength:]), nil
}

// Write computes the object's hash and, when persist is true, saves its
// compressed envelope. Writing an already-present hash is a safe no-op.
func (store *ObjectStore) Write(obj Object, persist bool) (string, error) {
	hash := obj.Hash()
	if !persist {
		return hash, nil
	}

	objectFile, err := store.objectPath(hash, true)
	if err != nil {
		return "", err
	}

	// Check if object already exists (content-addressable)
	_, err = os.Stat(objectFile)
	if err == nil {
		slog.Debug("Object with this hash already exists",
			"hash", hash)
		return hash, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	compressedData, err := EncodeEnvelope(obj.Kind(), obj.Serialize())
	if err != nil {
		return "", fmt.Errorf("failed to compress object: %w", err)
	}

	if err := os.WriteFile(objectFile, compressedData, constants.FilePerms); err != nil {
		return "", fmt.Errorf("failed to write object file: %w", err)
	}

	return hash, nil
}

// Store persists an object, keeping the envelope write path on one call.
func (store *ObjectStore) Store(obj Object) error {
	_, err := store.Write(obj, true)
	return err
}

// Read loads, decompresses and decodes the object stored under hash.
// A missing file fails with ErrObjectNotFound; any integrity failure,
// including a recomputed hash that disagrees with the file name, fails
// with ErrMalformedObject.
func (store *ObjectStore) Read(hash string) (Object, error) {
	objectFile, err := store.objectPath(hash, false)
	if err != nil {
		return nil, err
	}

	compressedData, err := os.ReadFile(objectFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, hash)
		}
		return nil, fmt.Errorf("failed to read object file %s: %w", hash, err)
	}

	kind, payload, err := DecodeEnvelope(compressedData)
	if err != nil {
		return nil, err
	}

	obj, err := Deserialize(kind, payload)
	if err != nil {
		return nil, err
	}

	if obj.Hash() != hash {
		return nil, fmt.Errorf("%w: hash mismatch, expected %s got %s",
			ErrMalformedObject, hash, obj.Hash())
	}

	return obj, nil
}

// ReadBlob reads an object and requires it to be a blob.
func (store *ObjectStore) ReadBlob(hash string) (*Blob, error) {
	obj, err := store.Read(hash)
	if err != nil {
		return nil, err
	}
	blob, ok := obj.(*Blob)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a %s, not a blob", ErrMalformedObject, hash, obj.Kind())
	}
	return blob, nil
}

// ReadTree reads an object and requires it to be a tree.
func (store *ObjectStore) ReadTree(hash string) (*Tree, error) {
	obj, err := store.Read(hash)
	if err != nil {
		return nil, err
	}
	tree, ok := obj.(*Tree)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a %s, not a tree", ErrMalformedObject, hash, obj.Kind())
	}
	return tree, nil
}

// ReadCommit reads an object and requires it to be a commit.
func (store *ObjectStore) ReadCommit(hash string) (*Commit, error) {
	obj, err := store.Read(hash)
	if err != nil {
		return nil, err
	}
	commit, ok := obj.(*Commit)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a %s, not a commit", ErrMalformedObject, hash, obj.Kind())
	}
	return commit, nil
}

// Exists checks if an object exists in storage.
func (store *ObjectStore) Exists(hash string) bool {
	objectFile, err := store.objectPath(hash, false)
	if err != nil {
		return false
	}
	_, err = os.Stat(objectFile)
	return !errors.Is(err, fs.ErrNotExist)
}

// FindPrefix collects every stored hash starting with prefix, in lexical
// order. The prefix must be 4 to 40 hex digits; only the directory named by
// the first two digits is scanned, so lookups stay cheap.
func (store *ObjectStore) FindPrefix(prefix string) ([]string, error) {
	if len(prefix) < constants.MinAbbrevLength || len(prefix) > constants.HashStringLength {
		return nil, fmt.Errorf("hash prefix %q must be between %d and %d characters",
			prefix, constants.MinAbbrevLength, constants.HashStringLength)
	}
	if !utils.IsHex(prefix) {
		return nil, fmt.Errorf("hash prefix %q is not hexadecimal", prefix)
	}

	prefix = strings.ToLower(prefix)
	dir := store.repo.Path(constants.Objects, prefix[:constants.HashDirPrefixLength])
	suffix := prefix[constants.HashDirPrefixLength:]

	files, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan object directory %s: %w", dir, err)
	}

	// os.ReadDir returns entries in lexical filename order
	var candidates []string
	for _, file := range files {
		if strings.HasPrefix(file.Name(), suffix) {
			candidates = append(candidates, prefix[:constants.HashDirPrefixLength]+file.Name())
		}
	}

	return candidates, nil
}
