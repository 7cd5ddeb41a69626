package refs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/umpire-scm/umpire/internal/constants"
	"github.com/umpire-scm/umpire/internal/repository"
)

// RefStore reads and writes named pointers under the .ump directory. A ref
// file holds either a 40-hex-digit hash or a symbolic indirection of the
// form "ref: <other-ref-path>", each followed by one newline. Ref names use
// forward slashes regardless of platform ("refs/heads/master").
type RefStore struct {
	repo *repository.Repository
}

func NewRefStore(repo *repository.Repository) *RefStore {
	return &RefStore{
		repo: repo,
	}
}

// Resolve follows name down to a direct object hash. Symbolic indirection
// may chain through multiple refs but is capped at MaxSymRefHops; chains
// longer than that fail with ErrRefCycle.
func (r *RefStore) Resolve(name string) (string, error) {
	current := name
	for hop := 0; hop < constants.MaxSymRefHops; hop++ {
		refPath := r.repo.Path(filepath.FromSlash(current))

		data, err := os.ReadFile(refPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("%w: %s", ErrNoSuchReference, current)
			}
			return "", fmt.Errorf("failed to read ref %s: %w", current, err)
		}

		// Drop the single trailing newline
		content := strings.TrimSuffix(string(data), "\n")

		if target, isSymbolic := strings.CutPrefix(content, constants.SymRefPrefix); isSymbolic {
			current = target
			continue
		}
		return content, nil
	}

	return "", fmt.Errorf("%w: %s did not terminate within %d hops",
		ErrRefCycle, name, constants.MaxSymRefHops)
}

// Create writes a direct ref pointing at hash, creating missing namespace
// directories. An existing ref of the same name is overwritten.
func (r *RefStore) Create(name, hash string) error {
	elements := strings.Split(name, "/")
	refPath, err := r.repo.FilePath(true, elements...)
	if err != nil {
		return fmt.Errorf("failed to prepare ref path %s: %w", name, err)
	}

	if err := os.WriteFile(refPath, []byte(hash+"\n"), constants.FilePerms); err != nil {
		return fmt.Errorf("failed to write ref %s: %w", name, err)
	}
	return nil
}

// Ref is one node of a listed ref namespace: either a leaf with a resolved
// hash or a nested namespace with children. Path is the slash-separated
// name relative to the .ump directory.
type Ref struct {
	Name     string
	Path     string
	Hash     string
	Children []Ref
}

// IsNamespace reports whether the ref is a nested namespace node.
func (r Ref) IsNamespace() bool {
	return r.Children != nil
}

// List enumerates a ref namespace (default "refs") in lexical filename
// order, recursing into sub-namespaces. Leaf hashes are fully resolved, so
// symbolic refs inside the namespace surface as direct hashes.
func (r *RefStore) List(namespace string) ([]Ref, error) {
	if namespace == "" {
		namespace = constants.Refs
	}

	dir := r.repo.Path(filepath.FromSlash(namespace))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list refs under %s: %w", namespace, err)
	}

	// os.ReadDir returns entries in lexical filename order
	refs := make([]Ref, 0, len(entries))
	for _, entry := range entries {
		refPath := path.Join(namespace, entry.Name())

		if entry.IsDir() {
			children, err := r.List(refPath)
			if err != nil {
				return nil, err
			}
			refs = append(refs, Ref{
				Name:     entry.Name(),
				Path:     refPath,
				Children: children,
			})
			continue
		}

		hash, err := r.Resolve(refPath)
		if err != nil {
			return nil, err
		}
		refs = append(refs, Ref{
			Name: entry.Name(),
			Path: refPath,
			Hash: hash,
		})
	}

	return refs, nil
}

// Flatten walks a listed namespace depth-first and returns its leaves in
// listing order.
func Flatten(refs []Ref) []Ref {
	var leaves []Ref
	for _, ref := range refs {
		if ref.IsNamespace() {
			leaves = append(leaves, Flatten(ref.Children)...)
			continue
		}
		leaves = append(leaves, ref)
	}
	return leaves
}
