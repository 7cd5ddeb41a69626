package objects

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/umpire-scm/umpire/internal/constants"
	"github.com/umpire-scm/umpire/utils"
)

type FileMode string

const (
	ModeRegularFile FileMode = "100644" // Regular non-executable file
	ModeExecutable  FileMode = "100755" // Executable file
	ModeSymlink     FileMode = "120000" // Symbolic link
	ModeDirectory   FileMode = "40000"  // Directory (tree), 5 digits on the wire
	ModeSubmodule   FileMode = "160000" // Submodule commit reference
)

// IsValid checks the wire-format rule: 5 or 6 ASCII octal digits. Unknown
// but well-formed modes are accepted and round-tripped untouched.
func (m FileMode) IsValid() bool {
	if len(m) != 5 && len(m) != 6 {
		return false
	}
	for i := 0; i < len(m); i++ {
		if m[i] < '0' || m[i] > '7' {
			return false
		}
	}
	return true
}

// TreeEntry represents a single entry in a tree object:
// one path segment pointing at a blob or nested tree.
type TreeEntry struct {
	mode FileMode
	name string
	hash string // hex hash of the referenced object
}

func NewTreeEntry(mode FileMode, name string, hash string) (*TreeEntry, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: invalid file mode %q", ErrBadTreeEncoding, mode)
	}
	if name == "" || strings.ContainsAny(name, "/\x00") {
		return nil, fmt.Errorf("%w: invalid entry name %q", ErrBadTreeEncoding, name)
	}
	if len(hash) != constants.HashStringLength || !utils.IsHex(hash) {
		return nil, fmt.Errorf("%w: invalid entry hash %q", ErrBadTreeEncoding, hash)
	}
	return &TreeEntry{
		mode: mode,
		name: name,
		hash: hash,
	}, nil
}

func (e *TreeEntry) Mode() FileMode {
	return e.mode
}

func (e *TreeEntry) Name() string {
	return e.name
}

func (e *TreeEntry) Hash() string {
	return e.hash
}

func (e *TreeEntry) IsDirectory() bool {
	return e.mode == ModeDirectory || e.mode == "040000"
}

func (e *TreeEntry) IsExecutable() bool {
	return e.mode == ModeExecutable
}

// Tree represents a directory snapshot. Entries keep the relative order
// they were constructed or parsed in: no implicit sorting is applied, so
// parse and serialize round-trip byte for byte.
type Tree struct {
	entries []TreeEntry
	hash    string
}

// NewTree creates a tree object from the list of tree entries.
func NewTree(treeEntries []TreeEntry) (*Tree, error) {
	entries := make([]TreeEntry, len(treeEntries))
	copy(entries, treeEntries)

	treeContent, err := buildTreeContent(entries)
	if err != nil {
		return nil, err
	}
	hash, err := utils.ComputeHash(treeContent, utils.TreeObjectType)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hash for tree: %w", err)
	}

	return &Tree{
		entries: entries,
		hash:    hash,
	}, nil
}

// DeserializeTree decodes canonical tree payload bytes: a run of
// "<mode> <name>\0<20-byte binary hash>" records. Truncated records and
// malformed mode fields fail with ErrBadTreeEncoding.
func DeserializeTree(payload []byte) (*Tree, error) {
	var entries []TreeEntry

	pos := 0
	for pos < len(payload) {
		spaceIndex := bytes.IndexByte(payload[pos:], ' ')
		if spaceIndex < 0 {
			return nil, fmt.Errorf("%w: entry truncated before mode/name separator", ErrBadTreeEncoding)
		}
		spaceIndex += pos

		mode := FileMode(payload[pos:spaceIndex])
		if !mode.IsValid() {
			return nil, fmt.Errorf("%w: invalid file mode %q", ErrBadTreeEncoding, mode)
		}

		nullIndex := bytes.IndexByte(payload[spaceIndex:], constants.NullByte)
		if nullIndex < 0 {
			return nil, fmt.Errorf("%w: entry truncated before name terminator", ErrBadTreeEncoding)
		}
		nullIndex += spaceIndex
		name := string(payload[spaceIndex+1 : nullIndex])

		hashEnd := nullIndex + 1 + constants.HashByteLength
		if hashEnd > len(payload) {
			return nil, fmt.Errorf("%w: entry truncated inside hash", ErrBadTreeEncoding)
		}
		hash := hex.EncodeToString(payload[nullIndex+1 : hashEnd])

		entry, err := NewTreeEntry(mode, name, hash)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)

		pos = hashEnd
	}

	return NewTree(entries)
}

// buildTreeContent creates the raw tree content:
// <mode> <name>\0<20-byte binary SHA> per entry, in entry order.
func buildTreeContent(entries []TreeEntry) ([]byte, error) {
	var buf bytes.Buffer

	for _, entry := range entries {
		buf.WriteString(string(entry.Mode()))
		buf.WriteByte(' ')
		buf.WriteString(entry.Name())
		buf.WriteByte(constants.NullByte)

		hashBytes, err := hex.DecodeString(entry.Hash())
		if err != nil {
			return nil, fmt.Errorf("%w: invalid entry hash %q", ErrBadTreeEncoding, entry.Hash())
		}
		buf.Write(hashBytes)
	}

	return buf.Bytes(), nil
}

func (t *Tree) Kind() utils.ObjectType {
	return utils.TreeObjectType
}

// Hash returns the SHA-1 hash of the tree.
func (t *Tree) Hash() string {
	return t.hash
}

// Entries returns all tree entries in canonical order.
func (t *Tree) Entries() []TreeEntry {
	return t.entries
}

// Serialize returns the raw tree content. Entries validated at
// construction cannot fail to encode.
func (t *Tree) Serialize() []byte {
	content, _ := buildTreeContent(t.entries)
	return content
}

func (t *Tree) Size() int {
	return len(t.Serialize())
}

func (t *Tree) Data() []byte {
	return buildData(utils.TreeObjectType, t.Serialize())
}

// String returns a human-readable representation.
func (t *Tree) String() string {
	return fmt.Sprintf("Tree{hash: %s, entries: %d}", t.hash, len(t.entries))
}

// FindEntry finds an entry by name.
func (t *Tree) FindEntry(name string) (*TreeEntry, bool) {
	for _, entry := range t.entries {
		if entry.Name() == name {
			return &entry, true
		}
	}
	return nil, false
}
