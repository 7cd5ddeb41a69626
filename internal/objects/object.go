package objects

import (
	"fmt"

	"github.com/umpire-scm/umpire/utils"
)

// Object represents any umpire object that can be stored.
// All umpire objects (blobs, trees, commits, tags) must implement this
// interface. Objects are immutable once constructed: two objects with the
// same kind and payload are indistinguishable and hash identically.
type Object interface {
	// Kind returns the object's type tag (blob, tree, commit or tag)
	Kind() utils.ObjectType

	// Hash returns the SHA-1 hash of the object
	Hash() string

	// Serialize returns the canonical payload bytes
	Serialize() []byte

	// Data returns the complete object data including header
	// Format: "<type> <size>\0<content>"
	Data() []byte
}

// Deserialize constructs an object of the given kind from canonical payload
// bytes. It is the total inverse of each kind's Serialize: payloads that do
// not conform to the kind's grammar fail with ErrMalformedObject (or
// ErrBadTreeEncoding for trees).
func Deserialize(kind utils.ObjectType, payload []byte) (Object, error) {
	switch kind {
	case utils.BlobObjectType:
		return NewBlob(payload), nil
	case utils.TreeObjectType:
		return DeserializeTree(payload)
	case utils.CommitObjectType:
		return DeserializeCommit(payload)
	case utils.TagObjectType:
		return DeserializeTag(payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownObjectType, string(kind))
	}
}

// buildHeader formats the envelope header shared by every kind.
func buildHeader(kind utils.ObjectType, size int) string {
	return fmt.Sprintf("%s %d\x00", kind, size)
}

// buildData assembles the pre-compression envelope for an object payload.
func buildData(kind utils.ObjectType, payload []byte) []byte {
	header := buildHeader(kind, len(payload))
	return append([]byte(header), payload...)
}
