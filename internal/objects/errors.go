package objects

import "errors"

// Error kinds surfaced by the object layer. Codecs never attempt recovery:
// every decode failure wraps one of these and propagates unchanged to the
// top-level operation, where callers inspect it with errors.Is.
var (
	// ErrMalformedObject reports a header, length, or compression
	// inconsistency in a stored object, or a payload that fails its
	// kind-specific decoding.
	ErrMalformedObject = errors.New("malformed object")

	// ErrObjectNotFound reports a hash with no stored object behind it.
	ErrObjectNotFound = errors.New("object not found")

	// ErrUnknownObjectType reports a kind tag outside blob/tree/commit/tag.
	ErrUnknownObjectType = errors.New("unknown object type")

	// ErrBadTreeEncoding reports a tree entry whose mode field is not 5 or
	// 6 octal digits, or an entry truncated mid-record.
	ErrBadTreeEncoding = errors.New("bad tree encoding")
)
