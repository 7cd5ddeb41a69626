package refs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoSuchReference reports a name that resolves to no stored object:
	// a missing ref file, an unknown hash prefix, or a name that cannot be
	// followed to the requested kind.
	ErrNoSuchReference = errors.New("no such reference")

	// ErrRefCycle reports a symbolic-ref chain that exceeded the hop limit.
	ErrRefCycle = errors.New("symbolic reference cycle")
)

// AmbiguousReferenceError reports a name matched by more than one stored
// object. Candidates carries every match in lexical order so callers can
// present the full list.
type AmbiguousReferenceError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguousReferenceError) Error() string {
	return fmt.Sprintf("ambiguous reference %q: candidates are %s",
		e.Name, strings.Join(e.Candidates, ", "))
}
