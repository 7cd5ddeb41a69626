package refs

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/umpire-scm/umpire/internal/constants"
	"github.com/umpire-scm/umpire/internal/objects"
	"github.com/umpire-scm/umpire/utils"
)

// Resolver turns human-meaningful names into object hashes. A name may be
// the literal HEAD, a 4-to-40-digit hash prefix, a branch name under
// refs/heads, or a tag name under refs/tags. Every matching interpretation
// becomes a candidate; anything other than exactly one candidate is an
// error, with AmbiguousReferenceError carrying the full list.
type Resolver struct {
	refs  *RefStore
	store *objects.ObjectStore
}

func NewResolver(refStore *RefStore, objectStore *objects.ObjectStore) *Resolver {
	return &Resolver{
		refs:  refStore,
		store: objectStore,
	}
}

// Resolve resolves name to the hash of an object of wantKind. An empty
// wantKind accepts any kind. With follow set, tag objects are followed to
// their target and commits are followed to their tree when a tree is
// requested; without it, a kind mismatch is a resolution failure.
func (r *Resolver) Resolve(name string, wantKind utils.ObjectType, follow bool) (string, error) {
	candidates, err := r.collectCandidates(name)
	if err != nil {
		return "", err
	}

	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNoSuchReference, name)
	case 1:
	default:
		return "", &AmbiguousReferenceError{Name: name, Candidates: candidates}
	}

	hash := candidates[0]
	if wantKind == "" {
		return hash, nil
	}

	// Follow tag -> target and commit -> tree indirection until the kind
	// matches. Each hop loads one object, so malformed chains fail on read.
	for {
		obj, err := r.store.Read(hash)
		if err != nil {
			return "", err
		}

		if obj.Kind() == wantKind {
			return hash, nil
		}
		if !follow {
			return "", fmt.Errorf("%w: %s is a %s, not a %s", ErrNoSuchReference, name, obj.Kind(), wantKind)
		}

		switch typed := obj.(type) {
		case *objects.Tag:
			hash = typed.Target()
		case *objects.Commit:
			if wantKind != utils.TreeObjectType {
				return "", fmt.Errorf("%w: %s is a %s, not a %s", ErrNoSuchReference, name, obj.Kind(), wantKind)
			}
			hash = typed.TreeHash()
		default:
			return "", fmt.Errorf("%w: %s is a %s, not a %s", ErrNoSuchReference, name, obj.Kind(), wantKind)
		}

		if hash == "" {
			return "", fmt.Errorf("%w: %s has no %s to follow", ErrNoSuchReference, name, wantKind)
		}
	}
}

// collectCandidates gathers every object hash the name could mean.
func (r *Resolver) collectCandidates(name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrNoSuchReference)
	}

	if name == constants.Head {
		hash, err := r.refs.Resolve(constants.Head)
		if err != nil {
			return nil, err
		}
		return []string{hash}, nil
	}

	var candidates []string

	switch {
	case utils.IsHex(name) && len(name) == constants.HashStringLength:
		// A full hash is a candidate whether or not it is stored; loading
		// a missing one fails with ErrObjectNotFound rather than looking
		// like an unknown prefix.
		candidates = appendUnique(candidates, strings.ToLower(name))
	case utils.IsHex(name) && len(name) >= constants.MinAbbrevLength && len(name) < constants.HashStringLength:
		found, err := r.store.FindPrefix(name)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, found...)
	}

	// Tag and branch names are candidates alongside hash prefixes.
	for _, namespace := range []string{
		path.Join(constants.Refs, constants.Tags, name),
		path.Join(constants.Refs, constants.Heads, name),
	} {
		hash, err := r.refs.Resolve(namespace)
		if err != nil {
			if errors.Is(err, ErrNoSuchReference) {
				continue
			}
			return nil, err
		}
		candidates = appendUnique(candidates, hash)
	}

	// A 1-3 digit hex name is never prefix-searched; if no ref matched
	// either, fail with the minimum spelled out instead of silently
	// reporting no candidates.
	if len(candidates) == 0 && utils.IsHex(name) && len(name) < constants.MinAbbrevLength {
		return nil, fmt.Errorf("%w: %q is too short, hash prefixes need at least %d characters",
			ErrNoSuchReference, name, constants.MinAbbrevLength)
	}

	return candidates, nil
}

// appendUnique avoids duplicate candidates when several names resolve to
// the same hash.
func appendUnique(candidates []string, hash string) []string {
	for _, existing := range candidates {
		if existing == hash {
			return candidates
		}
	}
	return append(candidates, hash)
}
