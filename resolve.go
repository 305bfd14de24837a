package git

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/brodalo/gogit/ginternals"
	"github.com/brodalo/gogit/ginternals/object"
)

// hexPrefixPattern matches a candidate hex-OID prefix: 4 to 40 hex digits
var hexPrefixPattern = regexp.MustCompile(`^[0-9A-Fa-f]{4,40}$`)

// ResolveCandidates maps a user-supplied name to the set of candidate
// object ids it could refer to, accumulating across every applicable
// resolution rule:
//  1. the empty/whitespace-only string resolves to nothing
//  2. the literal "HEAD" resolves through the reference store
//  3. a 4-to-40 hex-digit string is treated as an object id prefix and
//     matched against every loose object in the matching shard
//  4. refs/tags/<name> and refs/heads/<name> are each tried
//
// Callers decide how to handle zero or more than one candidate; Resolve
// provides the common single-candidate policy.
func (r *Repository) ResolveCandidates(name string) ([]ginternals.Oid, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	var candidates []ginternals.Oid
	seen := map[ginternals.Oid]struct{}{}
	add := func(oid ginternals.Oid) {
		if _, ok := seen[oid]; ok {
			return
		}
		seen[oid] = struct{}{}
		candidates = append(candidates, oid)
	}

	if name == ginternals.Head {
		ref, err := r.backend.Reference(ginternals.Head)
		switch {
		case err == nil:
			add(ref.Target())
		case errors.Is(err, ginternals.ErrRefNotFound):
		default:
			return nil, err
		}
	}

	if hexPrefixPattern.MatchString(name) {
		lower := strings.ToLower(name)
		shard, remainder := lower[:2], lower[2:]
		err := r.backend.WalkLooseObjectIDs(func(oid ginternals.Oid) error {
			s := oid.String()
			if s[:2] == shard && strings.HasPrefix(s[2:], remainder) {
				add(oid)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("could not scan loose objects: %w", err)
		}
	}

	for _, refName := range []string{ginternals.LocalTagFullName(name), ginternals.LocalBranchFullName(name)} {
		ref, err := r.backend.Reference(refName)
		switch {
		case err == nil:
			add(ref.Target())
		case errors.Is(err, ginternals.ErrRefNotFound):
		default:
			return nil, err
		}
	}

	return candidates, nil
}

// Resolve maps name to exactly one object id, failing with
// ErrUnknownName or ErrAmbiguousName when it doesn't resolve to exactly
// one candidate.
func (r *Repository) Resolve(name string) (ginternals.Oid, error) {
	candidates, err := r.ResolveCandidates(name)
	if err != nil {
		return ginternals.NullOid, err
	}
	switch len(candidates) {
	case 0:
		return ginternals.NullOid, fmt.Errorf("%s: %w", name, ginternals.ErrUnknownName)
	case 1:
		return candidates[0], nil
	default:
		return ginternals.NullOid, fmt.Errorf("%s matches %d objects: %w", name, len(candidates), ginternals.ErrAmbiguousName)
	}
}

// ResolveAs resolves name to a single object id and, if its underlying
// object's type differs from typ, follows it: a tag is followed
// through its target object, and a commit is followed to its tree when
// typ is object.TypeTree. Any other type mismatch fails.
func (r *Repository) ResolveAs(name string, typ object.Type) (ginternals.Oid, error) {
	oid, err := r.Resolve(name)
	if err != nil {
		return ginternals.NullOid, err
	}
	return r.followAs(oid, typ)
}

func (r *Repository) followAs(oid ginternals.Oid, typ object.Type) (ginternals.Oid, error) {
	o, err := r.backend.Object(oid)
	if err != nil {
		return ginternals.NullOid, err
	}
	if o.Type() == typ {
		return oid, nil
	}

	switch o.Type() {
	case object.TypeTag:
		tag, err := o.AsTag()
		if err != nil {
			return ginternals.NullOid, err
		}
		return r.followAs(tag.Target(), typ)
	case object.TypeCommit:
		if typ == object.TypeTree {
			c, err := o.AsCommit()
			if err != nil {
				return ginternals.NullOid, err
			}
			return r.followAs(c.TreeID(), typ)
		}
	}

	return ginternals.NullOid, fmt.Errorf("%s is a %s, not a %s: %w", oid.String(), o.Type().String(), typ.String(), ginternals.ErrUnknownName)
}
