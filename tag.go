package git

import (
	"fmt"

	"github.com/brodalo/gogit/ginternals"
	"github.com/brodalo/gogit/ginternals/object"
)

// TagOptions contains the optional parameters used to create a tag
type TagOptions struct {
	// Annotated creates a tag object carrying its own message and
	// tagger identity, instead of a lightweight tag that points
	// directly at the target.
	Annotated bool
	// Message is the annotated tag's message. Ignored for lightweight
	// tags.
	Message string
}

// CreateTag creates refs/tags/<name> pointing at the object named by
// target. A lightweight tag writes target's resolved oid directly; an
// annotated tag first wraps it in a tag object. Resolves the Open
// Question left by the source's tag_create: the target is resolved
// through Resolve, and the ref is created from that resolved oid (not
// a lightweight tag object's own oid, which an annotated tag's ref
// must be).
func (r *Repository) CreateTag(name, target string, opts TagOptions) (ginternals.Oid, error) {
	oid, err := r.Resolve(target)
	if err != nil {
		return ginternals.NullOid, fmt.Errorf("not a valid object name %s: %w", target, err)
	}

	refOid := oid
	if opts.Annotated {
		targetObj, err := r.Object(oid)
		if err != nil {
			return ginternals.NullOid, err
		}
		tag := object.NewTag(&object.TagParams{
			Target:  targetObj,
			Name:    name,
			Tagger:  r.identity(),
			Message: opts.Message,
		})
		refOid, err = r.WriteObject(tag.ToObject())
		if err != nil {
			return ginternals.NullOid, fmt.Errorf("could not write tag object: %w", err)
		}
	}

	if _, err := r.NewReference(ginternals.LocalTagFullName(name), refOid); err != nil {
		return ginternals.NullOid, fmt.Errorf("could not create tag ref: %w", err)
	}
	return refOid, nil
}
