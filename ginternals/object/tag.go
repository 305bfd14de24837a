package object

import (
	"fmt"

	"github.com/brodalo/gogit/ginternals"
)

// TagParams represents all the data needed to create a Tag
// Params starting by Opt are optionals
type TagParams struct {
	Target    *Object
	Name      string
	Tagger    Signature
	Message   string
	OptGPGSig string
}

// Tag represents a Tag object
type Tag struct {
	rawObject *Object

	tagger  Signature
	tag     string
	message string

	gpgSig string

	id     ginternals.Oid
	target ginternals.Oid

	typ Type
}

// NewTag creates a new Tag object
func NewTag(p *TagParams) *Tag {
	t := &Tag{
		target:  p.Target.ID(),
		typ:     p.Target.Type(),
		tag:     p.Name,
		tagger:  p.Tagger,
		message: p.Message,
		gpgSig:  p.OptGPGSig,
	}
	t.rawObject = t.ToObject()
	return t
}

// NewTagFromObject creates a new Tag from a raw git object.
//
// A tag uses the same generic key-value list wire format as a commit
// (ginternals.KVList): keys "object", "type", "tag", "tagger", plus an
// optional "gpgsig", followed by the message body.
func NewTagFromObject(o *Object) (*Tag, error) {
	if o.typ != TypeTag {
		return nil, fmt.Errorf("type %s is not a tag: %w", o.typ, ErrObjectInvalid)
	}

	kv, err := ginternals.ParseKVList(o.Bytes())
	if err != nil {
		return nil, fmt.Errorf("could not parse tag header: %w: %w", err, ErrTagInvalid)
	}

	tag := &Tag{
		id:        o.ID(),
		rawObject: o,
		message:   kv.Message,
	}

	targetVal, ok := kv.Get("object")
	if !ok {
		return nil, fmt.Errorf("tag has no target: %w", ErrTagInvalid)
	}
	tag.target, err = ginternals.NewOidFromStr(targetVal)
	if err != nil {
		return nil, fmt.Errorf("could not parse target id %q: %w", targetVal, err)
	}

	typVal, ok := kv.Get("type")
	if !ok {
		return nil, fmt.Errorf("tag has no type: %w", ErrTagInvalid)
	}
	tag.typ, err = NewTypeFromString(typVal)
	if err != nil {
		return nil, fmt.Errorf("invalid object type %s: %w", typVal, err)
	}

	if name, ok := kv.Get("tag"); ok {
		tag.tag = name
	}

	taggerVal, ok := kv.Get("tagger")
	if !ok {
		return nil, fmt.Errorf("tag has no tagger: %w", ErrTagInvalid)
	}
	tag.tagger, err = NewSignatureFromBytes([]byte(taggerVal))
	if err != nil {
		return nil, fmt.Errorf("could not parse tagger [%s]: %w", taggerVal, err)
	}

	if sig, ok := kv.Get("gpgsig"); ok {
		tag.gpgSig = sig
	}

	if tag.tagger.IsZero() {
		return nil, fmt.Errorf("tag has no tagger: %w", ErrTagInvalid)
	}
	if tag.target.IsZero() {
		return nil, fmt.Errorf("tag has no target: %w", ErrTagInvalid)
	}
	if !tag.typ.IsValid() {
		return nil, fmt.Errorf("tag has no type: %w", ErrTagInvalid)
	}

	return tag, nil
}

// ID returns the SHA of the tag object
func (t *Tag) ID() ginternals.Oid {
	return t.rawObject.ID()
}

// Target returns the ID of the object targeted by the tag
func (t *Tag) Target() ginternals.Oid {
	return t.target
}

// Type returns the type of the targeted object
func (t *Tag) Type() Type {
	return t.typ
}

// Name returns the tag's name
func (t *Tag) Name() string {
	return t.tag
}

// Tagger returns the Signature of the person that created the tag
func (t *Tag) Tagger() Signature {
	return t.tagger
}

// Message returns the tag's message
func (t *Tag) Message() string {
	return t.message
}

// GPGSig returns the GPG signature of the tag, if any
func (t *Tag) GPGSig() string {
	return t.gpgSig
}

// ToObject returns the underlying Object
func (t *Tag) ToObject() *Object {
	if t.rawObject != nil {
		return t.rawObject
	}

	kv := ginternals.NewKVList()
	kv.Add("object", t.target.String())
	kv.Add("type", t.Type().String())
	kv.Add("tag", t.Name())
	kv.Add("tagger", t.Tagger().String())
	if t.gpgSig != "" {
		kv.Add("gpgsig", t.gpgSig)
	}
	kv.Message = t.message

	t.rawObject = New(TypeTag, kv.Serialize())
	return t.rawObject
}
