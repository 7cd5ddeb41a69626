package objects

import (
	"fmt"

	"github.com/umpire-scm/umpire/internal/constants"
	"github.com/umpire-scm/umpire/utils"
)

// Tag represents an annotated tag object. It shares the KVLM payload shape
// with Commit: object/type/tag/tagger headers, a blank line and a message.
// Lightweight tags are plain refs and never reach this type.
type Tag struct {
	kvlm *KVLM
	hash string
}

// NewTag builds an annotated tag named name pointing at targetHash of
// targetKind.
func NewTag(name, targetHash string, targetKind utils.ObjectType, message string, tagger Author) (*Tag, error) {
	if !targetKind.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownObjectType, string(targetKind))
	}

	kvlm := NewKVLM()
	kvlm.Add(constants.ObjectKey, []byte(targetHash))
	kvlm.Add(constants.TypeKey, []byte(targetKind))
	kvlm.Add(constants.TagKey, []byte(name))
	kvlm.Add(constants.TaggerKey, []byte(tagger.identityLine()))

	if len(message) > 0 && message[len(message)-1] != '\n' {
		message += "\n"
	}
	kvlm.SetMessage([]byte(message))

	return newTagFromKVLM(kvlm)
}

// DeserializeTag decodes canonical tag payload bytes.
func DeserializeTag(payload []byte) (*Tag, error) {
	kvlm, err := ParseKVLM(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tag payload: %w", err)
	}
	return newTagFromKVLM(kvlm)
}

func newTagFromKVLM(kvlm *KVLM) (*Tag, error) {
	hash, err := utils.ComputeHash(kvlm.Serialize(), utils.TagObjectType)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hash for tag: %w", err)
	}
	return &Tag{kvlm: kvlm, hash: hash}, nil
}

func (t *Tag) Kind() utils.ObjectType {
	return utils.TagObjectType
}

func (t *Tag) Hash() string {
	return t.hash
}

func (t *Tag) Serialize() []byte {
	return t.kvlm.Serialize()
}

func (t *Tag) Data() []byte {
	return buildData(utils.TagObjectType, t.Serialize())
}

// Target returns the tagged object's hash, or "" when absent.
func (t *Tag) Target() string {
	target, _ := t.kvlm.First(constants.ObjectKey)
	return string(target)
}

// TargetKind returns the declared kind of the tagged object.
func (t *Tag) TargetKind() utils.ObjectType {
	kind, _ := t.kvlm.First(constants.TypeKey)
	return utils.ObjectType(kind)
}

// Name returns the tag name header, or "" when absent.
func (t *Tag) Name() string {
	name, _ := t.kvlm.First(constants.TagKey)
	return string(name)
}

func (t *Tag) Message() string {
	return string(t.kvlm.Message())
}

func (t *Tag) KVLM() *KVLM {
	return t.kvlm
}

func (t *Tag) String() string {
	return fmt.Sprintf("Tag{hash: %s, name: %s, target: %s %s}",
		t.hash, t.Name(), t.TargetKind(), t.Target())
}
