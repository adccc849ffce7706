package objects

import (
	"fmt"

	"github.com/grit-scm/grit/utils"
)

// Object represents any grit object that can be stored.
// All grit objects (blobs, trees, commits, tags) must implement this interface.
type Object interface {
	// Type returns the frame type tag ("blob", "commit", "tree", "tag").
	Type() utils.ObjectType

	// Hash returns the SHA-1 hash of the object's frame.
	Hash() string

	// Serialize returns the payload bytes stored after the frame header.
	Serialize() ([]byte, error)
}

// deserializeFunc reconstructs a typed object from raw payload bytes.
type deserializeFunc func(payload []byte) (Object, error)

// registry is the fixed dispatch table of object variants. Tree and tag are
// declared variants without a functioning codec; invoking them surfaces
// ErrNotImplemented instead of silently degrading to the wrong variant.
var registry = map[utils.ObjectType]deserializeFunc{
	utils.BlobObjectType: func(payload []byte) (Object, error) {
		return NewBlob(payload), nil
	},
	utils.CommitObjectType: func(payload []byte) (Object, error) {
		return NewCommitFromPayload(payload)
	},
	utils.TreeObjectType: notImplemented(utils.TreeObjectType),
	utils.TagObjectType:  notImplemented(utils.TagObjectType),
}

func notImplemented(objectType utils.ObjectType) deserializeFunc {
	return func([]byte) (Object, error) {
		return nil, fmt.Errorf("%w: %s", ErrNotImplemented, objectType)
	}
}

// Decode dispatches payload to the variant registered for objectType.
func Decode(objectType utils.ObjectType, payload []byte) (Object, error) {
	deserialize, ok := registry[objectType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, objectType)
	}
	return deserialize(payload)
}
