package utils

import (
	"crypto/sha1"
	"fmt"
	"path/filepath"
	"strings"
)

type ObjectType string

const (
	BlobObjectType   ObjectType = "blob"
	TreeObjectType   ObjectType = "tree"
	CommitObjectType ObjectType = "commit"
	TagObjectType    ObjectType = "tag"
)

func (ot ObjectType) IsValid() bool {
	switch ot {
	case BlobObjectType, TreeObjectType, CommitObjectType, TagObjectType:
		return true
	default:
		return false
	}
}

// BuildFrame builds the exact byte sequence that is hashed and compressed
// for storage: "<type> <payload length>\x00<payload>".
func BuildFrame(objectType ObjectType, payload []byte) []byte {
	header := fmt.Sprintf("%v %d\x00", objectType, len(payload))
	return append([]byte(header), payload...)
}

// ComputeHash calculates the SHA-1 hash of the frame built from payload.
// The hex digest doubles as the object's storage key.
func ComputeHash(payload []byte, objectType ObjectType) (string, error) {
	if !objectType.IsValid() {
		return "", fmt.Errorf("invalid object type: %s - hash not computed", objectType)
	}

	hash := sha1.Sum(BuildFrame(objectType, payload))
	return fmt.Sprintf("%x", hash), nil
}

// BuildDirPath constructs os-agnostic display directory path with trailing separator preserving all components.
// Unlike filepath.Join, does not normalize "." or remove redundant separators.
func BuildDirPath(dirs ...string) string {
	return strings.Join(dirs, string(filepath.Separator)) + string(filepath.Separator)
}
