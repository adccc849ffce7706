package objects

import (
	"fmt"
	"os"

	"github.com/grit-scm/grit/utils"
)

// Blob holds opaque payload bytes; its codec is the identity function both ways.
type Blob struct {
	content []byte
	hash    string
}

func NewBlob(content []byte) *Blob {
	hash, _ := utils.ComputeHash(content, utils.BlobObjectType)
	return &Blob{
		content: content,
		hash:    hash,
	}
}

func NewBlobFromFile(filepath string) (*Blob, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filepath, err)
	}
	return NewBlob(content), nil
}

func (b *Blob) Type() utils.ObjectType {
	return utils.BlobObjectType
}

func (b *Blob) Hash() string {
	return b.hash
}

func (b *Blob) Content() []byte {
	return b.content
}

func (b *Blob) Size() int {
	return len(b.content)
}

func (b *Blob) Serialize() ([]byte, error) {
	return b.content, nil
}

func (b *Blob) String() string {
	return fmt.Sprintf("Blob{hash: %s, size: %d bytes}", b.hash, b.Size())
}
