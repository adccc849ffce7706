package objects

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/klauspost/compress/zlib"
	"github.com/rs/zerolog/log"

	"github.com/grit-scm/grit/internal/constants"
	"github.com/grit-scm/grit/utils"
)

var objectsRelativeFilePath string = filepath.Join(constants.Grit, constants.Objects)

// ObjectStore manages storage of grit objects. It exclusively owns the
// mapping from object id to on-disk bytes: zlib-compressed frames at
// .grit/objects/<first 2 chars>/<rest>.
type ObjectStore struct {
	repoPath string // Path to repository root
}

func NewObjectStore(repoPath string) *ObjectStore {
	return &ObjectStore{
		repoPath: repoPath,
	}
}

func (store *ObjectStore) objectPath(hash string) string {
	return filepath.Join(store.repoPath, objectsRelativeFilePath,
		hash[:constants.HashDirPrefixLength], hash[constants.HashDirPrefixLength:])
}

// Put builds the frame for payload, computes its id, and persists the
// compressed frame. Idempotent: an existing file at the derived path is
// provably identical, so the write is skipped.
func (store *ObjectStore) Put(objectType utils.ObjectType, payload []byte) (string, error) {
	hash, err := utils.ComputeHash(payload, objectType)
	if err != nil {
		return "", err
	}

	objectFile := store.objectPath(hash)

	// Check if object already exists (content-addressable)
	_, err = os.Stat(objectFile)
	if err == nil {
		log.Debug().Str("hash", hash).Msg("Object with this hash already exists")
		return hash, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	// Create directory if it doesn't exist. MkdirAll succeeds if the
	// directory is already present, which keeps concurrent writers to the
	// same 2-character fan-out directory safe.
	objectDir := filepath.Dir(objectFile)
	if err := os.MkdirAll(objectDir, constants.DirPerms); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}

	compressedData, err := compressFrame(utils.BuildFrame(objectType, payload))
	if err != nil {
		return "", fmt.Errorf("failed to compress object: %w", err)
	}

	if err := os.WriteFile(objectFile, compressedData, constants.FilePerms); err != nil {
		return "", fmt.Errorf("failed to write object file: %w", err)
	}

	return hash, nil
}

// Store persists a typed object; its payload comes from the object's codec.
func (store *ObjectStore) Store(obj Object) error {
	payload, err := obj.Serialize()
	if err != nil {
		return err
	}

	if _, err := store.Put(obj.Type(), payload); err != nil {
		return fmt.Errorf("failed to store %s object: %w", obj.Type(), err)
	}
	return nil
}

func compressFrame(frame []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer := zlib.NewWriter(&buffer)

	if _, err := writer.Write(frame); err != nil {
		return nil, err
	}

	// Close flushes any buffered data
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

// Get loads the frame stored under hash, validates it, and dispatches the
// payload to the codec registered for the frame's type tag.
func (store *ObjectStore) Get(hash string) (Object, error) {
	objectType, payload, err := store.readFrame(hash)
	if err != nil {
		return nil, err
	}
	return Decode(objectType, payload)
}

// readFrame loads, decompresses and parses the frame stored under hash,
// returning the type tag and payload.
func (store *ObjectStore) readFrame(hash string) (utils.ObjectType, []byte, error) {
	if len(hash) != constants.HashStringLength {
		return "", nil, fmt.Errorf("invalid object id %q: want %d hex characters", hash, constants.HashStringLength)
	}

	compressedData, err := os.ReadFile(store.objectPath(hash))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, fmt.Errorf("%w: %s", ErrNotFound, hash)
		}
		return "", nil, fmt.Errorf("failed to read object file %s: %w", hash, err)
	}

	reader, err := zlib.NewReader(bytes.NewReader(compressedData))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s: bad zlib stream: %v", ErrCorruptObject, hash, err)
	}
	defer reader.Close()

	var buffer bytes.Buffer
	if _, err := buffer.ReadFrom(reader); err != nil {
		return "", nil, fmt.Errorf("%w: %s: bad zlib stream: %v", ErrCorruptObject, hash, err)
	}

	data := buffer.Bytes()

	spacePos := bytes.IndexByte(data, constants.HeaderSeparator)
	nullPos := bytes.IndexByte(data, constants.NullByte)
	if spacePos < 0 || nullPos < 0 || nullPos < spacePos {
		return "", nil, fmt.Errorf("%w: %s: missing frame delimiters", ErrCorruptObject, hash)
	}

	objectType := utils.ObjectType(data[:spacePos])

	declaredLength, err := strconv.Atoi(string(data[spacePos+1 : nullPos]))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s: bad declared length: %v", ErrCorruptObject, hash, err)
	}

	payload := data[nullPos+1:]
	if declaredLength != len(payload) {
		return "", nil, fmt.Errorf("%w: %s: declared length %d, actual %d",
			ErrCorruptObject, hash, declaredLength, len(payload))
	}

	return objectType, payload, nil
}

// ReadBlob reads the object stored under hash and asserts it is a blob.
func (store *ObjectStore) ReadBlob(hash string) (*Blob, error) {
	obj, err := store.Get(hash)
	if err != nil {
		return nil, err
	}

	blob, ok := obj.(*Blob)
	if !ok {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", hash, obj.Type(), utils.BlobObjectType)
	}
	return blob, nil
}

// ReadCommit reads the object stored under hash and asserts it is a commit.
func (store *ObjectStore) ReadCommit(hash string) (*Commit, error) {
	obj, err := store.Get(hash)
	if err != nil {
		return nil, err
	}

	commit, ok := obj.(*Commit)
	if !ok {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", hash, obj.Type(), utils.CommitObjectType)
	}
	return commit, nil
}

// Exists checks if an object exists in storage
func (s *ObjectStore) Exists(hash string) bool {
	_, err := os.Stat(s.objectPath(hash))
	return !errors.Is(err, fs.ErrNotExist)
}
