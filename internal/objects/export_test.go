package objects

import (
	"testing"
	"time"

	"github.com/grit-scm/grit/testutils"
	"github.com/grit-scm/grit/utils"
)

// assertBlobHash verifies blob hash matches expected value for given content.
func assertBlobHash(t *testing.T, blob *Blob, content []byte) {
	t.Helper()

	expectedHash, err := utils.ComputeHash(content, utils.BlobObjectType)
	if err != nil {
		t.Fatalf("Hash computation failed: %v", err)
	}

	if blob.Hash() != expectedHash {
		t.Fatalf("Expected hash [%s], got [%s]", expectedHash, blob.Hash())
	}
}

// assertBlobContent verifies blob stores exact content and correct size.
func assertBlobContent(t *testing.T, blob *Blob, expectedContent []byte) {
	t.Helper()

	if blob.Size() != len(expectedContent) {
		t.Fatalf("Expected size %d, got %d", len(expectedContent), blob.Size())
	}

	if string(blob.Content()) != string(expectedContent) {
		t.Fatalf("Expected content [%q], got [%q]", expectedContent, blob.Content())
	}
}

// createTestAuthor returns test author with UTC timezone.
func createTestAuthor(name, email string) Author {
	return Author{
		Name:      name,
		Email:     email,
		Timestamp: time.Now().UTC().Truncate(time.Second),
	}
}

// createAndStoreInitialCommit creates a parentless commit, stores it, and returns it.
func createAndStoreInitialCommit(t *testing.T, store *ObjectStore) *Commit {
	t.Helper()

	author := createTestAuthor(testutils.RandomString(10), testutils.RandomString(20))
	commit, err := NewInitialCommit(testutils.RandomHash(), testutils.RandomString(50), author)
	if err != nil {
		t.Fatalf("Failed to create initial commit: %v", err)
	}

	if err := store.Store(commit); err != nil {
		t.Fatalf("Failed to store commit: %v", err)
	}

	return commit
}

// createAndStoreCommit creates a commit with the given parents, stores it, and returns it.
func createAndStoreCommit(t *testing.T, store *ObjectStore, parentHashes ...string) *Commit {
	t.Helper()

	author := createTestAuthor(testutils.RandomString(10), testutils.RandomString(20))
	commit, err := NewCommit(testutils.RandomHash(), parentHashes, testutils.RandomString(50), author)
	if err != nil {
		t.Fatalf("Failed to create commit: %v", err)
	}

	if err := store.Store(commit); err != nil {
		t.Fatalf("Failed to store commit: %v", err)
	}

	return commit
}
