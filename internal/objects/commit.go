package objects

import (
	"fmt"
	"time"

	"github.com/grit-scm/grit/internal/constants"
	"github.com/grit-scm/grit/utils"
)

// Represents commit author/committer
type Author struct {
	Name      string
	Email     string
	Timestamp time.Time
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>",
		a.Name,
		a.Email)
}

// identityLine renders the full header value: "Name <email> <unix> <±HHMM>".
func (a Author) identityLine() string {
	_, timeZoneOffset := a.Timestamp.Zone()
	return fmt.Sprintf("%s <%s> %d %s", a.Name, a.Email, a.Timestamp.Unix(), calculateTimezone(timeZoneOffset))
}

func calculateTimezone(offset int) string {
	// offset is in seconds, convert to ±HHMM format
	hours := offset / constants.SecondsPerHour
	minutes := (offset % constants.SecondsPerHour) / constants.SecondsPerMinute

	if minutes < 0 {
		minutes = -minutes
	}

	return fmt.Sprintf("%+03d%02d", hours, minutes)
}

// Commit wraps an ordered CommitRecord decoded from (or destined for) a
// commit payload. The record is the single source of truth; accessors read
// straight from its headers.
type Commit struct {
	record *CommitRecord
	hash   string
}

// NewCommit builds a commit record pointing at treeHash with the given
// parents (zero for a root commit, two or more for a merge).
func NewCommit(treeHash string, parentHashes []string, message string, author Author) (*Commit, error) {
	record := NewCommitRecord()
	record.Add(constants.CommitTreeKey, treeHash)
	for _, parentHash := range parentHashes {
		record.Add(constants.CommitParentKey, parentHash)
	}

	identity := author.identityLine()
	record.Add(constants.CommitAuthorKey, identity)
	record.Add(constants.CommitCommitterKey, identity)

	// Ensure message ends in newline
	if len(message) > 0 && message[len(message)-1] != '\n' {
		message += "\n"
	}
	record.SetMessage([]byte(message))

	return newCommitFromRecord(record)
}

func NewInitialCommit(treeHash, message string, author Author) (*Commit, error) {
	return NewCommit(treeHash, nil, message, author)
}

// NewCommitFromPayload decodes a stored commit payload into a Commit.
func NewCommitFromPayload(payload []byte) (*Commit, error) {
	record, err := ParseCommitRecord(payload)
	if err != nil {
		return nil, err
	}
	return newCommitFromRecord(record)
}

func newCommitFromRecord(record *CommitRecord) (*Commit, error) {
	hash, err := utils.ComputeHash(record.Serialize(), utils.CommitObjectType)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hash for commit: %w", err)
	}

	return &Commit{
		record: record,
		hash:   hash,
	}, nil
}

func (c *Commit) Type() utils.ObjectType {
	return utils.CommitObjectType
}

func (c *Commit) Hash() string {
	return c.hash
}

func (c *Commit) Serialize() ([]byte, error) {
	return c.record.Serialize(), nil
}

// Record exposes the underlying ordered header mapping.
func (c *Commit) Record() *CommitRecord {
	return c.record
}

// TreeHash returns the root tree id, or "" if the header is absent.
func (c *Commit) TreeHash() string {
	treeHash, _ := c.record.Value(constants.CommitTreeKey)
	return treeHash
}

// Parents returns the parent commit ids in declared order.
func (c *Commit) Parents() []string {
	return c.record.Values(constants.CommitParentKey)
}

func (c *Commit) Message() []byte {
	return c.record.Message()
}

func (c *Commit) IsInitialCommit() bool {
	return !c.record.Has(constants.CommitParentKey)
}

func (c *Commit) String() string {
	return fmt.Sprintf("Commit{hash: %s, tree: %s, parents: %v, message: %q}",
		c.hash, c.TreeHash(), c.Parents(), c.Message())
}
