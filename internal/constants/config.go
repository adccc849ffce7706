package constants

import "os"

// Command name constants used in tests and error messages.
// Cobra Use fields remain inline for CLI discoverability.
const (
	InitCmdName       = "init"
	HashObjectCmdName = "hash-object"
	CatFileCmdName    = "cat-file"
	LogCmdName        = "log"
)

// Repository directory and file names define the grit metadata structure.
const (
	// Grit is the repository metadata directory.
	Grit = ".grit"

	// Objects stores content-addressable objects (blobs, trees, commits, tags).
	Objects = "objects"

	// Refs contains branch and tag references.
	Refs = "refs"

	// Heads stores branch pointers under refs/.
	Heads = "heads"

	// Tags stores tag pointers under refs/.
	Tags = "tags"

	// Branches is the legacy branch storage directory.
	Branches = "branches"

	// Head points to current branch or detached commit.
	Head = "HEAD"

	// ConfigFile is the repository configuration file (INI format).
	ConfigFile = "config"

	// DescriptionFile holds the free-text repository description.
	DescriptionFile = "description"
)

// Default repository values.
const (
	// DefaultBranch is the initial branch name for new repositories.
	DefaultBranch = "main"

	// DefaultRefPrefix is prepended to branch names in HEAD file.
	DefaultRefPrefix = "ref: refs/heads/"

	// DefaultDescription is the initial content of the description file.
	DefaultDescription = "Unnamed repository; edit this file 'description' to name the repository.\n"

	// RepositoryFormatVersion is the only on-disk format version grit understands.
	RepositoryFormatVersion = 0
)

// File system permissions for created files and directories.
const (
	// DirPerms grants read/write/execute to owner, read/execute to others (rwxr-xr-x).
	DirPerms os.FileMode = 0755

	// FilePerms grants read/write to owner, read-only to others (rw-r--r--).
	FilePerms os.FileMode = 0644
)

// Cryptographic hash properties.
const (
	// HashByteLength is byte length of SHA-1 hash (20 bytes).
	HashByteLength = 20

	// HashStringLength is hex string length of SHA-1 hash (40 characters).
	HashStringLength = 40

	// HashDirPrefixLength is subdirectory prefix length under objects/ (2 characters).
	HashDirPrefixLength = 2
)

// Object frame format constants. A stored frame is
// "<type> <decimal payload length>\x00<payload>", compressed with zlib.
const (
	// NullByte separates the frame header from the payload.
	NullByte = '\x00'

	// HeaderSeparator separates the type tag from the declared length.
	HeaderSeparator = ' '
)

// Commit header keys used by the key/value commit format.
const (
	CommitTreeKey      = "tree"
	CommitParentKey    = "parent"
	CommitAuthorKey    = "author"
	CommitCommitterKey = "committer"
)

// Time conversion constants for timezone formatting.
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)
