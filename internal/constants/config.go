package constants

import "os"

// Command name constants used in tests and error messages.
// Cobra Use fields remain inline for CLI discoverability.
const (
	InitCmdName       = "init"
	HashObjectCmdName = "hash-object"
	CatFileCmdName    = "cat-file"
	LsTreeCmdName     = "ls-tree"
	CheckoutCmdName   = "checkout"
	LogCmdName        = "log"
	RevParseCmdName   = "rev-parse"
	ShowRefCmdName    = "show-ref"
	TagCmdName        = "tag"
)

// Repository directory and file names define the umpire metadata structure.
const (
	// UmpDir is the repository metadata directory.
	UmpDir = ".ump"

	// Objects stores content-addressable objects (blobs, trees, commits, tags).
	Objects = "objects"

	// Refs contains branch and tag references.
	Refs = "refs"

	// Heads stores branch pointers under refs/.
	Heads = "heads"

	// Tags stores tag pointers under refs/.
	Tags = "tags"

	// Branches is a legacy namespace created at init for compatibility.
	Branches = "branches"

	// Head points to current branch or detached commit.
	Head = "HEAD"

	// Config is the INI repository configuration file.
	Config = "config"

	// Description is the free-text repository description file.
	Description = "description"
)

// Default repository values.
const (
	// DefaultBranch is the initial branch name for new repositories.
	DefaultBranch = "master"

	// SymRefPrefix marks symbolic indirection in ref files and HEAD.
	SymRefPrefix = "ref: "

	// DefaultRefPrefix is prepended to branch names in HEAD file.
	DefaultRefPrefix = SymRefPrefix + "refs/heads/"

	// DefaultDescription seeds the description file at init.
	DefaultDescription = "Unnamed repository, edit this file 'description' to name the repository.\n"

	// RepositoryFormatVersion is the only config version this core accepts.
	RepositoryFormatVersion = 0
)

// File system permissions for created files and directories.
const (
	// DirPerms grants read/write/execute to owner, read/execute to others (rwxr-xr-x).
	DirPerms os.FileMode = 0755

	// FilePerms grants read/write to owner, read-only to others (rw-r--r--).
	FilePerms os.FileMode = 0644

	// ExecPerms is FilePerms plus the execute bits (rwxr-xr-x), used when
	// materializing blobs stored with an executable tree mode.
	ExecPerms os.FileMode = 0755
)

// Cryptographic hash properties.
const (
	// HashByteLength is byte length of SHA-1 hash (20 bytes).
	HashByteLength = 20

	// HashStringLength is hex string length of SHA-1 hash (40 characters).
	HashStringLength = 40

	// HashDirPrefixLength is subdirectory prefix length under objects/ (2 characters).
	HashDirPrefixLength = 2

	// MinAbbrevLength is the shortest hash prefix the resolver will search.
	MinAbbrevLength = 4
)

// Reference resolution limits.
const (
	// MaxSymRefHops caps symbolic-ref indirection before failing with ErrRefCycle.
	MaxSymRefHops = 16
)

// KVLM header keys carried by commit and tag objects.
const (
	// TreeKey references the root tree of a commit.
	TreeKey = "tree"

	// ParentKey references an ancestor commit; repeats for merges.
	ParentKey = "parent"

	// AuthorKey carries commit author identity and timestamp.
	AuthorKey = "author"

	// CommitterKey carries committer identity and timestamp.
	CommitterKey = "committer"

	// ObjectKey references an annotated tag's target object.
	ObjectKey = "object"

	// TypeKey declares an annotated tag's target kind.
	TypeKey = "type"

	// TagKey carries an annotated tag's name.
	TagKey = "tag"

	// TaggerKey carries tagger identity and timestamp.
	TaggerKey = "tagger"
)

// Object format constants.
const (
	// NullByte separates header from content in stored objects.
	NullByte = '\x00'
)

// Time conversion constants for timezone formatting.
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)
