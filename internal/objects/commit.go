package objects

import (
	"fmt"
	"time"

	"github.com/umpire-scm/umpire/internal/constants"
	"github.com/umpire-scm/umpire/utils"
)

// Author represents commit author/committer/tagger identity.
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

// identityLine formats the canonical "Name <email> unix-seconds ±HHMM"
// header value shared by author, committer and tagger records.
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

// Commit represents a snapshot of the repository. Its payload is a KVLM
// buffer: a tree header, zero or more parent headers in order, identity
// headers, a blank line and the message. Headers the core does not
// recognize (signatures included) round-trip untouched.
type Commit struct {
	kvlm *KVLM
	hash string
}

// NewCommit builds a commit referencing treeHash with the given ordered
// parents. Zero parents makes an initial commit; two or more make a merge.
func NewCommit(treeHash string, parentHashes []string, message string, author Author) (*Commit, error) {
	kvlm := NewKVLM()
	kvlm.Add(constants.TreeKey, []byte(treeHash))
	for _, parent := range parentHashes {
		kvlm.Add(constants.ParentKey, []byte(parent))
	}

	identity := author.identityLine()
	kvlm.Add(constants.AuthorKey, []byte(identity))
	kvlm.Add(constants.CommitterKey, []byte(identity))

	// Ensure message ends in newline
	if len(message) > 0 && message[len(message)-1] != '\n' {
		message += "\n"
	}
	kvlm.SetMessage([]byte(message))

	return newCommitFromKVLM(kvlm)
}

// NewInitialCommit builds a parentless commit.
func NewInitialCommit(treeHash, message string, author Author) (*Commit, error) {
	return NewCommit(treeHash, nil, message, author)
}

// DeserializeCommit decodes canonical commit payload bytes.
func DeserializeCommit(payload []byte) (*Commit, error) {
	kvlm, err := ParseKVLM(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to parse commit payload: %w", err)
	}
	return newCommitFromKVLM(kvlm)
}

func newCommitFromKVLM(kvlm *KVLM) (*Commit, error) {
	hash, err := utils.ComputeHash(kvlm.Serialize(), utils.CommitObjectType)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hash for commit: %w", err)
	}
	return &Commit{kvlm: kvlm, hash: hash}, nil
}

func (c *Commit) Kind() utils.ObjectType {
	return utils.CommitObjectType
}

func (c *Commit) Hash() string {
	return c.hash
}

func (c *Commit) Serialize() []byte {
	return c.kvlm.Serialize()
}

func (c *Commit) Data() []byte {
	return buildData(utils.CommitObjectType, c.Serialize())
}

// TreeHash returns the root tree reference, or "" when absent.
func (c *Commit) TreeHash() string {
	tree, _ := c.kvlm.First(constants.TreeKey)
	return string(tree)
}

// Parents returns parent hashes in header order. Empty for initial commits.
func (c *Commit) Parents() []string {
	values := c.kvlm.Values(constants.ParentKey)
	parents := make([]string, 0, len(values))
	for _, value := range values {
		parents = append(parents, string(value))
	}
	return parents
}

func (c *Commit) Message() string {
	return string(c.kvlm.Message())
}

// AuthorLine returns the raw author header value, preserved verbatim.
func (c *Commit) AuthorLine() string {
	author, _ := c.kvlm.First(constants.AuthorKey)
	return string(author)
}

// KVLM exposes the underlying header mapping for callers that need
// unrecognized headers.
func (c *Commit) KVLM() *KVLM {
	return c.kvlm
}

func (c *Commit) IsInitialCommit() bool {
	return len(c.Parents()) == 0
}

func (c *Commit) String() string {
	return fmt.Sprintf("Commit{hash: %s, tree: %s, parents: %v, message: %q}",
		c.hash, c.TreeHash(), c.Parents(), c.Message())
}
