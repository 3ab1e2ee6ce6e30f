package postdetails

import (
	"xwitter/internal/core"
	"xwitter/pkg/commenttree"
)

// UnknownAuthor stands in for the author of a comment when neither the backend
// nor the current user can provide one.
var UnknownAuthor = core.Author{
	ID:       "unknown-author",
	Username: "unknown-user",
	Name:     "Unknown user",
}

// FallbackAuthor is the author attached to freshly created comments whose
// backend representation lacks one: only the current user can have written
// them.
func FallbackAuthor(u core.User) core.Author {
	author := UnknownAuthor

	if u.ID != "" {
		author.ID = u.ID
	}
	if u.Username != "" {
		author.Username = u.Username
		author.Name = u.Username
	}
	if u.Name != "" {
		author.Name = u.Name
	}

	return author
}

func needsAuthor(raw commenttree.RawNode) bool {
	if raw.Author == nil || raw.Author.ID == "" {
		return true
	}
	for _, r := range raw.Replies {
		if needsAuthor(r) {
			return true
		}
	}
	return false
}
