// Package commenttree keeps the reply forest of a post consistent with its
// comment counter. All operations are pure: they never modify the forest they
// are given and report a missing target with a boolean instead of an error.
package commenttree

// Author is the denormalized author copy carried by every node.
type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Node is one comment or reply.
type Node struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	Author    Author `json:"author"`
	Replies   []Node `json:"replies"`
}

// RawNode is a comment as returned by the backend right after creation.
// Author and Replies may be missing.
type RawNode struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt string    `json:"createdAt"`
	Author    *Author   `json:"author,omitempty"`
	Replies   []RawNode `json:"replies,omitempty"`
}

// NormalizeIncoming turns a raw node into a well-formed Node. A missing author,
// or one without an id, is replaced by fallback. Missing replies become an
// empty slice.
func NormalizeIncoming(raw RawNode, fallback Author) Node {
	author := fallback
	if raw.Author != nil && raw.Author.ID != "" {
		author = *raw.Author
	}

	replies := make([]Node, 0, len(raw.Replies))
	for _, r := range raw.Replies {
		replies = append(replies, NormalizeIncoming(r, fallback))
	}

	return Node{
		ID:        raw.ID,
		Content:   raw.Content,
		CreatedAt: raw.CreatedAt,
		Author:    author,
		Replies:   replies,
	}
}

// Normalize returns a copy of forest in which every node, at any depth, has a
// non-nil Replies slice. A nil forest becomes an empty one.
func Normalize(forest []Node) []Node {
	out := make([]Node, 0, len(forest))
	for _, n := range forest {
		n.Replies = Normalize(n.Replies)
		out = append(out, n)
	}
	return out
}
