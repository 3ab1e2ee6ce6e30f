package core

import (
	"crypto/sha256"
	"encoding/hex"

	"xwitter/pkg/commenttree"
)

type Author = commenttree.Author

type User struct {
	ID        string  `json:"id"`
	Email     string  `json:"email,omitempty"`
	Username  string  `json:"username"`
	Name      string  `json:"name"`
	Bio       *string `json:"bio,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

func (u User) Author() Author {
	return Author{ID: u.ID, Username: u.Username, Name: u.Name}
}

type TimelinePost struct {
	ID           string  `json:"id"`
	Content      string  `json:"content"`
	CreatedAt    string  `json:"createdAt"`
	Author       Author  `json:"author"`
	LikeCount    int     `json:"likeCount"`
	CommentCount int     `json:"commentCount"`
	RepostCount  int     `json:"repostCount"`
	IsLiked      bool    `json:"isLiked"`
	IsReposted   bool    `json:"isReposted"`
	RepostID     *string `json:"repostId"`
	CanDelete    bool    `json:"canDelete"`
}

// PostDetails is a post together with its comment forest. It is the value
// cached per session by the post-details view model.
type PostDetails struct {
	TimelinePost

	Comments []commenttree.Node `json:"comments"`
}

type Repost struct {
	ID        string `json:"id"`
	PostID    string `json:"postId"`
	UserID    string `json:"userId"`
	CreatedAt string `json:"createdAt"`
}

// Session is the authenticated caller as seen by the proxy.
type Session struct {
	Token string
}

// Key identifies the cached view of postID owned by this session. The token
// itself never leaves the process.
func (s Session) Key(postID string) string {
	sum := sha256.Sum256([]byte(s.Token))
	return hex.EncodeToString(sum[:8]) + "." + postID
}
