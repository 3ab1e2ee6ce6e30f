package core

import (
	"context"

	"xwitter/pkg/commenttree"
)

type CreateCommentRequest struct {
	PostID          string `json:"postId"`
	Content         string `json:"content"`
	ParentCommentID string `json:"parentCommentId,omitempty"`
}

// PostBackend is the part of the external backend the post-details view model
// talks to.
type PostBackend interface {
	Me(ctx context.Context, token string) (User, error)
	GetPost(ctx context.Context, token, postID string) (PostDetails, error)
	CreateComment(ctx context.Context, token string, req CreateCommentRequest) (commenttree.RawNode, error)
	DeleteComment(ctx context.Context, token, commentID string) (string, error)
	LikePost(ctx context.Context, token, postID string) (string, error)
	UnlikePost(ctx context.Context, token, postID string) (string, error)
	Repost(ctx context.Context, token, postID string) (Repost, error)
	DeleteRepost(ctx context.Context, token, repostID string) (string, error)
}

// PostStore keeps cached post details by Session.Key.
type PostStore interface {
	Get(ctx context.Context, key string) (PostDetails, bool, error)
	Put(ctx context.Context, key string, post PostDetails) error
	Delete(ctx context.Context, key string) error
}
