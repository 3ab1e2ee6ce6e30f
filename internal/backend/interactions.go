package backend

import (
	"context"
	"net/http"

	"xwitter/internal/core"
	"xwitter/pkg/commenttree"
)

func (c *Client) CreateComment(ctx context.Context, token string, req core.CreateCommentRequest) (commenttree.RawNode, error) {
	return do[commenttree.RawNode](ctx, c, call{
		method:   http.MethodPost,
		path:     "/interaction/comment",
		token:    token,
		body:     req,
		fallback: "Could not publish the comment.",
	})
}

func (c *Client) DeleteComment(ctx context.Context, token, commentID string) (string, error) {
	return message(ctx, c, call{
		method:   http.MethodDelete,
		path:     path("interaction", "comment", commentID),
		token:    token,
		fallback: "Could not delete the comment.",
	}, "Comment deleted.")
}

func (c *Client) LikePost(ctx context.Context, token, postID string) (string, error) {
	return message(ctx, c, call{
		method:   http.MethodPost,
		path:     path("interaction", "like", postID),
		token:    token,
		fallback: "Could not like the post.",
	}, "Post liked.")
}

func (c *Client) UnlikePost(ctx context.Context, token, postID string) (string, error) {
	return message(ctx, c, call{
		method:   http.MethodDelete,
		path:     path("interaction", "like", postID),
		token:    token,
		fallback: "Could not remove the like.",
	}, "Like removed.")
}

func (c *Client) Repost(ctx context.Context, token, postID string) (core.Repost, error) {
	return do[core.Repost](ctx, c, call{
		method:   http.MethodPost,
		path:     path("interaction", "repost", postID),
		token:    token,
		fallback: "Could not repost this post.",
	})
}

func (c *Client) DeleteRepost(ctx context.Context, token, repostID string) (string, error) {
	return message(ctx, c, call{
		method:   http.MethodDelete,
		path:     path("interaction", "repost", repostID),
		token:    token,
		fallback: "Could not undo the repost.",
	}, "Repost removed.")
}
