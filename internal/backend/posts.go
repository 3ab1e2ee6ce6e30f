package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"xwitter/internal/core"
	"xwitter/pkg/commenttree"
)

type createPostRequest struct {
	Content string `json:"content"`
}

func (c *Client) CreatePost(ctx context.Context, token, content string) (json.RawMessage, error) {
	return do[rawBody](ctx, c, call{
		method:   http.MethodPost,
		path:     "/post",
		token:    token,
		body:     createPostRequest{Content: content},
		fallback: "Could not publish the post.",
	})
}

func (c *Client) GetPost(ctx context.Context, token, postID string) (core.PostDetails, error) {
	post, err := do[core.PostDetails](ctx, c, call{
		method:   http.MethodGet,
		path:     path("post", postID),
		token:    token,
		fallback: "Could not load the requested post.",
	})
	if err != nil {
		return core.PostDetails{}, err
	}
	post.Comments = commenttree.Normalize(post.Comments)
	return post, nil
}

func (c *Client) DeletePost(ctx context.Context, token, postID string) (json.RawMessage, error) {
	return do[rawBody](ctx, c, call{
		method:   http.MethodDelete,
		path:     path("post", postID),
		token:    token,
		fallback: "Could not delete the post.",
	})
}

func (c *Client) Timeline(ctx context.Context, token string) ([]json.RawMessage, error) {
	return list(ctx, c, call{
		method:   http.MethodGet,
		path:     "/post/timeline",
		token:    token,
		fallback: "Could not load the timeline.",
	})
}

func (c *Client) SearchPosts(ctx context.Context, token, query string) ([]json.RawMessage, error) {
	return list(ctx, c, call{
		method:   http.MethodGet,
		path:     "/post/search",
		token:    token,
		query:    url.Values{"search": []string{query}},
		fallback: "Could not search posts.",
	})
}

func (c *Client) UserPosts(ctx context.Context, token, userID string) ([]json.RawMessage, error) {
	return list(ctx, c, call{
		method:   http.MethodGet,
		path:     path("post", "user", userID),
		token:    token,
		fallback: "Could not load the user's posts.",
	})
}

func (c *Client) UserReposts(ctx context.Context, token, userID string) ([]json.RawMessage, error) {
	return list(ctx, c, call{
		method:   http.MethodGet,
		path:     path("post", "user", userID, "reposts"),
		token:    token,
		fallback: "Could not load the user's reposts.",
	})
}

func list(ctx context.Context, c *Client, cl call) ([]json.RawMessage, error) {
	raw, err := do[rawBody](ctx, c, cl)
	if err != nil {
		return nil, err
	}
	return asArray(raw), nil
}
