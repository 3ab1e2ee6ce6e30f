package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"xwitter/internal/core"
)

type rawBody = json.RawMessage

func (c *Client) Me(ctx context.Context, token string) (core.User, error) {
	return do[core.User](ctx, c, call{
		method:   http.MethodGet,
		path:     "/user/me",
		token:    token,
		fallback: "Could not load the authenticated user.",
	})
}

// GetUser resolves a user by id or username.
func (c *Client) GetUser(ctx context.Context, token, identifier string) (core.User, error) {
	return do[core.User](ctx, c, call{
		method:   http.MethodGet,
		path:     path("user", identifier),
		token:    token,
		fallback: "Could not find the requested user.",
	})
}

func (c *Client) SearchUsers(ctx context.Context, token, query string) ([]core.User, error) {
	return users(ctx, c, call{
		method:   http.MethodGet,
		path:     "/user/search",
		token:    token,
		query:    url.Values{"search": []string{query}},
		fallback: "Could not search users.",
	})
}

func (c *Client) Followers(ctx context.Context, token, userID string) ([]core.User, error) {
	return users(ctx, c, call{
		method:   http.MethodGet,
		path:     path("user", userID, "followers"),
		token:    token,
		fallback: "Could not load followers.",
	})
}

func (c *Client) Following(ctx context.Context, token, userID string) ([]core.User, error) {
	return users(ctx, c, call{
		method:   http.MethodGet,
		path:     path("user", userID, "following"),
		token:    token,
		fallback: "Could not load followed users.",
	})
}

func (c *Client) UpdateUser(ctx context.Context, token, userID string, updates map[string]string) (json.RawMessage, error) {
	return do[rawBody](ctx, c, call{
		method:   http.MethodPatch,
		path:     path("user", userID),
		token:    token,
		body:     updates,
		fallback: "Could not update the profile.",
	})
}

func (c *Client) DeleteUser(ctx context.Context, token, userID string) error {
	_, err := do[rawBody](ctx, c, call{
		method:   http.MethodDelete,
		path:     path("user", userID),
		token:    token,
		fallback: "Could not delete the account.",
	})
	return err
}

func (c *Client) Follow(ctx context.Context, token, userID string) (string, error) {
	return message(ctx, c, call{
		method:   http.MethodPost,
		path:     path("interaction", "follow", userID),
		token:    token,
		fallback: "Could not follow the user.",
	}, "User followed.")
}

func (c *Client) Unfollow(ctx context.Context, token, userID string) (string, error) {
	return message(ctx, c, call{
		method:   http.MethodDelete,
		path:     path("interaction", "follow", userID),
		token:    token,
		fallback: "Could not unfollow the user.",
	}, "User unfollowed.")
}

// users decodes a list of users, treating a non-array answer as empty.
func users(ctx context.Context, c *Client, cl call) ([]core.User, error) {
	raw, err := do[rawBody](ctx, c, cl)
	if err != nil {
		return nil, err
	}

	items := asArray(raw)
	out := make([]core.User, 0, len(items))
	for _, item := range items {
		var u core.User
		if err := json.Unmarshal(item, &u); err != nil {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

// message runs cl and resolves the message of a successful answer.
func message(ctx context.Context, c *Client, cl call, success string) (string, error) {
	raw, err := do[rawBody](ctx, c, cl)
	if err != nil {
		return "", err
	}
	return ResolveMessage(raw, success), nil
}
