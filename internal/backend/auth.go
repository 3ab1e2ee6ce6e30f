package backend

import (
	"context"
	"net/http"
)

type SignInRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type SignUpRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio,omitempty"`
}

// SignIn exchanges credentials for a backend access token.
func (c *Client) SignIn(ctx context.Context, req SignInRequest) (string, error) {
	type tokenResponse struct {
		AccessToken string `json:"accessToken"`
	}

	res, err := do[tokenResponse](ctx, c, call{
		method:   http.MethodPost,
		path:     "/auth/signin",
		body:     req,
		fallback: "Could not sign in.",
	})
	if err != nil {
		return "", err
	}

	if res.AccessToken == "" {
		return "", ErrMissingToken
	}
	return res.AccessToken, nil
}

func (c *Client) SignUp(ctx context.Context, req SignUpRequest) error {
	_, err := do[rawBody](ctx, c, call{
		method:   http.MethodPost,
		path:     "/user",
		body:     req,
		fallback: "Could not create the account.",
	})
	return err
}
