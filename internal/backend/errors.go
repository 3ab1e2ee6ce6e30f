package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNoBackendURL = errors.New("backend URL is not configured")
	ErrUnavailable  = errors.New("backend is unavailable")
	ErrMissingToken = errors.New("invalid backend response: access token is missing")
)

// Error is a non-2xx answer of the backend.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend responded with %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool {
	var backendErr *Error
	return errors.As(err, &backendErr) && backendErr.Status == http.StatusUnauthorized
}

// ResolveMessage extracts a human readable message from a backend error body:
// a JSON string, an array of strings, or an object with a "message" field
// holding either. Anything else yields fallback.
func ResolveMessage(body json.RawMessage, fallback string) string {
	if len(body) == 0 {
		return fallback
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fallback
	}

	switch v := decoded.(type) {
	case string:
		if v == "" {
			return fallback
		}
		return v
	case []any:
		return joinAll(v)
	case map[string]any:
		switch msg := v["message"].(type) {
		case string:
			return msg
		case []any:
			return joinAll(msg)
		}
	}

	return fallback
}

func joinAll(items []any) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprint(item))
	}
	return strings.Join(parts, " ")
}
