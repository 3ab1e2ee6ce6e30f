package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"xwitter/internal/backend"
	"xwitter/internal/postdetails"
)

type errorResponse struct {
	Message string `json:"message"`
}

type messageResponse = errorResponse

// requestError is a client mistake answered with 400.
type requestError struct {
	message string
}

func (e *requestError) Error() string {
	return e.message
}

func badRequest(message string) error {
	return &requestError{message: message}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

// fail maps err to the {"message"} answer of the BFF. A backend 401 also
// drops the auth cookie.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		backendErr *backend.Error
		reqErr     *requestError
	)

	switch {
	case errors.As(err, &reqErr):
		writeError(w, http.StatusBadRequest, reqErr.message)
	case errors.Is(err, postdetails.ErrEmptyContent):
		writeError(w, http.StatusBadRequest, "Content must not be empty.")
	case errors.As(err, &backendErr):
		if backendErr.Status == http.StatusUnauthorized {
			s.clearAuthCookie(w)
		}
		writeError(w, backendErr.Status, backendErr.Message)
	case errors.Is(err, backend.ErrUnavailable), errors.Is(err, backend.ErrMissingToken):
		logger(r.Context()).Warn("backend call failed", "error", err)
		writeError(w, http.StatusBadGateway, "Could not reach the Xwitter backend.")
	default:
		logger(r.Context()).Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
