package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

type updateAccountRequest struct {
	ID       string  `json:"id"`
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Bio      *string `json:"bio"`
	Password *string `json:"password"`
}

// updates collects the fields to change. Blank name, username or email are
// rejected, a blank password is ignored.
func (r updateAccountRequest) updates() (map[string]string, error) {
	updates := map[string]string{}

	required := []struct {
		key   string
		value *string
		blank string
	}{
		{"name", r.Name, "Name must not be blank."},
		{"username", r.Username, "Username must not be blank."},
		{"email", r.Email, "Email must not be blank."},
	}
	for _, f := range required {
		if f.value == nil {
			continue
		}
		v := strings.TrimSpace(*f.value)
		if v == "" {
			return nil, badRequest(f.blank)
		}
		updates[f.key] = v
	}

	if r.Bio != nil {
		updates["bio"] = strings.TrimSpace(*r.Bio)
	}
	if r.Password != nil {
		if v := strings.TrimSpace(*r.Password); v != "" {
			updates["password"] = v
		}
	}

	if len(updates) == 0 {
		return nil, badRequest("No changes were provided.")
	}
	return updates, nil
}

type updateAccountResponse struct {
	User    json.RawMessage `json:"user"`
	Message string          `json:"message"`
}

func (s *Server) updateAccount(w http.ResponseWriter, r *http.Request) {
	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, r, badRequest("Could not read the request body."))
		return
	}

	if strings.TrimSpace(req.ID) == "" {
		s.fail(w, r, badRequest("User id is required."))
		return
	}

	updates, err := req.updates()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	ctx := r.Context()
	user, err := s.Backend.UpdateUser(ctx, session(ctx).Token, req.ID, updates)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updateAccountResponse{User: user, Message: "Profile updated."})
}

// deleteAccount takes the user id from the JSON body or from ?id=.
func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		logger(r.Context()).Debug("ignoring unreadable delete account body", "error", err)
	}

	userID := req.ID
	if userID == "" {
		userID = r.URL.Query().Get("id")
	}
	if userID == "" {
		s.fail(w, r, badRequest("User id is required."))
		return
	}

	ctx := r.Context()
	if err := s.Backend.DeleteUser(ctx, session(ctx).Token, userID); err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Account deleted."})
}
