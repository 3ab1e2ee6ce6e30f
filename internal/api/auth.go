package api

import (
	"errors"
	"net/http"
	"strings"

	"xwitter/internal/backend"
)

type signInRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

func (r *signInRequest) normalize() {
	r.Identifier = strings.TrimSpace(r.Identifier)
}

type signUpRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Bio      string `json:"bio" validate:"max=160"`
}

func (r *signUpRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.Bio = strings.TrimSpace(r.Bio)
}

type successResponse struct {
	Success bool `json:"success"`
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	req, err := decode[signInRequest](r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	token, err := s.Backend.SignIn(r.Context(), backend.SignInRequest(req))
	if err != nil {
		var backendErr *backend.Error
		if errors.As(err, &backendErr) && backendErr.Status != http.StatusUnauthorized {
			writeError(w, http.StatusBadRequest, backendErr.Message)
			return
		}
		s.fail(w, r, err)
		return
	}

	s.setAuthCookie(w, token)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	req, err := decode[signUpRequest](r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.Backend.SignUp(r.Context(), backend.SignUpRequest(req)); err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, successResponse{Success: true})
}

func (s *Server) signOut(w http.ResponseWriter, _ *http.Request) {
	s.clearAuthCookie(w)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	user, err := s.Backend.Me(r.Context(), session(r.Context()).Token)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
