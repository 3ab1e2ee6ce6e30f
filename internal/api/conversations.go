package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type sendMessageRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

func (r *sendMessageRequest) normalize() {
	r.Content = strings.TrimSpace(r.Content)
}

type startConversationRequest struct {
	RecipientID string `json:"recipientId" validate:"required"`
}

func (r *startConversationRequest) normalize() {
	r.RecipientID = strings.TrimSpace(r.RecipientID)
}

func (s *Server) conversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := s.Backend.Conversations(r.Context(), session(r.Context()).Token)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"conversations": conversations})
}

func (s *Server) startConversation(w http.ResponseWriter, r *http.Request) {
	req, err := decode[startConversationRequest](r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	ctx := r.Context()
	conversation, err := s.Backend.StartConversation(ctx, session(ctx).Token, req.RecipientID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"conversation": conversation})
}

func (s *Server) messages(w http.ResponseWriter, r *http.Request) {
	messages, err := s.Backend.Messages(r.Context(), session(r.Context()).Token, chi.URLParam(r, "conversationID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	req, err := decode[sendMessageRequest](r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	ctx := r.Context()
	created, err := s.Backend.SendMessage(ctx, session(ctx).Token, chi.URLParam(r, "conversationID"), req.Content)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"createdMessage": created})
}
