package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"xwitter/internal/postdetails"
	"xwitter/pkg/commenttree"
)

type createPostRequest struct {
	Content string `json:"content" validate:"required,max=280"`
}

func (r *createPostRequest) normalize() {
	r.Content = strings.TrimSpace(r.Content)
}

type createCommentRequest struct {
	Content         string `json:"content" validate:"required,max=280"`
	ParentCommentID string `json:"parentCommentId" validate:"omitempty,uuid"`
}

func (r *createCommentRequest) normalize() {
	r.Content = strings.TrimSpace(r.Content)
	r.ParentCommentID = strings.TrimSpace(r.ParentCommentID)
}

type commentResponse struct {
	Comment commenttree.Node `json:"comment"`
	postdetails.MutationResult
}

type deleteCommentResponse struct {
	Message string `json:"message"`
	postdetails.MutationResult
}

type postsResponse struct {
	Posts []json.RawMessage `json:"posts"`
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	req, err := decode[createPostRequest](r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	post, err := s.Backend.CreatePost(r.Context(), session(r.Context()).Token, req.Content)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"post": post})
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	refresh := r.URL.Query().Get("refresh")

	post, err := s.Posts.Load(r.Context(), session(r.Context()), chi.URLParam(r, "postID"), refresh == "1" || refresh == "true")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"post": post})
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	postID := chi.URLParam(r, "postID")

	post, err := s.Backend.DeletePost(ctx, session(ctx).Token, postID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.Posts.Forget(ctx, session(ctx), postID); err != nil {
		logger(ctx).Warn("failed to forget deleted post", "post", postID, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"post": post})
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	req, err := decode[createCommentRequest](r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	ctx := r.Context()
	comment, res, err := s.Posts.CreateComment(ctx, session(ctx), chi.URLParam(r, "postID"), req.Content, req.ParentCommentID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, commentResponse{Comment: comment, MutationResult: res})
}

// deleteComment patches the cached post when the caller names it with
// ?postId=, and only proxies the deletion otherwise.
func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	commentID := chi.URLParam(r, "commentID")
	postID := r.URL.Query().Get("postId")

	if postID == "" {
		msg, err := s.Backend.DeleteComment(ctx, session(ctx).Token, commentID)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: msg})
		return
	}

	msg, res, err := s.Posts.DeleteComment(ctx, session(ctx), postID, commentID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteCommentResponse{Message: msg, MutationResult: res})
}

func (s *Server) like(w http.ResponseWriter, r *http.Request) {
	msg, err := s.Posts.Like(r.Context(), session(r.Context()), chi.URLParam(r, "postID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: msg})
}

func (s *Server) unlike(w http.ResponseWriter, r *http.Request) {
	msg, err := s.Posts.Unlike(r.Context(), session(r.Context()), chi.URLParam(r, "postID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (s *Server) repost(w http.ResponseWriter, r *http.Request) {
	repost, err := s.Posts.Repost(r.Context(), session(r.Context()), chi.URLParam(r, "postID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"repost": repost})
}

func (s *Server) deleteRepost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	msg, err := s.Posts.DeleteRepost(ctx, session(ctx), r.URL.Query().Get("postId"), chi.URLParam(r, "repostID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (s *Server) timeline(w http.ResponseWriter, r *http.Request) {
	posts, err := s.Backend.Timeline(r.Context(), session(r.Context()).Token)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, postsResponse{Posts: posts})
}

func (s *Server) searchPosts(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("search"))
	if query == "" {
		writeJSON(w, http.StatusOK, postsResponse{Posts: []json.RawMessage{}})
		return
	}

	posts, err := s.Backend.SearchPosts(r.Context(), session(r.Context()).Token, query)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, postsResponse{Posts: posts})
}
