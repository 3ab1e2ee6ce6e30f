package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"xwitter/internal/core"
)

// relatedUser is a user as seen by the viewer.
type relatedUser struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Name          string  `json:"name"`
	Bio           *string `json:"bio"`
	IsCurrentUser bool    `json:"isCurrentUser"`
	IsFollowing   bool    `json:"isFollowing"`
}

type usersResponse struct {
	Users []relatedUser `json:"users"`
}

type profileResponse struct {
	Profile struct {
		ID        string  `json:"id"`
		Username  string  `json:"username"`
		Name      string  `json:"name"`
		Bio       *string `json:"bio"`
		CreatedAt string  `json:"createdAt"`
	} `json:"profile"`
	Stats struct {
		Followers int `json:"followers"`
		Following int `json:"following"`
	} `json:"stats"`
	ViewerRelationship struct {
		IsCurrentUser bool `json:"isCurrentUser"`
		IsFollowing   bool `json:"isFollowing"`
	} `json:"viewerRelationship"`
}

func relate(users []core.User, viewer core.User, viewerFollowing []core.User) []relatedUser {
	following := lo.SliceToMap(viewerFollowing, func(u core.User) (string, struct{}) {
		return u.ID, struct{}{}
	})

	return lo.Map(users, func(u core.User, _ int) relatedUser {
		_, isFollowing := following[u.ID]
		return relatedUser{
			ID:            u.ID,
			Username:      u.Username,
			Name:          u.Name,
			Bio:           u.Bio,
			IsCurrentUser: u.ID == viewer.ID,
			IsFollowing:   isFollowing,
		}
	})
}

// viewerAnd fetches the current user and runs fetch concurrently.
func (s *Server) viewerAnd(ctx context.Context, fetch func(ctx context.Context) error) (core.User, error) {
	var viewer core.User

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		viewer, err = s.Backend.Me(ctx, session(ctx).Token)
		return err
	})
	g.Go(func() error {
		return fetch(ctx)
	})

	return viewer, g.Wait()
}

func (s *Server) searchUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := session(ctx).Token

	query := strings.TrimSpace(r.URL.Query().Get("search"))
	if query == "" {
		writeJSON(w, http.StatusOK, usersResponse{Users: []relatedUser{}})
		return
	}

	var found []core.User
	viewer, err := s.viewerAnd(ctx, func(ctx context.Context) error {
		var err error
		found, err = s.Backend.SearchUsers(ctx, token, query)
		return err
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if len(found) == 0 {
		writeJSON(w, http.StatusOK, usersResponse{Users: []relatedUser{}})
		return
	}

	following, err := s.Backend.Following(ctx, token, viewer.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, usersResponse{Users: relate(found, viewer, following)})
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := session(ctx).Token

	var target core.User
	viewer, err := s.viewerAnd(ctx, func(ctx context.Context) error {
		var err error
		target, err = s.Backend.GetUser(ctx, token, chi.URLParam(r, "identifier"))
		return err
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var followers, following []core.User

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		followers, err = s.Backend.Followers(gctx, token, target.ID)
		return err
	})
	g.Go(func() error {
		var err error
		following, err = s.Backend.Following(gctx, token, target.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.fail(w, r, err)
		return
	}

	var res profileResponse
	res.Profile.ID = target.ID
	res.Profile.Username = target.Username
	res.Profile.Name = target.Name
	res.Profile.Bio = target.Bio
	res.Profile.CreatedAt = target.CreatedAt
	res.Stats.Followers = len(followers)
	res.Stats.Following = len(following)
	res.ViewerRelationship.IsCurrentUser = viewer.ID == target.ID
	res.ViewerRelationship.IsFollowing = !res.ViewerRelationship.IsCurrentUser &&
		lo.ContainsBy(followers, func(u core.User) bool { return u.ID == viewer.ID })

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) userPosts(w http.ResponseWriter, r *http.Request) {
	s.userList(w, r, "posts", func(ctx context.Context, token, userID string) ([]json.RawMessage, error) {
		return s.Backend.UserPosts(ctx, token, userID)
	})
}

func (s *Server) userReposts(w http.ResponseWriter, r *http.Request) {
	s.userList(w, r, "reposts", func(ctx context.Context, token, userID string) ([]json.RawMessage, error) {
		return s.Backend.UserReposts(ctx, token, userID)
	})
}

// userList resolves the {identifier} user and answers {key: list(user)}.
func (s *Server) userList(w http.ResponseWriter, r *http.Request, key string, list func(ctx context.Context, token, userID string) ([]json.RawMessage, error)) {
	ctx := r.Context()
	token := session(ctx).Token

	target, err := s.Backend.GetUser(ctx, token, chi.URLParam(r, "identifier"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	items, err := list(ctx, token, target.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{key: items})
}

func (s *Server) followers(w http.ResponseWriter, r *http.Request) {
	s.relations(w, r, func(ctx context.Context, token, userID string) ([]core.User, error) {
		return s.Backend.Followers(ctx, token, userID)
	})
}

func (s *Server) following(w http.ResponseWriter, r *http.Request) {
	s.relations(w, r, func(ctx context.Context, token, userID string) ([]core.User, error) {
		return s.Backend.Following(ctx, token, userID)
	})
}

// relations lists users related to the {identifier} user, annotated with the
// viewer's own relationship to each of them.
func (s *Server) relations(w http.ResponseWriter, r *http.Request, list func(ctx context.Context, token, userID string) ([]core.User, error)) {
	ctx := r.Context()
	token := session(ctx).Token

	var target core.User
	viewer, err := s.viewerAnd(ctx, func(ctx context.Context) error {
		var err error
		target, err = s.Backend.GetUser(ctx, token, chi.URLParam(r, "identifier"))
		return err
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var related, viewerFollowing []core.User

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		related, err = list(gctx, token, target.ID)
		return err
	})
	g.Go(func() error {
		var err error
		viewerFollowing, err = s.Backend.Following(gctx, token, viewer.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, usersResponse{Users: relate(related, viewer, viewerFollowing)})
}

func (s *Server) follow(w http.ResponseWriter, r *http.Request) {
	s.followAction(w, r, func(ctx context.Context, token, userID string) (string, error) {
		return s.Backend.Follow(ctx, token, userID)
	})
}

func (s *Server) unfollow(w http.ResponseWriter, r *http.Request) {
	s.followAction(w, r, func(ctx context.Context, token, userID string) (string, error) {
		return s.Backend.Unfollow(ctx, token, userID)
	})
}

func (s *Server) followAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, token, userID string) (string, error)) {
	ctx := r.Context()
	token := session(ctx).Token

	target, err := s.Backend.GetUser(ctx, token, chi.URLParam(r, "identifier"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	msg, err := action(ctx, token, target.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}
