package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) routes() http.Handler {
	r := chi.NewMux()

	r.Use(
		jsonContentType,
		s.withLogger,
		accessLog,
		recoverer,
	)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
	})

	r.Get("/health", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signin", s.signIn)
		r.Post("/auth/signup", s.signUp)
		r.Post("/auth/signout", s.signOut)
		r.Delete("/auth/signout", s.signOut)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticated)

			r.Get("/auth/me", s.me)

			r.Post("/posts", s.createPost)
			r.Route("/posts/{postID}", func(r chi.Router) {
				r.Get("/", s.getPost)
				r.Delete("/", s.deletePost)
				r.Post("/comments", s.createComment)
				r.Post("/like", s.like)
				r.Delete("/like", s.unlike)
				r.Post("/repost", s.repost)
			})
			r.Delete("/comments/{commentID}", s.deleteComment)
			r.Delete("/reposts/{repostID}", s.deleteRepost)

			r.Get("/timeline", s.timeline)
			r.Get("/search/posts", s.searchPosts)
			r.Get("/search/users", s.searchUsers)

			r.Route("/users/{identifier}", func(r chi.Router) {
				r.Get("/profile", s.profile)
				r.Get("/posts", s.userPosts)
				r.Get("/reposts", s.userReposts)
				r.Get("/followers", s.followers)
				r.Get("/following", s.following)
				r.Post("/follow", s.follow)
				r.Delete("/follow", s.unfollow)
			})

			r.Route("/conversations", func(r chi.Router) {
				r.Get("/", s.conversations)
				r.Post("/start", s.startConversation)
				r.Get("/{conversationID}/messages", s.messages)
				r.Post("/{conversationID}/messages", s.sendMessage)
			})

			r.Patch("/account", s.updateAccount)
			r.Delete("/account", s.deleteAccount)
		})
	})

	return r
}
