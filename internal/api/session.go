package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"xwitter/internal/core"
)

const (
	AuthCookieName = "xwitter.auth-token"

	authCookieMaxAge = 7 * 24 * time.Hour
)

func (s *Server) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(authCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.Config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// tokenFrom reads the access token from the auth cookie, falling back to an
// Authorization bearer header.
func tokenFrom(r *http.Request) string {
	if c, err := r.Cookie(AuthCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

func (s *Server) authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFrom(r)
		if token == "" {
			s.clearAuthCookie(w)
			writeError(w, http.StatusUnauthorized, "Not authenticated.")
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, core.Session{Token: token})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func session(ctx context.Context) core.Session {
	s, _ := ctx.Value(sessionContextKey).(core.Session)
	return s
}
