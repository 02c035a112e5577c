package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/HatzunoMiku/student-forum2/internal/domain"
	"github.com/HatzunoMiku/student-forum2/internal/flash"
	"github.com/HatzunoMiku/student-forum2/internal/session"
)

const SessionCookieName = "session"

// Key to store the user in the request context
type key int

const UserKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	session       session.Service
	secureCookies bool
}

func NewAuth(session session.Service, secureCookies bool) *Auth {
	return &Auth{session: session, secureCookies: secureCookies}
}

// OptionalAuth populates the request context with the current user
// when a valid session cookie is present. Anonymous requests pass
// through untouched, so every handler can ask "who is this" cheaply.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := a.extractUser(r); user != nil {
				ctx := context.WithValue(r.Context(), UserKey, user)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth redirects anonymous requests to the login page,
// preserving the originally requested path so a successful login can
// come back to it.
func (a *Auth) RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := a.extractUser(r)
			if user == nil {
				RedirectToLogin(w, r, a.secureCookies)
				return
			}
			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RedirectToLogin sends the browser to /login with a notice, keeping
// the original path in the next parameter.
func RedirectToLogin(w http.ResponseWriter, r *http.Request, secureCookies bool) {
	flash.Set(w, flash.CookieError, "You need to login to do that.", secureCookies)
	http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
}

func (a *Auth) extractUser(r *http.Request) *domain.User {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	user, err := a.session.DecodeToken(cookie.Value)
	if err != nil {
		return nil
	}
	return user
}

// GetUserFromContext retrieves the user from the context, nil when
// the request is anonymous.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(UserKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
