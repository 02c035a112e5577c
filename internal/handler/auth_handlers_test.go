package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HatzunoMiku/student-forum2/internal/domain"
	internal_errors "github.com/HatzunoMiku/student-forum2/internal/errors"
	"github.com/HatzunoMiku/student-forum2/internal/flash"
	mw "github.com/HatzunoMiku/student-forum2/internal/middleware"
)

func validRegisterForm() url.Values {
	return url.Values{
		"username":         {"alice"},
		"email":            {"alice@example.com"},
		"password":         {"password123"},
		"confirm_password": {"password123"},
	}
}

func TestRegisterGetHandler(t *testing.T) {
	h := testHandler(t, &MockAuthService{}, &MockForumService{})

	t.Run("anonymous gets the form", func(t *testing.T) {
		rr := httptest.NewRecorder()
		testRouter(h, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/register", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `action="/register"`)
	})

	t.Run("authenticated is sent home", func(t *testing.T) {
		rr := httptest.NewRecorder()
		user := &domain.User{Id: 1, Username: "alice"}
		testRouter(h, user).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/register", nil))

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/", rr.Header().Get("Location"))
	})
}

func TestRegisterPostHandler(t *testing.T) {
	t.Run("success redirects to login with flash", func(t *testing.T) {
		var got domain.RegistrationData
		auth := &MockAuthService{
			RegisterFunc: func(data domain.RegistrationData) (domain.UserId, error) {
				got = data
				return 1, nil
			},
		}
		h := testHandler(t, auth, &MockForumService{})

		rr := httptest.NewRecorder()
		testRouter(h, nil).ServeHTTP(rr, postForm("/register", validRegisterForm()))

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, "alice@example.com", got.Email)
		require.NotNil(t, cookieByName(rr, flash.CookieSuccess))
	})

	t.Run("validation failure re-renders with values", func(t *testing.T) {
		called := false
		auth := &MockAuthService{
			RegisterFunc: func(domain.RegistrationData) (domain.UserId, error) {
				called = true
				return 0, nil
			},
		}
		h := testHandler(t, auth, &MockForumService{})

		form := validRegisterForm()
		form.Set("email", "not-an-email")

		rr := httptest.NewRecorder()
		testRouter(h, nil).ServeHTTP(rr, postForm("/register", form))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, called)
		assert.Contains(t, rr.Body.String(), "valid email")
		assert.Contains(t, rr.Body.String(), `value="alice"`)
	})

	t.Run("mismatched passwords rejected", func(t *testing.T) {
		h := testHandler(t, &MockAuthService{}, &MockForumService{})

		form := validRegisterForm()
		form.Set("confirm_password", "different123")

		rr := httptest.NewRecorder()
		testRouter(h, nil).ServeHTTP(rr, postForm("/register", form))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Passwords must match.")
	})

	t.Run("duplicate email shown as field error", func(t *testing.T) {
		auth := &MockAuthService{
			RegisterFunc: func(domain.RegistrationData) (domain.UserId, error) {
				return 0, internal_errors.Conflict("This email is already registered.", "email")
			},
		}
		h := testHandler(t, auth, &MockForumService{})

		rr := httptest.NewRecorder()
		testRouter(h, nil).ServeHTTP(rr, postForm("/register", validRegisterForm()))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "This email is already registered.")
	})

	t.Run("wrapped duplicate error still becomes a field error", func(t *testing.T) {
		auth := &MockAuthService{
			RegisterFunc: func(domain.RegistrationData) (domain.UserId, error) {
				return 0, fmt.Errorf("saving user: %w", internal_errors.Conflict("This email is already registered.", "email"))
			},
		}
		h := testHandler(t, auth, &MockForumService{})

		rr := httptest.NewRecorder()
		testRouter(h, nil).ServeHTTP(rr, postForm("/register", validRegisterForm()))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "This email is already registered.")
	})
}

func TestLoginPostHandler(t *testing.T) {
	t.Run("success sets session cookie and follows next", func(t *testing.T) {
		auth := &MockAuthService{
			LoginFunc: func(creds domain.Credentials) (string, domain.User, error) {
				return "session-token", domain.User{Id: 1, Username: "alice"}, nil
			},
		}
		h := testHandler(t, auth, &MockForumService{})

		form := url.Values{
			"email":    {"alice@example.com"},
			"password": {"password123"},
			"next":     {"/thread/new"},
		}
		rr := httptest.NewRecorder()
		testRouter(h, nil).ServeHTTP(rr, postForm("/login", form))

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/thread/new", rr.Header().Get("Location"))

		cookie := cookieByName(rr, mw.SessionCookieName)
		require.NotNil(t, cookie)
		assert.Equal(t, "session-token", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.Positive(t, cookie.MaxAge)
	})

	t.Run("external next is ignored", func(t *testing.T) {
		h := testHandler(t, &MockAuthService{}, &MockForumService{})

		form := url.Values{
			"email":    {"alice@example.com"},
			"password": {"password123"},
			"next":     {"https://evil.example.com/"},
		}
		rr := httptest.NewRecorder()
		testRouter(h, nil).ServeHTTP(rr, postForm("/login", form))

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/", rr.Header().Get("Location"))
	})

	t.Run("bad credentials re-render with generic notice", func(t *testing.T) {
		auth := &MockAuthService{
			LoginFunc: func(domain.Credentials) (string, domain.User, error) {
				return "", domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "Login unsuccessful. Check email and password", StatusCode: http.StatusUnauthorized}
			},
		}
		h := testHandler(t, auth, &MockForumService{})

		form := url.Values{
			"email":    {"alice@example.com"},
			"password": {"wrongpassword"},
		}
		rr := httptest.NewRecorder()
		testRouter(h, nil).ServeHTTP(rr, postForm("/login", form))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Login unsuccessful. Check email and password")
		assert.Contains(t, rr.Body.String(), `value="alice@example.com"`)
		assert.Nil(t, cookieByName(rr, mw.SessionCookieName))
	})

	t.Run("authenticated is sent home without calling login", func(t *testing.T) {
		called := false
		auth := &MockAuthService{
			LoginFunc: func(domain.Credentials) (string, domain.User, error) {
				called = true
				return "", domain.User{}, nil
			},
		}
		h := testHandler(t, auth, &MockForumService{})

		rr := httptest.NewRecorder()
		user := &domain.User{Id: 1, Username: "alice"}
		testRouter(h, user).ServeHTTP(rr, postForm("/login", url.Values{}))

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/", rr.Header().Get("Location"))
		assert.False(t, called)
	})
}

func TestLogoutHandler(t *testing.T) {
	h := testHandler(t, &MockAuthService{}, &MockForumService{})

	rr := httptest.NewRecorder()
	user := &domain.User{Id: 1, Username: "alice"}
	testRouter(h, user).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/logout", nil))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	cookie := cookieByName(rr, mw.SessionCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
