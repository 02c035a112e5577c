package handler

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/HatzunoMiku/student-forum2/internal/config"
	"github.com/HatzunoMiku/student-forum2/internal/domain"
	"github.com/HatzunoMiku/student-forum2/internal/markdown"
	mw "github.com/HatzunoMiku/student-forum2/internal/middleware"
	"github.com/HatzunoMiku/student-forum2/internal/validation"
)

// --- Mocks ---

type MockAuthService struct {
	RegisterFunc func(data domain.RegistrationData) (domain.UserId, error)
	LoginFunc    func(creds domain.Credentials) (string, domain.User, error)
}

func (m *MockAuthService) Register(data domain.RegistrationData) (domain.UserId, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(data)
	}
	return 1, nil
}

func (m *MockAuthService) Login(creds domain.Credentials) (string, domain.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(creds)
	}
	return "token", domain.User{Id: 1, Username: "user1"}, nil
}

type MockForumService struct {
	CreateThreadFunc func(data domain.ThreadCreationData) (domain.ThreadId, error)
	ThreadsFunc      func() ([]domain.ThreadSummary, error)
	ThreadFunc       func(id domain.ThreadId) (domain.Thread, error)
	CreatePostFunc   func(data domain.PostCreationData) (domain.PostId, error)
	PostsFunc        func(threadID domain.ThreadId) ([]domain.Post, error)
}

func (m *MockForumService) CreateThread(data domain.ThreadCreationData) (domain.ThreadId, error) {
	if m.CreateThreadFunc != nil {
		return m.CreateThreadFunc(data)
	}
	return 1, nil
}

func (m *MockForumService) Threads() ([]domain.ThreadSummary, error) {
	if m.ThreadsFunc != nil {
		return m.ThreadsFunc()
	}
	return nil, nil
}

func (m *MockForumService) Thread(id domain.ThreadId) (domain.Thread, error) {
	if m.ThreadFunc != nil {
		return m.ThreadFunc(id)
	}
	return domain.Thread{Id: id, Title: "a thread", Author: domain.User{Id: 1, Username: "user1"}}, nil
}

func (m *MockForumService) CreatePost(data domain.PostCreationData) (domain.PostId, error) {
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(data)
	}
	return 1, nil
}

func (m *MockForumService) Posts(threadID domain.ThreadId) ([]domain.Post, error) {
	if m.PostsFunc != nil {
		return m.PostsFunc(threadID)
	}
	return nil, nil
}

// --- Helpers ---

func testTemplates(t *testing.T) map[string]*template.Template {
	t.Helper()
	const dir = "../../templates"
	pages := []string{"home.html", "register.html", "login.html", "create_thread.html", "thread.html"}

	templates := make(map[string]*template.Template)
	for _, page := range pages {
		tmpl, err := template.New("base.html").ParseFiles(path.Join(dir, "base.html"), path.Join(dir, page))
		require.NoError(t, err)
		templates[page] = tmpl
	}
	return templates
}

func testHandler(t *testing.T, auth *MockAuthService, forum *MockForumService) *Handler {
	t.Helper()
	cfg := config.Public{
		SessionTTL: time.Hour,
		Forms: config.Forms{
			UsernameMinLen: 2, UsernameMaxLen: 20,
			PasswordMinLen: 8, TitleMaxLen: 100, ContentMaxLen: 4000,
		},
	}
	return New(testTemplates(t), cfg, validation.NewForms(cfg.Forms), markdown.New(), auth, forum)
}

// testRouter mounts the page routes the way the real router does,
// with an optional fixed user injected into the context.
func testRouter(h *Handler, user *domain.User) chi.Router {
	r := chi.NewRouter()
	if user != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				ctx := context.WithValue(req.Context(), mw.UserKey, user)
				next.ServeHTTP(w, req.WithContext(ctx))
			})
		})
	}
	r.Get("/", h.HomeHandler)
	r.Get("/register", h.RegisterGetHandler)
	r.Post("/register", h.RegisterPostHandler)
	r.Get("/login", h.LoginGetHandler)
	r.Post("/login", h.LoginPostHandler)
	r.Get("/logout", h.LogoutHandler)
	r.Get("/thread/new", h.NewThreadGetHandler)
	r.Post("/thread/new", h.NewThreadPostHandler)
	r.Get("/thread/{id}", h.ThreadGetHandler)
	r.Post("/thread/{id}", h.ThreadPostHandler)
	r.Get("/api/threads", h.APIThreadsHandler)
	r.Get("/api/threads/{id}", h.APIThreadHandler)
	return r
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func cookieByName(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
