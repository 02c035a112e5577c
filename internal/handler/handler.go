package handler

import (
	"html/template"
	"net/http"

	"github.com/HatzunoMiku/student-forum2/internal/config"
	internal_errors "github.com/HatzunoMiku/student-forum2/internal/errors"
	"github.com/HatzunoMiku/student-forum2/internal/markdown"
	"github.com/HatzunoMiku/student-forum2/internal/service"
	"github.com/HatzunoMiku/student-forum2/internal/validation"
)

type Handler struct {
	Templates     map[string]*template.Template
	Public        config.Public
	Forms         *validation.Forms
	TextProcessor *markdown.TextProcessor

	auth  service.AuthService
	forum service.ForumService
}

func New(templates map[string]*template.Template, publicCfg config.Public, forms *validation.Forms, textProcessor *markdown.TextProcessor, auth service.AuthService, forum service.ForumService) *Handler {
	return &Handler{
		Templates:     templates,
		Public:        publicCfg,
		Forms:         forms,
		TextProcessor: textProcessor,
		auth:          auth,
		forum:         forum,
	}
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// writeError maps status-coded errors to their HTTP response; anything
// else is a 500.
func writeError(w http.ResponseWriter, err error) {
	if e, ok := err.(*internal_errors.ErrorWithStatusCode); ok {
		http.Error(w, e.Message, e.StatusCode)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
