package setup

import (
	"html/template"
	"os"
	"path"
	"path/filepath"

	"github.com/HatzunoMiku/student-forum2/internal/config"
	"github.com/HatzunoMiku/student-forum2/internal/handler"
	"github.com/HatzunoMiku/student-forum2/internal/markdown"
	mw "github.com/HatzunoMiku/student-forum2/internal/middleware"
	"github.com/HatzunoMiku/student-forum2/internal/service"
	"github.com/HatzunoMiku/student-forum2/internal/session"
	"github.com/HatzunoMiku/student-forum2/internal/storage/pg"
	"github.com/HatzunoMiku/student-forum2/internal/validation"
)

const (
	baseTemplate = "base.html"
	tmplPath     = "templates"
)

// Dependencies holds all initialized application dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	sessions := session.New(cfg.SessionKey(), cfg.SessionTTL())
	auth := service.NewAuth(storage, sessions)
	forum := service.NewForum(storage)
	forms := validation.NewForms(cfg.Public.Forms)

	templates, err := loadTemplates(tmplPath)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}

	h := handler.New(templates, cfg.Public, forms, markdown.New(), auth, forum)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: mw.NewAuth(sessions, cfg.Public.SecureCookies),
	}, nil
}

func loadTemplates(tmplPath string) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)
	files, err := os.ReadDir(tmplPath)
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		if filepath.Ext(f.Name()) != ".html" || f.Name() == baseTemplate {
			continue
		}
		tmpl, err := template.New(baseTemplate).ParseFiles(
			path.Join(tmplPath, baseTemplate),
			path.Join(tmplPath, f.Name()),
		)
		if err != nil {
			return nil, err
		}
		templates[f.Name()] = tmpl
	}
	return templates, nil
}
