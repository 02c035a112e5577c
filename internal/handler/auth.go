package handler

import (
	"errors"
	"net/http"

	"github.com/HatzunoMiku/student-forum2/internal/domain"
	internal_errors "github.com/HatzunoMiku/student-forum2/internal/errors"
	"github.com/HatzunoMiku/student-forum2/internal/flash"
	"github.com/HatzunoMiku/student-forum2/internal/logger"
	mw "github.com/HatzunoMiku/student-forum2/internal/middleware"
)

type registerPageData struct {
	Form FormState
}

type loginPageData struct {
	Form FormState
	Next string
}

func (h *Handler) RegisterGetHandler(w http.ResponseWriter, r *http.Request) {
	if mw.GetUserFromContext(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderTemplate(w, r, "register.html", registerPageData{Form: emptyFormState()})
}

func (h *Handler) RegisterPostHandler(w http.ResponseWriter, r *http.Request) {
	if mw.GetUserFromContext(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	values := r.PostForm
	errs := h.Forms.Register.Validate(values)
	if !errs.Empty() {
		h.renderTemplate(w, r, "register.html", registerPageData{Form: FormState{Values: values, Errors: errs}})
		return
	}

	_, err := h.auth.Register(domain.RegistrationData{
		Username: values.Get("username"),
		Email:    values.Get("email"),
		Password: values.Get("password"),
	})
	if err != nil {
		var e *internal_errors.ErrorWithStatusCode
		if errors.As(err, &e) && e.StatusCode == http.StatusConflict {
			// uniqueness violation becomes a field error, not a page error
			errs.Add(e.Field, e.Message)
			h.renderTemplate(w, r, "register.html", registerPageData{Form: FormState{Values: values, Errors: errs}})
			return
		}
		logger.Log.Error("registering user", "error", err)
		writeError(w, err)
		return
	}

	h.redirectWithFlash(w, r, "/login", flash.CookieSuccess, "Account created! You can now log in.")
}

func (h *Handler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	if mw.GetUserFromContext(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderTemplate(w, r, "login.html", loginPageData{
		Form: emptyFormState(),
		Next: safeNextPath(r.URL.Query().Get("next")),
	})
}

func (h *Handler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	if mw.GetUserFromContext(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	values := r.PostForm
	next := safeNextPath(values.Get("next"))
	errs := h.Forms.Login.Validate(values)
	if !errs.Empty() {
		h.renderTemplate(w, r, "login.html", loginPageData{Form: FormState{Values: values, Errors: errs}, Next: next})
		return
	}

	token, _, err := h.auth.Login(domain.Credentials{
		Email:    values.Get("email"),
		Password: values.Get("password"),
	})
	if err != nil {
		if e, ok := err.(*internal_errors.ErrorWithStatusCode); ok && e.StatusCode == http.StatusUnauthorized {
			// generic notice; never reveal whether the email exists
			h.renderTemplateWithError(w, r, "login.html", loginPageData{Form: FormState{Values: values, Errors: errs}, Next: next}, e.Message)
			return
		}
		logger.Log.Error("logging in", "error", err)
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     mw.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Public.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, next, http.StatusSeeOther)
}

// LogoutHandler clears the session cookie. Safe to call when already
// logged out.
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     mw.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
