package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"

	"github.com/HatzunoMiku/student-forum2/internal/domain"
	"github.com/HatzunoMiku/student-forum2/internal/flash"
	"github.com/HatzunoMiku/student-forum2/internal/logger"
	mw "github.com/HatzunoMiku/student-forum2/internal/middleware"
	"github.com/HatzunoMiku/student-forum2/internal/validation"
)

// CommonTemplateData holds fields every page template can rely on.
// Templates access page data via .Data and common data via .Common.
type CommonTemplateData struct {
	Error     string
	Success   string
	User      *domain.User
	CSRFToken string
	Forms     FormLimits
}

// FormLimits mirrors the configured field limits so templates can set
// maxlength attributes from the same source the validator uses.
type FormLimits struct {
	UsernameMaxLen int
	TitleMaxLen    int
	ContentMaxLen  int
}

// FormState carries submitted values and field errors back into a
// re-rendered form.
type FormState struct {
	Values validation.Values
	Errors validation.Errors
}

func emptyFormState() FormState {
	return FormState{Values: url.Values{}, Errors: validation.Errors{}}
}

// TemplateData wraps page-specific data with common template data.
type TemplateData struct {
	Data   any
	Common CommonTemplateData
}

func (h *Handler) initCommonTemplateData(w http.ResponseWriter, r *http.Request) CommonTemplateData {
	return CommonTemplateData{
		Error:     flash.Pop(w, r, flash.CookieError, h.Public.SecureCookies),
		Success:   flash.Pop(w, r, flash.CookieSuccess, h.Public.SecureCookies),
		User:      mw.GetUserFromContext(r),
		CSRFToken: mw.GetCSRFTokenFromContext(r),
		Forms: FormLimits{
			UsernameMaxLen: h.Public.Forms.UsernameMaxLen,
			TitleMaxLen:    h.Public.Forms.TitleMaxLen,
			ContentMaxLen:  h.Public.Forms.ContentMaxLen,
		},
	}
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	h.renderTemplateWithError(w, r, name, data, "")
}

func (h *Handler) renderTemplateWithError(w http.ResponseWriter, r *http.Request, name string, data any, errMsg string) {
	tmpl, ok := h.Templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	common := h.initCommonTemplateData(w, r)
	if errMsg != "" {
		common.Error = errMsg
	}

	wrapped := TemplateData{
		Data:   data,
		Common: common,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	_, _ = buf.WriteTo(w)
}

func (h *Handler) setFlash(w http.ResponseWriter, name, message string) {
	flash.Set(w, name, message, h.Public.SecureCookies)
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, targetURL, cookieName, message string) {
	h.setFlash(w, cookieName, message)
	http.Redirect(w, r, targetURL, http.StatusSeeOther)
}

// safeNextPath keeps login redirects on-site: only local paths are
// honored, everything else falls back to home.
func safeNextPath(next string) string {
	if next == "" || next[0] != '/' {
		return "/"
	}
	if len(next) > 1 && next[1] == '/' { // protocol-relative URL
		return "/"
	}
	return next
}
