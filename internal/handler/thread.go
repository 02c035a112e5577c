package handler

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/HatzunoMiku/student-forum2/internal/domain"
	internal_errors "github.com/HatzunoMiku/student-forum2/internal/errors"
	"github.com/HatzunoMiku/student-forum2/internal/flash"
	"github.com/HatzunoMiku/student-forum2/internal/logger"
	mw "github.com/HatzunoMiku/student-forum2/internal/middleware"
)

type newThreadPageData struct {
	Form FormState
}

// renderedPost is the display form of a post: content converted to
// sanitized HTML.
type renderedPost struct {
	domain.Post
	HTML template.HTML
}

type threadPageData struct {
	Thread domain.Thread
	Posts  []renderedPost
	Form   FormState
}

func (h *Handler) NewThreadGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "create_thread.html", newThreadPageData{Form: emptyFormState()})
}

func (h *Handler) NewThreadPostHandler(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		mw.RedirectToLogin(w, r, h.Public.SecureCookies)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	values := r.PostForm
	errs := h.Forms.NewThread.Validate(values)
	if !errs.Empty() {
		h.renderTemplate(w, r, "create_thread.html", newThreadPageData{Form: FormState{Values: values, Errors: errs}})
		return
	}

	_, err := h.forum.CreateThread(domain.ThreadCreationData{
		Title:  values.Get("title"),
		Author: user.Id,
	})
	if err != nil {
		logger.Log.Error("creating thread", "error", err)
		writeError(w, err)
		return
	}

	h.redirectWithFlash(w, r, "/", flash.CookieSuccess, "Thread created!")
}

func (h *Handler) ThreadGetHandler(w http.ResponseWriter, r *http.Request) {
	threadID, err := parseThreadID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	h.renderThreadPage(w, r, threadID, emptyFormState())
}

// ThreadPostHandler appends a reply and redirects back to the thread,
// so a page reload does not resubmit the form.
func (h *Handler) ThreadPostHandler(w http.ResponseWriter, r *http.Request) {
	threadID, err := parseThreadID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	user := mw.GetUserFromContext(r)
	if user == nil {
		mw.RedirectToLogin(w, r, h.Public.SecureCookies)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	values := r.PostForm
	errs := h.Forms.Reply.Validate(values)
	if !errs.Empty() {
		h.renderThreadPage(w, r, threadID, FormState{Values: values, Errors: errs})
		return
	}

	_, err = h.forum.CreatePost(domain.PostCreationData{
		Content: values.Get("content"),
		Author:  user.Id,
		Thread:  threadID,
	})
	if err != nil {
		if internal_errors.IsNotFound(err) {
			writeError(w, err)
			return
		}
		logger.Log.Error("creating post", "thread_id", threadID, "error", err)
		writeError(w, err)
		return
	}

	h.redirectWithFlash(w, r, r.URL.Path, flash.CookieSuccess, "Post added!")
}

func (h *Handler) renderThreadPage(w http.ResponseWriter, r *http.Request, threadID domain.ThreadId, form FormState) {
	thread, err := h.forum.Thread(threadID)
	if err != nil {
		writeError(w, err)
		return
	}

	posts, err := h.forum.Posts(threadID)
	if err != nil {
		logger.Log.Error("listing posts", "thread_id", threadID, "error", err)
		writeError(w, err)
		return
	}

	rendered := make([]renderedPost, len(posts))
	for i, p := range posts {
		rendered[i] = renderedPost{Post: p, HTML: h.TextProcessor.Render(p.Content)}
	}

	h.renderTemplate(w, r, "thread.html", threadPageData{
		Thread: thread,
		Posts:  rendered,
		Form:   form,
	})
}

func parseThreadID(r *http.Request) (domain.ThreadId, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, internal_errors.NotFound("Thread not found")
	}
	return id, nil
}
