package handler

import (
	"net/http"

	"github.com/HatzunoMiku/student-forum2/internal/domain"
	"github.com/HatzunoMiku/student-forum2/internal/logger"
)

type homePageData struct {
	Threads []domain.ThreadSummary
}

// HomeHandler renders the thread listing, newest first.
func (h *Handler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	threads, err := h.forum.Threads()
	if err != nil {
		logger.Log.Error("listing threads", "error", err)
		writeError(w, err)
		return
	}

	h.renderTemplate(w, r, "home.html", homePageData{Threads: threads})
}
