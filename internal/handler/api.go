package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/HatzunoMiku/student-forum2/internal/domain"
	"github.com/HatzunoMiku/student-forum2/internal/logger"
)

// Read-only JSON views of the forum, for scripts and other frontends.

type threadListItem struct {
	Id        domain.ThreadId `json:"id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	CreatedAt time.Time       `json:"created_at"`
	NumPosts  int             `json:"num_posts"`
}

type postItem struct {
	Id        domain.PostId `json:"id"`
	Content   string        `json:"content"`
	Author    string        `json:"author"`
	CreatedAt time.Time     `json:"created_at"`
}

type threadDetail struct {
	Id        domain.ThreadId `json:"id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	CreatedAt time.Time       `json:"created_at"`
	Posts     []postItem      `json:"posts"`
}

func (h *Handler) APIThreadsHandler(w http.ResponseWriter, r *http.Request) {
	threads, err := h.forum.Threads()
	if err != nil {
		logger.Log.Error("listing threads", "error", err)
		writeError(w, err)
		return
	}

	items := make([]threadListItem, len(threads))
	for i, t := range threads {
		items[i] = threadListItem{Id: t.Id, Title: t.Title, Author: t.AuthorName, CreatedAt: t.CreatedAt, NumPosts: t.NumPosts}
	}
	writeJSON(w, items)
}

func (h *Handler) APIThreadHandler(w http.ResponseWriter, r *http.Request) {
	threadID, err := parseThreadID(r)
	if err != nil {
		writeError(w, err)
		return
	}

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

	detail := threadDetail{
		Id:        thread.Id,
		Title:     thread.Title,
		Author:    thread.Author.Username,
		CreatedAt: thread.CreatedAt,
		Posts:     make([]postItem, len(posts)),
	}
	for i, p := range posts {
		detail.Posts[i] = postItem{Id: p.Id, Content: p.Content, Author: p.AuthorName, CreatedAt: p.CreatedAt}
	}
	writeJSON(w, detail)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encoding json response", "error", err)
	}
}
