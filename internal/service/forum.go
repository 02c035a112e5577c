package service

import (
	"github.com/HatzunoMiku/student-forum2/internal/domain"
)

type ForumService interface {
	CreateThread(data domain.ThreadCreationData) (domain.ThreadId, error)
	Threads() ([]domain.ThreadSummary, error)
	Thread(id domain.ThreadId) (domain.Thread, error)
	CreatePost(data domain.PostCreationData) (domain.PostId, error)
	Posts(threadID domain.ThreadId) ([]domain.Post, error)
}

type Forum struct {
	storage ForumStorage
}

type ForumStorage interface {
	CreateThread(data domain.ThreadCreationData) (domain.ThreadId, error)
	Threads() ([]domain.ThreadSummary, error)
	Thread(id domain.ThreadId) (domain.Thread, error)
	CreatePost(data domain.PostCreationData) (domain.PostId, error)
	Posts(threadID domain.ThreadId) ([]domain.Post, error)
}

func NewForum(storage ForumStorage) *Forum {
	return &Forum{storage}
}

func (f *Forum) CreateThread(data domain.ThreadCreationData) (domain.ThreadId, error) {
	return f.storage.CreateThread(data)
}

func (f *Forum) Threads() ([]domain.ThreadSummary, error) {
	return f.storage.Threads()
}

func (f *Forum) Thread(id domain.ThreadId) (domain.Thread, error) {
	return f.storage.Thread(id)
}

func (f *Forum) CreatePost(data domain.PostCreationData) (domain.PostId, error) {
	return f.storage.CreatePost(data)
}

func (f *Forum) Posts(threadID domain.ThreadId) ([]domain.Post, error) {
	return f.storage.Posts(threadID)
}
