package domain

import "time"

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Title  ThreadTitle
	Author UserId
}

type Thread struct {
	Id        ThreadId
	Title     ThreadTitle
	Author    User
	CreatedAt time.Time
}

// ThreadSummary is a listing row: thread metadata joined with the
// author name and reply count, ordered newest-first.
type ThreadSummary struct {
	Id         ThreadId
	Title      ThreadTitle
	AuthorName Username
	CreatedAt  time.Time
	NumPosts   int
}
