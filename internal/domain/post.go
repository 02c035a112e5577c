package domain

import "time"

type PostCreationData struct {
	Content PostContent
	Author  UserId
	Thread  ThreadId
}

type Post struct {
	Id         PostId
	Content    PostContent
	AuthorName Username
	Author     UserId
	ThreadId   ThreadId
	CreatedAt  time.Time
}
