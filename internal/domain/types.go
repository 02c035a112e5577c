package domain

type (
	Email    = string
	Password = string
	Username = string
	UserId   = int64

	ThreadTitle = string
	ThreadId    = int64

	PostContent = string
	PostId      = int64
)
