package domain

import "time"

type User struct {
	Id        UserId
	Username  Username
	Email     Email
	PassHash  string
	CreatedAt time.Time
}

type Credentials struct {
	Email    Email
	Password Password
}

// RegistrationData carries the already-validated registration form
// through the service layer. Password is still plaintext here; the
// auth service hashes it before it reaches storage.
type RegistrationData struct {
	Username Username
	Email    Email
	Password Password
}
