package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/HatzunoMiku/student-forum2/internal/domain"
	internal_errors "github.com/HatzunoMiku/student-forum2/internal/errors"
)

const uniqueViolation = "23505"

// SaveUser inserts a new user row. Unique-constraint violations on
// username or email come back as a 409 naming the offending field, so
// the registration handler can attach the message to the right input.
func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	var id domain.UserId
	err := s.db.QueryRow(
		"INSERT INTO users(username, email, password_hash) VALUES($1, $2, $3) RETURNING id",
		user.Username, user.Email, user.PassHash,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return -1, duplicateUserError(pqErr)
		}
		return -1, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func duplicateUserError(pqErr *pq.Error) error {
	if strings.Contains(pqErr.Constraint, "email") {
		return internal_errors.Conflict("That email is already registered.", "email")
	}
	return internal_errors.Conflict("That username is already taken.", "username")
}

// UserByEmail fetches a single user by email.
func (s *Storage) UserByEmail(email domain.Email) (domain.User, error) {
	return s.user("email", email)
}

// UserByUsername fetches a single user by username.
func (s *Storage) UserByUsername(username domain.Username) (domain.User, error) {
	return s.user("username", username)
}

func (s *Storage) user(column, value string) (domain.User, error) {
	var user domain.User
	query := fmt.Sprintf("SELECT id, username, email, password_hash, created_at FROM users WHERE %s = $1", column)
	err := s.db.QueryRow(query, value).Scan(&user.Id, &user.Username, &user.Email, &user.PassHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}
