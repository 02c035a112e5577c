package service

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/HatzunoMiku/student-forum2/internal/domain"
	internal_errors "github.com/HatzunoMiku/student-forum2/internal/errors"
	"github.com/HatzunoMiku/student-forum2/internal/logger"
)

type AuthService interface {
	Register(data domain.RegistrationData) (domain.UserId, error)
	Login(creds domain.Credentials) (string, domain.User, error)
}

type Auth struct {
	storage AuthStorage
	session Session
}

type AuthStorage interface {
	SaveUser(user domain.User) (domain.UserId, error)
	UserByEmail(email domain.Email) (domain.User, error)
}

type Session interface {
	NewToken(user domain.User) (string, error)
}

func NewAuth(storage AuthStorage, session Session) *Auth {
	return &Auth{storage: storage, session: session}
}

// Register hashes the password and creates the user. Uniqueness of
// username/email is enforced by storage; a 409 from there carries the
// offending field name for the form.
func (a *Auth) Register(data domain.RegistrationData) (domain.UserId, error) {
	email := strings.ToLower(data.Email)

	passHash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return -1, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := a.storage.SaveUser(domain.User{
		Username: data.Username,
		Email:    email,
		PassHash: string(passHash),
	})
	if err != nil {
		return -1, err
	}
	return id, nil
}

// Login checks credentials and returns a session token. Unknown email
// and wrong password produce the same error, to not leak which emails
// are registered.
func (a *Auth) Login(creds domain.Credentials) (string, domain.User, error) {
	email := strings.ToLower(creds.Email)

	user, err := a.storage.UserByEmail(email)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return "", domain.User{}, invalidCredentials()
		}
		return "", domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		logger.Log.Info("password verification failed", "user_id", user.Id)
		return "", domain.User{}, invalidCredentials()
	}

	token, err := a.session.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create session token", "user_id", user.Id, "error", err)
		return "", domain.User{}, err
	}

	return token, user, nil
}

func invalidCredentials() error {
	return &internal_errors.ErrorWithStatusCode{Message: "Login unsuccessful. Check email and password", StatusCode: http.StatusUnauthorized}
}
