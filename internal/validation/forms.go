package validation

import (
	"errors"

	"github.com/HatzunoMiku/student-forum2/internal/config"
)

// Forms bundles the four site forms, built once from config limits.
type Forms struct {
	Register  Form
	Login     Form
	NewThread Form
	Reply     Form
}

func NewForms(limits config.Forms) *Forms {
	return &Forms{
		Register: Form{Fields: []Field{
			{Name: "username", Label: "Username", Required: true, MinLength: limits.UsernameMinLen, MaxLength: limits.UsernameMaxLen},
			{Name: "email", Label: "Email", Required: true, Email: true},
			{Name: "password", Label: "Password", Required: true, MinLength: limits.PasswordMinLen},
			{Name: "confirm_password", Label: "Confirm password", Required: true, Checks: []Check{matchesField("password", "Passwords must match.")}},
		}},
		Login: Form{Fields: []Field{
			{Name: "email", Label: "Email", Required: true, Email: true},
			{Name: "password", Label: "Password", Required: true},
		}},
		NewThread: Form{Fields: []Field{
			{Name: "title", Label: "Title", Required: true, MinLength: 1, MaxLength: limits.TitleMaxLen},
		}},
		Reply: Form{Fields: []Field{
			{Name: "content", Label: "Content", Required: true, MinLength: 1, MaxLength: limits.ContentMaxLen},
		}},
	}
}

func matchesField(other, message string) Check {
	return func(value string, form Values) error {
		if value != form.Get(other) {
			return errors.New(message)
		}
		return nil
	}
}
