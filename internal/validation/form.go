package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Values is the submitted form data, one value per field.
type Values = url.Values

// Errors maps a field name to its error messages, in rule order.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Empty() bool { return len(e) == 0 }

// Check is a custom rule with access to the whole form, so rules like
// "confirm must equal password" can be expressed per field.
type Check func(value string, form Values) error

// Field is a declarative rule set for one form field. Rules are
// evaluated in order: required, length bounds, email syntax, then
// custom checks. The first failing rule produces the field's message
// and stops evaluation for that field.
type Field struct {
	Name      string
	Label     string
	Required  bool
	MinLength int
	MaxLength int
	Email     bool
	Checks    []Check
}

type Form struct {
	Fields []Field
}

// Validate evaluates every field against the submitted values and
// returns field-scoped error messages. Leading/trailing whitespace is
// not stripped from passwords but is from everything else.
func (f *Form) Validate(values Values) Errors {
	errs := make(Errors)
	for _, field := range f.Fields {
		value := values.Get(field.Name)
		if !strings.Contains(strings.ToLower(field.Name), "password") {
			value = strings.TrimSpace(value)
			values.Set(field.Name, value)
		}

		if msg := field.check(value, values); msg != "" {
			errs.Add(field.Name, msg)
		}
	}
	return errs
}

func (field *Field) check(value string, form Values) string {
	label := field.Label
	if label == "" {
		label = field.Name
	}

	if value == "" {
		if field.Required {
			return fmt.Sprintf("%s is required.", label)
		}
		return ""
	}
	// Length bounds count characters, not bytes, so multibyte input
	// is measured the way users see it.
	length := utf8.RuneCountInString(value)
	if field.MinLength > 0 && length < field.MinLength {
		return fmt.Sprintf("%s must be at least %d characters.", label, field.MinLength)
	}
	if field.MaxLength > 0 && length > field.MaxLength {
		return fmt.Sprintf("%s must be at most %d characters.", label, field.MaxLength)
	}
	if field.Email {
		if err := validate.Var(value, "email"); err != nil {
			return fmt.Sprintf("%s is not a valid email address.", label)
		}
	}
	for _, check := range field.Checks {
		if err := check(value, form); err != nil {
			return err.Error()
		}
	}
	return ""
}
