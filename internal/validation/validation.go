// Package validation wraps go-playground/validator with the tags used by
// request bodies in this service.
package validation

import (
	"errors"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

// TagLooseEmail accepts local@domain.tld-shaped addresses with no whitespace
// or extra @ in any part.
const TagLooseEmail = "loose_email"

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation(TagLooseEmail, func(fl validator.FieldLevel) bool {
			return IsEmail(fl.Field().String())
		})
	})
	return validate
}

// IsEmail reports whether s has the local@domain.tld shape.
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

// Errors is the list of failed fields for one struct.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return "validation failed on " + e[0].Field + " (" + e[0].Tag + ")"
}

// Has reports whether any field failed the given tag.
func (e Errors) Has(tag string) bool {
	for _, fe := range e {
		if fe.Tag == tag {
			return true
		}
	}
	return false
}

// Struct validates obj and returns Errors, or nil when it passes.
func Struct(obj any) error {
	err := instance().Struct(obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}
