package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apperrors "user-management-api/pkg/errors"
)

// TagNotBlank rejects strings that are empty after trimming whitespace.
const TagNotBlank = "notblank"

// Length bounds of a user's fields, matching the users table columns.
const (
	MaxNameLength  = 50
	MaxEmailLength = 20
)

// Tag aliases expanding to the user field bounds.
const (
	TagNameLength  = "name_length"
	TagEmailLength = "email_length"
)

var ginOnce sync.Once

// New returns a validator with the custom rules registered.
func New() *validator.Validate {
	v := validator.New()
	register(v)
	return v
}

// RegisterGin installs the custom rules on gin's binding validator so that
// `binding` struct tags can use them. Safe to call more than once.
func RegisterGin() {
	ginOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			register(v)
		}
	})
}

func register(v *validator.Validate) {
	// only fails on an empty tag or nil func
	_ = v.RegisterValidation(TagNotBlank, notBlank)
	v.RegisterAlias(TagNameLength, fmt.Sprintf("max=%d", MaxNameLength))
	v.RegisterAlias(TagEmailLength, fmt.Sprintf("max=%d", MaxEmailLength))
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return !field.IsZero()
	}
	return strings.TrimSpace(field.String()) != ""
}

// Message converts a single field failure into a human-readable message.
// Aliased rules are reported by the rule they expand to.
func Message(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required", TagNotBlank:
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "max":
		return fmt.Sprintf("The field %s must be a string with a maximum length of %s.", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("The field %s must be a string with a minimum length of %s.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", fe.Field())
	}
}

// ToError converts validator.ValidationErrors into an *apperrors.ValidationError
// keyed by field name. Any other error (including nil) is returned unchanged.
func ToError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	out := &apperrors.ValidationError{Fields: make(map[string][]string, len(validationErrors))}
	for _, fe := range validationErrors {
		out.Add(fe.Field(), Message(fe))
	}
	return out
}
