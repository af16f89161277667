package user

import "user-management-api/pkg/validation"

// Column bounds shared by every layer that checks a User.
const (
	MaxNameLength  = validation.MaxNameLength
	MaxEmailLength = validation.MaxEmailLength
)

// User represents a user entity in the system.
type User struct {
	ID    string `validate:"required"`                       // ID is assigned once at creation and never changes
	Name  string `validate:"required,notblank,name_length"`  // Name is the full name of the user
	Email string `validate:"required,notblank,email_length"` // Email is stored as plain text, no uniqueness
}

var validate = validation.New()

// Validate checks the entity against the column constraints of the users table.
func (u *User) Validate() error {
	return validation.ToError(validate.Struct(u))
}
