package user

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	Name  string `validate:"required,notblank,name_length"`
	Email string `validate:"required,notblank,email_length"`
}

// CreateUserResponse represents the response payload after creating a user.
// It carries the full record, including the generated ID.
type CreateUserResponse struct {
	User
}

// UpdateUserRequest represents the request payload for replacing a user's fields.
// Both Name and Email are required: updates are a full replace, not a patch.
type UpdateUserRequest struct {
	ID    string
	Name  string `validate:"required,notblank,name_length"`
	Email string `validate:"required,notblank,email_length"`
}

// UpdateUserResponse represents the response payload after updating a user.
type UpdateUserResponse struct {
	ID string
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID string
}

// DeleteUserResponse represents the response payload after deleting a user.
type DeleteUserResponse struct {
	ID string
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID string
}

// GetUserResponse represents the response payload for user details.
type GetUserResponse struct {
	User
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID    string
	Name  string
	Email string
}
