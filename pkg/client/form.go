package client

import "context"

// UserAPI is the subset of Client a Form drives.
type UserAPI interface {
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, in UserInput) (*User, error)
	Update(ctx context.Context, id string, in UserInput) error
	Delete(ctx context.Context, id string) error
}

// Form holds the state of the browser client without the browser: the
// loaded list, a loading flag, the last error, the row being edited and
// the two-field input buffer. Methods mirror the page's user actions.
// A Form is not safe for concurrent use.
type Form struct {
	api UserAPI

	Users   []User
	Loading bool
	Err     string
	Editing *User
	Name    string
	Email   string
}

// NewForm returns an empty Form backed by api.
func NewForm(api UserAPI) *Form {
	return &Form{api: api, Users: []User{}}
}

// Load refreshes Users.
func (f *Form) Load(ctx context.Context) error {
	f.Loading = true
	defer func() { f.Loading = false }()

	users, err := f.api.List(ctx)
	if err != nil {
		return f.fail(err)
	}
	f.Users = users
	return nil
}

// Edit copies u into the buffer and marks it as the row being edited.
func (f *Form) Edit(u User) {
	editing := u
	f.Editing = &editing
	f.Name = u.Name
	f.Email = u.Email
	f.Err = ""
}

// Cancel leaves edit mode and clears the buffer.
func (f *Form) Cancel() {
	f.reset()
}

// Submit updates the edited row, or creates a new one when nothing is being
// edited, then reloads. On failure the buffer and edit state are kept.
func (f *Form) Submit(ctx context.Context) error {
	f.Err = ""
	in := UserInput{Name: f.Name, Email: f.Email}

	var err error
	if f.Editing != nil {
		err = f.api.Update(ctx, f.Editing.ID, in)
	} else {
		_, err = f.api.Create(ctx, in)
	}
	if err != nil {
		return f.fail(err)
	}

	f.reset()
	return f.Load(ctx)
}

// Delete removes u if confirm approves it, then reloads. A declined or
// missing confirmation issues no request.
func (f *Form) Delete(ctx context.Context, u User, confirm func(User) bool) error {
	if confirm == nil || !confirm(u) {
		return nil
	}
	f.Err = ""

	if err := f.api.Delete(ctx, u.ID); err != nil {
		return f.fail(err)
	}
	return f.Load(ctx)
}

func (f *Form) reset() {
	f.Editing = nil
	f.Name = ""
	f.Email = ""
}

func (f *Form) fail(err error) error {
	f.Err = err.Error()
	return err
}
