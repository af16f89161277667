package user

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "user-management-api/internal/domain/user"
	apperrors "user-management-api/pkg/errors"
	"user-management-api/pkg/logger"
	"user-management-api/pkg/validation"
)

// Repository defines the interface for user data access operations.
// Implementations report a missing row as *apperrors.NotFoundError.
type Repository interface {
	Create(ctx context.Context, u *domain.User) error             // Insert a new row
	GetByID(ctx context.Context, id string) (*domain.User, error) // Retrieve user by ID
	Update(ctx context.Context, u *domain.User) error             // Overwrite name and email
	Delete(ctx context.Context, id string) error                  // Delete user by ID
	List(ctx context.Context) ([]domain.User, error)              // All users, store order
}

// Usecase implements the business logic for user management operations.
// It owns identifier assignment and not-found semantics.
type Usecase struct {
	repo     Repository          // Repository for data access
	log      *zap.Logger         // Logger for structured logging
	validate *validator.Validate // Validator for request validation
	newID    func() string       // Identifier generator
}

// Option customises a Usecase.
type Option func(*Usecase)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(uc *Usecase) {
		uc.newID = gen
	}
}

// New creates a new instance of Usecase with the provided repository and logger.
func New(r Repository, log *zap.Logger, opts ...Option) *Usecase {
	uc := &Usecase{
		repo:     r,
		log:      log,
		validate: validation.New(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// CreateUser validates the request, assigns a fresh ID and inserts the user.
func (uc *Usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, validation.ToError(err)
	}

	u := &domain.User{
		ID:    uc.newID(),
		Name:  in.Name,
		Email: in.Email,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	return &CreateUserResponse{User: toDTO(u)}, nil
}

// UpdateUser replaces name and email of an existing user. The ID is never changed.
func (uc *Usecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*UpdateUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("updating user", zap.String("id", in.ID), zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, validation.ToError(err)
	}

	if !isValidID(in.ID) {
		log.Warn("update user: malformed id", zap.String("id", in.ID))
		return nil, apperrors.NewNotFoundError("user", in.ID)
	}

	err := uc.repo.Update(ctx, &domain.User{
		ID:    in.ID,
		Name:  in.Name,
		Email: in.Email,
	})
	if err != nil {
		uc.logRepoError(log, "failed to update user", in.ID, err)
		return nil, err
	}

	return &UpdateUserResponse{ID: in.ID}, nil
}

// DeleteUser removes a user by ID.
func (uc *Usecase) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("deleting user", zap.String("id", in.ID))

	if !isValidID(in.ID) {
		log.Warn("delete user: malformed id", zap.String("id", in.ID))
		return nil, apperrors.NewNotFoundError("user", in.ID)
	}

	if err := uc.repo.Delete(ctx, in.ID); err != nil {
		uc.logRepoError(log, "failed to delete user", in.ID, err)
		return nil, err
	}

	return &DeleteUserResponse{ID: in.ID}, nil
}

// GetUser retrieves a user by ID.
func (uc *Usecase) GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)

	if !isValidID(in.ID) {
		log.Warn("get user: malformed id", zap.String("id", in.ID))
		return nil, apperrors.NewNotFoundError("user", in.ID)
	}

	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		uc.logRepoError(log, "failed to get user", in.ID, err)
		return nil, err
	}

	return &GetUserResponse{User: toDTO(u)}, nil
}

// ListUsers retrieves every user in the store's natural order.
func (uc *Usecase) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("listing users")

	domainUsers, err := uc.repo.List(ctx)
	if err != nil {
		log.Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i := range domainUsers {
		users[i] = toDTO(&domainUsers[i])
	}

	return &ListUsersResponse{
		Users: users,
	}, nil
}

// logRepoError logs not-found at warn and everything else at error.
func (uc *Usecase) logRepoError(log *zap.Logger, msg, id string, err error) {
	var notFound *apperrors.NotFoundError
	if errors.As(err, &notFound) {
		log.Warn(msg, zap.String("id", id), zap.Error(err))
		return
	}
	log.Error(msg, zap.String("id", id), zap.Error(err))
}

// isValidID reports whether id could have been issued by CreateUser.
func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func toDTO(u *domain.User) User {
	return User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
