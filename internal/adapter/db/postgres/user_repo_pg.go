package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-management-api/internal/domain/user"
	usecase "user-management-api/internal/usecase/user"
	apperrors "user-management-api/pkg/errors"
	"user-management-api/pkg/logger"
)

// UserRepoPG implements the usecase Repository with GORM. It runs against
// PostgreSQL in production and SQLite in development and tests.
type UserRepoPG struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

var _ usecase.Repository = (*UserRepoPG)(nil)

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema maps the users table. Column bounds mirror the migration.
type UserSchema struct {
	ID    string `gorm:"primaryKey;type:varchar(36)"`
	Name  string `gorm:"size:50;not null"`
	Email string `gorm:"size:20;not null"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func toSchema(u *user.User) UserSchema {
	return UserSchema{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (s UserSchema) toDomain() user.User {
	return user.User{ID: s.ID, Name: s.Name, Email: s.Email}
}

// Create inserts a new user. The ID must already be assigned.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}
	if err := u.Validate(); err != nil {
		return err
	}

	log := logger.WithContext(ctx, r.log)
	model := toSchema(u)

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		log.Error("failed to create user in db", zap.Error(err), zap.String("id", u.ID))
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user created in db", zap.String("id", model.ID))
	return nil
}

// Update overwrites name and email of the row with u.ID in a single statement.
// It returns a NotFoundError when no row matches.
func (r *UserRepoPG) Update(ctx context.Context, u *user.User) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}
	if err := u.Validate(); err != nil {
		return err
	}

	log := logger.WithContext(ctx, r.log)

	result := r.db.WithContext(ctx).
		Model(&UserSchema{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{"name": u.Name, "email": u.Email})
	if result.Error != nil {
		log.Error("failed to update user in db", zap.Error(result.Error), zap.String("id", u.ID))
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		log.Warn("user not found for update", zap.String("id", u.ID))
		return apperrors.NewNotFoundError("user", u.ID)
	}

	log.Info("user updated in db", zap.String("id", u.ID))
	return nil
}

// Delete removes a user by ID. It returns a NotFoundError when no row matches.
func (r *UserRepoPG) Delete(ctx context.Context, id string) error {
	log := logger.WithContext(ctx, r.log)

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserSchema{})
	if result.Error != nil {
		log.Error("failed to delete user in db", zap.Error(result.Error), zap.String("id", id))
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		log.Warn("user not found for delete", zap.String("id", id))
		return apperrors.NewNotFoundError("user", id)
	}

	log.Info("user deleted in db", zap.String("id", id))
	return nil
}

// GetByID retrieves a user by their unique ID.
func (r *UserRepoPG) GetByID(ctx context.Context, id string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WithContext(ctx, r.log).Debug("user not found", zap.String("id", id))
			return nil, apperrors.NewNotFoundError("user", id)
		}
		logger.WithContext(ctx, r.log).Error("failed to get user from db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u := model.toDomain()
	return &u, nil
}

// List retrieves every user in the store's natural order.
func (r *UserRepoPG) List(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		logger.WithContext(ctx, r.log).Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = model.toDomain()
	}

	return users, nil
}
