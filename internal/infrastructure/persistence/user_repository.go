package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing user
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail finds a user by email, ignoring case
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.ErrNotFound
	}
	return r.findOne(ctx, "LOWER(email) = ?", email)
}

// FindByResetToken finds the user holding a password reset token
func (r *GormUserRepository) FindByResetToken(ctx context.Context, token string) (*identity.User, error) {
	if token == "" {
		return nil, shared.ErrNotFound
	}
	return r.findOne(ctx, "reset_token = ?", token)
}

// ExistsVerifiedByEmail reports whether a verified user owns the email
func (r *GormUserRepository) ExistsVerifiedByEmail(ctx context.Context, email string) (bool, error) {
	return r.existsVerified(ctx, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email)))
}

// ExistsVerifiedByContact reports whether a verified user owns the contact number
func (r *GormUserRepository) ExistsVerifiedByContact(ctx context.Context, contact string) (bool, error) {
	return r.existsVerified(ctx, "contact = ?", strings.TrimSpace(contact))
}

func (r *GormUserRepository) findOne(ctx context.Context, query string, args ...any) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormUserRepository) existsVerified(ctx context.Context, query string, value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where(query, value).
		Where("is_verified = ?", true).
		Count(&count).Error
	return count > 0, err
}

// Ensure GormUserRepository implements UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
