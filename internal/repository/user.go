// Package repository provides the data access layer behind the
// hierarchy store and the lifecycle engine.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/investflow-dev/investflow/internal/apperr"
	"github.com/investflow-dev/investflow/internal/models"
	"gorm.io/gorm"
)

// UserRepository is the identity and hierarchy store contract.
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]models.User, error)
	Subordinates(ctx context.Context, managerID uint) ([]models.User, error)
	CountSubordinates(ctx context.Context, managerID uint) (int64, error)
	UpdateRole(ctx context.Context, id uint, role string) (*models.User, error)
	SetManager(ctx context.Context, id uint, managerID *uint) (*models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User

	err := r.db.WithContext(ctx).Preload("Manager").First(&user, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %d not found", id)
		}
		return nil, fmt.Errorf("failed to find user %d: %w", id, err)
	}

	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	err := r.db.WithContext(ctx).Preload("Manager").Where("username = ?", username).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %s not found", username)
		}
		return nil, fmt.Errorf("failed to find user %s: %w", username, err)
	}

	return &user, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error

	if err != nil {
		return false, fmt.Errorf("failed to check username %s: %w", username, err)
	}

	return count > 0, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User

	if err := r.db.WithContext(ctx).Preload("Manager").Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

func (r *userRepository) Subordinates(ctx context.Context, managerID uint) ([]models.User, error) {
	var users []models.User

	err := r.db.WithContext(ctx).Preload("Manager").
		Where("manager_id = ?", managerID).Order("id").Find(&users).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list subordinates of %d: %w", managerID, err)
	}

	return users, nil
}

func (r *userRepository) CountSubordinates(ctx context.Context, managerID uint) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("manager_id = ?", managerID).Count(&count).Error

	if err != nil {
		return 0, fmt.Errorf("failed to count subordinates of %d: %w", managerID, err)
	}

	return count, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id uint, role string) (*models.User, error) {
	updates := map[string]interface{}{"role": role}

	// The manager link only means something for REGULAR users, so a
	// role change away from REGULAR clears it.
	if role != models.RoleRegular {
		updates["manager_id"] = nil
	}

	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates).Error

	if err != nil {
		return nil, fmt.Errorf("failed to update role of user %d: %w", id, err)
	}

	return r.FindByID(ctx, id)
}

func (r *userRepository) SetManager(ctx context.Context, id uint, managerID *uint) (*models.User, error) {
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).Update("manager_id", managerID).Error

	if err != nil {
		return nil, fmt.Errorf("failed to set manager of user %d: %w", id, err)
	}

	return r.FindByID(ctx, id)
}
