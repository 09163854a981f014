package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/investflow-dev/investflow/internal/apperr"
	"github.com/investflow-dev/investflow/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvestmentRepository is the lifecycle engine's store contract. List
// results are ordered newest first and stable within a query.
type InvestmentRepository interface {
	Create(ctx context.Context, request *models.InvestmentRequest) error
	FindByID(ctx context.Context, id uint) (*models.InvestmentRequest, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.InvestmentRequest, error)
	ListByManager(ctx context.Context, managerID uint) ([]models.InvestmentRequest, error)
	ListByStatus(ctx context.Context, status string) ([]models.InvestmentRequest, error)
	ListAll(ctx context.Context) ([]models.InvestmentRequest, error)

	// Transition re-reads the request and its owner's manager link
	// under a row lock, hands the fresh state to apply, and persists
	// the moderation fields plus a ModerationEvent atomically. If
	// apply returns an error nothing is written.
	Transition(ctx context.Context, id uint, apply func(request *models.InvestmentRequest) error) (*models.InvestmentRequest, error)
}

type investmentRepository struct {
	db *gorm.DB
}

func NewInvestmentRepository(db *gorm.DB) InvestmentRepository {
	return &investmentRepository{db: db}
}

func (r *investmentRepository) Create(ctx context.Context, request *models.InvestmentRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return fmt.Errorf("failed to create investment request: %w", err)
	}

	return r.db.WithContext(ctx).Preload("Owner").First(request, request.ID).Error
}

func (r *investmentRepository) FindByID(ctx context.Context, id uint) (*models.InvestmentRequest, error) {
	var request models.InvestmentRequest

	err := r.db.WithContext(ctx).Preload("Owner").Preload("Owner.Manager").First(&request, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("investment request %d not found", id)
		}
		return nil, fmt.Errorf("failed to find investment request %d: %w", id, err)
	}

	return &request, nil
}

func (r *investmentRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.InvestmentRequest, error) {
	var requests []models.InvestmentRequest

	err := r.db.WithContext(ctx).Preload("Owner").
		Where("user_id = ?", ownerID).Order("id DESC").Find(&requests).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list requests of owner %d: %w", ownerID, err)
	}

	return requests, nil
}

func (r *investmentRepository) ListByManager(ctx context.Context, managerID uint) ([]models.InvestmentRequest, error) {
	var requests []models.InvestmentRequest

	err := r.db.WithContext(ctx).Preload("Owner").
		Joins("JOIN users ON users.id = investment_requests.user_id").
		Where("users.manager_id = ?", managerID).
		Order("investment_requests.id DESC").
		Find(&requests).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list requests managed by %d: %w", managerID, err)
	}

	return requests, nil
}

func (r *investmentRepository) ListByStatus(ctx context.Context, status string) ([]models.InvestmentRequest, error) {
	var requests []models.InvestmentRequest

	err := r.db.WithContext(ctx).Preload("Owner").
		Where("status = ?", status).Order("id DESC").Find(&requests).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list requests with status %s: %w", status, err)
	}

	return requests, nil
}

func (r *investmentRepository) ListAll(ctx context.Context) ([]models.InvestmentRequest, error) {
	var requests []models.InvestmentRequest

	err := r.db.WithContext(ctx).Preload("Owner").Order("id DESC").Find(&requests).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list all requests: %w", err)
	}

	return requests, nil
}

func (r *investmentRepository) Transition(ctx context.Context, id uint, apply func(request *models.InvestmentRequest) error) (*models.InvestmentRequest, error) {
	var updated models.InvestmentRequest

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request models.InvestmentRequest

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, id).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("investment request %d not found", id)
			}
			return fmt.Errorf("failed to lock investment request %d: %w", id, err)
		}

		// The owner and their manager link are read inside the same
		// transaction so the relationship the policy sees is the one
		// that holds at commit time.
		var owner models.User

		if err := tx.Preload("Manager").First(&owner, request.UserID).Error; err != nil {
			return fmt.Errorf("failed to load owner of request %d: %w", id, err)
		}

		request.Owner = owner
		fromStatus := request.Status

		if err := apply(&request); err != nil {
			return err
		}

		err = tx.Model(&models.InvestmentRequest{}).Where("id = ?", request.ID).
			Updates(map[string]interface{}{
				"status":         request.Status,
				"moderated_at":   request.ModeratedAt,
				"moderator_id":   request.ModeratorID,
				"moderator_name": request.ModeratorName,
			}).Error

		if err != nil {
			return fmt.Errorf("failed to persist transition of request %d: %w", id, err)
		}

		details, err := json.Marshal(map[string]interface{}{
			"title":          request.Title,
			"amount":         request.Amount,
			"moderator_name": request.ModeratorName,
		})

		if err != nil {
			return fmt.Errorf("failed to encode moderation event: %w", err)
		}

		event := models.ModerationEvent{
			RequestID:  request.ID,
			ActorID:    *request.ModeratorID,
			FromStatus: fromStatus,
			ToStatus:   request.Status,
			Details:    datatypes.JSON(details),
		}

		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to record moderation event: %w", err)
		}

		updated = request

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &updated, nil
}
