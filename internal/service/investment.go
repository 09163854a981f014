package service

import (
	"context"
	"strings"
	"time"

	"github.com/investflow-dev/investflow/internal/apperr"
	"github.com/investflow-dev/investflow/internal/models"
	"github.com/investflow-dev/investflow/internal/policy"
	"github.com/investflow-dev/investflow/internal/repository"
	"github.com/shopspring/decimal"
)

type CreateInvestmentInput struct {
	Title       string
	Description string
	Amount      decimal.Decimal
}

// InvestmentService is the request lifecycle engine plus the
// per-view visibility router.
type InvestmentService interface {
	Create(ctx context.Context, actor models.User, input CreateInvestmentInput) (*models.InvestmentRequest, error)

	ListMine(ctx context.Context, actor models.User) ([]models.InvestmentRequest, error)
	ListManaged(ctx context.Context, actor models.User) ([]models.InvestmentRequest, error)
	ListEscalated(ctx context.Context, actor models.User) ([]models.InvestmentRequest, error)
	ListAll(ctx context.Context, actor models.User) ([]models.InvestmentRequest, error)

	Approve(ctx context.Context, actor models.User, id uint) (*models.InvestmentRequest, error)
	Reject(ctx context.Context, actor models.User, id uint) (*models.InvestmentRequest, error)
	Escalate(ctx context.Context, actor models.User, id uint) (*models.InvestmentRequest, error)
}

type investmentService struct {
	investments repository.InvestmentRepository
	locks       *keyLock
}

func NewInvestmentService(investments repository.InvestmentRepository) InvestmentService {
	return &investmentService{
		investments: investments,
		locks:       newKeyLock(),
	}
}

func (s *investmentService) Create(ctx context.Context, actor models.User, input CreateInvestmentInput) (*models.InvestmentRequest, error) {
	title := strings.TrimSpace(input.Title)

	if title == "" {
		return nil, apperr.InvalidArgument("title must not be empty")
	}

	if !input.Amount.IsPositive() {
		return nil, apperr.InvalidArgument("amount must be strictly positive")
	}

	request := models.InvestmentRequest{
		Title:       title,
		Description: input.Description,
		Amount:      input.Amount,
		UserID:      actor.ID,
		Status:      models.StatusPending,
	}

	if err := s.investments.Create(ctx, &request); err != nil {
		return nil, err
	}

	return &request, nil
}

func (s *investmentService) ListMine(ctx context.Context, actor models.User) ([]models.InvestmentRequest, error) {
	return s.investments.ListByOwner(ctx, actor.ID)
}

func (s *investmentService) ListManaged(ctx context.Context, actor models.User) ([]models.InvestmentRequest, error) {
	switch actor.Role {
	case models.RoleAdmin:
		// Admins get the authoritative full set; no escalated+managed
		// recomposition on the client side.
		return s.investments.ListAll(ctx)
	case models.RoleManager:
		requests, err := s.investments.ListByManager(ctx, actor.ID)

		if err != nil {
			return nil, err
		}

		return filterVisible(actor, policy.ViewManaged, requests), nil
	default:
		return nil, apperr.Forbidden("only managers and admins can view managed requests")
	}
}

func (s *investmentService) ListEscalated(ctx context.Context, actor models.User) ([]models.InvestmentRequest, error) {
	if actor.Role != models.RoleAdmin {
		return nil, apperr.Forbidden("only admins can view escalated requests")
	}

	return s.investments.ListByStatus(ctx, models.StatusEscalated)
}

func (s *investmentService) ListAll(ctx context.Context, actor models.User) ([]models.InvestmentRequest, error) {
	if actor.Role != models.RoleAdmin {
		return nil, apperr.Forbidden("only admins can view all requests")
	}

	return s.investments.ListAll(ctx)
}

func (s *investmentService) Approve(ctx context.Context, actor models.User, id uint) (*models.InvestmentRequest, error) {
	return s.transition(ctx, actor, id, policy.ActionApprove, models.StatusApproved)
}

func (s *investmentService) Reject(ctx context.Context, actor models.User, id uint) (*models.InvestmentRequest, error) {
	return s.transition(ctx, actor, id, policy.ActionReject, models.StatusRejected)
}

func (s *investmentService) Escalate(ctx context.Context, actor models.User, id uint) (*models.InvestmentRequest, error) {
	return s.transition(ctx, actor, id, policy.ActionEscalate, models.StatusEscalated)
}

// transition serializes on the request id and validates against the
// state read under the repository's row lock, so a stale view can
// never commit and a demoted manager cannot slip a transition through.
func (s *investmentService) transition(ctx context.Context, actor models.User, id uint, action policy.Action, toStatus string) (*models.InvestmentRequest, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	return s.investments.Transition(ctx, id, func(request *models.InvestmentRequest) error {
		if !policy.ValidTransition(request.Status, action) {
			return apperr.InvalidTransition("cannot %s a %s request", action, request.Status)
		}

		if !policy.CanModerate(actor, *request, action) {
			return apperr.Forbidden("no permission to %s request %d", action, id)
		}

		now := time.Now()

		request.Status = toStatus
		request.ModeratedAt = &now
		request.ModeratorID = &actor.ID
		request.ModeratorName = actor.DisplayName()

		return nil
	})
}

// filterVisible keeps only the requests the policy admits into the
// view. The repository queries already narrow the set; this is the
// final gate against leaking anything the caller may not see.
func filterVisible(actor models.User, view policy.View, requests []models.InvestmentRequest) []models.InvestmentRequest {
	visible := make([]models.InvestmentRequest, 0, len(requests))

	for _, request := range requests {
		if policy.CanView(actor, view, request) {
			visible = append(visible, request)
		}
	}

	return visible
}
