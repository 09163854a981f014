package service

import (
	"context"
	"errors"
	"sync"

	"github.com/investflow-dev/investflow/internal/apperr"
	"github.com/investflow-dev/investflow/internal/models"
)

// =============================================================================
// Mock UserRepository
// =============================================================================

type mockUserRepository struct {
	findByIDFunc          func(ctx context.Context, id uint) (*models.User, error)
	findByUsernameFunc    func(ctx context.Context, username string) (*models.User, error)
	existsByUsernameFunc  func(ctx context.Context, username string) (bool, error)
	createFunc            func(ctx context.Context, user *models.User) error
	listFunc              func(ctx context.Context) ([]models.User, error)
	subordinatesFunc      func(ctx context.Context, managerID uint) ([]models.User, error)
	countSubordinatesFunc func(ctx context.Context, managerID uint) (int64, error)
	updateRoleFunc        func(ctx context.Context, id uint, role string) (*models.User, error)
	setManagerFunc        func(ctx context.Context, id uint, managerID *uint) (*models.User, error)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFunc != nil {
		return m.existsByUsernameFunc(ctx, username)
	}
	return false, errors.New("not implemented")
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepository) List(ctx context.Context) ([]models.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) Subordinates(ctx context.Context, managerID uint) ([]models.User, error) {
	if m.subordinatesFunc != nil {
		return m.subordinatesFunc(ctx, managerID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) CountSubordinates(ctx context.Context, managerID uint) (int64, error) {
	if m.countSubordinatesFunc != nil {
		return m.countSubordinatesFunc(ctx, managerID)
	}
	return 0, errors.New("not implemented")
}

func (m *mockUserRepository) UpdateRole(ctx context.Context, id uint, role string) (*models.User, error) {
	if m.updateRoleFunc != nil {
		return m.updateRoleFunc(ctx, id, role)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) SetManager(ctx context.Context, id uint, managerID *uint) (*models.User, error) {
	if m.setManagerFunc != nil {
		return m.setManagerFunc(ctx, id, managerID)
	}
	return nil, errors.New("not implemented")
}

// =============================================================================
// In-memory InvestmentRepository
// =============================================================================

// memInvestmentRepository mimics the transactional semantics of the
// real store: Transition hands a fresh copy to apply and commits only
// when apply succeeds, all under a store-wide lock.
type memInvestmentRepository struct {
	mu       sync.Mutex
	nextID   uint
	requests map[uint]models.InvestmentRequest
	owners   map[uint]models.User
	events   []models.ModerationEvent
}

func newMemInvestmentRepository(owners ...models.User) *memInvestmentRepository {
	repo := &memInvestmentRepository{
		nextID:   1,
		requests: make(map[uint]models.InvestmentRequest),
		owners:   make(map[uint]models.User),
	}

	for _, owner := range owners {
		repo.owners[owner.ID] = owner
	}

	return repo
}

func (r *memInvestmentRepository) Create(ctx context.Context, request *models.InvestmentRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	request.ID = r.nextID
	r.nextID++
	request.Owner = r.owners[request.UserID]
	r.requests[request.ID] = *request

	return nil
}

func (r *memInvestmentRepository) FindByID(ctx context.Context, id uint) (*models.InvestmentRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.requests[id]
	if !ok {
		return nil, apperr.NotFound("investment request %d not found", id)
	}

	request.Owner = r.owners[request.UserID]
	return &request, nil
}

func (r *memInvestmentRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.InvestmentRequest, error) {
	return r.listWhere(func(request models.InvestmentRequest) bool {
		return request.UserID == ownerID
	}), nil
}

func (r *memInvestmentRepository) ListByManager(ctx context.Context, managerID uint) ([]models.InvestmentRequest, error) {
	return r.listWhere(func(request models.InvestmentRequest) bool {
		owner := r.owners[request.UserID]
		return owner.ManagerID != nil && *owner.ManagerID == managerID
	}), nil
}

func (r *memInvestmentRepository) ListByStatus(ctx context.Context, status string) ([]models.InvestmentRequest, error) {
	return r.listWhere(func(request models.InvestmentRequest) bool {
		return request.Status == status
	}), nil
}

func (r *memInvestmentRepository) ListAll(ctx context.Context) ([]models.InvestmentRequest, error) {
	return r.listWhere(func(models.InvestmentRequest) bool { return true }), nil
}

func (r *memInvestmentRepository) listWhere(keep func(models.InvestmentRequest) bool) []models.InvestmentRequest {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []models.InvestmentRequest

	// Newest first, matching the real repository's ordering.
	for id := r.nextID; id > 0; id-- {
		request, ok := r.requests[id]
		if !ok {
			continue
		}
		request.Owner = r.owners[request.UserID]
		if keep(request) {
			result = append(result, request)
		}
	}

	return result
}

func (r *memInvestmentRepository) Transition(ctx context.Context, id uint, apply func(request *models.InvestmentRequest) error) (*models.InvestmentRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.requests[id]
	if !ok {
		return nil, apperr.NotFound("investment request %d not found", id)
	}

	fresh := stored
	fresh.Owner = r.owners[fresh.UserID]
	fromStatus := fresh.Status

	if err := apply(&fresh); err != nil {
		return nil, err
	}

	r.requests[id] = fresh
	r.events = append(r.events, models.ModerationEvent{
		RequestID:  id,
		ActorID:    *fresh.ModeratorID,
		FromStatus: fromStatus,
		ToStatus:   fresh.Status,
	})

	return &fresh, nil
}
