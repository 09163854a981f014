package service

import (
	"context"

	"github.com/investflow-dev/investflow/internal/apperr"
	"github.com/investflow-dev/investflow/internal/models"
	"github.com/investflow-dev/investflow/internal/policy"
	"github.com/investflow-dev/investflow/internal/repository"
)

type UserService interface {
	// ListUsers returns every user for admins and direct subordinates
	// for managers.
	ListUsers(ctx context.Context, actor models.User) ([]models.User, error)
	GetUser(ctx context.Context, actor models.User, id uint) (*models.User, error)
	Subordinates(ctx context.Context, actor models.User) ([]models.User, error)
	UpdateRole(ctx context.Context, actor models.User, userID uint, roleName string) (*models.User, error)
	AssignManager(ctx context.Context, actor models.User, userID uint, managerID uint) (*models.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) ListUsers(ctx context.Context, actor models.User) ([]models.User, error) {
	switch actor.Role {
	case models.RoleAdmin:
		return s.users.List(ctx)
	case models.RoleManager:
		return s.users.Subordinates(ctx, actor.ID)
	default:
		return nil, apperr.Forbidden("only managers and admins can list users")
	}
}

func (s *userService) GetUser(ctx context.Context, actor models.User, id uint) (*models.User, error) {
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleManager {
		return nil, apperr.Forbidden("only managers and admins can look up users")
	}

	return s.users.FindByID(ctx, id)
}

func (s *userService) Subordinates(ctx context.Context, actor models.User) ([]models.User, error) {
	if actor.Role != models.RoleManager {
		return nil, apperr.Forbidden("only managers have subordinates")
	}

	return s.users.Subordinates(ctx, actor.ID)
}

func (s *userService) UpdateRole(ctx context.Context, actor models.User, userID uint, roleName string) (*models.User, error) {
	if !policy.CanAdminister(actor) {
		return nil, apperr.Forbidden("only admins can update user roles")
	}

	if !models.ValidRole(roleName) {
		return nil, apperr.InvalidArgument("unknown role %s", roleName)
	}

	target, err := s.users.FindByID(ctx, userID)

	if err != nil {
		return nil, err
	}

	if target.ID == actor.ID {
		return nil, apperr.Forbidden("admins cannot change their own role")
	}

	if target.Role == models.RoleAdmin && roleName != models.RoleAdmin {
		return nil, apperr.Forbidden("admins cannot be demoted")
	}

	if target.Role == models.RoleManager && roleName != models.RoleManager {
		count, err := s.users.CountSubordinates(ctx, target.ID)

		if err != nil {
			return nil, err
		}

		// Demotion with active subordinates is rejected rather than
		// cascade-cleared; the admin must reassign them first.
		if count > 0 {
			return nil, apperr.InvalidState("user %d still manages %d users", target.ID, count)
		}
	}

	return s.users.UpdateRole(ctx, target.ID, roleName)
}

func (s *userService) AssignManager(ctx context.Context, actor models.User, userID uint, managerID uint) (*models.User, error) {
	if !policy.CanAdminister(actor) {
		return nil, apperr.Forbidden("only admins can assign managers")
	}

	target, err := s.users.FindByID(ctx, userID)

	if err != nil {
		return nil, err
	}

	if target.Role != models.RoleRegular {
		return nil, apperr.InvalidArgument("only regular users can be assigned a manager")
	}

	// managerID zero clears the link.
	if managerID == 0 {
		return s.users.SetManager(ctx, target.ID, nil)
	}

	if managerID == target.ID {
		return nil, apperr.InvalidArgument("user cannot be their own manager")
	}

	manager, err := s.users.FindByID(ctx, managerID)

	if err != nil {
		return nil, err
	}

	if manager.Role != models.RoleManager {
		return nil, apperr.InvalidArgument("user %d does not hold the manager role", managerID)
	}

	return s.users.SetManager(ctx, target.ID, &manager.ID)
}
