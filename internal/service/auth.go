// Package service implements the approval workflow behind the HTTP
// layer: authentication, the identity and hierarchy store operations,
// and the request lifecycle engine. Every operation takes the acting
// identity explicitly; there is no ambient session state here.
package service

import (
	"context"
	"strings"

	"github.com/investflow-dev/investflow/internal/apperr"
	"github.com/investflow-dev/investflow/internal/auth"
	"github.com/investflow-dev/investflow/internal/models"
	"github.com/investflow-dev/investflow/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Username    string
	Password    string
	FirstName   string
	LastName    string
	Designation string
	PhoneNumber string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
}

type authService struct {
	users repository.UserRepository
}

func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))

	if username == "" {
		return nil, apperr.InvalidArgument("username must not be empty")
	}

	if len(input.Password) < 8 {
		return nil, apperr.InvalidArgument("password must be at least 8 characters")
	}

	exists, err := s.users.ExistsByUsername(ctx, username)

	if err != nil {
		return nil, err
	}

	if exists {
		return nil, apperr.InvalidArgument("username %s already exists", username)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)

	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Designation:  input.Designation,
		PhoneNumber:  input.PhoneNumber,
		Role:         models.RoleRegular,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := s.users.FindByUsername(ctx, username)

	if err != nil {
		if apperr.IsNotFound(err) {
			return "", nil, apperr.Forbidden("invalid username or password")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperr.Forbidden("invalid username or password")
	}

	token, err := auth.GenerateJWT(user.ID, user.Username)

	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
