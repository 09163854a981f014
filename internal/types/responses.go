package types

import (
	"time"

	"github.com/investflow-dev/investflow/internal/models"
	"github.com/shopspring/decimal"
)

type UserResponse struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Designation string `json:"designation"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
	ManagerID   *uint  `json:"manager_id,omitempty"`
	ManagerName string `json:"manager_name,omitempty"`
}

type InvestmentResponse struct {
	ID            uint            `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	ModeratedAt   *time.Time      `json:"moderated_at,omitempty"`
	UserID        uint            `json:"user_id"`
	Username      string          `json:"username"`
	ModeratorID   *uint           `json:"moderator_id,omitempty"`
	ModeratorName string          `json:"moderator_name,omitempty"`
}

func NewUserResponse(user models.User) UserResponse {
	resp := UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Designation: user.Designation,
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role,
	}

	if user.HasManager() {
		resp.ManagerID = user.ManagerID
		resp.ManagerName = user.Manager.Username
	}

	return resp
}

func NewInvestmentResponse(request models.InvestmentRequest) InvestmentResponse {
	return InvestmentResponse{
		ID:            request.ID,
		Title:         request.Title,
		Description:   request.Description,
		Amount:        request.Amount,
		Status:        request.Status,
		CreatedAt:     request.CreatedAt,
		ModeratedAt:   request.ModeratedAt,
		UserID:        request.UserID,
		Username:      request.Owner.Username,
		ModeratorID:   request.ModeratorID,
		ModeratorName: request.ModeratorName,
	}
}

func NewInvestmentResponses(requests []models.InvestmentRequest) []InvestmentResponse {
	responses := make([]InvestmentResponse, 0, len(requests))

	for _, request := range requests {
		responses = append(responses, NewInvestmentResponse(request))
	}

	return responses
}
