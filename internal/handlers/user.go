package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/investflow-dev/investflow/internal/models"
	"github.com/investflow-dev/investflow/internal/service"
	"github.com/investflow-dev/investflow/internal/types"
	"github.com/investflow-dev/investflow/internal/utils"
)

type UpdateRoleRequest struct {
	UserID   uint   `json:"user_id" binding:"required"`
	RoleName string `json:"role_name" binding:"required"`
}

type AssignManagerRequest struct {
	UserID uint `json:"user_id" binding:"required"`
	// ManagerID zero or absent removes the link.
	ManagerID uint `json:"manager_id"`
}

type UserHandler struct {
	users service.UserService
}

func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	users, err := h.users.ListUsers(ctx.Request.Context(), currentUser)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, userResponses(users))
}

func (h *UserHandler) Subordinates(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	users, err := h.users.Subordinates(ctx.Request.Context(), currentUser)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, userResponses(users))
}

func (h *UserHandler) Get(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := utils.GetUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetUser(ctx.Request.Context(), currentUser, id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(*user))
}

func (h *UserHandler) UpdateRole(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateRoleRequest

	if err := ctx.BindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.users.UpdateRole(ctx.Request.Context(), currentUser, body.UserID, body.RoleName)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User role updated successfully",
		"user":    types.NewUserResponse(*user),
	})
}

func (h *UserHandler) AssignManager(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body AssignManagerRequest

	if err := ctx.BindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.users.AssignManager(ctx.Request.Context(), currentUser, body.UserID, body.ManagerID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Manager assigned successfully",
		"user":    types.NewUserResponse(*user),
	})
}

func userResponses(users []models.User) []types.UserResponse {
	responses := make([]types.UserResponse, 0, len(users))

	for _, user := range users {
		responses = append(responses, types.NewUserResponse(user))
	}

	return responses
}
