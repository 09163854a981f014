package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/investflow-dev/investflow/internal/models"
	"github.com/investflow-dev/investflow/internal/service"
	"github.com/investflow-dev/investflow/internal/types"
	"github.com/investflow-dev/investflow/internal/utils"
	"github.com/shopspring/decimal"
)

type CreateInvestmentRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

type InvestmentHandler struct {
	investments service.InvestmentService
}

func NewInvestmentHandler(investments service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investments: investments}
}

func (h *InvestmentHandler) Create(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateInvestmentRequest

	if err := ctx.BindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	request, err := h.investments.Create(ctx.Request.Context(), currentUser, service.CreateInvestmentInput{
		Title:       body.Title,
		Description: body.Description,
		Amount:      body.Amount,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewInvestmentResponse(*request))
}

func (h *InvestmentHandler) ListMine(ctx *gin.Context) {
	h.list(ctx, h.investments.ListMine)
}

func (h *InvestmentHandler) ListManaged(ctx *gin.Context) {
	h.list(ctx, h.investments.ListManaged)
}

func (h *InvestmentHandler) ListEscalated(ctx *gin.Context) {
	h.list(ctx, h.investments.ListEscalated)
}

func (h *InvestmentHandler) ListAll(ctx *gin.Context) {
	h.list(ctx, h.investments.ListAll)
}

func (h *InvestmentHandler) Approve(ctx *gin.Context) {
	h.moderate(ctx, h.investments.Approve)
}

func (h *InvestmentHandler) Reject(ctx *gin.Context) {
	h.moderate(ctx, h.investments.Reject)
}

func (h *InvestmentHandler) Escalate(ctx *gin.Context) {
	h.moderate(ctx, h.investments.Escalate)
}

func (h *InvestmentHandler) list(ctx *gin.Context, query func(context.Context, models.User) ([]models.InvestmentRequest, error)) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	requests, err := query(ctx.Request.Context(), currentUser)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewInvestmentResponses(requests))
}

func (h *InvestmentHandler) moderate(ctx *gin.Context, action func(context.Context, models.User, uint) (*models.InvestmentRequest, error)) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := utils.GetRequestID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := action(ctx.Request.Context(), currentUser, id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewInvestmentResponse(*request))
}
