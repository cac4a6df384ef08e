package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/epicsistemas10/meubolso/internal/errors"
	"github.com/epicsistemas10/meubolso/internal/models"
	"github.com/epicsistemas10/meubolso/internal/pagination"
	"github.com/epicsistemas10/meubolso/internal/services"
)

// InvestmentHandler handles investment-related requests.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
	auditService      services.AuditServicer
	dashboardService  services.DashboardServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer, auditService services.AuditServicer, dashboardService services.DashboardServicer) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
		auditService:      auditService,
		dashboardService:  dashboardService,
	}
}

// CreateInvestmentRequest represents the request payload for creating an
// investment.
type CreateInvestmentRequest struct {
	Name           string                `json:"name" binding:"required,min=1,max=100"`
	Type           models.InvestmentType `json:"type" binding:"required,investment_type"`
	InvestedAmount int64                 `json:"invested_amount" binding:"required,gt=0"`
	CurrentValue   int64                 `json:"current_value" binding:"gte=0"`
	Ticker         string                `json:"ticker" binding:"max=20"`
	Quantity       float64               `json:"quantity" binding:"gte=0"`
	Rate           string                `json:"rate" binding:"max=50"`
	Notes          string                `json:"notes" binding:"max=500"`
}

// UpdateInvestmentValueRequest represents the request payload for marking an
// investment to market.
type UpdateInvestmentValueRequest struct {
	CurrentValue int64 `json:"current_value" binding:"gte=0"`
}

// CreateInvestment handles recording a new investment position.
// @Summary     Create an investment
// @Description Record a new investment position
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInvestmentRequest true "Investment details"
// @Success     201 {object} models.Investment "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [post]
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.CreateInvestment(userID, services.InvestmentFields{
		Name:           req.Name,
		Type:           req.Type,
		InvestedAmount: req.InvestedAmount,
		CurrentValue:   req.CurrentValue,
		Ticker:         req.Ticker,
		Quantity:       req.Quantity,
		Rate:           req.Rate,
		Notes:          req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_INVESTMENT", "investment", investment.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "type": req.Type, "invested_amount": req.InvestedAmount})
	h.dashboardService.InvalidateUser(userID)

	c.JSON(http.StatusCreated, gin.H{"investment": investment})
}

// GetInvestments handles listing investments for the authenticated user.
// @Summary     Get investments
// @Description Get a paginated list of investments
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Investment] "Paginated investments"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [get]
func (h *InvestmentHandler) GetInvestments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.investmentService.GetUserInvestments(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetInvestmentTotals handles aggregating the user's positions.
// @Summary     Get investment totals
// @Description Get invested/current/gain sums across all positions
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.InvestmentTotals "Aggregated totals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/totals [get]
func (h *InvestmentHandler) GetInvestmentTotals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.investmentService.GetTotals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, totals)
}

// UpdateInvestmentValue handles marking a position to market.
// @Summary     Update investment value
// @Description Mark an investment to its current market value
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                       true "Investment ID"
// @Param       request body UpdateInvestmentValueRequest true "Current value"
// @Success     200 {object} models.Investment "Updated investment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/value [put]
func (h *InvestmentHandler) UpdateInvestmentValue(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInvestmentValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.UpdateCurrentValue(userID, investmentID, req.CurrentValue)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_INVESTMENT_VALUE", "investment", investment.ID, c.ClientIP(),
		map[string]interface{}{"current_value": req.CurrentValue})
	h.dashboardService.InvalidateUser(userID)

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// DeleteInvestment handles deleting an investment.
// @Summary     Delete an investment
// @Description Delete an investment position
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     204 "Investment deleted"
// @Failure     400 {object} ErrorResponse "Invalid investment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [delete]
func (h *InvestmentHandler) DeleteInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.investmentService.DeleteInvestment(userID, investmentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_INVESTMENT", "investment", investmentID, c.ClientIP(), nil)
	h.dashboardService.InvalidateUser(userID)

	c.Status(http.StatusNoContent)
}
