package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/epicsistemas10/meubolso/internal/errors"
	"github.com/epicsistemas10/meubolso/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService    services.BudgetServicer
	auditService     services.AuditServicer
	dashboardService services.DashboardServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer, dashboardService services.DashboardServicer) *BudgetHandler {
	return &BudgetHandler{
		budgetService:    budgetService,
		auditService:     auditService,
		dashboardService: dashboardService,
	}
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	CategoryID    *string `json:"category_id" binding:"required"`
	Month         int     `json:"month" binding:"required,min=1,max=12"`
	Year          int     `json:"year" binding:"required,min=1970"`
	PlannedAmount int64   `json:"planned_amount" binding:"required,gt=0"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
type UpdateBudgetRequest struct {
	PlannedAmount int64 `json:"planned_amount" binding:"required,gt=0"`
}

// CopyForwardRequest represents the request payload for copying budgets from
// the previous month.
type CopyForwardRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=1970"`
}

// CreateBudget handles the creation of a new budget.
// @Summary     Create a budget
// @Description Create a budget for a category and month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Budget already exists for this category and month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.CreateBudget(userID, req.CategoryID, req.Month, req.Year, req.PlannedAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"month": req.Month, "year": req.Year, "planned_amount": req.PlannedAmount})
	h.dashboardService.InvalidateUser(userID)

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets handles listing a month's budgets with progress figures.
// @Summary     Get budgets
// @Description Get the budgets of a month with progress, remaining amount, and status
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (1-12, default current)"
// @Param       year  query int false "Year (default current)"
// @Success     200 {array} services.BudgetView "Budgets with progress"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, year, err := monthYearQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgets, err := h.budgetService.ListBudgets(userID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// UpdateBudget handles changing a budget's planned amount.
// @Summary     Update a budget
// @Description Change a budget's planned amount
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Budget ID"
// @Param       request body UpdateBudgetRequest true "Budget fields"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.UpdateBudget(userID, budgetID, req.PlannedAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"planned_amount": req.PlannedAmount})
	h.dashboardService.InvalidateUser(userID)

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget handles deleting a budget.
// @Summary     Delete a budget
// @Description Delete a budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Success     204 "Budget deleted"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(userID, budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_BUDGET", "budget", budgetID, c.ClientIP(), nil)
	h.dashboardService.InvalidateUser(userID)

	c.Status(http.StatusNoContent)
}

// CopyForward handles re-creating the previous month's budgets.
// @Summary     Copy budgets forward
// @Description Re-create the previous month's budgets in the given month with spent amounts reset
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CopyForwardRequest true "Target month"
// @Success     201 {array} models.Budget "Created budgets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No budgets in the previous month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/copy-forward [post]
func (h *BudgetHandler) CopyForward(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CopyForwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budgets, err := h.budgetService.CopyForward(userID, req.Month, req.Year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "COPY_BUDGETS", "budget", "", c.ClientIP(),
		map[string]interface{}{"month": req.Month, "year": req.Year, "count": len(budgets)})
	h.dashboardService.InvalidateUser(userID)

	c.JSON(http.StatusCreated, gin.H{"budgets": budgets})
}
