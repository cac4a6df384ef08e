package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/epicsistemas10/meubolso/internal/errors"
	"github.com/epicsistemas10/meubolso/internal/models"
	"github.com/epicsistemas10/meubolso/internal/services"
)

// GoalHandler handles goal-related requests.
type GoalHandler struct {
	goalService      services.GoalServicer
	auditService     services.AuditServicer
	dashboardService services.DashboardServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, auditService services.AuditServicer, dashboardService services.DashboardServicer) *GoalHandler {
	return &GoalHandler{
		goalService:      goalService,
		auditService:     auditService,
		dashboardService: dashboardService,
	}
}

// CreateGoalRequest represents the request payload for creating a goal.
type CreateGoalRequest struct {
	Name          string    `json:"name" binding:"required,min=1,max=100"`
	TargetAmount  int64     `json:"target_amount" binding:"required,gt=0"`
	InitialAmount int64     `json:"initial_amount" binding:"gte=0"`
	Deadline      time.Time `json:"deadline" binding:"required"`
	Icon          string    `json:"icon" binding:"max=50"`
	Color         string    `json:"color" binding:"omitempty,hex_color"`
}

// UpdateGoalRequest represents the request payload for updating a goal.
type UpdateGoalRequest struct {
	Name         *string    `json:"name" binding:"omitempty,min=1,max=100"`
	TargetAmount *int64     `json:"target_amount" binding:"omitempty,gt=0"`
	Deadline     *time.Time `json:"deadline"`
	Icon         *string    `json:"icon" binding:"omitempty,max=50"`
	Color        *string    `json:"color" binding:"omitempty,hex_color"`
}

// DepositRequest represents the request payload for a goal deposit.
type DepositRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// ChangeGoalStatusRequest represents the request payload for a status change.
type ChangeGoalStatusRequest struct {
	Status models.GoalStatus `json:"status" binding:"required,goal_status"`
}

// CreateGoal handles the creation of a new goal.
// @Summary     Create a goal
// @Description Create a goal together with its dedicated savings account
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} models.Goal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.CreateGoal(userID, services.GoalFields{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		InitialAmount: req.InitialAmount,
		Deadline:      req.Deadline,
		Icon:          req.Icon,
		Color:         req.Color,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_GOAL", "goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "target_amount": req.TargetAmount})
	h.dashboardService.InvalidateUser(userID)

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetGoals handles listing goals with derived savings guidance.
// @Summary     Get goals
// @Description Get the user's goals with progress and required monthly deposit, plus per-status counts
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       status query string false "Filter by status (active/paused/completed)"
// @Success     200 {array} services.GoalView "Goals with guidance"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var status *models.GoalStatus
	if v := c.Query("status"); v != "" {
		s := models.GoalStatus(v)
		switch s {
		case models.GoalStatusActive, models.GoalStatusPaused, models.GoalStatusCompleted:
			status = &s
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be 'active', 'paused', or 'completed'"))
			return
		}
	}

	goals, counts, err := h.goalService.GetUserGoals(userID, status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals, "counts": counts})
}

// GetGoal handles retrieving a specific goal.
// @Summary     Get goal by ID
// @Description Get a specific goal by ID, including its savings account
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {object} models.Goal "Goal details"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoalByID(userID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// UpdateGoal handles updating a goal's editable fields.
// @Summary     Update a goal
// @Description Update a goal's name, target, deadline, icon, or color
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Goal ID"
// @Param       request body UpdateGoalRequest true "Goal fields"
// @Success     200 {object} models.Goal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     409 {object} ErrorResponse "Goal is completed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.UpdateGoal(userID, goalID, req.Name, req.TargetAmount, req.Deadline, req.Icon, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_GOAL", "goal", goal.ID, c.ClientIP(), nil)
	h.dashboardService.InvalidateUser(userID)

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// Deposit handles depositing into a goal.
// @Summary     Deposit into a goal
// @Description Credit the goal's savings account, record the income transaction, and advance the goal, atomically
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Goal ID"
// @Param       request body DepositRequest true "Deposit amount"
// @Success     200 {object} models.Goal "Goal after deposit"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     409 {object} ErrorResponse "Goal is paused or completed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id}/deposit [post]
func (h *GoalHandler) Deposit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.Deposit(userID, goalID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "GOAL_DEPOSIT", "goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount})
	h.dashboardService.InvalidateUser(userID)

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// ChangeStatus handles pausing, reactivating, or completing a goal.
// @Summary     Change goal status
// @Description Move a goal between active and paused, or mark it completed; completed is terminal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                  true "Goal ID"
// @Param       request body ChangeGoalStatusRequest true "New status"
// @Success     200 {object} models.Goal "Goal with new status"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     409 {object} ErrorResponse "Goal is completed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id}/status [put]
func (h *GoalHandler) ChangeStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ChangeGoalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.ChangeStatus(userID, goalID, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CHANGE_GOAL_STATUS", "goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"status": req.Status})
	h.dashboardService.InvalidateUser(userID)

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal handles deleting a goal and its savings account.
// @Summary     Delete a goal
// @Description Delete a goal together with its savings account
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     204 "Goal deleted"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(userID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_GOAL", "goal", goalID, c.ClientIP(), nil)
	h.dashboardService.InvalidateUser(userID)

	c.Status(http.StatusNoContent)
}
