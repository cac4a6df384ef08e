package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/epicsistemas10/meubolso/internal/services"
)

// DashboardHandler handles aggregated read requests.
type DashboardHandler struct {
	dashboardService   services.DashboardServicer
	transactionService services.TransactionServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer, transactionService services.TransactionServicer) *DashboardHandler {
	return &DashboardHandler{
		dashboardService:   dashboardService,
		transactionService: transactionService,
	}
}

// GetNetWorth handles the patrimony breakdown.
// @Summary     Get net worth
// @Description Get the patrimony breakdown: accounts, investments, goals, and assets
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.NetWorthBreakdown "Net worth breakdown"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/net-worth [get]
func (h *DashboardHandler) GetNetWorth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	breakdown, err := h.dashboardService.GetNetWorth(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

// GetSummary handles the aggregated monthly dashboard view.
// @Summary     Get dashboard summary
// @Description Get net worth, month totals, per-account summaries, and budgets in one response
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (1-12, default current)"
// @Param       year  query int false "Year (default current)"
// @Success     200 {object} services.DashboardSummary "Dashboard summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
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

	summary, err := h.dashboardService.GetSummary(userID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetAccountSummaries handles per-account month summaries.
// @Summary     Get per-account month summaries
// @Description Get income/expense sums per account for a calendar month
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (1-12, default current)"
// @Param       year  query int false "Year (default current)"
// @Success     200 {object} map[string]services.AccountMonthSummary "Per-account summaries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/accounts [get]
func (h *DashboardHandler) GetAccountSummaries(c *gin.Context) {
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

	summaries, err := h.transactionService.GetAccountMonthSummaries(userID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": summaries})
}
