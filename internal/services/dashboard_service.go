package services

import (
	"gorm.io/gorm"

	"github.com/epicsistemas10/meubolso/internal/cache"
	apperrors "github.com/epicsistemas10/meubolso/internal/errors"
	"github.com/epicsistemas10/meubolso/internal/models"
)

// dashboardService aggregates the read models behind the principal screen.
// Summaries are cached briefly per user and period; every mutation handler
// invalidates the user's entries.
type dashboardService struct {
	db                 *gorm.DB
	transactionService TransactionServicer
	budgetService      BudgetServicer
	investmentService  InvestmentServicer
	summaryCache       *cache.SummaryCache
	includeGoals       bool
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(
	db *gorm.DB,
	transactionService TransactionServicer,
	budgetService BudgetServicer,
	investmentService InvestmentServicer,
	summaryCache *cache.SummaryCache,
	includeGoals bool,
) DashboardServicer {
	return &dashboardService{
		db:                 db,
		transactionService: transactionService,
		budgetService:      budgetService,
		investmentService:  investmentService,
		summaryCache:       summaryCache,
		includeGoals:       includeGoals,
	}
}

// GetNetWorth sums the user's patrimony: account balances, investment values,
// goal amounts, and asset estimates. Goal deposits also sit in each goal's
// savings account, so including goals double-counts them; that matches the
// headline figure users expect and can be turned off in configuration.
func (s *dashboardService) GetNetWorth(userID string) (*NetWorthBreakdown, error) {
	breakdown := &NetWorthBreakdown{}

	if err := s.db.Model(&models.Account{}).Where("user_id = ?", userID).
		Select("COALESCE(SUM(balance), 0)").Scan(&breakdown.Accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	investmentTotals, err := s.investmentService.GetTotals(userID)
	if err != nil {
		return nil, err
	}
	breakdown.Investments = investmentTotals.Current

	if err := s.db.Model(&models.Goal{}).Where("user_id = ?", userID).
		Select("COALESCE(SUM(current_amount), 0)").Scan(&breakdown.Goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(&models.Asset{}).Where("user_id = ?", userID).
		Select("COALESCE(SUM(estimated_value), 0)").Scan(&breakdown.Assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	breakdown.Total = breakdown.Accounts + breakdown.Investments + breakdown.Assets
	if s.includeGoals {
		breakdown.Total += breakdown.Goals
	}
	return breakdown, nil
}

// GetSummary returns the aggregated dashboard view for a month, served from
// cache when fresh.
func (s *dashboardService) GetSummary(userID string, month, year int) (*DashboardSummary, error) {
	if cached, ok := s.summaryCache.Get(userID, month, year); ok {
		if summary, ok := cached.(*DashboardSummary); ok {
			return summary, nil
		}
	}

	netWorth, err := s.GetNetWorth(userID)
	if err != nil {
		return nil, err
	}

	totals, err := s.transactionService.GetMonthTotals(userID, month, year)
	if err != nil {
		return nil, err
	}

	accountSummary, err := s.transactionService.GetAccountMonthSummaries(userID, month, year)
	if err != nil {
		return nil, err
	}

	budgets, err := s.budgetService.ListBudgets(userID, month, year)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		NetWorth:       *netWorth,
		MonthTotals:    *totals,
		AccountSummary: accountSummary,
		Budgets:        budgets,
	}
	s.summaryCache.Set(userID, month, year, summary)
	return summary, nil
}

// InvalidateUser drops any cached summaries for the user after a mutation.
func (s *dashboardService) InvalidateUser(userID string) {
	s.summaryCache.Invalidate(userID)
}
