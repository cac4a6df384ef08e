package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/epicsistemas10/meubolso/internal/config"
	apperrors "github.com/epicsistemas10/meubolso/internal/errors"
	"github.com/epicsistemas10/meubolso/internal/models"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db        *gorm.DB
	spentMode config.BudgetSpentMode
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, spentMode config.BudgetSpentMode) BudgetServicer {
	return &budgetService{db: db, spentMode: spentMode}
}

// BudgetProgress returns the percentage of the plan consumed, clamped to
// [0, 100]. A zero plan reports zero progress.
func BudgetProgress(planned, spent int64) float64 {
	if planned <= 0 {
		return 0
	}
	progress := float64(spent) / float64(planned) * 100
	if progress > 100 {
		return 100
	}
	if progress < 0 {
		return 0
	}
	return progress
}

// ClassifyBudget compares spending against the plan.
func ClassifyBudget(planned, spent int64) BudgetStatus {
	switch {
	case spent > planned:
		return BudgetStatusExceeded
	case spent == planned:
		return BudgetStatusMet
	default:
		return BudgetStatusInProgress
	}
}

// PreviousPeriod returns the month immediately before the given one, rolling
// the year back across January.
func PreviousPeriod(month, year int) (int, int) {
	if month == 1 {
		return 12, year - 1
	}
	return month - 1, year
}

func validPeriod(month, year int) error {
	if month < 1 || month > 12 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	if year < 1970 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid year")
	}
	return nil
}

// CreateBudget creates a budget for a category and month. One budget per
// category per month.
func (s *budgetService) CreateBudget(userID string, categoryID *string, month, year int, plannedAmount int64) (*models.Budget, error) {
	if err := validPeriod(month, year); err != nil {
		return nil, err
	}
	if plannedAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "planned amount must be greater than zero")
	}

	if categoryID != nil {
		var count int64
		if err := s.db.Model(&models.Category{}).Where("id = ? AND user_id = ?", *categoryID, userID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrCategoryNotFound
		}

		var existing int64
		if err := s.db.Model(&models.Budget{}).
			Where("user_id = ? AND category_id = ? AND month = ? AND year = ?", userID, *categoryID, month, year).
			Count(&existing).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if existing > 0 {
			return nil, apperrors.ErrDuplicateBudget
		}
	}

	budget := &models.Budget{
		UserID:        userID,
		CategoryID:    categoryID,
		Month:         month,
		Year:          year,
		PlannedAmount: plannedAmount,
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// ListBudgets returns the budgets of a month together with their derived
// progress figures. Spent amounts come from the stored counter or are
// recomputed from transactions, depending on the configured mode.
func (s *budgetService) ListBudgets(userID string, month, year int) ([]BudgetView, error) {
	if err := validPeriod(month, year); err != nil {
		return nil, err
	}

	var budgets []models.Budget
	if err := s.db.Preload("Category").
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Order("created_at").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	views := make([]BudgetView, 0, len(budgets))
	for _, b := range budgets {
		spent := b.SpentAmount
		if s.spentMode == config.SpentModeLive && b.CategoryID != nil {
			live, err := s.liveSpent(userID, *b.CategoryID, month, year)
			if err != nil {
				return nil, err
			}
			spent = live
			b.SpentAmount = live
		}
		views = append(views, BudgetView{
			Budget:    b,
			Progress:  BudgetProgress(b.PlannedAmount, spent),
			Remaining: b.PlannedAmount - spent,
			Status:    ClassifyBudget(b.PlannedAmount, spent),
		})
	}
	return views, nil
}

func (s *budgetService) liveSpent(userID, categoryID string, month, year int) (int64, error) {
	start, end := MonthWindow(month, year)

	var spent int64
	err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND category_id = ? AND type = ? AND date >= ? AND date < ?",
			userID, categoryID, models.TransactionTypeExpense, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&spent).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return spent, nil
}

// GetBudgetByID retrieves a budget by ID for a specific user.
func (s *budgetService) GetBudgetByID(userID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", budgetID, userID).
		First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget changes a budget's planned amount.
func (s *budgetService) UpdateBudget(userID, budgetID string, plannedAmount int64) (*models.Budget, error) {
	if plannedAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "planned amount must be greater than zero")
	}

	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(budget).Update("planned_amount", plannedAmount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	budget.PlannedAmount = plannedAmount
	return budget, nil
}

// DeleteBudget soft-deletes a budget.
func (s *budgetService) DeleteBudget(userID, budgetID string) error {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CopyForward re-creates the previous month's budgets in the given month with
// spent amounts reset to zero. Categories that already have a budget in the
// target month are skipped. The whole copy is atomic.
func (s *budgetService) CopyForward(userID string, month, year int) ([]models.Budget, error) {
	if err := validPeriod(month, year); err != nil {
		return nil, err
	}

	prevMonth, prevYear := PreviousPeriod(month, year)

	var previous []models.Budget
	if err := s.db.Where("user_id = ? AND month = ? AND year = ?", userID, prevMonth, prevYear).
		Find(&previous).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(previous) == 0 {
		return nil, apperrors.ErrNoPreviousBudgets
	}

	var existing []models.Budget
	if err := s.db.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Find(&existing).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	taken := make(map[string]bool, len(existing))
	for _, b := range existing {
		if b.CategoryID != nil {
			taken[*b.CategoryID] = true
		}
	}

	copies := make([]models.Budget, 0, len(previous))
	for _, b := range previous {
		if b.CategoryID != nil && taken[*b.CategoryID] {
			continue
		}
		copies = append(copies, models.Budget{
			UserID:        userID,
			CategoryID:    b.CategoryID,
			Month:         month,
			Year:          year,
			PlannedAmount: b.PlannedAmount,
		})
	}
	if len(copies) == 0 {
		return []models.Budget{}, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&copies).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return copies, nil
}
