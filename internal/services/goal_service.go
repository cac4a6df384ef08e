package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/epicsistemas10/meubolso/internal/errors"
	"github.com/epicsistemas10/meubolso/internal/models"
)

// goalService handles the goal ledger. Every multi-write operation (create,
// deposit, delete) runs inside one database transaction so the goal, its
// savings account, and the statement can never drift apart.
type goalService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB, accountService AccountServicer) GoalServicer {
	return &goalService{db: db, accountService: accountService}
}

// GoalProgress returns the percentage of the target reached, clamped to
// [0, 100]. A zero target reports zero progress.
func GoalProgress(current, target int64) float64 {
	if target <= 0 {
		return 0
	}
	progress := float64(current) / float64(target) * 100
	if progress > 100 {
		return 100
	}
	if progress < 0 {
		return 0
	}
	return progress
}

// MonthsRemaining counts 30-day periods until the deadline, rounding up.
// Past or imminent deadlines still report one month so the required deposit
// stays finite.
func MonthsRemaining(deadline, now time.Time) int {
	days := deadline.Sub(now).Hours() / 24
	months := int(math.Ceil(days / 30))
	if months < 1 {
		return 1
	}
	return months
}

// RequiredMonthlyDeposit returns how much must be saved per remaining month
// to reach the target, rounding up. A met target requires nothing.
func RequiredMonthlyDeposit(target, current int64, monthsRemaining int) int64 {
	remaining := target - current
	if remaining <= 0 {
		return 0
	}
	if monthsRemaining < 1 {
		monthsRemaining = 1
	}
	months := int64(monthsRemaining)
	return (remaining + months - 1) / months
}

// CreateGoal creates a goal together with its dedicated savings account. A
// non-zero initial amount is credited to the account and recorded as an
// income transaction.
func (s *goalService) CreateGoal(userID string, fields GoalFields) (*models.Goal, error) {
	if fields.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if fields.TargetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}
	if fields.InitialAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "initial amount cannot be negative")
	}
	if fields.Deadline.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "deadline is required")
	}

	var goal *models.Goal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		account := &models.Account{
			UserID:  userID,
			Name:    "Poupança - " + fields.Name,
			Type:    models.AccountTypeSavings,
			Balance: fields.InitialAmount,
			Icon:    fields.Icon,
			Color:   fields.Color,
		}
		if err := tx.Create(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if fields.InitialAmount > 0 {
			transaction := &models.Transaction{
				UserID:      userID,
				AccountID:   &account.ID,
				Type:        models.TransactionTypeIncome,
				Amount:      fields.InitialAmount,
				Description: "Depósito inicial - " + fields.Name,
				Date:        time.Now(),
			}
			if err := tx.Create(transaction).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		goal = &models.Goal{
			UserID:           userID,
			Name:             fields.Name,
			TargetAmount:     fields.TargetAmount,
			CurrentAmount:    fields.InitialAmount,
			Deadline:         fields.Deadline,
			Icon:             fields.Icon,
			Color:            fields.Color,
			SavingsAccountID: account.ID,
			Status:           models.GoalStatusActive,
		}
		if fields.InitialAmount >= fields.TargetAmount {
			goal.Status = models.GoalStatusCompleted
		}
		if err := tx.Create(goal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// GetUserGoals returns the user's goals with derived savings guidance,
// optionally filtered by status, plus the per-status counts for the full set.
func (s *goalService) GetUserGoals(userID string, status *models.GoalStatus) ([]GoalView, *GoalStatusCounts, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := time.Now()
	counts := &GoalStatusCounts{All: len(goals)}
	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		effective := g.EffectiveStatus()
		switch effective {
		case models.GoalStatusActive:
			counts.Active++
		case models.GoalStatusPaused:
			counts.Paused++
		case models.GoalStatusCompleted:
			counts.Completed++
		}

		if status != nil && effective != *status {
			continue
		}

		months := MonthsRemaining(g.Deadline, now)
		views = append(views, GoalView{
			Goal:                   g,
			Progress:               GoalProgress(g.CurrentAmount, g.TargetAmount),
			MonthsRemaining:        months,
			RequiredMonthlyDeposit: RequiredMonthlyDeposit(g.TargetAmount, g.CurrentAmount, months),
		})
	}
	return views, counts, nil
}

// GetGoalByID retrieves a goal by ID for a specific user.
func (s *goalService) GetGoalByID(userID, goalID string) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Preload("SavingsAccount").
		Where("id = ? AND user_id = ?", goalID, userID).
		First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal updates a goal's editable fields. Completed goals are frozen.
func (s *goalService) UpdateGoal(userID, goalID string, name *string, targetAmount *int64, deadline *time.Time, icon, color *string) (*models.Goal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal.EffectiveStatus() == models.GoalStatusCompleted {
		return nil, apperrors.ErrGoalCompleted
	}

	updates := make(map[string]interface{})
	if name != nil && *name != "" {
		updates["name"] = *name
	}
	if targetAmount != nil {
		if *targetAmount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
		}
		updates["target_amount"] = *targetAmount
	}
	if deadline != nil && !deadline.IsZero() {
		updates["deadline"] = *deadline
	}
	if icon != nil {
		updates["icon"] = *icon
	}
	if color != nil {
		updates["color"] = *color
	}

	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetGoalByID(userID, goalID)
}

// Deposit moves an amount into the goal: the savings account balance, an
// income transaction on its statement, and the goal's current amount all move
// together or not at all. Reaching the target completes the goal.
func (s *goalService) Deposit(userID, goalID string, amount int64) (*models.Goal, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "deposit amount must be greater than zero")
	}

	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}
	switch goal.EffectiveStatus() {
	case models.GoalStatusCompleted:
		return nil, apperrors.ErrGoalCompleted
	case models.GoalStatusPaused:
		return nil, apperrors.ErrGoalPaused
	}

	account, err := s.accountService.GetAccountByID(userID, goal.SavingsAccountID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.accountService.AdjustBalance(tx, account, models.TransactionTypeIncome, amount); err != nil {
			return err
		}

		transaction := &models.Transaction{
			UserID:      userID,
			AccountID:   &account.ID,
			Type:        models.TransactionTypeIncome,
			Amount:      amount,
			Description: "Depósito - " + goal.Name,
			Date:        time.Now(),
		}
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		goal.CurrentAmount += amount
		updates := map[string]interface{}{"current_amount": goal.CurrentAmount}
		if goal.CurrentAmount >= goal.TargetAmount {
			goal.Status = models.GoalStatusCompleted
			updates["status"] = models.GoalStatusCompleted
		}
		if err := tx.Model(goal).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// ChangeStatus moves a goal between active and paused, or marks it completed.
// Completed is terminal.
func (s *goalService) ChangeStatus(userID, goalID string, status models.GoalStatus) (*models.Goal, error) {
	switch status {
	case models.GoalStatusActive, models.GoalStatusPaused, models.GoalStatusCompleted:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid goal status")
	}

	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal.EffectiveStatus() == models.GoalStatusCompleted && status != models.GoalStatusCompleted {
		return nil, apperrors.ErrGoalCompleted
	}

	if err := s.db.Model(goal).Update("status", status).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	goal.Status = status
	return goal, nil
}

// DeleteGoal deletes a goal and its savings account together. The account's
// goal-ownership guard does not apply here because the cascade is the one
// sanctioned path.
func (s *goalService) DeleteGoal(userID, goalID string) error {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(goal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("id = ? AND user_id = ?", goal.SavingsAccountID, userID).
			Delete(&models.Account{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
