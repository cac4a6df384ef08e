package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/epicsistemas10/meubolso/internal/errors"
	"github.com/epicsistemas10/meubolso/internal/models"
	"github.com/epicsistemas10/meubolso/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accountService AccountServicer) TransactionServicer {
	return &transactionService{
		db:             db,
		accountService: accountService,
	}
}

// MonthWindow returns the half-open interval [first of month, first of next
// month) for the given period.
func MonthWindow(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// SumMonthTotals partitions transactions by type and sums income and expense
// amounts. Transfers contribute to neither side.
func SumMonthTotals(transactions []models.Transaction) MonthTotals {
	var totals MonthTotals
	for _, t := range transactions {
		switch t.Type {
		case models.TransactionTypeIncome:
			totals.Income += t.Amount
		case models.TransactionTypeExpense:
			totals.Expense += t.Amount
		}
	}
	return totals
}

// SummarizeByAccount groups transactions by account and sums income and
// expense amounts per group. The group key is the source account when set,
// falling back to the receiving account of a transfer.
func SummarizeByAccount(transactions []models.Transaction) map[string]AccountMonthSummary {
	byAccount := make(map[string]AccountMonthSummary)
	for _, t := range transactions {
		var accountID string
		if t.AccountID != nil {
			accountID = *t.AccountID
		} else if t.ToAccountID != nil {
			accountID = *t.ToAccountID
		} else {
			continue
		}

		summary := byAccount[accountID]
		summary.AccountID = accountID
		switch t.Type {
		case models.TransactionTypeIncome:
			summary.Income += t.Amount
		case models.TransactionTypeExpense:
			summary.Expense += t.Amount
		}
		byAccount[accountID] = summary
	}
	return byAccount
}

// CreateTransaction creates an income or expense transaction, adjusts the
// account balance, and keeps the matching budget's spent counter in step.
func (s *transactionService) CreateTransaction(
	userID string,
	accountID, categoryID *string,
	transactionType models.TransactionType,
	amount int64,
	description string,
	date time.Time,
	notes string,
) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if transactionType != models.TransactionTypeIncome && transactionType != models.TransactionTypeExpense {
		return nil, apperrors.ErrInvalidTransactionType
	}

	if date.IsZero() {
		date = time.Now()
	}

	var account *models.Account
	if accountID != nil {
		var err error
		account, err = s.accountService.GetAccountByID(userID, *accountID)
		if err != nil {
			return nil, err
		}
	}

	if categoryID != nil {
		var count int64
		if err := s.db.Model(&models.Category{}).Where("id = ? AND user_id = ?", *categoryID, userID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrCategoryNotFound
		}
	}

	transaction := &models.Transaction{
		UserID:      userID,
		AccountID:   accountID,
		CategoryID:  categoryID,
		Type:        transactionType,
		Amount:      amount,
		Description: description,
		Date:        date,
		Notes:       notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if account != nil {
			if err := s.accountService.AdjustBalance(tx, account, transactionType, amount); err != nil {
				return err
			}
		}

		if transactionType == models.TransactionTypeExpense && categoryID != nil {
			if err := bumpBudgetSpent(tx, userID, *categoryID, date, amount); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// CreateTransfer moves an amount between two of the user's accounts.
func (s *transactionService) CreateTransfer(userID, fromAccountID, toAccountID string, amount int64, description string, date time.Time) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if fromAccountID == toAccountID {
		return nil, apperrors.ErrSameAccountTransfer
	}

	if date.IsZero() {
		date = time.Now()
	}

	from, err := s.accountService.GetAccountByID(userID, fromAccountID)
	if err != nil {
		return nil, err
	}
	to, err := s.accountService.GetAccountByID(userID, toAccountID)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:      userID,
		AccountID:   &from.ID,
		ToAccountID: &to.ID,
		Type:        models.TransactionTypeTransfer,
		Amount:      amount,
		Description: description,
		Date:        date,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.accountService.AdjustBalance(tx, from, models.TransactionTypeExpense, amount); err != nil {
			return err
		}
		return s.accountService.AdjustBalance(tx, to, models.TransactionTypeIncome, amount)
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of transactions.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date < ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.AccountID != nil {
		q = q.Where("account_id = ? OR to_account_id = ?", *f.AccountID, *f.AccountID)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID for a specific user.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// DeleteTransaction deletes a transaction and reverses its effects on the
// account balance and the budget spent counter.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		switch transaction.Type {
		case models.TransactionTypeIncome, models.TransactionTypeExpense:
			if transaction.AccountID != nil {
				account, err := s.accountService.GetAccountForUpdate(tx, userID, *transaction.AccountID)
				if err != nil {
					return err
				}
				reverse := models.TransactionTypeExpense
				if transaction.Type == models.TransactionTypeExpense {
					reverse = models.TransactionTypeIncome
				}
				if err := s.accountService.AdjustBalance(tx, account, reverse, transaction.Amount); err != nil {
					return err
				}
			}
			if transaction.Type == models.TransactionTypeExpense && transaction.CategoryID != nil {
				if err := bumpBudgetSpent(tx, userID, *transaction.CategoryID, transaction.Date, -transaction.Amount); err != nil {
					return err
				}
			}
		case models.TransactionTypeTransfer:
			if transaction.AccountID != nil {
				from, err := s.accountService.GetAccountForUpdate(tx, userID, *transaction.AccountID)
				if err != nil {
					return err
				}
				if err := s.accountService.AdjustBalance(tx, from, models.TransactionTypeIncome, transaction.Amount); err != nil {
					return err
				}
			}
			if transaction.ToAccountID != nil {
				to, err := s.accountService.GetAccountForUpdate(tx, userID, *transaction.ToAccountID)
				if err != nil {
					return err
				}
				if err := s.accountService.AdjustBalance(tx, to, models.TransactionTypeExpense, transaction.Amount); err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// GetMonthTotals computes the income and expense sums for a calendar month.
func (s *transactionService) GetMonthTotals(userID string, month, year int) (*MonthTotals, error) {
	transactions, err := s.monthTransactions(userID, month, year)
	if err != nil {
		return nil, err
	}
	totals := SumMonthTotals(transactions)
	return &totals, nil
}

// GetAccountMonthSummaries computes per-account income/expense sums for a
// calendar month.
func (s *transactionService) GetAccountMonthSummaries(userID string, month, year int) (map[string]AccountMonthSummary, error) {
	transactions, err := s.monthTransactions(userID, month, year)
	if err != nil {
		return nil, err
	}
	return SummarizeByAccount(transactions), nil
}

func (s *transactionService) monthTransactions(userID string, month, year int) ([]models.Transaction, error) {
	start, end := MonthWindow(month, year)

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// bumpBudgetSpent adjusts the stored spent counter of the budget matching the
// expense's category and month. Missing budgets are not an error.
func bumpBudgetSpent(tx *gorm.DB, userID, categoryID string, date time.Time, delta int64) error {
	err := tx.Model(&models.Budget{}).
		Where("user_id = ? AND category_id = ? AND month = ? AND year = ?",
			userID, categoryID, int(date.Month()), date.Year()).
		UpdateColumn("spent_amount", gorm.Expr("spent_amount + ?", delta)).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
