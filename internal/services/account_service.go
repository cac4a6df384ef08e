package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/epicsistemas10/meubolso/internal/errors"
	"github.com/epicsistemas10/meubolso/internal/models"
	"github.com/epicsistemas10/meubolso/internal/pagination"
)

// accountService handles account-related business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount creates a new account for a user. A non-zero initial balance
// is recorded as an income transaction so statements stay consistent with
// the balance.
func (s *accountService) CreateAccount(userID string, fields AccountFields) (*models.Account, error) {
	if fields.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}
	if fields.InitialBalance < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "initial balance cannot be negative")
	}

	account := &models.Account{
		UserID:   userID,
		Name:     fields.Name,
		BankName: fields.BankName,
		Type:     fields.Type,
		Balance:  fields.InitialBalance,
		Icon:     fields.Icon,
		Color:    fields.Color,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if fields.InitialBalance > 0 {
			transaction := &models.Transaction{
				UserID:      userID,
				AccountID:   &account.ID,
				Type:        models.TransactionTypeIncome,
				Amount:      fields.InitialBalance,
				Description: "Saldo inicial",
				Date:        time.Now(),
			}
			if err := tx.Create(transaction).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// GetUserAccounts retrieves a paginated list of accounts for a user.
func (s *accountService) GetUserAccounts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error) {
	page.Defaults()

	base := s.db.Model(&models.Account{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var accounts []models.Account
	if err := base.Scopes(pagination.Paginate(page)).Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(accounts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAccountByID retrieves an account by ID for a specific user.
func (s *accountService) GetAccountByID(userID, accountID string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// GetAccountForUpdate retrieves an account by ID within an existing database
// transaction. Callers that adjust balances inside a transaction must fetch
// through tx so the read stays on the transaction's connection.
func (s *accountService) GetAccountForUpdate(tx *gorm.DB, userID, accountID string) (*models.Account, error) {
	var account models.Account
	if err := tx.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// UpdateAccount updates an account's display fields.
func (s *accountService) UpdateAccount(userID, accountID string, name, bankName *string) (*models.Account, error) {
	account, err := s.GetAccountByID(userID, accountID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != nil && *name != "" {
		updates["name"] = *name
	}
	if bankName != nil {
		updates["bank_name"] = *bankName
	}

	if len(updates) > 0 {
		if err := s.db.Model(account).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return account, nil
}

// DeleteAccount soft-deletes an account. Accounts owned by a goal cannot be
// deleted directly; the goal's own deletion cascades to its account.
func (s *accountService) DeleteAccount(userID, accountID string) error {
	account, err := s.GetAccountByID(userID, accountID)
	if err != nil {
		return err
	}

	var owningGoals int64
	if err := s.db.Model(&models.Goal{}).Where("savings_account_id = ?", accountID).Count(&owningGoals).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if owningGoals > 0 {
		return apperrors.ErrAccountOwnedByGoal
	}

	if err := s.db.Delete(account).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// AdjustBalance applies a transaction's effect to an account balance within
// an existing database transaction. Income adds, expense subtracts.
func (s *accountService) AdjustBalance(tx *gorm.DB, account *models.Account, transactionType models.TransactionType, amount int64) error {
	switch transactionType {
	case models.TransactionTypeIncome:
		account.Balance += amount
	case models.TransactionTypeExpense:
		account.Balance -= amount
	default:
		return apperrors.ErrInvalidTransactionType
	}

	if err := tx.Model(account).Update("balance", account.Balance).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
