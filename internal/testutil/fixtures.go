package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/epicsistemas10/meubolso/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		FullName: fmt.Sprintf("Test User %d", nextID()),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates a checking account with zero balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID string) *models.Account {
	t.Helper()
	return CreateTestAccountWithBalance(t, db, userID, 0)
}

// CreateTestAccountWithBalance creates a checking account with the given
// balance (in centavos).
func CreateTestAccountWithBalance(t *testing.T, db *gorm.DB, userID string, balance int64) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:  userID,
		Name:    fmt.Sprintf("Test Account %d", nextID()),
		Type:    models.AccountTypeChecking,
		Balance: balance,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestSavingsAccount creates a savings account with the given balance.
func CreateTestSavingsAccount(t *testing.T, db *gorm.DB, userID string, balance int64) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:  userID,
		Name:    fmt.Sprintf("Test Savings %d", nextID()),
		Type:    models.AccountTypeSavings,
		Balance: balance,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test savings account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
		Type:   categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction of the given type and amount
// (in centavos) dated now.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, accountID *string, txType models.TransactionType, amount int64) *models.Transaction {
	t.Helper()
	return CreateTestTransactionOn(t, db, userID, accountID, txType, amount, time.Now())
}

// CreateTestTransactionOn creates a transaction dated at the given time.
func CreateTestTransactionOn(t *testing.T, db *gorm.DB, userID string, accountID *string, txType models.TransactionType, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		AccountID:   accountID,
		Type:        txType,
		Amount:      amount,
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Date:        date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates a budget for the given category and month with a
// planned amount of R$100,00.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID string, categoryID *string, month, year int) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:        userID,
		CategoryID:    categoryID,
		Month:         month,
		Year:          year,
		PlannedAmount: 10000,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestGoal creates an active goal with its own savings account.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID string, target, current int64) *models.Goal {
	t.Helper()

	account := CreateTestSavingsAccount(t, db, userID, current)
	goal := &models.Goal{
		UserID:           userID,
		Name:             fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount:     target,
		CurrentAmount:    current,
		Deadline:         time.Now().AddDate(1, 0, 0),
		SavingsAccountID: account.ID,
		Status:           models.GoalStatusActive,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestInvestment creates an investment position.
func CreateTestInvestment(t *testing.T, db *gorm.DB, userID string, invested, current int64) *models.Investment {
	t.Helper()

	investment := &models.Investment{
		UserID:         userID,
		Name:           fmt.Sprintf("Test Investment %d", nextID()),
		Type:           models.InvestmentTypeStocks,
		InvestedAmount: invested,
		CurrentValue:   current,
	}
	if err := db.Create(investment).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return investment
}

// CreateTestAsset creates a physical asset.
func CreateTestAsset(t *testing.T, db *gorm.DB, userID string, estimatedValue int64) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		UserID:         userID,
		Name:           fmt.Sprintf("Test Asset %d", nextID()),
		Type:           models.AssetTypeVehicle,
		EstimatedValue: estimatedValue,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}
