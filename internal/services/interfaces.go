package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/epicsistemas10/meubolso/internal/models"
	"github.com/epicsistemas10/meubolso/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, fullName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	UpdateProfile(userID string, fullName, avatarURL *string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// AccountFields holds the user-supplied attributes of an account.
type AccountFields struct {
	Name           string
	BankName       string
	Type           models.AccountType
	InitialBalance int64
	Icon           string
	Color          string
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(userID string, fields AccountFields) (*models.Account, error)
	GetUserAccounts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(userID, accountID string) (*models.Account, error)
	// GetAccountForUpdate retrieves an account within an existing database
	// transaction so subsequent balance adjustments read and write on the
	// same connection.
	GetAccountForUpdate(tx *gorm.DB, userID, accountID string) (*models.Account, error)
	UpdateAccount(userID, accountID string, name, bankName *string) (*models.Account, error)
	DeleteAccount(userID, accountID string) error
	// AdjustBalance applies a transaction's effect to an account balance
	// within an existing database transaction.
	AdjustBalance(tx *gorm.DB, account *models.Account, transactionType models.TransactionType, amount int64) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name string, categoryType models.CategoryType, icon, color string) (*models.Category, error)
	GetUserCategories(userID string, categoryType *models.CategoryType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID string, name, icon, color string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
	// SeedDefaults inserts the default category set for a freshly
	// registered user, within an existing database transaction.
	SeedDefaults(tx *gorm.DB, userID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	CategoryID *string
	AccountID  *string
}

// MonthTotals holds income and expense sums for a calendar month.
// Transfers contribute to neither side.
type MonthTotals struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
}

// AccountMonthSummary holds income/expense sums for one account in a month.
type AccountMonthSummary struct {
	AccountID string `json:"account_id"`
	Income    int64  `json:"income"`
	Expense   int64  `json:"expense"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, accountID, categoryID *string, transactionType models.TransactionType, amount int64, description string, date time.Time, notes string) (*models.Transaction, error)
	CreateTransfer(userID, fromAccountID, toAccountID string, amount int64, description string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
	GetMonthTotals(userID string, month, year int) (*MonthTotals, error)
	GetAccountMonthSummaries(userID string, month, year int) (map[string]AccountMonthSummary, error)
}

// BudgetStatus classifies a budget's spending against its plan.
type BudgetStatus string

const (
	BudgetStatusInProgress BudgetStatus = "in_progress"
	BudgetStatusMet        BudgetStatus = "met"
	BudgetStatusExceeded   BudgetStatus = "exceeded"
)

// BudgetView is a budget together with its derived progress figures.
type BudgetView struct {
	models.Budget
	Progress  float64      `json:"progress"`
	Remaining int64        `json:"remaining"`
	Status    BudgetStatus `json:"status"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID string, categoryID *string, month, year int, plannedAmount int64) (*models.Budget, error)
	ListBudgets(userID string, month, year int) ([]BudgetView, error)
	GetBudgetByID(userID, budgetID string) (*models.Budget, error)
	UpdateBudget(userID, budgetID string, plannedAmount int64) (*models.Budget, error)
	DeleteBudget(userID, budgetID string) error
	// CopyForward re-creates the previous month's budgets in the given
	// month with spent amounts reset to zero. Returns the new budgets.
	CopyForward(userID string, month, year int) ([]models.Budget, error)
}

// GoalView is a goal together with its derived savings guidance.
type GoalView struct {
	models.Goal
	Progress               float64 `json:"progress"`
	MonthsRemaining        int     `json:"months_remaining"`
	RequiredMonthlyDeposit int64   `json:"required_monthly_deposit"`
}

// GoalStatusCounts holds per-status goal counts for the list header.
type GoalStatusCounts struct {
	All       int `json:"all"`
	Active    int `json:"active"`
	Paused    int `json:"paused"`
	Completed int `json:"completed"`
}

// GoalFields holds the user-supplied attributes of a goal.
type GoalFields struct {
	Name          string
	TargetAmount  int64
	InitialAmount int64
	Deadline      time.Time
	Icon          string
	Color         string
}

// GoalServicer defines the contract for the goal ledger.
type GoalServicer interface {
	CreateGoal(userID string, fields GoalFields) (*models.Goal, error)
	GetUserGoals(userID string, status *models.GoalStatus) ([]GoalView, *GoalStatusCounts, error)
	GetGoalByID(userID, goalID string) (*models.Goal, error)
	UpdateGoal(userID, goalID string, name *string, targetAmount *int64, deadline *time.Time, icon, color *string) (*models.Goal, error)
	Deposit(userID, goalID string, amount int64) (*models.Goal, error)
	ChangeStatus(userID, goalID string, status models.GoalStatus) (*models.Goal, error)
	DeleteGoal(userID, goalID string) error
}

// InvestmentTotals aggregates the user's investment positions.
type InvestmentTotals struct {
	Invested    int64   `json:"invested"`
	Current     int64   `json:"current"`
	GainLoss    int64   `json:"gain_loss"`
	GainLossPct float64 `json:"gain_loss_pct"`
}

// InvestmentFields holds the user-supplied attributes of an investment.
type InvestmentFields struct {
	Name           string
	Type           models.InvestmentType
	InvestedAmount int64
	CurrentValue   int64
	Ticker         string
	Quantity       float64
	Rate           string
	Notes          string
}

// InvestmentServicer defines the contract for investment-related business logic.
type InvestmentServicer interface {
	CreateInvestment(userID string, fields InvestmentFields) (*models.Investment, error)
	GetUserInvestments(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error)
	GetInvestmentByID(userID, investmentID string) (*models.Investment, error)
	UpdateCurrentValue(userID, investmentID string, currentValue int64) (*models.Investment, error)
	DeleteInvestment(userID, investmentID string) error
	GetTotals(userID string) (*InvestmentTotals, error)
}

// AssetFields holds the user-supplied attributes of an asset.
type AssetFields struct {
	Name           string
	Type           models.AssetType
	EstimatedValue int64
	PurchaseValue  *int64
	PurchaseDate   *time.Time
	Notes          string
	Icon           string
	Color          string
}

// AssetServicer defines the contract for asset ("patrimônio") business logic.
type AssetServicer interface {
	CreateAsset(userID string, fields AssetFields) (*models.Asset, error)
	GetUserAssets(userID string) ([]models.Asset, error)
	GetAssetByID(userID, assetID string) (*models.Asset, error)
	DeleteAsset(userID, assetID string) error
	// SellAsset removes the asset and records the sale as an income
	// transaction, as a single atomic operation.
	SellAsset(userID, assetID string, salePrice int64) (*models.Transaction, error)
}

// NetWorthBreakdown holds the components of the total patrimony figure.
type NetWorthBreakdown struct {
	Accounts    int64 `json:"accounts"`
	Investments int64 `json:"investments"`
	Goals       int64 `json:"goals"`
	Assets      int64 `json:"assets"`
	Total       int64 `json:"total"`
}

// DashboardSummary is the aggregated view backing the principal screen.
type DashboardSummary struct {
	NetWorth        NetWorthBreakdown              `json:"net_worth"`
	MonthTotals     MonthTotals                    `json:"month_totals"`
	AccountSummary  map[string]AccountMonthSummary `json:"account_summary"`
	Budgets         []BudgetView                   `json:"budgets"`
}

// DashboardServicer defines the contract for the net-worth aggregator.
type DashboardServicer interface {
	GetNetWorth(userID string) (*NetWorthBreakdown, error)
	GetSummary(userID string, month, year int) (*DashboardSummary, error)
	// InvalidateUser drops any cached summaries after a mutation.
	InvalidateUser(userID string)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
