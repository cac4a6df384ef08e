package models

// AccountType represents the type of account.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeCash       AccountType = "cash"
)

// Account represents a financial account. Savings accounts may be owned by a
// goal ("porquinho"); those accounts live and die with their goal.
type Account struct {
	Base
	UserID        string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string      `gorm:"not null" json:"name"`
	BankName      string      `json:"bank_name,omitempty"`
	Type          AccountType `gorm:"not null" json:"account_type"`
	Balance       int64       `gorm:"type:bigint;not null;default:0" json:"balance"`
	IsOpenFinance bool        `gorm:"default:false" json:"is_open_finance"`
	Icon          string      `json:"icon,omitempty"`
	Color         string      `json:"color,omitempty"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
}
