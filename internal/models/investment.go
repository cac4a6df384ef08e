package models

// InvestmentType represents the kind of investment.
type InvestmentType string

const (
	InvestmentTypeStocks         InvestmentType = "stocks"
	InvestmentTypeFixedIncome    InvestmentType = "fixed_income"
	InvestmentTypeFunds          InvestmentType = "funds"
	InvestmentTypeCrypto         InvestmentType = "crypto"
	InvestmentTypeVariableIncome InvestmentType = "variable_income"
	InvestmentTypeRealEstate     InvestmentType = "real_estate"
	InvestmentTypeOther          InvestmentType = "other"
)

// Investment represents a position held by the user. CurrentValue defaults to
// InvestedAmount until the user updates it.
type Investment struct {
	Base
	UserID         string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string         `gorm:"not null" json:"name"`
	Type           InvestmentType `gorm:"not null" json:"type"`
	InvestedAmount int64          `gorm:"type:bigint;not null" json:"invested_amount"`
	CurrentValue   int64          `gorm:"type:bigint;not null" json:"current_value"`
	Ticker         string         `json:"ticker,omitempty"`
	Quantity       float64        `json:"quantity,omitempty"`
	Rate           string         `json:"rate,omitempty"`
	Notes          string         `json:"notes,omitempty"`
}
