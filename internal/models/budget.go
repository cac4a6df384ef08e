package models

// Budget represents a monthly spending plan ("meta") for a category.
// SpentAmount is a stored counter maintained as expense transactions are
// recorded; the budget service can alternatively recompute it live from
// transactions, depending on configuration.
type Budget struct {
	Base
	UserID        string  `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID    *string `gorm:"type:uuid" json:"category_id,omitempty"`
	Month         int     `gorm:"not null" json:"month"`
	Year          int     `gorm:"not null" json:"year"`
	PlannedAmount int64   `gorm:"type:bigint;not null" json:"planned_amount"`
	SpentAmount   int64   `gorm:"type:bigint;not null;default:0" json:"spent_amount"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
