package models

import "time"

// GoalStatus represents the lifecycle state of a goal.
// active and paused toggle freely; completed is terminal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCompleted GoalStatus = "completed"
)

// Goal represents a savings objective. Each goal exclusively owns one savings
// account (its "porquinho"); the account is created with the goal and deleted
// with it.
type Goal struct {
	Base
	UserID           string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Name             string     `gorm:"not null" json:"name"`
	TargetAmount     int64      `gorm:"type:bigint;not null" json:"target_amount"`
	CurrentAmount    int64      `gorm:"type:bigint;not null;default:0" json:"current_amount"`
	Deadline         time.Time  `gorm:"not null" json:"deadline"`
	Icon             string     `json:"icon,omitempty"`
	Color            string     `json:"color,omitempty"`
	SavingsAccountID string     `gorm:"type:uuid;not null" json:"savings_account_id"`
	Status           GoalStatus `gorm:"not null;default:'active'" json:"status"`

	// Relationships
	SavingsAccount *Account `gorm:"foreignKey:SavingsAccountID" json:"savings_account,omitempty"`
}

// EffectiveStatus resolves the displayed status. Records created before the
// status column existed have it empty; a met target counts as completed.
func (g *Goal) EffectiveStatus() GoalStatus {
	if g.Status != "" {
		return g.Status
	}
	if g.CurrentAmount >= g.TargetAmount {
		return GoalStatusCompleted
	}
	return GoalStatusActive
}
