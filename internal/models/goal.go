package models

import "time"

// Goal is a savings target tracked independently of the ledger.
// CurrentAmount is edited directly and may exceed TargetAmount.
type Goal struct {
	Base
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Name          string    `gorm:"not null" json:"name"`
	TargetAmount  float64   `gorm:"not null" json:"target_amount"`
	CurrentAmount float64   `gorm:"not null;default:0" json:"current_amount"`
	Deadline      time.Time `gorm:"not null" json:"deadline"`
}
