package models

import "time"

// Advisor is a directory entry for a financial advisor. Advisors are global
// rows shared by all users, not user-owned.
type Advisor struct {
	Base
	Name      string `gorm:"not null" json:"name"`
	Email     string `gorm:"not null" json:"email"`
	Expertise string `json:"expertise"`
	ImageURL  string `json:"image_url"`
}

// AdvisorMeeting is a scheduled meeting between a user and an advisor.
type AdvisorMeeting struct {
	Base
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	AdvisorID uint      `gorm:"not null" json:"advisor_id"`
	Date      time.Time `gorm:"not null" json:"date"`
	Topic     string    `gorm:"not null" json:"topic"`

	// Relationships
	Advisor Advisor `gorm:"foreignKey:AdvisorID" json:"advisor"`
}
