package services

import (
	"context"
	"time"

	"finsight/internal/models"
	"finsight/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, fullName string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// HoldingUpdate holds optional fields for a partial holding update.
// Only non-nil fields are applied.
type HoldingUpdate struct {
	AssetName     *string
	AssetType     *models.AssetType
	Quantity      *float64
	PurchasePrice *float64
	CurrentValue  *float64
}

// AssetSlice is one asset type's share of the portfolio.
type AssetSlice struct {
	Type       models.AssetType `json:"type"`
	Value      float64          `json:"value"`
	Percentage float64          `json:"percentage"`
}

// PortfolioSummary contains aggregated portfolio data across all holdings.
type PortfolioSummary struct {
	TotalValue        float64      `json:"total_value"`
	TotalInvested     float64      `json:"total_invested"`
	TotalGains        float64      `json:"total_gains"`
	GainPercentage    float64      `json:"gain_percentage"`
	AssetDistribution []AssetSlice `json:"asset_distribution"`
}

// HoldingServicer defines the contract for portfolio holding business logic.
type HoldingServicer interface {
	CreateHolding(userID uint, assetName string, assetType models.AssetType, quantity, purchasePrice, currentValue float64) (*models.Holding, error)
	GetUserHoldings(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Holding], error)
	GetHoldingByID(userID, holdingID uint) (*models.Holding, error)
	UpdateHolding(userID, holdingID uint, update HoldingUpdate) (*models.Holding, error)
	DeleteHolding(userID, holdingID uint) error
	GetPortfolioSummary(userID uint) (*PortfolioSummary, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate  *time.Time
	ToDate    *time.Time
	Type      *models.TransactionType
	AssetName *string
}

// TransactionUpdate holds optional fields for a partial transaction update.
// Only non-nil fields are applied.
type TransactionUpdate struct {
	Type      *models.TransactionType
	AssetName *string
	Quantity  *float64
	Price     *float64
	Date      *time.Time
	Notes     *string
}

// TransactionServicer defines the contract for ledger transaction business logic.
type TransactionServicer interface {
	CreateTransaction(userID uint, transactionType models.TransactionType, assetName string, quantity *float64, price float64, date time.Time, notes string) (*models.Transaction, error)
	GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uint, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
}

// GoalProgress contains derived progress metrics for a goal.
type GoalProgress struct {
	ProgressPercent float64 `json:"progress_percent"`
	Remaining       float64 `json:"remaining"`
	DaysRemaining   int     `json:"days_remaining"`
	Overdue         bool    `json:"overdue"`
	DaysOverdue     int     `json:"days_overdue"`
}

// GoalWithProgress pairs a stored goal with its computed progress.
type GoalWithProgress struct {
	models.Goal
	Progress GoalProgress `json:"progress"`
}

// GoalUpdate holds optional fields for a partial goal update.
// Only non-nil fields are applied.
type GoalUpdate struct {
	Name          *string
	TargetAmount  *float64
	CurrentAmount *float64
	Deadline      *time.Time
}

// GoalServicer defines the contract for savings goal business logic.
type GoalServicer interface {
	CreateGoal(userID uint, name string, targetAmount, currentAmount float64, deadline time.Time) (*models.Goal, error)
	GetUserGoals(userID uint, page pagination.PageRequest) (*pagination.PageResponse[GoalWithProgress], error)
	GetGoalByID(userID, goalID uint) (*GoalWithProgress, error)
	UpdateGoal(userID, goalID uint, update GoalUpdate) (*models.Goal, error)
	DeleteGoal(userID, goalID uint) error
}

// AdvisorServicer defines the contract for the advisor directory and meetings.
type AdvisorServicer interface {
	GetAdvisors(page pagination.PageRequest) (*pagination.PageResponse[models.Advisor], error)
	GetAdvisorByID(advisorID uint) (*models.Advisor, error)
	ScheduleMeeting(userID, advisorID uint, date time.Time, topic string) (*models.AdvisorMeeting, error)
	GetUserMeetings(userID uint, upcomingOnly bool, page pagination.PageRequest) (*pagination.PageResponse[models.AdvisorMeeting], error)
	CancelMeeting(userID, meetingID uint) error
}

// ChatMessage is a single message in an advisor chat conversation.
type ChatMessage struct {
	Role    string `json:"role" binding:"required,chat_role"`
	Content string `json:"content" binding:"required"`
}

// ChatServicer defines the contract for the advisor chat relay.
type ChatServicer interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
