package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeBuy      TransactionType = "Buy"
	TransactionTypeSell     TransactionType = "Sell"
	TransactionTypeDeposit  TransactionType = "Deposit"
	TransactionTypeWithdraw TransactionType = "Withdraw"
)

// Transaction represents a ledger event. AssetName and Quantity are set for
// Buy/Sell transactions and absent for Deposit/Withdraw. Price is the
// per-unit price for Buy/Sell and the cash amount for Deposit/Withdraw.
type Transaction struct {
	Base
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	Type      TransactionType `gorm:"not null" json:"type"`
	AssetName string          `json:"asset_name,omitempty"`
	Quantity  *float64        `json:"quantity,omitempty"`
	Price     float64         `gorm:"not null" json:"price"`
	Date      time.Time       `gorm:"not null" json:"date"`
	Notes     string          `json:"notes,omitempty"`
}
