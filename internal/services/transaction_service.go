package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/pagination"
)

// transactionService handles ledger transaction business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// validateTransactionInput checks the per-type field requirements:
// Buy/Sell need an asset name and a positive quantity, Deposit/Withdraw
// carry neither, and the price must always be positive.
func validateTransactionInput(transactionType models.TransactionType, assetName string, quantity *float64, price float64) error {
	switch transactionType {
	case models.TransactionTypeBuy, models.TransactionTypeSell:
		if assetName == "" {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "asset name is required for Buy/Sell transactions")
		}
		if quantity == nil || *quantity <= 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be greater than zero for Buy/Sell transactions")
		}
	case models.TransactionTypeDeposit, models.TransactionTypeWithdraw:
		// Asset name and quantity are not part of cash transactions.
	default:
		return apperrors.ErrInvalidTransactionType
	}

	if price <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "price must be greater than zero")
	}
	return nil
}

// CreateTransaction appends a transaction to the user's ledger and, for
// Buy/Sell transactions, reconciles the matching holding. Append and
// reconciliation run in a single database transaction: either both are
// committed or neither is.
func (s *transactionService) CreateTransaction(
	userID uint,
	transactionType models.TransactionType,
	assetName string,
	quantity *float64,
	price float64,
	date time.Time,
	notes string,
) (*models.Transaction, error) {
	if err := validateTransactionInput(transactionType, assetName, quantity, price); err != nil {
		return nil, err
	}

	// Default date to now if not provided
	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.Transaction{
		UserID: userID,
		Type:   transactionType,
		Price:  price,
		Date:   date,
		Notes:  notes,
	}
	if transactionType == models.TransactionTypeBuy || transactionType == models.TransactionTypeSell {
		transaction.AssetName = assetName
		transaction.Quantity = quantity
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Create(transaction).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return reconcileHolding(tx, userID, transaction)
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of the user's
// transactions, newest first.
func (s *transactionService) GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.AssetName != nil {
		q = q.Where("asset_name = ?", *f.AssetName)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction applies a partial update to a transaction. Only non-nil
// fields of the update are written.
//
// Editing a transaction does not adjust holdings: reconciliation runs once,
// when the transaction is recorded. See DESIGN.md.
func (s *transactionService) UpdateTransaction(userID, transactionID uint, update TransactionUpdate) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	// Build the resulting record first so validation sees the merged state.
	merged := *transaction
	if update.Type != nil {
		merged.Type = *update.Type
	}
	if update.AssetName != nil {
		merged.AssetName = *update.AssetName
	}
	if update.Quantity != nil {
		merged.Quantity = update.Quantity
	}
	if update.Price != nil {
		merged.Price = *update.Price
	}
	if update.Date != nil {
		merged.Date = *update.Date
	}
	if update.Notes != nil {
		merged.Notes = *update.Notes
	}

	if err := validateTransactionInput(merged.Type, merged.AssetName, merged.Quantity, merged.Price); err != nil {
		return nil, err
	}
	if merged.Type == models.TransactionTypeDeposit || merged.Type == models.TransactionTypeWithdraw {
		merged.AssetName = ""
		merged.Quantity = nil
	}

	updates := map[string]interface{}{
		"type":       merged.Type,
		"asset_name": merged.AssetName,
		"quantity":   merged.Quantity,
		"price":      merged.Price,
		"date":       merged.Date,
		"notes":      merged.Notes,
	}
	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	*transaction = merged
	return transaction, nil
}

// DeleteTransaction removes a transaction from the ledger (soft delete).
//
// Deleting a transaction does not adjust holdings: the recorded
// reconciliation effect is left in place. See DESIGN.md.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
