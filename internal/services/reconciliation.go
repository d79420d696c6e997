package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finsight/internal/errors"
	"finsight/internal/models"
)

// reconcileHolding applies a recorded Buy or Sell transaction to the matching
// holding, identified by exact asset-name match. Deposit/Withdraw transactions
// never touch holdings.
//
// A Buy of an untracked asset creates a new holding typed as Other; a Sell of
// an untracked asset is an inconsistent state and fails. For an existing
// holding only the unit count changes: the per-unit price
// (CurrentValue / Quantity) is carried forward unchanged, so
//
//	quantity' = quantity ± transaction.Quantity
//	currentValue' = quantity' * (currentValue / quantity)
//
// The update carries an expected-quantity guard so that two concurrent
// transactions against the same holding cannot silently lose one of the
// updates; the loser gets ErrHoldingConflict.
func reconcileHolding(tx *gorm.DB, userID uint, transaction *models.Transaction) error {
	if transaction.Type != models.TransactionTypeBuy && transaction.Type != models.TransactionTypeSell {
		return nil
	}
	quantity := *transaction.Quantity

	var holding models.Holding
	err := tx.Where("user_id = ? AND asset_name = ?", userID, transaction.AssetName).
		First(&holding).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if transaction.Type == models.TransactionTypeSell {
			return apperrors.ErrUntrackedAsset
		}
		holding = models.Holding{
			UserID:        userID,
			AssetName:     transaction.AssetName,
			AssetType:     models.AssetTypeOther,
			Quantity:      quantity,
			PurchasePrice: transaction.Price,
			CurrentValue:  transaction.Price * quantity,
		}
		if createErr := tx.Create(&holding).Error; createErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, createErr)
		}
		return nil
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Unit price is undefined for an empty holding.
	if holding.Quantity == 0 {
		return apperrors.ErrEmptyHolding
	}
	unitPrice := holding.CurrentValue / holding.Quantity

	delta := quantity
	if transaction.Type == models.TransactionTypeSell {
		delta = -quantity
	}
	newQuantity := holding.Quantity + delta
	if newQuantity < 0 {
		return apperrors.ErrInsufficientQuantity
	}

	return applyReconciledQuantity(tx, &holding, newQuantity, unitPrice)
}

// applyReconciledQuantity writes the reconciled quantity and value, guarded by
// the quantity observed when the holding was read. Zero rows affected means a
// concurrent transaction changed the holding in between.
func applyReconciledQuantity(tx *gorm.DB, holding *models.Holding, newQuantity, unitPrice float64) error {
	result := tx.Model(&models.Holding{}).
		Where("id = ? AND quantity = ?", holding.ID, holding.Quantity).
		Updates(map[string]interface{}{
			"quantity":      newQuantity,
			"current_value": newQuantity * unitPrice,
		})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrHoldingConflict
	}

	return nil
}
