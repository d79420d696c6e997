package services

import (
	"errors"
	"sort"

	"gorm.io/gorm"

	apperrors "finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/pagination"
)

// holdingService handles portfolio holding business logic.
type holdingService struct {
	db *gorm.DB
}

// NewHoldingService creates a new HoldingServicer.
func NewHoldingService(db *gorm.DB) HoldingServicer {
	return &holdingService{db: db}
}

// CreateHolding adds a new holding to the user's portfolio.
func (s *holdingService) CreateHolding(
	userID uint,
	assetName string,
	assetType models.AssetType,
	quantity, purchasePrice, currentValue float64,
) (*models.Holding, error) {
	if assetName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset name is required")
	}
	if quantity < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must not be negative")
	}
	if purchasePrice <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "purchase price must be greater than zero")
	}
	if currentValue < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current value must not be negative")
	}

	holding := &models.Holding{
		UserID:        userID,
		AssetName:     assetName,
		AssetType:     assetType,
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		CurrentValue:  currentValue,
	}

	if err := s.db.Create(holding).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return holding, nil
}

// GetUserHoldings returns a paginated list of the user's holdings, newest first.
func (s *holdingService) GetUserHoldings(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Holding], error) {
	page.Defaults()

	base := s.db.Model(&models.Holding{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var holdings []models.Holding
	if err := base.Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(holdings, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetHoldingByID retrieves a holding by ID for a specific user.
func (s *holdingService) GetHoldingByID(userID, holdingID uint) (*models.Holding, error) {
	var holding models.Holding
	if err := s.db.Where("id = ? AND user_id = ?", holdingID, userID).First(&holding).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHoldingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &holding, nil
}

// UpdateHolding applies a partial update to a holding. Only non-nil fields
// of the update are written.
func (s *holdingService) UpdateHolding(userID, holdingID uint, update HoldingUpdate) (*models.Holding, error) {
	holding, err := s.GetHoldingByID(userID, holdingID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.AssetName != nil {
		if *update.AssetName == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset name must not be empty")
		}
		updates["asset_name"] = *update.AssetName
	}
	if update.AssetType != nil {
		updates["asset_type"] = *update.AssetType
	}
	if update.Quantity != nil {
		if *update.Quantity < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must not be negative")
		}
		updates["quantity"] = *update.Quantity
	}
	if update.PurchasePrice != nil {
		if *update.PurchasePrice <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "purchase price must be greater than zero")
		}
		updates["purchase_price"] = *update.PurchasePrice
	}
	if update.CurrentValue != nil {
		if *update.CurrentValue < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current value must not be negative")
		}
		updates["current_value"] = *update.CurrentValue
	}

	if len(updates) == 0 {
		return holding, nil
	}

	if err := s.db.Model(holding).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return holding, nil
}

// DeleteHolding removes a holding from the user's portfolio (soft delete).
func (s *holdingService) DeleteHolding(userID, holdingID uint) error {
	holding, err := s.GetHoldingByID(userID, holdingID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(holding).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetPortfolioSummary computes a point-in-time summary over all of the
// user's holdings.
func (s *holdingService) GetPortfolioSummary(userID uint) (*PortfolioSummary, error) {
	var holdings []models.Holding
	if err := s.db.Where("user_id = ?", userID).Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return Summarize(holdings), nil
}

// Summarize folds a set of holdings into a portfolio summary. It has no side
// effects and its result does not depend on the input ordering: totals are
// plain sums and the distribution is sorted by asset type.
//
// When total invested is zero the gain percentage is zero, and when total
// value is zero every distribution percentage is zero.
func Summarize(holdings []models.Holding) *PortfolioSummary {
	summary := &PortfolioSummary{
		AssetDistribution: []AssetSlice{},
	}

	valueByType := make(map[models.AssetType]float64)
	for _, h := range holdings {
		summary.TotalValue += h.CurrentValue
		summary.TotalInvested += h.PurchasePrice * h.Quantity
		valueByType[h.AssetType] += h.CurrentValue
	}

	summary.TotalGains = summary.TotalValue - summary.TotalInvested
	if summary.TotalInvested > 0 {
		summary.GainPercentage = summary.TotalGains / summary.TotalInvested * 100
	}

	for assetType, value := range valueByType {
		slice := AssetSlice{Type: assetType, Value: value}
		if summary.TotalValue > 0 {
			slice.Percentage = value / summary.TotalValue * 100
		}
		summary.AssetDistribution = append(summary.AssetDistribution, slice)
	}
	sort.Slice(summary.AssetDistribution, func(i, j int) bool {
		return summary.AssetDistribution[i].Type < summary.AssetDistribution[j].Type
	})

	return summary
}
