package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/pagination"
	"finsight/internal/services"
)

// PortfolioHandler handles portfolio holding requests.
type PortfolioHandler struct {
	holdingService services.HoldingServicer
	auditService   services.AuditServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(holdingService services.HoldingServicer, auditService services.AuditServicer) *PortfolioHandler {
	return &PortfolioHandler{holdingService: holdingService, auditService: auditService}
}

// CreateHoldingRequest represents the request payload for adding a holding.
type CreateHoldingRequest struct {
	AssetName     string           `json:"asset_name" binding:"required,min=1,max=200"`
	AssetType     models.AssetType `json:"asset_type" binding:"required,asset_type"`
	Quantity      float64          `json:"quantity" binding:"min=0"`
	PurchasePrice float64          `json:"purchase_price" binding:"required,gt=0"`
	CurrentValue  float64          `json:"current_value" binding:"min=0"`
}

// UpdateHoldingRequest represents the request payload for updating a holding.
// Absent fields are left unchanged.
type UpdateHoldingRequest struct {
	AssetName     *string           `json:"asset_name" binding:"omitempty,min=1,max=200"`
	AssetType     *models.AssetType `json:"asset_type" binding:"omitempty,asset_type"`
	Quantity      *float64          `json:"quantity" binding:"omitempty,min=0"`
	PurchasePrice *float64          `json:"purchase_price" binding:"omitempty,gt=0"`
	CurrentValue  *float64          `json:"current_value" binding:"omitempty,min=0"`
}

// CreateHolding handles adding a holding to the portfolio.
// @Summary     Add a holding
// @Description Add a new asset holding to the portfolio
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateHoldingRequest true "Holding details"
// @Success     201 {object} models.Holding "Holding created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio [post]
func (h *PortfolioHandler) CreateHolding(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	holding, err := h.holdingService.CreateHolding(
		userID, req.AssetName, req.AssetType, req.Quantity, req.PurchasePrice, req.CurrentValue,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_HOLDING", "holding", holding.ID, c.ClientIP(),
		map[string]interface{}{"asset_name": req.AssetName, "asset_type": req.AssetType, "quantity": req.Quantity})

	c.JSON(http.StatusCreated, gin.H{"holding": holding})
}

// GetHoldings handles listing the user's holdings.
// @Summary     Get holdings
// @Description Get a paginated list of portfolio holdings
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Holding] "Paginated holdings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio [get]
func (h *PortfolioHandler) GetHoldings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.holdingService.GetUserHoldings(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSummary handles the portfolio summary request.
// @Summary     Get portfolio summary
// @Description Get totals, gains, and the distribution by asset type
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.PortfolioSummary "Portfolio summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/summary [get]
func (h *PortfolioHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.holdingService.GetPortfolioSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetHolding handles retrieving a specific holding.
// @Summary     Get holding by ID
// @Description Get a specific holding by ID
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Holding ID"
// @Success     200 {object} models.Holding "Holding details"
// @Failure     400 {object} ErrorResponse "Invalid holding ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Router      /portfolio/{id} [get]
func (h *PortfolioHandler) GetHolding(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	holdingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	holding, err := h.holdingService.GetHoldingByID(userID, holdingID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holding": holding})
}

// UpdateHolding handles updating an existing holding.
// @Summary     Update holding
// @Description Update an existing holding; absent fields are left unchanged
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Holding ID"
// @Param       request body UpdateHoldingRequest true "Updated holding fields"
// @Success     200 {object} models.Holding "Updated holding"
// @Failure     400 {object} ErrorResponse "Invalid input or holding ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/{id} [put]
func (h *PortfolioHandler) UpdateHolding(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	holdingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	holding, err := h.holdingService.UpdateHolding(userID, holdingID, services.HoldingUpdate{
		AssetName:     req.AssetName,
		AssetType:     req.AssetType,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		CurrentValue:  req.CurrentValue,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_HOLDING", "holding", holdingID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"holding": holding})
}

// DeleteHolding handles deleting a holding.
// @Summary     Delete holding
// @Description Delete a holding by ID (soft delete)
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Holding ID"
// @Success     200 {object} MessageResponse "Holding deleted"
// @Failure     400 {object} ErrorResponse "Invalid holding ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/{id} [delete]
func (h *PortfolioHandler) DeleteHolding(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	holdingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.holdingService.DeleteHolding(userID, holdingID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_HOLDING", "holding", holdingID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Holding deleted successfully"})
}
