package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/epicsistemas10/meubolso/internal/errors"
	"github.com/epicsistemas10/meubolso/internal/models"
	"github.com/epicsistemas10/meubolso/internal/services"
)

// AssetHandler handles physical asset requests.
type AssetHandler struct {
	assetService     services.AssetServicer
	auditService     services.AuditServicer
	dashboardService services.DashboardServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer, auditService services.AuditServicer, dashboardService services.DashboardServicer) *AssetHandler {
	return &AssetHandler{
		assetService:     assetService,
		auditService:     auditService,
		dashboardService: dashboardService,
	}
}

// CreateAssetRequest represents the request payload for creating an asset.
type CreateAssetRequest struct {
	Name           string           `json:"name" binding:"required,min=1,max=100"`
	Type           models.AssetType `json:"type" binding:"required,asset_type"`
	EstimatedValue int64            `json:"estimated_value" binding:"required,gt=0"`
	PurchaseValue  *int64           `json:"purchase_value" binding:"omitempty,gte=0"`
	PurchaseDate   *time.Time       `json:"purchase_date"`
	Notes          string           `json:"notes" binding:"max=500"`
	Icon           string           `json:"icon" binding:"max=50"`
	Color          string           `json:"color" binding:"omitempty,hex_color"`
}

// SellAssetRequest represents the request payload for selling an asset.
type SellAssetRequest struct {
	SalePrice int64 `json:"sale_price" binding:"required,gt=0"`
}

// CreateAsset handles recording a new asset.
// @Summary     Create an asset
// @Description Record a new physical asset (real estate, vehicle, other)
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAssetRequest true "Asset details"
// @Success     201 {object} models.Asset "Asset created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assetService.CreateAsset(userID, services.AssetFields{
		Name:           req.Name,
		Type:           req.Type,
		EstimatedValue: req.EstimatedValue,
		PurchaseValue:  req.PurchaseValue,
		PurchaseDate:   req.PurchaseDate,
		Notes:          req.Notes,
		Icon:           req.Icon,
		Color:          req.Color,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ASSET", "asset", asset.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "type": req.Type, "estimated_value": req.EstimatedValue})
	h.dashboardService.InvalidateUser(userID)

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// GetAssets handles listing the user's assets.
// @Summary     Get assets
// @Description Get the user's physical assets, newest first
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Asset "Assets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets [get]
func (h *AssetHandler) GetAssets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assets, err := h.assetService.GetUserAssets(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// SellAsset handles selling an asset.
// @Summary     Sell an asset
// @Description Remove the asset and record the sale as an income transaction, atomically
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string           true "Asset ID"
// @Param       request body SellAssetRequest true "Sale price"
// @Success     200 {object} models.Transaction "Sale transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id}/sell [post]
func (h *AssetHandler) SellAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SellAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.assetService.SellAsset(userID, assetID, req.SalePrice)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SELL_ASSET", "asset", assetID, c.ClientIP(),
		map[string]interface{}{"sale_price": req.SalePrice})
	h.dashboardService.InvalidateUser(userID)

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteAsset handles deleting an asset without a sale.
// @Summary     Delete an asset
// @Description Delete an asset without recording a sale
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     204 "Asset deleted"
// @Failure     400 {object} ErrorResponse "Invalid asset ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assetService.DeleteAsset(userID, assetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ASSET", "asset", assetID, c.ClientIP(), nil)
	h.dashboardService.InvalidateUser(userID)

	c.Status(http.StatusNoContent)
}
