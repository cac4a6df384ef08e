package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/epicsistemas10/meubolso/internal/errors"
	"github.com/epicsistemas10/meubolso/internal/models"
)

// assetService handles physical asset ("patrimônio") business logic.
type assetService struct {
	db *gorm.DB
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB) AssetServicer {
	return &assetService{db: db}
}

// CreateAsset records a new physical asset.
func (s *assetService) CreateAsset(userID string, fields AssetFields) (*models.Asset, error) {
	if fields.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset name is required")
	}
	if fields.EstimatedValue <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "estimated value must be greater than zero")
	}
	if fields.PurchaseValue != nil && *fields.PurchaseValue < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "purchase value cannot be negative")
	}

	asset := &models.Asset{
		UserID:         userID,
		Name:           fields.Name,
		Type:           fields.Type,
		EstimatedValue: fields.EstimatedValue,
		PurchaseValue:  fields.PurchaseValue,
		PurchaseDate:   fields.PurchaseDate,
		Notes:          fields.Notes,
		Icon:           fields.Icon,
		Color:          fields.Color,
	}

	if err := s.db.Create(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return asset, nil
}

// GetUserAssets returns the user's assets, newest first.
func (s *assetService) GetUserAssets(userID string) ([]models.Asset, error) {
	var assets []models.Asset
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return assets, nil
}

// GetAssetByID retrieves an asset by ID for a specific user.
func (s *assetService) GetAssetByID(userID, assetID string) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.Where("id = ? AND user_id = ?", assetID, userID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// DeleteAsset soft-deletes an asset without recording a sale.
func (s *assetService) DeleteAsset(userID, assetID string) error {
	asset, err := s.GetAssetByID(userID, assetID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(asset).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SellAsset removes the asset and records the sale as an income transaction,
// atomically. The transaction carries no account so the proceeds can be
// assigned to one later.
func (s *assetService) SellAsset(userID, assetID string, salePrice int64) (*models.Transaction, error) {
	if salePrice <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "sale price must be greater than zero")
	}

	asset, err := s.GetAssetByID(userID, assetID)
	if err != nil {
		return nil, err
	}

	notes := ""
	if asset.PurchaseValue != nil {
		notes = fmt.Sprintf("Valor de compra: %d", *asset.PurchaseValue)
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Type:        models.TransactionTypeIncome,
		Amount:      salePrice,
		Description: "Venda - " + asset.Name,
		Date:        time.Now(),
		Notes:       notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(asset).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}
