package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/epicsistemas10/meubolso/internal/errors"
	"github.com/epicsistemas10/meubolso/internal/models"
	"github.com/epicsistemas10/meubolso/internal/pagination"
)

// investmentService handles investment-related business logic.
type investmentService struct {
	db *gorm.DB
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB) InvestmentServicer {
	return &investmentService{db: db}
}

// EffectiveValue returns the position's current worth, falling back to the
// invested amount when no mark-to-market value has been recorded.
func EffectiveValue(inv models.Investment) int64 {
	if inv.CurrentValue > 0 {
		return inv.CurrentValue
	}
	return inv.InvestedAmount
}

// CreateInvestment records a new investment position.
func (s *investmentService) CreateInvestment(userID string, fields InvestmentFields) (*models.Investment, error) {
	if fields.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "investment name is required")
	}
	if fields.InvestedAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invested amount must be greater than zero")
	}
	if fields.CurrentValue < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current value cannot be negative")
	}

	investment := &models.Investment{
		UserID:         userID,
		Name:           fields.Name,
		Type:           fields.Type,
		InvestedAmount: fields.InvestedAmount,
		CurrentValue:   fields.CurrentValue,
		Ticker:         fields.Ticker,
		Quantity:       fields.Quantity,
		Rate:           fields.Rate,
		Notes:          fields.Notes,
	}

	if err := s.db.Create(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investment, nil
}

// GetUserInvestments retrieves a paginated list of the user's investments.
func (s *investmentService) GetUserInvestments(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error) {
	page.Defaults()

	base := s.db.Model(&models.Investment{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investments []models.Investment
	if err := base.Scopes(pagination.Paginate(page)).Order("created_at DESC").Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(investments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetInvestmentByID retrieves an investment by ID for a specific user.
func (s *investmentService) GetInvestmentByID(userID, investmentID string) (*models.Investment, error) {
	var investment models.Investment
	if err := s.db.Where("id = ? AND user_id = ?", investmentID, userID).First(&investment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investment, nil
}

// UpdateCurrentValue marks the position to its current market value.
func (s *investmentService) UpdateCurrentValue(userID, investmentID string, currentValue int64) (*models.Investment, error) {
	if currentValue < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current value cannot be negative")
	}

	investment, err := s.GetInvestmentByID(userID, investmentID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(investment).Update("current_value", currentValue).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	investment.CurrentValue = currentValue
	return investment, nil
}

// DeleteInvestment soft-deletes an investment.
func (s *investmentService) DeleteInvestment(userID, investmentID string) error {
	investment, err := s.GetInvestmentByID(userID, investmentID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(investment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetTotals aggregates the user's positions into invested/current/gain sums.
func (s *investmentService) GetTotals(userID string) (*InvestmentTotals, error) {
	var investments []models.Investment
	if err := s.db.Where("user_id = ?", userID).Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := &InvestmentTotals{}
	for _, inv := range investments {
		totals.Invested += inv.InvestedAmount
		totals.Current += EffectiveValue(inv)
	}
	totals.GainLoss = totals.Current - totals.Invested
	if totals.Invested > 0 {
		totals.GainLossPct = float64(totals.GainLoss) / float64(totals.Invested) * 100
	}
	return totals, nil
}
