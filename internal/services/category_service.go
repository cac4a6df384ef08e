package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/epicsistemas10/meubolso/internal/errors"
	"github.com/epicsistemas10/meubolso/internal/models"
	"github.com/epicsistemas10/meubolso/internal/pagination"
)

// defaultCategories is the set seeded for every new user.
var defaultCategories = []models.Category{
	{Name: "Salário", Type: models.CategoryTypeIncome, Icon: "ri-money-dollar-circle-line", Color: "#34C759"},
	{Name: "Freelance", Type: models.CategoryTypeIncome, Icon: "ri-briefcase-line", Color: "#30B0C7"},
	{Name: "Investimentos", Type: models.CategoryTypeIncome, Icon: "ri-line-chart-line", Color: "#007AFF"},
	{Name: "Outros", Type: models.CategoryTypeIncome, Icon: "ri-add-circle-line", Color: "#5856D6"},
	{Name: "Alimentação", Type: models.CategoryTypeExpense, Icon: "ri-restaurant-line", Color: "#FF9500"},
	{Name: "Transporte", Type: models.CategoryTypeExpense, Icon: "ri-car-line", Color: "#FF2D55"},
	{Name: "Moradia", Type: models.CategoryTypeExpense, Icon: "ri-home-line", Color: "#AF52DE"},
	{Name: "Saúde", Type: models.CategoryTypeExpense, Icon: "ri-heart-pulse-line", Color: "#FF3B30"},
	{Name: "Educação", Type: models.CategoryTypeExpense, Icon: "ri-graduation-cap-line", Color: "#5AC8FA"},
	{Name: "Lazer", Type: models.CategoryTypeExpense, Icon: "ri-gamepad-line", Color: "#FFD60A"},
	{Name: "Compras", Type: models.CategoryTypeExpense, Icon: "ri-shopping-bag-line", Color: "#FF6482"},
	{Name: "Contas", Type: models.CategoryTypeExpense, Icon: "ri-file-list-3-line", Color: "#8E8E93"},
}

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category for a user.
func (s *categoryService) CreateCategory(userID, name string, categoryType models.CategoryType, icon, color string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Type:   categoryType,
		Icon:   icon,
		Color:  color,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetUserCategories returns a paginated list of the user's categories,
// optionally filtered by type, ordered by name.
func (s *categoryService) GetUserCategories(userID string, categoryType *models.CategoryType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	base := s.db.Model(&models.Category{}).Where("user_id = ?", userID)
	if categoryType != nil {
		base = base.Where("type = ?", *categoryType)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Scopes(pagination.Paginate(page)).Order("name").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoryByID retrieves a category by ID for a specific user.
func (s *categoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates a category's display fields. The type is fixed at
// creation.
func (s *categoryService) UpdateCategory(userID, categoryID string, name, icon, color string) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if icon != "" {
		updates["icon"] = icon
	}
	if color != "" {
		updates["color"] = color
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// DeleteCategory soft-deletes a category unless transactions reference it.
func (s *categoryService) DeleteCategory(userID, categoryID string) error {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}

	var inUse int64
	if err := s.db.Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&inUse).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if inUse > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SeedDefaults inserts the default category set for a new user.
func (s *categoryService) SeedDefaults(tx *gorm.DB, userID string) error {
	categories := make([]models.Category, len(defaultCategories))
	for i, c := range defaultCategories {
		c.UserID = userID
		categories[i] = c
	}
	if err := tx.Create(&categories).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
