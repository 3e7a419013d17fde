package repository

import (
	"errors"

	"github.com/mealweek/mealweek-api/internal/models"
	"gorm.io/gorm"
)

// CategoryRepository is a repository for categories.
type CategoryRepository struct {
	DB *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

// FindAll returns all categories in presentation order.
func (r *CategoryRepository) FindAll() ([]models.Category, error) {
	var categories []models.Category
	err := r.DB.Order("display_order ASC, name ASC").Find(&categories).Error
	return categories, err
}

// FindByID returns a category by its ID.
func (r *CategoryRepository) FindByID(categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := r.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Category not found")
		}
		return nil, err
	}
	return &category, nil
}

// Create inserts a new category.
func (r *CategoryRepository) Create(category *models.Category) error {
	return r.DB.Create(category).Error
}

// Update updates a category's fields.
func (r *CategoryRepository) Update(category *models.Category) error {
	result := r.DB.Model(&models.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":          category.Name,
			"description":   category.Description,
			"icon":          category.Icon,
			"color":         category.Color,
			"display_order": category.DisplayOrder,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("Category not found")
	}
	return nil
}

// Delete deletes a category.
func (r *CategoryRepository) Delete(categoryID uint) error {
	return r.DB.Delete(&models.Category{}, categoryID).Error
}
