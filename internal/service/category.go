package service

import (
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/mealweek/mealweek-api/internal/config"
	"github.com/mealweek/mealweek-api/internal/models"
	"github.com/mealweek/mealweek-api/internal/repository"
)

// CategoryService owns category CRUD and validation.
type CategoryService struct {
	Cfg  *config.Config
	Repo repository.CategoryRepo
}

// NewCategoryService is the constructor function for initializing a new CategoryService.
func NewCategoryService(cfg *config.Config, repo repository.CategoryRepo) *CategoryService {
	return &CategoryService{Cfg: cfg, Repo: repo}
}

// CategoryInput carries the user-supplied fields for a category.
type CategoryInput struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	Color        string `json:"color"`
	DisplayOrder int    `json:"display_order"`
}

// GetAllCategories returns every category in presentation order.
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	return s.Repo.FindAll()
}

// GetCategory returns a category by ID.
func (s *CategoryService) GetCategory(categoryID uint) (*models.Category, error) {
	return s.Repo.FindByID(categoryID)
}

// CreateCategory validates and creates a category, returning its ID.
func (s *CategoryService) CreateCategory(input CategoryInput) (uint, error) {
	if err := validateCategoryInput(&input); err != nil {
		return 0, err
	}
	category := &models.Category{
		Name:         input.Name,
		Description:  input.Description,
		Icon:         input.Icon,
		Color:        input.Color,
		DisplayOrder: input.DisplayOrder,
	}
	if err := s.Repo.Create(category); err != nil {
		return 0, err
	}
	return category.ID, nil
}

// UpdateCategory validates and updates a category.
func (s *CategoryService) UpdateCategory(categoryID uint, input CategoryInput) error {
	if err := validateCategoryInput(&input); err != nil {
		return err
	}
	category := &models.Category{
		Name:         input.Name,
		Description:  input.Description,
		Icon:         input.Icon,
		Color:        input.Color,
		DisplayOrder: input.DisplayOrder,
	}
	category.ID = categoryID
	return s.Repo.Update(category)
}

// DeleteCategory deletes a category.
func (s *CategoryService) DeleteCategory(categoryID uint) error {
	return s.Repo.Delete(categoryID)
}

func validateCategoryInput(input *CategoryInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return NewValidationError("category name is required")
	}
	if input.Color == "" {
		input.Color = "#6c757d"
	}
	if !govalidator.IsHexcolor(input.Color) {
		return NewValidationError("category color must be a hex color")
	}
	return nil
}
