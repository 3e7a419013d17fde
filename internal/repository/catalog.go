package repository

import (
	"errors"

	"github.com/mealweek/mealweek-api/internal/models"
	"gorm.io/gorm"
)

// TagRepository is a repository for tags.
type TagRepository struct {
	DB *gorm.DB
}

// NewTagRepository creates a new TagRepository.
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{DB: db}
}

// FindAll returns all tags ordered by name.
func (r *TagRepository) FindAll() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.DB.Order("name ASC").Find(&tags).Error
	return tags, err
}

// FindOrCreateByName returns the tag with the given name, creating it first
// if it does not exist.
func (r *TagRepository) FindOrCreateByName(name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.DB.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = models.Tag{Name: name}
	if err := r.DB.Create(&tag).Error; err != nil {
		if IsDuplicateKey(err) {
			// Lost a create race; the winner's row is the one we want.
			err = r.DB.Where("name = ?", name).First(&tag).Error
		}
		if err != nil {
			return nil, err
		}
	}
	return &tag, nil
}

// IngredientRepository is a repository for ingredients.
type IngredientRepository struct {
	DB *gorm.DB
}

// NewIngredientRepository creates a new IngredientRepository.
func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{DB: db}
}

// FindAll returns all ingredients ordered by name.
func (r *IngredientRepository) FindAll() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := r.DB.Order("name ASC").Find(&ingredients).Error
	return ingredients, err
}

// FindOrCreateByName returns the ingredient with the given name, creating it
// first if it does not exist.
func (r *IngredientRepository) FindOrCreateByName(name string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.DB.Where("name = ?", name).First(&ingredient).Error
	if err == nil {
		return &ingredient, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ingredient = models.Ingredient{Name: name}
	if err := r.DB.Create(&ingredient).Error; err != nil {
		if IsDuplicateKey(err) {
			err = r.DB.Where("name = ?", name).First(&ingredient).Error
		}
		if err != nil {
			return nil, err
		}
	}
	return &ingredient, nil
}
