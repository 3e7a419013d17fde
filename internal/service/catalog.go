package service

import (
	"github.com/mealweek/mealweek-api/internal/config"
	"github.com/mealweek/mealweek-api/internal/models"
	"github.com/mealweek/mealweek-api/internal/repository"
)

// CatalogService exposes the tag and ingredient catalogs for the recipe
// editing surfaces.
type CatalogService struct {
	Cfg         *config.Config
	Tags        repository.TagRepo
	Ingredients repository.IngredientRepo
}

// NewCatalogService is the constructor function for initializing a new CatalogService.
func NewCatalogService(cfg *config.Config, tags repository.TagRepo, ingredients repository.IngredientRepo) *CatalogService {
	return &CatalogService{Cfg: cfg, Tags: tags, Ingredients: ingredients}
}

// GetAllTags returns every tag ordered by name.
func (s *CatalogService) GetAllTags() ([]models.Tag, error) {
	return s.Tags.FindAll()
}

// GetAllIngredients returns every ingredient ordered by name.
func (s *CatalogService) GetAllIngredients() ([]models.Ingredient, error) {
	return s.Ingredients.FindAll()
}
