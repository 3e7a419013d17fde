package service

import (
	"strings"

	goaway "github.com/TwiN/go-away"
	"github.com/mealweek/mealweek-api/internal/config"
	"github.com/mealweek/mealweek-api/internal/models"
	"github.com/mealweek/mealweek-api/internal/repository"
)

// RecipeService owns recipe validation, the search combination rules, and
// the tag/ingredient replace workflows.
type RecipeService struct {
	Cfg         *config.Config
	Repo        repository.RecipeRepo
	Tags        repository.TagRepo
	Ingredients repository.IngredientRepo
}

// NewRecipeService is the constructor function for initializing a new RecipeService.
func NewRecipeService(cfg *config.Config, repo repository.RecipeRepo, tags repository.TagRepo, ingredients repository.IngredientRepo) *RecipeService {
	return &RecipeService{Cfg: cfg, Repo: repo, Tags: tags, Ingredients: ingredients}
}

// RecipeInput carries the user-supplied fields for creating or updating a
// recipe.
type RecipeInput struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Instructions string            `json:"instructions"`
	ImageURL     string            `json:"image_url"`
	PrepTime     int               `json:"prep_time"`
	CookTime     int               `json:"cook_time"`
	Servings     int               `json:"servings"`
	Difficulty   models.Difficulty `json:"difficulty"`
	CategoryIDs  []uint            `json:"category_ids"`
	TagNames     []string          `json:"tags"`
}

// IngredientInput is one entry of a recipe's ingredient list as submitted by
// the user; names are resolved to ingredient rows on write.
type IngredientInput struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// ListRecipes applies the search surface's combination rule: a tag filter is
// used alone (any keyword is ignored), otherwise the category filter narrows
// first and the keyword substring match applies to the already-narrowed set.
func (s *RecipeService) ListRecipes(keyword string, categoryID, tagID uint) ([]models.Recipe, error) {
	if tagID != 0 {
		return s.Repo.FindByTag(tagID)
	}

	if categoryID != 0 {
		recipes, err := s.Repo.FindByCategory(categoryID)
		if err != nil {
			return nil, err
		}
		return filterByKeyword(recipes, keyword), nil
	}

	if keyword != "" {
		return s.Repo.Search(keyword)
	}

	return s.Repo.FindAll()
}

// filterByKeyword narrows an already-fetched recipe list by case-insensitive
// substring match over title and description.
func filterByKeyword(recipes []models.Recipe, keyword string) []models.Recipe {
	if keyword == "" {
		return recipes
	}
	needle := strings.ToLower(keyword)
	matched := make([]models.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		if strings.Contains(strings.ToLower(recipe.Title), needle) ||
			strings.Contains(strings.ToLower(recipe.Description), needle) {
			matched = append(matched, recipe)
		}
	}
	return matched
}

// GetRecipe returns a recipe with its categories, tags and ingredients.
func (s *RecipeService) GetRecipe(recipeID uint) (*models.Recipe, error) {
	recipe, err := s.Repo.FindByID(recipeID)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.Repo.GetIngredients(recipeID)
	if err != nil {
		return nil, err
	}
	recipe.Ingredients = ingredients
	return recipe, nil
}

// CreateRecipe validates and creates a recipe with its initial category and
// tag associations, returning the new recipe's ID.
func (s *RecipeService) CreateRecipe(input RecipeInput) (uint, error) {
	if err := validateRecipeInput(&input); err != nil {
		return 0, err
	}

	recipe := &models.Recipe{
		Title:        input.Title,
		Description:  input.Description,
		Instructions: input.Instructions,
		ImageURL:     input.ImageURL,
		PrepTime:     input.PrepTime,
		CookTime:     input.CookTime,
		Servings:     input.Servings,
		Difficulty:   input.Difficulty,
	}
	if err := s.Repo.CreateRecipe(recipe); err != nil {
		return 0, err
	}

	for _, categoryID := range input.CategoryIDs {
		if err := s.Repo.AddCategory(recipe.ID, categoryID); err != nil {
			return 0, err
		}
	}
	for _, name := range input.TagNames {
		tag, err := s.Tags.FindOrCreateByName(strings.TrimSpace(name))
		if err != nil {
			return 0, err
		}
		if err := s.Repo.AddTag(recipe.ID, tag.ID); err != nil {
			return 0, err
		}
	}

	return recipe.ID, nil
}

// UpdateRecipe validates and updates a recipe's scalar fields, then replaces
// its category set when one is supplied.
func (s *RecipeService) UpdateRecipe(recipeID uint, input RecipeInput) error {
	if err := validateRecipeInput(&input); err != nil {
		return err
	}

	recipe := &models.Recipe{
		Title:        input.Title,
		Description:  input.Description,
		Instructions: input.Instructions,
		ImageURL:     input.ImageURL,
		PrepTime:     input.PrepTime,
		CookTime:     input.CookTime,
		Servings:     input.Servings,
		Difficulty:   input.Difficulty,
	}
	recipe.ID = recipeID
	if err := s.Repo.UpdateRecipe(recipe); err != nil {
		return err
	}

	if input.CategoryIDs != nil {
		return s.Repo.ReplaceCategories(recipeID, input.CategoryIDs)
	}
	return nil
}

// DeleteRecipe deletes a recipe and all of its associations.
func (s *RecipeService) DeleteRecipe(recipeID uint) error {
	if err := s.Repo.RemoveAllCategories(recipeID); err != nil {
		return err
	}
	if err := s.Repo.RemoveAllTags(recipeID); err != nil {
		return err
	}
	if err := s.Repo.RemoveAllIngredients(recipeID); err != nil {
		return err
	}
	return s.Repo.DeleteRecipe(recipeID)
}

// AddTagToRecipe resolves a tag name and associates it with the recipe.
// Re-adding an existing tag succeeds and changes nothing.
func (s *RecipeService) AddTagToRecipe(recipeID uint, tagName string) error {
	name := strings.TrimSpace(tagName)
	if name == "" {
		return NewValidationError("tag name is required")
	}
	tag, err := s.Tags.FindOrCreateByName(name)
	if err != nil {
		return err
	}
	return s.Repo.AddTag(recipeID, tag.ID)
}

// RemoveTagFromRecipe removes a tag association; absent pairs are a no-op.
func (s *RecipeService) RemoveTagFromRecipe(recipeID, tagID uint) error {
	return s.Repo.RemoveTag(recipeID, tagID)
}

// ReplaceRecipeTags swaps the recipe's tag set for the named one. Names are
// resolved (or created) first; the junction swap itself is atomic.
func (s *RecipeService) ReplaceRecipeTags(recipeID uint, tagNames []string) error {
	tagIDs := make([]uint, 0, len(tagNames))
	seen := make(map[uint]bool)
	for _, name := range tagNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tag, err := s.Tags.FindOrCreateByName(name)
		if err != nil {
			return err
		}
		if !seen[tag.ID] {
			seen[tag.ID] = true
			tagIDs = append(tagIDs, tag.ID)
		}
	}
	return s.Repo.ReplaceTags(recipeID, tagIDs)
}

// AddIngredientToRecipe associates an ingredient with the recipe, carrying
// quantity and unit on the junction row.
func (s *RecipeService) AddIngredientToRecipe(recipeID uint, input IngredientInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return NewValidationError("ingredient name is required")
	}
	if input.Quantity <= 0 {
		return NewValidationError("ingredient quantity must be positive")
	}
	ingredient, err := s.Ingredients.FindOrCreateByName(name)
	if err != nil {
		return err
	}
	return s.Repo.AddIngredient(recipeID, ingredient.ID, input.Quantity, input.Unit)
}

// RemoveIngredientFromRecipe removes an ingredient association; absent pairs
// are a no-op.
func (s *RecipeService) RemoveIngredientFromRecipe(recipeID, ingredientID uint) error {
	return s.Repo.RemoveIngredient(recipeID, ingredientID)
}

// ReplaceRecipeIngredients swaps the recipe's ingredient list for the given
// one. Names are resolved (or created) first; the junction swap is atomic.
func (s *RecipeService) ReplaceRecipeIngredients(recipeID uint, inputs []IngredientInput) error {
	rows := make([]models.RecipeIngredient, 0, len(inputs))
	for _, input := range inputs {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			continue
		}
		if input.Quantity <= 0 {
			return NewValidationError("ingredient quantity must be positive")
		}
		ingredient, err := s.Ingredients.FindOrCreateByName(name)
		if err != nil {
			return err
		}
		rows = append(rows, models.RecipeIngredient{
			IngredientID: ingredient.ID,
			Quantity:     input.Quantity,
			Unit:         input.Unit,
		})
	}
	return s.Repo.ReplaceIngredients(recipeID, rows)
}

// validateRecipeInput rejects bad input before any mutation and normalizes
// defaults the same way the storage layer would.
func validateRecipeInput(input *RecipeInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return NewValidationError("title is required")
	}
	if strings.TrimSpace(input.Instructions) == "" {
		return NewValidationError("instructions are required")
	}
	if goaway.IsProfane(input.Title) {
		return NewValidationError("title contains inappropriate language")
	}
	if input.PrepTime < 0 || input.CookTime < 0 {
		return NewValidationError("prep and cook time cannot be negative")
	}
	if input.Servings < 1 {
		input.Servings = 1
	}
	if input.Difficulty == "" {
		input.Difficulty = models.DifficultyEasy
	}
	if !input.Difficulty.Valid() {
		return NewValidationError("difficulty must be easy, medium or hard")
	}
	return nil
}
