package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mealweek/mealweek-api/internal/logger"
	"github.com/mealweek/mealweek-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeRepository is a repository for recipes and their category, tag and
// ingredient associations.
type RecipeRepository struct {
	DB  *gorm.DB
	agg Aggregator
}

// NewRecipeRepository creates a new RecipeRepository.
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{DB: db, agg: NewAggregator()}
}

// flatSelect is the column list shared by the flattened recipe queries. Each
// multi-value field is a separator-joined subquery ordered by the category
// display_order, so the aggregated output keeps the presentation order
// without any re-sorting. Subqueries sidestep the row-multiplication that
// joining two independent junctions onto one GROUP BY would cause.
func (r *RecipeRepository) flatSelect() string {
	sep := r.agg.Sep
	return fmt.Sprintf(`SELECT r.id, r.title, r.description, r.instructions, r.image_url,
		r.prep_time, r.cook_time, r.servings, r.difficulty,
		(SELECT string_agg(CAST(c.id AS TEXT), '%[1]s' ORDER BY c.display_order)
			FROM recipe_categories rc JOIN categories c ON c.id = rc.category_id
			WHERE rc.recipe_id = r.id) AS category_ids,
		(SELECT string_agg(c.name, '%[1]s' ORDER BY c.display_order)
			FROM recipe_categories rc JOIN categories c ON c.id = rc.category_id
			WHERE rc.recipe_id = r.id) AS category_names,
		(SELECT string_agg(c.icon, '%[1]s' ORDER BY c.display_order)
			FROM recipe_categories rc JOIN categories c ON c.id = rc.category_id
			WHERE rc.recipe_id = r.id) AS category_icons,
		(SELECT string_agg(c.color, '%[1]s' ORDER BY c.display_order)
			FROM recipe_categories rc JOIN categories c ON c.id = rc.category_id
			WHERE rc.recipe_id = r.id) AS category_colors,
		(SELECT string_agg(t.name, '%[1]s' ORDER BY rt.tag_id)
			FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
			WHERE rt.recipe_id = r.id) AS tag_names
	FROM recipes r`, sep)
}

// FindAll returns every recipe with its aggregated associations, ordered by
// title.
func (r *RecipeRepository) FindAll() ([]models.Recipe, error) {
	var rows []FlatRecipeRow
	query := r.flatSelect() + ` WHERE r.deleted_at IS NULL ORDER BY r.title ASC`
	if err := r.DB.Raw(query).Scan(&rows).Error; err != nil {
		logger.Get().Error("failed to list recipes", zap.Error(err))
		return nil, err
	}
	return r.agg.AggregateAll(rows)
}

// Search returns recipes whose title or description contains the keyword,
// case-insensitively.
func (r *RecipeRepository) Search(keyword string) ([]models.Recipe, error) {
	var rows []FlatRecipeRow
	pattern := "%" + strings.ToLower(keyword) + "%"
	query := r.flatSelect() + ` WHERE r.deleted_at IS NULL
		AND (LOWER(r.title) LIKE ? OR LOWER(r.description) LIKE ?)
		ORDER BY r.title ASC`
	if err := r.DB.Raw(query, pattern, pattern).Scan(&rows).Error; err != nil {
		logger.Get().Error("failed to search recipes", zap.String("keyword", keyword), zap.Error(err))
		return nil, err
	}
	return r.agg.AggregateAll(rows)
}

// FindByCategory returns recipes associated with the given category. The
// aggregated category list on each recipe still contains all of the recipe's
// categories, not only the filtered one.
func (r *RecipeRepository) FindByCategory(categoryID uint) ([]models.Recipe, error) {
	var rows []FlatRecipeRow
	query := r.flatSelect() + ` WHERE r.deleted_at IS NULL
		AND EXISTS (SELECT 1 FROM recipe_categories rc
			WHERE rc.recipe_id = r.id AND rc.category_id = ?)
		ORDER BY r.title ASC`
	if err := r.DB.Raw(query, categoryID).Scan(&rows).Error; err != nil {
		logger.Get().Error("failed to filter recipes by category", zap.Uint("category_id", categoryID), zap.Error(err))
		return nil, err
	}
	return r.agg.AggregateAll(rows)
}

// FindByTag returns recipes associated with the given tag.
func (r *RecipeRepository) FindByTag(tagID uint) ([]models.Recipe, error) {
	var rows []FlatRecipeRow
	query := r.flatSelect() + ` WHERE r.deleted_at IS NULL
		AND EXISTS (SELECT 1 FROM recipe_tags rt
			WHERE rt.recipe_id = r.id AND rt.tag_id = ?)
		ORDER BY r.title ASC`
	if err := r.DB.Raw(query, tagID).Scan(&rows).Error; err != nil {
		logger.Get().Error("failed to filter recipes by tag", zap.Uint("tag_id", tagID), zap.Error(err))
		return nil, err
	}
	return r.agg.AggregateAll(rows)
}

// FindByID returns a single recipe with its aggregated categories and tags.
func (r *RecipeRepository) FindByID(recipeID uint) (*models.Recipe, error) {
	var rows []FlatRecipeRow
	query := r.flatSelect() + ` WHERE r.deleted_at IS NULL AND r.id = ?`
	if err := r.DB.Raw(query, recipeID).Scan(&rows).Error; err != nil {
		logger.Get().Error("failed to get recipe", zap.Uint("recipe_id", recipeID), zap.Error(err))
		return nil, err
	}
	if len(rows) == 0 {
		return nil, NewNotFoundError("Recipe not found")
	}
	return r.agg.Aggregate(rows[0])
}

// GetIngredients returns a recipe's ingredient junction rows with the
// ingredient names joined in.
func (r *RecipeRepository) GetIngredients(recipeID uint) ([]models.RecipeIngredient, error) {
	var rows []models.RecipeIngredient
	err := r.DB.Table("recipe_ingredients ri").
		Select("ri.recipe_id, ri.ingredient_id, ri.quantity, ri.unit, i.name AS ingredient_name").
		Joins("JOIN ingredients i ON i.id = ri.ingredient_id").
		Where("ri.recipe_id = ?", recipeID).
		Order("i.name ASC").
		Scan(&rows).Error
	if err != nil {
		logger.Get().Error("failed to get recipe ingredients", zap.Uint("recipe_id", recipeID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// CreateRecipe creates a new recipe.
func (r *RecipeRepository) CreateRecipe(recipe *models.Recipe) error {
	err := r.DB.Create(recipe).Error
	if err != nil {
		logger.Get().Error("failed to create recipe", zap.Error(err))
	}
	return err
}

// UpdateRecipe updates the scalar fields of a recipe. Associations are
// managed through the junction operations below.
func (r *RecipeRepository) UpdateRecipe(recipe *models.Recipe) error {
	result := r.DB.Model(&models.Recipe{}).
		Where("id = ?", recipe.ID).
		Updates(map[string]interface{}{
			"title":        recipe.Title,
			"description":  recipe.Description,
			"instructions": recipe.Instructions,
			"image_url":    recipe.ImageURL,
			"prep_time":    recipe.PrepTime,
			"cook_time":    recipe.CookTime,
			"servings":     recipe.Servings,
			"difficulty":   recipe.Difficulty,
		})
	if result.Error != nil {
		logger.Get().Error("failed to update recipe", zap.Uint("recipe_id", recipe.ID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("Recipe not found")
	}
	return nil
}

// DeleteRecipe deletes a recipe.
func (r *RecipeRepository) DeleteRecipe(recipeID uint) error {
	err := r.DB.Delete(&models.Recipe{}, recipeID).Error
	if err != nil {
		logger.Get().Error("failed to delete recipe", zap.Uint("recipe_id", recipeID), zap.Error(err))
	}
	return err
}

// AddCategory associates a category with a recipe. Adding a pair that is
// already present succeeds and changes nothing.
func (r *RecipeRepository) AddCategory(recipeID, categoryID uint) error {
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.RecipeCategory{RecipeID: recipeID, CategoryID: categoryID}).Error
}

// RemoveCategory removes a recipe-category pair. Removing an absent pair is
// a no-op success.
func (r *RecipeRepository) RemoveCategory(recipeID, categoryID uint) error {
	return r.DB.Where("recipe_id = ? AND category_id = ?", recipeID, categoryID).
		Delete(&models.RecipeCategory{}).Error
}

// RemoveAllCategories removes every category association for a recipe.
func (r *RecipeRepository) RemoveAllCategories(recipeID uint) error {
	return r.DB.Where("recipe_id = ?", recipeID).Delete(&models.RecipeCategory{}).Error
}

// ReplaceCategories swaps a recipe's category set for the given one inside a
// single transaction, so readers never observe the transiently empty set.
func (r *RecipeRepository) ReplaceCategories(recipeID uint, categoryIDs []uint) error {
	return r.replaceJunction(recipeID, func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeCategory{}).Error; err != nil {
			return err
		}
		for _, categoryID := range categoryIDs {
			pair := models.RecipeCategory{RecipeID: recipeID, CategoryID: categoryID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&pair).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AddTag associates a tag with a recipe. Like AddCategory this is
// idempotent; the composite primary key on recipe_tags rejects duplicates
// that the reference system used to accumulate.
func (r *RecipeRepository) AddTag(recipeID, tagID uint) error {
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.RecipeTag{RecipeID: recipeID, TagID: tagID}).Error
}

// RemoveTag removes a recipe-tag pair. Removing an absent pair is a no-op
// success.
func (r *RecipeRepository) RemoveTag(recipeID, tagID uint) error {
	return r.DB.Where("recipe_id = ? AND tag_id = ?", recipeID, tagID).
		Delete(&models.RecipeTag{}).Error
}

// RemoveAllTags removes every tag association for a recipe.
func (r *RecipeRepository) RemoveAllTags(recipeID uint) error {
	return r.DB.Where("recipe_id = ?", recipeID).Delete(&models.RecipeTag{}).Error
}

// ReplaceTags swaps a recipe's tag set for the given one inside a single
// transaction.
func (r *RecipeRepository) ReplaceTags(recipeID uint, tagIDs []uint) error {
	return r.replaceJunction(recipeID, func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			pair := models.RecipeTag{RecipeID: recipeID, TagID: tagID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&pair).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AddIngredient associates an ingredient with a recipe, carrying quantity
// and unit on the junction row. Re-adding an existing pair updates the
// quantity and unit in place.
func (r *RecipeRepository) AddIngredient(recipeID, ingredientID uint, quantity float64, unit string) error {
	row := models.RecipeIngredient{
		RecipeID:     recipeID,
		IngredientID: ingredientID,
		Quantity:     quantity,
		Unit:         unit,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "ingredient_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "unit"}),
	}).Create(&row).Error
}

// RemoveIngredient removes a recipe-ingredient pair. Removing an absent pair
// is a no-op success.
func (r *RecipeRepository) RemoveIngredient(recipeID, ingredientID uint) error {
	return r.DB.Where("recipe_id = ? AND ingredient_id = ?", recipeID, ingredientID).
		Delete(&models.RecipeIngredient{}).Error
}

// RemoveAllIngredients removes every ingredient association for a recipe.
func (r *RecipeRepository) RemoveAllIngredients(recipeID uint) error {
	return r.DB.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error
}

// ReplaceIngredients swaps a recipe's ingredient set for the given one inside
// a single transaction.
func (r *RecipeRepository) ReplaceIngredients(recipeID uint, ingredients []models.RecipeIngredient) error {
	return r.replaceJunction(recipeID, func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for _, ing := range ingredients {
			ing.RecipeID = recipeID
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ing).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// replaceJunction runs a delete-then-insert sequence atomically and verifies
// the recipe exists first, so a replace against a missing recipe is a
// NotFoundError rather than a silent write of orphan junction rows.
func (r *RecipeRepository) replaceJunction(recipeID uint, fn func(tx *gorm.DB) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return NewNotFoundError("Recipe not found")
		}
		return fn(tx)
	})
}

// IsDuplicateKey reports whether err is a unique-constraint violation.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
