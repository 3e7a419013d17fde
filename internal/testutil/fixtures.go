package testutil

import (
	"github.com/mealweek/mealweek-api/internal/models"
	"gorm.io/gorm"
)

// TestRecipe returns a populated recipe fixture.
func TestRecipe() *models.Recipe {
	return &models.Recipe{
		Model:        gorm.Model{ID: 1},
		Title:        "Classic Pancakes",
		Description:  "Fluffy weekend pancakes",
		Instructions: "Mix, rest, fry.",
		PrepTime:     10,
		CookTime:     20,
		Servings:     4,
		Difficulty:   models.DifficultyEasy,
	}
}

// TestCategory returns a category fixture with the given ID, name and
// display order.
func TestCategory(id uint, name string, displayOrder int) models.Category {
	category := models.Category{
		Name:         name,
		Icon:         "icon-" + name,
		Color:        "#3b82f6",
		DisplayOrder: displayOrder,
	}
	category.ID = id
	return category
}

// TestPlanItem returns a plan item fixture.
func TestPlanItem(planID, recipeID uint, day int, mealType models.MealType) *models.WeeklyPlanItem {
	return &models.WeeklyPlanItem{
		WeeklyPlanID: planID,
		RecipeID:     recipeID,
		DayOfWeek:    day,
		MealType:     mealType,
		Servings:     2,
	}
}
