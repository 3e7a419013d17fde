package repository

import "github.com/mealweek/mealweek-api/internal/models"

// RecipeRepo is the interface for recipe repository operations, including
// the category, tag and ingredient junction management.
type RecipeRepo interface {
	FindAll() ([]models.Recipe, error)
	Search(keyword string) ([]models.Recipe, error)
	FindByCategory(categoryID uint) ([]models.Recipe, error)
	FindByTag(tagID uint) ([]models.Recipe, error)
	FindByID(recipeID uint) (*models.Recipe, error)
	GetIngredients(recipeID uint) ([]models.RecipeIngredient, error)
	CreateRecipe(recipe *models.Recipe) error
	UpdateRecipe(recipe *models.Recipe) error
	DeleteRecipe(recipeID uint) error

	AddCategory(recipeID, categoryID uint) error
	RemoveCategory(recipeID, categoryID uint) error
	RemoveAllCategories(recipeID uint) error
	ReplaceCategories(recipeID uint, categoryIDs []uint) error

	AddTag(recipeID, tagID uint) error
	RemoveTag(recipeID, tagID uint) error
	RemoveAllTags(recipeID uint) error
	ReplaceTags(recipeID uint, tagIDs []uint) error

	AddIngredient(recipeID, ingredientID uint, quantity float64, unit string) error
	RemoveIngredient(recipeID, ingredientID uint) error
	RemoveAllIngredients(recipeID uint) error
	ReplaceIngredients(recipeID uint, ingredients []models.RecipeIngredient) error
}

// PlanRepo is the interface for weekly-plan repository operations.
type PlanRepo interface {
	FindByUserAndDate(userID uint, weekStartDate string) (*models.WeeklyPlan, error)
	FindByID(planID uint) (*models.WeeklyPlan, error)
	FindByUser(userID uint) ([]models.WeeklyPlan, error)
	Create(plan *models.WeeklyPlan) error
	UpdateServings(planID uint, servings int) error
	GetPlanWithMeals(planID uint) ([]PlanMealRow, error)
	GetMealsForDay(planID uint, dayOfWeek int) ([]PlanMealRow, error)
	CreateItem(item *models.WeeklyPlanItem) error
	GetItem(itemID uint) (*models.WeeklyPlanItem, error)
	UpdateItem(itemID uint, dayOfWeek int, mealType models.MealType, servings int) error
	DeleteItem(itemID uint) error
}

// CategoryRepo is the interface for category repository operations.
type CategoryRepo interface {
	FindAll() ([]models.Category, error)
	FindByID(categoryID uint) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(categoryID uint) error
}

// TagRepo is the interface for tag repository operations.
type TagRepo interface {
	FindAll() ([]models.Tag, error)
	FindOrCreateByName(name string) (*models.Tag, error)
}

// IngredientRepo is the interface for ingredient repository operations.
type IngredientRepo interface {
	FindAll() ([]models.Ingredient, error)
	FindOrCreateByName(name string) (*models.Ingredient, error)
}

// UserRepo is the interface for user repository operations.
type UserRepo interface {
	CreateUser(user *models.User) (*models.User, error)
	GetUserByID(userID uint) (*models.User, error)
	GetUserAuthByUsername(username string) (*models.User, error)
	UsernameExists(username string) (bool, error)
}
