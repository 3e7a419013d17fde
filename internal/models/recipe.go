package models

import (
	"gorm.io/gorm"
)

// Recipe is the model for a recipe.
type Recipe struct {
	gorm.Model
	Title        string `gorm:"not null"`
	Description  string
	Instructions string `gorm:"type:text;not null"`
	ImageURL     string
	PrepTime     int // minutes
	CookTime     int // minutes
	Servings     int        `gorm:"default:1"`
	Difficulty   Difficulty `gorm:"type:text;default:'easy'"`

	// Associations are loaded manually in the repository, either from the
	// flattened listing queries or from per-recipe junction queries, so the
	// ordering of categories by display_order survives end to end.
	Categories  []Category         `gorm:"-"`
	Tags        []string           `gorm:"-"`
	Ingredients []RecipeIngredient `gorm:"-"`
}

// Difficulty is the type for the recipe difficulty enum.
type Difficulty string

// Difficulty enum values.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty values.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Category is the model for a recipe category. DisplayOrder drives the
// presentation ordering of categories everywhere they appear.
type Category struct {
	gorm.Model
	Name         string `gorm:"uniqueIndex;not null"`
	Description  string
	Icon         string
	Color        string `gorm:"default:'#6c757d'"`
	DisplayOrder int    `gorm:"index"`
}

// Tag is the model for a recipe tag.
type Tag struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null"`
}

// Ingredient is the model for an ingredient. Quantity and unit live on the
// recipe-ingredient junction, not here.
type Ingredient struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null"`
}

// RecipeCategory is the recipe↔category junction. The composite primary key
// makes repeated adds of the same pair a no-op.
type RecipeCategory struct {
	RecipeID   uint `gorm:"primaryKey;autoIncrement:false"`
	CategoryID uint `gorm:"primaryKey;autoIncrement:false"`
}

// TableName overrides the gorm default pluralization.
func (RecipeCategory) TableName() string { return "recipe_categories" }

// RecipeTag is the recipe↔tag junction. The composite primary key enforces
// pair uniqueness; the reference system allowed duplicate rows here.
type RecipeTag struct {
	RecipeID uint `gorm:"primaryKey;autoIncrement:false"`
	TagID    uint `gorm:"primaryKey;autoIncrement:false"`
}

// TableName overrides the gorm default pluralization.
func (RecipeTag) TableName() string { return "recipe_tags" }

// RecipeIngredient is the recipe↔ingredient junction. Quantity and unit are
// attributes of the pairing itself.
type RecipeIngredient struct {
	RecipeID     uint    `gorm:"primaryKey;autoIncrement:false"`
	IngredientID uint    `gorm:"primaryKey;autoIncrement:false"`
	Quantity     float64 `gorm:"default:1"`
	Unit         string

	IngredientName string `gorm:"->;-:migration"` // joined in for display
}

// TableName overrides the gorm default pluralization.
func (RecipeIngredient) TableName() string { return "recipe_ingredients" }
