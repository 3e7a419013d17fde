package repository

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mealweek/mealweek-api/internal/models"
	"gorm.io/gorm"
)

// FieldSeparator joins multi-value columns in the flattened recipe queries.
// It is used for every multi-value field, tags included; the legacy scheme
// used a bare comma for ids, names and tags, which collides with commas
// inside free-text names. LegacyFieldSeparator is kept so rows flattened the
// old way can still be aggregated.
const (
	FieldSeparator       = "|||"
	LegacyFieldSeparator = ","
)

// FlatRecipeRow is one row of a flattened recipe query: the recipe's scalar
// columns plus separator-joined category fields, all four pre-ordered by
// category display_order at the source, and a separator-joined tag list.
type FlatRecipeRow struct {
	ID           uint
	Title        string
	Description  string
	Instructions string
	ImageURL     string `gorm:"column:image_url"`
	PrepTime     int
	CookTime     int
	Servings     int
	Difficulty   models.Difficulty

	CategoryIDs    string `gorm:"column:category_ids"`
	CategoryNames  string `gorm:"column:category_names"`
	CategoryIcons  string `gorm:"column:category_icons"`
	CategoryColors string `gorm:"column:category_colors"`
	TagNames       string `gorm:"column:tag_names"`
}

// Aggregator reconstructs nested recipe associations out of flattened rows.
type Aggregator struct {
	Sep string
}

// NewAggregator returns an Aggregator using the collision-safe separator.
func NewAggregator() Aggregator {
	return Aggregator{Sep: FieldSeparator}
}

// Aggregate turns one flattened row into a Recipe with its ordered category
// list and tag list attached. The four category columns are split and zipped
// positionally; their order is the source order (display_order) and is
// preserved as-is, never re-sorted. A length mismatch between the four
// columns is a data-integrity error, never silently truncated.
func (a Aggregator) Aggregate(row FlatRecipeRow) (*models.Recipe, error) {
	recipe := &models.Recipe{
		Model:        gorm.Model{ID: row.ID},
		Title:        row.Title,
		Description:  row.Description,
		Instructions: row.Instructions,
		ImageURL:     row.ImageURL,
		PrepTime:     row.PrepTime,
		CookTime:     row.CookTime,
		Servings:     row.Servings,
		Difficulty:   row.Difficulty,
	}

	categories, err := a.parseCategories(row)
	if err != nil {
		return nil, err
	}
	recipe.Categories = categories

	// Duplicate tags pass through in first-seen order.
	recipe.Tags = a.split(row.TagNames)

	return recipe, nil
}

// AggregateAll aggregates a slice of flattened rows, one recipe per row.
func (a Aggregator) AggregateAll(rows []FlatRecipeRow) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0, len(rows))
	for _, row := range rows {
		recipe, err := a.Aggregate(row)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *recipe)
	}
	return recipes, nil
}

func (a Aggregator) parseCategories(row FlatRecipeRow) ([]models.Category, error) {
	// Empty ids means no categories at all, never one blank entry.
	ids := a.split(row.CategoryIDs)
	if len(ids) == 0 {
		return []models.Category{}, nil
	}

	names := a.split(row.CategoryNames)
	icons := a.split(row.CategoryIcons)
	colors := a.split(row.CategoryColors)

	if len(names) != len(ids) || len(icons) != len(ids) || len(colors) != len(ids) {
		return nil, NewIntegrityError(
			fmt.Sprintf("mismatched category columns for recipe %d: %d ids, %d names, %d icons, %d colors",
				row.ID, len(ids), len(names), len(icons), len(colors)),
			nil,
		)
	}

	categories := make([]models.Category, 0, len(ids))
	for i, rawID := range ids {
		id, err := strconv.ParseUint(strings.TrimSpace(rawID), 10, 64)
		if err != nil {
			return nil, NewIntegrityError(
				fmt.Sprintf("bad category id %q for recipe %d", rawID, row.ID), err)
		}
		categories = append(categories, models.Category{
			Model: gorm.Model{ID: uint(id)},
			Name:  names[i],
			Icon:  icons[i],
			Color: colors[i],
		})
	}
	return categories, nil
}

// split breaks a joined multi-value field apart. An empty field yields a nil
// slice rather than a single empty element.
func (a Aggregator) split(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, a.Sep)
}
