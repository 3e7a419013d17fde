package repository

import (
	"errors"

	"github.com/mealweek/mealweek-api/internal/logger"
	"github.com/mealweek/mealweek-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WeeklyPlanRepository is a repository for weekly plans and their items.
type WeeklyPlanRepository struct {
	DB *gorm.DB
}

// NewWeeklyPlanRepository creates a new WeeklyPlanRepository.
func NewWeeklyPlanRepository(db *gorm.DB) *WeeklyPlanRepository {
	return &WeeklyPlanRepository{DB: db}
}

// PlanMealRow is one row of the plan-with-meals join: the plan's columns
// plus, when an item exists, the item and its recipe's display fields. For a
// plan with zero items the LEFT JOINs still produce exactly one row whose
// item and recipe columns are all NULL; consumers must drop rows with a nil
// RecipeID before treating the result as a meal list.
type PlanMealRow struct {
	PlanID           uint   `gorm:"column:plan_id"`
	UserID           uint   `gorm:"column:user_id"`
	WeekStartDate    string `gorm:"column:week_start_date"`
	NumberOfServings int    `gorm:"column:number_of_servings"`

	ItemID    *uint            `gorm:"column:item_id"`
	RecipeID  *uint            `gorm:"column:recipe_id"`
	DayOfWeek *int             `gorm:"column:day_of_week"`
	MealType  *models.MealType `gorm:"column:meal_type"`
	Servings  *int             `gorm:"column:servings"`

	RecipeTitle *string `gorm:"column:recipe_title"`
	ImageURL    *string `gorm:"column:image_url"`
	PrepTime    *int    `gorm:"column:prep_time"`
	CookTime    *int    `gorm:"column:cook_time"`
}

// FindByUserAndDate returns the plan for (userID, weekStartDate), or a
// NotFoundError when none exists.
func (r *WeeklyPlanRepository) FindByUserAndDate(userID uint, weekStartDate string) (*models.WeeklyPlan, error) {
	var plan models.WeeklyPlan
	err := r.DB.Where("user_id = ? AND week_start_date = ?", userID, weekStartDate).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Weekly plan not found")
		}
		return nil, err
	}
	return &plan, nil
}

// FindByID returns a plan by its ID.
func (r *WeeklyPlanRepository) FindByID(planID uint) (*models.WeeklyPlan, error) {
	var plan models.WeeklyPlan
	if err := r.DB.First(&plan, planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Weekly plan not found")
		}
		return nil, err
	}
	return &plan, nil
}

// FindByUser returns all of a user's plans, newest week first.
func (r *WeeklyPlanRepository) FindByUser(userID uint) ([]models.WeeklyPlan, error) {
	var plans []models.WeeklyPlan
	err := r.DB.Where("user_id = ?", userID).
		Order("week_start_date DESC").
		Find(&plans).Error
	return plans, err
}

// Create inserts a new weekly plan. A unique-constraint violation on
// (user_id, week_start_date) surfaces as gorm.ErrDuplicatedKey; the service
// resolves it by fetching the existing plan (find-or-create, never upsert).
func (r *WeeklyPlanRepository) Create(plan *models.WeeklyPlan) error {
	err := r.DB.Create(plan).Error
	if err != nil && !IsDuplicateKey(err) {
		logger.Get().Error("failed to create weekly plan",
			zap.Uint("user_id", plan.UserID),
			zap.String("week_start_date", plan.WeekStartDate),
			zap.Error(err))
	}
	return err
}

// UpdateServings sets the plan-level servings count. This is a direct
// mutation, deliberately distinct from Create's ignore-on-exists rule.
func (r *WeeklyPlanRepository) UpdateServings(planID uint, servings int) error {
	result := r.DB.Model(&models.WeeklyPlan{}).
		Where("id = ?", planID).
		Update("number_of_servings", servings)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("Weekly plan not found")
	}
	return nil
}

// GetPlanWithMeals returns the plan joined with its items and each item's
// recipe display fields, ordered by day then meal type. Starting the join
// from weekly_plans keeps the zero-item placeholder row contract intact.
func (r *WeeklyPlanRepository) GetPlanWithMeals(planID uint) ([]PlanMealRow, error) {
	var rows []PlanMealRow
	query := `SELECT wp.id AS plan_id, wp.user_id, wp.week_start_date, wp.number_of_servings,
			wpi.id AS item_id, wpi.recipe_id, wpi.day_of_week, wpi.meal_type, wpi.servings,
			r.title AS recipe_title, r.image_url, r.prep_time, r.cook_time
		FROM weekly_plans wp
		LEFT JOIN weekly_plan_items wpi
			ON wpi.weekly_plan_id = wp.id AND wpi.deleted_at IS NULL
		LEFT JOIN recipes r ON r.id = wpi.recipe_id
		WHERE wp.id = ? AND wp.deleted_at IS NULL
		ORDER BY wpi.day_of_week, wpi.meal_type`
	if err := r.DB.Raw(query, planID).Scan(&rows).Error; err != nil {
		logger.Get().Error("failed to get plan with meals", zap.Uint("plan_id", planID), zap.Error(err))
		return nil, err
	}
	if len(rows) == 0 {
		return nil, NewNotFoundError("Weekly plan not found")
	}
	return rows, nil
}

// GetMealsForDay returns the plan's items for one day, joined with recipe
// display fields. Unlike GetPlanWithMeals this starts from the items, so an
// empty day is simply an empty slice.
func (r *WeeklyPlanRepository) GetMealsForDay(planID uint, dayOfWeek int) ([]PlanMealRow, error) {
	var rows []PlanMealRow
	query := `SELECT wpi.weekly_plan_id AS plan_id, wpi.id AS item_id, wpi.recipe_id,
			wpi.day_of_week, wpi.meal_type, wpi.servings,
			r.title AS recipe_title, r.image_url, r.prep_time, r.cook_time
		FROM weekly_plan_items wpi
		LEFT JOIN recipes r ON r.id = wpi.recipe_id
		WHERE wpi.weekly_plan_id = ? AND wpi.day_of_week = ? AND wpi.deleted_at IS NULL
		ORDER BY wpi.meal_type`
	if err := r.DB.Raw(query, planID, dayOfWeek).Scan(&rows).Error; err != nil {
		logger.Get().Error("failed to get meals for day",
			zap.Uint("plan_id", planID), zap.Int("day_of_week", dayOfWeek), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// CreateItem inserts a new plan item. There is no slot-occupancy check:
// multiple items may share one (plan, day, meal type) coordinate.
func (r *WeeklyPlanRepository) CreateItem(item *models.WeeklyPlanItem) error {
	err := r.DB.Create(item).Error
	if err != nil {
		logger.Get().Error("failed to create plan item",
			zap.Uint("plan_id", item.WeeklyPlanID), zap.Error(err))
	}
	return err
}

// GetItem returns a plan item by its ID.
func (r *WeeklyPlanRepository) GetItem(itemID uint) (*models.WeeklyPlanItem, error) {
	var item models.WeeklyPlanItem
	if err := r.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Meal not found")
		}
		return nil, err
	}
	return &item, nil
}

// UpdateItem moves an item to new slot coordinates and servings. The item's
// recipe is immutable once created and is deliberately not part of the
// update set.
func (r *WeeklyPlanRepository) UpdateItem(itemID uint, dayOfWeek int, mealType models.MealType, servings int) error {
	result := r.DB.Model(&models.WeeklyPlanItem{}).
		Where("id = ?", itemID).
		Updates(map[string]interface{}{
			"day_of_week": dayOfWeek,
			"meal_type":   mealType,
			"servings":    servings,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("Meal not found")
	}
	return nil
}

// DeleteItem hard-deletes a plan item. Deleting an ID that does not exist is
// a silent success.
func (r *WeeklyPlanRepository) DeleteItem(itemID uint) error {
	return r.DB.Unscoped().Delete(&models.WeeklyPlanItem{}, itemID).Error
}
