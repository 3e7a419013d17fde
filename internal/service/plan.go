package service

import (
	"fmt"
	"time"

	"github.com/mealweek/mealweek-api/internal/config"
	"github.com/mealweek/mealweek-api/internal/logger"
	"github.com/mealweek/mealweek-api/internal/models"
	"github.com/mealweek/mealweek-api/internal/repository"
	"go.uber.org/zap"
)

const weekStartLayout = "2006-01-02"

// WeeklyPlanService owns the one-plan-per-user-per-week identity and the
// day/meal-slot assignment rules.
type WeeklyPlanService struct {
	Cfg  *config.Config
	Repo repository.PlanRepo

	// now is injectable so week-boundary behavior is testable.
	now func() time.Time
}

// NewWeeklyPlanService is the constructor function for initializing a new WeeklyPlanService.
func NewWeeklyPlanService(cfg *config.Config, repo repository.PlanRepo) *WeeklyPlanService {
	return &WeeklyPlanService{Cfg: cfg, Repo: repo, now: time.Now}
}

// CurrentWeekStart returns the canonical key for the week containing t: the
// most recent Monday on or before t, in YYYY-MM-DD form. A Monday maps to
// itself.
func CurrentWeekStart(t time.Time) string {
	// time.Weekday numbers Sunday as 0; shift so Monday is 0.
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format(weekStartLayout)
}

// GetCurrentWeekPlan returns the user's plan for the current week, or
// (nil, nil) when none exists. The caller decides whether to create one;
// absence is an explicit nil, never a partially-populated plan.
func (s *WeeklyPlanService) GetCurrentWeekPlan(userID uint) (*models.WeeklyPlan, error) {
	plan, err := s.Repo.FindByUserAndDate(userID, CurrentWeekStart(s.now()))
	if err != nil {
		if _, ok := err.(repository.NotFoundError); ok {
			return nil, nil
		}
		return nil, err
	}
	return plan, nil
}

// GetUserWeekPlans returns all of a user's plans, newest week first.
func (s *WeeklyPlanService) GetUserWeekPlans(userID uint) ([]models.WeeklyPlan, error) {
	return s.Repo.FindByUser(userID)
}

// GetWeekPlan returns a plan by ID.
func (s *WeeklyPlanService) GetWeekPlan(planID uint) (*models.WeeklyPlan, error) {
	return s.Repo.FindByID(planID)
}

// CreateWeeklyPlan finds or creates the plan for (userID, weekStartDate) and
// returns its ID. When the plan already exists its ID is returned and the
// servings argument is ignored: create never updates an existing match. The
// date must be a real calendar date in canonical YYYY-MM-DD form.
func (s *WeeklyPlanService) CreateWeeklyPlan(userID uint, weekStartDate string, servings int) (uint, error) {
	parsed, err := time.Parse(weekStartLayout, weekStartDate)
	if err != nil || parsed.Format(weekStartLayout) != weekStartDate {
		return 0, NewValidationError(fmt.Sprintf("invalid week start date %q, want YYYY-MM-DD", weekStartDate))
	}
	if servings < 1 {
		servings = 1
	}

	if existing, err := s.Repo.FindByUserAndDate(userID, weekStartDate); err == nil {
		return existing.ID, nil
	} else if _, ok := err.(repository.NotFoundError); !ok {
		return 0, err
	}

	plan := &models.WeeklyPlan{
		UserID:           userID,
		WeekStartDate:    weekStartDate,
		NumberOfServings: servings,
	}
	if err := s.Repo.Create(plan); err != nil {
		if repository.IsDuplicateKey(err) {
			// Lost a create race; the winner's plan is the answer.
			existing, ferr := s.Repo.FindByUserAndDate(userID, weekStartDate)
			if ferr != nil {
				return 0, ferr
			}
			return existing.ID, nil
		}
		return 0, err
	}

	logger.Get().Info("weekly plan created",
		zap.Uint("plan_id", plan.ID),
		zap.Uint("user_id", userID),
		zap.String("week_start_date", weekStartDate))
	return plan.ID, nil
}

// UpdateServings sets the plan-level servings count, a direct mutation that
// is deliberately distinct from CreateWeeklyPlan's ignore-on-exists rule.
func (s *WeeklyPlanService) UpdateServings(planID uint, servings int) error {
	if servings < 1 {
		return NewValidationError("servings must be at least 1")
	}
	return s.Repo.UpdateServings(planID, servings)
}

// AddMealToDay assigns a recipe to a (day, meal type) slot in the plan and
// returns the new item's ID. A slot can hold any number of meals; no
// occupancy check is performed.
func (s *WeeklyPlanService) AddMealToDay(planID, recipeID uint, dayOfWeek int, mealType models.MealType, servings int) (uint, error) {
	if err := validateSlot(dayOfWeek, mealType, servings); err != nil {
		return 0, err
	}

	item := &models.WeeklyPlanItem{
		WeeklyPlanID: planID,
		RecipeID:     recipeID,
		DayOfWeek:    dayOfWeek,
		MealType:     mealType,
		Servings:     servings,
	}
	if err := s.Repo.CreateItem(item); err != nil {
		return 0, err
	}
	return item.ID, nil
}

// UpdateMeal moves an item to new slot coordinates and servings. The item's
// recipe cannot be changed once created.
func (s *WeeklyPlanService) UpdateMeal(itemID uint, dayOfWeek int, mealType models.MealType, servings int) error {
	if err := validateSlot(dayOfWeek, mealType, servings); err != nil {
		return err
	}
	return s.Repo.UpdateItem(itemID, dayOfWeek, mealType, servings)
}

// RemoveMeal hard-deletes an item. Removing an ID that does not exist is a
// silent success.
func (s *WeeklyPlanService) RemoveMeal(itemID uint) error {
	return s.Repo.DeleteItem(itemID)
}

// GetWeekPlanWithMeals returns the raw join rows for a plan. A plan with
// zero items yields exactly one placeholder row with nil item and recipe
// fields; use FilterMeals before treating the result as a meal list.
func (s *WeeklyPlanService) GetWeekPlanWithMeals(planID uint) ([]repository.PlanMealRow, error) {
	return s.Repo.GetPlanWithMeals(planID)
}

// GetMealsForDay returns a single day's meals within a plan.
func (s *WeeklyPlanService) GetMealsForDay(planID uint, dayOfWeek int) ([]repository.PlanMealRow, error) {
	if dayOfWeek < 1 || dayOfWeek > 7 {
		return nil, NewValidationError("day of week must be between 1 and 7")
	}
	return s.Repo.GetMealsForDay(planID, dayOfWeek)
}

// FilterMeals drops the placeholder rows that the LEFT JOIN produces for
// plans without items. This is a mandatory contract for every consumer of
// GetWeekPlanWithMeals, not optional cleanup.
func FilterMeals(rows []repository.PlanMealRow) []repository.PlanMealRow {
	meals := make([]repository.PlanMealRow, 0, len(rows))
	for _, row := range rows {
		if row.RecipeID != nil {
			meals = append(meals, row)
		}
	}
	return meals
}

// OrganizeMealsByDay groups join rows by day_of_week, skipping rows without
// a day (the zero-item placeholder).
func OrganizeMealsByDay(rows []repository.PlanMealRow) map[int][]repository.PlanMealRow {
	byDay := make(map[int][]repository.PlanMealRow)
	for _, row := range rows {
		if row.DayOfWeek == nil {
			continue
		}
		byDay[*row.DayOfWeek] = append(byDay[*row.DayOfWeek], row)
	}
	return byDay
}

// validateSlot checks the ranges shared by AddMealToDay and UpdateMeal.
// Rejection happens before any mutation.
func validateSlot(dayOfWeek int, mealType models.MealType, servings int) error {
	if dayOfWeek < 1 || dayOfWeek > 7 {
		return NewValidationError("day of week must be between 1 and 7")
	}
	if !mealType.Valid() {
		return NewValidationError(fmt.Sprintf("invalid meal type %q", mealType))
	}
	if servings < 1 || servings > 20 {
		return NewValidationError("servings must be between 1 and 20")
	}
	return nil
}
