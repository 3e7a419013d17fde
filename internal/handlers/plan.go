package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mealweek/mealweek-api/internal/models"
	"github.com/mealweek/mealweek-api/internal/repository"
	"github.com/mealweek/mealweek-api/internal/service"
	"github.com/mealweek/mealweek-api/internal/util"
)

// PlanHandler is the handler for week-planner requests.
type PlanHandler struct {
	Service *service.WeeklyPlanService
}

// NewPlanHandler is the constructor function for initializing a new PlanHandler.
func NewPlanHandler(planService *service.WeeklyPlanService) *PlanHandler {
	return &PlanHandler{Service: planService}
}

// mealView is the JSON shape of one scheduled meal.
type mealView struct {
	ItemID      uint             `json:"item_id"`
	RecipeID    uint             `json:"recipe_id"`
	DayOfWeek   int              `json:"day_of_week"`
	DayName     string           `json:"day_name"`
	MealType    models.MealType  `json:"meal_type"`
	Servings    int              `json:"servings"`
	RecipeTitle string           `json:"recipe_title"`
	ImageURL    string           `json:"image_url,omitempty"`
	PrepTime    int              `json:"prep_time"`
	CookTime    int              `json:"cook_time"`
}

// GetCurrentWeekPlan returns the authenticated user's plan for the current
// week, creating it on first visit, together with the meals grouped by day.
func (h *PlanHandler) GetCurrentWeekPlan(c *gin.Context) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	plan, err := h.Service.GetCurrentWeekPlan(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if plan == nil {
		// First visit this week: create the plan and re-read it.
		planID, err := h.Service.CreateWeeklyPlan(userID, service.CurrentWeekStart(time.Now()), 1)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		plan, err = h.Service.GetWeekPlan(planID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}

	rows, err := h.Service.GetWeekPlanWithMeals(plan.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// The join emits a placeholder row for an empty plan; drop it before
	// shaping the meal list.
	meals := service.FilterMeals(rows)
	byDay := service.OrganizeMealsByDay(meals)

	days := make(map[int][]mealView, len(byDay))
	for day, dayRows := range byDay {
		views := make([]mealView, 0, len(dayRows))
		for _, row := range dayRows {
			views = append(views, toMealView(row))
		}
		days[day] = views
	}

	c.JSON(http.StatusOK, gin.H{
		"plan":         plan,
		"meals":        toMealViews(meals),
		"meals_by_day": days,
	})
}

// ListWeekPlans returns all of the authenticated user's plans.
func (h *PlanHandler) ListWeekPlans(c *gin.Context) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	plans, err := h.Service.GetUserWeekPlans(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// CreateWeekPlan finds or creates a plan for the given week. When the plan
// already exists its ID is returned unchanged; servings are never updated
// through this endpoint.
func (h *PlanHandler) CreateWeekPlan(c *gin.Context) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body struct {
		WeekStartDate    string `json:"week_start_date" binding:"required"`
		NumberOfServings int    `json:"number_of_servings"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Week start date is required"})
		return
	}

	planID, err := h.Service.CreateWeeklyPlan(userID, body.WeekStartDate, body.NumberOfServings)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan_id": planID})
}

// GetWeekPlanMeals returns a plan's meals, both flat and grouped by day.
func (h *PlanHandler) GetWeekPlanMeals(c *gin.Context) {
	planID, err := parseUintParam(c.Param("plan_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	rows, err := h.Service.GetWeekPlanWithMeals(planID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	meals := service.FilterMeals(rows)
	byDay := service.OrganizeMealsByDay(meals)
	days := make(map[int][]mealView, len(byDay))
	for day, dayRows := range byDay {
		views := make([]mealView, 0, len(dayRows))
		for _, row := range dayRows {
			views = append(views, toMealView(row))
		}
		days[day] = views
	}

	c.JSON(http.StatusOK, gin.H{
		"meals":        toMealViews(meals),
		"meals_by_day": days,
	})
}

// AddMeal adds a meal to a slot in the plan.
func (h *PlanHandler) AddMeal(c *gin.Context) {
	planID, err := parseUintParam(c.Param("plan_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	var body struct {
		RecipeID  uint            `json:"recipe_id" binding:"required"`
		DayOfWeek int             `json:"day_of_week" binding:"required"`
		MealType  models.MealType `json:"meal_type"`
		Servings  int             `json:"servings"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Recipe and day are required"})
		return
	}
	if body.MealType == "" {
		body.MealType = models.MealTypeLunch
	}
	if body.Servings == 0 {
		body.Servings = 1
	}

	itemID, err := h.Service.AddMealToDay(planID, body.RecipeID, body.DayOfWeek, body.MealType, body.Servings)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item_id": itemID})
}

// UpdateMeal moves a meal to new slot coordinates and servings.
func (h *PlanHandler) UpdateMeal(c *gin.Context) {
	itemID, err := parseUintParam(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var body struct {
		DayOfWeek int             `json:"day_of_week" binding:"required"`
		MealType  models.MealType `json:"meal_type" binding:"required"`
		Servings  int             `json:"servings" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Day, meal type and servings are required"})
		return
	}

	if err := h.Service.UpdateMeal(itemID, body.DayOfWeek, body.MealType, body.Servings); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal updated"})
}

// RemoveMeal removes a meal from the plan. Removing an ID that no longer
// exists still succeeds.
func (h *PlanHandler) RemoveMeal(c *gin.Context) {
	itemID, err := parseUintParam(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	if err := h.Service.RemoveMeal(itemID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal removed"})
}

// UpdateServings sets the plan-level servings count.
func (h *PlanHandler) UpdateServings(c *gin.Context) {
	planID, err := parseUintParam(c.Param("plan_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	var body struct {
		NumberOfServings int `json:"number_of_servings" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Number of servings is required"})
		return
	}

	if err := h.Service.UpdateServings(planID, body.NumberOfServings); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Servings updated"})
}

func toMealView(row repository.PlanMealRow) mealView {
	view := mealView{}
	if row.ItemID != nil {
		view.ItemID = *row.ItemID
	}
	if row.RecipeID != nil {
		view.RecipeID = *row.RecipeID
	}
	if row.DayOfWeek != nil {
		view.DayOfWeek = *row.DayOfWeek
		view.DayName = models.DayName(*row.DayOfWeek)
	}
	if row.MealType != nil {
		view.MealType = *row.MealType
	}
	if row.Servings != nil {
		view.Servings = *row.Servings
	}
	if row.RecipeTitle != nil {
		view.RecipeTitle = *row.RecipeTitle
	}
	if row.ImageURL != nil {
		view.ImageURL = *row.ImageURL
	}
	if row.PrepTime != nil {
		view.PrepTime = *row.PrepTime
	}
	if row.CookTime != nil {
		view.CookTime = *row.CookTime
	}
	return view
}

func toMealViews(rows []repository.PlanMealRow) []mealView {
	views := make([]mealView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toMealView(row))
	}
	return views
}
