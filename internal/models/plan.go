package models

import (
	"gorm.io/gorm"
)

// WeeklyPlan is the model for a user's plan for one calendar week. The
// composite unique index on (user_id, week_start_date) is what makes the
// find-or-create operation race-free: at most one plan per user per week
// can ever exist, no matter how many creates race.
type WeeklyPlan struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex:idx_user_week;not null"`
	User   *User
	// WeekStartDate is the canonical Monday of the week in YYYY-MM-DD form.
	WeekStartDate    string `gorm:"size:10;uniqueIndex:idx_user_week;not null"`
	NumberOfServings int    `gorm:"default:1"`
}

// WeeklyPlanItem is one meal assignment inside a weekly plan: a recipe pinned
// to a (day_of_week, meal_type) slot. Multiple items may share a slot.
type WeeklyPlanItem struct {
	gorm.Model
	WeeklyPlanID uint `gorm:"index;not null"`
	// RecipeID is immutable after creation; updates touch only the slot
	// coordinates and servings.
	RecipeID  uint     `gorm:"not null"`
	DayOfWeek int      `gorm:"not null"` // 1=Monday .. 7=Sunday
	MealType  MealType `gorm:"type:text;not null"`
	Servings  int      `gorm:"default:1"`
}

// MealType is the type for the meal slot enum.
type MealType string

// MealType enum values.
const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// Valid reports whether m is one of the four known meal types.
func (m MealType) Valid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

// dayNames maps day_of_week to its English name.
var dayNames = map[int]string{
	1: "Monday",
	2: "Tuesday",
	3: "Wednesday",
	4: "Thursday",
	5: "Friday",
	6: "Saturday",
	7: "Sunday",
}

// DayName returns the name for a 1-based day of week, or "Unknown" for any
// out-of-range input.
func DayName(dayOfWeek int) string {
	if name, ok := dayNames[dayOfWeek]; ok {
		return name
	}
	return "Unknown"
}
