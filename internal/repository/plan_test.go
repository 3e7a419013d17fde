package repository

import (
	"testing"

	"github.com/mealweek/mealweek-api/internal/models"
)

func seedPlanFixtures(t *testing.T) (*WeeklyPlanRepository, *models.WeeklyPlan, *models.Recipe) {
	t.Helper()
	database := openTestDB(t)
	repo := NewWeeklyPlanRepository(database)

	recipe := &models.Recipe{Title: "Lentil Soup", Instructions: "Simmer until tender."}
	mustCreate(t, database, recipe)

	plan := &models.WeeklyPlan{UserID: 7, WeekStartDate: "2024-01-01", NumberOfServings: 2}
	if err := repo.Create(plan); err != nil {
		t.Fatalf("Create plan: %v", err)
	}
	return repo, plan, recipe
}

func TestCreate_DuplicateUserWeekIsDuplicatedKey(t *testing.T) {
	repo, _, _ := seedPlanFixtures(t)

	dup := &models.WeeklyPlan{UserID: 7, WeekStartDate: "2024-01-01", NumberOfServings: 5}
	err := repo.Create(dup)
	if err == nil {
		t.Fatal("second create for the same (user, week) should fail")
	}
	if !IsDuplicateKey(err) {
		t.Errorf("error = %v, want a duplicated-key error", err)
	}

	// the stored plan keeps its original servings
	existing, err := repo.FindByUserAndDate(7, "2024-01-01")
	if err != nil {
		t.Fatalf("FindByUserAndDate: %v", err)
	}
	if existing.NumberOfServings != 2 {
		t.Errorf("servings = %d, want the original 2", existing.NumberOfServings)
	}
}

func TestCreate_SameWeekDifferentUsersBothSucceed(t *testing.T) {
	repo, _, _ := seedPlanFixtures(t)

	other := &models.WeeklyPlan{UserID: 8, WeekStartDate: "2024-01-01"}
	if err := repo.Create(other); err != nil {
		t.Fatalf("Create for a different user: %v", err)
	}
	if other.ID == 0 {
		t.Error("created plan should have an ID")
	}
}

func TestFindByUserAndDate_AbsentIsNotFound(t *testing.T) {
	repo, _, _ := seedPlanFixtures(t)

	_, err := repo.FindByUserAndDate(7, "2024-02-05")
	if err == nil {
		t.Fatal("expected an error for an absent week")
	}
	if _, ok := err.(NotFoundError); !ok {
		t.Errorf("error type = %T, want NotFoundError", err)
	}
}

func TestGetPlanWithMeals_EmptyPlanYieldsPlaceholderRow(t *testing.T) {
	repo, plan, _ := seedPlanFixtures(t)

	rows, err := repo.GetPlanWithMeals(plan.ID)
	if err != nil {
		t.Fatalf("GetPlanWithMeals: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want exactly one placeholder row", len(rows))
	}
	row := rows[0]
	if row.PlanID != plan.ID || row.WeekStartDate != "2024-01-01" {
		t.Errorf("plan columns = %+v, want plan %d / 2024-01-01", row, plan.ID)
	}
	if row.RecipeID != nil || row.ItemID != nil || row.DayOfWeek != nil {
		t.Errorf("item columns should all be nil on an empty plan, got %+v", row)
	}
}

func TestGetPlanWithMeals_AbsentPlanIsNotFound(t *testing.T) {
	repo, _, _ := seedPlanFixtures(t)

	_, err := repo.GetPlanWithMeals(999999)
	if err == nil {
		t.Fatal("expected an error for an absent plan")
	}
	if _, ok := err.(NotFoundError); !ok {
		t.Errorf("error type = %T, want NotFoundError", err)
	}
}

func TestGetPlanWithMeals_OrdersByDayThenMealType(t *testing.T) {
	repo, plan, recipe := seedPlanFixtures(t)

	items := []*models.WeeklyPlanItem{
		{WeeklyPlanID: plan.ID, RecipeID: recipe.ID, DayOfWeek: 3, MealType: models.MealTypeDinner, Servings: 2},
		{WeeklyPlanID: plan.ID, RecipeID: recipe.ID, DayOfWeek: 1, MealType: models.MealTypeLunch, Servings: 2},
		{WeeklyPlanID: plan.ID, RecipeID: recipe.ID, DayOfWeek: 1, MealType: models.MealTypeBreakfast, Servings: 1},
	}
	for _, item := range items {
		if err := repo.CreateItem(item); err != nil {
			t.Fatalf("CreateItem: %v", err)
		}
	}

	rows, err := repo.GetPlanWithMeals(plan.ID)
	if err != nil {
		t.Fatalf("GetPlanWithMeals: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if *rows[0].DayOfWeek != 1 || *rows[0].MealType != models.MealTypeBreakfast {
		t.Errorf("first row = day %d %s, want day 1 breakfast", *rows[0].DayOfWeek, *rows[0].MealType)
	}
	if *rows[2].DayOfWeek != 3 || *rows[2].MealType != models.MealTypeDinner {
		t.Errorf("last row = day %d %s, want day 3 dinner", *rows[2].DayOfWeek, *rows[2].MealType)
	}
	if rows[0].RecipeTitle == nil || *rows[0].RecipeTitle != "Lentil Soup" {
		t.Errorf("recipe title = %v, want Lentil Soup", rows[0].RecipeTitle)
	}
}

func TestCreateItem_RoundTripsSlotCoordinates(t *testing.T) {
	repo, plan, recipe := seedPlanFixtures(t)

	mealTypes := []models.MealType{
		models.MealTypeBreakfast, models.MealTypeLunch, models.MealTypeDinner, models.MealTypeSnack,
	}
	type slot struct {
		day      int
		mealType models.MealType
		servings int
	}
	want := make(map[uint]slot)
	for day := 1; day <= 7; day++ {
		mealType := mealTypes[day%len(mealTypes)]
		servings := 1 + day*2 // walks the 1..20 range
		item := &models.WeeklyPlanItem{
			WeeklyPlanID: plan.ID,
			RecipeID:     recipe.ID,
			DayOfWeek:    day,
			MealType:     mealType,
			Servings:     servings,
		}
		if err := repo.CreateItem(item); err != nil {
			t.Fatalf("CreateItem(day %d): %v", day, err)
		}
		want[item.ID] = slot{day, mealType, servings}
	}

	rows, err := repo.GetPlanWithMeals(plan.ID)
	if err != nil {
		t.Fatalf("GetPlanWithMeals: %v", err)
	}
	if len(rows) != 7 {
		t.Fatalf("rows = %d, want 7", len(rows))
	}
	for _, row := range rows {
		if row.ItemID == nil {
			t.Fatal("unexpected placeholder row in a populated plan")
		}
		expected := want[*row.ItemID]
		if *row.DayOfWeek != expected.day || *row.MealType != expected.mealType || *row.Servings != expected.servings {
			t.Errorf("item %d round-tripped as (day %d, %s, %d), want (day %d, %s, %d)",
				*row.ItemID, *row.DayOfWeek, *row.MealType, *row.Servings,
				expected.day, expected.mealType, expected.servings)
		}
	}
}

func TestCreateItem_SlotMultiOccupancyAllowed(t *testing.T) {
	repo, plan, recipe := seedPlanFixtures(t)

	first := &models.WeeklyPlanItem{WeeklyPlanID: plan.ID, RecipeID: recipe.ID, DayOfWeek: 5, MealType: models.MealTypeDinner, Servings: 2}
	second := &models.WeeklyPlanItem{WeeklyPlanID: plan.ID, RecipeID: recipe.ID, DayOfWeek: 5, MealType: models.MealTypeDinner, Servings: 4}
	if err := repo.CreateItem(first); err != nil {
		t.Fatalf("CreateItem first: %v", err)
	}
	if err := repo.CreateItem(second); err != nil {
		t.Fatalf("CreateItem into the same slot: %v", err)
	}

	rows, err := repo.GetMealsForDay(plan.ID, 5)
	if err != nil {
		t.Fatalf("GetMealsForDay: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("rows = %d, want both occupants of the slot", len(rows))
	}
}

func TestGetMealsForDay_EmptyDayIsEmptySlice(t *testing.T) {
	repo, plan, _ := seedPlanFixtures(t)

	rows, err := repo.GetMealsForDay(plan.ID, 2)
	if err != nil {
		t.Fatalf("GetMealsForDay: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %d, want none (no placeholder for day queries)", len(rows))
	}
}

func TestUpdateItem_RecipeIsImmutable(t *testing.T) {
	repo, plan, recipe := seedPlanFixtures(t)

	item := &models.WeeklyPlanItem{WeeklyPlanID: plan.ID, RecipeID: recipe.ID, DayOfWeek: 1, MealType: models.MealTypeLunch, Servings: 2}
	if err := repo.CreateItem(item); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	if err := repo.UpdateItem(item.ID, 4, models.MealTypeSnack, 3); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	got, err := repo.GetItem(item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got.DayOfWeek != 4 || got.MealType != models.MealTypeSnack || got.Servings != 3 {
		t.Errorf("item = %+v, want day 4 snack servings 3", got)
	}
	if got.RecipeID != recipe.ID {
		t.Errorf("recipe_id = %d, want unchanged %d", got.RecipeID, recipe.ID)
	}
}

func TestUpdateItem_AbsentIsNotFound(t *testing.T) {
	repo, _, _ := seedPlanFixtures(t)

	err := repo.UpdateItem(999999, 1, models.MealTypeLunch, 2)
	if err == nil {
		t.Fatal("expected an error for an absent item")
	}
	if _, ok := err.(NotFoundError); !ok {
		t.Errorf("error type = %T, want NotFoundError", err)
	}
}

func TestDeleteItem_AbsentIsSilentSuccess(t *testing.T) {
	repo, _, _ := seedPlanFixtures(t)

	if err := repo.DeleteItem(999999); err != nil {
		t.Errorf("DeleteItem of an absent ID should succeed, got %v", err)
	}
}

func TestDeleteItem_RemovedItemLeavesPlaceholderRow(t *testing.T) {
	repo, plan, recipe := seedPlanFixtures(t)

	item := &models.WeeklyPlanItem{WeeklyPlanID: plan.ID, RecipeID: recipe.ID, DayOfWeek: 2, MealType: models.MealTypeDinner, Servings: 2}
	if err := repo.CreateItem(item); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if err := repo.DeleteItem(item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	rows, err := repo.GetPlanWithMeals(plan.ID)
	if err != nil {
		t.Fatalf("GetPlanWithMeals: %v", err)
	}
	if len(rows) != 1 || rows[0].RecipeID != nil {
		t.Errorf("rows = %+v, want a single all-nil placeholder row again", rows)
	}
}

func TestUpdateServings_PersistsAndChecksExistence(t *testing.T) {
	repo, plan, _ := seedPlanFixtures(t)

	if err := repo.UpdateServings(plan.ID, 6); err != nil {
		t.Fatalf("UpdateServings: %v", err)
	}
	got, err := repo.FindByID(plan.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.NumberOfServings != 6 {
		t.Errorf("servings = %d, want 6", got.NumberOfServings)
	}

	err = repo.UpdateServings(999999, 4)
	if _, ok := err.(NotFoundError); !ok {
		t.Errorf("error type = %T, want NotFoundError for absent plan", err)
	}
}

func TestFindByUser_NewestWeekFirst(t *testing.T) {
	repo, _, _ := seedPlanFixtures(t)

	later := &models.WeeklyPlan{UserID: 7, WeekStartDate: "2024-01-08"}
	if err := repo.Create(later); err != nil {
		t.Fatalf("Create second week: %v", err)
	}

	plans, err := repo.FindByUser(7)
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("plans = %d, want 2", len(plans))
	}
	if plans[0].WeekStartDate != "2024-01-08" || plans[1].WeekStartDate != "2024-01-01" {
		t.Errorf("order = [%s %s], want newest first", plans[0].WeekStartDate, plans[1].WeekStartDate)
	}
}
