package testutil

import (
	"sort"
	"strings"
	"sync"

	"github.com/mealweek/mealweek-api/internal/models"
	"github.com/mealweek/mealweek-api/internal/repository"
	"gorm.io/gorm"
)

// --- MockRecipeRepo ---

// MockRecipeRepo is an in-memory implementation of repository.RecipeRepo.
type MockRecipeRepo struct {
	mu sync.Mutex

	Recipes    map[uint]*models.Recipe
	Categories map[uint]models.Category // by category ID
	// junctions, insertion-ordered
	RecipeCategories map[uint][]uint // recipe ID -> category IDs
	RecipeTags       map[uint][]uint
	RecipeIngs       map[uint][]models.RecipeIngredient

	nextID uint
}

// NewMockRecipeRepo creates an empty MockRecipeRepo.
func NewMockRecipeRepo() *MockRecipeRepo {
	return &MockRecipeRepo{
		Recipes:          make(map[uint]*models.Recipe),
		Categories:       make(map[uint]models.Category),
		RecipeCategories: make(map[uint][]uint),
		RecipeTags:       make(map[uint][]uint),
		RecipeIngs:       make(map[uint][]models.RecipeIngredient),
	}
}

func (m *MockRecipeRepo) sortedRecipes(keep func(*models.Recipe) bool) []models.Recipe {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Recipe, 0, len(m.Recipes))
	for _, r := range m.Recipes {
		if keep == nil || keep(r) {
			withAssoc := *r
			withAssoc.Categories = m.categoriesFor(r.ID)
			out = append(out, withAssoc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

// categoriesFor returns a recipe's categories ordered by display_order, as
// the flattened queries would.
func (m *MockRecipeRepo) categoriesFor(recipeID uint) []models.Category {
	ids := m.RecipeCategories[recipeID]
	cats := make([]models.Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := m.Categories[id]; ok {
			cats = append(cats, c)
		}
	}
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].DisplayOrder < cats[j].DisplayOrder })
	return cats
}

func (m *MockRecipeRepo) FindAll() ([]models.Recipe, error) {
	return m.sortedRecipes(nil), nil
}

func (m *MockRecipeRepo) Search(keyword string) ([]models.Recipe, error) {
	needle := strings.ToLower(keyword)
	return m.sortedRecipes(func(r *models.Recipe) bool {
		return strings.Contains(strings.ToLower(r.Title), needle) ||
			strings.Contains(strings.ToLower(r.Description), needle)
	}), nil
}

func (m *MockRecipeRepo) FindByCategory(categoryID uint) ([]models.Recipe, error) {
	return m.sortedRecipes(func(r *models.Recipe) bool {
		for _, id := range m.RecipeCategories[r.ID] {
			if id == categoryID {
				return true
			}
		}
		return false
	}), nil
}

func (m *MockRecipeRepo) FindByTag(tagID uint) ([]models.Recipe, error) {
	return m.sortedRecipes(func(r *models.Recipe) bool {
		for _, id := range m.RecipeTags[r.ID] {
			if id == tagID {
				return true
			}
		}
		return false
	}), nil
}

func (m *MockRecipeRepo) FindByID(recipeID uint) (*models.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.Recipes[recipeID]
	if !ok {
		return nil, repository.NewNotFoundError("Recipe not found")
	}
	withAssoc := *r
	withAssoc.Categories = m.categoriesFor(recipeID)
	return &withAssoc, nil
}

func (m *MockRecipeRepo) GetIngredients(recipeID uint) ([]models.RecipeIngredient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.RecipeIngredient(nil), m.RecipeIngs[recipeID]...), nil
}

func (m *MockRecipeRepo) CreateRecipe(recipe *models.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if recipe.ID == 0 {
		m.nextID++
		recipe.ID = m.nextID
	}
	stored := *recipe
	m.Recipes[recipe.ID] = &stored
	return nil
}

func (m *MockRecipeRepo) UpdateRecipe(recipe *models.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Recipes[recipe.ID]; !ok {
		return repository.NewNotFoundError("Recipe not found")
	}
	stored := *recipe
	m.Recipes[recipe.ID] = &stored
	return nil
}

func (m *MockRecipeRepo) DeleteRecipe(recipeID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Recipes, recipeID)
	return nil
}

func (m *MockRecipeRepo) AddCategory(recipeID, categoryID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.RecipeCategories[recipeID] {
		if id == categoryID {
			return nil
		}
	}
	m.RecipeCategories[recipeID] = append(m.RecipeCategories[recipeID], categoryID)
	return nil
}

func (m *MockRecipeRepo) RemoveCategory(recipeID, categoryID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecipeCategories[recipeID] = removeID(m.RecipeCategories[recipeID], categoryID)
	return nil
}

func (m *MockRecipeRepo) RemoveAllCategories(recipeID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.RecipeCategories, recipeID)
	return nil
}

func (m *MockRecipeRepo) ReplaceCategories(recipeID uint, categoryIDs []uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Recipes[recipeID]; !ok {
		return repository.NewNotFoundError("Recipe not found")
	}
	m.RecipeCategories[recipeID] = append([]uint(nil), categoryIDs...)
	return nil
}

func (m *MockRecipeRepo) AddTag(recipeID, tagID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.RecipeTags[recipeID] {
		if id == tagID {
			return nil
		}
	}
	m.RecipeTags[recipeID] = append(m.RecipeTags[recipeID], tagID)
	return nil
}

func (m *MockRecipeRepo) RemoveTag(recipeID, tagID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecipeTags[recipeID] = removeID(m.RecipeTags[recipeID], tagID)
	return nil
}

func (m *MockRecipeRepo) RemoveAllTags(recipeID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.RecipeTags, recipeID)
	return nil
}

func (m *MockRecipeRepo) ReplaceTags(recipeID uint, tagIDs []uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Recipes[recipeID]; !ok {
		return repository.NewNotFoundError("Recipe not found")
	}
	m.RecipeTags[recipeID] = append([]uint(nil), tagIDs...)
	return nil
}

func (m *MockRecipeRepo) AddIngredient(recipeID, ingredientID uint, quantity float64, unit string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, ing := range m.RecipeIngs[recipeID] {
		if ing.IngredientID == ingredientID {
			m.RecipeIngs[recipeID][i].Quantity = quantity
			m.RecipeIngs[recipeID][i].Unit = unit
			return nil
		}
	}
	m.RecipeIngs[recipeID] = append(m.RecipeIngs[recipeID], models.RecipeIngredient{
		RecipeID:     recipeID,
		IngredientID: ingredientID,
		Quantity:     quantity,
		Unit:         unit,
	})
	return nil
}

func (m *MockRecipeRepo) RemoveIngredient(recipeID, ingredientID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.RecipeIngs[recipeID]
	out := rows[:0]
	for _, ing := range rows {
		if ing.IngredientID != ingredientID {
			out = append(out, ing)
		}
	}
	m.RecipeIngs[recipeID] = out
	return nil
}

func (m *MockRecipeRepo) RemoveAllIngredients(recipeID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.RecipeIngs, recipeID)
	return nil
}

func (m *MockRecipeRepo) ReplaceIngredients(recipeID uint, ingredients []models.RecipeIngredient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Recipes[recipeID]; !ok {
		return repository.NewNotFoundError("Recipe not found")
	}
	rows := make([]models.RecipeIngredient, len(ingredients))
	copy(rows, ingredients)
	for i := range rows {
		rows[i].RecipeID = recipeID
	}
	m.RecipeIngs[recipeID] = rows
	return nil
}

func removeID(ids []uint, target uint) []uint {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// --- MockPlanRepo ---

// MockPlanRepo is an in-memory implementation of repository.PlanRepo. It
// enforces the (user_id, week_start_date) uniqueness the same way the real
// schema does, by failing duplicate creates with gorm.ErrDuplicatedKey.
type MockPlanRepo struct {
	mu sync.Mutex

	Plans map[uint]*models.WeeklyPlan
	Items map[uint]*models.WeeklyPlanItem
	// RecipeTitles feeds the display columns of the meal join rows.
	RecipeTitles map[uint]string

	nextPlanID uint
	nextItemID uint
}

// NewMockPlanRepo creates an empty MockPlanRepo.
func NewMockPlanRepo() *MockPlanRepo {
	return &MockPlanRepo{
		Plans:        make(map[uint]*models.WeeklyPlan),
		Items:        make(map[uint]*models.WeeklyPlanItem),
		RecipeTitles: make(map[uint]string),
	}
}

func (m *MockPlanRepo) FindByUserAndDate(userID uint, weekStartDate string) (*models.WeeklyPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Plans {
		if p.UserID == userID && p.WeekStartDate == weekStartDate {
			found := *p
			return &found, nil
		}
	}
	return nil, repository.NewNotFoundError("Weekly plan not found")
}

func (m *MockPlanRepo) FindByID(planID uint) (*models.WeeklyPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Plans[planID]
	if !ok {
		return nil, repository.NewNotFoundError("Weekly plan not found")
	}
	found := *p
	return &found, nil
}

func (m *MockPlanRepo) FindByUser(userID uint) ([]models.WeeklyPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var plans []models.WeeklyPlan
	for _, p := range m.Plans {
		if p.UserID == userID {
			plans = append(plans, *p)
		}
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].WeekStartDate > plans[j].WeekStartDate })
	return plans, nil
}

func (m *MockPlanRepo) Create(plan *models.WeeklyPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Plans {
		if p.UserID == plan.UserID && p.WeekStartDate == plan.WeekStartDate {
			return gorm.ErrDuplicatedKey
		}
	}
	m.nextPlanID++
	plan.ID = m.nextPlanID
	stored := *plan
	m.Plans[plan.ID] = &stored
	return nil
}

func (m *MockPlanRepo) UpdateServings(planID uint, servings int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Plans[planID]
	if !ok {
		return repository.NewNotFoundError("Weekly plan not found")
	}
	p.NumberOfServings = servings
	return nil
}

func (m *MockPlanRepo) GetPlanWithMeals(planID uint) ([]repository.PlanMealRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Plans[planID]
	if !ok {
		return nil, repository.NewNotFoundError("Weekly plan not found")
	}

	items := m.itemsForPlan(planID, 0)
	if len(items) == 0 {
		// The LEFT JOIN contract: one placeholder row with nil item fields.
		return []repository.PlanMealRow{{
			PlanID:           p.ID,
			UserID:           p.UserID,
			WeekStartDate:    p.WeekStartDate,
			NumberOfServings: p.NumberOfServings,
		}}, nil
	}

	rows := make([]repository.PlanMealRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, m.rowForItem(p, item))
	}
	return rows, nil
}

func (m *MockPlanRepo) GetMealsForDay(planID uint, dayOfWeek int) ([]repository.PlanMealRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Plans[planID]
	if !ok {
		return nil, repository.NewNotFoundError("Weekly plan not found")
	}
	items := m.itemsForPlan(planID, dayOfWeek)
	rows := make([]repository.PlanMealRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, m.rowForItem(p, item))
	}
	return rows, nil
}

func (m *MockPlanRepo) itemsForPlan(planID uint, dayOfWeek int) []*models.WeeklyPlanItem {
	var items []*models.WeeklyPlanItem
	for _, item := range m.Items {
		if item.WeeklyPlanID == planID && (dayOfWeek == 0 || item.DayOfWeek == dayOfWeek) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].DayOfWeek != items[j].DayOfWeek {
			return items[i].DayOfWeek < items[j].DayOfWeek
		}
		if items[i].MealType != items[j].MealType {
			return items[i].MealType < items[j].MealType
		}
		return items[i].ID < items[j].ID
	})
	return items
}

func (m *MockPlanRepo) rowForItem(p *models.WeeklyPlan, item *models.WeeklyPlanItem) repository.PlanMealRow {
	itemID := item.ID
	recipeID := item.RecipeID
	day := item.DayOfWeek
	mealType := item.MealType
	servings := item.Servings
	title := m.RecipeTitles[item.RecipeID]
	return repository.PlanMealRow{
		PlanID:           p.ID,
		UserID:           p.UserID,
		WeekStartDate:    p.WeekStartDate,
		NumberOfServings: p.NumberOfServings,
		ItemID:           &itemID,
		RecipeID:         &recipeID,
		DayOfWeek:        &day,
		MealType:         &mealType,
		Servings:         &servings,
		RecipeTitle:      &title,
	}
}

func (m *MockPlanRepo) CreateItem(item *models.WeeklyPlanItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextItemID++
	item.ID = m.nextItemID
	stored := *item
	m.Items[item.ID] = &stored
	return nil
}

func (m *MockPlanRepo) GetItem(itemID uint) (*models.WeeklyPlanItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.Items[itemID]
	if !ok {
		return nil, repository.NewNotFoundError("Meal not found")
	}
	found := *item
	return &found, nil
}

func (m *MockPlanRepo) UpdateItem(itemID uint, dayOfWeek int, mealType models.MealType, servings int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.Items[itemID]
	if !ok {
		return repository.NewNotFoundError("Meal not found")
	}
	item.DayOfWeek = dayOfWeek
	item.MealType = mealType
	item.Servings = servings
	return nil
}

func (m *MockPlanRepo) DeleteItem(itemID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Items, itemID)
	return nil
}

// --- MockTagRepo / MockIngredientRepo ---

// MockTagRepo is an in-memory implementation of repository.TagRepo.
type MockTagRepo struct {
	mu     sync.Mutex
	Tags   map[string]uint
	nextID uint
}

// NewMockTagRepo creates an empty MockTagRepo.
func NewMockTagRepo() *MockTagRepo {
	return &MockTagRepo{Tags: make(map[string]uint)}
}

func (m *MockTagRepo) FindAll() ([]models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tags := make([]models.Tag, 0, len(m.Tags))
	for name, id := range m.Tags {
		tag := models.Tag{Name: name}
		tag.ID = id
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

func (m *MockTagRepo) FindOrCreateByName(name string) (*models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.Tags[name]
	if !ok {
		m.nextID++
		id = m.nextID
		m.Tags[name] = id
	}
	tag := &models.Tag{Name: name}
	tag.ID = id
	return tag, nil
}

// MockIngredientRepo is an in-memory implementation of repository.IngredientRepo.
type MockIngredientRepo struct {
	mu          sync.Mutex
	Ingredients map[string]uint
	nextID      uint
}

// NewMockIngredientRepo creates an empty MockIngredientRepo.
func NewMockIngredientRepo() *MockIngredientRepo {
	return &MockIngredientRepo{Ingredients: make(map[string]uint)}
}

func (m *MockIngredientRepo) FindAll() ([]models.Ingredient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ingredients := make([]models.Ingredient, 0, len(m.Ingredients))
	for name, id := range m.Ingredients {
		ing := models.Ingredient{Name: name}
		ing.ID = id
		ingredients = append(ingredients, ing)
	}
	sort.Slice(ingredients, func(i, j int) bool { return ingredients[i].Name < ingredients[j].Name })
	return ingredients, nil
}

func (m *MockIngredientRepo) FindOrCreateByName(name string) (*models.Ingredient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.Ingredients[name]
	if !ok {
		m.nextID++
		id = m.nextID
		m.Ingredients[name] = id
	}
	ing := &models.Ingredient{Name: name}
	ing.ID = id
	return ing, nil
}

// --- MockUserRepo ---

// MockUserRepo is an in-memory implementation of repository.UserRepo.
type MockUserRepo struct {
	mu     sync.Mutex
	Users  map[uint]*models.User
	nextID uint
}

// NewMockUserRepo creates an empty MockUserRepo.
func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{Users: make(map[uint]*models.User)}
}

func (m *MockUserRepo) CreateUser(user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.Users[user.ID] = &stored
	return user, nil
}

func (m *MockUserRepo) GetUserByID(userID uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.Users[userID]
	if !ok {
		return nil, repository.NewNotFoundError("User not found")
	}
	found := *user
	found.Auth = nil
	return &found, nil
}

func (m *MockUserRepo) GetUserAuthByUsername(username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.Users {
		if user.Username == username {
			found := *user
			return &found, nil
		}
	}
	return nil, repository.NewNotFoundError("User not found")
}

func (m *MockUserRepo) UsernameExists(username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.Users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}
