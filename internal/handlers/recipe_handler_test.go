package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mealweek/mealweek-api/internal/config"
	"github.com/mealweek/mealweek-api/internal/service"
	"github.com/mealweek/mealweek-api/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setUserID is a test middleware that injects an authenticated user ID into
// the gin context, standing in for the token middleware.
func setUserID(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func newTestRecipeHandler(repo *testutil.MockRecipeRepo) *RecipeHandler {
	svc := service.NewRecipeService(&config.Config{}, repo, testutil.NewMockTagRepo(), testutil.NewMockIngredientRepo())
	return NewRecipeHandler(svc)
}

func TestGetRecipe_Valid(t *testing.T) {
	repo := testutil.NewMockRecipeRepo()
	recipe := testutil.TestRecipe()
	recipe.CreatedAt = time.Now()
	recipe.UpdatedAt = time.Now()
	repo.Recipes[recipe.ID] = recipe

	handler := newTestRecipeHandler(repo)

	r := gin.New()
	r.GET("/recipes/:recipe_id", handler.GetRecipe)

	req := httptest.NewRequest("GET", "/recipes/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d. body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var body map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &body)
	recipeData, ok := body["recipe"].(map[string]interface{})
	if !ok {
		t.Fatal("response should contain 'recipe' field")
	}
	if recipeData["title"] != "Classic Pancakes" {
		t.Errorf("recipe title = %v, want 'Classic Pancakes'", recipeData["title"])
	}
}

func TestGetRecipe_InvalidID(t *testing.T) {
	handler := newTestRecipeHandler(testutil.NewMockRecipeRepo())

	r := gin.New()
	r.GET("/recipes/:recipe_id", handler.GetRecipe)

	req := httptest.NewRequest("GET", "/recipes/abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGetRecipe_NotFound(t *testing.T) {
	handler := newTestRecipeHandler(testutil.NewMockRecipeRepo())

	r := gin.New()
	r.GET("/recipes/:recipe_id", handler.GetRecipe)

	req := httptest.NewRequest("GET", "/recipes/999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestListRecipes_Success(t *testing.T) {
	repo := testutil.NewMockRecipeRepo()
	recipe := testutil.TestRecipe()
	repo.Recipes[recipe.ID] = recipe

	handler := newTestRecipeHandler(repo)

	r := gin.New()
	r.GET("/recipes", handler.ListRecipes)

	req := httptest.NewRequest("GET", "/recipes", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d. body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var body map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &body)
	recipes, ok := body["recipes"].([]interface{})
	if !ok || len(recipes) != 1 {
		t.Errorf("recipes = %v, want a one-element list", body["recipes"])
	}
}

func TestListRecipes_InvalidCategoryID(t *testing.T) {
	handler := newTestRecipeHandler(testutil.NewMockRecipeRepo())

	r := gin.New()
	r.GET("/recipes", handler.ListRecipes)

	req := httptest.NewRequest("GET", "/recipes?category=abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCreateRecipe_Valid(t *testing.T) {
	repo := testutil.NewMockRecipeRepo()
	handler := newTestRecipeHandler(repo)

	r := gin.New()
	r.POST("/recipes", handler.CreateRecipe)

	payload := `{"title": "Lentil Soup", "instructions": "Simmer until tender.", "tags": ["quick"]}`
	req := httptest.NewRequest("POST", "/recipes", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d. body: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var body map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["recipe_id"] == nil {
		t.Error("response should contain 'recipe_id' field")
	}
	if len(repo.Recipes) != 1 {
		t.Errorf("stored recipes = %d, want 1", len(repo.Recipes))
	}
}

func TestCreateRecipe_ValidationFailure(t *testing.T) {
	handler := newTestRecipeHandler(testutil.NewMockRecipeRepo())

	r := gin.New()
	r.POST("/recipes", handler.CreateRecipe)

	payload := `{"title": "   ", "instructions": "x"}`
	req := httptest.NewRequest("POST", "/recipes", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d. body: %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
}

func TestUpdateRecipe_NotFound(t *testing.T) {
	handler := newTestRecipeHandler(testutil.NewMockRecipeRepo())

	r := gin.New()
	r.PUT("/recipes/:recipe_id", handler.UpdateRecipe)

	payload := `{"title": "Better Soup", "instructions": "Simmer longer."}`
	req := httptest.NewRequest("PUT", "/recipes/999", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d. body: %s", w.Code, http.StatusNotFound, w.Body.String())
	}
}

func TestDeleteRecipe_Success(t *testing.T) {
	repo := testutil.NewMockRecipeRepo()
	recipe := testutil.TestRecipe()
	repo.Recipes[recipe.ID] = recipe

	handler := newTestRecipeHandler(repo)

	r := gin.New()
	r.DELETE("/recipes/:recipe_id", handler.DeleteRecipe)

	req := httptest.NewRequest("DELETE", "/recipes/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d. body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if _, err := repo.FindByID(1); err == nil {
		t.Error("recipe should have been deleted from repo")
	}
}

func TestAddTag_MissingName(t *testing.T) {
	handler := newTestRecipeHandler(testutil.NewMockRecipeRepo())

	r := gin.New()
	r.POST("/recipes/:recipe_id/tags", handler.AddTag)

	req := httptest.NewRequest("POST", "/recipes/1/tags", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
