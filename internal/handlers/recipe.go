package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mealweek/mealweek-api/internal/logger"
	"github.com/mealweek/mealweek-api/internal/repository"
	"github.com/mealweek/mealweek-api/internal/service"
	"go.uber.org/zap"
)

// RecipeHandler is the handler for recipe-related requests.
type RecipeHandler struct {
	Service *service.RecipeService
}

// NewRecipeHandler is the constructor function for initializing a new RecipeHandler.
func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{Service: recipeService}
}

// ListRecipes returns recipes filtered by the query parameters. A tag filter
// wins outright; otherwise the category filter narrows first and the search
// keyword is applied to the narrowed set.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	keyword := c.Query("search")

	var categoryID, tagID uint
	if raw := c.Query("category"); raw != "" {
		id, err := parseUintParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		categoryID = id
	}
	if raw := c.Query("tag"); raw != "" {
		id, err := parseUintParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
			return
		}
		tagID = id
	}

	recipes, err := h.Service.ListRecipes(keyword, categoryID, tagID)
	if err != nil {
		logger.Get().Error("failed to list recipes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe returns a recipe by ID with its categories, tags and ingredients.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipeID, err := parseUintParam(c.Param("recipe_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	recipe, err := h.Service.GetRecipe(recipeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// CreateRecipe creates a new recipe.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var input service.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	recipeID, err := h.Service.CreateRecipe(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe_id": recipeID})
}

// UpdateRecipe updates a recipe's fields and, when supplied, its categories.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	recipeID, err := parseUintParam(c.Param("recipe_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	var input service.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.Service.UpdateRecipe(recipeID, input); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe updated"})
}

// DeleteRecipe deletes a recipe and its associations.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	recipeID, err := parseUintParam(c.Param("recipe_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	if err := h.Service.DeleteRecipe(recipeID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}

// AddTag associates a tag (by name) with a recipe.
func (h *RecipeHandler) AddTag(c *gin.Context) {
	recipeID, err := parseUintParam(c.Param("recipe_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tag name is required"})
		return
	}

	if err := h.Service.AddTagToRecipe(recipeID, body.Name); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag added"})
}

// RemoveTag removes a tag association from a recipe.
func (h *RecipeHandler) RemoveTag(c *gin.Context) {
	recipeID, err := parseUintParam(c.Param("recipe_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}
	tagID, err := parseUintParam(c.Param("tag_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
		return
	}

	if err := h.Service.RemoveTagFromRecipe(recipeID, tagID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag removed"})
}

// ReplaceTags swaps a recipe's tag set for the submitted names.
func (h *RecipeHandler) ReplaceTags(c *gin.Context) {
	recipeID, err := parseUintParam(c.Param("recipe_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	var body struct {
		Tags []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.Service.ReplaceRecipeTags(recipeID, body.Tags); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tags replaced"})
}

// AddIngredient associates an ingredient with a recipe.
func (h *RecipeHandler) AddIngredient(c *gin.Context) {
	recipeID, err := parseUintParam(c.Param("recipe_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	var input service.IngredientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.Service.AddIngredientToRecipe(recipeID, input); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ingredient added"})
}

// RemoveIngredient removes an ingredient association from a recipe.
func (h *RecipeHandler) RemoveIngredient(c *gin.Context) {
	recipeID, err := parseUintParam(c.Param("recipe_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}
	ingredientID, err := parseUintParam(c.Param("ingredient_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ingredient ID"})
		return
	}

	if err := h.Service.RemoveIngredientFromRecipe(recipeID, ingredientID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ingredient removed"})
}

// ReplaceIngredients swaps a recipe's ingredient list for the submitted one.
func (h *RecipeHandler) ReplaceIngredients(c *gin.Context) {
	recipeID, err := parseUintParam(c.Param("recipe_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	var body struct {
		Ingredients []service.IngredientInput `json:"ingredients"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.Service.ReplaceRecipeIngredients(recipeID, body.Ingredients); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ingredients replaced"})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses:
// validation → 400, not found → 404, anything else → 500.
func respondServiceError(c *gin.Context, err error) {
	switch e := err.(type) {
	case service.ValidationError:
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
	case repository.NotFoundError:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
	default:
		logger.Get().Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": e.Error()})
	}
}
