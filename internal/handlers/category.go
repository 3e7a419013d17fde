package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mealweek/mealweek-api/internal/service"
	"github.com/mealweek/mealweek-api/internal/util"
)

// CategoryHandler is the handler for category-related requests.
type CategoryHandler struct {
	Service *service.CategoryService
}

// NewCategoryHandler is the constructor function for initializing a new CategoryHandler.
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{Service: categoryService}
}

// ListCategories returns all categories in presentation order.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.Service.GetAllCategories()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategory returns a category by ID.
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	categoryID, err := parseUintParam(c.Param("category_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	category, err := h.Service.GetCategory(categoryID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// CreateCategory creates a new category. Admin only.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	categoryID, err := h.Service.CreateCategory(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category_id": categoryID})
}

// UpdateCategory updates a category. Admin only.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	categoryID, err := parseUintParam(c.Param("category_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.Service.UpdateCategory(categoryID, input); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated"})
}

// DeleteCategory deletes a category. Admin only.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	categoryID, err := parseUintParam(c.Param("category_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if err := h.Service.DeleteCategory(categoryID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// requireAdmin aborts with 403 unless the authenticated user is an admin.
// Admin status travels with the user attached by middleware, never from
// ambient state.
func requireAdmin(c *gin.Context) bool {
	user, err := util.GetUserFromContext(c)
	if err != nil || user == nil || !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return false
	}
	return true
}
