package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mealweek/mealweek-api/internal/service"
)

// CatalogHandler serves the tag and ingredient catalogs.
type CatalogHandler struct {
	Service *service.CatalogService
}

// NewCatalogHandler is the constructor function for initializing a new CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{Service: catalogService}
}

// ListTags returns every tag.
func (h *CatalogHandler) ListTags(c *gin.Context) {
	tags, err := h.Service.GetAllTags()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// ListIngredients returns every ingredient.
func (h *CatalogHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.Service.GetAllIngredients()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}
