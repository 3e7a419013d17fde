package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mealweek/mealweek-api/internal/service"
	"github.com/mealweek/mealweek-api/internal/util"
)

// UserHandler is the handler for user-related requests.
type UserHandler struct {
	Service *service.UserService
}

// NewUserHandler is the constructor function for initializing a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{Service: userService}
}

// CreateUser registers a new account.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	user, err := h.Service.CreateUser(body.Username, body.Email, body.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user_id": user.ID, "username": user.Username})
}

// LoginUser verifies credentials and issues a token pair.
func (h *UserHandler) LoginUser(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	user, tokens, err := h.Service.LoginUser(body.Username, body.Password)
	if err != nil {
		if _, ok := err.(service.ValidationError); ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "tokens": tokens})
}

// RefreshToken exchanges a refresh token for a new token pair.
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var body struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token is required"})
		return
	}

	tokens, err := h.Service.RefreshToken(body.RefreshToken)
	if err != nil {
		if _, ok := err.(service.ValidationError); ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// GetMe returns the authenticated user.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.Service.GetUserByID(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
