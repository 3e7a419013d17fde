package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckIDHeader checks the X-MealWeek-Client header for a specific value.
// Used to keep random internet traffic off the API when fronted by a proxy
// that injects the header.
func CheckIDHeader(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idHeaderValue := c.GetHeader("X-MealWeek-Client")
		if idHeaderValue != id {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
