package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mealweek/mealweek-api/internal/config"
	"github.com/mealweek/mealweek-api/internal/handlers"
	"github.com/mealweek/mealweek-api/internal/logger"
	"github.com/mealweek/mealweek-api/internal/middleware"
	"github.com/mealweek/mealweek-api/internal/repository"
	"github.com/mealweek/mealweek-api/internal/service"
	"gorm.io/gorm"
)

// SetupRouter sets up the Gin router.
func SetupRouter(cfg *config.Config, database *gorm.DB) *gin.Engine {
	// Create default Gin router
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	corsConfig.AllowOrigins = []string{
		"https://mealweek.app",
		"https://www.mealweek.app",
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())

	// Optional shared-secret header check for proxied deployments
	if cfg.EnvVars.IDHeader != "" {
		r.Use(middleware.CheckIDHeader(cfg.EnvVars.IDHeader))
	}

	// Ping route for testing
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// User-related routes setup
	userRepo := repository.NewUserRepository(database)
	userService := service.NewUserService(cfg, userRepo)
	userHandler := handlers.NewUserHandler(userService)

	// Recipe-related routes setup
	recipeRepo := repository.NewRecipeRepository(database)
	tagRepo := repository.NewTagRepository(database)
	ingredientRepo := repository.NewIngredientRepository(database)
	recipeService := service.NewRecipeService(cfg, recipeRepo, tagRepo, ingredientRepo)
	recipeHandler := handlers.NewRecipeHandler(recipeService)

	// Category and catalog routes setup
	categoryRepo := repository.NewCategoryRepository(database)
	categoryService := service.NewCategoryService(cfg, categoryRepo)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	catalogService := service.NewCatalogService(cfg, tagRepo, ingredientRepo)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	// Week-planner routes setup
	planRepo := repository.NewWeeklyPlanRepository(database)
	planService := service.NewWeeklyPlanService(cfg, planRepo)
	planHandler := handlers.NewPlanHandler(planService)

	// Image upload setup
	imageHandler := handlers.NewImageHandler(cfg)

	// Group for API routes that don't require token verification
	apiPublic := r.Group("/v1")
	apiPublic.Use(middleware.RateLimitByIP(10, 5*time.Minute, 15*time.Minute))
	{
		// Create a new user
		apiPublic.POST("/users", userHandler.CreateUser)
		// Login a user
		apiPublic.POST("/auth/login", userHandler.LoginUser)
		// Refresh an access token
		apiPublic.POST("/auth/refresh", userHandler.RefreshToken)

		// Browse recipes and categories without an account
		apiPublic.GET("/recipes", recipeHandler.ListRecipes)
		apiPublic.GET("/recipes/:recipe_id", recipeHandler.GetRecipe)
		apiPublic.GET("/categories", categoryHandler.ListCategories)
		apiPublic.GET("/categories/:category_id", categoryHandler.GetCategory)
		apiPublic.GET("/tags", catalogHandler.ListTags)
		apiPublic.GET("/ingredients", catalogHandler.ListIngredients)
	}

	// Group for API routes that require token verification
	apiProtected := r.Group("/v1")
	apiProtected.Use(middleware.RateLimitByIP(30, 5*time.Minute, 15*time.Minute))
	apiProtected.Use(middleware.VerifyTokenMiddleware(cfg))
	apiProtected.Use(middleware.AttachUserToContext(userService))
	{
		apiProtected.GET("/users/me", userHandler.GetMe)

		// Recipe management
		apiProtected.POST("/recipes", recipeHandler.CreateRecipe)
		apiProtected.PUT("/recipes/:recipe_id", recipeHandler.UpdateRecipe)
		apiProtected.DELETE("/recipes/:recipe_id", recipeHandler.DeleteRecipe)
		apiProtected.POST("/recipes/:recipe_id/tags", recipeHandler.AddTag)
		apiProtected.PUT("/recipes/:recipe_id/tags", recipeHandler.ReplaceTags)
		apiProtected.DELETE("/recipes/:recipe_id/tags/:tag_id", recipeHandler.RemoveTag)
		apiProtected.POST("/recipes/:recipe_id/ingredients", recipeHandler.AddIngredient)
		apiProtected.PUT("/recipes/:recipe_id/ingredients", recipeHandler.ReplaceIngredients)
		apiProtected.DELETE("/recipes/:recipe_id/ingredients/:ingredient_id", recipeHandler.RemoveIngredient)

		// Category management (admin checked in the handlers)
		apiProtected.POST("/categories", categoryHandler.CreateCategory)
		apiProtected.PUT("/categories/:category_id", categoryHandler.UpdateCategory)
		apiProtected.DELETE("/categories/:category_id", categoryHandler.DeleteCategory)

		// Week planner
		apiProtected.GET("/planner/current", planHandler.GetCurrentWeekPlan)
		apiProtected.GET("/planner/plans", planHandler.ListWeekPlans)
		apiProtected.POST("/planner/plans", planHandler.CreateWeekPlan)
		apiProtected.GET("/planner/plans/:plan_id/meals", planHandler.GetWeekPlanMeals)
		apiProtected.POST("/planner/plans/:plan_id/meals", planHandler.AddMeal)
		apiProtected.PUT("/planner/plans/:plan_id/servings", planHandler.UpdateServings)
		apiProtected.PUT("/planner/meals/:item_id", planHandler.UpdateMeal)
		apiProtected.DELETE("/planner/meals/:item_id", planHandler.RemoveMeal)

		// Image upload
		apiProtected.POST("/images/upload", imageHandler.UploadImage)
	}

	return r
}
