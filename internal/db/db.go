package db

import (
	"fmt"
	"time"

	"github.com/mealweek/mealweek-api/internal/config"
	"github.com/mealweek/mealweek-api/internal/logger"
	"github.com/mealweek/mealweek-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// New creates a new database connection.
func New(cfg *config.Config) (*gorm.DB, error) {
	return connectToDatabaseWithRetry(cfg.EnvVars.DatabaseUrl)
}

// connectToDatabaseWithRetry connects to the database and retries if necessary.
func connectToDatabaseWithRetry(databaseURL string) (*gorm.DB, error) {
	logger.Get().Info("connecting to database", zap.String("url", databaseURL))
	var database *gorm.DB
	var err error

	start := time.Now()
	for {
		// TranslateError maps driver-level unique violations onto
		// gorm.ErrDuplicatedKey, which the weekly-plan find-or-create
		// relies on to resolve create races.
		database, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Since(start) > 1*time.Minute {
			return nil, fmt.Errorf("could not connect to database after 1 minute: %w", err)
		}
		logger.Get().Warn("could not connect to database, retrying...", zap.Error(err))
		time.Sleep(5 * time.Second)
	}

	if err := Migrate(database); err != nil {
		return nil, err
	}

	return database, nil
}

// Migrate runs AutoMigrate for all models. The junction tables use composite
// primary keys, so repeated inserts of the same pair hit a constraint instead
// of silently duplicating rows.
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&models.User{},
		&models.UserAuth{},
		&models.Category{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeCategory{},
		&models.RecipeTag{},
		&models.RecipeIngredient{},
		&models.WeeklyPlan{},
		&models.WeeklyPlanItem{},
	)
}
