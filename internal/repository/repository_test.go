package repository

import (
	"testing"

	"github.com/mealweek/mealweek-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openTestDB opens an isolated in-memory database with the full schema
// migrated, mirroring db.New's TranslateError setting so unique-constraint
// violations surface as gorm.ErrDuplicatedKey here too.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = database.AutoMigrate(
		&models.User{},
		&models.UserAuth{},
		&models.Recipe{},
		&models.Category{},
		&models.Tag{},
		&models.Ingredient{},
		&models.RecipeCategory{},
		&models.RecipeTag{},
		&models.RecipeIngredient{},
		&models.WeeklyPlan{},
		&models.WeeklyPlanItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return database
}

// mustCreate inserts a record or fails the test.
func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("failed to create %T: %v", value, err)
	}
}
