package db

import (
	"fmt"
	"os"

	"github.com/mealweek/mealweek-api/internal/logger"
	"github.com/mealweek/mealweek-api/internal/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// seedFile is the on-disk shape of the category seed YAML.
type seedFile struct {
	Categories []struct {
		Name         string `yaml:"name"`
		Description  string `yaml:"description"`
		Icon         string `yaml:"icon"`
		Color        string `yaml:"color"`
		DisplayOrder int    `yaml:"display_order"`
	} `yaml:"categories"`
}

// SeedCategories inserts the default categories from the given YAML file.
// Seeding is idempotent: names are unique and existing rows are left alone,
// so running it on every startup is safe.
func SeedCategories(database *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Get().Info("no category seed file, skipping", zap.String("path", path))
			return nil
		}
		return fmt.Errorf("failed to read category seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("failed to parse category seed file: %w", err)
	}

	for _, c := range seed.Categories {
		category := models.Category{
			Name:         c.Name,
			Description:  c.Description,
			Icon:         c.Icon,
			Color:        c.Color,
			DisplayOrder: c.DisplayOrder,
		}
		err := database.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&category).Error
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", c.Name, err)
		}
	}

	logger.Get().Info("category seed applied", zap.Int("categories", len(seed.Categories)))
	return nil
}
