package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
	"gorm.io/gorm"
)

const noPopularRecipe = "N/A"

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// Statistics reports table totals and the recipe with the most diet logs.
func (s *StatsService) Statistics(ctx context.Context, p authz.Principal) (*dto.AdminStatistics, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	var stats dto.AdminStatistics
	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.User{}, &stats.TotalUsers},
		{&models.Recipe{}, &stats.TotalRecipes},
		{&models.Ingredient{}, &stats.TotalIngredients},
		{&models.MealPlan{}, &stats.TotalMealPlans},
		{&models.DietLog{}, &stats.TotalDietLogs},
		{&models.Feedback{}, &stats.TotalFeedback},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, apperr.FromDB(err, "statistics")
		}
	}

	var popular []string
	err := db.Table(models.TableDietLogs+" AS dl").
		Select("r.name").
		Joins("JOIN "+models.TableRecipes+" AS r ON r.id = dl.recipe_id").
		Group("r.id, r.name").
		Order("COUNT(dl.id) DESC, r.id").
		Limit(1).
		Pluck("r.name", &popular).Error
	if err != nil {
		return nil, apperr.FromDB(err, "statistics")
	}
	stats.MostPopularRecipe = noPopularRecipe
	if len(popular) > 0 {
		stats.MostPopularRecipe = popular[0]
	}
	return &stats, nil
}
