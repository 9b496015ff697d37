package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/store"
	"gorm.io/gorm"
)

var ErrIngredientNotFound = apperr.NotFound("Ingredient not found")

// IngredientService manages the shared ingredient catalogue. Reads are open
// to every authenticated user; writes are admin-only.
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

func (s *IngredientService) List(ctx context.Context) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Preload("Nutrition").Order("name").Find(&ingredients).Error; err != nil {
		return nil, apperr.FromDB(err, "ingredient")
	}
	return ingredients, nil
}

func (s *IngredientService) Get(ctx context.Context, ingredientID uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).Preload("Nutrition").First(&ingredient, ingredientID).Error; err != nil {
		return nil, notFoundAs(err, ErrIngredientNotFound, "ingredient")
	}
	return &ingredient, nil
}

// Create inserts the ingredient and, when given, its nutrition record in one
// transaction.
func (s *IngredientService) Create(ctx context.Context, p authz.Principal, req *dto.CreateIngredientRequest) (*models.Ingredient, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}

	ingredient := models.Ingredient{
		Name:          req.Name,
		UnitOfMeasure: req.UnitOfMeasure,
		Category:      req.Category,
		Notes:         req.Notes,
	}
	err := store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Omit("Nutrition").Create(&ingredient).Error; err != nil {
			return apperr.FromDB(err, "ingredient")
		}
		if req.Nutrition == nil {
			return nil
		}
		n := models.Nutrition{IngredientID: ingredient.ID}
		applyNutrition(&n, req.Nutrition)
		if err := tx.Create(&n).Error; err != nil {
			return err
		}
		ingredient.Nutrition = &n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (s *IngredientService) Update(ctx context.Context, p authz.Principal, ingredientID uint, req *dto.UpdateIngredientRequest) (*models.Ingredient, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}

	var ingredient models.Ingredient
	err := store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		if err := store.ForUpdate(tx).First(&ingredient, ingredientID).Error; err != nil {
			return notFoundAs(err, ErrIngredientNotFound, "ingredient")
		}
		if req.Name != nil {
			ingredient.Name = *req.Name
		}
		if req.UnitOfMeasure != nil {
			ingredient.UnitOfMeasure = *req.UnitOfMeasure
		}
		if req.Category != nil {
			ingredient.Category = *req.Category
		}
		if req.Notes != nil {
			ingredient.Notes = *req.Notes
		}
		if err := tx.Omit("Nutrition").Save(&ingredient).Error; err != nil {
			return apperr.FromDB(err, "ingredient")
		}

		var n models.Nutrition
		err := tx.Where("ingredient_id = ?", ingredientID).Limit(1).Find(&n).Error
		if err != nil {
			return err
		}
		if req.Nutrition != nil {
			n.IngredientID = ingredientID
			applyNutrition(&n, req.Nutrition)
			if err := tx.Save(&n).Error; err != nil {
				return err
			}
		}
		if n.ID != 0 {
			ingredient.Nutrition = &n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// Delete removes the ingredient and its nutrition record. It fails with a
// conflict while any recipe uses the ingredient.
func (s *IngredientService) Delete(ctx context.Context, p authz.Principal, ingredientID uint) error {
	if err := authz.RequireAdmin(p); err != nil {
		return err
	}
	return deleteCascading(ctx, s.db, models.TableIngredients, ingredientID, func(tx *gorm.DB) error {
		var ingredient models.Ingredient
		if err := store.ForUpdate(tx).First(&ingredient, ingredientID).Error; err != nil {
			return notFoundAs(err, ErrIngredientNotFound, "ingredient")
		}
		return nil
	})
}

func applyNutrition(n *models.Nutrition, in *dto.NutritionInput) {
	if in.Calories != nil {
		n.Calories = in.Calories
	}
	if in.CarbohydratesG != nil {
		n.CarbohydratesG = in.CarbohydratesG
	}
	if in.ProteinG != nil {
		n.ProteinG = in.ProteinG
	}
	if in.FatG != nil {
		n.FatG = in.FatG
	}
	if in.FiberG != nil {
		n.FiberG = in.FiberG
	}
	if in.Vitamins != nil {
		n.Vitamins = *in.Vitamins
	}
	if in.Minerals != nil {
		n.Minerals = *in.Minerals
	}
	if in.OtherNutrients != nil {
		n.OtherNutrients = *in.OtherNutrients
	}
}
