package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/principal"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/store"
	"gorm.io/gorm"
)

const recipeActivityLimit = 10

var (
	ErrRecipeNotFound            = apperr.NotFound("Recipe not found")
	ErrRecipeIngredientNotFound  = apperr.NotFound("Recipe ingredient entry not found")
	ErrIngredientAlreadyInRecipe = apperr.Conflict("Ingredient is already part of this recipe")
)

type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// RecipeDetail is a recipe with its ingredient rows resolved to names.
type RecipeDetail struct {
	models.Recipe
	Ingredients []dto.RecipeIngredientView `json:"ingredients"`
}

// Create stores the recipe and its activity-log entry together.
func (s *RecipeService) Create(ctx context.Context, p authz.Principal, req *dto.CreateRecipeRequest) (*models.Recipe, error) {
	creator := p.UserID
	recipe := models.Recipe{
		Name:            req.Name,
		Description:     req.Description,
		CuisineType:     req.CuisineType,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
		ServingSize:     1,
		Difficulty:      "Easy",
		Instructions:    req.Instructions,
		CreatorID:       &creator,
	}
	if req.ServingSize != nil {
		recipe.ServingSize = *req.ServingSize
	}
	if req.Difficulty != "" {
		recipe.Difficulty = req.Difficulty
	}

	err := store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		if err := lockOwner(tx, creator); err != nil {
			return err
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return apperr.FromDB(err, "recipe")
		}
		entry := models.RecipeLog{
			RecipeID:   &recipe.ID,
			RecipeName: recipe.Name,
			CreatedBy:  &creator,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List returns every recipe to admins and the caller's own recipes otherwise.
func (s *RecipeService) List(ctx context.Context, p authz.Principal) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Scopes(principal.VisibleTo(p, "creator_id")).
		Order("id").
		Find(&recipes).Error
	if err != nil {
		return nil, apperr.FromDB(err, "recipe")
	}
	return recipes, nil
}

func (s *RecipeService) Get(ctx context.Context, p authz.Principal, recipeID uint) (*RecipeDetail, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Ingredients.Ingredient").
		First(&recipe, recipeID).Error
	if err != nil {
		return nil, notFoundAs(err, ErrRecipeNotFound, "recipe")
	}
	if err := authz.Authorize(p, recipe.CreatorID); err != nil {
		return nil, err
	}

	views := make([]dto.RecipeIngredientView, 0, len(recipe.Ingredients))
	for _, ri := range recipe.Ingredients {
		v := dto.RecipeIngredientView{
			ID:           ri.ID,
			IngredientID: ri.IngredientID,
			Quantity:     ri.Quantity,
			Unit:         ri.Unit,
		}
		if ri.Ingredient != nil {
			v.IngredientName = ri.Ingredient.Name
		}
		views = append(views, v)
	}
	recipe.Ingredients = nil
	return &RecipeDetail{Recipe: recipe, Ingredients: views}, nil
}

func (s *RecipeService) Update(ctx context.Context, p authz.Principal, recipeID uint, req *dto.UpdateRecipeRequest) (*models.Recipe, error) {
	var recipe models.Recipe
	err := store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.loadAuthorized(store.ForUpdate(tx), p, recipeID, &recipe); err != nil {
			return err
		}
		if req.Name != nil {
			recipe.Name = *req.Name
		}
		if req.Description != nil {
			recipe.Description = *req.Description
		}
		if req.CuisineType != nil {
			recipe.CuisineType = *req.CuisineType
		}
		if req.PrepTimeMinutes != nil {
			recipe.PrepTimeMinutes = *req.PrepTimeMinutes
		}
		if req.CookTimeMinutes != nil {
			recipe.CookTimeMinutes = *req.CookTimeMinutes
		}
		if req.ServingSize != nil {
			recipe.ServingSize = *req.ServingSize
		}
		if req.Difficulty != nil {
			recipe.Difficulty = *req.Difficulty
		}
		if req.Instructions != nil {
			recipe.Instructions = *req.Instructions
		}
		// The creator is never changed through an update.
		return tx.Omit("creator_id").Save(&recipe).Error
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Delete removes the recipe with its ingredient rows, feedback and activity
// entries, and detaches diet logs. It fails while a meal plan uses it.
func (s *RecipeService) Delete(ctx context.Context, p authz.Principal, recipeID uint) error {
	return deleteCascading(ctx, s.db, models.TableRecipes, recipeID, func(tx *gorm.DB) error {
		var recipe models.Recipe
		return s.loadAuthorized(store.ForUpdate(tx), p, recipeID, &recipe)
	})
}

func (s *RecipeService) AddIngredient(ctx context.Context, p authz.Principal, recipeID uint, req *dto.AddRecipeIngredientRequest) (*models.RecipeIngredient, error) {
	var row models.RecipeIngredient
	err := store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := s.loadAuthorized(store.ForShare(tx), p, recipeID, &recipe); err != nil {
			return err
		}

		var ingredient models.Ingredient
		if err := store.ForShare(tx).First(&ingredient, req.IngredientID).Error; err != nil {
			return notFoundAs(err, ErrIngredientNotFound, "ingredient")
		}

		var dup int64
		if err := tx.Model(&models.RecipeIngredient{}).
			Where("recipe_id = ? AND ingredient_id = ?", recipeID, req.IngredientID).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return ErrIngredientAlreadyInRecipe
		}

		row = models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: req.IngredientID,
			Quantity:     req.Quantity,
			Unit:         req.Unit,
		}
		if err := tx.Create(&row).Error; err != nil {
			// A concurrent insert of the same pair loses on the unique index.
			return apperr.FromDB(err, "recipe ingredient")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *RecipeService) UpdateIngredient(ctx context.Context, p authz.Principal, rowID uint, req *dto.UpdateRecipeIngredientRequest) (*models.RecipeIngredient, error) {
	var row models.RecipeIngredient
	err := store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.loadIngredientRow(tx, p, rowID, &row); err != nil {
			return err
		}
		if req.Quantity != nil {
			row.Quantity = *req.Quantity
		}
		if req.Unit != nil {
			row.Unit = *req.Unit
		}
		return tx.Model(&row).Updates(map[string]interface{}{
			"quantity": row.Quantity,
			"unit":     row.Unit,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *RecipeService) RemoveIngredient(ctx context.Context, p authz.Principal, rowID uint) error {
	return store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		var row models.RecipeIngredient
		if err := s.loadIngredientRow(tx, p, rowID, &row); err != nil {
			return err
		}
		return tx.Delete(&row).Error
	})
}

func (s *RecipeService) Calories(ctx context.Context, p authz.Principal, recipeID uint) (*dto.RecipeCaloriesResponse, error) {
	var recipe models.Recipe
	if err := s.loadAuthorized(s.db.WithContext(ctx), p, recipeID, &recipe); err != nil {
		return nil, err
	}
	totals, err := recipeCalories(ctx, s.db, []uint{recipeID})
	if err != nil {
		return nil, err
	}
	return &dto.RecipeCaloriesResponse{RecipeID: recipeID, TotalCalories: totals[recipeID]}, nil
}

// Activity returns the caller's most recent recipe creations.
func (s *RecipeService) Activity(ctx context.Context, p authz.Principal) ([]models.RecipeLog, error) {
	var logs []models.RecipeLog
	err := s.db.WithContext(ctx).
		Where("created_by = ?", p.UserID).
		Order("created_at DESC, id DESC").
		Limit(recipeActivityLimit).
		Find(&logs).Error
	if err != nil {
		return nil, apperr.FromDB(err, "recipe log")
	}
	return logs, nil
}

func (s *RecipeService) loadAuthorized(tx *gorm.DB, p authz.Principal, recipeID uint, recipe *models.Recipe) error {
	if err := tx.First(recipe, recipeID).Error; err != nil {
		return notFoundAs(err, ErrRecipeNotFound, "recipe")
	}
	return authz.Authorize(p, recipe.CreatorID)
}

// loadIngredientRow authorizes against the parent recipe's creator.
func (s *RecipeService) loadIngredientRow(tx *gorm.DB, p authz.Principal, rowID uint, row *models.RecipeIngredient) error {
	if err := tx.First(row, rowID).Error; err != nil {
		return notFoundAs(err, ErrRecipeIngredientNotFound, "recipe ingredient")
	}
	var recipe models.Recipe
	return s.loadAuthorized(tx, p, row.RecipeID, &recipe)
}

// notFoundAs maps a missing row to notFound and anything else through FromDB.
func notFoundAs(err error, notFound *apperr.Error, what string) error {
	mapped := apperr.FromDB(err, what)
	if apperr.KindOf(mapped) == apperr.KindNotFound {
		return notFound
	}
	return mapped
}
