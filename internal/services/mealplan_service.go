package services

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/principal"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/store"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrMealPlanNotFound       = apperr.NotFound("Meal plan not found")
	ErrMealPlanRecipeNotFound = apperr.NotFound("Meal plan recipe entry not found")
	ErrNoRecipesForDay        = apperr.NotFound("No recipes found for this day on this plan.")
)

type MealPlanService struct {
	db *gorm.DB
}

func NewMealPlanService(db *gorm.DB) *MealPlanService {
	return &MealPlanService{db: db}
}

func (s *MealPlanService) Create(ctx context.Context, p authz.Principal, req *dto.CreateMealPlanRequest) (*models.MealPlan, error) {
	start, err := dto.ParseOptionalDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := dto.ParseOptionalDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if err := checkPlanRange(start, end); err != nil {
		return nil, err
	}

	plan := models.MealPlan{
		UserID:    p.UserID,
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		Notes:     req.Notes,
	}
	err = store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		if err := lockOwner(tx, p.UserID); err != nil {
			return err
		}
		return apperr.FromDB(tx.Omit("Recipes").Create(&plan).Error, "meal plan")
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *MealPlanService) List(ctx context.Context, p authz.Principal) ([]models.MealPlan, error) {
	var plans []models.MealPlan
	err := s.db.WithContext(ctx).
		Scopes(principal.VisibleTo(p, "user_id")).
		Order("id").
		Find(&plans).Error
	if err != nil {
		return nil, apperr.FromDB(err, "meal plan")
	}
	return plans, nil
}

// Get returns the plan with its recipe links, each carrying its recipe.
func (s *MealPlanService) Get(ctx context.Context, p authz.Principal, planID uint) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := s.db.WithContext(ctx).
		Preload("Recipes", func(db *gorm.DB) *gorm.DB { return db.Order("day_of_plan, id") }).
		Preload("Recipes.Recipe").
		First(&plan, planID).Error
	if err != nil {
		return nil, notFoundAs(err, ErrMealPlanNotFound, "meal plan")
	}
	if err := authz.AuthorizeOwner(p, plan.UserID); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *MealPlanService) Update(ctx context.Context, p authz.Principal, planID uint, req *dto.UpdateMealPlanRequest) (*models.MealPlan, error) {
	start, err := dto.ParseOptionalDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := dto.ParseOptionalDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	var plan models.MealPlan
	err = store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.loadAuthorized(store.ForUpdate(tx), p, planID, &plan); err != nil {
			return err
		}
		if req.Name != nil {
			plan.Name = *req.Name
		}
		if start != nil {
			plan.StartDate = start
		}
		if end != nil {
			plan.EndDate = end
		}
		if req.Notes != nil {
			plan.Notes = *req.Notes
		}
		if err := checkPlanRange(plan.StartDate, plan.EndDate); err != nil {
			return err
		}
		return tx.Omit("Recipes", "user_id").Save(&plan).Error
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Delete removes the plan and its recipe links.
func (s *MealPlanService) Delete(ctx context.Context, p authz.Principal, planID uint) error {
	return deleteCascading(ctx, s.db, models.TableMealPlans, planID, func(tx *gorm.DB) error {
		var plan models.MealPlan
		return s.loadAuthorized(store.ForUpdate(tx), p, planID, &plan)
	})
}

func (s *MealPlanService) AddRecipe(ctx context.Context, p authz.Principal, planID uint, req *dto.AddMealPlanRecipeRequest) (*models.MealPlanRecipe, error) {
	day, err := dto.ParseOptionalDate(req.DayOfPlan)
	if err != nil {
		return nil, err
	}
	mealType := req.MealType
	if mealType == "" {
		mealType = "Lunch"
	}

	var link models.MealPlanRecipe
	err = store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		var plan models.MealPlan
		if err := s.loadAuthorized(store.ForShare(tx), p, planID, &plan); err != nil {
			return err
		}
		if err := requireRecipe(tx, &req.RecipeID); err != nil {
			return err
		}
		link = models.MealPlanRecipe{
			MealPlanID: planID,
			RecipeID:   req.RecipeID,
			DayOfPlan:  day,
			MealType:   mealType,
		}
		return tx.Omit("Recipe").Create(&link).Error
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *MealPlanService) RemoveRecipe(ctx context.Context, p authz.Principal, linkID uint) error {
	return store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		var link models.MealPlanRecipe
		if err := tx.First(&link, linkID).Error; err != nil {
			return notFoundAs(err, ErrMealPlanRecipeNotFound, "meal plan recipe")
		}
		var plan models.MealPlan
		if err := s.loadAuthorized(tx, p, link.MealPlanID, &plan); err != nil {
			return err
		}
		return tx.Delete(&link).Error
	})
}

type planSummaryRow struct {
	PlanName   string
	DayOfPlan  *datatypes.Date
	MealType   string
	RecipeID   uint
	RecipeName string
}

// Summary lists every recipe link of the plan with the whole-recipe calories.
func (s *MealPlanService) Summary(ctx context.Context, p authz.Principal, planID uint) ([]dto.MealPlanSummaryRow, error) {
	var plan models.MealPlan
	if err := s.loadAuthorized(s.db.WithContext(ctx), p, planID, &plan); err != nil {
		return nil, err
	}

	var rows []planSummaryRow
	err := s.db.WithContext(ctx).
		Table(models.TableMealPlanRecipes+" AS mpr").
		Select("mp.name AS plan_name, mpr.day_of_plan AS day_of_plan, mpr.meal_type AS meal_type, r.id AS recipe_id, r.name AS recipe_name").
		Joins("JOIN "+models.TableMealPlans+" AS mp ON mp.id = mpr.meal_plan_id").
		Joins("JOIN "+models.TableRecipes+" AS r ON r.id = mpr.recipe_id").
		Where("mpr.meal_plan_id = ?", planID).
		Order("mpr.day_of_plan, mpr.id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.FromDB(err, "meal plan")
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.RecipeID)
	}
	calories, err := recipeCalories(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MealPlanSummaryRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MealPlanSummaryRow{
			PlanName:       r.PlanName,
			DayOfPlan:      dto.FormatOptionalDate(r.DayOfPlan),
			MealType:       r.MealType,
			RecipeID:       r.RecipeID,
			RecipeName:     r.RecipeName,
			RecipeCalories: calories[r.RecipeID],
		})
	}
	return out, nil
}

// LogDay turns every recipe linked to the given day of the plan into a
// finished diet log for the plan's owner. All logs are written or none.
func (s *MealPlanService) LogDay(ctx context.Context, p authz.Principal, req *dto.LogMealPlanDayRequest) (*dto.LogMealPlanDayResponse, error) {
	day, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	var logged int
	err = store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		var plan models.MealPlan
		if err := s.loadAuthorized(store.ForShare(tx), p, req.PlanID, &plan); err != nil {
			return err
		}

		var links []models.MealPlanRecipe
		if err := store.ForShare(tx).Where("meal_plan_id = ? AND day_of_plan = ?", plan.ID, dto.FormatDate(day)).
			Order("id").
			Find(&links).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return ErrNoRecipesForDay
		}

		logs := make([]models.DietLog, 0, len(links))
		for _, l := range links {
			recipeID := l.RecipeID
			logs = append(logs, models.DietLog{
				UserID:      plan.UserID,
				RecipeID:    &recipeID,
				Date:        day,
				PortionSize: 1,
				Notes:       fmt.Sprintf("From meal plan: %s", plan.Name),
				IsFinished:  true,
			})
		}
		if err := tx.Create(&logs).Error; err != nil {
			return err
		}
		logged = len(logs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.LogMealPlanDayResponse{
		Message: fmt.Sprintf("Logged %d recipes from meal plan", logged),
		Logged:  logged,
	}, nil
}

func (s *MealPlanService) loadAuthorized(tx *gorm.DB, p authz.Principal, planID uint, plan *models.MealPlan) error {
	if err := tx.First(plan, planID).Error; err != nil {
		return notFoundAs(err, ErrMealPlanNotFound, "meal plan")
	}
	return authz.AuthorizeOwner(p, plan.UserID)
}

func checkPlanRange(start, end *datatypes.Date) error {
	if start != nil && end != nil && dto.FormatDate(*end) < dto.FormatDate(*start) {
		return apperr.Validation("end_date must not be before start_date")
	}
	return nil
}
