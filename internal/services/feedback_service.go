package services

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/store"
	"gorm.io/gorm"
)

var ErrFeedbackNotFound = apperr.NotFound("Feedback not found")

type FeedbackService struct {
	db     *gorm.DB
	filter *CommentFilter
}

func NewFeedbackService(db *gorm.DB, filter *CommentFilter) *FeedbackService {
	return &FeedbackService{db: db, filter: filter}
}

// Add records the caller's rating of a recipe. Any authenticated user may
// rate any existing recipe.
func (s *FeedbackService) Add(ctx context.Context, p authz.Principal, recipeID uint, req *dto.CreateFeedbackRequest) (*models.Feedback, error) {
	if err := s.filter.Validate(req.Comments); err != nil {
		return nil, err
	}

	fb := models.Feedback{
		UserID:   p.UserID,
		RecipeID: recipeID,
		Rating:   req.Rating,
		Comments: req.Comments,
	}
	err := store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		if err := lockOwner(tx, p.UserID); err != nil {
			return err
		}
		if err := requireRecipe(tx, &recipeID); err != nil {
			return err
		}
		return tx.Create(&fb).Error
	})
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

type feedbackRow struct {
	models.Feedback
	UserName *string
}

// ListForRecipe returns the recipe's feedback with author names, newest first.
func (s *FeedbackService) ListForRecipe(ctx context.Context, recipeID uint) ([]dto.FeedbackView, error) {
	db := s.db.WithContext(ctx)
	var recipe models.Recipe
	if err := db.Select("id").First(&recipe, recipeID).Error; err != nil {
		return nil, notFoundAs(err, ErrRecipeNotFound, "recipe")
	}

	var rows []feedbackRow
	err := db.Table(models.TableFeedback+" AS f").
		Select("f.*, u.name AS user_name").
		Joins("LEFT JOIN "+models.TableUsers+" AS u ON u.id = f.user_id").
		Where("f.recipe_id = ?", recipeID).
		Order("f.created_at DESC, f.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.FromDB(err, "feedback")
	}

	views := make([]dto.FeedbackView, 0, len(rows))
	for _, r := range rows {
		v := dto.FeedbackView{
			ID:        r.ID,
			UserID:    r.UserID,
			RecipeID:  r.RecipeID,
			Rating:    r.Rating,
			Comments:  r.Comments,
			CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
		}
		if r.UserName != nil {
			v.UserName = *r.UserName
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *FeedbackService) Update(ctx context.Context, p authz.Principal, feedbackID uint, req *dto.UpdateFeedbackRequest) (*models.Feedback, error) {
	if req.Comments != nil {
		if err := s.filter.Validate(*req.Comments); err != nil {
			return nil, err
		}
	}

	var fb models.Feedback
	err := store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.loadAuthorized(store.ForUpdate(tx), p, feedbackID, &fb); err != nil {
			return err
		}
		if req.Rating != nil {
			fb.Rating = *req.Rating
		}
		if req.Comments != nil {
			fb.Comments = *req.Comments
		}
		return tx.Model(&fb).Updates(map[string]interface{}{
			"rating":   fb.Rating,
			"comments": fb.Comments,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

func (s *FeedbackService) Delete(ctx context.Context, p authz.Principal, feedbackID uint) error {
	return store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		var fb models.Feedback
		if err := s.loadAuthorized(tx, p, feedbackID, &fb); err != nil {
			return err
		}
		return tx.Delete(&fb).Error
	})
}

func (s *FeedbackService) loadAuthorized(tx *gorm.DB, p authz.Principal, feedbackID uint, fb *models.Feedback) error {
	if err := tx.First(fb, feedbackID).Error; err != nil {
		return notFoundAs(err, ErrFeedbackNotFound, "feedback")
	}
	return authz.AuthorizeOwner(p, fb.UserID)
}
