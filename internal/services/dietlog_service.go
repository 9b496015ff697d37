package services

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/nutrition"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/store"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DefaultSummaryDays = 7
	unknownRecipeName  = "Unknown Recipe"
)

var ErrDietLogNotFound = apperr.NotFound("Diet log not found")

type DietLogService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDietLogService(db *gorm.DB) *DietLogService {
	return &DietLogService{db: db, now: time.Now}
}

func (s *DietLogService) Create(ctx context.Context, p authz.Principal, req *dto.CreateDietLogRequest) (*models.DietLog, error) {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	clock, err := parseOptionalClock(req.Time)
	if err != nil {
		return nil, err
	}

	entry := models.DietLog{
		UserID:      p.UserID,
		RecipeID:    req.RecipeID,
		Date:        date,
		Time:        clock,
		PortionSize: 1,
		Notes:       req.Notes,
		IsFinished:  req.IsFinished,
	}
	if req.PortionSize != nil {
		entry.PortionSize = *req.PortionSize
	}

	err = store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		if err := lockOwner(tx, p.UserID); err != nil {
			return err
		}
		if err := requireRecipe(tx, req.RecipeID); err != nil {
			return err
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

type dietLogRow struct {
	models.DietLog
	RecipeName *string
}

// List returns the caller's logs, newest first, optionally for a single day.
func (s *DietLogService) List(ctx context.Context, p authz.Principal, date string) ([]dto.DietLogView, error) {
	q := s.db.WithContext(ctx).
		Table(models.TableDietLogs+" AS dl").
		Select("dl.*, r.name AS recipe_name").
		Joins("LEFT JOIN "+models.TableRecipes+" AS r ON r.id = dl.recipe_id").
		Where("dl.user_id = ?", p.UserID)
	if date != "" {
		day, err := dto.ParseDate(date)
		if err != nil {
			return nil, err
		}
		q = q.Where("dl.date = ?", dto.FormatDate(day))
	}

	var rows []dietLogRow
	if err := q.Order("dl.date DESC, dl.time DESC NULLS LAST, dl.id DESC").Scan(&rows).Error; err != nil {
		return nil, apperr.FromDB(err, "diet log")
	}

	views := make([]dto.DietLogView, 0, len(rows))
	for _, r := range rows {
		name := unknownRecipeName
		if r.RecipeName != nil {
			name = *r.RecipeName
		}
		views = append(views, toDietLogView(&r.DietLog, name))
	}
	return views, nil
}

func (s *DietLogService) Get(ctx context.Context, p authz.Principal, logID uint) (*models.DietLog, error) {
	var entry models.DietLog
	if err := s.loadAuthorized(s.db.WithContext(ctx), p, logID, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *DietLogService) Update(ctx context.Context, p authz.Principal, logID uint, req *dto.UpdateDietLogRequest) (*models.DietLog, error) {
	date, err := dto.ParseOptionalDate(req.Date)
	if err != nil {
		return nil, err
	}
	clock, err := parseOptionalClock(req.Time)
	if err != nil {
		return nil, err
	}

	var entry models.DietLog
	err = store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.loadAuthorized(store.ForUpdate(tx), p, logID, &entry); err != nil {
			return err
		}
		if req.RecipeID != nil {
			if err := requireRecipe(tx, req.RecipeID); err != nil {
				return err
			}
			entry.RecipeID = req.RecipeID
		}
		if date != nil {
			entry.Date = *date
		}
		if clock != nil {
			entry.Time = clock
		}
		if req.PortionSize != nil {
			entry.PortionSize = *req.PortionSize
		}
		if req.Notes != nil {
			entry.Notes = *req.Notes
		}
		if req.IsFinished != nil {
			entry.IsFinished = *req.IsFinished
		}
		return tx.Omit("user_id").Save(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *DietLogService) Delete(ctx context.Context, p authz.Principal, logID uint) error {
	return store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		var entry models.DietLog
		if err := s.loadAuthorized(tx, p, logID, &entry); err != nil {
			return err
		}
		return tx.Delete(&entry).Error
	})
}

// Toggle flips the finished flag.
func (s *DietLogService) Toggle(ctx context.Context, p authz.Principal, logID uint) (*models.DietLog, error) {
	var entry models.DietLog
	err := store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.loadAuthorized(store.ForUpdate(tx), p, logID, &entry); err != nil {
			return err
		}
		entry.IsFinished = !entry.IsFinished
		return tx.Model(&entry).Update("is_finished", entry.IsFinished).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Summary totals macros over the caller's finished logs in the last days
// calendar days, today included. Ingredients without nutrition facts are kept
// in the join so they only drop their own terms.
func (s *DietLogService) Summary(ctx context.Context, p authz.Principal, days int) (*nutrition.Summary, error) {
	started := time.Now()
	w := nutrition.NewWindow(days, s.now())

	var rows []nutrition.Contribution
	err := s.db.WithContext(ctx).
		Table(models.TableDietLogs+" AS dl").
		Select("dl.portion_size AS portion_size, ri.quantity AS quantity, " +
			"n.calories AS calories, n.protein_g AS protein_g, n.carbohydrates_g AS carbohydrates_g, " +
			"n.fat_g AS fat_g, n.fiber_g AS fiber_g").
		Joins("JOIN "+models.TableRecipes+" AS r ON r.id = dl.recipe_id").
		Joins("JOIN "+models.TableRecipeIngredients+" AS ri ON ri.recipe_id = r.id").
		Joins("LEFT JOIN "+models.TableNutrition+" AS n ON n.ingredient_id = ri.ingredient_id").
		Where("dl.user_id = ? AND dl.is_finished = ? AND dl.date BETWEEN ? AND ?",
			p.UserID, true, w.Start.Format(dto.DateLayout), w.End.Format(dto.DateLayout)).
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.FromDB(err, "diet log")
	}

	summary := nutrition.Summarize(w, rows)
	metrics.ObserveSummary(time.Since(started))
	return &summary, nil
}

func (s *DietLogService) loadAuthorized(tx *gorm.DB, p authz.Principal, logID uint, entry *models.DietLog) error {
	if err := tx.First(entry, logID).Error; err != nil {
		return notFoundAs(err, ErrDietLogNotFound, "diet log")
	}
	return authz.AuthorizeOwner(p, entry.UserID)
}

// requireRecipe share-locks the recipe for the rest of the transaction. It
// accepts a nil id; a log may be recorded without a recipe.
func requireRecipe(tx *gorm.DB, recipeID *uint) error {
	if recipeID == nil {
		return nil
	}
	var recipe models.Recipe
	if err := store.ForShare(tx).Select("id").First(&recipe, *recipeID).Error; err != nil {
		return notFoundAs(err, ErrRecipeNotFound, "recipe")
	}
	return nil
}

func parseOptionalClock(s *string) (*datatypes.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := dto.ParseClock(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toDietLogView(l *models.DietLog, recipeName string) dto.DietLogView {
	v := dto.DietLogView{
		ID:          l.ID,
		UserID:      l.UserID,
		RecipeID:    l.RecipeID,
		RecipeName:  recipeName,
		Date:        dto.FormatDate(l.Date),
		PortionSize: l.PortionSize,
		Notes:       l.Notes,
		IsFinished:  l.IsFinished,
	}
	if l.Time != nil {
		t := l.Time.String()
		v.Time = &t
	}
	return v
}
