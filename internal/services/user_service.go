package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/store"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Get(ctx context.Context, p authz.Principal, userID uint) (*models.User, error) {
	if err := authz.AuthorizeOwner(p, userID); err != nil {
		return nil, err
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, apperr.FromDB(err, "user")
	}
	return &user, nil
}

func (s *UserService) Update(ctx context.Context, p authz.Principal, userID uint, req *dto.UpdateUserRequest) (*models.User, error) {
	if err := authz.AuthorizeOwner(p, userID); err != nil {
		return nil, err
	}
	return s.update(ctx, userID, req, nil)
}

// DeleteSelf is the self-service account deletion path.
func (s *UserService) DeleteSelf(ctx context.Context, p authz.Principal, userID uint) error {
	if err := authz.AuthorizeSelf(p, userID); err != nil {
		return err
	}
	return s.delete(ctx, userID)
}

func (s *UserService) AdminList(ctx context.Context, p authz.Principal) ([]models.User, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, apperr.FromDB(err, "user")
	}
	return users, nil
}

func (s *UserService) AdminGet(ctx context.Context, p authz.Principal, userID uint) (*models.User, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, apperr.FromDB(err, "user")
	}
	return &user, nil
}

// AdminUpdate may also change the role. The new role reaches the user's
// requests only once a new token is issued at their next login.
func (s *UserService) AdminUpdate(ctx context.Context, p authz.Principal, userID uint, req *dto.AdminUpdateUserRequest) (*models.User, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	return s.update(ctx, userID, &req.UpdateUserRequest, req.Role)
}

func (s *UserService) AdminDelete(ctx context.Context, p authz.Principal, userID uint) error {
	if err := authz.AuthorizeAdminDeletion(p, userID); err != nil {
		return err
	}
	return s.delete(ctx, userID)
}

func (s *UserService) ResetPassword(ctx context.Context, p authz.Principal, userID uint, newPassword string) (*models.User, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user models.User
	err = store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		if err := store.ForUpdate(tx).First(&user, userID).Error; err != nil {
			return apperr.FromDB(err, "user")
		}
		return tx.Model(&user).Update("password", string(hash)).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateWeight records the change in weight_history and updates the user in
// one transaction. The user row is locked so concurrent updates serialise
// and every history row carries the weight it replaced.
func (s *UserService) UpdateWeight(ctx context.Context, p authz.Principal, userID uint, weightKg float64) (*models.WeightHistory, error) {
	if err := authz.AuthorizeOwner(p, userID); err != nil {
		return nil, err
	}
	if weightKg <= 0 {
		return nil, apperr.Validation("New weight is required")
	}

	var entry *models.WeightHistory
	err := store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		var user models.User
		if err := store.ForUpdate(tx).First(&user, userID).Error; err != nil {
			return apperr.FromDB(err, "user")
		}
		var err error
		entry, err = applyWeight(tx, &user, weightKg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *UserService) WeightHistory(ctx context.Context, p authz.Principal, userID uint) ([]models.WeightHistory, error) {
	if err := authz.AuthorizeOwner(p, userID); err != nil {
		return nil, err
	}
	var history []models.WeightHistory
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&history).Error
	if err != nil {
		return nil, apperr.FromDB(err, "weight history")
	}
	return history, nil
}

// applyWeight appends the audit row and writes the new weight and BMI. The
// caller holds a lock on user.
func applyWeight(tx *gorm.DB, user *models.User, weightKg float64) (*models.WeightHistory, error) {
	entry := models.WeightHistory{
		UserID:    user.ID,
		OldWeight: user.WeightKg,
		NewWeight: weightKg,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}

	w := weightKg
	user.WeightKg = &w
	user.BMI = computeBMI(user.HeightCm, user.WeightKg)
	err := tx.Model(user).Updates(map[string]interface{}{
		"weight_kg": user.WeightKg,
		"bmi":       user.BMI,
	}).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *UserService) update(ctx context.Context, userID uint, req *dto.UpdateUserRequest, role *string) (*models.User, error) {
	dob, err := dto.ParseOptionalDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = store.Transact(ctx, s.db, func(tx *gorm.DB) error {
		if err := store.ForUpdate(tx).First(&user, userID).Error; err != nil {
			return apperr.FromDB(err, "user")
		}

		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.Email != nil {
			user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
		}
		if dob != nil {
			user.DateOfBirth = dob
		}
		if req.Gender != nil {
			user.Gender = *req.Gender
		}
		if req.HeightCm != nil {
			user.HeightCm = req.HeightCm
		}
		if req.ActivityLevel != nil {
			user.ActivityLevel = *req.ActivityLevel
		}
		if req.DietaryPreferences != nil {
			user.DietaryPreferences = *req.DietaryPreferences
		}
		if req.Allergies != nil {
			user.Allergies = *req.Allergies
		}
		if role != nil {
			user.Role = *role
		}
		user.BMI = computeBMI(user.HeightCm, user.WeightKg)

		if err := tx.Save(&user).Error; err != nil {
			return apperr.FromDB(err, "user")
		}

		// Weight changes always go through the audited path.
		if req.WeightKg != nil && (user.WeightKg == nil || *user.WeightKg != *req.WeightKg) {
			if _, err := applyWeight(tx, &user, *req.WeightKg); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) delete(ctx context.Context, userID uint) error {
	return deleteCascading(ctx, s.db, models.TableUsers, userID, func(tx *gorm.DB) error {
		var user models.User
		return apperr.FromDB(store.ForUpdate(tx).First(&user, userID).Error, "user")
	})
}
