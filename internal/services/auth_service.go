package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/principal"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = apperr.Conflict("Email already exists")
	ErrInvalidCredentials = apperr.Unauthorized("Invalid email or password")
)

// TokenIssuer mints bearer tokens carrying the user id and role.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), expiry: expiry, now: time.Now}
}

func (t *TokenIssuer) Issue(userID uint, role string) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		principal.ClaimSubject: strconv.FormatUint(uint64(userID), 10),
		principal.ClaimRole:    role,
		"iat":                  now.Unix(),
		"exp":                  now.Add(t.expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

type AuthService struct {
	db          *gorm.DB
	issuer      *TokenIssuer
	adminEmails []string
}

func NewAuthService(db *gorm.DB, cfg *config.Config, issuer *TokenIssuer) *AuthService {
	return &AuthService{
		db:          db,
		issuer:      issuer,
		adminEmails: parseCSV(cfg.AdminEmails),
	}
}

func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, apperr.FromDB(err, "user")
	}
	if existing > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	dob, err := dto.ParseOptionalDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	role := models.RoleUser
	if contains(s.adminEmails, email) {
		role = models.RoleAdmin
	}

	user := models.User{
		Name:        req.Name,
		Email:       email,
		Password:    string(hash),
		DateOfBirth: dob,
		HeightCm:    req.HeightCm,
		WeightKg:    req.WeightKg,
		Role:        role,
		BMI:         computeBMI(req.HeightCm, req.WeightKg),
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
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

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, apperr.FromDB(err, "user")
	}
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var user models.User
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if apperr.KindOf(apperr.FromDB(err, "user")) == apperr.KindNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, apperr.FromDB(err, "user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &dto.LoginResponse{AccessToken: token, UserID: user.ID, Role: user.Role}, nil
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(p))
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
