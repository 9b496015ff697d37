package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	Name               string          `gorm:"size:100;not null" json:"name"`
	Email              string          `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password           string          `gorm:"size:255;not null" json:"-"`
	DateOfBirth        *datatypes.Date `json:"date_of_birth"`
	Gender             string          `gorm:"size:10;default:'Other'" json:"gender"`
	HeightCm           *int            `json:"height_cm"`
	WeightKg           *float64        `gorm:"type:decimal(5,2)" json:"weight_kg"`
	ActivityLevel      string          `gorm:"size:20;default:'Moderate'" json:"activity_level"`
	DietaryPreferences string          `gorm:"size:100" json:"dietary_preferences"`
	Allergies          string          `gorm:"size:255" json:"allergies"`
	BMI                *float64        `gorm:"type:decimal(9,2)" json:"bmi"`
	Role               string          `gorm:"size:20;not null;default:'user'" json:"role"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func (User) TableName() string { return TableUsers }

// WeightHistory is an append-only audit of weight changes.
type WeightHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	OldWeight *float64  `gorm:"type:decimal(5,2)" json:"old_weight"`
	NewWeight float64   `gorm:"type:decimal(5,2);not null" json:"new_weight"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:NO ACTION,OnDelete:NO ACTION" json:"-"`
}

func (WeightHistory) TableName() string { return TableWeightHistory }
