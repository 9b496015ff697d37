package models

import "time"

type Ingredient struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:150;not null;uniqueIndex" json:"name"`
	UnitOfMeasure string    `gorm:"size:50;not null" json:"unit_of_measure"`
	Category      string    `gorm:"size:50;not null" json:"category"`
	Notes         string    `gorm:"size:255" json:"notes"`
	UpdatedAt     time.Time `json:"updated_at"`

	Nutrition *Nutrition `gorm:"foreignKey:IngredientID" json:"nutrition"`
}

func (Ingredient) TableName() string { return TableIngredients }

// Nutrition holds facts per 100 units of the owning ingredient. Any value
// may be unknown (NULL).
type Nutrition struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	IngredientID   uint      `gorm:"not null;uniqueIndex" json:"ingredient_id"`
	Calories       *float64  `gorm:"type:decimal(6,2)" json:"calories"`
	CarbohydratesG *float64  `gorm:"type:decimal(6,2)" json:"carbohydrates_g"`
	ProteinG       *float64  `gorm:"type:decimal(6,2)" json:"protein_g"`
	FatG           *float64  `gorm:"type:decimal(6,2)" json:"fat_g"`
	FiberG         *float64  `gorm:"type:decimal(6,2)" json:"fiber_g"`
	Vitamins       string    `gorm:"size:255" json:"vitamins"`
	Minerals       string    `gorm:"size:255" json:"minerals"`
	OtherNutrients string    `gorm:"type:text" json:"other_nutrients"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Nutrition) TableName() string { return TableNutrition }
