package models

import (
	"time"

	"gorm.io/datatypes"
)

var MealTypes = []string{"Breakfast", "Lunch", "Dinner", "Snack"}

type DietLog struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index:idx_diet_logs_user_date" json:"user_id"`
	RecipeID    *uint           `gorm:"index" json:"recipe_id"`
	Date        datatypes.Date  `gorm:"not null;index:idx_diet_logs_user_date" json:"date"`
	Time        *datatypes.Time `json:"time"`
	PortionSize float64         `gorm:"type:decimal(5,2);not null;default:1" json:"portion_size"`
	Notes       string          `gorm:"type:text" json:"notes"`
	IsFinished  bool            `gorm:"not null;default:false" json:"is_finished"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnUpdate:NO ACTION,OnDelete:NO ACTION" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnUpdate:NO ACTION,OnDelete:NO ACTION" json:"-"`
}

func (DietLog) TableName() string { return TableDietLogs }

type MealPlan struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	Name      string          `gorm:"size:150;not null" json:"name"`
	StartDate *datatypes.Date `json:"start_date"`
	EndDate   *datatypes.Date `json:"end_date"`
	Notes     string          `gorm:"type:text" json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	User    *User            `gorm:"foreignKey:UserID;constraint:OnUpdate:NO ACTION,OnDelete:NO ACTION" json:"-"`
	Recipes []MealPlanRecipe `gorm:"foreignKey:MealPlanID" json:"recipes,omitempty"`
}

func (MealPlan) TableName() string { return TableMealPlans }

type MealPlanRecipe struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	MealPlanID uint            `gorm:"not null;index" json:"meal_plan_id"`
	RecipeID   uint            `gorm:"not null;index" json:"recipe_id"`
	DayOfPlan  *datatypes.Date `json:"day_of_plan"`
	MealType   string          `gorm:"size:10;default:'Lunch'" json:"meal_type"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}

func (MealPlanRecipe) TableName() string { return TableMealPlanRecipes }
