package models

import "time"

type Recipe struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:200;not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	CuisineType     string    `gorm:"size:100" json:"cuisine_type"`
	PrepTimeMinutes int       `gorm:"default:0" json:"prep_time_minutes"`
	CookTimeMinutes int       `gorm:"default:0" json:"cook_time_minutes"`
	ServingSize     float64   `gorm:"type:decimal(4,2);not null;default:1" json:"serving_size"`
	Difficulty      string    `gorm:"size:10;default:'Easy'" json:"difficulty"`
	Instructions    string    `gorm:"type:text" json:"instructions"`
	CreatorID       *uint     `gorm:"index" json:"creator_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Creator     *User              `gorm:"foreignKey:CreatorID;constraint:OnUpdate:NO ACTION,OnDelete:NO ACTION" json:"-"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
}

func (Recipe) TableName() string { return TableRecipes }

// RecipeIngredient is the quantity of one ingredient in one recipe.
type RecipeIngredient struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	RecipeID     uint    `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint    `gorm:"not null;uniqueIndex:idx_recipe_ingredient;index" json:"ingredient_id"`
	Quantity     float64 `gorm:"type:decimal(8,3);not null" json:"quantity"`
	Unit         string  `gorm:"size:50;not null" json:"unit"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

func (RecipeIngredient) TableName() string { return TableRecipeIngredients }

// RecipeLog records recipe creations for the activity feed.
type RecipeLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RecipeID   *uint     `gorm:"index" json:"recipe_id"`
	RecipeName string    `gorm:"size:200" json:"recipe_name"`
	CreatedBy  *uint     `gorm:"index" json:"created_by"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`

	Recipe  *Recipe `gorm:"foreignKey:RecipeID;constraint:OnUpdate:NO ACTION,OnDelete:NO ACTION" json:"-"`
	Creator *User   `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:NO ACTION,OnDelete:NO ACTION" json:"-"`
}

func (RecipeLog) TableName() string { return TableRecipeLogs }

type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	RecipeID  uint      `gorm:"not null;index" json:"recipe_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comments  string    `gorm:"type:text" json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnUpdate:NO ACTION,OnDelete:NO ACTION" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnUpdate:NO ACTION,OnDelete:NO ACTION" json:"-"`
}

func (Feedback) TableName() string { return TableFeedback }
