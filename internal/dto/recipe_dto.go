package dto

type CreateRecipeRequest struct {
	Name            string   `json:"name" validate:"required,max=200"`
	Description     string   `json:"description"`
	CuisineType     string   `json:"cuisine_type" validate:"max=100"`
	PrepTimeMinutes int      `json:"prep_time_minutes" validate:"gte=0"`
	CookTimeMinutes int      `json:"cook_time_minutes" validate:"gte=0"`
	ServingSize     *float64 `json:"serving_size" validate:"omitempty,gte=0.01,lt=100"`
	Difficulty      string   `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	Instructions    string   `json:"instructions"`
}

type UpdateRecipeRequest struct {
	Name            *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description     *string  `json:"description"`
	CuisineType     *string  `json:"cuisine_type" validate:"omitempty,max=100"`
	PrepTimeMinutes *int     `json:"prep_time_minutes" validate:"omitempty,gte=0"`
	CookTimeMinutes *int     `json:"cook_time_minutes" validate:"omitempty,gte=0"`
	ServingSize     *float64 `json:"serving_size" validate:"omitempty,gte=0.01,lt=100"`
	Difficulty      *string  `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	Instructions    *string  `json:"instructions"`
}

type AddRecipeIngredientRequest struct {
	IngredientID uint    `json:"ingredient_id" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"required,gte=0.001,lt=100000"`
	Unit         string  `json:"unit" validate:"required,max=50"`
}

type UpdateRecipeIngredientRequest struct {
	Quantity *float64 `json:"quantity" validate:"omitempty,gte=0.001,lt=100000"`
	Unit     *string  `json:"unit" validate:"omitempty,min=1,max=50"`
}

type RecipeIngredientView struct {
	ID             uint    `json:"id"`
	IngredientID   uint    `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
}

type RecipeCaloriesResponse struct {
	RecipeID      uint    `json:"recipe_id"`
	TotalCalories float64 `json:"total_calories"`
}

type CreateFeedbackRequest struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comments string `json:"comments"`
}

type UpdateFeedbackRequest struct {
	Rating   *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comments *string `json:"comments"`
}

type FeedbackView struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	UserName  string `json:"user_name"`
	RecipeID  uint   `json:"recipe_id"`
	Rating    int    `json:"rating"`
	Comments  string `json:"comments"`
	CreatedAt string `json:"created_at"`
}
