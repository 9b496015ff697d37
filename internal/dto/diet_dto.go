package dto

type CreateDietLogRequest struct {
	RecipeID    *uint    `json:"recipe_id"`
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	Time        *string  `json:"time"`
	PortionSize *float64 `json:"portion_size" validate:"omitempty,gte=0.01,lt=1000"`
	Notes       string   `json:"notes"`
	IsFinished  bool     `json:"is_finished"`
}

type UpdateDietLogRequest struct {
	RecipeID    *uint    `json:"recipe_id"`
	Date        *string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time        *string  `json:"time"`
	PortionSize *float64 `json:"portion_size" validate:"omitempty,gte=0.01,lt=1000"`
	Notes       *string  `json:"notes"`
	IsFinished  *bool    `json:"is_finished"`
}

type DietLogView struct {
	ID          uint    `json:"id"`
	UserID      uint    `json:"user_id"`
	RecipeID    *uint   `json:"recipe_id"`
	RecipeName  string  `json:"recipe_name"`
	Date        string  `json:"date"`
	Time        *string `json:"time"`
	PortionSize float64 `json:"portion_size"`
	Notes       string  `json:"notes"`
	IsFinished  bool    `json:"is_finished"`
}

type CreateMealPlanRequest struct {
	Name      string  `json:"name" validate:"required,max=150"`
	StartDate *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Notes     string  `json:"notes"`
}

type UpdateMealPlanRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=150"`
	StartDate *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Notes     *string `json:"notes"`
}

type AddMealPlanRecipeRequest struct {
	RecipeID  uint    `json:"recipe_id" validate:"required"`
	DayOfPlan *string `json:"day_of_plan" validate:"omitempty,datetime=2006-01-02"`
	MealType  string  `json:"meal_type" validate:"omitempty,oneof=Breakfast Lunch Dinner Snack"`
}

type LogMealPlanDayRequest struct {
	PlanID uint   `json:"plan_id" validate:"required"`
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
}

type LogMealPlanDayResponse struct {
	Message string `json:"message"`
	Logged  int    `json:"logged"`
}

type MealPlanSummaryRow struct {
	PlanName       string  `json:"plan_name"`
	DayOfPlan      *string `json:"day_of_plan"`
	MealType       string  `json:"meal_type"`
	RecipeID       uint    `json:"recipe_id"`
	RecipeName     string  `json:"recipe_name"`
	RecipeCalories float64 `json:"recipe_calories"`
}
