package dto

// UpdateUserRequest is a partial update: nil fields are left unchanged.
type UpdateUserRequest struct {
	Name               *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Email              *string  `json:"email" validate:"omitempty,email,max=255"`
	DateOfBirth        *string  `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender             *string  `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	HeightCm           *int     `json:"height_cm" validate:"omitempty,gt=0,lt=300"`
	WeightKg           *float64 `json:"weight_kg" validate:"omitempty,gte=0.01,lt=1000"`
	ActivityLevel      *string  `json:"activity_level" validate:"omitempty,oneof=Sedentary Light Moderate Active 'Very Active'"`
	DietaryPreferences *string  `json:"dietary_preferences" validate:"omitempty,max=100"`
	Allergies          *string  `json:"allergies" validate:"omitempty,max=255"`
}

// AdminUpdateUserRequest additionally lets an admin change the role.
type AdminUpdateUserRequest struct {
	UpdateUserRequest
	Role *string `json:"role" validate:"omitempty,oneof=user admin"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type UpdateWeightRequest struct {
	Weight *float64 `json:"weight" validate:"required,gte=0.01,lt=1000"`
}

type AdminStatistics struct {
	TotalUsers        int64  `json:"total_users"`
	TotalRecipes      int64  `json:"total_recipes"`
	TotalIngredients  int64  `json:"total_ingredients"`
	TotalMealPlans    int64  `json:"total_meal_plans"`
	TotalDietLogs     int64  `json:"total_diet_logs"`
	TotalFeedback     int64  `json:"total_feedback"`
	MostPopularRecipe string `json:"most_popular_recipe"`
}
