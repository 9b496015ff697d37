package dto

type SignupRequest struct {
	Name               string   `json:"name" validate:"required,max=100"`
	Email              string   `json:"email" validate:"required,email,max=255"`
	Password           string   `json:"password" validate:"required,min=8"`
	DateOfBirth        *string  `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender             *string  `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	HeightCm           *int     `json:"height_cm" validate:"omitempty,gt=0,lt=300"`
	WeightKg           *float64 `json:"weight_kg" validate:"omitempty,gte=0.01,lt=1000"`
	ActivityLevel      *string  `json:"activity_level" validate:"omitempty,oneof=Sedentary Light Moderate Active 'Very Active'"`
	DietaryPreferences *string  `json:"dietary_preferences" validate:"omitempty,max=100"`
	Allergies          *string  `json:"allergies" validate:"omitempty,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      uint   `json:"user_id"`
	Role        string `json:"role"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	DB          string `json:"db"`
	DBLatencyMs int64  `json:"db_latency_ms"`
}
