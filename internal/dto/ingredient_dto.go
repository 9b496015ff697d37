package dto

type NutritionInput struct {
	Calories       *float64 `json:"calories" validate:"omitempty,gte=0,lt=10000"`
	CarbohydratesG *float64 `json:"carbohydrates_g" validate:"omitempty,gte=0,lt=10000"`
	ProteinG       *float64 `json:"protein_g" validate:"omitempty,gte=0,lt=10000"`
	FatG           *float64 `json:"fat_g" validate:"omitempty,gte=0,lt=10000"`
	FiberG         *float64 `json:"fiber_g" validate:"omitempty,gte=0,lt=10000"`
	Vitamins       *string  `json:"vitamins" validate:"omitempty,max=255"`
	Minerals       *string  `json:"minerals" validate:"omitempty,max=255"`
	OtherNutrients *string  `json:"other_nutrients"`
}

type CreateIngredientRequest struct {
	Name          string          `json:"name" validate:"required,max=150"`
	UnitOfMeasure string          `json:"unit_of_measure" validate:"required,max=50"`
	Category      string          `json:"category" validate:"required,max=50"`
	Notes         string          `json:"notes" validate:"max=255"`
	Nutrition     *NutritionInput `json:"nutrition"`
}

type UpdateIngredientRequest struct {
	Name          *string         `json:"name" validate:"omitempty,min=1,max=150"`
	UnitOfMeasure *string         `json:"unit_of_measure" validate:"omitempty,min=1,max=50"`
	Category      *string         `json:"category" validate:"omitempty,min=1,max=50"`
	Notes         *string         `json:"notes" validate:"omitempty,max=255"`
	Nutrition     *NutritionInput `json:"nutrition"`
}
