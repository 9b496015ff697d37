package models

// Table names. The referential-integrity policy and the raw join queries
// refer to tables by these names.
const (
	TableUsers             = "users"
	TableRecipes           = "recipes"
	TableIngredients       = "ingredients"
	TableNutrition         = "nutrition_facts"
	TableRecipeIngredients = "recipe_ingredients"
	TableDietLogs          = "diet_logs"
	TableMealPlans         = "meal_plans"
	TableMealPlanRecipes   = "meal_plan_recipes"
	TableFeedback          = "feedback"
	TableWeightHistory     = "weight_history"
	TableRecipeLogs        = "recipe_logs"
	TableSystemLogs        = "system_logs"
)

// All returns every model for AutoMigrate, parents before children.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Recipe{},
		&Ingredient{},
		&Nutrition{},
		&RecipeIngredient{},
		&DietLog{},
		&MealPlan{},
		&MealPlanRecipe{},
		&Feedback{},
		&WeightHistory{},
		&RecipeLog{},
		&SystemLog{},
	}
}
