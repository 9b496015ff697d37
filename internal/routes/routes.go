package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Health     *handlers.HealthHandler
	User       *handlers.UserHandler
	Admin      *handlers.AdminHandler
	Recipe     *handlers.RecipeHandler
	Ingredient *handlers.IngredientHandler
	MealPlan   *handlers.MealPlanHandler
	DietLog    *handlers.DietLogHandler
	Feedback   *handlers.FeedbackHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Signup and login get a stricter limit: 10 req/min per IP
	authLimit := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	api.Post("/users", authLimit, h.Auth.Signup)
	api.Post("/login", authLimit, h.Auth.Login)

	protected := middleware.JWTProtected(cfg)

	// Admin routes are registered before the /users/:id family so the
	// group middleware never runs for ordinary users.
	admin := api.Group("/admin", protected, middleware.AdminRequired())
	admin.Get("/users", h.Admin.ListUsers)
	admin.Get("/users/:id", h.Admin.GetUser)
	admin.Put("/users/:id", h.Admin.UpdateUser)
	admin.Delete("/users/:id", h.Admin.DeleteUser)
	admin.Post("/users/:id/reset-password", h.Admin.ResetPassword)
	admin.Get("/statistics", h.Admin.Statistics)

	// Users
	api.Get("/users/:id", protected, h.User.Get)
	api.Put("/users/:id", protected, h.User.Update)
	api.Delete("/users/:id", protected, h.User.Delete)
	api.Put("/users/:id/weight", protected, h.User.UpdateWeight)
	api.Get("/users/:id/weight-history", protected, h.User.WeightHistory)

	// Recipes
	api.Post("/recipes", protected, h.Recipe.Create)
	api.Get("/recipes", protected, h.Recipe.List)
	api.Get("/recipes/:id", protected, h.Recipe.Get)
	api.Put("/recipes/:id", protected, h.Recipe.Update)
	api.Delete("/recipes/:id", protected, h.Recipe.Delete)
	api.Get("/recipes/:id/calories", protected, h.Recipe.Calories)
	api.Post("/recipes/:id/ingredients", protected, h.Recipe.AddIngredient)
	api.Put("/recipe-ingredients/:id", protected, h.Recipe.UpdateIngredient)
	api.Delete("/recipe-ingredients/:id", protected, h.Recipe.RemoveIngredient)
	api.Get("/recipe-log", protected, h.Recipe.Activity)

	// Feedback
	api.Post("/recipes/:id/feedback", protected, h.Feedback.Add)
	api.Get("/recipes/:id/feedback", protected, h.Feedback.List)
	api.Put("/feedback/:id", protected, h.Feedback.Update)
	api.Delete("/feedback/:id", protected, h.Feedback.Delete)

	// Ingredients
	api.Post("/ingredients", protected, h.Ingredient.Create)
	api.Get("/ingredients", protected, h.Ingredient.List)
	api.Get("/ingredients/:id", protected, h.Ingredient.Get)
	api.Put("/ingredients/:id", protected, h.Ingredient.Update)
	api.Delete("/ingredients/:id", protected, h.Ingredient.Delete)

	// Meal plans; log-day must precede /mealplans/:id
	api.Post("/mealplans/log-day", protected, h.MealPlan.LogDay)
	api.Post("/mealplans", protected, h.MealPlan.Create)
	api.Get("/mealplans", protected, h.MealPlan.List)
	api.Get("/mealplans/:id", protected, h.MealPlan.Get)
	api.Put("/mealplans/:id", protected, h.MealPlan.Update)
	api.Delete("/mealplans/:id", protected, h.MealPlan.Delete)
	api.Get("/mealplans/:id/summary", protected, h.MealPlan.Summary)
	api.Post("/mealplans/:id/recipes", protected, h.MealPlan.AddRecipe)
	api.Delete("/mealplan-recipes/:id", protected, h.MealPlan.RemoveRecipe)

	// Diet logs; summary must precede /dietlogs/:id
	api.Get("/dietlogs/summary", protected, h.DietLog.Summary)
	api.Post("/dietlogs", protected, h.DietLog.Create)
	api.Get("/dietlogs", protected, h.DietLog.List)
	api.Get("/dietlogs/:id", protected, h.DietLog.Get)
	api.Put("/dietlogs/:id", protected, h.DietLog.Update)
	api.Delete("/dietlogs/:id", protected, h.DietLog.Delete)
	api.Put("/dietlogs/:id/toggle", protected, h.DietLog.Toggle)
}
