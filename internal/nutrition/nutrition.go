// Package nutrition computes macro totals from diet logs.
//
// Nutrition facts are stored per 100 units of an ingredient. A logged recipe
// contributes, for each of its ingredients and each nutrient,
//
//	per100 * quantity/100 * portionSize
//
// Unknown facts only drop their own term; they never zero out the rest of the
// recipe.
package nutrition

import "time"

const dateLayout = "2006-01-02"

// Contribution is one (diet log, recipe ingredient) pair of the join
// diet_logs -> recipes -> recipe_ingredients -> nutrition_facts. The fact
// pointers are nil when the ingredient has no nutrition record or the value
// is unknown.
type Contribution struct {
	PortionSize    float64
	Quantity       float64
	Calories       *float64
	ProteinG       *float64
	CarbohydratesG *float64
	FatG           *float64
	FiberG         *float64
}

type Totals struct {
	Calories float64 `json:"total_calories"`
	Protein  float64 `json:"total_protein"`
	Carbs    float64 `json:"total_carbs"`
	Fat      float64 `json:"total_fat"`
	Fiber    float64 `json:"total_fiber"`
}

func (t Totals) Add(o Totals) Totals {
	return Totals{
		Calories: t.Calories + o.Calories,
		Protein:  t.Protein + o.Protein,
		Carbs:    t.Carbs + o.Carbs,
		Fat:      t.Fat + o.Fat,
		Fiber:    t.Fiber + o.Fiber,
	}
}

type Summary struct {
	Days      int    `json:"days"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Totals
}

// Window is an inclusive range of calendar days.
type Window struct {
	Days  int
	Start time.Time
	End   time.Time
}

// NewWindow returns [today-(days-1), today]. days is clamped to at least 1
// and the start never moves before 0001-01-01.
func NewWindow(days int, today time.Time) Window {
	if days < 1 {
		days = 1
	}
	end := truncateDay(today)
	start := time.Date(1, time.January, 1, 0, 0, 0, 0, end.Location())
	if int64(days-1) < daysBetween(start, end) {
		start = end.AddDate(0, 0, -(days - 1))
	}
	return Window{
		Days:  days,
		Start: start,
		End:   end,
	}
}

// daysBetween counts calendar days from a to b, ignoring zone offsets.
func daysBetween(a, b time.Time) int64 {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return (ub.Unix() - ua.Unix()) / 86400
}

// Contains reports whether the calendar day of t lies in the window.
func (w Window) Contains(t time.Time) bool {
	d := truncateDay(t.In(w.End.Location()))
	return !d.Before(w.Start) && !d.After(w.End)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func scaled(per100 *float64, quantity, portion float64) float64 {
	if per100 == nil {
		return 0
	}
	return *per100 * (quantity / 100) * portion
}

// Sum adds up all contributions. An empty input yields zero totals.
func Sum(rows []Contribution) Totals {
	var t Totals
	for _, r := range rows {
		t.Calories += scaled(r.Calories, r.Quantity, r.PortionSize)
		t.Protein += scaled(r.ProteinG, r.Quantity, r.PortionSize)
		t.Carbs += scaled(r.CarbohydratesG, r.Quantity, r.PortionSize)
		t.Fat += scaled(r.FatG, r.Quantity, r.PortionSize)
		t.Fiber += scaled(r.FiberG, r.Quantity, r.PortionSize)
	}
	return t
}

// Summarize builds the summary for rows already restricted to the window.
func Summarize(w Window, rows []Contribution) Summary {
	return Summary{
		Days:      w.Days,
		StartDate: w.Start.Format(dateLayout),
		EndDate:   w.End.Format(dateLayout),
		Totals:    Sum(rows),
	}
}

// IngredientCalories is one ingredient row of a recipe for the calorie lookup.
type IngredientCalories struct {
	RecipeID uint
	Quantity float64
	Calories *float64
}

// RecipeCalories totals calories for each whole recipe, keyed by recipe id.
func RecipeCalories(rows []IngredientCalories) map[uint]float64 {
	out := make(map[uint]float64)
	for _, r := range rows {
		out[r.RecipeID] += scaled(r.Calories, r.Quantity, 1)
	}
	return out
}
