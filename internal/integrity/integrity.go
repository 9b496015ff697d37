// Package integrity enforces what happens to dependent rows when a parent
// row is deleted.
//
// Every relation is listed in Policies with one of three actions. Delete
// plans the complete cascade first, failing with a Conflict before any write
// if a restricted relation still has rows, and then applies the plan through
// a Store. Callers run Delete inside a single transaction so the parent and
// all its cascades commit or roll back together.
package integrity

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/models"
)

type Action int

const (
	Cascade Action = iota
	SetNull
	Restrict
)

func (a Action) String() string {
	switch a {
	case Cascade:
		return "cascade"
	case SetNull:
		return "set null"
	case Restrict:
		return "restrict"
	}
	return "unknown"
}

// Relation says that Child.Column references Parent.id.
type Relation struct {
	Parent string
	Child  string
	Column string
	Action Action
	// Blocker describes a Restrict relation in the conflict message.
	Blocker string
}

var Policies = []Relation{
	{Parent: models.TableUsers, Child: models.TableDietLogs, Column: "user_id", Action: Cascade},
	{Parent: models.TableUsers, Child: models.TableMealPlans, Column: "user_id", Action: Cascade},
	{Parent: models.TableUsers, Child: models.TableFeedback, Column: "user_id", Action: Cascade},
	{Parent: models.TableUsers, Child: models.TableWeightHistory, Column: "user_id", Action: Cascade},
	{Parent: models.TableUsers, Child: models.TableRecipes, Column: "creator_id", Action: SetNull},
	{Parent: models.TableUsers, Child: models.TableRecipeLogs, Column: "created_by", Action: SetNull},

	{Parent: models.TableRecipes, Child: models.TableMealPlanRecipes, Column: "recipe_id", Action: Restrict, Blocker: "in use by a meal plan"},
	{Parent: models.TableRecipes, Child: models.TableRecipeIngredients, Column: "recipe_id", Action: Cascade},
	{Parent: models.TableRecipes, Child: models.TableFeedback, Column: "recipe_id", Action: Cascade},
	{Parent: models.TableRecipes, Child: models.TableRecipeLogs, Column: "recipe_id", Action: Cascade},
	{Parent: models.TableRecipes, Child: models.TableDietLogs, Column: "recipe_id", Action: SetNull},

	{Parent: models.TableIngredients, Child: models.TableRecipeIngredients, Column: "ingredient_id", Action: Restrict, Blocker: "in use by a recipe"},
	{Parent: models.TableIngredients, Child: models.TableNutrition, Column: "ingredient_id", Action: Cascade},

	{Parent: models.TableMealPlans, Child: models.TableMealPlanRecipes, Column: "meal_plan_id", Action: Cascade},
}

// Store is the storage the deleter needs. Implementations must run every
// call in the caller's transaction.
type Store interface {
	// ReferencingIDs returns ids of rows in table whose column is one of ids.
	ReferencingIDs(ctx context.Context, table, column string, ids []uint) ([]uint, error)
	// ClearColumn sets column to NULL on rows of table whose column is one of ids.
	ClearColumn(ctx context.Context, table, column string, ids []uint) error
	// DeleteIDs removes rows of table by primary key.
	DeleteIDs(ctx context.Context, table string, ids []uint) error
}

type opKind int

const (
	opClear opKind = iota
	opDelete
)

type op struct {
	kind   opKind
	table  string
	column string
	ids    []uint
}

// Deleter applies a policy table. The zero value is not usable; use New.
type Deleter struct {
	byParent map[string][]Relation
}

func New(policies []Relation) *Deleter {
	d := &Deleter{byParent: make(map[string][]Relation)}
	for _, r := range policies {
		d.byParent[r.Parent] = append(d.byParent[r.Parent], r)
	}
	return d
}

// Default uses Policies.
var Default = New(Policies)

// Delete removes the row table.id and everything its policies cascade to.
func (d *Deleter) Delete(ctx context.Context, s Store, table string, id uint) error {
	var ops []op
	if err := d.plan(ctx, s, table, []uint{id}, &ops, 0); err != nil {
		return err
	}
	for _, o := range ops {
		var err error
		switch o.kind {
		case opClear:
			err = s.ClearColumn(ctx, o.table, o.column, o.ids)
		case opDelete:
			err = s.DeleteIDs(ctx, o.table, o.ids)
		}
		if err != nil {
			return apperr.FromDB(err, o.table)
		}
	}
	return nil
}

// Policies form a shallow tree; the limit only guards against a cycle being
// added by mistake.
const maxDepth = 8

func (d *Deleter) plan(ctx context.Context, s Store, table string, ids []uint, ops *[]op, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("integrity: cascade from %s exceeds depth %d", table, maxDepth)
	}
	rels := d.byParent[table]

	// Restricts first so a refused deletion plans nothing further.
	for _, r := range rels {
		if r.Action != Restrict {
			continue
		}
		refs, err := s.ReferencingIDs(ctx, r.Child, r.Column, ids)
		if err != nil {
			return apperr.FromDB(err, r.Child)
		}
		if len(refs) > 0 {
			return apperr.Conflict(fmt.Sprintf("Cannot delete: %s is %s", singular(table), r.Blocker))
		}
	}

	for _, r := range rels {
		switch r.Action {
		case SetNull:
			*ops = append(*ops, op{kind: opClear, table: r.Child, column: r.Column, ids: ids})
		case Cascade:
			children, err := s.ReferencingIDs(ctx, r.Child, r.Column, ids)
			if err != nil {
				return apperr.FromDB(err, r.Child)
			}
			if len(children) == 0 {
				continue
			}
			if err := d.plan(ctx, s, r.Child, children, ops, depth+1); err != nil {
				return err
			}
		}
	}

	*ops = append(*ops, op{kind: opDelete, table: table, ids: ids})
	return nil
}

func singular(table string) string {
	switch table {
	case models.TableUsers:
		return "user"
	case models.TableRecipes:
		return "recipe"
	case models.TableIngredients:
		return "ingredient"
	case models.TableMealPlans:
		return "meal plan"
	}
	return table
}
