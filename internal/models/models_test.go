package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestForeignKeyConstraints(t *testing.T) {
	cache := &sync.Map{}
	namer := schema.NamingStrategy{}

	tests := []struct {
		model    interface{}
		relation string
		column   string
		parent   string
	}{
		{&DietLog{}, "User", "user_id", TableUsers},
		{&DietLog{}, "Recipe", "recipe_id", TableRecipes},
		{&MealPlan{}, "User", "user_id", TableUsers},
		{&Feedback{}, "User", "user_id", TableUsers},
		{&Feedback{}, "Recipe", "recipe_id", TableRecipes},
		{&WeightHistory{}, "User", "user_id", TableUsers},
		{&Recipe{}, "Creator", "creator_id", TableUsers},
		{&RecipeLog{}, "Recipe", "recipe_id", TableRecipes},
		{&RecipeLog{}, "Creator", "created_by", TableUsers},
	}
	for _, tt := range tests {
		s, err := schema.Parse(tt.model, cache, namer)
		require.NoError(t, err)

		name := s.Table + "." + tt.column
		rel, ok := s.Relationships.Relations[tt.relation]
		require.True(t, ok, name)
		assert.Equal(t, schema.BelongsTo, rel.Type, name)

		c := rel.ParseConstraint()
		require.NotNil(t, c, name)
		assert.Equal(t, tt.parent, c.ReferenceSchema.Table, name)
		require.Len(t, c.ForeignKeys, 1, name)
		assert.Equal(t, tt.column, c.ForeignKeys[0].DBName, name)
		// Deletes go through the integrity policy, never the database.
		assert.Equal(t, "NO ACTION", c.OnDelete, name)
		assert.Equal(t, "NO ACTION", c.OnUpdate, name)
	}
}

func TestAssociationsStayOutOfJSON(t *testing.T) {
	s, err := schema.Parse(&DietLog{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	for _, name := range []string{"User", "Recipe"} {
		f := s.LookUpField(name)
		require.NotNil(t, f, name)
		assert.Equal(t, "-", f.Tag.Get("json"), name)
	}
}
