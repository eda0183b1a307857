package formation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalog(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	templates := c.List()
	require.NotEmpty(t, templates)
	assert.Equal(t, "4-4-2", c.Default().ID)

	for _, tmpl := range templates {
		assert.Len(t, tmpl.Slots, 11, tmpl.ID)
		goalkeepers := 0
		for _, s := range tmpl.Slots {
			if s.Position == PositionGoalkeeper {
				goalkeepers++
			}
		}
		assert.Equal(t, 1, goalkeepers, tmpl.ID)
	}
}

func TestCatalogFind(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	tmpl, err := c.Find("4-3-3")
	require.NoError(t, err)
	assert.Equal(t, "4-3-3", tmpl.Name)

	st, ok := tmpl.Slot("st")
	require.True(t, ok)
	assert.Equal(t, PositionForward, st.Position)

	_, ok = tmpl.Slot("lst")
	assert.False(t, ok)

	_, err = c.Find("1-1-8")
	assert.ErrorIs(t, err, ErrUnknownFormation)
}

func TestCatalogListIsACopy(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	list := c.List()
	list[0] = Template{ID: "mutated"}
	assert.Equal(t, "4-4-2", c.List()[0].ID)
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", "[]"},
		{"not yaml", "{{"},
		{"empty id", `[{id: "", name: x, slots: [{id: gk, position: GK, x: 50, y: 90}]}]`},
		{"no slots", `[{id: a, name: a, slots: []}]`},
		{"duplicate slot", `[{id: a, name: a, slots: [{id: gk, position: GK, x: 1, y: 1}, {id: gk, position: DF, x: 2, y: 2}]}]`},
		{"bad position", `[{id: a, name: a, slots: [{id: gk, position: XX, x: 1, y: 1}]}]`},
		{"off pitch", `[{id: a, name: a, slots: [{id: gk, position: GK, x: 101, y: 1}]}]`},
		{"duplicate template", `[{id: a, name: a, slots: [{id: gk, position: GK, x: 1, y: 1}]}, {id: a, name: b, slots: [{id: gk, position: GK, x: 1, y: 1}]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
