package equipment_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/arena/internal/game/equipment"
)

const validJSON = `{
  "weapons": [
    {"id": 1, "name": "hatchet", "min_damage": 2.5, "max_damage": 4.1, "stamina_per_hit": 2},
    {"id": 2, "name": "knife", "min_damage": 1.2, "max_damage": 2.5, "stamina_per_hit": 1}
  ],
  "armors": [
    {"id": 1, "name": "t-shirt", "defence": 0.1, "stamina_per_turn": 0.3}
  ]
}`

func TestParse_ValidJSON(t *testing.T) {
	c, err := equipment.Parse([]byte(validJSON), "test")
	require.NoError(t, err)

	assert.Equal(t, []string{"hatchet", "knife"}, c.WeaponNames())
	assert.Equal(t, []string{"t-shirt"}, c.ArmorNames())

	w, ok := c.Weapon("hatchet")
	require.True(t, ok)
	assert.Equal(t, 1, w.ID)
	assert.Equal(t, 2.5, w.MinDamage)
	assert.Equal(t, 4.1, w.MaxDamage)
	assert.Equal(t, 2.0, w.StaminaPerHit)

	a, ok := c.Armor("t-shirt")
	require.True(t, ok)
	assert.Equal(t, 0.1, a.Defence)
	assert.Equal(t, 0.3, a.StaminaPerTurn)
}

func TestParse_AcceptsYAML(t *testing.T) {
	data := `
weapons:
  - {id: 1, name: club, min_damage: 1, max_damage: 2, stamina_per_hit: 1}
armors:
  - {id: 1, name: cloak, defence: 0.2, stamina_per_turn: 0.1}
`
	c, err := equipment.Parse([]byte(data), "test.yaml")
	require.NoError(t, err)
	_, ok := c.Weapon("club")
	assert.True(t, ok)
}

func TestLookup_UnknownNameIsAbsent(t *testing.T) {
	c, err := equipment.Parse([]byte(validJSON), "test")
	require.NoError(t, err)

	w, ok := c.Weapon("bazooka")
	assert.False(t, ok)
	assert.Nil(t, w)
	a, ok := c.Armor("force field")
	assert.False(t, ok)
	assert.Nil(t, a)

	_, err = c.RequireWeapon("bazooka")
	assert.ErrorIs(t, err, equipment.ErrUnknownWeapon)
	_, err = c.RequireArmor("force field")
	assert.ErrorIs(t, err, equipment.ErrUnknownArmor)

	got, err := c.RequireArmor("t-shirt")
	require.NoError(t, err)
	assert.Equal(t, "t-shirt", got.Name)
}

func TestParse_RejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"not a document": `[1, 2, 3]`,
		"unknown field": `{"weapons": [{"id": 1, "name": "a", "min_damage": 1, "max_damage": 2, "stamina_per_hit": 1, "edge": "sharp"}],
			"armors": [{"id": 1, "name": "b", "defence": 1, "stamina_per_turn": 1}]}`,
		"wrong type": `{"weapons": [{"id": 1, "name": "a", "min_damage": "low", "max_damage": 2, "stamina_per_hit": 1}],
			"armors": [{"id": 1, "name": "b", "defence": 1, "stamina_per_turn": 1}]}`,
		"missing armors": `{"weapons": [{"id": 1, "name": "a", "min_damage": 1, "max_damage": 2, "stamina_per_hit": 1}]}`,
		"min above max": `{"weapons": [{"id": 1, "name": "a", "min_damage": 3, "max_damage": 2, "stamina_per_hit": 1}],
			"armors": [{"id": 1, "name": "b", "defence": 1, "stamina_per_turn": 1}]}`,
		"missing name": `{"weapons": [{"id": 1, "min_damage": 1, "max_damage": 2, "stamina_per_hit": 1}],
			"armors": [{"id": 1, "name": "b", "defence": 1, "stamina_per_turn": 1}]}`,
		"duplicate name": `{"weapons": [{"id": 1, "name": "a", "min_damage": 1, "max_damage": 2, "stamina_per_hit": 1},
			{"id": 2, "name": "a", "min_damage": 1, "max_damage": 2, "stamina_per_hit": 1}],
			"armors": [{"id": 1, "name": "b", "defence": 1, "stamina_per_turn": 1}]}`,
		"missing min_damage": `{"weapons": [{"id": 1, "name": "a", "max_damage": 2, "stamina_per_hit": 1}],
			"armors": [{"id": 1, "name": "b", "defence": 1, "stamina_per_turn": 1}]}`,
		"missing stamina_per_hit": `{"weapons": [{"id": 1, "name": "a", "min_damage": 1, "max_damage": 2}],
			"armors": [{"id": 1, "name": "b", "defence": 1, "stamina_per_turn": 1}]}`,
		"missing defence": `{"weapons": [{"id": 1, "name": "a", "min_damage": 1, "max_damage": 2, "stamina_per_hit": 1}],
			"armors": [{"id": 1, "name": "b", "stamina_per_turn": 1}]}`,
		"missing stamina_per_turn": `{"weapons": [{"id": 1, "name": "a", "min_damage": 1, "max_damage": 2, "stamina_per_hit": 1}],
			"armors": [{"id": 1, "name": "b", "defence": 1}]}`,
		"missing id": `{"weapons": [{"name": "a", "min_damage": 1, "max_damage": 2, "stamina_per_hit": 1}],
			"armors": [{"id": 1, "name": "b", "defence": 1, "stamina_per_turn": 1}]}`,
		"fractional id": `{"weapons": [{"id": 1.5, "name": "a", "min_damage": 1, "max_damage": 2, "stamina_per_hit": 1}],
			"armors": [{"id": 1, "name": "b", "defence": 1, "stamina_per_turn": 1}]}`,
		"empty": ``,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			c, err := equipment.Parse([]byte(data), name)
			require.Error(t, err)
			assert.Nil(t, c, "no partial catalog on failure")
			assert.ErrorIs(t, err, equipment.ErrCatalogLoad)
			var le *equipment.LoadError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, name, le.Source)
		})
	}
}

func TestParse_NamesEveryMissingField(t *testing.T) {
	_, err := equipment.Parse([]byte(`{"weapons": [{"id": 1, "name": "a", "max_damage": 2}],
		"armors": [{"id": 1, "name": "b"}]}`), "sparse")
	require.Error(t, err)
	assert.ErrorIs(t, err, equipment.ErrCatalogLoad)
	assert.Contains(t, err.Error(), "weapons[0]: missing required fields: min_damage, stamina_per_hit")
}

func TestParse_ExplicitZeroIsNotMissing(t *testing.T) {
	c, err := equipment.Parse([]byte(`{"weapons": [{"id": 3, "name": "fists", "min_damage": 0, "max_damage": 1, "stamina_per_hit": 0}],
		"armors": [{"id": 2.0, "name": "rags", "defence": 0, "stamina_per_turn": 0}]}`), "zeros")
	require.NoError(t, err)
	w, ok := c.Weapon("fists")
	require.True(t, ok)
	assert.Equal(t, 3, w.ID)
	assert.Zero(t, w.StaminaPerHit)
	a, ok := c.Armor("rags")
	require.True(t, ok)
	assert.Equal(t, 2, a.ID)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equipment.json")
	require.NoError(t, os.WriteFile(path, []byte(validJSON), 0644))

	c, err := equipment.Load(path)
	require.NoError(t, err)
	assert.Len(t, c.WeaponNames(), 2)
}

func TestLoad_UnreadableFile(t *testing.T) {
	_, err := equipment.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, equipment.ErrCatalogLoad)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_ShippedCatalog(t *testing.T) {
	c, err := equipment.Load("../../../data/equipment.json")
	require.NoError(t, err)
	assert.NotEmpty(t, c.WeaponNames())
	assert.NotEmpty(t, c.ArmorNames())
}
