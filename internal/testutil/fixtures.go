// Package testutil provides arena fixtures and a telnet test client.
package testutil

import (
	"sync"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/arena/internal/game/equipment"
	"github.com/cory-johannsen/arena/internal/game/ruleset"
	"github.com/cory-johannsen/arena/internal/game/session"
)

// CatalogJSON is a small equipment catalog with fixed-damage weapons so match
// arithmetic is predictable.
const CatalogJSON = `{
  "weapons": [
    {"id": 1, "name": "club", "min_damage": 5, "max_damage": 5, "stamina_per_hit": 3},
    {"id": 2, "name": "knife", "min_damage": 1.2, "max_damage": 2.5, "stamina_per_hit": 1}
  ],
  "armors": [
    {"id": 1, "name": "vest", "defence": 2, "stamina_per_turn": 1},
    {"id": 2, "name": "plate armor", "defence": 2.2, "stamina_per_turn": 1.5}
  ]
}`

// Catalog parses CatalogJSON or fails the test.
func Catalog(t testing.TB) *equipment.Catalog {
	t.Helper()
	c, err := equipment.Parse([]byte(CatalogJSON), "testutil")
	if err != nil {
		t.Fatalf("parsing fixture catalog: %v", err)
	}
	return c
}

// ScriptedRoller is a deterministic roller: weapon rolls land at Frac of the
// damage interval and percentile rolls are taken from Percents, then 100.
// It is safe for concurrent use.
type ScriptedRoller struct {
	Frac     float64
	Percents []int

	mu sync.Mutex
}

// Uniform returns min + (max-min)*Frac.
func (r *ScriptedRoller) Uniform(min, max float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return min + (max-min)*r.Frac
}

// Percent pops the next scripted percentile, or 100 once exhausted.
func (r *ScriptedRoller) Percent() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Percents) == 0 {
		return 100
	}
	p := r.Percents[0]
	r.Percents = r.Percents[1:]
	return p
}

// Armory returns an Armory over the fixture catalog and built-in classes.
func Armory(t testing.TB, roller *ScriptedRoller) *session.Armory {
	t.Helper()
	return session.NewArmory(Catalog(t), ruleset.DefaultRegistry(), roller)
}

// Manager returns a session Manager over Armory with one stamina per round.
func Manager(t testing.TB, roller *ScriptedRoller) *session.Manager {
	t.Helper()
	return session.NewManager(Armory(t, roller), 1, zaptest.NewLogger(t))
}

// Hero is a valid player selection for the fixture catalog.
func Hero() session.Selection {
	return session.Selection{Name: "Hero", Class: "Warrior", Weapon: "club", Armor: "vest"}
}

// Villain is a valid opponent selection for the fixture catalog.
func Villain() session.Selection {
	return session.Selection{Name: "Villain", Class: "Thief", Weapon: "knife", Armor: "plate armor"}
}
