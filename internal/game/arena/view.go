package arena

import "github.com/cory-johannsen/arena/internal/game/combat"

// FighterView is a display copy of one fighter.
type FighterView struct {
	Name       string  `json:"name"`
	Class      string  `json:"class"`
	Weapon     string  `json:"weapon"`
	Armor      string  `json:"armor"`
	Skill      string  `json:"skill"`
	SkillUsed  bool    `json:"skill_used"`
	Health     float64 `json:"health"`
	MaxHealth  float64 `json:"max_health"`
	Stamina    float64 `json:"stamina"`
	MaxStamina float64 `json:"max_stamina"`
}

// View is a consistent display copy of the controller.
type View struct {
	MatchID  string       `json:"match_id,omitempty"`
	State    string       `json:"state"`
	Running  bool         `json:"running"`
	Outcome  string       `json:"outcome,omitempty"`
	Player   *FighterView `json:"player,omitempty"`
	Opponent *FighterView `json:"opponent,omitempty"`
}

// Snapshot copies the match state under the controller lock so presentation
// layers never read a fighter mid-action.
//
// Postcondition: Player and Opponent are nil while idle.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		State:   c.machine.Current(),
		Running: c.machine.Is(StateRunning),
		Outcome: c.outcome,
	}
	if c.player == nil {
		return v
	}
	v.MatchID = c.matchID.String()
	v.Player = viewOf(c.player)
	v.Opponent = viewOf(c.opponent)
	return v
}

func viewOf(f *combat.Combatant) *FighterView {
	class := f.Class()
	v := &FighterView{
		Name:       f.Name(),
		Class:      class.Name,
		Skill:      class.Skill.Name,
		SkillUsed:  f.SkillUsed(),
		Health:     f.HealthPoints(),
		MaxHealth:  class.MaxHealth,
		Stamina:    f.StaminaPoints(),
		MaxStamina: class.MaxStamina,
	}
	if w := f.Weapon(); w != nil {
		v.Weapon = w.Name
	}
	if a := f.Armor(); a != nil {
		v.Armor = a.Name
	}
	return v
}
