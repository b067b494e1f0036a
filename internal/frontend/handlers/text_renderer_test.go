package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/arena/internal/frontend/telnet"
	"github.com/cory-johannsen/arena/internal/game/arena"
	"github.com/cory-johannsen/arena/internal/game/command"
	"github.com/cory-johannsen/arena/internal/game/skill"
)

func TestRenderOptions(t *testing.T) {
	out := telnet.StripANSI(RenderOptions("Choose class:", []Option{
		{Value: "Warrior", Detail: "tough"},
		{Value: "Thief"},
	}))
	assert.Contains(t, out, "1. Warrior\r\n     tough\r\n")
	assert.Contains(t, out, "2. Thief\r\n")
	assert.Contains(t, out, "R. Random")
}

func TestRenderFighter(t *testing.T) {
	out := telnet.StripANSI(RenderFighter("You", &arena.FighterView{
		Name: "Ann", Class: "Warrior", Weapon: "club", Armor: "vest", Skill: "Fury Punch", SkillUsed: true,
		Health: 30, MaxHealth: 60, Stamina: 12.5, MaxStamina: 25,
	}))
	assert.Contains(t, out, "You: Ann (Warrior)")
	assert.Contains(t, out, "HP [#####.....] 30/60")
	assert.Contains(t, out, "ST [#####.....] 12.5/25")
	assert.Contains(t, out, "club with vest, skill Fury Punch (used)")
	assert.Empty(t, RenderFighter("You", nil))
}

func TestRenderMatch_ShowsOutcomeOnlyWhenEnded(t *testing.T) {
	f := &arena.FighterView{Name: "A", MaxHealth: 1, MaxStamina: 1}
	running := arena.View{Running: true, Player: f, Opponent: f}
	assert.NotContains(t, RenderMatch(running), "***")

	ended := arena.View{Outcome: arena.OutcomeDraw, Player: f, Opponent: f}
	assert.Contains(t, telnet.StripANSI(RenderMatch(ended)), "*** Draw ***")
}

func TestRenderResult_HighlightsOutcome(t *testing.T) {
	out := RenderResult("Ann hits.\n" + arena.OutcomePlayerWon)
	assert.Contains(t, out, telnet.BrightGreen)
	assert.Equal(t, "Ann hits.\r\n*** Player won the battle ***\r\n", telnet.StripANSI(out))
	assert.Empty(t, RenderResult(""))
}

func TestRenderHelp(t *testing.T) {
	out := telnet.StripANSI(RenderHelp(command.DefaultRegistry().Available(command.CategoryFight)))
	assert.Contains(t, out, "hit (h, attack)")
	assert.Contains(t, out, "quit (exit, q)")
}

func TestRenderSkills(t *testing.T) {
	out := telnet.StripANSI(RenderSkills(skill.All()))
	assert.Contains(t, out, "Fury Punch")
	assert.Contains(t, out, "costs more than 6 stamina, deals 12 damage")
	assert.Contains(t, out, "Hard Shot")
	assert.Contains(t, out, "costs more than 5 stamina, deals 15 damage")
}

func TestPropertyMeterNeverOverflows(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		max := rapid.Float64Range(0, 200).Draw(t, "max")
		cur := rapid.Float64Range(-50, 400).Draw(t, "cur")
		out := telnet.StripANSI(meter("HP", cur, max, telnet.Red))
		lo, hi := 0, 0
		for i, r := range out {
			if r == '[' {
				lo = i
			}
			if r == ']' {
				hi = i
				break
			}
		}
		if hi-lo-1 != 10 {
			t.Fatalf("bar width %d in %q", hi-lo-1, out)
		}
	})
}
