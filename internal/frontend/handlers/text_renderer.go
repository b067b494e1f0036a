package handlers

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/arena/internal/frontend/telnet"
	"github.com/cory-johannsen/arena/internal/game/arena"
	"github.com/cory-johannsen/arena/internal/game/command"
	"github.com/cory-johannsen/arena/internal/game/skill"
)

const banner = `
` + telnet.Bold + telnet.BrightRed + `    _    ____  _____ _   _    _
   / \  |  _ \| ____| \ | |  / \
  / _ \ | |_) |  _| |  \| | / _ \
 / ___ \|  _ <| |___| |\  |/ ___ \
/_/   \_\_| \_\_____|_| \_/_/   \_\` + telnet.Reset + `

  One hero. One opponent. One skill each.

  Type ` + telnet.Green + `new` + telnet.Reset + ` to choose fighters, ` + telnet.Green + `help` + telnet.Reset + ` for commands, ` + telnet.Green + `quit` + telnet.Reset + ` to leave.
`

// Option is one numbered entry in a selection list.
type Option struct {
	// Value is what gets stored when the option is picked.
	Value string
	// Detail is extra text shown under the option, if any.
	Detail string
}

// RenderOptions formats a numbered selection list with a random entry.
func RenderOptions(title string, opts []Option) string {
	var b strings.Builder
	b.WriteString(telnet.Colorize(telnet.BrightYellow, title))
	b.WriteString("\r\n")
	for i, o := range opts {
		fmt.Fprintf(&b, "  %s%d%s. %s%s%s\r\n",
			telnet.Green, i+1, telnet.Reset,
			telnet.BrightWhite, o.Value, telnet.Reset)
		if o.Detail != "" {
			fmt.Fprintf(&b, "     %s%s%s\r\n", telnet.Dim, o.Detail, telnet.Reset)
		}
	}
	fmt.Fprintf(&b, "  %sR%s. Random\r\n", telnet.Green, telnet.Reset)
	return b.String()
}

// RenderFighter formats one fighter's status block.
func RenderFighter(label string, f *arena.FighterView) string {
	if f == nil {
		return ""
	}
	skill := f.Skill
	if f.SkillUsed {
		skill += telnet.Colorize(telnet.Dim, " (used)")
	}
	return fmt.Sprintf("%s %s %s\r\n  %s  %s\r\n  %s with %s, skill %s\r\n",
		telnet.Colorize(telnet.BrightCyan, label+":"),
		telnet.Colorize(telnet.BrightWhite, f.Name),
		telnet.Colorf(telnet.Dim, "(%s)", f.Class),
		meter("HP", f.Health, f.MaxHealth, telnet.Red),
		meter("ST", f.Stamina, f.MaxStamina, telnet.Yellow),
		f.Weapon, f.Armor, skill,
	)
}

// meter renders "HP [#####.....] 25/50" with a ten-cell bar.
func meter(label string, cur, max float64, color string) string {
	const cells = 10
	filled := 0
	if max > 0 && cur > 0 {
		filled = int(cur / max * cells)
		if filled > cells {
			filled = cells
		}
	}
	bar := strings.Repeat("#", filled) + strings.Repeat(".", cells-filled)
	return fmt.Sprintf("%s [%s] %g/%g", label, telnet.Colorize(color, bar), cur, max)
}

// RenderMatch formats both fighters and, when ended, the outcome.
func RenderMatch(v arena.View) string {
	var b strings.Builder
	b.WriteString(RenderFighter("You", v.Player))
	b.WriteString(RenderFighter("Opponent", v.Opponent))
	if !v.Running && v.Outcome != "" {
		b.WriteString(RenderOutcome(v.Outcome))
		b.WriteString("\r\n")
	}
	return b.String()
}

// RenderOutcome highlights a terminal outcome.
func RenderOutcome(outcome string) string {
	color := telnet.BrightYellow
	switch outcome {
	case arena.OutcomePlayerWon:
		color = telnet.BrightGreen
	case arena.OutcomePlayerLost:
		color = telnet.BrightRed
	}
	return telnet.Colorize(telnet.Bold+color, "*** "+outcome+" ***")
}

// RenderResult formats action result lines; outcome lines are highlighted.
func RenderResult(result string) string {
	if result == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.Split(result, arena.LineSeparator) {
		switch line {
		case arena.OutcomeDraw, arena.OutcomePlayerWon, arena.OutcomePlayerLost:
			b.WriteString(RenderOutcome(line))
		default:
			b.WriteString(telnet.Colorize(telnet.White, line))
		}
		b.WriteString("\r\n")
	}
	return b.String()
}

// RenderSkills lists each skill with its stamina cost and damage.
func RenderSkills(defs []*skill.Def) string {
	var b strings.Builder
	b.WriteString(telnet.Colorize(telnet.BrightYellow, "Skills (once per match):"))
	b.WriteString("\r\n")
	for _, d := range defs {
		fmt.Fprintf(&b, "  %s%-24s%s costs more than %g stamina, deals %g damage through armor\r\n",
			telnet.BrightCyan, d.Name, telnet.Reset, d.Stamina, d.Damage)
	}
	return b.String()
}

// RenderHelp lists commands with their aliases.
func RenderHelp(cmds []*command.Command) string {
	var b strings.Builder
	b.WriteString(telnet.Colorize(telnet.BrightYellow, "Commands:"))
	b.WriteString("\r\n")
	for _, c := range cmds {
		name := c.Name
		if len(c.Aliases) > 0 {
			name += " (" + strings.Join(c.Aliases, ", ") + ")"
		}
		fmt.Fprintf(&b, "  %s%-24s%s %s\r\n", telnet.Green, name, telnet.Reset, c.Help)
	}
	return b.String()
}
