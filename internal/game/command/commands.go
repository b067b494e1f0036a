// Package command provides the text command registry and parser used by the
// telnet frontend.
package command

// Categories group commands by the screen they apply to.
const (
	CategoryMenu   = "menu"
	CategoryFight  = "fight"
	CategorySystem = "system"
)

// Handler identifiers dispatched by the telnet session loop.
const (
	HandlerNew     = "new"
	HandlerRematch = "rematch"
	HandlerHit     = "hit"
	HandlerSkill   = "skill"
	HandlerPass    = "pass"
	HandlerStatus  = "status"
	HandlerEnd     = "end"
	HandlerHelp    = "help"
	HandlerQuit    = "quit"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category is the screen the command is offered on; system commands work everywhere.
	Category string
	// Handler selects the action the session loop performs.
	Handler string
}

// BuiltinCommands returns the arena commands in help order.
func BuiltinCommands() []Command {
	return []Command{
		{Name: "new", Aliases: []string{"start", "play"}, Help: "Choose a hero and an opponent, then fight", Category: CategoryMenu, Handler: HandlerNew},
		{Name: "rematch", Aliases: []string{"again"}, Help: "Fight again with the same two fighters", Category: CategoryMenu, Handler: HandlerRematch},

		{Name: "hit", Aliases: []string{"h", "attack"}, Help: "Strike with your weapon", Category: CategoryFight, Handler: HandlerHit},
		{Name: "skill", Aliases: []string{"s", "use"}, Help: "Use your class skill (once per fight)", Category: CategoryFight, Handler: HandlerSkill},
		{Name: "pass", Aliases: []string{"p", "wait"}, Help: "Skip your action and recover stamina", Category: CategoryFight, Handler: HandlerPass},
		{Name: "status", Aliases: []string{"st", "look"}, Help: "Show both fighters", Category: CategoryFight, Handler: HandlerStatus},
		{Name: "end", Aliases: []string{"e", "leave"}, Help: "End the fight and return to the menu", Category: CategoryFight, Handler: HandlerEnd},

		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"exit", "q"}, Help: "Disconnect", Category: CategorySystem, Handler: HandlerQuit},
	}
}
