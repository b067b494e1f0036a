// Package arena drives a single player-versus-opponent match through its
// idle, running and ended states.
package arena

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/combat"
)

// Match lifecycle states.
const (
	StateIdle    = "idle"
	StateRunning = "running"
	StateEnded   = "ended"
)

const (
	eventStart  = "start"
	eventFinish = "finish"
)

// Terminal outcomes, retained after the match ends.
const (
	OutcomeDraw       = "Draw"
	OutcomePlayerLost = "Player lost the battle"
	OutcomePlayerWon  = "Player won the battle"
)

// LineSeparator joins the player's result and the counter-turn result.
const LineSeparator = "\n"

// Controller owns one match at a time. All methods are safe for concurrent use;
// each action runs to completion before the next is accepted.
type Controller struct {
	mu              sync.Mutex
	machine         *fsm.FSM
	player          *combat.Combatant
	opponent        *combat.Combatant
	outcome         string
	matchID         uuid.UUID
	staminaPerRound float64
	logger          *zap.Logger
}

// NewController creates an idle Controller.
//
// Precondition: staminaPerRound > 0; logger must be non-nil.
// Postcondition: State() == StateIdle; Outcome() == "".
func NewController(staminaPerRound float64, logger *zap.Logger) *Controller {
	if staminaPerRound <= 0 {
		panic("arena: NewController precondition violated: staminaPerRound must be > 0")
	}
	if logger == nil {
		panic("arena: NewController precondition violated: logger must be non-nil")
	}
	c := &Controller{staminaPerRound: staminaPerRound, logger: logger}
	c.machine = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: eventStart, Src: []string{StateIdle, StateEnded}, Dst: StateRunning},
			{Name: eventFinish, Src: []string{StateRunning}, Dst: StateEnded},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				c.logger.Debug("match state changed",
					zap.String("match_id", c.matchID.String()),
					zap.String("event", e.Event),
					zap.String("from", e.Src),
					zap.String("to", e.Dst),
				)
			},
		},
	)
	return c
}

// StartMatch begins a new match between player and opponent, discarding any
// match in progress and clearing the retained outcome.
//
// Precondition: player has RolePlayer and opponent has RoleOpponent.
// Postcondition: on success State() == StateRunning; on error nothing changes.
func (c *Controller) StartMatch(player, opponent *combat.Combatant) error {
	if player == nil || opponent == nil {
		panic("arena: StartMatch precondition violated: both combatants must be non-nil")
	}
	if player.Role() != combat.RolePlayer || opponent.Role() != combat.RoleOpponent {
		panic("arena: StartMatch precondition violated: combatant roles must be player then opponent")
	}
	if err := player.CheckReady(); err != nil {
		return err
	}
	if err := opponent.CheckReady(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.player = player
	c.opponent = opponent
	c.outcome = ""
	c.matchID = uuid.New()
	// Restarting a running match is a reference swap; the machine stays in running.
	if !c.machine.Is(StateRunning) {
		if err := c.machine.Event(context.Background(), eventStart); err != nil {
			panic("arena: start transition rejected: " + err.Error())
		}
	}
	c.logger.Info("match started",
		zap.String("match_id", c.matchID.String()),
		zap.String("player", player.Name()),
		zap.String("player_class", player.Class().Name),
		zap.String("opponent", opponent.Name()),
		zap.String("opponent_class", opponent.Class().Name),
	)
	return nil
}

// PlayerBasicAttack makes the player's basic attack and, unless it ends the
// match, the opponent's counter-turn.
//
// Postcondition: outside a running match returns Outcome() and changes nothing.
func (c *Controller) PlayerBasicAttack() string {
	return c.playerAction(func() string { return c.player.BasicAttack(c.opponent) })
}

// PlayerUseSkill attempts the player's skill and, unless it ends the match,
// the opponent's counter-turn.
//
// Postcondition: outside a running match returns Outcome() and changes nothing.
func (c *Controller) PlayerUseSkill() string {
	return c.playerAction(func() string { return c.player.UseSkillOnce(c.opponent) })
}

// AdvanceTurn passes the player's turn: both fighters regenerate stamina and
// the opponent acts. If that ends the match only the outcome is returned.
//
// Postcondition: outside a running match returns Outcome() and changes nothing.
func (c *Controller) AdvanceTurn() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.machine.Is(StateRunning) {
		return c.outcome
	}
	result := c.counterTurn()
	if c.settle() {
		return c.outcome
	}
	return result
}

func (c *Controller) playerAction(act func() string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.machine.Is(StateRunning) {
		return c.outcome
	}
	result := act()
	if c.settle() {
		return c.outcome
	}
	counter := c.counterTurn()
	if c.settle() {
		return result + LineSeparator + c.outcome
	}
	return result + LineSeparator + counter
}

// counterTurn regenerates both fighters and lets the opponent act.
// Caller must hold c.mu.
func (c *Controller) counterTurn() string {
	c.player.RegenerateStamina(c.staminaPerRound)
	c.opponent.RegenerateStamina(c.staminaPerRound)
	return c.opponent.TakeTurn(c.player)
}

// settle runs the terminal check and ends the match when it applies.
// Caller must hold c.mu.
func (c *Controller) settle() bool {
	outcome, over := Judge(c.player, c.opponent)
	if !over {
		return false
	}
	c.outcome = outcome
	if err := c.machine.Event(context.Background(), eventFinish); err != nil {
		panic("arena: finish transition rejected: " + err.Error())
	}
	c.logger.Info("match ended",
		zap.String("match_id", c.matchID.String()),
		zap.String("outcome", outcome),
		zap.Float64("player_hp", c.player.HealthPoints()),
		zap.Float64("opponent_hp", c.opponent.HealthPoints()),
	)
	return true
}

// Judge returns the terminal outcome for the given fighters, checking for a
// draw first, and reports whether the match is over.
func Judge(player, opponent *combat.Combatant) (string, bool) {
	switch {
	case player.Defeated() && opponent.Defeated():
		return OutcomeDraw, true
	case player.Defeated():
		return OutcomePlayerLost, true
	case opponent.Defeated():
		return OutcomePlayerWon, true
	}
	return "", false
}

// Running reports whether a match is in progress.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Is(StateRunning)
}

// Outcome returns the retained terminal outcome, or "" while idle or running.
func (c *Controller) Outcome() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

// State returns the current lifecycle state name.
func (c *Controller) State() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Current()
}

// MatchID returns the id of the current or most recent match, or uuid.Nil.
func (c *Controller) MatchID() uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.matchID
}

// Player returns the current player fighter or nil while idle.
func (c *Controller) Player() *combat.Combatant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.player
}

// Opponent returns the current opponent fighter or nil while idle.
func (c *Controller) Opponent() *combat.Combatant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opponent
}
