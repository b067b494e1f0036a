// Package session tracks per-visitor arena state: the drafted hero and
// opponent and the visitor's own match controller.
package session

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/arena/internal/game/arena"
	"github.com/cory-johannsen/arena/internal/game/combat"
)

// Session is one visitor's state. All methods are safe for concurrent use.
type Session struct {
	// ID identifies the session in cookies and logs.
	ID uuid.UUID

	mu         sync.Mutex
	armory     *Armory
	hero       *Selection
	opponent   *Selection
	lastResult string
	controller *arena.Controller
	lastSeen   atomic.Int64 // unix nanoseconds
}

func (s *Session) touch() { s.lastSeen.Store(time.Now().UnixNano()) }

// LastSeen returns when the session was last looked up or acted on.
func (s *Session) LastSeen() time.Time { return time.Unix(0, s.lastSeen.Load()) }

// Controller returns the session's match controller.
func (s *Session) Controller() *arena.Controller { return s.controller }

// ChooseHero validates and stores the player's fighter.
//
// Postcondition: on success returns the equip confirmations; on error the
// previous choice is kept.
func (s *Session) ChooseHero(sel Selection) ([]string, error) {
	return s.choose(sel, combat.RolePlayer, &s.hero)
}

// ChooseOpponent validates and stores the opponent fighter.
//
// Postcondition: on success returns the equip confirmations; on error the
// previous choice is kept.
func (s *Session) ChooseOpponent(sel Selection) ([]string, error) {
	return s.choose(sel, combat.RoleOpponent, &s.opponent)
}

func (s *Session) choose(sel Selection, role combat.Role, slot **Selection) ([]string, error) {
	s.touch()
	_, msgs, err := s.armory.Build(sel, role)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	*slot = &sel
	return msgs, nil
}

// Hero returns a copy of the drafted hero and whether one is set.
func (s *Session) Hero() (Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hero == nil {
		return Selection{}, false
	}
	return *s.hero, true
}

// Opponent returns a copy of the drafted opponent and whether one is set.
func (s *Session) Opponent() (Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opponent == nil {
		return Selection{}, false
	}
	return *s.opponent, true
}

// StartFight builds fresh fighters from both selections and starts a new
// match, replacing any match in progress.
//
// Postcondition: returns an error wrapping ErrIncompleteSelection when either
// fighter is missing; otherwise the controller is running.
func (s *Session) StartFight() error {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hero == nil || s.opponent == nil {
		return fmt.Errorf("%w: choose both a hero and an opponent first", ErrIncompleteSelection)
	}
	player, heroMsgs, err := s.armory.Build(*s.hero, combat.RolePlayer)
	if err != nil {
		return err
	}
	opponent, oppMsgs, err := s.armory.Build(*s.opponent, combat.RoleOpponent)
	if err != nil {
		return err
	}
	if err := s.controller.StartMatch(player, opponent); err != nil {
		return err
	}
	s.lastResult = strings.Join(append(heroMsgs, oppMsgs...), arena.LineSeparator)
	return nil
}

// Hit performs the player's basic attack.
func (s *Session) Hit() string {
	return s.record(s.controller.PlayerBasicAttack())
}

// UseSkill performs the player's skill.
func (s *Session) UseSkill() string {
	return s.record(s.controller.PlayerUseSkill())
}

// PassTurn skips the player's action.
func (s *Session) PassTurn() string {
	return s.record(s.controller.AdvanceTurn())
}

// EndFight leaves the fight screen. The controller keeps its state until the
// next StartFight.
func (s *Session) EndFight() {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastResult = ""
}

// LastResult returns the most recent action result, or "" after EndFight.
func (s *Session) LastResult() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResult
}

// ResultLines returns LastResult split into display lines.
func (s *Session) ResultLines() []string {
	r := s.LastResult()
	if r == "" {
		return nil
	}
	return strings.Split(r, arena.LineSeparator)
}

func (s *Session) record(result string) string {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastResult = result
	return result
}
