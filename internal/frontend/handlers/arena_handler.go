// Package handlers runs the telnet arena: the menu, fighter selection and the
// fight loop for each connected client.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/frontend/telnet"
	"github.com/cory-johannsen/arena/internal/game/command"
	"github.com/cory-johannsen/arena/internal/game/dice"
	"github.com/cory-johannsen/arena/internal/game/session"
	"github.com/cory-johannsen/arena/internal/game/skill"
)

// errCancelled unwinds a selection back to the menu.
var errCancelled = errors.New("selection cancelled")

// errQuit ends the connection at the client's request.
var errQuit = errors.New("client quit")

const (
	menuPrompt  = "menu> "
	fightPrompt = "fight> "
)

// ArenaHandler implements telnet.SessionHandler. Every connection gets its own
// arena session, removed when the connection ends.
type ArenaHandler struct {
	sessions *session.Manager
	commands *command.Registry
	picker   dice.Source
	logger   *zap.Logger
}

// NewArenaHandler creates an ArenaHandler.
//
// Precondition: all arguments must be non-nil. picker chooses "random" entries.
// Postcondition: Returns an ArenaHandler ready to handle sessions.
func NewArenaHandler(sessions *session.Manager, commands *command.Registry, picker dice.Source, logger *zap.Logger) *ArenaHandler {
	if sessions == nil || commands == nil || picker == nil || logger == nil {
		panic("handlers: NewArenaHandler precondition violated: all arguments must be non-nil")
	}
	return &ArenaHandler{sessions: sessions, commands: commands, picker: picker, logger: logger}
}

// HandleSession shows the banner and runs the menu loop until the client
// quits, disconnects or the server shuts down.
//
// Postcondition: Returns nil on clean quit; the arena session is removed.
func (h *ArenaHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	start := time.Now()
	s := h.sessions.Create()
	defer h.sessions.Remove(s.ID)
	log := h.logger.With(
		zap.String("session_id", s.ID.String()),
		zap.String("conn_id", conn.ID().String()),
	)

	if err := conn.Write([]byte(banner)); err != nil {
		return fmt.Errorf("sending banner: %w", err)
	}

	err := h.menuLoop(ctx, conn, s, log)
	if errors.Is(err, errQuit) {
		_ = conn.WriteLine(telnet.Colorize(telnet.Cyan, "Goodbye!"))
		log.Info("client quit", zap.Duration("session_duration", time.Since(start)))
		return nil
	}
	if ctx.Err() != nil {
		_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, "Server shutting down. Goodbye!"))
		return ctx.Err()
	}
	return err
}

func (h *ArenaHandler) menuLoop(ctx context.Context, conn *telnet.Conn, s *session.Session, log *zap.Logger) error {
	for {
		line, err := h.prompt(ctx, conn, menuPrompt)
		if err != nil {
			return err
		}
		cmd, ok := h.resolve(conn, line, command.CategoryMenu)
		if !ok {
			continue
		}
		switch cmd.Handler {
		case command.HandlerQuit:
			return errQuit
		case command.HandlerHelp:
			_ = conn.Write([]byte(RenderHelp(h.commands.Available(command.CategoryMenu)) + RenderSkills(skill.All())))
		case command.HandlerNew:
			if err := h.draft(ctx, conn, s); err != nil {
				if errors.Is(err, errCancelled) {
					_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, "Back to the menu."))
					continue
				}
				return err
			}
			if err := h.fight(ctx, conn, s, log); err != nil {
				return err
			}
		case command.HandlerRematch:
			if err := h.fight(ctx, conn, s, log); err != nil {
				return err
			}
		}
	}
}

// resolve parses line and checks the command is usable on the current screen.
func (h *ArenaHandler) resolve(conn *telnet.Conn, line, category string) (*command.Command, bool) {
	parsed := command.Parse(line)
	if parsed.Command == "" {
		return nil, false
	}
	cmd, ok := h.commands.Resolve(parsed.Command)
	if !ok || (cmd.Category != category && cmd.Category != command.CategorySystem) {
		_ = conn.WriteLine(telnet.Colorf(telnet.Red, "Unknown command %q. Type help for a list.", parsed.Command))
		return nil, false
	}
	return cmd, true
}

// draft walks the client through choosing the hero and then the opponent.
func (h *ArenaHandler) draft(ctx context.Context, conn *telnet.Conn, s *session.Session) error {
	_ = conn.WriteLine(telnet.Colorize(telnet.BrightCyan, "\r\n=== Choose your hero ==="))
	_ = conn.WriteLine("Type 'cancel' at any prompt to return to the menu.")
	if err := h.chooseFighter(ctx, conn, s.ChooseHero); err != nil {
		return err
	}
	_ = conn.WriteLine(telnet.Colorize(telnet.BrightCyan, "\r\n=== Choose your opponent ==="))
	return h.chooseFighter(ctx, conn, s.ChooseOpponent)
}

func (h *ArenaHandler) chooseFighter(ctx context.Context, conn *telnet.Conn, pick func(session.Selection) ([]string, error)) error {
	armory := h.sessions.Armory()
	for {
		name, err := h.promptCancellable(ctx, conn, "Name: ")
		if err != nil {
			return err
		}
		if name == "" {
			_ = conn.WriteLine(telnet.Colorize(telnet.Red, "A name is required."))
			continue
		}

		classOpts := make([]Option, 0)
		for _, n := range armory.Classes.ClassNames() {
			cl, _ := armory.Classes.Class(n)
			classOpts = append(classOpts, Option{
				Value:  cl.Name,
				Detail: fmt.Sprintf("%s HP %g, ST %g, skill %s", cl.Description, cl.MaxHealth, cl.MaxStamina, cl.Skill.Name),
			})
		}
		class, err := h.choose(ctx, conn, "Class", classOpts)
		if err != nil {
			return err
		}
		weapon, err := h.choose(ctx, conn, "Weapon", plainOptions(armory.Equipment.WeaponNames()))
		if err != nil {
			return err
		}
		armor, err := h.choose(ctx, conn, "Armor", plainOptions(armory.Equipment.ArmorNames()))
		if err != nil {
			return err
		}

		msgs, err := pick(session.Selection{Name: name, Class: class, Weapon: weapon, Armor: armor})
		if err != nil {
			_ = conn.WriteLine(telnet.Colorf(telnet.Red, "Rejected: %v", err))
			continue
		}
		return conn.WriteLines(msgs...)
	}
}

func plainOptions(values []string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Value: v}
	}
	return opts
}

// choose shows a numbered list and returns the picked value. Input may be a
// number, a name (case-insensitive) or R for random.
func (h *ArenaHandler) choose(ctx context.Context, conn *telnet.Conn, title string, opts []Option) (string, error) {
	if err := conn.Write([]byte("\r\n" + RenderOptions("Choose "+strings.ToLower(title)+":", opts))); err != nil {
		return "", err
	}
	for {
		line, err := h.promptCancellable(ctx, conn, fmt.Sprintf("%s [1-%d/R]: ", title, len(opts)))
		if err != nil {
			return "", err
		}
		if v, ok := h.match(line, opts); ok {
			return v, nil
		}
		_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Invalid selection."))
	}
}

func (h *ArenaHandler) match(line string, opts []Option) (string, bool) {
	if line == "" {
		return "", false
	}
	if strings.EqualFold(line, "r") || strings.EqualFold(line, "random") {
		return opts[h.picker.Intn(len(opts))].Value, true
	}
	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 || n > len(opts) {
			return "", false
		}
		return opts[n-1].Value, true
	}
	for _, o := range opts {
		if strings.EqualFold(o.Value, line) {
			return o.Value, true
		}
	}
	return "", false
}

// fight starts a match from the drafted fighters and runs the fight loop until
// the client ends it.
func (h *ArenaHandler) fight(ctx context.Context, conn *telnet.Conn, s *session.Session, log *zap.Logger) error {
	if err := s.StartFight(); err != nil {
		if errors.Is(err, session.ErrIncompleteSelection) {
			_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Choose your fighters first: type new."))
			return nil
		}
		return err
	}
	ctrl := s.Controller()
	log.Info("telnet fight started", zap.String("match_id", ctrl.MatchID().String()))
	_ = conn.Write([]byte("\r\n" + RenderResult(s.LastResult()) + "\r\n" + RenderMatch(ctrl.Snapshot())))

	for {
		line, err := h.prompt(ctx, conn, fightPrompt)
		if err != nil {
			return err
		}
		cmd, ok := h.resolve(conn, line, command.CategoryFight)
		if !ok {
			continue
		}
		switch cmd.Handler {
		case command.HandlerQuit:
			return errQuit
		case command.HandlerHelp:
			_ = conn.Write([]byte(RenderHelp(h.commands.Available(command.CategoryFight))))
		case command.HandlerStatus:
			_ = conn.Write([]byte(RenderMatch(ctrl.Snapshot())))
		case command.HandlerEnd:
			s.EndFight()
			_ = conn.WriteLine(telnet.Colorize(telnet.Cyan, "You leave the arena. Type new or rematch to fight again."))
			return nil
		case command.HandlerHit, command.HandlerSkill, command.HandlerPass:
			result := h.act(s, cmd.Handler)
			view := ctrl.Snapshot()
			_ = conn.Write([]byte(RenderResult(result) + "\r\n" + RenderMatch(view)))
			if !view.Running {
				_ = conn.WriteLine(telnet.Colorize(telnet.Dim, "The fight is over. Type end to return to the menu."))
			}
		}
	}
}

func (h *ArenaHandler) act(s *session.Session, handler string) string {
	switch handler {
	case command.HandlerHit:
		return s.Hit()
	case command.HandlerSkill:
		return s.UseSkill()
	default:
		return s.PassTurn()
	}
}

// prompt writes p and reads one trimmed line, honoring cancellation.
func (h *ArenaHandler) prompt(ctx context.Context, conn *telnet.Conn, p string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := conn.WritePrompt(telnet.Colorize(telnet.BrightWhite, p)); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}
	line, err := conn.ReadLine()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptCancellable is prompt that maps "cancel" to errCancelled.
func (h *ArenaHandler) promptCancellable(ctx context.Context, conn *telnet.Conn, p string) (string, error) {
	line, err := h.prompt(ctx, conn, p)
	if err != nil {
		return "", err
	}
	if strings.EqualFold(line, "cancel") {
		return "", errCancelled
	}
	return line, nil
}
