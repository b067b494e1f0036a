package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/arena"
	"github.com/cory-johannsen/arena/internal/game/session"
)

// CookieName carries the visitor's session id.
const CookieName = "arena_session"

const sessionKey = "arena.session"

// Form field names shared by both selection forms.
const (
	FieldName   = "name"
	FieldClass  = "unit_class"
	FieldWeapon = "weapon"
	FieldArmor  = "armor"
)

// Handler groups the browser route handlers.
type Handler struct {
	sessions *session.Manager
	logger   *zap.Logger
}

// ClassOption is one class entry in a selection form.
type ClassOption struct {
	Name        string
	Description string
	Skill       string
}

type chooseData struct {
	Header  string
	Action  string
	Classes []ClassOption
	Weapons []string
	Armors  []string
	Error   string
	Form    session.Selection
}

type fightData struct {
	View   arena.View
	Result []string
}

// loadSession attaches the visitor's existing session, if the cookie names
// one. It never creates a session.
func (h *Handler) loadSession(c *gin.Context) {
	if id, err := c.Cookie(CookieName); err == nil {
		if s, err := h.sessions.Get(id); err == nil {
			c.Set(sessionKey, s)
		}
	}
	c.Next()
}

// ensureSession creates a session and sets the cookie when loadSession found
// none. Only routes that store a draft use it.
func (h *Handler) ensureSession(c *gin.Context) {
	if _, ok := sessionOf(c); !ok {
		s := h.sessions.Create()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, s.ID.String(), 0, "/", "", false, true)
		c.Set(sessionKey, s)
	}
	c.Next()
}

func sessionOf(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok
}

// Menu renders the main menu.
func (h *Handler) Menu(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

// ChooseHeroForm renders the hero selection form.
func (h *Handler) ChooseHeroForm(c *gin.Context) {
	c.HTML(http.StatusOK, "choose.html", h.chooseData("Choose your hero", RouteChooseHero))
}

// ChooseHero stores the hero and continues to the opponent form.
func (h *Handler) ChooseHero(c *gin.Context) {
	s, _ := sessionOf(c)
	h.choose(c, s, "Choose your hero", RouteChooseHero, RouteChooseEnemy, s.ChooseHero)
}

// ChooseEnemyForm renders the opponent selection form.
func (h *Handler) ChooseEnemyForm(c *gin.Context) {
	c.HTML(http.StatusOK, "choose.html", h.chooseData("Choose your opponent", RouteChooseEnemy))
}

// ChooseEnemy stores the opponent and continues to the fight.
func (h *Handler) ChooseEnemy(c *gin.Context) {
	s, _ := sessionOf(c)
	h.choose(c, s, "Choose your opponent", RouteChooseEnemy, RouteFight, s.ChooseOpponent)
}

func (h *Handler) choose(c *gin.Context, s *session.Session, header, action, next string, pick func(session.Selection) ([]string, error)) {
	sel := session.Selection{
		Name:   c.PostForm(FieldName),
		Class:  c.PostForm(FieldClass),
		Weapon: c.PostForm(FieldWeapon),
		Armor:  c.PostForm(FieldArmor),
	}
	if _, err := pick(sel); err != nil {
		h.logger.Warn("selection rejected",
			zap.String("session_id", s.ID.String()),
			zap.String("route", action),
			zap.Error(err),
		)
		data := h.chooseData(header, action)
		data.Error = err.Error()
		data.Form = sel
		c.HTML(http.StatusBadRequest, "choose.html", data)
		return
	}
	c.Redirect(http.StatusSeeOther, next)
}

func (h *Handler) chooseData(header, action string) chooseData {
	armory := h.sessions.Armory()
	names := armory.Classes.ClassNames()
	classes := make([]ClassOption, 0, len(names))
	for _, n := range names {
		cl, _ := armory.Classes.Class(n)
		classes = append(classes, ClassOption{Name: cl.Name, Description: cl.Description, Skill: cl.Skill.Name})
	}
	return chooseData{
		Header:  header,
		Action:  action,
		Classes: classes,
		Weapons: armory.Equipment.WeaponNames(),
		Armors:  armory.Equipment.ArmorNames(),
	}
}

// StartFight starts a new match from the drafted fighters. Without a complete
// draft the visitor is sent back to the hero form.
func (h *Handler) StartFight(c *gin.Context) {
	s, ok := sessionOf(c)
	if !ok {
		c.Redirect(http.StatusFound, RouteChooseHero)
		return
	}
	if err := s.StartFight(); err != nil {
		if errors.Is(err, session.ErrIncompleteSelection) {
			c.Redirect(http.StatusFound, RouteChooseHero)
			return
		}
		h.logger.Error("starting fight", zap.String("session_id", s.ID.String()), zap.Error(err))
		c.String(http.StatusInternalServerError, "could not start the fight")
		return
	}
	h.renderFight(c, s)
}

// Hit performs the player's basic attack.
func (h *Handler) Hit(c *gin.Context) { h.act(c, (*session.Session).Hit) }

// UseSkill performs the player's skill.
func (h *Handler) UseSkill(c *gin.Context) { h.act(c, (*session.Session).UseSkill) }

// PassTurn skips the player's action.
func (h *Handler) PassTurn(c *gin.Context) { h.act(c, (*session.Session).PassTurn) }

func (h *Handler) act(c *gin.Context, action func(*session.Session) string) {
	s, ok := sessionOf(c)
	if !ok || s.Controller().State() == arena.StateIdle {
		c.Redirect(http.StatusFound, RouteMenu)
		return
	}
	action(s)
	h.renderFight(c, s)
}

// EndFight leaves the fight screen for the menu.
func (h *Handler) EndFight(c *gin.Context) {
	if s, ok := sessionOf(c); ok {
		s.EndFight()
	}
	c.HTML(http.StatusOK, "index.html", nil)
}

// State returns the fight screen data as JSON, or 404 without a session.
func (h *Handler) State(c *gin.Context) {
	s, ok := sessionOf(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": session.ErrSessionNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"match":  s.Controller().Snapshot(),
		"result": s.ResultLines(),
	})
}

func (h *Handler) renderFight(c *gin.Context, s *session.Session) {
	c.HTML(http.StatusOK, "fight.html", fightData{
		View:   s.Controller().Snapshot(),
		Result: s.ResultLines(),
	})
}
