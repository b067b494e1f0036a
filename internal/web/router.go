// Package web serves the browser frontend: fighter selection forms and the
// fight screen.
package web

import (
	"embed"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Route paths.
const (
	RouteMenu        = "/"
	RouteChooseHero  = "/choose-hero/"
	RouteChooseEnemy = "/choose-enemy/"
	RouteFight       = "/fight/"
	RouteHit         = "/fight/hit"
	RouteUseSkill    = "/fight/use-skill"
	RoutePassTurn    = "/fight/pass-turn"
	RouteEndFight    = "/fight/end-fight"
	RouteState       = "/fight/state"
)

// NewRouter builds the gin engine serving all browser routes.
//
// Precondition: sessions and logger must be non-nil.
// Postcondition: Returns an engine ready to be used as an http.Handler.
func NewRouter(sessions *session.Manager, logger *zap.Logger) *gin.Engine {
	if sessions == nil {
		panic("web: NewRouter precondition violated: sessions must be non-nil")
	}
	if logger == nil {
		panic("web: NewRouter precondition violated: logger must be non-nil")
	}

	h := &Handler{sessions: sessions, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger), h.loadSession)
	r.SetHTMLTemplate(template.Must(template.New("").ParseFS(templateFS, "templates/*.html")))

	r.GET(RouteMenu, h.Menu)
	r.GET(RouteChooseHero, h.ChooseHeroForm)
	r.POST(RouteChooseHero, h.ensureSession, h.ChooseHero)
	r.GET(RouteChooseEnemy, h.ChooseEnemyForm)
	r.POST(RouteChooseEnemy, h.ensureSession, h.ChooseEnemy)

	fight := r.Group(RouteFight)
	{
		fight.GET("", h.StartFight)
		fight.GET("hit", h.Hit)
		fight.GET("use-skill", h.UseSkill)
		fight.GET("pass-turn", h.PassTurn)
		fight.GET("end-fight", h.EndFight)
		fight.GET("state", h.State)
	}
	return r
}

// requestLogger logs each request at info, or warn for 4xx and error for 5xx.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("elapsed", time.Since(start)),
		}
		switch {
		case status >= 500:
			logger.Error("http request", fields...)
		case status >= 400:
			logger.Warn("http request", fields...)
		default:
			logger.Info("http request", fields...)
		}
	}
}
