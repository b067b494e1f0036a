package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/config"
	"github.com/cory-johannsen/arena/internal/frontend/handlers"
	"github.com/cory-johannsen/arena/internal/frontend/telnet"
	"github.com/cory-johannsen/arena/internal/game/command"
	"github.com/cory-johannsen/arena/internal/game/dice"
	"github.com/cory-johannsen/arena/internal/game/equipment"
	"github.com/cory-johannsen/arena/internal/game/ruleset"
	"github.com/cory-johannsen/arena/internal/game/session"
	"github.com/cory-johannsen/arena/internal/server"
	"github.com/cory-johannsen/arena/internal/web"
)

const httpShutdownTimeout = 10 * time.Second

// newApp loads the catalogs and wires both frontends into a lifecycle.
// Catalog errors are fatal: no service starts with partial data.
func newApp(cfg config.Config, logger *zap.Logger) (*server.Lifecycle, error) {
	catalog, err := equipment.Load(cfg.Arena.EquipmentPath)
	if err != nil {
		return nil, err
	}
	classes, err := loadClasses(cfg.Arena.ClassesPath)
	if err != nil {
		return nil, err
	}
	logger.Info("catalogs loaded",
		zap.String("equipment_path", cfg.Arena.EquipmentPath),
		zap.Int("weapons", len(catalog.WeaponNames())),
		zap.Int("armors", len(catalog.ArmorNames())),
		zap.Strings("classes", classes.ClassNames()),
	)

	src := dice.NewCryptoSource()
	roller := dice.NewLoggedRoller(src, logger)
	sessions := session.NewManager(session.NewArmory(catalog, classes, roller), cfg.Arena.StaminaPerRound, logger)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := web.NewRouter(sessions, logger.Named("web"))

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("http", server.NewHTTPService(&http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}, httpShutdownTimeout, logger.Named("http")))

	lifecycle.Add("sessions", session.NewSweeper(sessions,
		cfg.Arena.SessionIdleTimeout, cfg.Arena.SessionSweepInterval, logger.Named("sessions")))

	if cfg.Telnet.Enabled {
		handler := handlers.NewArenaHandler(sessions, command.DefaultRegistry(), src, logger.Named("telnet"))
		acceptor := telnet.NewAcceptor(cfg.Telnet, handler, logger.Named("telnet"))
		lifecycle.Add("telnet", &server.FuncService{
			StartFn: acceptor.ListenAndServe,
			StopFn:  acceptor.Stop,
		})
	}
	return lifecycle, nil
}

// loadClasses returns the class table at path, or the built-in table when
// path is empty.
func loadClasses(path string) (*ruleset.Registry, error) {
	if path == "" {
		return ruleset.DefaultRegistry(), nil
	}
	classes, err := ruleset.LoadClasses(path)
	if err != nil {
		return nil, err
	}
	reg, err := ruleset.NewRegistryFrom(classes)
	if err != nil {
		return nil, fmt.Errorf("building class registry: %w", err)
	}
	return reg, nil
}
