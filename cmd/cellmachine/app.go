package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/cellmachine/internal/boards"
	"github.com/vovakirdan/cellmachine/internal/config"
	"github.com/vovakirdan/cellmachine/internal/core"
	"github.com/vovakirdan/cellmachine/internal/logging"
	"github.com/vovakirdan/cellmachine/internal/platform/tui"
	"github.com/vovakirdan/cellmachine/internal/storage"
)

// app bundles what every command needs: configuration, logger, board
// loader and the optional run history store.
type app struct {
	cfg    config.Config
	logger *log.Logger
	loader *boards.Loader
	store  *storage.Store

	logCloser io.Closer
}

// loadConfig reads the configuration and applies the global flags on top.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagSpeed != "" {
		preset, err := config.ParseSpeedPreset(flagSpeed)
		if err != nil {
			return cfg, err
		}
		config.ApplySpeedPreset(&cfg, preset)
	}
	if flagFPS > 0 {
		cfg.Sim.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.Storage.DB = flagDBPath
	}
	if flagBoards != "" {
		cfg.Boards.Dir = flagBoards
	}
	if flagTheme != "" {
		if _, ok := tui.ThemeByName(flagTheme); !ok {
			return cfg, fmt.Errorf("unknown theme %q", flagTheme)
		}
		cfg.View.Theme = flagTheme
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}

	cfg.Validate()
	return cfg, nil
}

// newApp loads configuration and opens shared resources. Interactive
// commands log to the configured file since the screen belongs to the
// TUI; headless commands log to stderr.
func newApp(interactive bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	opts := logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Prefix: "cellmachine",
	}
	if interactive {
		opts.Path = config.ExpandPath(cfg.Logging.File)
		if opts.Path == "" {
			opts.Writer = io.Discard
		}
	}
	logger, closer, err := logging.New(opts)
	if err != nil {
		// Logging is never fatal
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		logger = logging.Discard()
	}

	if t, ok := tui.ThemeByName(cfg.View.Theme); ok {
		tui.SetTheme(t)
	}

	a := &app{
		cfg:       cfg,
		logger:    logger,
		loader:    boards.NewLoader(config.ExpandPath(cfg.Boards.Dir)),
		logCloser: closer,
	}
	return a, nil
}

// openStore opens the run history. A failure is logged and the app
// continues without history.
func (a *app) openStore() *storage.Store {
	if a.store != nil {
		return a.store
	}
	store, err := storage.Open(a.cfg.Storage.DB)
	if err != nil {
		a.logger.Warn("run history unavailable", "db", a.cfg.Storage.DB, "err", err)
		return nil
	}
	a.store = store
	return store
}

// runtime returns the session settings sized to the current terminal.
func (a *app) runtime() core.RuntimeConfig {
	rc := a.cfg.Runtime()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	return rc
}

func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("closing run history", "err", err)
		}
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}
