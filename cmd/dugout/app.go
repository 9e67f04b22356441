package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rewired-gh/dugout/internal/config"
	"github.com/rewired-gh/dugout/internal/game"
	"github.com/rewired-gh/dugout/internal/input"
	"github.com/rewired-gh/dugout/internal/logger"
	"github.com/rewired-gh/dugout/internal/models"
	"github.com/rewired-gh/dugout/internal/poller"
	"github.com/rewired-gh/dugout/internal/render"
	"github.com/rewired-gh/dugout/internal/statsapi"
	"github.com/rewired-gh/dugout/internal/teams"
	"github.com/rewired-gh/dugout/internal/telegram"
)

const (
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
)

// loadConfig reads the --config file, or the default file when it exists.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultPath()); err == nil {
			path = config.DefaultPath()
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// scheduleDate parses --date in the display time zone.
func scheduleDate(loc *time.Location) (time.Time, error) {
	if dateFlag == "" {
		return time.Now().In(loc), nil
	}
	d, err := time.ParseInLocation("2006-01-02", dateFlag, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: %w", dateFlag, err)
	}
	return d, nil
}

func newStatsClient(cfg *config.Config) *statsapi.Client {
	return statsapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout, statsapi.ClientConfig{
		MaxRetries:        cfg.API.MaxRetries,
		RetryDelayBase:    cfg.API.RetryDelayBase,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
	})
}

// newNotifier returns the Telegram notifier, or nil when alerts are disabled.
// The nil is untyped so the poller sees no notifier at all.
func newNotifier(cfg *config.Config) (poller.Notifier, error) {
	if !cfg.Telegram.Enabled {
		logger.Debug("Telegram notifications disabled")
		return nil, nil
	}
	client, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelayBase)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram client: %w", err)
	}
	logger.Info("Telegram client initialized successfully")
	return client, nil
}

func runDashboard(parent context.Context, dir *teams.Directory) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger.Init(logger.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close log file: %v\n", err)
		}
	}()

	loc := cfg.Location()
	date, err := scheduleDate(loc)
	if err != nil {
		return err
	}

	notifier, err := newNotifier(cfg)
	if err != nil {
		return err
	}

	tracker := game.NewTracker()
	p := poller.New(newStatsClient(cfg), tracker, notifier, poller.Config{
		LiveInterval: cfg.Poll.LiveInterval,
		IdleInterval: cfg.Poll.IdleInterval,
		Date:         date,
	})

	// Setup graceful shutdown
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			logger.Info("Shutdown signal received, cleaning up...")
			cancel()
		case <-ctx.Done():
		}
	}()

	gamePk := gameFlag
	if gamePk == 0 {
		if err := p.RefreshSchedule(ctx); err != nil {
			logger.Warn("Initial schedule fetch failed: %v", err)
		}
		gamePk = pickGame(p.Schedule(), dir, cfg.UI.FavoriteTeam)
	}
	if gamePk != 0 {
		logger.Info("Tracking game %d", gamePk)
		tracker.SwitchGame(gamePk)
	}

	term, err := input.MakeRaw(os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() {
		fmt.Fprint(os.Stdout, showCursor)
		if err := term.Restore(); err != nil {
			logger.Error("Failed to restore terminal: %v", err)
		}
	}()
	fmt.Fprint(os.Stdout, hideCursor)

	width, height := term.Size()
	dash := render.New(tracker, dir, p, render.Options{Location: loc, Width: width, Height: height})
	dash.FocusGame(gamePk)
	out := input.CRLF(os.Stdout)

	go func() {
		if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Poller exited: %v", err)
		}
	}()

	actions := make(chan input.Action, 16)
	go func() {
		if err := input.NewReader(os.Stdin).Run(ctx, actions); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("Input reader stopped: %v", err)
		}
	}()

	ticker := time.NewTicker(cfg.UI.RefreshInterval)
	defer ticker.Stop()

	draw := func() {
		dash.Resize(term.Size())
		if err := dash.Draw(out); err != nil {
			logger.Warn("Failed to draw frame: %v", err)
		}
	}
	draw()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Dashboard stopped")
			return nil
		case a := <-actions:
			if handleAction(a, tracker, dash, p) {
				logger.Info("Quit requested")
				return nil
			}
			draw()
		case <-ticker.C:
			draw()
		}
	}
}

// pickGame chooses the game to track when none was given: the favorite
// team's game, preferring one in progress, else the first live game.
func pickGame(games []models.ScheduledGame, dir *teams.Directory, favorite string) int {
	if fav, ok := dir.ByAbbreviation(favorite); ok {
		pk := 0
		for _, g := range games {
			if g.Teams.Away.Team.ID != fav.ID && g.Teams.Home.Team.ID != fav.ID {
				continue
			}
			if g.IsLive() {
				return g.GamePk
			}
			if pk == 0 {
				pk = g.GamePk
			}
		}
		if pk != 0 {
			return pk
		}
	}

	for _, g := range games {
		if g.IsLive() {
			return g.GamePk
		}
	}
	return 0
}
