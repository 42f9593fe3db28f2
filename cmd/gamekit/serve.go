package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/gamekit-dev/gamekit/internal/config"
	"github.com/gamekit-dev/gamekit/internal/watch"
	"github.com/gamekit-dev/gamekit/pkg/liveview"
	"github.com/gamekit-dev/gamekit/pkg/metrics"
	"github.com/gamekit-dev/gamekit/pkg/settings"
)

// gameSetting is the set of settings the serve command manages.
type gameSetting int

const (
	settingPlayerName gameSetting = iota
	settingMasterVolume
	settingFullscreen
	settingDifficulty
	settingShowFPS
)

func (s gameSetting) String() string {
	switch s {
	case settingPlayerName:
		return "PlayerName"
	case settingMasterVolume:
		return "MasterVolume"
	case settingFullscreen:
		return "Fullscreen"
	case settingDifficulty:
		return "Difficulty"
	case settingShowFPS:
		return "ShowFPS"
	default:
		return "Unknown"
	}
}

// registerGameSettings declares every game setting with its default.
func registerGameSettings(m *settings.Manager[gameSetting]) error {
	if _, err := settings.Set(m, settingPlayerName, "Player"); err != nil {
		return err
	}
	if _, err := settings.Set(m, settingMasterVolume, 0.8); err != nil {
		return err
	}
	if _, err := settings.Set(m, settingFullscreen, false); err != nil {
		return err
	}
	if _, err := settings.Set(m, settingDifficulty, "normal"); err != nil {
		return err
	}
	if _, err := settings.Set(m, settingShowFPS, false); err != nil {
		return err
	}
	return nil
}

func serveCmd(g *globalOptions) *cobra.Command {
	var (
		addr      string
		watchFile bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game settings over HTTP and WebSocket",
		Long: `Serve the game settings for live inspection and editing.

Endpoints:
  GET  /settings          all settings
  GET  /settings/{key}    one setting
  PUT  /settings/{key}    change a setting
  POST /settings/save     write the settings file
  POST /settings/load     reread the settings file
  GET  /ws                snapshot, then every change
  GET  /metrics           Prometheus metrics

Examples:
  gamekit serve
  gamekit serve --addr=0.0.0.0:7070 --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Serve.Addr = addr
			}
			if cmd.Flags().Changed("watch") {
				cfg.Serve.Watch = watchFile
			}
			return runServe(cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from gamekit.json)")
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "Reload settings when the file changes on disk")

	return cmd
}

func runServe(cmd *cobra.Command, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.Default().With("component", "serve")
	u := newUI(cmd.OutOrStdout())

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	manager, err := settings.New[gameSetting](store,
		settings.WithFilename(cfg.Settings.Filename),
		settings.WithObserver(metrics.New(metrics.WithRegistry(registry))),
	)
	if err != nil {
		return err
	}
	if err := registerGameSettings(manager); err != nil {
		return err
	}
	if err := manager.Load(ctx); err != nil {
		u.warn("Some settings could not be loaded, using defaults for them")
		logger.Warn("settings load", "error", err)
	}

	server := liveview.New(manager, liveview.WithGatherer(registry))
	defer server.Close()

	if cfg.Serve.Watch {
		if err := startWatch(ctx, cfg, server, manager, logger); err != nil {
			return err
		}
		u.info("Watching %s", cfg.Settings.Filename)
	}

	httpServer := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	u.printBanner()
	u.success("Serving settings on http://%s/settings", cfg.Serve.Addr)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	u.info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// startWatch reloads the settings whenever the settings file is edited
// on disk. Only the disk backend has a file to watch.
func startWatch(ctx context.Context, cfg *config.Config, server *liveview.Server, manager *settings.Manager[gameSetting], logger *slog.Logger) error {
	if cfg.Storage.Backend != config.BackendDisk {
		logger.Warn("watch needs the disk backend, not watching", "backend", cfg.Storage.Backend)
		return nil
	}

	w, err := watch.New(watch.Config{
		Files:  []string{filepath.Join(cfg.StorageDir(), cfg.Settings.Filename)},
		Logger: logger,
	})
	if err != nil {
		return err
	}
	w.OnChange(func(c watch.Change) {
		if c.Removed {
			return
		}
		err := server.Update(func() error {
			return manager.Load(ctx)
		})
		if err != nil {
			logger.Warn("settings reload", "path", c.Path, "error", err)
			return
		}
		logger.Info("settings reloaded", "path", c.Path)
	})

	go func() {
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("watcher stopped", "error", err)
		}
	}()
	return nil
}
