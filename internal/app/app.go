// Package app wires mapyard's components together and manages their
// lifecycle.
package app

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/mapyard/mapyard/internal/config"
	"github.com/mapyard/mapyard/internal/layer"
	"github.com/mapyard/mapyard/internal/selection"
	"github.com/mapyard/mapyard/internal/ui"
)

// shutdownTimeout bounds how long Shutdown waits for queued UI tasks.
const shutdownTimeout = 5 * time.Second

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the TOML configuration file. Empty uses
	// the built-in defaults.
	ConfigPath string

	// WatchConfig enables reloading the configuration file on change.
	WatchConfig bool

	// LogOutput overrides where logs are written. Defaults to stderr.
	LogOutput io.Writer
}

// App owns the application's long-lived components: configuration, the
// UI task loop, the layer manager and the selection-event manager.
type App struct {
	cfg     config.Config
	logger  *Logger
	loop    *ui.Loop
	layers  *layer.Manager
	sel     *selection.Manager
	watcher *config.Watcher

	running atomic.Bool
	done    chan struct{}
}

// New creates the application. The selection manager is constructed
// against the layer manager and registered for active-layer changes, so
// selection fan-out works as soon as layers are added.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	logger := NewLogger(ParseLogLevel(cfg.Log.Level), opts.LogOutput)

	loop := ui.NewLoop(
		ui.WithQueueSize(cfg.UI.QueueSize),
		ui.WithPanicHandler(func(recovered any, stack []byte) {
			logger.Error("panic in UI task: %v\n%s", recovered, stack)
		}),
	)

	layers := layer.NewManager()

	sel := selection.NewManager(layers, loop,
		selection.WithPanicHandler(func(event selection.Event, recovered any, stack []byte) {
			logger.Error("panic in selection listener (layer %v): %v\n%s", event.Layer(), recovered, stack)
		}),
	)
	layers.SubscribeActiveLayer(sel)

	a := &App{
		cfg:    cfg,
		logger: logger,
		loop:   loop,
		layers: layers,
		sel:    sel,
		done:   make(chan struct{}),
	}

	if opts.WatchConfig && opts.ConfigPath != "" {
		w, err := config.NewWatcher(opts.ConfigPath, a.applyConfig)
		if err != nil {
			return nil, err
		}
		a.watcher = w
	}

	return a, nil
}

// Run starts the UI loop and blocks until Shutdown is called.
func (a *App) Run() error {
	if a.running.Swap(true) {
		return ui.ErrAlreadyRunning
	}
	if err := a.loop.Start(); err != nil {
		return err
	}

	a.logger.Info("mapyard started (layers: %d)", len(a.layers.Layers()))
	<-a.done
	return nil
}

// Shutdown stops the application. Queued UI tasks are drained so pending
// deferred selection events still reach their listeners. Safe to call
// multiple times.
func (a *App) Shutdown() {
	if !a.running.Swap(false) {
		return
	}

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.logger.Warn("closing config watcher: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.loop.Stop(ctx); err != nil {
		a.logger.Warn("stopping UI loop: %v", err)
	}

	a.logger.Info("mapyard stopped")
	close(a.done)
}

// applyConfig is the config watcher callback. Only settings that can
// change at runtime are applied; the UI queue size requires a restart.
func (a *App) applyConfig(cfg config.Config) {
	a.logger.SetLevel(ParseLogLevel(cfg.Log.Level))
	a.logger.Info("configuration reloaded")
}

// Config returns the loaded configuration.
func (a *App) Config() config.Config { return a.cfg }

// Logger returns the application logger.
func (a *App) Logger() *Logger { return a.logger }

// Layers returns the layer manager.
func (a *App) Layers() *layer.Manager { return a.layers }

// Selection returns the selection-event manager.
func (a *App) Selection() *selection.Manager { return a.sel }

// UILoop returns the UI task loop.
func (a *App) UILoop() *ui.Loop { return a.loop }
