// Package main is the entry point for the mapyard editor backend.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mapyard/mapyard/internal/app"
	"github.com/mapyard/mapyard/internal/feature"
	"github.com/mapyard/mapyard/internal/layer"
	"github.com/mapyard/mapyard/internal/selection"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		watchConfig bool
		demo        bool
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.BoolVar(&watchConfig, "watch-config", false, "Reload configuration on change")
	flag.BoolVar(&demo, "demo", false, "Run a scripted demo session and exit")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("mapyard %s (%s)\n", version, commit)
		return 0
	}

	application, err := app.New(app.Options{
		ConfigPath:  configPath,
		WatchConfig: watchConfig,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.Shutdown()
	}()

	if demo {
		go func() {
			runDemo(application)
			application.Shutdown()
		}()
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// demoListener prints every selection event it observes.
type demoListener struct {
	tag string
}

func (d *demoListener) SelectionEventFired(e selection.Event) {
	switch evt := e.(type) {
	case *selection.ReplaceEvent:
		fmt.Printf("[%s] selection replaced: %s -> %s\n", d.tag, evt.OldSelection(), evt.Selection())
	case *selection.AddEvent:
		fmt.Printf("[%s] selected %s, now %s\n", d.tag, evt.Added(), evt.Selection())
	case *selection.RemoveEvent:
		fmt.Printf("[%s] deselected %s, now %s\n", d.tag, evt.Removed(), evt.Selection())
	default:
		fmt.Printf("[%s] selection now %s\n", d.tag, evt.Selection())
	}
}

// runDemo performs a short scripted editing session: two layers, a few
// selection edits and a layer switch, observed by an immediate and a
// deferred listener.
func runDemo(application *app.App) {
	sel := application.Selection()
	layers := application.Layers()

	if err := sel.AddEventListener(&demoListener{tag: "immediate"}, selection.FireImmediate); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if err := sel.AddEventListener(&demoListener{tag: "deferred"}, selection.FireUIThreadConsolidated); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	roads := layer.New("roads")
	buildings := layer.New("buildings")
	_ = layers.AddLayer(roads)
	_ = layers.AddLayer(buildings)

	_ = layers.SetActiveLayer(roads)
	roads.Select(1, 2)
	roads.Select(3)
	roads.Deselect(2)

	buildings.SetSelection(feature.NewSet(10, 11))
	_ = layers.SetActiveLayer(buildings)

	buildings.ClearSelection()
	_ = layers.SetActiveLayer(nil)
}
