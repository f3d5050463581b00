package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"SketchBoard/internal/config"
	"SketchBoard/internal/session"
	"SketchBoard/internal/ui"
)

func main() {
	configPath := flag.String("config", "sketchboard.toml", "path to the board configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	settings, err := cfg.Resolve()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	session.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: settings.LogLevel})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = ui.RunApp(session.NewRegistry(), settings, func(desk *ui.Desk) {
		go watchConfig(ctx, *configPath, desk)
	})
	if err != nil {
		log.Fatalf("Failed to create board: %v", err)
	}
}

// watchConfig pushes every valid edit of the config file to the open boards.
// Invalid edits are logged and the previous settings stay.
func watchConfig(ctx context.Context, path string, desk *ui.Desk) {
	err := config.Watch(ctx, path, func(cfg *config.Config, err error) {
		if err != nil {
			log.Printf("Config reload failed: %v", err)
			desk.SetStatus("Config error: " + err.Error())
			return
		}
		settings, err := cfg.Resolve()
		if err != nil {
			log.Printf("Config reload rejected: %v", err)
			desk.SetStatus("Config error: " + err.Error())
			return
		}
		desk.ApplySettings(settings)
	})
	if err != nil {
		log.Printf("Config watcher stopped: %v", err)
		desk.SetStatus("Config watcher stopped")
	}
}
