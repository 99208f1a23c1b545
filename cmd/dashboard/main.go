// Command dashboard serves the live test dashboard for a results database.
//
// Usage:
//
//	dashboard -db results.db
//	dashboard -config basecase.yaml -addr :9000
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/basecase/config"
	"github.com/hazyhaar/basecase/dashboard"
)

func main() {
	configPath := flag.String("config", "", "path to basecase.yaml config file")
	dbPath := flag.String("db", "", "results database path (default from config)")
	addr := flag.String("addr", "", "listen address (default from config)")
	htmlPath := flag.String("html", "", "rendered dashboard file (default from config)")
	artifactDir := flag.String("artifacts", "", "artifact directory to serve (default from config)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *configPath, *dbPath, *addr, *htmlPath, *artifactDir); err != nil {
		logger.Error("dashboard: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath, dbPath, addr, htmlPath, artifactDir string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if dbPath == "" {
		dbPath = cfg.Dashboard.DBPath
	}
	if addr == "" {
		addr = cfg.Dashboard.Addr
	}
	if htmlPath == "" {
		htmlPath = cfg.Dashboard.HTMLPath
	}
	if artifactDir == "" {
		artifactDir = cfg.Dashboard.ArtifactDir
	}

	store, err := dashboard.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := dashboard.NewServer(store, dashboard.ServerConfig{
		Addr:        addr,
		HTMLPath:    htmlPath,
		ArtifactDir: artifactDir,
		RunLimit:    cfg.Dashboard.RunLimit,
		Logger:      logger,
	})
	return srv.Run(ctx)
}
