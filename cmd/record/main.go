// Command record launches a visible browser with the interaction recorder
// attached, lets the user drive it, and writes a generated Go test file
// when the session ends (Ctrl-C or idle timeout).
//
// Usage:
//
//	record -url https://example.com -name "login flow"
//	record -config basecase.yaml -url https://example.com -name checkout
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hazyhaar/basecase/basecase"
	"github.com/hazyhaar/basecase/browser"
	"github.com/hazyhaar/basecase/config"
	"github.com/hazyhaar/basecase/recorder"
)

func main() {
	configPath := flag.String("config", "", "path to basecase.yaml config file")
	startURL := flag.String("url", "", "URL to open for recording")
	name := flag.String("name", "recorded", "recording name, becomes the test function name")
	outDir := flag.String("out", "", "output directory (default from config)")
	quiet := flag.Duration("quiet", 0, "end recording after this idle period (0 = wait for Ctrl-C)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(*logLevel),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *startURL == "" {
		fmt.Fprintln(os.Stderr, "usage: record -url <url> [-name <name>] [-config <file>]")
		os.Exit(2)
	}

	if err := run(ctx, logger, *configPath, *startURL, *name, *outDir, *quiet); err != nil {
		logger.Error("record: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath, startURL, name, outDir string, quiet time.Duration) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if outDir == "" {
		outDir = cfg.Recorder.OutputDir
	}
	if quiet <= 0 {
		quiet = cfg.Recorder.QuietFor
	}

	// Recording needs a browser the user can see.
	mode := browser.ParseMode(cfg.Browser.Mode)
	if mode == browser.ModeHeadless {
		mode = browser.ModeHeaded
	}

	c, err := basecase.New(ctx, basecase.Options{
		Browser: browser.Config{
			RemoteURL:        cfg.Browser.Remote,
			Mode:             mode,
			SlowMotion:       time.Duration(cfg.Browser.SlowMotionMS) * time.Millisecond,
			UserAgent:        cfg.Browser.UserAgent,
			ResourceBlocking: cfg.Browser.ResourceBlocking,
			UseXvfb:          cfg.Browser.UseXvfb,
			XvfbDisplay:      cfg.Browser.XvfbDisplay,
			Logger:           logger,
		},
		SmallTimeout: cfg.Timeouts.Small,
		LargeTimeout: cfg.Timeouts.Large,
		PollInterval: cfg.Timeouts.Poll,
		ArtifactDir:  outDir,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Open(startURL); err != nil {
		return err
	}
	if err := c.StartRecorder(); err != nil {
		return err
	}
	logger.Info("recording, drive the browser", "url", startURL, "name", name,
		"idle_timeout", quiet.String())

	// The session ends on Ctrl-C or after the user goes quiet.
	if err := c.Recorder().WaitIdle(ctx, quiet); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	// Draining needs a live context even when Ctrl-C cancelled the main one.
	drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	raw, err := c.Recorder().Drain(drainCtx)
	if err != nil {
		return err
	}
	actions := recorder.Process(raw)
	if len(actions) == 0 {
		return fmt.Errorf("nothing recorded")
	}
	src, err := recorder.Generate(name, actions)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(outDir, safeBase(name)+"_test.go")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return err
	}
	logger.Info("recording written", "path", path, "actions", len(actions))
	fmt.Println(path)
	return nil
}

func safeBase(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		case r == ' ':
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "recorded"
	}
	return string(out)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
