// Package main provides remdex, a live hierarchical view over the flat
// document store of a reMarkable tablet. It indexes the store, keeps the
// index synchronized with on-disk changes, and serves an interactive
// console for browsing and moving items.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"remdex/internal/cli"
	"remdex/internal/config"
	"remdex/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		docsFlag     = flag.String("docs", "", "document store directory (default: autodetected)")
		configFlag   = flag.String("config", "", "config file path (default: $XDG_CONFIG_HOME/remdex/config.json)")
		debounceFlag = flag.Duration("debounce", 0, "debounce window for filesystem changes (default: 2s)")
		levelFlag    = flag.String("log-level", "", "log level: debug, info, warn, error")
		jsonFlag     = flag.Bool("log-json", false, "log in JSON instead of text")
	)

	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)

		return 1
	}

	if *docsFlag != "" {
		cfg.DocDir = *docsFlag
	}

	if *levelFlag != "" {
		cfg.LogLevel = *levelFlag
	}

	if *jsonFlag {
		cfg.LogJSON = true
	}

	debounce := time.Duration(cfg.DebounceSeconds) * time.Second
	if *debounceFlag > 0 {
		debounce = *debounceFlag
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)

		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	st := store.New(cfg.DocDir, logger)

	if err := st.Rebuild(ctx); err != nil {
		logger.Error("initial index failed", "dir", cfg.DocDir, "err", err)

		return 1
	}

	// A failed watch setup degrades to a static index; the console still
	// serves and reindex stays available.
	if err := st.Watch(ctx, store.WatchConfig{Interval: debounce}); err != nil {
		logger.Warn("live updates disabled", "err", err)
	}

	if err := cli.New(st, os.Stdout).Run(ctx); err != nil {
		logger.Error("console failed", "err", err)

		return 1
	}

	return 0
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
}
