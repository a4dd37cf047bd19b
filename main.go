package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/soocke/autofish-go/app"
	"github.com/soocke/autofish-go/config"
)

func main() {
	cfgPath := flag.String("config", "config.toml", "path to the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.Debug {
		cfg.Log.Level = "debug"
	}
	logger := NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, logger, statusWindow); err != nil {
		logger.Error("autofish stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("shutting down", slog.String("config", *cfgPath))
}
