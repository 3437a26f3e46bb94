// Package main runs the interactive inventory and sales program.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JuanS3/INTER-seguridad-taller3/internal/app"
	"github.com/JuanS3/INTER-seguridad-taller3/internal/config"
	"github.com/JuanS3/INTER-seguridad-taller3/internal/platform/bootstrap"
	"github.com/JuanS3/INTER-seguridad-taller3/internal/shell"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
}

// run loads the configuration, sets up logging and runs the menu until the user exits.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logOutput, logCloser, err := bootstrap.OpenLogOutput(cfg.Log.Output)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	logger := bootstrap.NewLogger(cfg.Log.Level, cfg.Log.Format, logOutput)
	slog.SetDefault(logger)
	logger.Debug("Configuration loaded", "config", cfg.String())

	in, closeIn, err := newLineReader(cfg.Shell)
	if err != nil {
		return err
	}
	defer closeIn()

	deps := app.SetupDependencies(cfg.Storage, logger, os.Stdout)
	return app.SetupShell(deps, cfg.Shell, in, os.Stdout).Run(ctx)
}

// newLineReader uses readline on a terminal and a plain line reader when stdin is piped.
func newLineReader(cfg config.ShellConfig) (shell.LineReader, func() error, error) {
	stat, err := os.Stdin.Stat()
	if err != nil || stat.Mode()&os.ModeCharDevice == 0 {
		return shell.NewStreamReader(os.Stdin, os.Stdout), func() error { return nil }, nil
	}
	terminal, err := shell.NewTerminal(cfg.Prompt, cfg.History)
	if err != nil {
		return nil, nil, err
	}
	return terminal, terminal.Close, nil
}
