package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"procwatch/internal/config"
	"procwatch/internal/metrics"
	"procwatch/internal/ui"
)

// stopGrace is added to the sampling interval when waiting for the sampler
// to shut down, covering a loop that just started sleeping.
const stopGrace = time.Second

var (
	configPath = flag.String("config", "", "path to YAML config file")
	refresh    = flag.Float64("refresh", 0, "initial refresh interval in seconds (0.1-5.0)")
	logPath    = flag.String("log", "", "path to log file")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "procwatch:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *refresh > 0 {
		cfg.RefreshSeconds = config.ClampRefresh(*refresh)
	}
	if *logPath != "" {
		cfg.LogFile = *logPath
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}

	logger, err := initLogger(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting procwatch", zap.Float64("refresh_seconds", cfg.RefreshSeconds))

	rate := config.NewRefreshRate(cfg.RefreshSeconds)
	queue := metrics.NewSnapshotQueue(8)
	sampler, err := metrics.NewSampler(context.Background(), metrics.NewSystemSource(), queue, rate, logger)
	if err != nil {
		return err
	}
	sampler.Start()

	model := ui.New(queue, metrics.NewSystemKiller(), rate, sampler.Cores(), logger)
	program := tea.NewProgram(model, tea.WithAltScreen())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		program.Quit()
	}()

	_, runErr := program.Run()

	// Bounded wait: a sampler mid-sleep must observe the stop flag within
	// one interval, plus a little grace.
	timeout := time.Duration(rate.Seconds()*float64(time.Second)) + stopGrace
	if err := sampler.Stop(timeout); err != nil {
		logger.Warn("sampler shutdown timed out", zap.Error(err))
	}
	logger.Info("procwatch exited")
	return runErr
}

// initLogger builds a production zap logger writing only to the log file.
// The UI owns the terminal, so nothing may log to stdout or stderr while the
// program runs.
func initLogger(path string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.OutputPaths = []string{path}
	loggerConfig.ErrorOutputPaths = []string{path}
	return loggerConfig.Build()
}
