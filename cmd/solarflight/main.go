// cmd/solarflight/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/opd-ai/go-solarflight/pkg/config"
	"github.com/opd-ai/go-solarflight/pkg/logging"
	"github.com/opd-ai/go-solarflight/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (json, yaml or toml)")
	createDefault := flag.Bool("default", false, "Write the default configuration to -config and exit")
	renderer := flag.String("renderer", "terminal", "Front end: terminal, ansi, engo or null")
	scale := flag.String("scale", "", "Unit scale: true or display (overrides config)")
	metricsAddr := flag.String("metrics", "", "Address for /metrics and health endpoints (overrides config)")
	logFile := flag.String("log-file", "", "Write logs to this file (overrides config)")
	logLevel := flag.String("log-level", "", "Log level: DEBUG, INFO, WARN or ERROR")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode (engo only)")
	duration := flag.Duration("duration", 0, "Stop after this long (null only, 0 runs until interrupted)")
	flag.Parse()

	ctx := context.Background()
	bootLogger := logging.NewLoggerWithWriter(os.Stderr, *logLevel)

	if *createDefault {
		if *configPath == "" {
			fmt.Fprintln(os.Stderr, "-default needs -config")
			os.Exit(2)
		}
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			bootLogger.Error(ctx, "Failed to create default configuration", err, "config_path", *configPath)
			os.Exit(1)
		}
		bootLogger.Info(ctx, "Created default configuration file", "config_path", *configPath)
		return
	}

	cfg, err := loadConfig(*configPath, *scale, bootLogger)
	if err != nil {
		bootLogger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}
	if *metricsAddr != "" {
		cfg.Server.MetricsAddr = *metricsAddr
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	// terminal front ends own the screen, so logs go to a file or nowhere
	ownsScreen := *renderer == "terminal" || *renderer == "ansi"
	logger, closer, err := openLogger(cfg.Log, ownsScreen)
	if err != nil {
		bootLogger.Error(ctx, "Failed to open log file", err, "path", cfg.Log.File)
		os.Exit(1)
	}
	defer closer.Close()

	collector, err := metrics.NewCollector(prometheus.NewRegistry())
	if err != nil {
		bootLogger.Error(ctx, "Failed to register metrics", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{cfg: cfg, logger: logger, metrics: collector}
	switch *renderer {
	case "terminal":
		err = a.runTerminal(ctx)
	case "ansi":
		err = a.runANSI(ctx)
	case "engo":
		err = a.runEngo(ctx, *fullscreen)
	case "null":
		err = a.runNull(ctx, *duration)
	default:
		err = fmt.Errorf("unknown renderer %q", *renderer)
	}
	if err != nil {
		logger.Error(ctx, "Flythrough failed", err, "renderer", *renderer)
		bootLogger.Error(ctx, "Flythrough failed", err, "renderer", *renderer)
		stop()
		closer.Close()
		os.Exit(1)
	}
}

// loadConfig reads path layered over the defaults. A missing file falls back
// to the defaults.
func loadConfig(path, scale string, logger *logging.Logger) (*config.Config, error) {
	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			logger.Info(context.Background(), "Configuration file not found, using default configuration", "config_path", path)
			path = ""
		}
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if scale != "" {
		cfg.Scale = scale
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid scale: %w", err)
		}
	}
	return cfg, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openLogger(lc config.LogConfig, quiet bool) (*logging.Logger, io.Closer, error) {
	if lc.File != "" {
		return logging.OpenFile(lc.File, lc.Level)
	}
	if quiet {
		return logging.NewDiscardLogger(), nopCloser{}, nil
	}
	return logging.NewLoggerWithWriter(os.Stderr, lc.Level), nopCloser{}, nil
}

// stopTimeout bounds shutdown of the simulation and the HTTP endpoints
const stopTimeout = 5 * time.Second
