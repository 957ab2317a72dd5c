// cmd/solarflight-ssh/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	wishlogging "github.com/charmbracelet/wish/logging"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/opd-ai/go-solarflight/pkg/config"
	"github.com/opd-ai/go-solarflight/pkg/health"
	"github.com/opd-ai/go-solarflight/pkg/logging"
	"github.com/opd-ai/go-solarflight/pkg/metrics"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	flag.Parse()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	cfg, err := loadConfig(ctx, *configPath, logger)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}

	collector, err := metrics.NewCollector(prometheus.NewRegistry())
	if err != nil {
		logger.Error(ctx, "Failed to register metrics", err)
		os.Exit(1)
	}

	handler := newFlightHandler(cfg, collector, logger)
	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))

	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(
			handler.middleware,
			activeterm.Middleware(),
			wishlogging.Middleware(),
		),
		// input latency matters more than packet count
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.Server.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.Server.HostKeyPath))
	}
	if cfg.Server.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.Server.IdleTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		logger.Error(ctx, "Failed to create SSH server", err, "address", addr)
		os.Exit(1)
	}

	var listening atomic.Value
	listening.Store("")

	healthChecker := health.NewHealthChecker()
	healthChecker.AddCheck(health.NewListenerHealthCheck(func() string {
		return listening.Load().(string)
	}))
	healthChecker.AddCheck(health.NewMemoryHealthCheck(500, nil))

	var healthServer *http.Server
	if cfg.Server.MetricsAddr != "" {
		healthServer = &http.Server{
			Addr:         cfg.Server.MetricsAddr,
			Handler:      health.NewMux(healthChecker, collector.Handler()),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info(ctx, "Starting health check server",
				"address", cfg.Server.MetricsAddr,
			)
			if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "Health check server failed", err)
			}
		}()
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error(ctx, "Failed to listen", err, "address", addr)
		os.Exit(1)
	}
	listening.Store(listener.Addr().String())

	logger.Info(ctx, "Starting SSH server",
		"address", listener.Addr().String(),
		"max_sessions", cfg.Server.MaxSessions,
	)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Error(ctx, "SSH server failed", err)
			listening.Store("")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	logger.Info(ctx, "Shutting down server", "active_sessions", handler.active())
	listening.Store("")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	handler.closeAll()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "SSH server shutdown failed", err)
	}
	if healthServer != nil {
		if err := healthServer.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Health check server shutdown failed", err)
		}
	}
}

func loadConfig(ctx context.Context, path string, logger *logging.Logger) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		return config.LoadConfig("")
	}
	return config.LoadConfig(path)
}
