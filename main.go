package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/contratoseguro/contratos/internal/cache"
	"github.com/contratoseguro/contratos/internal/config"
	"github.com/contratoseguro/contratos/internal/contractsrv"
	"github.com/contratoseguro/contratos/internal/storage"
)

var (
	development bool

	configPath    string
	port          string
	publicURL     string
	adminPassword string
	dbPath        string
	noGate        bool
)

func main() {
	// If we are in development environment or not
	flag.BoolVar(&development, "dev", false, "Development mode")

	// Optional YAML configuration file
	flag.StringVar(&configPath, "config", "", "Path to the YAML configuration file")

	// The port and public URL of the server. The public URL goes into
	// download links and identifies the deployment to the device gate.
	flag.StringVar(&port, "port", "", "Port for the server")
	flag.StringVar(&publicURL, "url", "", "Public URL of the server")

	// The password for the admin archive listing
	flag.StringVar(&adminPassword, "admin-password", "", "Admin password for the archive listing")

	flag.StringVar(&dbPath, "db", "", "Path to the SQLite database file")

	flag.BoolVar(&noGate, "no-gate", false, "Disable the device-credential gate")

	flag.Parse()

	// Check if we are in development or production.
	// The environment variable takes precedence over the flag
	if strings.ToLower(os.Getenv("CONTRATOS_DEVELOPMENT")) == "true" {
		development = true
	}

	// Initialize logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	if development {
		slog.Info("Running in development mode")
	} else {
		slog.Info("Running in production mode")
	}

	// Assemble the configuration: defaults, then the optional file,
	// then the environment, then the flags
	cfg := config.Default()

	if configPath == "" {
		configPath = os.Getenv("CONTRATOS_CONFIG")
	}
	if err := config.LoadFile(&cfg, configPath); err != nil {
		slog.Error("Failed to load configuration file", "error", err)
		os.Exit(1)
	}
	config.FromEnv(&cfg)

	cfg.Development = development
	if port != "" {
		cfg.Port = port
	}
	if publicURL != "" {
		cfg.PublicURL = publicURL
	}
	if adminPassword != "" {
		cfg.AdminPassword = adminPassword
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if noGate {
		cfg.GateEnabled = false
	}

	// An incomplete attorney party is not fatal: the clause renders
	// with whatever is configured
	if missing := cfg.Attorney.MissingFields(); len(missing) > 0 {
		slog.Warn("Attorney party incomplete, the power-of-attorney clause will have gaps", "missing", missing)
	}

	// Initialize the database
	db := storage.New(cfg.DBPath)
	if err := db.Initialize(); err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// The in-memory cache holds the sessions and the render jobs
	c := cache.New(10 * time.Minute)
	defer c.Close()

	srv := contractsrv.New(db, c, cfg)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received")
		cancel()
	}()

	// Start server
	if err := srv.Start(ctx); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
