// Package contractsrv is the HTTP server of the contract application:
// it presents the form, validates submissions, renders the printable
// documents and runs the device-credential gate in front of it all.
package contractsrv

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/contratoseguro/contratos/internal/cache"
	"github.com/contratoseguro/contratos/internal/config"
	"github.com/contratoseguro/contratos/internal/gate"
	"github.com/contratoseguro/contratos/internal/html"
	"github.com/contratoseguro/contratos/internal/pdfrender"
	"github.com/contratoseguro/contratos/internal/storage"
)

//go:embed views/*
var viewsfs embed.FS

// Server is the contract application server.
type Server struct {
	cfg        config.Config
	httpServer *fiber.App
	db         *storage.Database
	htmlRender *html.Renderer
	cache      *cache.Cache
	tokens     *gate.TokenService
	jobs       *pdfrender.Jobs
	rpID       string
}

// New creates the server and registers all handlers.
func New(db *storage.Database, c *cache.Cache, cfg config.Config) *Server {

	views, err := fs.Sub(viewsfs, "views")
	if err != nil {
		slog.Error("Failed to locate embedded views", "error", err)
		panic(err)
	}

	// The engine to display the HTML screens to the users
	htmlrender, err := html.NewRenderer(cfg.Development, views, "./templates", ".html")
	if err != nil {
		slog.Error("Failed to initialize template engine", "error", err)
		panic(err)
	}

	httpServer := fiber.New(fiber.Config{
		AppName:                 "Contrato Seguro",
		ServerHeader:            "contratos",
		EnableTrustedProxyCheck: false,
		ReadTimeout:             30 * time.Second,
		WriteTimeout:            30 * time.Second,
	})

	// Recovers from panics anywhere in the stack chain and hands the control to the centralized ErrorHandler
	httpServer.Use(recover.New())

	// Helmet middleware helps secure the app by setting various HTTP headers.
	httpServer.Use(helmet.New())

	// Ignores favicon requests
	httpServer.Use(favicon.New())

	// Logs HTTP request/response details
	httpServer.Use(logger.New())

	// Enable CORS for all origins
	httpServer.Use(cors.New())

	// The session token signing service for the gate
	tokens, err := gate.NewTokenService(cfg.PublicURL)
	if err != nil {
		slog.Error("Failed to initialize gate token service", "error", err)
		panic(err)
	}

	s := &Server{
		cfg:        cfg,
		httpServer: httpServer,
		db:         db,
		htmlRender: htmlrender,
		cache:      c,
		tokens:     tokens,
		jobs:       pdfrender.NewJobs(pdfrender.NewFPDF(), c),
		rpID:       relyingPartyID(cfg),
	}

	// Register the health check endpoint
	s.httpServer.Get("/health", func(c *fiber.Ctx) error {
		slog.Info("Health check", "from", c.Hostname())
		return c.JSON(fiber.Map{"status": "healthy", "hostname": c.Hostname()})
	})

	// The contract form and its validation/catalog APIs
	s.registerFormHandlers()

	// Document rendering, polling and download
	s.registerRenderHandlers()

	// The device credential gate
	s.registerGateHandlers()

	// The admin endpoints (protected)
	s.registerAdminHandlers()

	return s
}

// relyingPartyID defaults to the host of the public URL.
func relyingPartyID(cfg config.Config) string {
	if cfg.RPID != "" {
		return cfg.RPID
	}
	u, err := url.Parse(cfg.PublicURL)
	if err != nil || u.Hostname() == "" {
		return "localhost"
	}
	return u.Hostname()
}

// Start starts the server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {

	if s.httpServer == nil {
		return errors.New("server not initialized")
	}

	addr := net.JoinHostPort("0.0.0.0", s.cfg.Port)
	slog.Info("Starting contratos server", "addr", addr, "url", s.cfg.PublicURL)

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Listen(addr); err != nil {
			errChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	// Wait for context cancellation or error
	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return s.httpServer.Shutdown()
	}
}
