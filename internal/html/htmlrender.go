// Package html renders the server's HTML screens with the Fiber
// template engine. Templates are embedded in the binary; a deployment
// may override them by shipping a directory with the same names.
package html

import (
	"bytes"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/contratoseguro/contratos/internal/errl"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

type Renderer struct {
	engine *html.Engine
}

// NewRenderer creates the HTML renderer. If extDir exists on disk its
// templates are used (and reloaded per request when reload is true);
// otherwise the embedded viewsfs templates are used. viewsfs must be
// rooted at the directory holding the templates (fs.Sub the embed FS).
func NewRenderer(reload bool, viewsfs fs.FS, extDir string, extension string) (*Renderer, error) {

	var engine *html.Engine

	if fi, err := os.Stat(extDir); err == nil && fi.IsDir() {
		slog.Info("Using external HTML templates", "dir", extDir)
		engine = html.NewFileSystem(http.Dir(extDir), extension)
	} else {
		slog.Info("Using embedded HTML templates")
		engine = html.NewFileSystem(http.FS(viewsfs), extension)
	}

	engine.Reload(reload)
	if err := engine.Load(); err != nil {
		return nil, errl.Errorf("failed to load HTML templates: %w", err)
	}

	return &Renderer{engine: engine}, nil
}

// ResponseSecurityHeaders sets the security headers for the response
func ResponseSecurityHeaders(c *fiber.Ctx) {
	c.Set("Content-Security-Policy", "frame-ancestors 'none';")
	c.Set("X-Frame-Options", "DENY")
	c.Set("X-Content-Type-Options", "nosniff")
	c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	c.Set("Cross-Origin-Opener-Policy", "same-origin")
	c.Set("Cross-Origin-Resource-Policy", "same-site")
	c.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=(), interest-cohort=()")
	c.Set("X-Powered-By", "webserver")
}

func (h *Renderer) Render(c *fiber.Ctx, templateName string, data map[string]any, layout ...string) error {

	c.Set("Content-Type", "text/html; charset=utf-8")
	ResponseSecurityHeaders(c)

	out := &bytes.Buffer{}

	if err := h.engine.Render(out, templateName, data, layout...); err != nil {
		slog.Error("Error rendering template",
			slog.String("template", templateName),
			slog.String("error", err.Error()),
		)
		return fiber.NewError(fiber.StatusInternalServerError, "rendering response")
	}

	c.Send(out.Bytes())
	return nil
}
