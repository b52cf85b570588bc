package contractsrv

import (
	"encoding/base64"
	"html/template"
	"log/slog"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/skip2/go-qrcode"

	"github.com/contratoseguro/contratos/internal/errl"
	"github.com/contratoseguro/contratos/internal/pdfrender"
)

const (
	renderPollEndpoint     = "/render/poll"
	renderDownloadEndpoint = "/render/download/:job"
)

func (s *Server) registerRenderHandlers() {

	// The page script polls to know when the artifact is ready.
	s.httpServer.Get(renderPollEndpoint, s.apiRenderPoll)

	s.httpServer.Get(renderDownloadEndpoint, s.handleDownload)
}

// pageDocumentReady shows the "generating / download" page for a
// started render job, with a QR code so another device can pick up the
// file.
func (s *Server) pageDocumentReady(c *fiber.Ctx, jobID string, filename string) error {

	downloadURL := s.cfg.PublicURL + "/render/download/" + jobID

	qr, err := qrDataURL(downloadURL)
	if err != nil {
		slog.Error("Failed to generate download QR code", "error", err)
		// The page still works without the QR.
	}

	return s.htmlRender.Render(c, "contract_ready", fiber.Map{
		"jobID":       jobID,
		"filename":    filename,
		"downloadURL": downloadURL,
		"qrCode":      template.URL(qr),
	})
}

// qrDataURL encodes a URL as a PNG QR code data URL for inline <img>.
func qrDataURL(link string) (string, error) {
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return "", errl.Errorf("cannot create QR code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// apiRenderPoll reports the render job status.
func (s *Server) apiRenderPoll(c *fiber.Ctx) error {
	job, ok := s.jobs.Get(c.Query("job"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown render job",
		})
	}

	status, _, errMsg := job.Snapshot()
	resp := fiber.Map{"status": status, "filename": job.Filename}
	if status == pdfrender.StatusFailed {
		resp["error"] = errMsg
	}
	return c.JSON(resp)
}

// handleDownload streams the finished artifact. While the job is still
// generating it answers 202 so the page keeps polling; a failed job
// answers 500 with the advisory.
func (s *Server) handleDownload(c *fiber.Ctx) error {
	job, ok := s.jobs.Get(c.Params("job"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown render job",
		})
	}

	status, data, errMsg := job.Snapshot()
	switch status {
	case pdfrender.StatusGenerating:
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": status})
	case pdfrender.StatusFailed:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": status,
			"error":  errMsg,
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	// filename* carries the accented document names intact
	c.Set(fiber.HeaderContentDisposition, "attachment; filename*=UTF-8''"+url.PathEscape(job.Filename))
	return c.Send(data)
}
