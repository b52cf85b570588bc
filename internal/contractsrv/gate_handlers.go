package contractsrv

import (
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"github.com/contratoseguro/contratos/internal/errl"
	"github.com/contratoseguro/contratos/internal/gate"
)

const (
	gatePageEndpoint          = "/gate"
	gateStatusEndpoint        = "/gate/status"
	gateCreateOptionsEndpoint = "/gate/options/create"
	gateGetOptionsEndpoint    = "/gate/options/get"
	gateRegisterEndpoint      = "/gate/register"
	gateAuthenticateEndpoint  = "/gate/authenticate"
	gateFailureEndpoint       = "/gate/failure"
	gateJWKSEndpoint          = "/gate/jwks"
)

func (s *Server) registerGateHandlers() {

	// The prompt screen shown instead of the form until the gate opens.
	s.httpServer.Get(gatePageEndpoint, s.pageGate)

	s.httpServer.Get(gateStatusEndpoint, s.apiGateStatus)

	// Ceremony parameters for the browser's platform credential API.
	s.httpServer.Get(gateCreateOptionsEndpoint, s.apiGateCreateOptions)
	s.httpServer.Get(gateGetOptionsEndpoint, s.apiGateGetOptions)

	// Ceremony outcomes reported by the page script.
	s.httpServer.Post(gateRegisterEndpoint, s.apiGateRegister)
	s.httpServer.Post(gateAuthenticateEndpoint, s.apiGateAuthenticate)
	s.httpServer.Post(gateFailureEndpoint, s.apiGateFailure)

	// Verification key for the gate cookie.
	s.httpServer.Get(gateJWKSEndpoint, s.apiGateJWKS)
}

// ceremonyReport is what the page script posts back after talking to
// the platform credential API.
type ceremonyReport struct {
	CredentialID string `form:"credential_id" json:"credential_id"`
	Message      string `form:"message" json:"message"`
	Unsupported  bool   `form:"unsupported" json:"unsupported"`
}

func (s *Server) pageGate(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		slog.Error(err.Error())
		return s.htmlRender.Render(c, "error", fiber.Map{"message": "erro interno"})
	}

	if s.gateOpen(c, sess) {
		return c.Redirect("/", fiber.StatusFound)
	}

	return s.htmlRender.Render(c, "gate", fiber.Map{
		"registered": sess.gate.Registered(),
		"advisory":   sess.gate.Advisory(),
	})
}

func (s *Server) apiGateStatus(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return errl.Error(err)
	}
	return c.JSON(fiber.Map{
		"state":         sess.gate.State(),
		"registered":    sess.gate.Registered(),
		"authenticated": s.gateOpen(c, sess),
		"advisory":      sess.gate.Advisory(),
	})
}

// apiGateCreateOptions issues the create-credential parameters for the
// registration ceremony.
func (s *Server) apiGateCreateOptions(c *fiber.Ctx) error {
	if _, err := s.session(c); err != nil {
		return errl.Error(err)
	}

	// The challenge only satisfies the platform API shape; it is never
	// verified, so nothing is kept server-side.
	challenge, err := gate.NewChallenge()
	if err != nil {
		return errl.Error(err)
	}

	return c.JSON(gate.NewCreationOptions(s.rpID, s.cfg.RPName, challenge))
}

// apiGateGetOptions issues the get-credential parameters, with the
// stored handle as the only allowed credential.
func (s *Server) apiGateGetOptions(c *fiber.Ctx) error {
	if _, err := s.session(c); err != nil {
		return errl.Error(err)
	}

	handle, err := s.db.GetCredentialHandle()
	if err != nil {
		return errl.Error(err)
	}
	if handle == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no credential registered on this device",
		})
	}

	challenge, err := gate.NewChallenge()
	if err != nil {
		return errl.Error(err)
	}

	return c.JSON(gate.NewRequestOptions(challenge, handle))
}

func (s *Server) apiGateRegister(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return errl.Error(err)
	}

	var report ceremonyReport
	if err := c.BodyParser(&report); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed ceremony report"})
	}

	if err := sess.gate.CompleteRegistration(report.CredentialID); err != nil {
		slog.Error("Registration ceremony failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"state":    sess.gate.State(),
			"advisory": sess.gate.Advisory(),
		})
	}

	slog.Info("Device registered", "session", sess.id)
	return c.JSON(fiber.Map{"state": sess.gate.State()})
}

func (s *Server) apiGateAuthenticate(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return errl.Error(err)
	}

	var report ceremonyReport
	if err := c.BodyParser(&report); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed ceremony report"})
	}

	if err := sess.gate.CompleteAuthentication(report.CredentialID); err != nil {
		slog.Error("Authentication ceremony failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"state":    sess.gate.State(),
			"advisory": sess.gate.Advisory(),
		})
	}

	// The gate is open for the rest of the session: issue the cookie.
	token, err := s.tokens.Generate(sess.id)
	if err != nil {
		slog.Error("Failed to generate gate token", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     gateCookie,
		Value:    token,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Secure:   !s.cfg.Development,
		MaxAge:   12 * 60 * 60,
	})

	slog.Info("Gate opened", "session", sess.id)
	return c.JSON(fiber.Map{"state": sess.gate.State()})
}

// apiGateFailure records a ceremony failure or platform capability
// absence reported by the page. State never changes here.
func (s *Server) apiGateFailure(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return errl.Error(err)
	}

	var report ceremonyReport
	if err := c.BodyParser(&report); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed ceremony report"})
	}

	if report.Unsupported {
		sess.gate.ReportUnsupported()
	} else {
		sess.gate.ReportFailure(report.Message)
	}

	slog.Info("Gate ceremony failure reported", "session", sess.id, "unsupported", report.Unsupported)
	return c.JSON(fiber.Map{
		"state":    sess.gate.State(),
		"advisory": sess.gate.Advisory(),
	})
}

func (s *Server) apiGateJWKS(c *fiber.Ctx) error {
	set, err := s.tokens.PublicJWKS()
	if err != nil {
		return errl.Error(err)
	}
	data, err := json.Marshal(set)
	if err != nil {
		return errl.Errorf("serializing JWKS: %w", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}
