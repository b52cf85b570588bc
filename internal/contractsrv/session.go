package contractsrv

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/contratoseguro/contratos/internal/contract"
	"github.com/contratoseguro/contratos/internal/errl"
	"github.com/contratoseguro/contratos/internal/gate"
)

const (
	sessionCookie = "contratos_session"
	gateCookie    = "contratos_gate"

	sessionTTL = 12 * time.Hour
)

// session is the per-browser state: one gate state machine and one
// form controller. It lives in the server cache keyed by the session
// cookie.
type session struct {
	id         string
	gate       *gate.Gate
	controller *contract.Controller
}

// session returns the session for the request, creating one (and
// setting the cookie) on first contact. The gate's initial state is
// re-evaluated from the credential store for every new session.
func (s *Server) session(c *fiber.Ctx) (*session, error) {

	if id := c.Cookies(sessionCookie); id != "" {
		if v, ok := s.cache.Get("sess:" + id); ok {
			if sess, ok := v.(*session); ok {
				return sess, nil
			}
		}
	}

	g, err := gate.New(s.db)
	if err != nil {
		return nil, errl.Errorf("initializing gate: %w", err)
	}

	sess := &session{
		id:         uuid.NewString(),
		gate:       g,
		controller: contract.NewController(),
	}
	s.cache.Set("sess:"+sess.id, sess, sessionTTL)

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    sess.id,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Secure:   !s.cfg.Development,
		MaxAge:   int(sessionTTL.Seconds()),
	})

	return sess, nil
}

// gateOpen reports whether this request may see the wrapped content:
// either the gate is disabled, the session's gate is open, or the
// request carries a valid gate token from an earlier ceremony.
func (s *Server) gateOpen(c *fiber.Ctx, sess *session) bool {
	if !s.cfg.GateEnabled {
		return true
	}
	if sess.gate.Authenticated() {
		return true
	}
	if token := c.Cookies(gateCookie); token != "" {
		if _, err := s.tokens.Verify(token); err == nil {
			return true
		}
	}
	return false
}
