package contractsrv

import (
	"crypto/subtle"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"golang.org/x/crypto/bcrypt"

	"github.com/contratoseguro/contratos/internal/contract"
	"github.com/contratoseguro/contratos/internal/errl"
)

const adminContractsEndpoint = "/admin/contracts"

func (s *Server) registerAdminHandlers() {

	// Without a configured password the listing is not exposed at all.
	if s.cfg.AdminPassword == "" {
		slog.Info("Admin listing disabled, no password configured")
		return
	}

	s.httpServer.Get(adminContractsEndpoint,
		basicauth.New(basicauth.Config{
			Realm:      "contratos",
			Authorizer: s.adminAuthorizer,
		}),
		s.pageAdminContracts,
	)
}

// adminAuthorizer accepts either a bcrypt hash or a plain password in
// the configuration, compared in constant time.
func (s *Server) adminAuthorizer(user, pass string) bool {
	if user != "admin" {
		return false
	}
	configured := s.cfg.AdminPassword
	if strings.HasPrefix(configured, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(pass)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(pass)) == 1
}

func (s *Server) pageAdminContracts(c *fiber.Ctx) error {
	archived, err := s.db.ListContracts()
	if err != nil {
		slog.Error("Failed to list archived contracts", "error", err)
		return errl.Error(err)
	}

	type row struct {
		ID        int64
		Kind      string
		Placa     string
		BuyerName string
		BuyerCPF  string
		Filename  string
		CreatedAt string
	}

	rows := make([]row, 0, len(archived))
	for _, a := range archived {
		rows = append(rows, row{
			ID:        a.ID,
			Kind:      string(a.Kind),
			Placa:     a.Record.Placa,
			BuyerName: a.Record.Nome,
			BuyerCPF:  contract.MaskTaxIdentifier(a.Record.CPF),
			Filename:  a.Filename,
			CreatedAt: a.CreatedAt.Format("02/01/2006 15:04"),
		})
	}

	return s.htmlRender.Render(c, "admin_contracts", fiber.Map{
		"contracts": rows,
	})
}
