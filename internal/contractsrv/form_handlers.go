package contractsrv

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/contratoseguro/contratos/internal/catalog"
	"github.com/contratoseguro/contratos/internal/compose"
	"github.com/contratoseguro/contratos/internal/contract"
	"github.com/contratoseguro/contratos/internal/errl"
	"github.com/contratoseguro/contratos/internal/models"
)

const (
	formEndpoint     = "/"
	catalogEndpoint  = "/api/catalog/:name"
	validateEndpoint = "/api/validate"
	submitEndpoint   = "/contract/submit"
	resetEndpoint    = "/contract/reset"
)

func (s *Server) registerFormHandlers() {

	// The contract form itself, gated.
	s.httpServer.Get(formEndpoint, s.pageContractForm)

	// Filtered catalog options for the searchable selectors.
	s.httpServer.Get(catalogEndpoint, s.apiCatalogSearch)

	// Continuous validation for inline errors while editing.
	s.httpServer.Post(validateEndpoint, s.apiValidate)

	// Submit: validate, normalize, archive and start the render.
	s.httpServer.Post(submitEndpoint, s.handleSubmit)

	// The explicit "new form" action.
	s.httpServer.Post(resetEndpoint, s.handleReset)
}

// pageContractForm shows the contract form, or the gate prompt while
// the session has not passed the gate.
func (s *Server) pageContractForm(c *fiber.Ctx) error {

	sess, err := s.session(c)
	if err != nil {
		slog.Error(err.Error())
		return s.htmlRender.Render(c, "error", fiber.Map{"message": "erro interno"})
	}

	if !s.gateOpen(c, sess) {
		return c.Redirect("/gate", fiber.StatusFound)
	}

	var fieldErrors map[string]string
	if sess.controller.Touched() {
		fieldErrors = sess.controller.Errors()
	}

	return s.htmlRender.Render(c, "contract_form", formPageData(sess.controller.Raw(), fieldErrors))
}

// formPageData assembles the template data for the contract form. The
// catalog-backed fields carry the bound value and the display label
// separately, so a canonical value always redisplays as its label.
func formPageData(raw models.RawContractForm, fieldErrors map[string]string) fiber.Map {
	return fiber.Map{
		"form":             raw,
		"errors":           fieldErrors,
		"fuelTypes":        catalog.FuelTypes,
		"brands":           catalog.MotorcycleBrands,
		"colors":           catalog.CommonColors,
		"marcaLabel":       catalog.Label(catalog.MotorcycleBrands, raw.Marca),
		"corLabel":         catalog.Label(catalog.CommonColors, raw.Cor),
		"combustivelLabel": catalog.Label(catalog.FuelTypes, raw.Combustivel),
		"postAction":       submitEndpoint,
	}
}

// apiCatalogSearch filters a catalog with the selector's query. An
// empty result is a valid answer: the page shows its own "no results"
// affordance.
func (s *Server) apiCatalogSearch(c *fiber.Ctx) error {
	name := c.Params("name")
	options := catalog.ByName(name)
	if options == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown catalog: " + name,
		})
	}
	return c.JSON(fiber.Map{
		"options": catalog.Search(options, c.Query("q")),
	})
}

// apiValidate runs the ruleset over the current field values without
// submitting, driving inline errors and submit-button enablement.
func (s *Server) apiValidate(c *fiber.Ctx) error {

	sess, err := s.session(c)
	if err != nil {
		return errl.Errorf("resolving session: %w", err)
	}

	var raw models.RawContractForm
	if err := c.BodyParser(&raw); err != nil {
		slog.Error("Failed to parse form", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed form data",
		})
	}

	if sess.controller.State() == contract.StateEditing {
		if err := sess.controller.SetForm(raw); err != nil {
			return errl.Error(err)
		}
	}

	_, verr := contract.Validate(raw)
	fieldErrors := contract.FieldErrors(verr)

	return c.JSON(fiber.Map{
		"valid":  len(fieldErrors) == 0,
		"errors": fieldErrors,
	})
}

// handleSubmit runs the submit transition. A validation failure
// re-renders the form with inline errors; success starts the render
// job and shows the download page.
func (s *Server) handleSubmit(c *fiber.Ctx) error {

	sess, err := s.session(c)
	if err != nil {
		slog.Error(err.Error())
		return s.htmlRender.Render(c, "error", fiber.Map{"message": "erro interno"})
	}

	if !s.gateOpen(c, sess) {
		return c.Redirect("/gate", fiber.StatusFound)
	}

	var raw models.RawContractForm
	if err := c.BodyParser(&raw); err != nil {
		slog.Error("Failed to parse form", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed form data",
		})
	}

	// A resubmit after a finished document starts a fresh form.
	if sess.controller.State() != contract.StateEditing {
		sess.controller.Reset()
	}

	if err := sess.controller.SetForm(raw); err != nil {
		return errl.Error(err)
	}

	record, err := sess.controller.Submit()
	if err != nil {
		slog.Info("Submission rejected by validation", "errors", len(sess.controller.Errors()))
		return s.htmlRender.Render(c, "contract_form",
			formPageData(sess.controller.Raw(), sess.controller.Errors()))
	}

	kind := models.ParseDocumentKind(raw.Documento)
	doc := compose.Compose(record, s.cfg.Attorney, kind, time.Now())

	if err := s.db.SaveContract(kind, doc.Filename, record); err != nil {
		slog.Error("Failed to archive contract", "error", err)
		// The archive is best-effort; the user still gets the document.
	}

	jobID := s.jobs.Start(doc)
	slog.Info("Contract submitted", "placa", record.Placa, "kind", kind, "job", jobID)

	return s.pageDocumentReady(c, jobID, doc.Filename)
}

// handleReset clears the session form and returns to the empty form.
func (s *Server) handleReset(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return errl.Error(err)
	}
	sess.controller.Reset()
	return c.Redirect("/", fiber.StatusFound)
}
