package contract

import (
	"github.com/contratoseguro/contratos/internal/errl"
	"github.com/contratoseguro/contratos/internal/models"
)

// State is the form controller lifecycle state.
type State string

const (
	// StateEditing accepts field mutations and continuous validation.
	StateEditing State = "editing"
	// StateSubmitting is the transient state while a submit runs. The
	// submit is synchronous, so callers only ever observe it from
	// inside a hook; it exists so the transition is explicit.
	StateSubmitting State = "submitting"
	// StateReadyToRender holds a validated record for the composer.
	StateReadyToRender State = "ready"
)

// Controller binds the ruleset to a single form session. It is not
// safe for concurrent use; each browser session owns one controller.
type Controller struct {
	raw     models.RawContractForm
	errors  map[string]string
	record  *models.ContractRecord
	state   State
	touched bool
}

func NewController() *Controller {
	return &Controller{state: StateEditing}
}

func (c *Controller) State() State { return c.state }

// Raw returns the as-typed form values for redisplay.
func (c *Controller) Raw() models.RawContractForm { return c.raw }

// Errors returns the field errors from the last validation pass.
func (c *Controller) Errors() map[string]string { return c.errors }

// Touched reports whether any field was set since the last reset.
// Untouched forms skip continuous validation so a fresh page does not
// open covered in "required" errors.
func (c *Controller) Touched() bool { return c.touched }

// SetForm replaces the whole raw form. Only legal while editing.
func (c *Controller) SetForm(raw models.RawContractForm) error {
	if c.state != StateEditing {
		return errl.Errorf("form is not editable in state %q", c.state)
	}
	c.raw = raw
	c.touched = true
	return nil
}

// CheckNow runs the ruleset without changing state, for the
// validate-continuously mode that drives inline errors and the submit
// button enablement. The record, if valid, is discarded: only Submit
// produces one.
func (c *Controller) CheckNow() map[string]string {
	_, err := Validate(c.raw)
	c.errors = FieldErrors(err)
	return c.errors
}

// Submit runs Editing -> Submitting -> ReadyToRender. The first
// transition is gated on the ruleset passing; the second is
// unconditional once normalization completes. On validation failure
// the controller stays in Editing with the field errors recorded.
func (c *Controller) Submit() (models.ContractRecord, error) {
	if c.state != StateEditing {
		return models.ContractRecord{}, errl.Errorf("submit from state %q", c.state)
	}

	c.state = StateSubmitting
	record, err := Validate(c.raw)
	if err != nil {
		c.state = StateEditing
		c.errors = FieldErrors(err)
		return models.ContractRecord{}, err
	}

	c.errors = nil
	c.record = &record
	c.state = StateReadyToRender
	return record, nil
}

// Record returns the held record once the controller is ready.
func (c *Controller) Record() (models.ContractRecord, bool) {
	if c.state != StateReadyToRender || c.record == nil {
		return models.ContractRecord{}, false
	}
	return *c.record, true
}

// Reset is the explicit "new form" action: clears fields, errors and
// the held record, returning to Editing.
func (c *Controller) Reset() {
	c.raw = models.RawContractForm{}
	c.errors = nil
	c.record = nil
	c.touched = false
	c.state = StateEditing
}
