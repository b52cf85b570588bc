// Package gate implements the device-credential gate in front of the
// contract form. It is a usability gate, not an access-control
// boundary: the platform ceremony happens in the browser and the
// server only tracks presence of the opaque credential handle. No
// challenge signature is ever verified here.
package gate

import (
	"github.com/contratoseguro/contratos/internal/errl"
)

// State of the gate for one browser session.
type State string

const (
	StateUnregistered  State = "unregistered"
	StateRegistered    State = "registered"
	StateAuthenticated State = "authenticated"
)

// HandleStore is the device-local storage port for the credential
// handle. The handle is written once at registration and only ever
// read afterwards.
type HandleStore interface {
	// GetCredentialHandle returns the stored handle, or "" when no
	// registration has happened yet.
	GetCredentialHandle() (string, error)
	// SetCredentialHandle persists the handle. Implementations keep
	// the first value: a handle is never updated.
	SetCredentialHandle(handle string) error
}

// Gate is the per-session state machine. Ceremony failures set an
// advisory and leave the state unchanged, so every action is
// retryable; only platform capability absence is terminal.
type Gate struct {
	store       HandleStore
	state       State
	advisory    string
	unsupported bool
}

// New determines the initial state from the stored handle: present
// means a registration ceremony already happened on this device.
func New(store HandleStore) (*Gate, error) {
	handle, err := store.GetCredentialHandle()
	if err != nil {
		return nil, errl.Errorf("reading credential handle: %w", err)
	}
	state := StateUnregistered
	if handle != "" {
		state = StateRegistered
	}
	return &Gate{store: store, state: state}, nil
}

func (g *Gate) State() State     { return g.state }
func (g *Gate) Advisory() string { return g.advisory }

// Authenticated reports whether the wrapped content may render.
func (g *Gate) Authenticated() bool { return g.state == StateAuthenticated }

// Registered reports whether a handle exists, deciding which
// affordance ("register" or "authenticate") the prompt shows.
func (g *Gate) Registered() bool { return g.state != StateUnregistered }

// ReportUnsupported records that the platform credential API is not
// available in this browser. There is no retry path in this session.
func (g *Gate) ReportUnsupported() {
	g.unsupported = true
	g.advisory = "WebAuthn não é suportado neste navegador."
}

// ReportFailure records a ceremony failure (user cancelled, no
// authenticator configured, platform rejection). State is unchanged
// and the same action can be retried.
func (g *Gate) ReportFailure(message string) {
	if message == "" {
		message = "Falha na autenticação. Verifique se você tem um método de autenticação configurado no seu dispositivo."
	}
	g.advisory = message
}

// CompleteRegistration persists the handle produced by a successful
// create-credential ceremony and moves to Registered. The caller then
// immediately attempts authentication.
func (g *Gate) CompleteRegistration(handle string) error {
	if g.unsupported {
		return errl.Errorf("platform credential API unavailable")
	}
	if g.state != StateUnregistered {
		return errl.Errorf("registration from state %q", g.state)
	}
	if handle == "" {
		g.advisory = "Não foi possível criar a chave de acesso. Verifique se seu dispositivo tem um método de autenticação configurado (PIN, senha ou padrão)."
		return errl.Errorf("empty credential handle")
	}
	if err := g.store.SetCredentialHandle(handle); err != nil {
		g.advisory = "Falha ao salvar o registro."
		return errl.Errorf("persisting credential handle: %w", err)
	}
	g.state = StateRegistered
	g.advisory = ""
	return nil
}

// CompleteAuthentication checks the ceremony's handle against the
// stored one and opens the gate. Once authenticated the gate stays
// open for the rest of the session.
func (g *Gate) CompleteAuthentication(handle string) error {
	if g.unsupported {
		return errl.Errorf("platform credential API unavailable")
	}
	if g.state == StateUnregistered {
		g.advisory = "Nenhuma chave encontrada. Por favor registre primeiro."
		return errl.Errorf("authentication before registration")
	}
	stored, err := g.store.GetCredentialHandle()
	if err != nil {
		g.advisory = "Falha ao verificar status do registro."
		return errl.Errorf("reading credential handle: %w", err)
	}
	if handle == "" || handle != stored {
		g.advisory = "Falha na autenticação. Verifique se você tem um método de autenticação configurado no seu dispositivo."
		return errl.Errorf("credential handle does not match the registered one")
	}
	g.state = StateAuthenticated
	g.advisory = ""
	return nil
}
