package gate

import (
	"testing"

	"github.com/pkg/errors"
)

// fakeStore is an in-memory HandleStore honoring write-once.
type fakeStore struct {
	handle string
	getErr error
	setErr error
	setCnt int
}

func (f *fakeStore) GetCredentialHandle() (string, error) {
	return f.handle, f.getErr
}

func (f *fakeStore) SetCredentialHandle(handle string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.setCnt++
	if f.handle == "" {
		f.handle = handle
	}
	return nil
}

func TestGate_FullCeremonySequence(t *testing.T) {
	store := &fakeStore{}
	g, err := New(store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.State() != StateUnregistered {
		t.Fatalf("initial state: %q", g.State())
	}

	if err := g.CompleteRegistration("cred-abc"); err != nil {
		t.Fatalf("CompleteRegistration: %v", err)
	}
	if g.State() != StateRegistered {
		t.Fatalf("state after registration: %q", g.State())
	}
	if store.handle != "cred-abc" {
		t.Fatalf("handle not persisted: %q", store.handle)
	}

	if err := g.CompleteAuthentication("cred-abc"); err != nil {
		t.Fatalf("CompleteAuthentication: %v", err)
	}
	if !g.Authenticated() {
		t.Fatal("gate should be open")
	}
	if g.Advisory() != "" {
		t.Fatalf("unexpected advisory: %q", g.Advisory())
	}
}

func TestGate_InitialStateWithStoredHandle(t *testing.T) {
	g, err := New(&fakeStore{handle: "cred-xyz"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.State() != StateRegistered {
		t.Fatalf("expected registered on revisit, got %q", g.State())
	}
	if !g.Registered() {
		t.Fatal("prompt should offer authenticate, not register")
	}
}

func TestGate_FailureLeavesStateUnchanged(t *testing.T) {
	g, _ := New(&fakeStore{handle: "cred-xyz"})

	g.ReportFailure("")
	if g.Advisory() == "" {
		t.Fatal("expected default advisory")
	}
	if g.State() != StateRegistered {
		t.Fatalf("failure must not change state, got %q", g.State())
	}

	// Retry succeeds after the failure.
	if err := g.CompleteAuthentication("cred-xyz"); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
}

func TestGate_MismatchedHandleRejected(t *testing.T) {
	g, _ := New(&fakeStore{handle: "cred-xyz"})
	if err := g.CompleteAuthentication("cred-other"); err == nil {
		t.Fatal("expected mismatched handle to fail")
	}
	if g.State() != StateRegistered {
		t.Fatalf("state changed on failure: %q", g.State())
	}
	if g.Advisory() == "" {
		t.Fatal("expected advisory on failure")
	}
}

func TestGate_AuthenticationBeforeRegistration(t *testing.T) {
	g, _ := New(&fakeStore{})
	if err := g.CompleteAuthentication("cred-abc"); err == nil {
		t.Fatal("expected authentication without registration to fail")
	}
	if g.State() != StateUnregistered {
		t.Fatalf("state: %q", g.State())
	}
}

func TestGate_EmptyHandleRegistration(t *testing.T) {
	store := &fakeStore{}
	g, _ := New(store)
	if err := g.CompleteRegistration(""); err == nil {
		t.Fatal("expected empty handle to be rejected")
	}
	if store.setCnt != 0 {
		t.Fatal("nothing should be persisted")
	}
	if g.Advisory() == "" {
		t.Fatal("expected advisory")
	}
}

func TestGate_StoreFailureSurfacesAdvisory(t *testing.T) {
	store := &fakeStore{setErr: errors.New("disk full")}
	g, _ := New(store)
	if err := g.CompleteRegistration("cred-abc"); err == nil {
		t.Fatal("expected store failure to propagate")
	}
	if g.State() != StateUnregistered {
		t.Fatalf("state changed on store failure: %q", g.State())
	}
}

func TestGate_UnsupportedIsTerminal(t *testing.T) {
	g, _ := New(&fakeStore{})
	g.ReportUnsupported()
	if g.Advisory() == "" {
		t.Fatal("expected advisory")
	}
	if err := g.CompleteRegistration("cred-abc"); err == nil {
		t.Fatal("ceremonies must fail when the platform API is absent")
	}
}

func TestCeremonyOptions(t *testing.T) {
	challenge, err := NewChallenge()
	if err != nil {
		t.Fatalf("NewChallenge: %v", err)
	}
	if challenge == "" {
		t.Fatal("empty challenge")
	}
	if c2, _ := NewChallenge(); c2 == challenge {
		t.Fatal("challenges must be random")
	}

	create := NewCreationOptions("contratos.local", "Contrato Seguro", challenge)
	if create.RP.ID != "contratos.local" || create.PubKeyCredParams[0].Alg != -7 {
		t.Fatalf("unexpected creation options: %#v", create)
	}
	if create.AuthenticatorSelection.AuthenticatorAttachment != "platform" {
		t.Fatalf("expected platform attachment")
	}

	request := NewRequestOptions(challenge, "cred-abc")
	if len(request.AllowCredentials) != 1 || request.AllowCredentials[0].ID != "cred-abc" {
		t.Fatalf("allow-list must contain exactly the stored handle: %#v", request)
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc, err := NewTokenService("https://contratos.local")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, err := svc.Generate("session-1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	sub, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if sub != "session-1" {
		t.Fatalf("subject: %q", sub)
	}

	if _, err := svc.Verify(token + "x"); err == nil {
		t.Fatal("tampered token must fail verification")
	}

	// A second service has a different ephemeral key.
	other, _ := NewTokenService("https://contratos.local")
	if _, err := other.Verify(token); err == nil {
		t.Fatal("token must not verify under another key")
	}

	set, err := svc.PublicJWKS()
	if err != nil {
		t.Fatalf("PublicJWKS: %v", err)
	}
	if set.Len() != 1 {
		t.Fatalf("expected one key in set, got %d", set.Len())
	}
}
