package contract

import "testing"

func TestController_SubmitLifecycle(t *testing.T) {
	c := NewController()
	if c.State() != StateEditing {
		t.Fatalf("initial state: %q", c.State())
	}

	if err := c.SetForm(validForm()); err != nil {
		t.Fatalf("SetForm: %v", err)
	}

	record, err := c.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if c.State() != StateReadyToRender {
		t.Fatalf("state after submit: %q", c.State())
	}
	if record.Placa != "ABC1234" {
		t.Fatalf("record not normalized: %q", record.Placa)
	}

	held, ok := c.Record()
	if !ok || held != record {
		t.Fatal("held record does not match submitted record")
	}

	// Fields are frozen until reset
	if err := c.SetForm(validForm()); err == nil {
		t.Fatal("expected SetForm to fail in ready state")
	}
	if _, err := c.Submit(); err == nil {
		t.Fatal("expected double submit to fail")
	}

	c.Reset()
	if c.State() != StateEditing {
		t.Fatalf("state after reset: %q", c.State())
	}
	if _, ok := c.Record(); ok {
		t.Fatal("record should be discarded on reset")
	}
	if c.Touched() {
		t.Fatal("reset form should be untouched")
	}
}

func TestController_SubmitBlockedByValidation(t *testing.T) {
	c := NewController()
	raw := validForm()
	raw.Placa = "zz"
	if err := c.SetForm(raw); err != nil {
		t.Fatalf("SetForm: %v", err)
	}

	if _, err := c.Submit(); err == nil {
		t.Fatal("expected submit to fail validation")
	}
	if c.State() != StateEditing {
		t.Fatalf("failed submit must return to editing, state %q", c.State())
	}
	if _, ok := c.Errors()["placa"]; !ok {
		t.Fatalf("expected placa error, got %#v", c.Errors())
	}
	if _, ok := c.Record(); ok {
		t.Fatal("no record should be held after failed submit")
	}
}

func TestController_CheckNowDoesNotChangeState(t *testing.T) {
	c := NewController()
	raw := validForm()
	raw.Nome = ""
	if err := c.SetForm(raw); err != nil {
		t.Fatalf("SetForm: %v", err)
	}

	errs := c.CheckNow()
	if errs["nome"] == "" {
		t.Fatalf("expected nome error, got %#v", errs)
	}
	if c.State() != StateEditing {
		t.Fatalf("CheckNow must not transition, state %q", c.State())
	}
}
