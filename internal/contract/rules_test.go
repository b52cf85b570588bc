package contract

import (
	"strings"
	"testing"

	"github.com/contratoseguro/contratos/internal/models"
	"github.com/google/go-cmp/cmp"
)

func validForm() models.RawContractForm {
	return models.RawContractForm{
		Nome:        "João da Silva",
		CPF:         "123.456.789-01",
		Endereco:    "Rua das Laranjeiras, 120, São José",
		Marca:       "honda",
		Placa:       "abc-1234",
		Chassi:      "9BWZZZ377VT004251",
		Cor:         "preto",
		AnoModelo:   "2023/2024",
		Renavam:     "12345678901",
		Combustivel: "flex",
	}
}

func TestValidate_NormalizedRecord(t *testing.T) {
	record, err := Validate(validForm())
	if err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}

	want := models.ContractRecord{
		Nome:        "João da Silva",
		CPF:         "12345678901",
		Endereco:    "Rua das Laranjeiras, 120, São José",
		Marca:       "honda",
		Placa:       "ABC1234",
		Chassi:      "9BWZZZ377VT004251",
		Cor:         "preto",
		AnoModelo:   "2023/2024",
		Renavam:     "12345678901",
		Combustivel: "flex",
	}
	if diff := cmp.Diff(want, record); diff != "" {
		t.Fatalf("unexpected record (-want +got):\n%s", diff)
	}
}

func TestValidate_TaxIdentifierDigitCounts(t *testing.T) {
	cases := []struct {
		cpf   string
		valid bool
	}{
		{"123.456.789-01", true},     // CPF, 11 digits
		{"12.345.678/0001-95", true}, // CNPJ, 14 digits
		{"12345678901", true},
		{"123", false},
		{"123.456.789-012", false}, // 12 digits
		{"", false},
	}
	for _, tc := range cases {
		raw := validForm()
		raw.CPF = tc.cpf
		_, err := Validate(raw)
		if tc.valid && err != nil {
			t.Errorf("cpf %q: expected valid, got %v", tc.cpf, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("cpf %q: expected rejection", tc.cpf)
		}
	}
}

func TestValidate_PlateFormats(t *testing.T) {
	cases := []struct {
		placa string
		want  string
		valid bool
	}{
		{"abc-1234", "ABC1234", true}, // legacy after normalization
		{"abc1d23", "ABC1D23", true},  // Mercosul
		{"ABC1234", "ABC1234", true},
		{"ab12345", "", false}, // wrong letter/digit arrangement
		{"abcd123", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		raw := validForm()
		raw.Placa = tc.placa
		record, err := Validate(raw)
		if tc.valid {
			if err != nil {
				t.Errorf("placa %q: expected valid, got %v", tc.placa, err)
				continue
			}
			if record.Placa != tc.want {
				t.Errorf("placa %q: normalized to %q, want %q", tc.placa, record.Placa, tc.want)
			}
		} else if err == nil {
			t.Errorf("placa %q: expected rejection", tc.placa)
		}
	}
}

func TestNormalizePlate_Idempotent(t *testing.T) {
	for _, s := range []string{"abc-1234", "ABC1D23", "a b c 1 2 3 4", ""} {
		once := NormalizePlate(s)
		if twice := NormalizePlate(once); twice != once {
			t.Errorf("NormalizePlate not idempotent for %q: %q != %q", s, once, twice)
		}
	}
}

func TestValidate_ChassiCharset(t *testing.T) {
	raw := validForm()

	// 17 characters containing a disallowed O
	raw.Chassi = "9BWZZZ377VTO04251"
	if _, err := Validate(raw); err == nil {
		t.Fatal("expected chassi with O to be rejected")
	}

	// lowercase input is upper-cased before the check
	raw.Chassi = "9bwzzz377vt004251"
	record, err := Validate(raw)
	if err != nil {
		t.Fatalf("expected lowercase chassi to validate, got %v", err)
	}
	if record.Chassi != "9BWZZZ377VT004251" {
		t.Fatalf("chassi not upper-cased: %q", record.Chassi)
	}

	// surrounding whitespace is trimmed before the check and the
	// record carries the trimmed 17 characters
	raw.Chassi = " 9bwzzz377vt004251 "
	record, err = Validate(raw)
	if err != nil {
		t.Fatalf("expected padded chassi to validate, got %v", err)
	}
	if record.Chassi != "9BWZZZ377VT004251" {
		t.Fatalf("chassi not trimmed: %q", record.Chassi)
	}
	if len(record.Chassi) != 17 {
		t.Fatalf("chassi length = %d, want 17", len(record.Chassi))
	}

	// wrong length
	raw.Chassi = "9BWZZZ377VT00425"
	if _, err := Validate(raw); err == nil {
		t.Fatal("expected 16-char chassi to be rejected")
	}
}

func TestValidate_AnoModelo(t *testing.T) {
	cases := map[string]bool{
		"2024/2024": true,
		"2024/1999": true, // no chronological check
		"24/2024":   false,
		"2024-2024": false,
		"2024/202":  false,
	}
	for ano, valid := range cases {
		raw := validForm()
		raw.AnoModelo = ano
		_, err := Validate(raw)
		if valid && err != nil {
			t.Errorf("anoModelo %q: expected valid, got %v", ano, err)
		}
		if !valid && err == nil {
			t.Errorf("anoModelo %q: expected rejection", ano)
		}
	}
}

func TestValidate_RenavamNormalizedBeforeCheck(t *testing.T) {
	raw := validForm()
	raw.Renavam = "123.456.789-01"
	record, err := Validate(raw)
	if err != nil {
		t.Fatalf("expected masked renavam to validate, got %v", err)
	}
	if record.Renavam != "12345678901" {
		t.Fatalf("renavam not normalized: %q", record.Renavam)
	}

	raw.Renavam = "1234567890"
	if _, err := Validate(raw); err == nil {
		t.Fatal("expected 10-digit renavam to be rejected")
	}
}

func TestValidate_RequiredPrecedesOtherRules(t *testing.T) {
	raw := validForm()
	raw.Nome = ""
	_, err := Validate(raw)
	errs := FieldErrors(err)
	if errs["nome"] != "Nome é obrigatório" {
		t.Fatalf("expected the required message first, got %q", errs["nome"])
	}
}

func TestFieldErrors_OneMessagePerField(t *testing.T) {
	raw := validForm()
	raw.Nome = "ab"        // too short
	raw.Placa = "zz"       // invalid
	raw.Combustivel = "gn" // too short
	_, err := Validate(raw)
	errs := FieldErrors(err)
	if len(errs) != 3 {
		t.Fatalf("expected 3 field errors, got %#v", errs)
	}
	if !strings.Contains(errs["placa"], "Mercosul") {
		t.Fatalf("unexpected placa message: %q", errs["placa"])
	}
}

func TestMaskTaxIdentifier(t *testing.T) {
	if got := MaskTaxIdentifier("12345678901"); got != "123.456.789-01" {
		t.Fatalf("CPF mask: got %q", got)
	}
	if got := MaskTaxIdentifier("12345678000195"); got != "12.345.678/0001-95" {
		t.Fatalf("CNPJ mask: got %q", got)
	}
	if got := MaskTaxIdentifier("123"); got != "123" {
		t.Fatalf("short value should pass through, got %q", got)
	}
}
