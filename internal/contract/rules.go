// Package contract implements the field ruleset of the motorcycle
// contract form and the form controller that drives it. Validation is
// a pure transform stage: masked input goes in, a normalized
// ContractRecord or a per-field error map comes out. Normalization runs
// before the pattern checks that depend on it (plate, tax identifier,
// renavam), and the normalized values are what end up in the record.
package contract

import (
	"regexp"
	"strings"

	"github.com/contratoseguro/contratos/internal/models"
	"github.com/invopop/validation"
)

var (
	// Legacy LLLDDDD or Mercosul LLLDLDD, tested after normalization.
	platePattern = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z0-9][0-9]{2}$|^[A-Z]{3}[0-9]{4}$`)

	// 17 uppercase alphanumerics excluding I, O and Q.
	chassiPattern = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)

	// Four digits, slash, four digits. No chronological check.
	anoModeloPattern = regexp.MustCompile(`^\d{4}/\d{4}$`)
)

// Validate checks every form field and, when all pass, returns the
// normalized ContractRecord. On failure it returns validation.Errors
// mapping the field name to the first failing rule's message.
func Validate(raw models.RawContractForm) (models.ContractRecord, error) {

	err := validation.ValidateStruct(&raw,
		validation.Field(&raw.Nome,
			validation.Required.Error("Nome é obrigatório"),
			validation.Length(3, 100).Error("Nome deve ter entre 3 e 100 caracteres"),
		),
		validation.Field(&raw.CPF,
			validation.Required.Error("CPF/CNPJ é obrigatório"),
			validation.By(checkTaxIdentifier),
		),
		validation.Field(&raw.Endereco,
			validation.Required.Error("Endereço é obrigatório"),
			validation.Length(10, 200).Error("Endereço deve ter entre 10 e 200 caracteres"),
		),
		validation.Field(&raw.Marca,
			validation.Required.Error("Marca é obrigatória"),
			validation.Length(2, 50).Error("Marca deve ter entre 2 e 50 caracteres"),
		),
		validation.Field(&raw.Placa,
			validation.Required.Error("Placa é obrigatória"),
			validation.By(checkPlate),
		),
		validation.Field(&raw.Chassi,
			validation.Required.Error("Chassi é obrigatório"),
			validation.By(checkChassi),
		),
		validation.Field(&raw.Cor,
			validation.Required.Error("Cor é obrigatória"),
			validation.Length(3, 20).Error("Cor deve ter entre 3 e 20 caracteres"),
		),
		validation.Field(&raw.AnoModelo,
			validation.Required.Error("Ano/Modelo é obrigatório"),
			validation.Match(anoModeloPattern).Error("Formato deve ser AAAA/AAAA"),
		),
		validation.Field(&raw.Renavam,
			validation.Required.Error("Renavam é obrigatório"),
			validation.By(checkRenavam),
		),
		validation.Field(&raw.Combustivel,
			validation.Required.Error("Combustível é obrigatório"),
			validation.Length(4, 20).Error("Tipo de combustível inválido"),
		),
	)
	if err != nil {
		return models.ContractRecord{}, err
	}

	// All fields passed; normalization of the three masked fields
	// happens exactly once, here.
	return models.ContractRecord{
		Nome:        raw.Nome,
		CPF:         Digits(raw.CPF),
		Endereco:    raw.Endereco,
		Marca:       raw.Marca,
		Placa:       NormalizePlate(raw.Placa),
		Chassi:      strings.ToUpper(strings.TrimSpace(raw.Chassi)),
		Cor:         raw.Cor,
		AnoModelo:   raw.AnoModelo,
		Renavam:     Digits(raw.Renavam),
		Combustivel: raw.Combustivel,
	}, nil
}

// checkTaxIdentifier accepts a CPF (11 digits) or a CNPJ (14 digits)
// after stripping mask characters.
func checkTaxIdentifier(value any) error {
	s, _ := value.(string)
	n := len(Digits(s))
	if n != 11 && n != 14 {
		return validation.NewError("validation_tax_identifier", "CPF/CNPJ inválido")
	}
	return nil
}

func checkPlate(value any) error {
	s, _ := value.(string)
	if !platePattern.MatchString(NormalizePlate(s)) {
		return validation.NewError("validation_plate",
			"Formato de placa inválido. Use o formato antigo (ABC1234) ou Mercosul (ABC1D23)")
	}
	return nil
}

func checkChassi(value any) error {
	raw, _ := value.(string)
	s := strings.ToUpper(strings.TrimSpace(raw))
	if len(s) != 17 {
		return validation.NewError("validation_chassi_length", "Chassi deve ter exatamente 17 caracteres")
	}
	if !chassiPattern.MatchString(s) {
		return validation.NewError("validation_chassi", "Formato de chassi inválido")
	}
	return nil
}

func checkRenavam(value any) error {
	s, _ := value.(string)
	if len(Digits(s)) != 11 {
		return validation.NewError("validation_renavam", "Renavam deve ter exatamente 11 dígitos")
	}
	return nil
}

// FieldErrors converts a Validate error into a plain field -> message
// map for JSON responses and template rendering. Returns nil when err
// carries no field information.
func FieldErrors(err error) map[string]string {
	var verrs validation.Errors
	if !asValidationErrors(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		out[field] = ferr.Error()
	}
	return out
}

func asValidationErrors(err error, target *validation.Errors) bool {
	verrs, ok := err.(validation.Errors)
	if !ok {
		return false
	}
	*target = verrs
	return true
}
