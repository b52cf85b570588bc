package models

// DocumentKind selects which printable document is produced from a
// validated record.
type DocumentKind string

const (
	// KindContrato is the motorcycle sale contract.
	KindContrato DocumentKind = "contrato"
	// KindProcuracao is the purchase power-of-attorney.
	KindProcuracao DocumentKind = "procuracao"
)

// ParseDocumentKind maps the form value to a DocumentKind, defaulting
// to the power-of-attorney (the document the shop prints most).
func ParseDocumentKind(s string) DocumentKind {
	if s == string(KindContrato) {
		return KindContrato
	}
	return KindProcuracao
}

// ContractRecord is the validated, submit-ready entity. Every field has
// passed the ruleset and the three maskable fields (CPF, Placa, Renavam)
// hold their normalized form: digits only for CPF and Renavam, uppercase
// alphanumerics for Placa.
type ContractRecord struct {
	// Buyer identity
	Nome     string `json:"nome"`
	CPF      string `json:"cpf"`
	Endereco string `json:"endereco"`

	// Vehicle identity
	Marca       string `json:"marca"`
	Placa       string `json:"placa"`
	Chassi      string `json:"chassi"`
	Cor         string `json:"cor"`
	AnoModelo   string `json:"ano_modelo"`
	Renavam     string `json:"renavam"`
	Combustivel string `json:"combustivel"`
}

// AttorneyParty is the fixed attorney-in-fact named in the
// power-of-attorney clause. It comes from deployment configuration and
// is never user-editable. Missing fields are a deployment warning, not
// a runtime fault: documents render with the blanks.
type AttorneyParty struct {
	Nome        string `yaml:"nome" json:"nome"`
	EstadoCivil string `yaml:"estado_civil" json:"estado_civil"`
	RG          string `yaml:"rg" json:"rg"`
	CPF         string `yaml:"cpf" json:"cpf"`
	Endereco    string `yaml:"endereco" json:"endereco"`
}

// MissingFields lists the attorney configuration keys that are absent,
// in a stable order, for the startup advisory log.
func (a AttorneyParty) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		key   string
		value string
	}{
		{"nome", a.Nome},
		{"estado_civil", a.EstadoCivil},
		{"rg", a.RG},
		{"cpf", a.CPF},
		{"endereco", a.Endereco},
	} {
		if f.value == "" {
			missing = append(missing, f.key)
		}
	}
	return missing
}
