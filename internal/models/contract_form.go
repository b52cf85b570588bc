package models

// RawContractForm carries the form fields exactly as typed by the user,
// including mask characters (CPF dots and dashes, plate hyphen). It is
// the input of the validation ruleset; nothing in it is trusted.
type RawContractForm struct {
	Nome        string `form:"nome" json:"nome"`
	CPF         string `form:"cpf" json:"cpf"`
	Endereco    string `form:"endereco" json:"endereco"`
	Marca       string `form:"marca" json:"marca"`
	Placa       string `form:"placa" json:"placa"`
	Chassi      string `form:"chassi" json:"chassi"`
	Cor         string `form:"cor" json:"cor"`
	AnoModelo   string `form:"ano_modelo" json:"ano_modelo"`
	Renavam     string `form:"renavam" json:"renavam"`
	Combustivel string `form:"combustivel" json:"combustivel"`
	Documento   string `form:"documento" json:"documento"`
}
