// Package compose maps a validated contract record plus the configured
// attorney-in-fact into the fixed document layout. It is a pure
// mapping: no I/O, no rendering. The rendering port in pdfrender turns
// the Document tree into the downloadable artifact.
package compose

import (
	"time"

	"github.com/contratoseguro/contratos/internal/models"
)

// Field is one labeled line of the document.
type Field struct {
	Label string
	Value string
}

// Document is the fixed-layout tree handed to the renderer: title,
// buyer block, clause paragraphs, the seven vehicle fields in fixed
// order, the dateline and the signature block. Fields with empty
// values still render their label; nothing is conditionally hidden.
type Document struct {
	Kind      models.DocumentKind
	Title     string
	Buyer     []Field
	Clauses   []string
	Vehicle   []Field
	Dateline  string
	Signature []string
	Filename  string
}

// The clause texts are the legal boilerplate of the printed documents.
const (
	clauseConstitution = "NOMEIO E CONSTITUO MEUS BASTANTES PROCURADORES:"

	clauseInstrument = "Pelo presente instrumento particular, as partes acima identificadas " +
		"têm, entre si, justo e acertado o presente Contrato de Compra e Venda de " +
		"Motocicleta, que se regerá pelas cláusulas seguintes e pelas condições " +
		"descritas no presente."

	clausePurpose = "Para o fim especial de assinar em nome do proprietário adquirente o " +
		"Certificado de Registro de Veículo (CRV) do veículo descrito abaixo e podendo " +
		"assim representar o PROPRIETÁRIO COMPRADOR do veículo, perante a qualquer " +
		"Órgão Público que exija a assinatura do mesmo no CRV / ATPV."
)

// datelineCity is where the documents are executed.
const datelineCity = "São José"

// Compose builds the Document for the given kind. now provides the
// generation-date stamp so callers (and tests) control the clock.
func Compose(record models.ContractRecord, attorney models.AttorneyParty, kind models.DocumentKind, now time.Time) Document {

	doc := Document{
		Kind: kind,
		Buyer: []Field{
			{Label: "NOME", Value: record.Nome},
			{Label: "CPF", Value: record.CPF},
			{Label: "END", Value: record.Endereco},
		},
		Vehicle: []Field{
			{Label: "MARCA", Value: record.Marca},
			{Label: "PLACA", Value: record.Placa},
			{Label: "CHASSI", Value: record.Chassi},
			{Label: "COR", Value: record.Cor},
			{Label: "ANO/MOD", Value: record.AnoModelo},
			{Label: "RENAVAM", Value: record.Renavam},
			{Label: "COMBUSTIVEL", Value: record.Combustivel},
		},
		Dateline:  datelineCity + ", " + now.Format("02/01/2006"),
		Signature: []string{record.Nome, record.CPF},
		Filename:  Filename(kind, record),
	}

	attorneyClause := "O Sr. " + attorney.Nome + ", brasileiro, " + attorney.EstadoCivil +
		", portador da carteira de identidade nº. " + attorney.RG + " e do CPF " +
		attorney.CPF + ", residente e domiciliado a " + attorney.Endereco

	switch kind {
	case models.KindContrato:
		doc.Title = "CONTRATO DE COMPRA E VENDA DE MOTOCICLETA"
		doc.Clauses = []string{clauseInstrument, attorneyClause, clausePurpose}
	default:
		doc.Title = "PROCURAÇÃO DE COMPRA"
		doc.Clauses = []string{clauseConstitution, attorneyClause, clausePurpose}
	}

	return doc
}
