// Command preview renders sample documents to disk, for iterating on
// the PDF layout without going through the form.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/contratoseguro/contratos/internal/compose"
	"github.com/contratoseguro/contratos/internal/models"
	"github.com/contratoseguro/contratos/internal/pdfrender"
)

func main() {
	outDir := flag.String("out", ".", "Directory to write the sample PDFs")
	flag.Parse()

	record := models.ContractRecord{
		Nome:        "João da Silva",
		CPF:         "12345678901",
		Endereco:    "Rua das Flores, 123, Centro, São José - SC",
		Marca:       "Honda",
		Placa:       "ABC1D23",
		Chassi:      "9BWZZZ377VT004251",
		Cor:         "Vermelha",
		AnoModelo:   "2023/2024",
		Renavam:     "12345678901",
		Combustivel: "Gasolina",
	}

	attorney := models.AttorneyParty{
		Nome:        "José de Oliveira",
		EstadoCivil: "casado",
		RG:          "1.234.567",
		CPF:         "987.654.321-00",
		Endereco:    "Avenida Central, 456, São José - SC",
	}

	renderer := pdfrender.NewFPDF()

	for _, kind := range []models.DocumentKind{models.KindProcuracao, models.KindContrato} {
		doc := compose.Compose(record, attorney, kind, time.Now())

		data, err := renderer.Render(doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rendering %s: %v\n", kind, err)
			os.Exit(1)
		}

		path := filepath.Join(*outDir, doc.Filename)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "writing %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Println(path)
	}
}
