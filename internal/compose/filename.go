package compose

import (
	"strings"
	"unicode"

	"github.com/contratoseguro/contratos/internal/models"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Filename derives the download name from the record so repeated
// generations for different records do not collide: the plate when
// present, otherwise a slug of the buyer name. The prefix tells the
// two document kinds apart.
func Filename(kind models.DocumentKind, record models.ContractRecord) string {
	prefix := "Procuração-"
	if kind == models.KindContrato {
		prefix = "contrato-"
	}

	base := record.Placa
	if base == "" {
		base = slug(record.Nome)
	}
	if base == "" {
		base = "documento"
	}
	return prefix + base + ".pdf"
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func slug(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
