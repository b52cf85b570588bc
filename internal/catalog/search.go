package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents strips combining marks so that "eletrico" matches
// "Elétrico". The catalog labels are Portuguese and users rarely type
// the accents.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func fold(s string) string {
	out, _, err := transform.String(foldAccents, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// Search filters options with a case- and accent-insensitive substring
// match against both the canonical value and the display label. An
// empty query returns the full list (opening the selector shows all
// options). The result is always non-nil so callers can distinguish
// "no results" from "no catalog".
func Search(options []Option, query string) []Option {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]Option{}, options...)
	}

	q := fold(query)
	out := make([]Option, 0, len(options))
	for _, opt := range options {
		if strings.Contains(fold(opt.Value), q) || strings.Contains(fold(opt.Label), q) {
			out = append(out, opt)
		}
	}
	return out
}
