package contract

import "strings"

// Digits strips every non-digit character. Used to normalize the tax
// identifier and the renavam before their digit-count checks.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePlate removes everything outside [A-Za-z0-9] and upper-cases
// the rest. It must run before the plate pattern check: the masked
// input ("abc-1234") never matches the unmasked patterns. The function
// is idempotent.
func NormalizePlate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		}
	}
	return b.String()
}
