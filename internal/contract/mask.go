package contract

// Display masks for the tax identifier. The form stores digits only
// after submit; these rebuild the familiar punctuation when a value is
// echoed back into the form or the admin listing.

// MaskCPF formats an 11-digit CPF as 999.999.999-99. Anything that is
// not exactly 11 digits is returned unchanged.
func MaskCPF(s string) string {
	d := Digits(s)
	if len(d) != 11 {
		return s
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// MaskCNPJ formats a 14-digit CNPJ as 99.999.999/9999-99. Anything
// that is not exactly 14 digits is returned unchanged.
func MaskCNPJ(s string) string {
	d := Digits(s)
	if len(d) != 14 {
		return s
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

// MaskTaxIdentifier picks the CPF or CNPJ mask based on digit count.
func MaskTaxIdentifier(s string) string {
	switch len(Digits(s)) {
	case 11:
		return MaskCPF(s)
	case 14:
		return MaskCNPJ(s)
	}
	return s
}
