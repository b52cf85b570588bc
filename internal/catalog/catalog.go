// Package catalog holds the static lookup lists used to populate the
// choice fields of the contract form, and the substring search backing
// the filter-as-you-type selector. The lists are fixed at compile time;
// free-text entry is always allowed, so a value outside the catalog is
// not an error.
package catalog

// Option is a selectable catalog entry. Value is the canonical code
// bound to the form field; Label is what the user sees.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FuelTypes are the fuel options for the combustível field.
var FuelTypes = []Option{
	{Value: "gasolina", Label: "Gasolina"},
	{Value: "etanol", Label: "Etanol"},
	{Value: "flex", Label: "Flex (Gasolina/Etanol)"},
	{Value: "diesel", Label: "Diesel"},
	{Value: "eletrico", Label: "Elétrico"},
	{Value: "hibrido", Label: "Híbrido"},
	{Value: "gnv", Label: "GNV"},
}

// MotorcycleBrands are the brand options for the marca field.
var MotorcycleBrands = []Option{
	{Value: "honda", Label: "Honda"},
	{Value: "yamaha", Label: "Yamaha"},
	{Value: "suzuki", Label: "Suzuki"},
	{Value: "kawasaki", Label: "Kawasaki"},
	{Value: "bmw", Label: "BMW"},
	{Value: "harley-davidson", Label: "Harley-Davidson"},
	{Value: "triumph", Label: "Triumph"},
	{Value: "ducati", Label: "Ducati"},
	{Value: "ktm", Label: "KTM"},
	{Value: "royal-enfield", Label: "Royal Enfield"},
	{Value: "dafra", Label: "Dafra"},
}

// CommonColors are the color options for the cor field.
var CommonColors = []Option{
	{Value: "preto", Label: "Preto"},
	{Value: "branco", Label: "Branco"},
	{Value: "prata", Label: "Prata"},
	{Value: "vermelho", Label: "Vermelho"},
	{Value: "azul", Label: "Azul"},
	{Value: "verde", Label: "Verde"},
	{Value: "amarelo", Label: "Amarelo"},
	{Value: "laranja", Label: "Laranja"},
	{Value: "marrom", Label: "Marrom"},
	{Value: "cinza", Label: "Cinza"},
	{Value: "bege", Label: "Bege"},
}

// ByName returns the catalog list registered under name, or nil when
// there is no such catalog.
func ByName(name string) []Option {
	switch name {
	case "combustivel":
		return FuelTypes
	case "marca":
		return MotorcycleBrands
	case "cor":
		return CommonColors
	}
	return nil
}

// Label returns the display label for a canonical value, falling back
// to the value itself when it is free text outside the catalog.
func Label(options []Option, value string) string {
	for _, opt := range options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}
