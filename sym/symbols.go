// Package sym defines canonical symbols for PVX operations and system markers.
// These symbols are stable across CLI output, logs, and documentation.
package sym

// Primary operation symbols — each has a CLI command.
const (
	Gen    = "ℙ" // gen — generate primes and vowel labels
	Factor = "∏" // factor — prime factorization
	Viz    = "❖" // viz — graph visualization
)

// Composite operation symbols — structural, used in listings and edge labels.
const (
	Sum     = "∑" // sum of a prime pair
	Product = "×" // product of a prime pair
	Power   = "↑" // exponentiation (base ↑ exponent)
)

// System infrastructure symbols.
const (
	Vowel  = "Æ" // vowel label assignment
	Server = "⟁" // interactive graph server
)

// SymbolToCommand maps operation symbols to their CLI commands.
var SymbolToCommand = map[string]string{
	Gen:    "gen",
	Factor: "factor",
	Viz:    "viz",
}

// CommandToSymbol maps CLI commands back to their operation symbols.
var CommandToSymbol = map[string]string{}

func init() {
	for symbol, cmd := range SymbolToCommand {
		CommandToSymbol[cmd] = symbol
	}
}

// OpSymbol returns the symbol for a composite operation name, or the name
// itself when unknown.
func OpSymbol(op string) string {
	switch op {
	case "sum":
		return Sum
	case "product":
		return Product
	case "power":
		return Power
	default:
		return op
	}
}
