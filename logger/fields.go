package logger

// Standard field names for consistent structured logging across PVX.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldClientID = "client_id"

	// Components
	FieldComponent = "component"

	// Operations
	FieldOperation = "operation"
	FieldLimit     = "limit"
	FieldTarget    = "target"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount = "count"
	FieldNodes = "nodes"
	FieldLinks = "links"

	// Files and network
	FieldFile = "file"
	FieldPort = "port"

	// PVX-specific
	FieldSymbol = "symbol" // PVX operation symbol (ℙ, ∏, ❖)
	FieldPrime  = "prime"
	FieldVowel  = "vowel"
	FieldOp     = "op" // composite operation (sum/product/power)
)
