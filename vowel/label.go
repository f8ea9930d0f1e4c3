package vowel

import "strings"

// Composite label construction. The case coding distinguishes the operation
// that produced a composite: sums are fully uppercase, products lowercase the
// first operand, powers lowercase the exponent operand. Operands appear in
// (base, exponent) order for powers and ascending prime order otherwise.

// SumLabel builds the label for p + q.
func SumLabel(v1, v2 string) string {
	return strings.ToUpper(v1) + strings.ToUpper(v2)
}

// ProductLabel builds the label for p * q.
func ProductLabel(v1, v2 string) string {
	return strings.ToLower(v1) + strings.ToUpper(v2)
}

// PowerLabel builds the label for base ** exponent.
func PowerLabel(vBase, vExp string) string {
	return strings.ToUpper(vBase) + strings.ToLower(vExp)
}
