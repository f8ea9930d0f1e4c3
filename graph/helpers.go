package graph

import (
	"fmt"
	"math/big"
)

// primeNodeID returns the node ID for a prime, e.g. "p7".
func primeNodeID(p int64) string {
	return fmt.Sprintf("p%d", p)
}

// compositeNodeID returns the node ID for a composite value. Values are
// arbitrary precision, so the decimal string is the only safe key.
func compositeNodeID(v *big.Int) string {
	return "c" + v.String()
}

// abbreviateValue renders a big integer for display. Small values print in
// full; large powers are shown as leading digits plus a digit count so node
// labels stay readable.
func abbreviateValue(v *big.Int) string {
	s := v.String()
	if len(s) <= maxLabelDigits {
		return s
	}
	return fmt.Sprintf("%s… (%d digits)", s[:6], len(s))
}
