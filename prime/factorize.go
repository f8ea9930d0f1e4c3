package prime

import (
	"github.com/teranos/PVX/errors"
)

// ErrInvalidTarget is returned when a factorization target is below 2.
// Check with errors.Is.
var ErrInvalidTarget = errors.Wrap(errors.ErrInvalidInput, "invalid factorization target")

// Factor is one prime-power component of a factorization.
type Factor struct {
	Prime    int64 `json:"prime"`
	Exponent int   `json:"exponent"`
}

// Factorize decomposes n into its prime-power components by trial division,
// ordered by ascending prime. The product of Prime^Exponent over the result
// reconstructs n exactly.
func Factorize(n int64) ([]Factor, error) {
	if n < 2 {
		return nil, errors.WithHint(
			errors.Wrapf(ErrInvalidTarget, "target %d", n),
			"only integers >= 2 have a prime factorization")
	}

	var factors []Factor
	remaining := n
	for p := int64(2); p*p <= remaining; p++ {
		if remaining%p != 0 {
			continue
		}
		exp := 0
		for remaining%p == 0 {
			remaining /= p
			exp++
		}
		factors = append(factors, Factor{Prime: p, Exponent: exp})
	}
	if remaining > 1 {
		factors = append(factors, Factor{Prime: remaining, Exponent: 1})
	}
	return factors, nil
}
