// Package prime generates prime sequences and factorizations for PVX.
//
// Inputs are small (user-supplied limits for a visualization tool), so the
// implementations favor clarity over asymptotics: a plain sieve of
// Eratosthenes for generation and trial division for factorization. Both
// live behind narrow functions so the algorithms are swappable.
package prime

import (
	"github.com/teranos/PVX/errors"
)

// MinLimit is the smallest limit that yields any primes.
const MinLimit = 2

// ErrInvalidLimit is returned when a prime generation limit is below MinLimit.
// Check with errors.Is.
var ErrInvalidLimit = errors.Wrap(errors.ErrInvalidInput, "invalid prime limit")

// Sieve returns the strictly ascending sequence of all primes p with
// 2 <= p <= limit, using a sieve of Eratosthenes.
func Sieve(limit int64) ([]int64, error) {
	if limit < MinLimit {
		return nil, errors.WithHintf(
			errors.Wrapf(ErrInvalidLimit, "limit %d", limit),
			"the limit must be at least %d", MinLimit)
	}

	composite := make([]bool, limit+1)
	for p := int64(2); p*p <= limit; p++ {
		if composite[p] {
			continue
		}
		for m := p * p; m <= limit; m += p {
			composite[m] = true
		}
	}

	var primes []int64
	for p := int64(2); p <= limit; p++ {
		if !composite[p] {
			primes = append(primes, p)
		}
	}
	return primes, nil
}
