// Package vowel assigns symbolic vowel labels to primes.
//
// Labels are a pure function of a prime's rank in the ascending sequence:
// the first five primes take the base set A, E, I, O, U in order, and later
// ranks cycle the base set with a numeric suffix (rank 5 -> "A2", rank 6 ->
// "E2", ...). Every prime gets exactly one label and no two ranks share one.
package vowel

import (
	"strconv"
)

// Base is the ordered base vowel set.
var Base = [5]string{"A", "E", "I", "O", "U"}

// LabelForRank returns the label for the i-th prime (0-indexed).
func LabelForRank(i int) string {
	v := Base[i%len(Base)]
	if i < len(Base) {
		return v
	}
	return v + strconv.Itoa(i/len(Base)+1)
}

// Assignment maps an ordered prime sequence to vowel labels.
type Assignment struct {
	primes  []int64
	labels  []string
	byPrime map[int64]string
}

// Assign labels each prime by its rank. The input is assumed strictly
// ascending, as produced by prime.Sieve.
func Assign(primes []int64) *Assignment {
	a := &Assignment{
		primes:  primes,
		labels:  make([]string, len(primes)),
		byPrime: make(map[int64]string, len(primes)),
	}
	for i, p := range primes {
		label := LabelForRank(i)
		a.labels[i] = label
		a.byPrime[p] = label
	}
	return a
}

// Label returns the label for p and whether p is in the assignment.
func (a *Assignment) Label(p int64) (string, bool) {
	label, ok := a.byPrime[p]
	return label, ok
}

// Primes returns the assigned primes in ascending order.
func (a *Assignment) Primes() []int64 {
	return a.primes
}

// Labels returns the labels in prime order.
func (a *Assignment) Labels() []string {
	return a.labels
}

// Len returns the number of assigned primes.
func (a *Assignment) Len() int {
	return len(a.primes)
}
