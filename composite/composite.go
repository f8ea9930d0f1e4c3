// Package composite derives composite values from pairs of primes.
//
// Every unordered pair {p, q} with p < q yields four composites: p+q, p*q,
// p**q, and q**p. Self-pairs are excluded and exponentiation is generated in
// both directions, since it is the one non-commutative operation. Values are
// arbitrary precision: even modest limits produce powers far beyond int64.
//
// Different pairs and operations may collide on the same integer value
// (e.g. 2+3 and the prime 5). Collisions are kept, not deduplicated: every
// generator is recorded and retrievable by value.
package composite

import (
	"math/big"

	"github.com/teranos/PVX/vowel"
)

// Op identifies the operation that produced a composite.
type Op string

const (
	OpSum     Op = "sum"
	OpProduct Op = "product"
	OpPower   Op = "power"
)

// Composite is one derived value together with its provenance.
type Composite struct {
	// Value is the derived integer. Never mutated after generation.
	Value *big.Int

	// Label is the case-coded combination of the pair's vowel labels.
	Label string

	// Pair is the generating prime pair in ascending order.
	Pair [2]int64

	// Operands is the pair in operation order: (base, exponent) for
	// OpPower, ascending otherwise. Recomputing Op over Operands
	// reproduces Value exactly.
	Operands [2]int64

	// Op is the operation used.
	Op Op
}

// Set holds all composites generated from one prime sequence, in
// deterministic order: pairs ascend by (p, q), operations run sum, product,
// power ascending, power descending.
type Set struct {
	composites []Composite
	byValue    map[string][]int
}

// Generate enumerates all pairs over the assignment's primes. Zero or one
// prime yields an empty set.
func Generate(a *vowel.Assignment) *Set {
	primes := a.Primes()
	labels := a.Labels()

	s := &Set{byValue: make(map[string][]int)}

	for i := 0; i < len(primes); i++ {
		for j := i + 1; j < len(primes); j++ {
			p, q := primes[i], primes[j]
			vp, vq := labels[i], labels[j]

			s.add(Composite{
				Value:    new(big.Int).Add(big.NewInt(p), big.NewInt(q)),
				Label:    vowel.SumLabel(vp, vq),
				Pair:     [2]int64{p, q},
				Operands: [2]int64{p, q},
				Op:       OpSum,
			})
			s.add(Composite{
				Value:    new(big.Int).Mul(big.NewInt(p), big.NewInt(q)),
				Label:    vowel.ProductLabel(vp, vq),
				Pair:     [2]int64{p, q},
				Operands: [2]int64{p, q},
				Op:       OpProduct,
			})
			s.add(Composite{
				Value:    pow(p, q),
				Label:    vowel.PowerLabel(vp, vq),
				Pair:     [2]int64{p, q},
				Operands: [2]int64{p, q},
				Op:       OpPower,
			})
			s.add(Composite{
				Value:    pow(q, p),
				Label:    vowel.PowerLabel(vq, vp),
				Pair:     [2]int64{p, q},
				Operands: [2]int64{q, p},
				Op:       OpPower,
			})
		}
	}
	return s
}

func (s *Set) add(c Composite) {
	idx := len(s.composites)
	s.composites = append(s.composites, c)
	key := c.Value.String()
	s.byValue[key] = append(s.byValue[key], idx)
}

func pow(base, exp int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(base), big.NewInt(exp), nil)
}

// All returns every composite in generation order.
func (s *Set) All() []Composite {
	return s.composites
}

// Generators returns every composite whose value equals v, in generation
// order. Empty when no pair/operation produced v.
func (s *Set) Generators(v *big.Int) []Composite {
	indices := s.byValue[v.String()]
	out := make([]Composite, 0, len(indices))
	for _, i := range indices {
		out = append(out, s.composites[i])
	}
	return out
}

// Len returns the number of generated composites, collisions included.
func (s *Set) Len() int {
	return len(s.composites)
}
