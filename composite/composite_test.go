package composite

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/PVX/vowel"
)

func TestGenerate_Pair23(t *testing.T) {
	a := vowel.Assign([]int64{2, 3})
	s := Generate(a)

	// One pair, four operations
	require.Equal(t, 4, s.Len())

	all := s.All()
	assert.Equal(t, "5", all[0].Value.String())
	assert.Equal(t, OpSum, all[0].Op)
	assert.Equal(t, "AE", all[0].Label)

	assert.Equal(t, "6", all[1].Value.String())
	assert.Equal(t, OpProduct, all[1].Op)
	assert.Equal(t, "aE", all[1].Label)

	// 2**3 then 3**2
	assert.Equal(t, "8", all[2].Value.String())
	assert.Equal(t, OpPower, all[2].Op)
	assert.Equal(t, [2]int64{2, 3}, all[2].Operands)
	assert.Equal(t, "Ae", all[2].Label)

	assert.Equal(t, "9", all[3].Value.String())
	assert.Equal(t, OpPower, all[3].Op)
	assert.Equal(t, [2]int64{3, 2}, all[3].Operands)
	assert.Equal(t, "Ea", all[3].Label)
}

func TestGenerate_Recomputation(t *testing.T) {
	a := vowel.Assign([]int64{2, 3, 5, 7, 11, 13})
	s := Generate(a)

	for _, c := range s.All() {
		base := big.NewInt(c.Operands[0])
		arg := big.NewInt(c.Operands[1])

		var want *big.Int
		switch c.Op {
		case OpSum:
			want = new(big.Int).Add(base, arg)
		case OpProduct:
			want = new(big.Int).Mul(base, arg)
		case OpPower:
			want = new(big.Int).Exp(base, arg, nil)
		default:
			t.Fatalf("unknown op %q", c.Op)
		}
		require.Zero(t, c.Value.Cmp(want),
			"%v over %v: got %s want %s", c.Op, c.Operands, c.Value, want)
	}
}

func TestGenerate_PairCount(t *testing.T) {
	// n primes -> n*(n-1)/2 pairs, 4 composites each, no self-pairs
	a := vowel.Assign([]int64{2, 3, 5, 7})
	s := Generate(a)
	assert.Equal(t, 6*4, s.Len())

	for _, c := range s.All() {
		assert.Less(t, c.Pair[0], c.Pair[1], "self-pair or unordered pair generated")
	}
}

func TestGenerate_EmptyAndSingle(t *testing.T) {
	assert.Equal(t, 0, Generate(vowel.Assign(nil)).Len())
	assert.Equal(t, 0, Generate(vowel.Assign([]int64{2})).Len())
}

func TestGenerate_ArbitraryPrecision(t *testing.T) {
	a := vowel.Assign([]int64{2, 3, 5, 7, 11, 13, 17, 19})
	s := Generate(a)

	// 17**19 overflows int64; exact value must survive
	want, ok := new(big.Int).SetString("239072435685151324847153", 10)
	require.True(t, ok)

	found := false
	for _, c := range s.Generators(want) {
		if c.Op == OpPower && c.Operands == [2]int64{17, 19} {
			found = true
		}
	}
	assert.True(t, found, "17**19 not generated exactly")
}

func TestGenerators_Collisions(t *testing.T) {
	// 2**3 and 3+5 both produce 8; both generators must be kept
	a := vowel.Assign([]int64{2, 3, 5})
	s := Generate(a)

	gens := s.Generators(big.NewInt(8))
	require.Len(t, gens, 2)

	ops := []Op{gens[0].Op, gens[1].Op}
	assert.Contains(t, ops, OpPower)
	assert.Contains(t, ops, OpSum)

	// Generation order is deterministic: pair (2,3) precedes (3,5)
	assert.Equal(t, [2]int64{2, 3}, gens[0].Pair)
	assert.Equal(t, [2]int64{3, 5}, gens[1].Pair)
}

func TestGenerators_Absent(t *testing.T) {
	a := vowel.Assign([]int64{2, 3})
	s := Generate(a)
	assert.Empty(t, s.Generators(big.NewInt(7)))
}
