package prime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/PVX/errors"
)

func TestFactorize_Known(t *testing.T) {
	tests := []struct {
		n    int64
		want []Factor
	}{
		{2, []Factor{{2, 1}}},
		{30, []Factor{{2, 1}, {3, 1}, {5, 1}}},
		{360, []Factor{{2, 3}, {3, 2}, {5, 1}}},
		{97, []Factor{{97, 1}}},              // prime input
		{1024, []Factor{{2, 10}}},            // prime power
		{7919 * 2, []Factor{{2, 1}, {7919, 1}}}, // large prime cofactor
	}

	for _, tt := range tests {
		got, err := Factorize(tt.n)
		require.NoError(t, err, "Factorize(%d)", tt.n)
		assert.Equal(t, tt.want, got, "Factorize(%d)", tt.n)
	}
}

func TestFactorize_RoundTrip(t *testing.T) {
	for n := int64(2); n <= 2000; n++ {
		factors, err := Factorize(n)
		require.NoError(t, err)

		product := int64(1)
		for _, f := range factors {
			for i := 0; i < f.Exponent; i++ {
				product *= f.Prime
			}
		}
		require.Equal(t, n, product, "round trip failed for %d", n)
	}
}

func TestFactorize_AscendingPrimes(t *testing.T) {
	factors, err := Factorize(2 * 3 * 3 * 11 * 13)
	require.NoError(t, err)
	for i := 1; i < len(factors); i++ {
		assert.Greater(t, factors[i].Prime, factors[i-1].Prime)
	}
}

func TestFactorize_InvalidTargets(t *testing.T) {
	for _, n := range []int64{1, 0, -360} {
		factors, err := Factorize(n)
		assert.Nil(t, factors)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidTarget), "target %d should yield ErrInvalidTarget", n)
	}
}
