package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrices_EmptyMarket(t *testing.T) {
	require := require.New(t)

	yes, no := Prices(0, 0)
	require.Equal(uint64(500_000_000), yes, "empty market should price yes at half of Scale")
	require.Equal(uint64(500_000_000), no, "empty market should price no at half of Scale")
}

func TestPrices_SumToScale(t *testing.T) {
	require := require.New(t)

	cases := []struct {
		yesReserve uint64
		noReserve  uint64
	}{
		{0, 0},
		{1, 0},
		{1_000_000_000, 0},
		{1_000_000_000, 9_000_000_000},
		{123_456_789, 987_654_321},
		{1_000_000_000_000, 1},
	}
	for _, tc := range cases {
		yes, no := Prices(tc.yesReserve, tc.noReserve)
		require.Positive(yes)
		require.Positive(no)
		require.Less(yes, Scale)
		require.Less(no, Scale)
		// Integer truncation may lose at most one unit of Scale.
		sum := yes + no
		require.GreaterOrEqual(sum, Scale-1)
		require.LessOrEqual(sum, Scale)
	}
}

func TestTokenAmount_FirstDeposit(t *testing.T) {
	require := require.New(t)

	// One SOL on yes into an empty market mints tokens at price Scale/2.
	tokens, err := TokenAmount(1_000_000_000, true, 0, 0)
	require.NoError(err)
	require.Equal(uint64(2_000_000_000), tokens)
}

func TestTokenAmount_FavoredSideMintsFewer(t *testing.T) {
	require := require.New(t)

	// After one SOL landed on yes, the same deposit mints fewer yes tokens
	// than no tokens.
	yesTokens, err := TokenAmount(1_000_000_000, true, 1_000_000_000, 0)
	require.NoError(err)
	noTokens, err := TokenAmount(1_000_000_000, false, 1_000_000_000, 0)
	require.NoError(err)
	require.Less(yesTokens, noTokens)
}

func TestTokenAmount_SymmetricSides(t *testing.T) {
	require := require.New(t)

	yesTokens, err := TokenAmount(500, true, 77, 77)
	require.NoError(err)
	noTokens, err := TokenAmount(500, false, 77, 77)
	require.NoError(err)
	require.Equal(yesTokens, noTokens)
}

func TestTokenAmount_Overflow(t *testing.T) {
	require := require.New(t)

	// A maximal deposit against a heavily skewed market pushes the minted
	// amount past uint64.
	_, err := TokenAmount(^uint64(0), false, 1_000_000_000_000_000_000, 0)
	require.ErrorIs(err, ErrMathOverflow)
}
