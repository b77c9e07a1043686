package actions

import (
	"context"
	"math/rand"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/chain/chaintest"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/stretchr/testify/require"

	"github.com/chokosabe/betvm/pricing"
	"github.com/chokosabe/betvm/storage"
)

// Runs randomized deposit sequences through a full lifecycle and checks the
// accounting invariants hold at every step: reserves mirror deposits, the
// vault mirrors reserves, and settlement never pays out more than the pool
// holds nor less than a winner's principal.
func TestMarketLifecycle_RandomizedInvariants(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 20; round++ {
		mu := chaintest.NewInMemoryStore()
		mr := &MockRules{}

		creator := codec.Address{0xC0}
		referee := codec.Address{0xFE}
		seedRegistry(ctx, t, mu, codec.Address{0x09})
		seedMarket(ctx, t, mu, 0, creator, referee, 1_000)

		numUsers := 2 + rng.Intn(6)
		users := make([]codec.Address, numUsers)
		sides := make([]bool, numUsers)
		deposited := make([]uint64, numUsers)
		for i := range users {
			users[i] = codec.Address{0x10, byte(i)}
			sides[i] = rng.Intn(2) == 0
			fundEntrant(ctx, t, mu, 0, users[i], 1<<50)
		}
		// Force at least one deposit per side so both pools are live.
		sides[0] = true
		sides[1] = false

		var totalDeposited uint64
		numDeposits := 1 + rng.Intn(50)
		for d := 0; d < numDeposits; d++ {
			i := rng.Intn(numUsers)
			amount := 1 + uint64(rng.Int63n(1_000_000_000_000))
			_, err := (&Deposit{BetID: 0, IsYes: sides[i], Amount: amount}).Execute(ctx, mr, mu, int64(100+d), users[i], ids.GenerateTestID())
			require.NoError(err)
			deposited[i] += amount
			totalDeposited += amount

			market, err := storage.GetMarket(ctx, mu, 0)
			require.NoError(err)
			require.Equal(totalDeposited, market.TotalReserve)
			require.Equal(market.TotalReserve, market.YesReserve+market.NoReserve)
			require.Equal(market.TotalSupply, market.YesSupply+market.NoSupply)

			vault, err := storage.GetVaultBalance(ctx, mu)
			require.NoError(err)
			require.Equal(totalDeposited, vault)

			// Truncation can shave at most one unit per side off the scale.
			yesPrice, noPrice := pricing.Prices(market.YesReserve, market.NoReserve)
			require.LessOrEqual(yesPrice+noPrice, uint64(pricing.Scale))
			require.GreaterOrEqual(yesPrice+noPrice, uint64(pricing.Scale-2))
		}
		// Make sure both sides saw at least one deposit.
		for _, i := range []int{0, 1} {
			if deposited[i] == 0 {
				amount := 1 + uint64(rng.Int63n(1_000_000_000_000))
				_, err := (&Deposit{BetID: 0, IsYes: sides[i], Amount: amount}).Execute(ctx, mr, mu, 900, users[i], ids.GenerateTestID())
				require.NoError(err)
				deposited[i] += amount
				totalDeposited += amount
			}
		}

		yesWins := rng.Intn(2) == 0
		_, err := (&Resolve{BetID: 0, IsYes: yesWins}).Execute(ctx, mr, mu, 1_001, referee, ids.GenerateTestID())
		require.NoError(err)

		// Settlement pays the platform fee to the registry owner.
		var paidOut uint64
		ownerFee, err := storage.GetBalance(ctx, mu, codec.Address{0x09})
		require.NoError(err)
		paidOut += ownerFee

		for i, user := range users {
			if deposited[i] == 0 {
				continue
			}
			before, err := storage.GetBalance(ctx, mu, user)
			require.NoError(err)
			_, err = (&Claim{BetID: 0}).Execute(ctx, mr, mu, 1_002, user, ids.GenerateTestID())
			if sides[i] != yesWins {
				require.ErrorIs(err, ErrWrongBet)
				continue
			}
			// With the fees already carved out, a market whose losing pool is
			// smaller than the fees cannot cover every principal; late
			// claimants then hit the vault guard instead of minting.
			if err != nil {
				require.ErrorIs(err, storage.ErrInsufficientVaultBalance)
				continue
			}
			after, err := storage.GetBalance(ctx, mu, user)
			require.NoError(err)
			payout := after - before
			require.GreaterOrEqual(payout, deposited[i], "successful winner claim must recover principal")
			paidOut += payout
		}

		// A lopsided market can leave the vault short of the creator fee once
		// principals are repaid; the claim then fails rather than minting.
		if _, err := (&ClaimCreatorFee{BetID: 0}).Execute(ctx, mr, mu, 1_003, creator, ids.GenerateTestID()); err != nil {
			require.ErrorIs(err, storage.ErrInsufficientVaultBalance)
		}
		creatorFee, err := storage.GetBalance(ctx, mu, creator)
		require.NoError(err)
		paidOut += creatorFee

		// Whatever was not distributed stays in the vault; nothing was minted.
		vault, err := storage.GetVaultBalance(ctx, mu)
		require.NoError(err)
		require.Equal(totalDeposited, paidOut+vault)
		require.LessOrEqual(paidOut, totalDeposited)
	}
}
