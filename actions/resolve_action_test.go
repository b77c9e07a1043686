package actions

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/chain/chaintest"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/stretchr/testify/require"

	"github.com/chokosabe/betvm/storage"
)

func TestResolve_Execute_ByReferee(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := chaintest.NewInMemoryStore()
	mr := &MockRules{}

	referee := codec.Address{0x03}
	seedRegistry(ctx, t, mu, codec.Address{0x09})
	seedMarket(ctx, t, mu, 0, codec.Address{0x02}, referee, 1_000)

	output, err := (&Resolve{BetID: 0, IsYes: true}).Execute(ctx, mr, mu, 1_001, referee, ids.GenerateTestID())
	require.NoError(err)
	require.NotNil(output)

	market, err := storage.GetMarket(ctx, mu, 0)
	require.NoError(err)
	require.True(market.Complete)
	require.Equal(storage.OutcomeYes, market.Winner)
	require.True(market.PlatformFeeClaimed)
	require.False(market.CreatorFeeClaimed)
}

func TestResolve_Execute_PaysPlatformFee(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := chaintest.NewInMemoryStore()
	mr := &MockRules{}

	owner := codec.Address{0x09}
	user := codec.Address{0x01}
	referee := codec.Address{0x03}
	seedRegistry(ctx, t, mu, owner)
	seedMarket(ctx, t, mu, 0, codec.Address{0x02}, referee, 1_000)
	fundEntrant(ctx, t, mu, 0, user, 2_000_000_000)

	_, err := (&Deposit{BetID: 0, IsYes: true, Amount: 2_000_000_000}).Execute(ctx, mr, mu, 100, user, ids.GenerateTestID())
	require.NoError(err)

	_, err = (&Resolve{BetID: 0, IsYes: true}).Execute(ctx, mr, mu, 1_001, referee, ids.GenerateTestID())
	require.NoError(err)

	// 2% of the 2e9 pool moves from the vault to the registry owner at
	// settlement.
	ownerBalance, err := storage.GetBalance(ctx, mu, owner)
	require.NoError(err)
	require.Equal(uint64(40_000_000), ownerBalance)

	vault, err := storage.GetVaultBalance(ctx, mu)
	require.NoError(err)
	require.Equal(uint64(1_960_000_000), vault)

	market, err := storage.GetMarket(ctx, mu, 0)
	require.NoError(err)
	require.True(market.PlatformFeeClaimed)
}

func TestResolve_Execute_ByOwner(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := chaintest.NewInMemoryStore()
	mr := &MockRules{}

	owner := codec.Address{0x09}
	seedRegistry(ctx, t, mu, owner)
	seedMarket(ctx, t, mu, 0, codec.Address{0x02}, codec.Address{0x03}, 1_000)

	_, err := (&Resolve{BetID: 0, IsYes: false}).Execute(ctx, mr, mu, 1_001, owner, ids.GenerateTestID())
	require.NoError(err)

	market, err := storage.GetMarket(ctx, mu, 0)
	require.NoError(err)
	require.Equal(storage.OutcomeNo, market.Winner)
}

func TestResolve_Execute_Guards(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := chaintest.NewInMemoryStore()
	mr := &MockRules{}

	referee := codec.Address{0x03}
	seedRegistry(ctx, t, mu, codec.Address{0x09})
	seedMarket(ctx, t, mu, 0, codec.Address{0x02}, referee, 1_000)

	// Not the referee, not the owner. The creator has no special standing.
	_, err := (&Resolve{BetID: 0, IsYes: true}).Execute(ctx, mr, mu, 1_001, codec.Address{0x02}, ids.GenerateTestID())
	require.ErrorIs(err, ErrUnauthorized)

	// Too early: the deadline itself is not past the deadline.
	_, err = (&Resolve{BetID: 0, IsYes: true}).Execute(ctx, mr, mu, 1_000, referee, ids.GenerateTestID())
	require.ErrorIs(err, ErrBetNotEnded)

	// Settles once.
	_, err = (&Resolve{BetID: 0, IsYes: true}).Execute(ctx, mr, mu, 1_001, referee, ids.GenerateTestID())
	require.NoError(err)
	_, err = (&Resolve{BetID: 0, IsYes: false}).Execute(ctx, mr, mu, 1_002, referee, ids.GenerateTestID())
	require.ErrorIs(err, ErrBetComplete)
}

func TestResolve_Execute_OpenEndedAnyTime(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := chaintest.NewInMemoryStore()
	mr := &MockRules{}

	referee := codec.Address{0x03}
	seedRegistry(ctx, t, mu, codec.Address{0x09})
	seedMarket(ctx, t, mu, 0, codec.Address{0x02}, referee, -1)

	// No deadline to wait out.
	_, err := (&Resolve{BetID: 0, IsYes: true}).Execute(ctx, mr, mu, 5, referee, ids.GenerateTestID())
	require.NoError(err)
}
