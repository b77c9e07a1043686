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

func TestDeposit_Execute_FirstDeposit(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := chaintest.NewInMemoryStore()
	mr := &MockRules{}

	user := codec.Address{0x01}
	seedRegistry(ctx, t, mu, codec.Address{0x09})
	seedMarket(ctx, t, mu, 0, codec.Address{0x02}, codec.Address{0x03}, 1_000)
	fundEntrant(ctx, t, mu, 0, user, 5_000_000_000)

	action := &Deposit{BetID: 0, IsYes: true, Amount: 1_000_000_000}
	output, err := action.Execute(ctx, mr, mu, 100, user, ids.GenerateTestID())
	require.NoError(err)
	require.NotNil(output)

	// An empty market prices both sides at one half, so one lamport buys two
	// tokens.
	entry, err := storage.GetEntry(ctx, mu, 0, user)
	require.NoError(err)
	require.Equal(uint64(1_000_000_000), entry.DepositedAmount)
	require.Equal(uint64(2_000_000_000), entry.TokenBalance)
	require.True(entry.IsYes)
	require.False(entry.IsClaimed)

	market, err := storage.GetMarket(ctx, mu, 0)
	require.NoError(err)
	require.Equal(uint64(2_000_000_000), market.TotalSupply)
	require.Equal(uint64(1_000_000_000), market.TotalReserve)
	require.Equal(uint64(2_000_000_000), market.YesSupply)
	require.Equal(uint64(1_000_000_000), market.YesReserve)
	require.Zero(market.NoSupply)
	require.Zero(market.NoReserve)

	balance, err := storage.GetBalance(ctx, mu, user)
	require.NoError(err)
	require.Equal(uint64(4_000_000_000), balance)

	vault, err := storage.GetVaultBalance(ctx, mu)
	require.NoError(err)
	require.Equal(uint64(1_000_000_000), vault)

	history, err := storage.GetHistory(ctx, mu, 0)
	require.NoError(err)
	require.Len(history.Points, 2)
	require.Equal(uint64(1_000_000_000), history.Points[1].YesReserve)
	require.Zero(history.Points[1].NoReserve)
}

func TestDeposit_Execute_FavoredSideMintsFewer(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := chaintest.NewInMemoryStore()
	mr := &MockRules{}

	user := codec.Address{0x01}
	seedRegistry(ctx, t, mu, codec.Address{0x09})
	seedMarket(ctx, t, mu, 0, codec.Address{0x02}, codec.Address{0x03}, 1_000)
	fundEntrant(ctx, t, mu, 0, user, 5_000_000_000)

	action := &Deposit{BetID: 0, IsYes: true, Amount: 1_000_000_000}
	_, err := action.Execute(ctx, mr, mu, 100, user, ids.GenerateTestID())
	require.NoError(err)

	// Second identical deposit pays the now-higher yes price.
	_, err = action.Execute(ctx, mr, mu, 101, user, ids.GenerateTestID())
	require.NoError(err)

	entry, err := storage.GetEntry(ctx, mu, 0, user)
	require.NoError(err)
	require.Equal(uint64(2_000_000_000), entry.DepositedAmount)
	require.Equal(uint64(2_000_000_000+1_500_000_001), entry.TokenBalance)
}

func TestDeposit_Execute_SideSwitchRejected(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := chaintest.NewInMemoryStore()
	mr := &MockRules{}

	user := codec.Address{0x01}
	seedRegistry(ctx, t, mu, codec.Address{0x09})
	seedMarket(ctx, t, mu, 0, codec.Address{0x02}, codec.Address{0x03}, 1_000)
	fundEntrant(ctx, t, mu, 0, user, 5_000_000_000)

	_, err := (&Deposit{BetID: 0, IsYes: true, Amount: 1_000}).Execute(ctx, mr, mu, 100, user, ids.GenerateTestID())
	require.NoError(err)

	_, err = (&Deposit{BetID: 0, IsYes: false, Amount: 1_000}).Execute(ctx, mr, mu, 101, user, ids.GenerateTestID())
	require.ErrorIs(err, ErrInvalidBet)
}

func TestDeposit_Execute_Guards(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := chaintest.NewInMemoryStore()
	mr := &MockRules{}

	user := codec.Address{0x01}
	stranger := codec.Address{0x04}
	seedRegistry(ctx, t, mu, codec.Address{0x09})
	seedMarket(ctx, t, mu, 0, codec.Address{0x02}, codec.Address{0x03}, 1_000)
	fundEntrant(ctx, t, mu, 0, user, 1_000)

	// Unknown market.
	_, err := (&Deposit{BetID: 9, IsYes: true, Amount: 1}).Execute(ctx, mr, mu, 100, user, ids.GenerateTestID())
	require.ErrorIs(err, ErrMarketNotFound)

	// Zero amount.
	_, err = (&Deposit{BetID: 0, IsYes: true, Amount: 0}).Execute(ctx, mr, mu, 100, user, ids.GenerateTestID())
	require.ErrorIs(err, ErrInvalidBet)

	// No entry opened.
	_, err = (&Deposit{BetID: 0, IsYes: true, Amount: 1}).Execute(ctx, mr, mu, 100, stranger, ids.GenerateTestID())
	require.ErrorIs(err, ErrEntryNotFound)

	// Insufficient balance; state must stay clean.
	_, err = (&Deposit{BetID: 0, IsYes: true, Amount: 2_000}).Execute(ctx, mr, mu, 100, user, ids.GenerateTestID())
	require.ErrorIs(err, storage.ErrInsufficientBalance)
	market, err := storage.GetMarket(ctx, mu, 0)
	require.NoError(err)
	require.Zero(market.TotalReserve)

	// Deadline hit: deposits close at the exact end timestamp.
	_, err = (&Deposit{BetID: 0, IsYes: true, Amount: 1}).Execute(ctx, mr, mu, 1_000, user, ids.GenerateTestID())
	require.ErrorIs(err, ErrBetEnded)

	// Completed market.
	market.Complete = true
	market.Winner = storage.OutcomeYes
	require.NoError(storage.SetMarket(ctx, mu, market))
	_, err = (&Deposit{BetID: 0, IsYes: true, Amount: 1}).Execute(ctx, mr, mu, 100, user, ids.GenerateTestID())
	require.ErrorIs(err, ErrBetComplete)
}

func TestDeposit_Execute_OpenEndedMarket(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := chaintest.NewInMemoryStore()
	mr := &MockRules{}

	user := codec.Address{0x01}
	seedRegistry(ctx, t, mu, codec.Address{0x09})
	seedMarket(ctx, t, mu, 0, codec.Address{0x02}, codec.Address{0x03}, -1)
	fundEntrant(ctx, t, mu, 0, user, 1_000)

	// Open-ended markets take deposits at any time.
	_, err := (&Deposit{BetID: 0, IsYes: false, Amount: 500}).Execute(ctx, mr, mu, 1<<40, user, ids.GenerateTestID())
	require.NoError(err)

	entry, err := storage.GetEntry(ctx, mu, 0, user)
	require.NoError(err)
	require.False(entry.IsYes)
	require.Equal(uint64(500), entry.DepositedAmount)
}
