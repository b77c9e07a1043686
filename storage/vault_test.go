package storage

import (
	"context"
	"testing"

	"github.com/ava-labs/hypersdk/chain/chaintest"
	"github.com/stretchr/testify/require"
)

func TestVault_CreditDebit(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := chaintest.NewInMemoryStore()

	balance, err := GetVaultBalance(ctx, mu)
	require.NoError(err)
	require.Zero(balance, "missing vault record reads as zero")

	require.NoError(CreditVault(ctx, mu, 1_000))
	require.NoError(CreditVault(ctx, mu, 500))

	balance, err = GetVaultBalance(ctx, mu)
	require.NoError(err)
	require.Equal(uint64(1_500), balance)

	require.NoError(DebitVault(ctx, mu, 1_200))
	balance, err = GetVaultBalance(ctx, mu)
	require.NoError(err)
	require.Equal(uint64(300), balance)
}

func TestVault_DebitInsufficient(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := chaintest.NewInMemoryStore()

	require.NoError(CreditVault(ctx, mu, 100))
	err := DebitVault(ctx, mu, 101)
	require.ErrorIs(err, ErrInsufficientVaultBalance)

	// Balance unchanged after the failed debit.
	balance, err := GetVaultBalance(ctx, mu)
	require.NoError(err)
	require.Equal(uint64(100), balance)
}
