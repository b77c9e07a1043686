package actions

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/chain/chaintest"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/stretchr/testify/require"

	"github.com/chokosabe/betvm/consts"
	"github.com/chokosabe/betvm/storage"
)

func TestInitRegistry_Execute_Success(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := chaintest.NewInMemoryStore()
	mr := &MockRules{}

	owner := codec.Address{0x01}

	output, err := (&InitRegistry{}).Execute(ctx, mr, mu, 100, owner, ids.GenerateTestID())
	require.NoError(err)
	require.NotNil(output)

	registry, err := storage.GetRegistry(ctx, mu)
	require.NoError(err)
	require.True(registry.Initialized)
	require.Equal(owner, registry.Owner)
	require.Equal(uint64(consts.DefaultInitialPrice), registry.InitialPrice)
	require.Equal(uint64(consts.DefaultScaleFactor), registry.ScaleFactor)
	require.Equal(uint64(0), registry.CurrentBetID)
	require.Equal(uint64(consts.DefaultCreatorFeeBps), registry.CreatorFeeBps)
	require.Equal(uint64(consts.DefaultPlatformFeeBps), registry.PlatformFeeBps)

	vault, err := storage.GetVaultBalance(ctx, mu)
	require.NoError(err)
	require.Equal(uint64(0), vault)
}

func TestInitRegistry_Execute_Twice(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := chaintest.NewInMemoryStore()
	mr := &MockRules{}

	_, err := (&InitRegistry{}).Execute(ctx, mr, mu, 100, codec.Address{0x01}, ids.GenerateTestID())
	require.NoError(err)

	// Not even the owner can run it again.
	_, err = (&InitRegistry{}).Execute(ctx, mr, mu, 101, codec.Address{0x01}, ids.GenerateTestID())
	require.ErrorIs(err, ErrAlreadyInitialized)

	_, err = (&InitRegistry{}).Execute(ctx, mr, mu, 102, codec.Address{0x02}, ids.GenerateTestID())
	require.ErrorIs(err, ErrAlreadyInitialized)
}

func TestUpdateRegistry_Execute_Success(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := chaintest.NewInMemoryStore()
	mr := &MockRules{}

	owner := codec.Address{0x01}
	newOwner := codec.Address{0x02}
	seedRegistry(ctx, t, mu, owner)

	update := &UpdateRegistry{
		Owner:          newOwner,
		InitialPrice:   42,
		ScaleFactor:    7,
		CreatorFeeBps:  150,
		PlatformFeeBps: 300,
	}
	output, err := update.Execute(ctx, mr, mu, 100, owner, ids.GenerateTestID())
	require.NoError(err)
	require.NotNil(output)

	registry, err := storage.GetRegistry(ctx, mu)
	require.NoError(err)
	require.Equal(newOwner, registry.Owner)
	require.Equal(uint64(42), registry.InitialPrice)
	require.Equal(uint64(7), registry.ScaleFactor)
	require.Equal(uint64(150), registry.CreatorFeeBps)
	require.Equal(uint64(300), registry.PlatformFeeBps)

	// Handover is effective immediately: the old owner is locked out.
	_, err = update.Execute(ctx, mr, mu, 101, owner, ids.GenerateTestID())
	require.ErrorIs(err, ErrUnauthorized)
}

func TestUpdateRegistry_Execute_Uninitialized(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := chaintest.NewInMemoryStore()
	mr := &MockRules{}

	_, err := (&UpdateRegistry{Owner: codec.Address{0x01}}).Execute(ctx, mr, mu, 100, codec.Address{0x01}, ids.GenerateTestID())
	require.ErrorIs(err, ErrUninitialized)
}

func TestUpdateRegistry_Execute_FeeSumTooHigh(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := chaintest.NewInMemoryStore()
	mr := &MockRules{}

	owner := codec.Address{0x01}
	seedRegistry(ctx, t, mu, owner)

	tests := []struct {
		name     string
		creator  uint64
		platform uint64
	}{
		{"sum at denominator", 5_000, 5_000},
		{"single fee over", 10_000, 0},
		// The sum wraps back under the denominator; each operand must be
		// bounded on its own.
		{"wrapping sum", ^uint64(0), 10_000},
		{"wrapping sum reversed", 10_000, ^uint64(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update := &UpdateRegistry{
				Owner:          owner,
				InitialPrice:   consts.DefaultInitialPrice,
				ScaleFactor:    consts.DefaultScaleFactor,
				CreatorFeeBps:  tt.creator,
				PlatformFeeBps: tt.platform,
			}
			_, err := update.Execute(ctx, mr, mu, 100, owner, ids.GenerateTestID())
			require.ErrorIs(err, ErrInvalidFeeConfig)
		})
	}

	// The registry must be untouched after the rejected update.
	registry, err := storage.GetRegistry(ctx, mu)
	require.NoError(err)
	require.Equal(uint64(consts.DefaultCreatorFeeBps), registry.CreatorFeeBps)
	require.Equal(uint64(consts.DefaultPlatformFeeBps), registry.PlatformFeeBps)
}
