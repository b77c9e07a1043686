package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	"github.com/chokosabe/betvm/consts"
	"github.com/chokosabe/betvm/storage"
)

var _ chain.Action = (*InitRegistry)(nil)

// InitRegistry creates the global registry exactly once. The caller becomes
// the platform owner and the custodial vault record is established.
type InitRegistry struct{}

func (*InitRegistry) GetTypeID() uint8 {
	return consts.InitRegistryID
}

// StateKeys implements chain.Action.
func (*InitRegistry) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{
		string(storage.RegistryKey()): state.Write,
		string(storage.VaultKey()):    state.Write,
	}
}

// Execute implements chain.Action.
func (*InitRegistry) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) ([]byte, error) {
	registry, err := storage.GetRegistry(ctx, mu)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("failed to get registry: %w", err)
	}
	if registry != nil && registry.Initialized {
		return nil, ErrAlreadyInitialized
	}

	registry = &storage.Registry{
		Initialized:    true,
		Owner:          actor,
		InitialPrice:   consts.DefaultInitialPrice,
		ScaleFactor:    consts.DefaultScaleFactor,
		CurrentBetID:   0,
		CreatorFeeBps:  consts.DefaultCreatorFeeBps,
		PlatformFeeBps: consts.DefaultPlatformFeeBps,
	}
	if err := storage.SetRegistry(ctx, mu, registry); err != nil {
		return nil, fmt.Errorf("failed to set registry: %w", err)
	}

	// Establish the vault record so later debits find an account. There is no
	// rent model here; a zero balance is enough.
	if err := storage.SetVaultBalance(ctx, mu, 0); err != nil {
		return nil, fmt.Errorf("failed to seed vault: %w", err)
	}

	return packTyped(consts.InitRegistryID, &InitRegistryResult{Owner: actor})
}

// ComputeUnits implements chain.Action.
func (*InitRegistry) ComputeUnits(chain.Rules) uint64 {
	return InitRegistryComputeUnits
}

// ValidRange implements chain.Action.
func (*InitRegistry) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

// Bytes implements chain.Action.
func (i *InitRegistry) Bytes() []byte {
	return mustPackTyped(consts.InitRegistryID, i)
}

// UnmarshalInitRegistry parses an InitRegistry action for the type parser.
func UnmarshalInitRegistry(b []byte) (chain.Action, error) {
	action := &InitRegistry{}
	if err := unpackTyped(b, consts.InitRegistryID, action); err != nil {
		return nil, err
	}
	return action, nil
}

var _ codec.Typed = (*InitRegistryResult)(nil)

// InitRegistryResult reports the owner installed by a successful init.
type InitRegistryResult struct {
	Owner codec.Address `serialize:"true" json:"owner"`
}

func (*InitRegistryResult) GetTypeID() uint8 {
	return consts.InitRegistryID
}
