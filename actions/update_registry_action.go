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

var _ chain.Action = (*UpdateRegistry)(nil)

// UpdateRegistry overwrites the registry configuration wholesale. Only the
// current owner may call it; the fee percentages must sum below 100%.
type UpdateRegistry struct {
	Owner          codec.Address `serialize:"true" json:"owner"`
	InitialPrice   uint64        `serialize:"true" json:"initialPrice"`
	ScaleFactor    uint64        `serialize:"true" json:"scaleFactor"`
	CreatorFeeBps  uint64        `serialize:"true" json:"creatorFeeBps"`
	PlatformFeeBps uint64        `serialize:"true" json:"platformFeeBps"`
}

func (*UpdateRegistry) GetTypeID() uint8 {
	return consts.UpdateRegistryID
}

// StateKeys implements chain.Action.
func (*UpdateRegistry) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{
		string(storage.RegistryKey()): state.Write,
	}
}

// Execute implements chain.Action.
func (u *UpdateRegistry) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) ([]byte, error) {
	registry, err := storage.GetRegistry(ctx, mu)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUninitialized
		}
		return nil, fmt.Errorf("failed to get registry: %w", err)
	}
	if !registry.Initialized {
		return nil, ErrUninitialized
	}
	if actor != registry.Owner {
		return nil, ErrUnauthorized
	}
	// Each operand is bounded before summing so the sum cannot wrap.
	if u.CreatorFeeBps >= consts.FeeDenominator ||
		u.PlatformFeeBps >= consts.FeeDenominator ||
		u.CreatorFeeBps+u.PlatformFeeBps >= consts.FeeDenominator {
		return nil, ErrInvalidFeeConfig
	}

	registry.Owner = u.Owner
	registry.InitialPrice = u.InitialPrice
	registry.ScaleFactor = u.ScaleFactor
	registry.CreatorFeeBps = u.CreatorFeeBps
	registry.PlatformFeeBps = u.PlatformFeeBps
	if err := storage.SetRegistry(ctx, mu, registry); err != nil {
		return nil, fmt.Errorf("failed to set registry: %w", err)
	}

	return packTyped(consts.UpdateRegistryID, &UpdateRegistryResult{Owner: registry.Owner})
}

// ComputeUnits implements chain.Action.
func (*UpdateRegistry) ComputeUnits(chain.Rules) uint64 {
	return UpdateRegistryComputeUnits
}

// ValidRange implements chain.Action.
func (*UpdateRegistry) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

// Bytes implements chain.Action.
func (u *UpdateRegistry) Bytes() []byte {
	return mustPackTyped(consts.UpdateRegistryID, u)
}

// UnmarshalUpdateRegistry parses an UpdateRegistry action for the type parser.
func UnmarshalUpdateRegistry(b []byte) (chain.Action, error) {
	action := &UpdateRegistry{}
	if err := unpackTyped(b, consts.UpdateRegistryID, action); err != nil {
		return nil, err
	}
	return action, nil
}

var _ codec.Typed = (*UpdateRegistryResult)(nil)

// UpdateRegistryResult reports the owner after the update.
type UpdateRegistryResult struct {
	Owner codec.Address `serialize:"true" json:"owner"`
}

func (*UpdateRegistryResult) GetTypeID() uint8 {
	return consts.UpdateRegistryID
}
