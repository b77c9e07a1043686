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

var _ chain.Action = (*UpdateMarket)(nil)

// UpdateMarket rewrites selected descriptive fields of an unresolved market.
// Each field travels with an explicit flag so that absent and zero-valued
// updates stay distinguishable on the wire. Reserves, supplies, completion,
// fee flags, and the bet id are immutable.
type UpdateMarket struct {
	BetID uint64 `serialize:"true" json:"betId"`

	UpdateTitle bool   `serialize:"true" json:"updateTitle"`
	Title       string `serialize:"true" json:"title"`

	UpdateDescription bool   `serialize:"true" json:"updateDescription"`
	Description       string `serialize:"true" json:"description"`

	UpdateEndTimestamp bool  `serialize:"true" json:"updateEndTimestamp"`
	EndTimestamp       int64 `serialize:"true" json:"endTimestamp"`

	UpdateReferee bool          `serialize:"true" json:"updateReferee"`
	Referee       codec.Address `serialize:"true" json:"referee"`
}

func (*UpdateMarket) GetTypeID() uint8 {
	return consts.UpdateMarketID
}

// StateKeys implements chain.Action.
func (u *UpdateMarket) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{
		string(storage.RegistryKey()):      state.Read,
		string(storage.MarketKey(u.BetID)): state.Write,
	}
}

// Execute implements chain.Action.
func (u *UpdateMarket) Execute(
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

	market, err := storage.GetMarket(ctx, mu, u.BetID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("%w: market %d", ErrMarketNotFound, u.BetID)
		}
		return nil, fmt.Errorf("failed to get market %d: %w", u.BetID, err)
	}

	if actor != market.Creator && actor != registry.Owner {
		return nil, ErrUnauthorized
	}
	if market.Complete {
		return nil, ErrBetComplete
	}

	if u.UpdateTitle {
		if err := validateTitle(u.Title); err != nil {
			return nil, err
		}
		market.Title = u.Title
	}
	if u.UpdateDescription {
		if err := validateDescription(u.Description); err != nil {
			return nil, err
		}
		market.Description = u.Description
	}
	if u.UpdateEndTimestamp {
		market.EndTimestamp = u.EndTimestamp
	}
	if u.UpdateReferee {
		market.Referee = u.Referee
	}

	if err := storage.SetMarket(ctx, mu, market); err != nil {
		return nil, fmt.Errorf("failed to set market %d: %w", u.BetID, err)
	}

	return packTyped(consts.UpdateMarketID, &UpdateMarketResult{BetID: u.BetID})
}

// ComputeUnits implements chain.Action.
func (*UpdateMarket) ComputeUnits(chain.Rules) uint64 {
	return UpdateMarketComputeUnits
}

// ValidRange implements chain.Action.
func (*UpdateMarket) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

// Bytes implements chain.Action.
func (u *UpdateMarket) Bytes() []byte {
	return mustPackTyped(consts.UpdateMarketID, u)
}

// UnmarshalUpdateMarket parses an UpdateMarket action for the type parser.
func UnmarshalUpdateMarket(b []byte) (chain.Action, error) {
	action := &UpdateMarket{}
	if err := unpackTyped(b, consts.UpdateMarketID, action); err != nil {
		return nil, err
	}
	return action, nil
}

var _ codec.Typed = (*UpdateMarketResult)(nil)

// UpdateMarketResult acknowledges the updated market.
type UpdateMarketResult struct {
	BetID uint64 `serialize:"true" json:"betId"`
}

func (*UpdateMarketResult) GetTypeID() uint8 {
	return consts.UpdateMarketID
}
