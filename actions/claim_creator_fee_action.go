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

var _ chain.Action = (*ClaimCreatorFee)(nil)

// ClaimCreatorFee pays the market creator their fee share once the market has
// settled. One-shot: the claimed flag is set before the transfer.
type ClaimCreatorFee struct {
	BetID uint64 `serialize:"true" json:"betId"`
}

func (*ClaimCreatorFee) GetTypeID() uint8 {
	return consts.ClaimCreatorFeeID
}

// StateKeys implements chain.Action.
func (c *ClaimCreatorFee) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.RegistryKey()):      state.Read,
		string(storage.MarketKey(c.BetID)): state.Write,
		string(storage.BalanceKey(actor)):  state.Write,
		string(storage.VaultKey()):         state.Write,
	}
}

// Execute implements chain.Action.
func (c *ClaimCreatorFee) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	timestamp int64,
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

	market, err := storage.GetMarket(ctx, mu, c.BetID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("%w: market %d", ErrMarketNotFound, c.BetID)
		}
		return nil, fmt.Errorf("failed to get market %d: %w", c.BetID, err)
	}
	if actor != market.Creator {
		return nil, ErrUnauthorized
	}
	if !market.Complete {
		return nil, ErrBetNotComplete
	}
	if !market.DeadlinePassedAt(timestamp) {
		return nil, ErrBetNotEnded
	}
	if market.CreatorFeeClaimed {
		return nil, ErrAlreadyClaimed
	}

	total := totalReserve(market.YesReserve, market.NoReserve)
	fee := saturateUint64(feeOf(total, registry.CreatorFeeBps))

	market.CreatorFeeClaimed = true
	if err := storage.SetMarket(ctx, mu, market); err != nil {
		return nil, fmt.Errorf("failed to set market %d: %w", c.BetID, err)
	}

	if err := storage.DebitVault(ctx, mu, fee); err != nil {
		return nil, fmt.Errorf("failed to debit vault: %w", err)
	}
	if err := storage.AddBalance(ctx, mu, actor, fee); err != nil {
		return nil, fmt.Errorf("failed to credit fee to %s: %w", actor, err)
	}

	return packTyped(consts.ClaimCreatorFeeID, &ClaimCreatorFeeResult{
		Creator:   actor,
		BetID:     c.BetID,
		Fee:       fee,
		Timestamp: timestamp,
	})
}

// ComputeUnits implements chain.Action.
func (*ClaimCreatorFee) ComputeUnits(chain.Rules) uint64 {
	return ClaimCreatorFeeComputeUnits
}

// ValidRange implements chain.Action.
func (*ClaimCreatorFee) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

// Bytes implements chain.Action.
func (c *ClaimCreatorFee) Bytes() []byte {
	return mustPackTyped(consts.ClaimCreatorFeeID, c)
}

// UnmarshalClaimCreatorFee parses a ClaimCreatorFee action for the type parser.
func UnmarshalClaimCreatorFee(b []byte) (chain.Action, error) {
	action := &ClaimCreatorFee{}
	if err := unpackTyped(b, consts.ClaimCreatorFeeID, action); err != nil {
		return nil, err
	}
	return action, nil
}

var _ codec.Typed = (*ClaimCreatorFeeResult)(nil)

// ClaimCreatorFeeResult is the creator-fee payout event.
type ClaimCreatorFeeResult struct {
	Creator   codec.Address `serialize:"true" json:"creator"`
	BetID     uint64        `serialize:"true" json:"betId"`
	Fee       uint64        `serialize:"true" json:"fee"`
	Timestamp int64         `serialize:"true" json:"timestamp"`
}

func (*ClaimCreatorFeeResult) GetTypeID() uint8 {
	return consts.ClaimCreatorFeeID
}
