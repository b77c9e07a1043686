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

var _ chain.Action = (*Resolve)(nil)

// Resolve settles a market by declaring the winning side. Only the market's
// referee or the registry owner may call it, and only after the deadline.
// The platform fee is paid out of the vault to the registry owner
// immediately; the creator fee stays earmarked until ClaimCreatorFee.
type Resolve struct {
	BetID uint64 `serialize:"true" json:"betId"`
	IsYes bool   `serialize:"true" json:"isYes"`
}

func (*Resolve) GetTypeID() uint8 {
	return consts.ResolveID
}

// StateKeys implements chain.Action. The fee recipient is the registry owner,
// known only at execution time, so the whole balance key space is declared.
func (r *Resolve) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{
		string(storage.RegistryKey()):         state.Read,
		string(storage.MarketKey(r.BetID)):    state.Write,
		string([]byte{storage.BalancePrefix}): state.Write,
		string(storage.VaultKey()):            state.Write,
	}
}

// Execute implements chain.Action.
func (r *Resolve) Execute(
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

	market, err := storage.GetMarket(ctx, mu, r.BetID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("%w: market %d", ErrMarketNotFound, r.BetID)
		}
		return nil, fmt.Errorf("failed to get market %d: %w", r.BetID, err)
	}

	if actor != market.Referee && actor != registry.Owner {
		return nil, ErrUnauthorized
	}
	if market.Complete {
		return nil, ErrBetComplete
	}
	if !market.DeadlinePassedAt(timestamp) {
		return nil, ErrBetNotEnded
	}

	market.Complete = true
	if r.IsYes {
		market.Winner = storage.OutcomeYes
	} else {
		market.Winner = storage.OutcomeNo
	}
	// Flag first, transfer second, same as the claim path.
	market.PlatformFeeClaimed = true

	if err := storage.SetMarket(ctx, mu, market); err != nil {
		return nil, fmt.Errorf("failed to set market %d: %w", r.BetID, err)
	}

	fee := saturateUint64(feeOf(totalReserve(market.YesReserve, market.NoReserve), registry.PlatformFeeBps))
	if fee > 0 {
		if err := storage.DebitVault(ctx, mu, fee); err != nil {
			return nil, fmt.Errorf("failed to debit vault: %w", err)
		}
		if err := storage.AddBalance(ctx, mu, registry.Owner, fee); err != nil {
			return nil, fmt.Errorf("failed to credit platform fee to %s: %w", registry.Owner, err)
		}
	}

	return packTyped(consts.ResolveID, &ResolveResult{
		Referee:   actor,
		BetID:     r.BetID,
		Winner:    market.Winner.String(),
		Timestamp: timestamp,
	})
}

// ComputeUnits implements chain.Action.
func (*Resolve) ComputeUnits(chain.Rules) uint64 {
	return ResolveComputeUnits
}

// ValidRange implements chain.Action.
func (*Resolve) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

// Bytes implements chain.Action.
func (r *Resolve) Bytes() []byte {
	return mustPackTyped(consts.ResolveID, r)
}

// UnmarshalResolve parses a Resolve action for the type parser.
func UnmarshalResolve(b []byte) (chain.Action, error) {
	action := &Resolve{}
	if err := unpackTyped(b, consts.ResolveID, action); err != nil {
		return nil, err
	}
	return action, nil
}
