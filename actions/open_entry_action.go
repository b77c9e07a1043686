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

var _ chain.Action = (*OpenEntry)(nil)

// OpenEntry creates the caller's entry record for a market ahead of the first
// deposit. Idempotent: reopening an existing entry leaves it untouched.
type OpenEntry struct {
	BetID uint64 `serialize:"true" json:"betId"`
}

func (*OpenEntry) GetTypeID() uint8 {
	return consts.OpenEntryID
}

// StateKeys implements chain.Action.
func (o *OpenEntry) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.MarketKey(o.BetID)):       state.Read,
		string(storage.EntryKey(o.BetID, actor)): state.Write,
	}
}

// Execute implements chain.Action.
func (o *OpenEntry) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	timestamp int64,
	actor codec.Address,
	_ ids.ID,
) ([]byte, error) {
	market, err := storage.GetMarket(ctx, mu, o.BetID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("%w: market %d", ErrMarketNotFound, o.BetID)
		}
		return nil, fmt.Errorf("failed to get market %d: %w", o.BetID, err)
	}
	if market.Complete {
		return nil, ErrBetComplete
	}
	if !market.AcceptsDepositsAt(timestamp) {
		return nil, ErrBetEnded
	}

	existing, err := storage.GetEntry(ctx, mu, o.BetID, actor)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("failed to get entry for market %d, user %s: %w", o.BetID, actor, err)
	}
	if existing != nil {
		// Already open; do not reset a live entry.
		return packTyped(consts.OpenEntryID, &OpenEntryResult{User: actor, BetID: o.BetID})
	}

	entry := &storage.Entry{
		User:  actor,
		BetID: o.BetID,
		IsYes: true,
	}
	if err := storage.SetEntry(ctx, mu, entry); err != nil {
		return nil, fmt.Errorf("failed to set entry for market %d, user %s: %w", o.BetID, actor, err)
	}

	return packTyped(consts.OpenEntryID, &OpenEntryResult{User: actor, BetID: o.BetID})
}

// ComputeUnits implements chain.Action.
func (*OpenEntry) ComputeUnits(chain.Rules) uint64 {
	return OpenEntryComputeUnits
}

// ValidRange implements chain.Action.
func (*OpenEntry) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

// Bytes implements chain.Action.
func (o *OpenEntry) Bytes() []byte {
	return mustPackTyped(consts.OpenEntryID, o)
}

// UnmarshalOpenEntry parses an OpenEntry action for the type parser.
func UnmarshalOpenEntry(b []byte) (chain.Action, error) {
	action := &OpenEntry{}
	if err := unpackTyped(b, consts.OpenEntryID, action); err != nil {
		return nil, err
	}
	return action, nil
}

var _ codec.Typed = (*OpenEntryResult)(nil)

// OpenEntryResult acknowledges the opened entry.
type OpenEntryResult struct {
	User  codec.Address `serialize:"true" json:"user"`
	BetID uint64        `serialize:"true" json:"betId"`
}

func (*OpenEntryResult) GetTypeID() uint8 {
	return consts.OpenEntryID
}
