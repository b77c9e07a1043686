package actions

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	"github.com/chokosabe/betvm/consts"
	"github.com/chokosabe/betvm/storage"
)

var _ chain.Action = (*Claim)(nil)

// Claim pays out a winning position on a settled market. The payout is the
// caller's principal plus a pro-rata share of the losing side's pool after
// both fees are carved out. The claimed flag is set before any lamports move
// so a partial failure can never pay twice.
type Claim struct {
	BetID uint64 `serialize:"true" json:"betId"`
}

func (*Claim) GetTypeID() uint8 {
	return consts.ClaimID
}

// StateKeys implements chain.Action.
func (c *Claim) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.RegistryKey()):            state.Read,
		string(storage.MarketKey(c.BetID)):       state.Read,
		string(storage.EntryKey(c.BetID, actor)): state.Write,
		string(storage.BalanceKey(actor)):        state.Write,
		string(storage.VaultKey()):               state.Write,
	}
}

// Execute implements chain.Action.
func (c *Claim) Execute(
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
	if !market.Complete {
		return nil, ErrBetNotComplete
	}
	if !market.DeadlinePassedAt(timestamp) {
		return nil, ErrBetNotEnded
	}

	entry, err := storage.GetEntry(ctx, mu, c.BetID, actor)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("%w: market %d, user %s", ErrEntryNotFound, c.BetID, actor)
		}
		return nil, fmt.Errorf("failed to get entry for market %d, user %s: %w", c.BetID, actor, err)
	}
	if entry.IsClaimed {
		return nil, ErrAlreadyClaimed
	}
	if entry.BetID != c.BetID {
		return nil, ErrWrongBet
	}

	wonYes := market.Winner == storage.OutcomeYes
	if entry.IsYes != wonYes {
		return nil, ErrWrongBet
	}
	if entry.TokenBalance == 0 {
		return nil, ErrWrongBet
	}

	winningSupply := market.NoSupply
	winningReserve := market.NoReserve
	if wonYes {
		winningSupply = market.YesSupply
		winningReserve = market.YesReserve
	}
	if winningSupply == 0 {
		return nil, ErrMathOverflow
	}

	total := totalReserve(market.YesReserve, market.NoReserve)
	creatorFee := feeOf(total, registry.CreatorFeeBps)
	platformFee := feeOf(total, registry.PlatformFeeBps)

	// Losing pool net of fees; floors at zero when fees exceed it.
	profit := new(big.Int).Set(total)
	profit.Sub(profit, new(big.Int).SetUint64(winningReserve))
	profit.Sub(profit, creatorFee)
	profit.Sub(profit, platformFee)
	if profit.Sign() < 0 {
		profit.SetUint64(0)
	}

	share := new(big.Int).SetUint64(entry.TokenBalance)
	share.Mul(share, profit)
	share.Quo(share, new(big.Int).SetUint64(winningSupply))
	if !share.IsUint64() {
		return nil, ErrMathOverflow
	}

	wide := new(big.Int).SetUint64(entry.DepositedAmount)
	wide.Add(wide, share)
	if !wide.IsUint64() {
		return nil, ErrMathOverflow
	}
	payout := wide.Uint64()

	// Flag first, transfer second.
	entry.IsClaimed = true
	if err := storage.SetEntry(ctx, mu, entry); err != nil {
		return nil, fmt.Errorf("failed to set entry for market %d, user %s: %w", c.BetID, actor, err)
	}

	if err := storage.DebitVault(ctx, mu, payout); err != nil {
		return nil, fmt.Errorf("failed to debit vault: %w", err)
	}
	if err := storage.AddBalance(ctx, mu, actor, payout); err != nil {
		return nil, fmt.Errorf("failed to credit payout to %s: %w", actor, err)
	}

	return packTyped(consts.ClaimID, &ClaimResult{
		User:      actor,
		BetID:     c.BetID,
		Payout:    payout,
		Principal: entry.DepositedAmount,
		Profit:    share.Uint64(),
		Timestamp: timestamp,
	})
}

// ComputeUnits implements chain.Action.
func (*Claim) ComputeUnits(chain.Rules) uint64 {
	return ClaimComputeUnits
}

// ValidRange implements chain.Action.
func (*Claim) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

// Bytes implements chain.Action.
func (c *Claim) Bytes() []byte {
	return mustPackTyped(consts.ClaimID, c)
}

// UnmarshalClaim parses a Claim action for the type parser.
func UnmarshalClaim(b []byte) (chain.Action, error) {
	action := &Claim{}
	if err := unpackTyped(b, consts.ClaimID, action); err != nil {
		return nil, err
	}
	return action, nil
}
