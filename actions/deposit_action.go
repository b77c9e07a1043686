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
	"github.com/chokosabe/betvm/pricing"
	"github.com/chokosabe/betvm/storage"
)

var _ chain.Action = (*Deposit)(nil)

// Deposit stakes lamports on one side of a market. Outcome tokens are minted
// at the current virtual-reserve price, the side's supply and reserve grow,
// the lamports move into the vault, and a probability point is appended to
// the market's history.
type Deposit struct {
	BetID  uint64 `serialize:"true" json:"betId"`
	IsYes  bool   `serialize:"true" json:"isYes"`
	Amount uint64 `serialize:"true" json:"amount"`
}

func (*Deposit) GetTypeID() uint8 {
	return consts.DepositID
}

// StateKeys implements chain.Action.
func (d *Deposit) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.MarketKey(d.BetID)):       state.Write,
		string(storage.EntryKey(d.BetID, actor)): state.Write,
		string(storage.HistoryKey(d.BetID)):      state.Write,
		string(storage.BalanceKey(actor)):        state.Write,
		string(storage.VaultKey()):               state.Write,
	}
}

// Execute implements chain.Action.
func (d *Deposit) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	timestamp int64,
	actor codec.Address,
	_ ids.ID,
) ([]byte, error) {
	market, err := storage.GetMarket(ctx, mu, d.BetID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("%w: market %d", ErrMarketNotFound, d.BetID)
		}
		return nil, fmt.Errorf("failed to get market %d: %w", d.BetID, err)
	}
	if market.Complete {
		return nil, ErrBetComplete
	}
	if !market.AcceptsDepositsAt(timestamp) {
		return nil, ErrBetEnded
	}
	if d.Amount == 0 {
		return nil, ErrInvalidBet
	}

	entry, err := storage.GetEntry(ctx, mu, d.BetID, actor)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("%w: market %d, user %s", ErrEntryNotFound, d.BetID, actor)
		}
		return nil, fmt.Errorf("failed to get entry for market %d, user %s: %w", d.BetID, actor, err)
	}
	// No side-switching while holding tokens.
	if entry.TokenBalance != 0 && entry.IsYes != d.IsYes {
		return nil, ErrInvalidBet
	}

	// Confirm funds before any write so a shortfall cannot leave partial
	// accounting behind.
	balance, err := storage.GetBalance(ctx, mu, actor)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance for %s: %w", actor, err)
	}
	if balance < d.Amount {
		return nil, fmt.Errorf("%w: balance %d, deposit %d", storage.ErrInsufficientBalance, balance, d.Amount)
	}

	tokenAmount, err := pricing.TokenAmount(d.Amount, d.IsYes, market.YesReserve, market.NoReserve)
	if err != nil {
		return nil, err
	}

	market.TotalSupply += tokenAmount
	market.TotalReserve += d.Amount
	if d.IsYes {
		market.YesSupply += tokenAmount
		market.YesReserve += d.Amount
	} else {
		market.NoSupply += tokenAmount
		market.NoReserve += d.Amount
	}
	if err := storage.SetMarket(ctx, mu, market); err != nil {
		return nil, fmt.Errorf("failed to set market %d: %w", d.BetID, err)
	}

	entry.DepositedAmount += d.Amount
	entry.TokenBalance += tokenAmount
	entry.IsYes = d.IsYes
	if err := storage.SetEntry(ctx, mu, entry); err != nil {
		return nil, fmt.Errorf("failed to set entry for market %d, user %s: %w", d.BetID, actor, err)
	}

	// Move the lamports into the vault.
	if err := storage.DeductBalance(ctx, mu, actor, d.Amount); err != nil {
		return nil, fmt.Errorf("failed to deduct deposit from %s: %w", actor, err)
	}
	if err := storage.CreditVault(ctx, mu, d.Amount); err != nil {
		return nil, fmt.Errorf("failed to credit vault: %w", err)
	}

	history, err := storage.GetHistory(ctx, mu, d.BetID)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("failed to get history for market %d: %w", d.BetID, err)
		}
		// Markets predating the history record get one seeded now.
		history = storage.NewHistory(d.BetID, timestamp)
	}
	history.Append(storage.ProbabilityPoint{
		Timestamp:  timestamp,
		YesReserve: market.YesReserve,
		NoReserve:  market.NoReserve,
	})
	if err := storage.SetHistory(ctx, mu, history); err != nil {
		return nil, fmt.Errorf("failed to set history for market %d: %w", d.BetID, err)
	}

	yesPrice, _ := pricing.Prices(market.YesReserve, market.NoReserve)
	return packTyped(consts.DepositID, &DepositResult{
		User:        actor,
		BetID:       d.BetID,
		SolAmount:   d.Amount,
		TokenAmount: tokenAmount,
		IsYes:       d.IsYes,
		YesPrice:    yesPrice,
		Timestamp:   timestamp,
	})
}

// ComputeUnits implements chain.Action.
func (*Deposit) ComputeUnits(chain.Rules) uint64 {
	return DepositComputeUnits
}

// ValidRange implements chain.Action.
func (*Deposit) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

// Bytes implements chain.Action.
func (d *Deposit) Bytes() []byte {
	return mustPackTyped(consts.DepositID, d)
}

// UnmarshalDeposit parses a Deposit action for the type parser.
func UnmarshalDeposit(b []byte) (chain.Action, error) {
	action := &Deposit{}
	if err := unpackTyped(b, consts.DepositID, action); err != nil {
		return nil, err
	}
	return action, nil
}
