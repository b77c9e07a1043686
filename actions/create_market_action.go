package actions

import (
	"context"
	"encoding/binary"
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

var _ chain.Action = (*CreateMarket)(nil)

// CreateMarket opens a new two-sided market. The bet id is taken from the
// registry counter, pricing constants are snapshotted, and the probability
// history is seeded with a single zero point.
type CreateMarket struct {
	Title       string `serialize:"true" json:"title"`
	Description string `serialize:"true" json:"description"`
	// EndTimestamp is the unix deadline; a negative value creates an
	// open-ended market resolvable by the referee at any time.
	EndTimestamp int64         `serialize:"true" json:"endTimestamp"`
	Referee      codec.Address `serialize:"true" json:"referee"`
}

func (*CreateMarket) GetTypeID() uint8 {
	return consts.CreateMarketID
}

// StateKeys implements chain.Action. The market and history keys depend on
// the registry counter, so the whole market key space is declared.
func (*CreateMarket) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{
		string(storage.RegistryKey()):         state.Write,
		string([]byte{storage.MarketPrefix}):  state.Write,
		string([]byte{storage.HistoryPrefix}): state.Write,
	}
}

func validateTitle(title string) error {
	if len(title) == 0 {
		return ErrTitleEmpty
	}
	if len(title) > consts.MaxTitleLen {
		return ErrTitleTooLong
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) == 0 {
		return ErrDescriptionEmpty
	}
	if len(description) > consts.MaxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}

// Execute implements chain.Action.
func (c *CreateMarket) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	timestamp int64,
	actor codec.Address,
	actionID ids.ID,
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

	if err := validateTitle(c.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(c.Description); err != nil {
		return nil, err
	}

	betID := registry.CurrentBetID

	// Shareable identifier: bet id, creation time, and a component unique to
	// the creating transaction, hex-joined.
	shareUUID := fmt.Sprintf("%x-%x-%x", betID, timestamp, binary.BigEndian.Uint64(actionID[:8]))

	market := &storage.Market{
		Creator:          actor,
		BetID:            betID,
		Referee:          c.Referee,
		Title:            c.Title,
		Description:      c.Description,
		ShareUUID:        shareUUID,
		InitialPrice:     registry.InitialPrice,
		ScaleFactor:      registry.ScaleFactor,
		CreatedTimestamp: timestamp,
		EndTimestamp:     c.EndTimestamp,
		Winner:           storage.OutcomeUnresolved,
	}
	if err := storage.SetMarket(ctx, mu, market); err != nil {
		return nil, fmt.Errorf("failed to set new market %d: %w", betID, err)
	}

	if err := storage.SetHistory(ctx, mu, storage.NewHistory(betID, timestamp)); err != nil {
		return nil, fmt.Errorf("failed to seed history for market %d: %w", betID, err)
	}

	registry.CurrentBetID++
	if err := storage.SetRegistry(ctx, mu, registry); err != nil {
		return nil, fmt.Errorf("failed to advance bet counter: %w", err)
	}

	return packTyped(consts.CreateMarketID, &CreateMarketResult{
		Creator:      actor,
		BetID:        betID,
		Title:        c.Title,
		Description:  c.Description,
		EndTimestamp: c.EndTimestamp,
		Referee:      c.Referee,
		ShareUUID:    shareUUID,
		Timestamp:    timestamp,
	})
}

// ComputeUnits implements chain.Action.
func (*CreateMarket) ComputeUnits(chain.Rules) uint64 {
	return CreateMarketComputeUnits
}

// ValidRange implements chain.Action.
func (*CreateMarket) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

// Bytes implements chain.Action.
func (c *CreateMarket) Bytes() []byte {
	return mustPackTyped(consts.CreateMarketID, c)
}

// UnmarshalCreateMarket parses a CreateMarket action for the type parser.
func UnmarshalCreateMarket(b []byte) (chain.Action, error) {
	action := &CreateMarket{}
	if err := unpackTyped(b, consts.CreateMarketID, action); err != nil {
		return nil, err
	}
	return action, nil
}
