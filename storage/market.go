package storage

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	bvmConsts "github.com/chokosabe/betvm/consts"
)

// Outcome is the resolution state of a market.
type Outcome uint8

const (
	OutcomeUnresolved Outcome = 0
	OutcomeYes        Outcome = 1
	OutcomeNo         Outcome = 2
)

// String returns the wire representation of the outcome: the empty string
// while unresolved, "yes" or "no" afterwards.
func (o Outcome) String() string {
	switch o {
	case OutcomeYes:
		return "yes"
	case OutcomeNo:
		return "no"
	default:
		return ""
	}
}

// Market is one prediction question: identity, deadline semantics, the
// two-sided reserves and outcome-token supplies, and resolution state.
//
// A negative EndTimestamp denotes an open-ended market with no deadline; the
// referee may resolve it at any time. A non-negative EndTimestamp is a fixed
// deadline: deposits and entries are forbidden at or after it, resolution and
// claims before it.
type Market struct {
	Creator codec.Address `serialize:"true" json:"creator"`
	BetID   uint64        `serialize:"true" json:"betId"`
	Referee codec.Address `serialize:"true" json:"referee"`

	Title       string `serialize:"true" json:"title"`
	Description string `serialize:"true" json:"description"`
	ShareUUID   string `serialize:"true" json:"shareUuid"`

	// Pricing constants snapshotted from the registry at creation.
	InitialPrice uint64 `serialize:"true" json:"initialPrice"`
	ScaleFactor  uint64 `serialize:"true" json:"scaleFactor"`

	TotalSupply  uint64 `serialize:"true" json:"totalSupply"`
	TotalReserve uint64 `serialize:"true" json:"totalReserve"`
	YesSupply    uint64 `serialize:"true" json:"yesSupply"`
	YesReserve   uint64 `serialize:"true" json:"yesReserve"`
	NoSupply     uint64 `serialize:"true" json:"noSupply"`
	NoReserve    uint64 `serialize:"true" json:"noReserve"`

	CreatedTimestamp int64 `serialize:"true" json:"createdTimestamp"`
	EndTimestamp     int64 `serialize:"true" json:"endTimestamp"`

	Complete           bool    `serialize:"true" json:"complete"`
	Winner             Outcome `serialize:"true" json:"winner"`
	CreatorFeeClaimed  bool    `serialize:"true" json:"creatorFeeClaimed"`
	PlatformFeeClaimed bool    `serialize:"true" json:"platformFeeClaimed"`
}

// IsOpenEnded reports whether the market has no fixed deadline.
func (m *Market) IsOpenEnded() bool {
	return m.EndTimestamp < 0
}

// AcceptsDepositsAt reports whether the deadline still permits deposits and
// entry creation at the given time. Completion is checked separately.
func (m *Market) AcceptsDepositsAt(now int64) bool {
	return m.IsOpenEnded() || now < m.EndTimestamp
}

// DeadlinePassedAt reports whether resolution and claims are permitted at the
// given time. Open-ended markets may resolve at any moment.
func (m *Market) DeadlinePassedAt(now int64) bool {
	return m.IsOpenEnded() || now > m.EndTimestamp
}

// MarketKey generates the state key for a given bet id.
// Format: MarketPrefix | BetID (little-endian)
func MarketKey(betID uint64) []byte {
	key := make([]byte, 1+8)
	key[0] = MarketPrefix
	binary.LittleEndian.PutUint64(key[1:], betID)
	return key
}

// GetMarket retrieves a market by its bet id from the state.
func GetMarket(ctx context.Context, im state.Immutable, betID uint64) (*Market, error) {
	valBytes, err := im.GetValue(ctx, MarketKey(betID))
	if err != nil {
		return nil, err
	}

	reader := codec.NewReader(valBytes, bvmConsts.MaxMarketDataSize)
	market := &Market{}
	if err := codec.LinearCodec.UnmarshalFrom(reader.Packer, market); err != nil {
		return nil, fmt.Errorf("failed to unmarshal market %d: %w", betID, err)
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("reader error after unmarshaling market %d: %w", betID, err)
	}
	return market, nil
}

// SetMarket stores a market into the state.
func SetMarket(ctx context.Context, mu state.Mutable, market *Market) error {
	writer := codec.NewWriter(0, bvmConsts.MaxMarketDataSize)
	if err := codec.LinearCodec.MarshalInto(market, writer.Packer); err != nil {
		return fmt.Errorf("failed to marshal market %d: %w", market.BetID, err)
	}
	if err := writer.Err(); err != nil {
		return fmt.Errorf("writer error after marshaling market %d: %w", market.BetID, err)
	}
	return mu.Insert(ctx, MarketKey(market.BetID), writer.Bytes())
}
