package storage

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	bvmConsts "github.com/chokosabe/betvm/consts"
)

// MaxHistoryPoints bounds the probability history per market. On overflow the
// oldest points are evicted first; downstream analytics must tolerate gaps.
const MaxHistoryPoints = 40

// ProbabilityPoint is a reserve snapshot taken after each deposit.
type ProbabilityPoint struct {
	Timestamp  int64  `serialize:"true" json:"timestamp"`
	YesReserve uint64 `serialize:"true" json:"yesReserve"`
	NoReserve  uint64 `serialize:"true" json:"noReserve"`
}

// History is the bounded, chronological series of probability points for one
// market. Seeded with a single zero point at market creation and appended on
// every successful deposit.
type History struct {
	BetID  uint64             `serialize:"true" json:"betId"`
	Points []ProbabilityPoint `serialize:"true" json:"points"`
}

// NewHistory returns a history seeded with one zero-reserve point.
func NewHistory(betID uint64, createdTimestamp int64) *History {
	return &History{
		BetID: betID,
		Points: []ProbabilityPoint{
			{Timestamp: createdTimestamp},
		},
	}
}

// Append records a point, evicting the oldest points when the cap is
// exceeded.
func (h *History) Append(point ProbabilityPoint) {
	h.Points = append(h.Points, point)
	if overflow := len(h.Points) - MaxHistoryPoints; overflow > 0 {
		h.Points = h.Points[overflow:]
	}
}

// HistoryKey generates the state key for a market's history.
// Format: HistoryPrefix | BetID (little-endian)
func HistoryKey(betID uint64) []byte {
	key := make([]byte, 1+8)
	key[0] = HistoryPrefix
	binary.LittleEndian.PutUint64(key[1:], betID)
	return key
}

// GetHistory retrieves a market's probability history from the state.
func GetHistory(ctx context.Context, im state.Immutable, betID uint64) (*History, error) {
	valBytes, err := im.GetValue(ctx, HistoryKey(betID))
	if err != nil {
		return nil, err
	}

	reader := codec.NewReader(valBytes, bvmConsts.MaxHistoryDataSize)
	history := &History{}
	if err := codec.LinearCodec.UnmarshalFrom(reader.Packer, history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history %d: %w", betID, err)
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("reader error after unmarshaling history %d: %w", betID, err)
	}
	return history, nil
}

// SetHistory stores a market's probability history into the state.
func SetHistory(ctx context.Context, mu state.Mutable, history *History) error {
	writer := codec.NewWriter(0, bvmConsts.MaxHistoryDataSize)
	if err := codec.LinearCodec.MarshalInto(history, writer.Packer); err != nil {
		return fmt.Errorf("failed to marshal history %d: %w", history.BetID, err)
	}
	if err := writer.Err(); err != nil {
		return fmt.Errorf("writer error after marshaling history %d: %w", history.BetID, err)
	}
	return mu.Insert(ctx, HistoryKey(history.BetID), writer.Bytes())
}
