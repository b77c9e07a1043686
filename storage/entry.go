package storage

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	bvmConsts "github.com/chokosabe/betvm/consts"
)

// Entry is the per-(market, participant) record: deposited principal, the
// outcome-token balance minted for it, the chosen side, and the one-shot
// claim flag.
//
// While TokenBalance is positive the side is fixed; deposits on the opposite
// side are rejected. A freshly opened entry has both balances at zero and
// IsYes true, which is meaningless until the first deposit.
type Entry struct {
	User            codec.Address `serialize:"true" json:"user"`
	BetID           uint64        `serialize:"true" json:"betId"`
	DepositedAmount uint64        `serialize:"true" json:"depositedSolAmount"`
	TokenBalance    uint64        `serialize:"true" json:"tokenBalance"`
	IsYes           bool          `serialize:"true" json:"isYes"`
	IsClaimed       bool          `serialize:"true" json:"isClaimed"`
}

// EntryKey generates the state key for a user's entry in a market.
// Format: EntryPrefix | BetID (little-endian) | Address
func EntryKey(betID uint64, user codec.Address) []byte {
	key := make([]byte, 1+8+codec.AddressLen)
	key[0] = EntryPrefix
	binary.LittleEndian.PutUint64(key[1:], betID)
	copy(key[1+8:], user[:])
	return key
}

// GetEntry retrieves a user's entry for a market from the state.
func GetEntry(ctx context.Context, im state.Immutable, betID uint64, user codec.Address) (*Entry, error) {
	valBytes, err := im.GetValue(ctx, EntryKey(betID, user))
	if err != nil {
		return nil, err
	}

	reader := codec.NewReader(valBytes, bvmConsts.MaxEntryDataSize)
	entry := &Entry{}
	if err := codec.LinearCodec.UnmarshalFrom(reader.Packer, entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry for market %d, user %s: %w", betID, user, err)
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("reader error after unmarshaling entry for market %d, user %s: %w", betID, user, err)
	}
	return entry, nil
}

// SetEntry stores a user's entry into the state.
func SetEntry(ctx context.Context, mu state.Mutable, entry *Entry) error {
	writer := codec.NewWriter(0, bvmConsts.MaxEntryDataSize)
	if err := codec.LinearCodec.MarshalInto(entry, writer.Packer); err != nil {
		return fmt.Errorf("failed to marshal entry for market %d, user %s: %w", entry.BetID, entry.User, err)
	}
	if err := writer.Err(); err != nil {
		return fmt.Errorf("writer error after marshaling entry for market %d, user %s: %w", entry.BetID, entry.User, err)
	}
	return mu.Insert(ctx, EntryKey(entry.BetID, entry.User), writer.Bytes())
}
