package storage

import (
	"context"
	"fmt"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	bvmConsts "github.com/chokosabe/betvm/consts"
)

// registrySeed is the fixed seed under which the singleton registry lives.
const registrySeed = "main"

// Registry is the process-wide configuration record: platform owner, pricing
// constants handed to new markets, fee percentages in basis points, and the
// monotonic market counter.
type Registry struct {
	Initialized    bool          `serialize:"true" json:"initialized"`
	Owner          codec.Address `serialize:"true" json:"owner"`
	InitialPrice   uint64        `serialize:"true" json:"initialPrice"`
	ScaleFactor    uint64        `serialize:"true" json:"scaleFactor"`
	CurrentBetID   uint64        `serialize:"true" json:"currentBetId"`
	CreatorFeeBps  uint64        `serialize:"true" json:"creatorFeeBps"`
	PlatformFeeBps uint64        `serialize:"true" json:"platformFeeBps"`
}

// RegistryKey returns the state key of the registry singleton.
func RegistryKey() []byte {
	key := make([]byte, 1+len(registrySeed))
	key[0] = RegistryPrefix
	copy(key[1:], registrySeed)
	return key
}

// GetRegistry retrieves the registry. Returns database.ErrNotFound (wrapped)
// when the registry was never initialized.
func GetRegistry(ctx context.Context, im state.Immutable) (*Registry, error) {
	valBytes, err := im.GetValue(ctx, RegistryKey())
	if err != nil {
		return nil, err
	}

	reader := codec.NewReader(valBytes, bvmConsts.MaxRegistryDataSize)
	registry := &Registry{}
	if err := codec.LinearCodec.UnmarshalFrom(reader.Packer, registry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal registry: %w", err)
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("reader error after unmarshaling registry: %w", err)
	}
	return registry, nil
}

// SetRegistry stores the registry singleton.
func SetRegistry(ctx context.Context, mu state.Mutable, registry *Registry) error {
	writer := codec.NewWriter(0, bvmConsts.MaxRegistryDataSize)
	if err := codec.LinearCodec.MarshalInto(registry, writer.Packer); err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := writer.Err(); err != nil {
		return fmt.Errorf("writer error after marshaling registry: %w", err)
	}
	return mu.Insert(ctx, RegistryKey(), writer.Bytes())
}
