package genesis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/x/merkledb"
	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	hgenesis "github.com/ava-labs/hypersdk/genesis"
	"github.com/ava-labs/hypersdk/state"
	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/chokosabe/betvm/consts"
	"github.com/chokosabe/betvm/storage"
)

var (
	_ hgenesis.Genesis               = (*Genesis)(nil)
	_ hgenesis.GenesisAndRuleFactory = (*Factory)(nil)
)

// Factory loads a BetVM genesis and pairs it with the default rule set.
type Factory struct{}

func (Factory) Load(genesisBytes []byte, _ []byte, networkID uint32, chainID ids.ID) (hgenesis.Genesis, chain.RuleFactory, error) {
	g := &Genesis{}
	if err := g.Load(genesisBytes); err != nil {
		return nil, nil, err
	}
	rules := hgenesis.NewDefaultRules()
	rules.NetworkID = networkID
	rules.ChainID = chainID
	return g, &hgenesis.ImmutableRuleFactory{Rules: rules}, nil
}

// RegistryConfig seeds the global registry at genesis. A zero Owner leaves
// the registry unclaimed until the first InitRegistry transaction.
type RegistryConfig struct {
	Owner          string `json:"owner"` // Bech32 address, optional
	InitialPrice   uint64 `json:"initialPrice"`
	ScaleFactor    uint64 `json:"scaleFactor"`
	CreatorFeeBps  uint64 `json:"creatorFeeBps"`
	PlatformFeeBps uint64 `json:"platformFeeBps"`
}

// Allocation funds an address at genesis.
type Allocation struct {
	Address string `json:"address"` // Bech32 address
	Balance uint64 `json:"balance"`
}

// Genesis is the genesis data for BetVM.
type Genesis struct {
	Magic     uint64 `json:"magic"`
	Timestamp int64  `json:"timestamp"` // Unix timestamp for the genesis block

	Registry    *RegistryConfig `json:"registry,omitempty"`
	Allocations []Allocation    `json:"allocations"`
}

func (g *Genesis) Load(raw []byte) error {
	return json.Unmarshal(raw, g)
}

func (g *Genesis) GetMagic() uint64 {
	return g.Magic
}

func (g *Genesis) GetTimestamp() int64 {
	return g.Timestamp
}

func (g *Genesis) GetStateBranchFactor() merkledb.BranchFactor {
	return merkledb.BranchFactor16
}

func (g *Genesis) InitializeState(ctx context.Context, _ trace.Tracer, mu state.Mutable, bh chain.BalanceHandler) error {
	for _, alloc := range g.Allocations {
		addr, err := decodeBech32Address(alloc.Address)
		if err != nil {
			return err
		}
		if err := bh.AddBalance(ctx, addr, mu, alloc.Balance); err != nil {
			return err
		}
	}

	if g.Registry != nil {
		registry := &storage.Registry{
			Initialized:    true,
			InitialPrice:   g.Registry.InitialPrice,
			ScaleFactor:    g.Registry.ScaleFactor,
			CreatorFeeBps:  g.Registry.CreatorFeeBps,
			PlatformFeeBps: g.Registry.PlatformFeeBps,
		}
		if g.Registry.Owner != "" {
			owner, err := decodeBech32Address(g.Registry.Owner)
			if err != nil {
				return err
			}
			registry.Owner = owner
		}
		if err := storage.SetRegistry(ctx, mu, registry); err != nil {
			return err
		}
		if err := storage.SetVaultBalance(ctx, mu, 0); err != nil {
			return err
		}
	}
	return nil
}

func decodeBech32Address(s string) (codec.Address, error) {
	var addr codec.Address
	_, data5bit, err := bech32.Decode(s)
	if err != nil {
		return addr, fmt.Errorf("failed to decode bech32 address %s: %w", s, err)
	}
	data8bit, err := bech32.ConvertBits(data5bit, 5, 8, false)
	if err != nil {
		return addr, fmt.Errorf("failed to convert bech32 data bits for address %s: %w", s, err)
	}
	if len(data8bit) > codec.AddressLen {
		return addr, fmt.Errorf("decoded address %s is too long: got %d bytes, expected max %d", s, len(data8bit), codec.AddressLen)
	}
	copy(addr[:], data8bit)
	return addr, nil
}

func GetDefault() *Genesis {
	return &Genesis{
		Magic:     12345,
		Timestamp: time.Now().Unix(),
		Registry: &RegistryConfig{
			InitialPrice:   consts.DefaultInitialPrice,
			ScaleFactor:    consts.DefaultScaleFactor,
			CreatorFeeBps:  consts.DefaultCreatorFeeBps,
			PlatformFeeBps: consts.DefaultPlatformFeeBps,
		},
		Allocations: []Allocation{},
	}
}
