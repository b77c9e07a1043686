package actions

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/fees"
	"github.com/ava-labs/hypersdk/state"
	"github.com/stretchr/testify/require"

	"github.com/chokosabe/betvm/consts"
	"github.com/chokosabe/betvm/storage"
)

var _ chain.Rules = (*MockRules)(nil)

// MockRules implements chain.Rules for tests. Every method returns its zero
// value unless the corresponding func field is set.
type MockRules struct {
	GetTimeFunc                       func() int64
	MaxActionGasFunc                  func(action chain.Action) uint64
	MaxBlockGasFunc                   func() uint64
	FetchCustomFunc                   func(key string) (any, bool)
	GetBaseComputeUnitsFunc           func() uint64
	GetChainIDFunc                    func() ids.ID
	GetMaxActionsPerTxFunc            func() uint8
	GetMaxBlockUnitsFunc              func() fees.Dimensions
	GetMinBlockGapFunc                func() int64
	GetMinEmptyBlockGapFunc           func() int64
	GetMinUnitPriceFunc               func() fees.Dimensions
	GetNetworkIDFunc                  func() uint32
	GetSponsorStateKeysMaxChunksFunc  func() []uint16
	GetStorageKeyAllocateUnitsFunc    func() uint64
	GetStorageKeyReadUnitsFunc        func() uint64
	GetStorageKeyWriteUnitsFunc       func() uint64
	GetStorageValueAllocateUnitsFunc  func() uint64
	GetStorageValueReadUnitsFunc      func() uint64
	GetStorageValueWriteUnitsFunc     func() uint64
	GetUnitPriceChangeDenominatorFunc func() fees.Dimensions
	GetValidityWindowFunc             func() int64
	GetWindowTargetUnitsFunc          func() fees.Dimensions
}

func (m *MockRules) GetTime() int64 {
	if m.GetTimeFunc != nil {
		return m.GetTimeFunc()
	}
	return 0
}

func (m *MockRules) MaxActionGas(action chain.Action) uint64 {
	if m.MaxActionGasFunc != nil {
		return m.MaxActionGasFunc(action)
	}
	return 0
}

func (m *MockRules) MaxBlockGas() uint64 {
	if m.MaxBlockGasFunc != nil {
		return m.MaxBlockGasFunc()
	}
	return 0
}

func (m *MockRules) FetchCustom(key string) (any, bool) {
	if m.FetchCustomFunc != nil {
		return m.FetchCustomFunc(key)
	}
	return nil, false
}

func (m *MockRules) GetBaseComputeUnits() uint64 {
	if m.GetBaseComputeUnitsFunc != nil {
		return m.GetBaseComputeUnitsFunc()
	}
	return 0
}

func (m *MockRules) GetChainID() ids.ID {
	if m.GetChainIDFunc != nil {
		return m.GetChainIDFunc()
	}
	return ids.Empty
}

func (m *MockRules) GetMaxActionsPerTx() uint8 {
	if m.GetMaxActionsPerTxFunc != nil {
		return m.GetMaxActionsPerTxFunc()
	}
	return 0
}

func (m *MockRules) GetMaxBlockUnits() fees.Dimensions {
	if m.GetMaxBlockUnitsFunc != nil {
		return m.GetMaxBlockUnitsFunc()
	}
	return fees.Dimensions{}
}

func (m *MockRules) GetMinBlockGap() int64 {
	if m.GetMinBlockGapFunc != nil {
		return m.GetMinBlockGapFunc()
	}
	return 0
}

func (m *MockRules) GetMinEmptyBlockGap() int64 {
	if m.GetMinEmptyBlockGapFunc != nil {
		return m.GetMinEmptyBlockGapFunc()
	}
	return 0
}

func (m *MockRules) GetMinUnitPrice() fees.Dimensions {
	if m.GetMinUnitPriceFunc != nil {
		return m.GetMinUnitPriceFunc()
	}
	return fees.Dimensions{}
}

func (m *MockRules) GetNetworkID() uint32 {
	if m.GetNetworkIDFunc != nil {
		return m.GetNetworkIDFunc()
	}
	return 0
}

func (m *MockRules) GetSponsorStateKeysMaxChunks() []uint16 {
	if m.GetSponsorStateKeysMaxChunksFunc != nil {
		return m.GetSponsorStateKeysMaxChunksFunc()
	}
	return nil
}

func (m *MockRules) GetStorageKeyAllocateUnits() uint64 {
	if m.GetStorageKeyAllocateUnitsFunc != nil {
		return m.GetStorageKeyAllocateUnitsFunc()
	}
	return 0
}

func (m *MockRules) GetStorageKeyReadUnits() uint64 {
	if m.GetStorageKeyReadUnitsFunc != nil {
		return m.GetStorageKeyReadUnitsFunc()
	}
	return 0
}

func (m *MockRules) GetStorageKeyWriteUnits() uint64 {
	if m.GetStorageKeyWriteUnitsFunc != nil {
		return m.GetStorageKeyWriteUnitsFunc()
	}
	return 0
}

func (m *MockRules) GetStorageValueAllocateUnits() uint64 {
	if m.GetStorageValueAllocateUnitsFunc != nil {
		return m.GetStorageValueAllocateUnitsFunc()
	}
	return 0
}

func (m *MockRules) GetStorageValueReadUnits() uint64 {
	if m.GetStorageValueReadUnitsFunc != nil {
		return m.GetStorageValueReadUnitsFunc()
	}
	return 0
}

func (m *MockRules) GetStorageValueWriteUnits() uint64 {
	if m.GetStorageValueWriteUnitsFunc != nil {
		return m.GetStorageValueWriteUnitsFunc()
	}
	return 0
}

func (m *MockRules) GetUnitPriceChangeDenominator() fees.Dimensions {
	if m.GetUnitPriceChangeDenominatorFunc != nil {
		return m.GetUnitPriceChangeDenominatorFunc()
	}
	return fees.Dimensions{}
}

func (m *MockRules) GetValidityWindow() int64 {
	if m.GetValidityWindowFunc != nil {
		return m.GetValidityWindowFunc()
	}
	return 0
}

func (m *MockRules) GetWindowTargetUnits() fees.Dimensions {
	if m.GetWindowTargetUnitsFunc != nil {
		return m.GetWindowTargetUnitsFunc()
	}
	return fees.Dimensions{}
}

// seedRegistry stores an initialized registry with the default economics and
// the given owner.
func seedRegistry(ctx context.Context, t *testing.T, mu state.Mutable, owner codec.Address) *storage.Registry {
	t.Helper()
	registry := &storage.Registry{
		Initialized:    true,
		Owner:          owner,
		InitialPrice:   consts.DefaultInitialPrice,
		ScaleFactor:    consts.DefaultScaleFactor,
		CreatorFeeBps:  consts.DefaultCreatorFeeBps,
		PlatformFeeBps: consts.DefaultPlatformFeeBps,
	}
	require.NoError(t, storage.SetRegistry(ctx, mu, registry))
	return registry
}

// seedMarket stores a fresh market together with its seeded history, bumping
// the registry counter past betID.
func seedMarket(ctx context.Context, t *testing.T, mu state.Mutable, betID uint64, creator, referee codec.Address, endTimestamp int64) *storage.Market {
	t.Helper()
	market := &storage.Market{
		Creator:          creator,
		BetID:            betID,
		Referee:          referee,
		Title:            "test market",
		Description:      "test description",
		ShareUUID:        "0-0-0",
		InitialPrice:     consts.DefaultInitialPrice,
		ScaleFactor:      consts.DefaultScaleFactor,
		CreatedTimestamp: 0,
		EndTimestamp:     endTimestamp,
		Winner:           storage.OutcomeUnresolved,
	}
	require.NoError(t, storage.SetMarket(ctx, mu, market))
	require.NoError(t, storage.SetHistory(ctx, mu, storage.NewHistory(betID, 0)))
	return market
}

// fundEntrant gives the address a balance and an open entry on the market.
func fundEntrant(ctx context.Context, t *testing.T, mu state.Mutable, betID uint64, user codec.Address, balance uint64) {
	t.Helper()
	require.NoError(t, storage.SetBalance(ctx, mu, user, balance))
	require.NoError(t, storage.SetEntry(ctx, mu, &storage.Entry{
		User:  user,
		BetID: betID,
		IsYes: true,
	}))
}
