// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package workload

import (
	"encoding/json"
	"time"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/ava-labs/hypersdk/auth"
	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/crypto/ed25519"
	hgenesis "github.com/ava-labs/hypersdk/genesis"

	"github.com/chokosabe/betvm/consts"
	"github.com/chokosabe/betvm/genesis"
)

const (
	numAuthFactories = 2
	initialBalance   = 10_000_000_000_000
	addressHRP       = "bet"
)

// TestNetworkConfig bundles the genesis document and funded auth factories a
// test network needs.
type TestNetworkConfig struct {
	genesisBytes  []byte
	authFactories []chain.AuthFactory
}

func NewTestNetworkConfig(_ time.Duration) (*TestNetworkConfig, error) {
	authFactories := make([]chain.AuthFactory, numAuthFactories)
	allocations := make([]genesis.Allocation, numAuthFactories)
	for i := range authFactories {
		priv, err := ed25519.GeneratePrivateKey()
		if err != nil {
			return nil, err
		}
		authFactories[i] = auth.NewED25519Factory(priv)
		addr, err := encodeBech32Address(auth.NewED25519Address(priv.PublicKey()))
		if err != nil {
			return nil, err
		}
		allocations[i] = genesis.Allocation{Address: addr, Balance: initialBalance}
	}

	gen := genesis.GetDefault()
	gen.Allocations = allocations
	genesisBytes, err := json.Marshal(gen)
	if err != nil {
		return nil, err
	}

	return &TestNetworkConfig{
		genesisBytes:  genesisBytes,
		authFactories: authFactories,
	}, nil
}

func (c *TestNetworkConfig) GenesisBytes() []byte {
	return c.genesisBytes
}

func (c *TestNetworkConfig) AuthFactories() []chain.AuthFactory {
	return c.authFactories
}

func (c *TestNetworkConfig) GenesisAndRuleFactory() hgenesis.GenesisAndRuleFactory {
	return genesis.Factory{}
}

func (c *TestNetworkConfig) Name() string {
	return consts.Name
}

func encodeBech32Address(addr codec.Address) (string, error) {
	data5bit, err := bech32.ConvertBits(addr[:], 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(addressHRP, data5bit)
}
