// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/version"
)

const (
	Name   = "betvm"
	Symbol = "BET"

	// MaxMarketDataSize defines the maximum expected size for marshaled market
	// data. Fixed fields plus title (100), description (500) and the share
	// uuid stay under 1 KiB.
	MaxMarketDataSize = 1024

	// MaxHistoryDataSize covers 40 probability points (24 bytes each) plus the
	// record header.
	MaxHistoryDataSize = 1024

	// MaxEntryDataSize covers a single entry record.
	MaxEntryDataSize = 128

	// MaxRegistryDataSize covers the global registry record.
	MaxRegistryDataSize = 128
)

// Action type IDs. Stable; new actions append.
const (
	InitRegistryID uint8 = iota
	UpdateRegistryID
	CreateMarketID
	UpdateMarketID
	OpenEntryID
	DepositID
	ResolveID
	ClaimID
	ClaimCreatorFeeID
)

const (
	// CodecVersionDefault is the default version for marshalling/unmarshalling.
	CodecVersionDefault uint16 = 0

	// MaxActionSize is a 1KB limit for action byte size.
	MaxActionSize = 1024

	// Title and description bounds enforced by create-market and update-market.
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
)

// Registry defaults seeded by init-registry. InitialPrice and ScaleFactor are
// retained for downstream compatibility; active pricing uses virtual reserves.
const (
	DefaultInitialPrice   uint64 = 100_000_000
	DefaultScaleFactor    uint64 = 10_000_000
	DefaultCreatorFeeBps  uint64 = 100 // 1%
	DefaultPlatformFeeBps uint64 = 200 // 2%

	// FeeDenominator converts basis points to a fraction.
	FeeDenominator uint64 = 10_000
)

var ID ids.ID

func init() {
	b := make([]byte, ids.IDLen)
	copy(b, []byte(Name))
	vmID, err := ids.ToID(b)
	if err != nil {
		panic(err)
	}
	ID = vmID
}

var Version = &version.Semantic{
	Major: 0,
	Minor: 0,
	Patch: 1,
}
