package actions

import (
	"github.com/ava-labs/hypersdk/chain"

	"github.com/chokosabe/betvm/consts"
)

// ActionRegistry maps wire type IDs to their action structs.
var ActionRegistry = map[byte]chain.Action{
	consts.InitRegistryID:    &InitRegistry{},
	consts.UpdateRegistryID:  &UpdateRegistry{},
	consts.CreateMarketID:    &CreateMarket{},
	consts.UpdateMarketID:    &UpdateMarket{},
	consts.OpenEntryID:       &OpenEntry{},
	consts.DepositID:         &Deposit{},
	consts.ResolveID:         &Resolve{},
	consts.ClaimID:           &Claim{},
	consts.ClaimCreatorFeeID: &ClaimCreatorFee{},
}
