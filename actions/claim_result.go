package actions

import (
	"github.com/ava-labs/hypersdk/codec"

	"github.com/chokosabe/betvm/consts"
)

var _ codec.Typed = (*ClaimResult)(nil)

// ClaimResult is the payout event consumed by indexers. Payout is always
// Principal + Profit.
type ClaimResult struct {
	User      codec.Address `serialize:"true" json:"user"`
	BetID     uint64        `serialize:"true" json:"betId"`
	Payout    uint64        `serialize:"true" json:"payout"`
	Principal uint64        `serialize:"true" json:"principal"`
	Profit    uint64        `serialize:"true" json:"profit"`
	Timestamp int64         `serialize:"true" json:"timestamp"`
}

func (*ClaimResult) GetTypeID() uint8 {
	return consts.ClaimID
}
