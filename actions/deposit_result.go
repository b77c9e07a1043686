package actions

import (
	"github.com/ava-labs/hypersdk/codec"

	"github.com/chokosabe/betvm/consts"
)

var _ codec.Typed = (*DepositResult)(nil)

// DepositResult is the deposit event consumed by indexers. YesPrice is the
// post-deposit scaled yes price, handy for charting without replaying the
// pricing curve.
type DepositResult struct {
	User        codec.Address `serialize:"true" json:"user"`
	BetID       uint64        `serialize:"true" json:"betId"`
	SolAmount   uint64        `serialize:"true" json:"solAmount"`
	TokenAmount uint64        `serialize:"true" json:"tokenAmount"`
	IsYes       bool          `serialize:"true" json:"isYes"`
	YesPrice    uint64        `serialize:"true" json:"yesPrice"`
	Timestamp   int64         `serialize:"true" json:"timestamp"`
}

func (*DepositResult) GetTypeID() uint8 {
	return consts.DepositID
}
