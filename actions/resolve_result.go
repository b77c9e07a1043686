package actions

import (
	"github.com/ava-labs/hypersdk/codec"

	"github.com/chokosabe/betvm/consts"
)

var _ codec.Typed = (*ResolveResult)(nil)

// ResolveResult is the settlement event consumed by indexers.
type ResolveResult struct {
	Referee   codec.Address `serialize:"true" json:"referee"`
	BetID     uint64        `serialize:"true" json:"betId"`
	Winner    string        `serialize:"true" json:"winner"`
	Timestamp int64         `serialize:"true" json:"timestamp"`
}

func (*ResolveResult) GetTypeID() uint8 {
	return consts.ResolveID
}
