package actions

import (
	"github.com/ava-labs/hypersdk/codec"

	"github.com/chokosabe/betvm/consts"
)

var _ codec.Typed = (*CreateMarketResult)(nil)

// CreateMarketResult is the create event consumed by indexers.
type CreateMarketResult struct {
	Creator      codec.Address `serialize:"true" json:"creator"`
	BetID        uint64        `serialize:"true" json:"betId"`
	Title        string        `serialize:"true" json:"title"`
	Description  string        `serialize:"true" json:"description"`
	EndTimestamp int64         `serialize:"true" json:"endTimestamp"`
	Referee      codec.Address `serialize:"true" json:"referee"`
	ShareUUID    string        `serialize:"true" json:"shareUuid"`
	Timestamp    int64         `serialize:"true" json:"timestamp"`
}

func (*CreateMarketResult) GetTypeID() uint8 {
	return consts.CreateMarketID
}
