package actions

import (
	"math/big"

	"github.com/chokosabe/betvm/consts"
)

// totalReserve returns yes + no reserves widened past uint64.
func totalReserve(yesReserve uint64, noReserve uint64) *big.Int {
	total := new(big.Int).SetUint64(yesReserve)
	return total.Add(total, new(big.Int).SetUint64(noReserve))
}

// feeOf computes total * bps / 10_000 with exact wide arithmetic.
func feeOf(total *big.Int, bps uint64) *big.Int {
	fee := new(big.Int).Mul(total, new(big.Int).SetUint64(bps))
	return fee.Quo(fee, new(big.Int).SetUint64(consts.FeeDenominator))
}

// saturateUint64 narrows a non-negative big value, clamping at the uint64
// maximum the way the fee transfers do.
func saturateUint64(v *big.Int) uint64 {
	if !v.IsUint64() {
		return ^uint64(0)
	}
	return v.Uint64()
}
