// Package pricing implements the virtual-reserve pricing curve used to mint
// outcome tokens against a market's running reserves.
//
// Both sides carry a fixed virtual reserve so that an empty market prices at
// exactly half of Scale and the denominator can never be zero. Depositing into
// the already-favored side pays a higher scaled price and therefore mints
// fewer tokens per lamport.
package pricing

import (
	"errors"
	"math/big"
)

const (
	// Virtual is the notional liquidity added to both sides during price
	// computation (one SOL in lamports).
	Virtual uint64 = 1_000_000_000

	// Scale is the fixed-point probability precision. Scaled prices lie in
	// (0, Scale) and sum to Scale up to integer truncation.
	Scale uint64 = 1_000_000_000
)

// ErrMathOverflow is returned when a computed token amount does not fit in a
// uint64. All intermediate arithmetic is exact 128-bit.
var ErrMathOverflow = errors.New("math overflow")

// Prices returns the scaled yes and no prices for the given reserves.
func Prices(yesReserve uint64, noReserve uint64) (uint64, uint64) {
	vYes := new(big.Int).SetUint64(yesReserve)
	vYes.Add(vYes, new(big.Int).SetUint64(Virtual))
	vNo := new(big.Int).SetUint64(noReserve)
	vNo.Add(vNo, new(big.Int).SetUint64(Virtual))
	denom := new(big.Int).Add(vYes, vNo)

	scale := new(big.Int).SetUint64(Scale)
	yesPrice := new(big.Int).Mul(vYes, scale)
	yesPrice.Quo(yesPrice, denom)
	noPrice := new(big.Int).Mul(vNo, scale)
	noPrice.Quo(noPrice, denom)

	// Each price is strictly below Scale, so the narrowing is always exact.
	return yesPrice.Uint64(), noPrice.Uint64()
}

// TokenAmount computes the number of outcome tokens minted for a deposit on
// the selected side, given the pre-deposit reserves. The deposit amount must
// be positive; the caller enforces that.
func TokenAmount(deposit uint64, isYes bool, yesReserve uint64, noReserve uint64) (uint64, error) {
	yesPrice, noPrice := Prices(yesReserve, noReserve)
	selected := noPrice
	if isYes {
		selected = yesPrice
	}

	amount := new(big.Int).SetUint64(deposit)
	amount.Mul(amount, new(big.Int).SetUint64(Scale))
	amount.Quo(amount, new(big.Int).SetUint64(selected))
	if !amount.IsUint64() {
		return 0, ErrMathOverflow
	}
	return amount.Uint64(), nil
}
