package storage

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"
)

const (
	// BalancePrefix is the prefix for storing native lamport balances.
	// Format: BalancePrefix | Address -> uint64
	BalancePrefix byte = 0x0

	// RegistryPrefix is the prefix for the global registry singleton.
	// Format: RegistryPrefix | "main" -> Registry
	RegistryPrefix byte = 0x1

	// MarketPrefix is the prefix for storing market data.
	// Format: MarketPrefix | BetID (uint64, little-endian) -> Market
	MarketPrefix byte = 0x2

	// HistoryPrefix is the prefix for per-market probability histories.
	// Format: HistoryPrefix | BetID (uint64, little-endian) -> History
	HistoryPrefix byte = 0x3

	// EntryPrefix is the prefix for per-(market, user) entries.
	// Format: EntryPrefix | BetID (uint64, little-endian) | Address -> Entry
	EntryPrefix byte = 0x4

	// VaultPrefix is the prefix for the custodial vault balance.
	// Format: VaultPrefix | "sol-vault" -> uint64
	VaultPrefix byte = 0x5
)

var ErrInsufficientBalance = errors.New("insufficient balance")

// BalanceKey returns the state key for an address's native balance.
func BalanceKey(addr codec.Address) []byte {
	key := make([]byte, 1+codec.AddressLen)
	key[0] = BalancePrefix
	copy(key[1:], addr[:])
	return key
}

// GetBalance retrieves the native lamport balance for a given address.
// A missing record reads as zero.
func GetBalance(ctx context.Context, im state.Immutable, addr codec.Address) (uint64, error) {
	valBytes, err := im.GetValue(ctx, BalanceKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(valBytes) == 0 {
		return 0, nil
	}
	reader := codec.NewReader(valBytes, len(valBytes))
	balance := reader.UnpackUint64(true)
	if err := reader.Err(); err != nil {
		return 0, err
	}
	return balance, nil
}

// SetBalance sets the native lamport balance for a given address.
func SetBalance(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) error {
	writer := codec.NewWriter(8, 8)
	writer.PackUint64(amount)
	if err := writer.Err(); err != nil {
		return err
	}
	return mu.Insert(ctx, BalanceKey(addr), writer.Bytes())
}

// DeductBalance subtracts an amount from an address's native balance.
// It returns ErrInsufficientBalance if the deduction is not possible.
func DeductBalance(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) error {
	currentBalance, err := GetBalance(ctx, mu, addr)
	if err != nil {
		return err
	}
	if currentBalance < amount {
		return ErrInsufficientBalance
	}
	return SetBalance(ctx, mu, addr, currentBalance-amount)
}

// AddBalance adds an amount to an address's native balance.
func AddBalance(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) error {
	currentBalance, err := GetBalance(ctx, mu, addr)
	if err != nil {
		return err
	}
	return SetBalance(ctx, mu, addr, currentBalance+amount)
}
