package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"
)

// vaultSeed is the fixed seed of the single custodial account holding all
// deposited lamports across markets. Funds are tracked per market by the
// market's reserves; the vault only custodies them.
const vaultSeed = "sol-vault"

var ErrInsufficientVaultBalance = errors.New("insufficient funds in vault")

// VaultKey returns the state key of the custodial vault balance.
func VaultKey() []byte {
	key := make([]byte, 1+len(vaultSeed))
	key[0] = VaultPrefix
	copy(key[1:], vaultSeed)
	return key
}

// GetVaultBalance returns the vault's lamport balance. A missing record reads
// as zero.
func GetVaultBalance(ctx context.Context, im state.Immutable) (uint64, error) {
	valBytes, err := im.GetValue(ctx, VaultKey())
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get vault balance: %w", err)
	}
	if len(valBytes) == 0 {
		return 0, nil
	}
	reader := codec.NewReader(valBytes, len(valBytes))
	balance := reader.UnpackUint64(true)
	if err := reader.Err(); err != nil {
		return 0, fmt.Errorf("failed to unpack vault balance: %w", err)
	}
	return balance, nil
}

// SetVaultBalance stores the vault's lamport balance.
func SetVaultBalance(ctx context.Context, mu state.Mutable, amount uint64) error {
	writer := codec.NewWriter(8, 8)
	writer.PackUint64(amount)
	if err := writer.Err(); err != nil {
		return fmt.Errorf("failed to pack vault balance: %w", err)
	}
	return mu.Insert(ctx, VaultKey(), writer.Bytes())
}

// CreditVault adds deposited lamports to the vault.
func CreditVault(ctx context.Context, mu state.Mutable, amount uint64) error {
	balance, err := GetVaultBalance(ctx, mu)
	if err != nil {
		return err
	}
	return SetVaultBalance(ctx, mu, balance+amount)
}

// DebitVault removes lamports from the vault for a payout or fee transfer.
// Returns ErrInsufficientVaultBalance if the vault cannot cover the amount.
func DebitVault(ctx context.Context, mu state.Mutable, amount uint64) error {
	balance, err := GetVaultBalance(ctx, mu)
	if err != nil {
		return err
	}
	if balance < amount {
		return fmt.Errorf("%w: vault has %d, needs %d", ErrInsufficientVaultBalance, balance, amount)
	}
	return SetVaultBalance(ctx, mu, balance-amount)
}
