package actions

import (
	"errors"

	"github.com/chokosabe/betvm/pricing"
)

// Stable error set surfaced by the lifecycle actions. All failures are
// fail-fast: preconditions are checked before any state mutation.
var (
	ErrUninitialized      = errors.New("is not initialized")
	ErrAlreadyInitialized = errors.New("is already initialized")
	ErrUnauthorized       = errors.New("is unauthorized")
	ErrBetEnded           = errors.New("bet has ended")
	ErrInvalidBet         = errors.New("invalid bet")
	ErrBetComplete        = errors.New("bet is complete")
	ErrBetNotEnded        = errors.New("bet has not ended")
	ErrAlreadyClaimed     = errors.New("already claimed")
	ErrBetNotComplete     = errors.New("bet has not completed")
	ErrWrongBet           = errors.New("wrong bet")
	ErrTitleTooLong       = errors.New("title is too long (max 100 characters)")
	ErrDescriptionTooLong = errors.New("description is too long (max 500 characters)")
	ErrTitleEmpty         = errors.New("title cannot be empty")
	ErrDescriptionEmpty   = errors.New("description cannot be empty")
	ErrMathOverflow       = pricing.ErrMathOverflow

	// Account-missing conditions the host runtime cannot surface on its own.
	ErrMarketNotFound = errors.New("market not found")
	ErrEntryNotFound  = errors.New("entry not found")

	// ErrInvalidFeeConfig rejects registry updates whose fee percentages sum
	// to 100% or more, which would drain every winner payout to principal.
	ErrInvalidFeeConfig = errors.New("creator and platform fees must sum below 10000 bps")
)
