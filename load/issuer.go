// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package load

import (
	"context"
	"errors"
	"time"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hypersdk/api/ws"
	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/fees"
	"github.com/ava-labs/hypersdk/load"

	"github.com/chokosabe/betvm/actions"
)

var (
	ErrTxGeneratorFundsExhausted = errors.New("tx generator funds exhausted")
	ErrIssuerStopped             = errors.New("issuer stopped")

	_ load.Issuer[*chain.Transaction] = (*Issuer)(nil)
)

// Issuer floods a market with small deposits, alternating sides so neither
// pool drains before the generator's funds do.
type Issuer struct {
	authFactory chain.AuthFactory
	currBalance uint64
	ruleFactory chain.RuleFactory
	unitPrices  fees.Dimensions
	betID       uint64
	nextYes     bool
	stopped     bool

	client  *ws.WebSocketClient
	tracker load.Tracker[ids.ID]
}

func NewIssuer(
	authFactory chain.AuthFactory,
	ruleFactory chain.RuleFactory,
	currBalance uint64,
	unitPrices fees.Dimensions,
	betID uint64,
	client *ws.WebSocketClient,
	tracker load.Tracker[ids.ID],
) *Issuer {
	return &Issuer{
		authFactory: authFactory,
		ruleFactory: ruleFactory,
		currBalance: currBalance,
		unitPrices:  unitPrices,
		betID:       betID,
		client:      client,
		tracker:     tracker,
	}
}

func (i *Issuer) GenerateTx(_ context.Context) (*chain.Transaction, error) {
	if i.stopped {
		return nil, ErrIssuerStopped
	}
	i.nextYes = !i.nextYes
	tx, err := chain.GenerateTransaction(
		i.ruleFactory,
		i.unitPrices,
		time.Now().UnixMilli(),
		[]chain.Action{
			&actions.Deposit{
				BetID:  i.betID,
				IsYes:  i.nextYes,
				Amount: 1,
			},
		},
		i.authFactory,
	)
	if err != nil {
		return nil, err
	}
	// Each deposit spends the fee plus the staked lamport.
	cost := tx.MaxFee() + 1
	if cost > i.currBalance {
		return nil, ErrTxGeneratorFundsExhausted
	}
	i.currBalance -= cost
	return tx, nil
}

func (i *Issuer) IssueTx(_ context.Context, tx *chain.Transaction) error {
	if err := i.client.RegisterTx(tx); err != nil {
		return err
	}
	i.tracker.Issue(tx.GetID())
	return nil
}

// Listen blocks until the context is cancelled. Finalization events are
// observed by the shared tracker wired into the websocket client.
func (i *Issuer) Listen(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// Stop marks the issuer closed; subsequent GenerateTx calls error.
func (i *Issuer) Stop() {
	i.stopped = true
}
