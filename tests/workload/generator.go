// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package workload

import (
	"context"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hypersdk/api/indexer"
	"github.com/ava-labs/hypersdk/api/jsonrpc"
	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/tests/workload"

	"github.com/chokosabe/betvm/actions"
)

var _ workload.TxGenerator = (*TxGenerator)(nil)

const txCheckInterval = 100 * time.Millisecond

// TxGenerator emits market-creation transactions, one fresh market per tx so
// generated workloads never contend on a single market record.
type TxGenerator struct {
	factory     chain.AuthFactory
	ruleFactory chain.RuleFactory
	count       uint64
}

func NewTxGenerator(authFactory chain.AuthFactory, ruleFactory chain.RuleFactory) *TxGenerator {
	return &TxGenerator{
		factory:     authFactory,
		ruleFactory: ruleFactory,
	}
}

func (g *TxGenerator) GenerateTx(ctx context.Context, uri string) (*chain.Transaction, workload.TxAssertion, error) {
	cli := jsonrpc.NewJSONRPCClient(uri)
	unitPrices, err := cli.UnitPrices(ctx, true)
	if err != nil {
		return nil, nil, err
	}

	g.count++
	tx, err := chain.GenerateTransaction(
		g.ruleFactory,
		unitPrices,
		time.Now().UnixMilli(),
		[]chain.Action{&actions.CreateMarket{
			Title:        "generated market",
			Description:  "load generated",
			EndTimestamp: -1,
		}},
		g.factory,
	)
	if err != nil {
		return nil, nil, err
	}

	return tx, func(ctx context.Context, require *require.Assertions, uri string) {
		confirmTx(ctx, require, uri, tx.GetID())
	}, nil
}

func confirmTx(ctx context.Context, require *require.Assertions, uri string, txID ids.ID) {
	indexerCli := indexer.NewClient(uri)
	success, _, err := indexerCli.WaitForTransaction(ctx, txCheckInterval, txID)
	require.NoError(err)
	require.True(success)
}
