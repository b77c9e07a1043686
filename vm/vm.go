// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"errors"

	"github.com/ava-labs/hypersdk/auth"
	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state/metadata"
	"github.com/ava-labs/hypersdk/vm"
	"github.com/ava-labs/hypersdk/vm/defaultvm"

	"github.com/chokosabe/betvm/actions"
	"github.com/chokosabe/betvm/controller"
	"github.com/chokosabe/betvm/genesis"
)

var (
	ActionParser *codec.TypeParser[chain.Action]
	AuthParser   *codec.TypeParser[chain.Auth]
	OutputParser *codec.TypeParser[codec.Typed]

	AuthProvider *auth.AuthProvider

	Parser *chain.TxTypeParser
)

// Setup types
func init() {
	ActionParser = codec.NewTypeParser[chain.Action]()
	AuthParser = codec.NewTypeParser[chain.Auth]()
	OutputParser = codec.NewTypeParser[codec.Typed]()
	AuthProvider = auth.NewAuthProvider()

	if err := auth.WithDefaultPrivateKeyFactories(AuthProvider); err != nil {
		panic(err)
	}

	if err := errors.Join(
		ActionParser.Register(&actions.InitRegistry{}, actions.UnmarshalInitRegistry),
		ActionParser.Register(&actions.UpdateRegistry{}, actions.UnmarshalUpdateRegistry),
		ActionParser.Register(&actions.CreateMarket{}, actions.UnmarshalCreateMarket),
		ActionParser.Register(&actions.UpdateMarket{}, actions.UnmarshalUpdateMarket),
		ActionParser.Register(&actions.OpenEntry{}, actions.UnmarshalOpenEntry),
		ActionParser.Register(&actions.Deposit{}, actions.UnmarshalDeposit),
		ActionParser.Register(&actions.Resolve{}, actions.UnmarshalResolve),
		ActionParser.Register(&actions.Claim{}, actions.UnmarshalClaim),
		ActionParser.Register(&actions.ClaimCreatorFee{}, actions.UnmarshalClaimCreatorFee),

		// Standard Auth Types
		AuthParser.Register(&auth.ED25519{}, auth.UnmarshalED25519),
		AuthParser.Register(&auth.SECP256R1{}, auth.UnmarshalSECP256R1),
		AuthParser.Register(&auth.BLS{}, auth.UnmarshalBLS),

		OutputParser.Register(&actions.InitRegistryResult{}, nil),
		OutputParser.Register(&actions.UpdateRegistryResult{}, nil),
		OutputParser.Register(&actions.CreateMarketResult{}, nil),
		OutputParser.Register(&actions.UpdateMarketResult{}, nil),
		OutputParser.Register(&actions.OpenEntryResult{}, nil),
		OutputParser.Register(&actions.DepositResult{}, nil),
		OutputParser.Register(&actions.ResolveResult{}, nil),
		OutputParser.Register(&actions.ClaimResult{}, nil),
		OutputParser.Register(&actions.ClaimCreatorFeeResult{}, nil),
	); err != nil {
		panic(err)
	}

	Parser = chain.NewTxTypeParser(ActionParser, AuthParser)
}

// New returns a VM with the specified options
func New(options ...vm.Option) (*vm.VM, error) {
	factory := NewFactory()
	return factory.New(options...)
}

func NewFactory() *vm.Factory {
	options := defaultvm.NewDefaultOptions()
	return vm.NewFactory(
		genesis.Factory{},
		controller.New(),
		metadata.NewDefaultManager(),
		ActionParser,
		AuthParser,
		OutputParser,
		auth.DefaultEngines(),
		options...,
	)
}
