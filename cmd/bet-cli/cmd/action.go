// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ava-labs/hypersdk/chain"

	"github.com/chokosabe/betvm/actions"
)

var (
	betIDFlag        uint64
	titleFlag        string
	descriptionFlag  string
	endTimestampFlag int64
	amountFlag       uint64
	yesFlag          bool
)

var actionCmd = &cobra.Command{
	Use: "action",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

// printAction renders an action as JSON plus the wire bytes ready for
// embedding in a transaction.
func printAction(action chain.Action) error {
	pretty, err := json.MarshalIndent(action, "", "  ")
	if err != nil {
		return err
	}
	color.Cyan("%s", pretty)
	fmt.Printf("bytes: %s\n", color.GreenString(hex.EncodeToString(action.Bytes())))
	return nil
}

var createMarketCmd = &cobra.Command{
	Use:   "create-market",
	Short: "Build a CreateMarket action",
	RunE: func(*cobra.Command, []string) error {
		return printAction(&actions.CreateMarket{
			Title:        titleFlag,
			Description:  descriptionFlag,
			EndTimestamp: endTimestampFlag,
		})
	},
}

var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Build a Deposit action",
	RunE: func(*cobra.Command, []string) error {
		return printAction(&actions.Deposit{
			BetID:  betIDFlag,
			IsYes:  yesFlag,
			Amount: amountFlag,
		})
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Build a Resolve action",
	RunE: func(*cobra.Command, []string) error {
		return printAction(&actions.Resolve{
			BetID: betIDFlag,
			IsYes: yesFlag,
		})
	},
}

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Build a Claim action",
	RunE: func(*cobra.Command, []string) error {
		return printAction(&actions.Claim{
			BetID: betIDFlag,
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{depositCmd, resolveCmd, claimCmd} {
		c.Flags().Uint64Var(&betIDFlag, "bet-id", 0, "market identifier")
	}
	createMarketCmd.Flags().StringVar(&titleFlag, "title", "", "market title")
	createMarketCmd.Flags().StringVar(&descriptionFlag, "description", "", "market description")
	createMarketCmd.Flags().Int64Var(&endTimestampFlag, "end-timestamp", -1, "deadline, negative for open-ended")
	depositCmd.Flags().Uint64Var(&amountFlag, "amount", 0, "lamports to stake")
	depositCmd.Flags().BoolVar(&yesFlag, "yes", false, "stake the yes side")
	resolveCmd.Flags().BoolVar(&yesFlag, "yes", false, "declare yes the winner")
}
