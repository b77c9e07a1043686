// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "bet-cli" implements the betvm client operation interface.
package main

import (
	"os"

	"github.com/ava-labs/hypersdk/utils"

	"github.com/chokosabe/betvm/cmd/bet-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		utils.Outf("{{red}}bet-cli exited with error:{{/}} %+v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
