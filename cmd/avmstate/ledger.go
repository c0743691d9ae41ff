package main

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/dsnet/golib/unitconv"
	"github.com/urfave/cli/v2"

	"github.com/avm-project/machine/avm"
)

var LedgerCmd = cli.Command{
	Action:    doLedger,
	Name:      "ledger",
	Usage:     "Decode a serialized balance ledger",
	ArgsUsage: "<hex-or-file>",
}

func doLedger(context *cli.Context) error {
	data, err := readBuffer(context.Args().Get(0))
	if err != nil {
		return err
	}

	tracker, err := avm.BalanceTrackerFromBytes(data)
	if err != nil {
		return err
	}

	balances := tracker.Balances()
	fmt.Printf("ledger buffer: %sB, %d entries\n",
		unitconv.FormatPrefix(float64(len(data)), unitconv.SI, 0), len(balances))

	tokens := make([]avm.TokenType, 0, len(balances))
	for tok := range balances {
		tokens = append(tokens, tok)
	}
	slices.SortFunc(tokens, func(a, b avm.TokenType) int {
		return bytes.Compare(a[:], b[:])
	})
	for _, tok := range tokens {
		fmt.Printf("  %v: %v\n", tok, balances[tok])
	}
	return nil
}
