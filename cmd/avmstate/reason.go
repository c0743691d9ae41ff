package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/avm-project/machine/avm"
)

var ReasonCmd = cli.Command{
	Action:    doReason,
	Name:      "reason",
	Usage:     "Decode a serialized block reason",
	ArgsUsage: "<hex-or-file>",
}

func doReason(context *cli.Context) error {
	data, err := readBuffer(context.Args().Get(0))
	if err != nil {
		return err
	}

	reason, err := avm.BlockReasonFromBytes(data)
	if err != nil {
		return err
	}

	length, _ := avm.WireLength(reason.BlockType())
	fmt.Printf("tag 0x%02x (%d bytes): %v\n", byte(reason.BlockType()), length, reason)
	return nil
}
