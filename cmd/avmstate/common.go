package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// readBuffer loads the buffer to inspect from the given argument: the name
// of a file containing hex data, or the hex data itself (with or without
// the 0x prefix).
func readBuffer(arg string) ([]byte, error) {
	if arg == "" {
		return nil, fmt.Errorf("missing buffer argument")
	}
	if content, err := os.ReadFile(arg); err == nil {
		arg = strings.TrimSpace(string(content))
	}
	if !strings.HasPrefix(arg, "0x") {
		arg = "0x" + arg
	}
	data, err := hexutil.Decode(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return data, nil
}
