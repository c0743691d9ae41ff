package avm

import (
	"encoding/binary"
	"fmt"

	"github.com/avm-project/machine/avm/value"
)

const (
	ledgerHeaderLength = 4
	ledgerEntryLength  = TokenTypeLength + value.IntEncodingLength
)

// SerializeBalances encodes the fungible balance entries as a flat buffer:
// a 4-byte big-endian entry count followed by one 54-byte record per entry
// (21-byte token identifier + 33-byte amount). Non-fungible holdings are
// not part of this encoding; restoring a tracker from it loses them.
func (t *BalanceTracker) SerializeBalances() []byte {
	data := make([]byte, ledgerHeaderLength, ledgerHeaderLength+len(t.tokens)*ledgerEntryLength)
	binary.BigEndian.PutUint32(data, uint32(len(t.tokens)))
	for tok, amount := range t.tokens {
		data = append(data, tok[:]...)
		data = append(data, amount.Encode()...)
	}
	return data
}

// BalanceTrackerFromBytes restores a tracker from a buffer produced by
// SerializeBalances. The buffer length is the authoritative framing: entries
// are consumed until the buffer is exhausted, and the header count is
// cross-checked against the number of entries found. Any disagreement fails
// with ErrMalformedLedgerData; malformed input never panics or reads out of
// bounds.
func BalanceTrackerFromBytes(data []byte) (*BalanceTracker, error) {
	if len(data) < ledgerHeaderLength {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrMalformedLedgerData, len(data), ledgerHeaderLength)
	}
	body := data[ledgerHeaderLength:]
	if len(body)%ledgerEntryLength != 0 {
		return nil, fmt.Errorf("%w: %d bytes after header, not a multiple of %d", ErrMalformedLedgerData, len(body), ledgerEntryLength)
	}
	entries := len(body) / ledgerEntryLength
	if count := binary.BigEndian.Uint32(data); count != uint32(entries) {
		return nil, fmt.Errorf("%w: header announces %d entries, buffer holds %d", ErrMalformedLedgerData, count, entries)
	}

	tracker := NewBalanceTracker()
	for i := 0; i < entries; i++ {
		entry := body[i*ledgerEntryLength : (i+1)*ledgerEntryLength]
		var tok TokenType
		copy(tok[:], entry[:TokenTypeLength])
		amount, err := value.DecodeU256(entry[TokenTypeLength:])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedLedgerData, err)
		}
		if tok.IsToken() {
			// Duplicate entries for the same token are accumulated, but a
			// crafted buffer must not be able to trip the fatal overflow
			// check in Add.
			sum, overflow := tracker.tokens[tok].AddOverflow(amount)
			if overflow {
				return nil, fmt.Errorf("%w: balance overflow for token %v", ErrMalformedLedgerData, tok)
			}
			tracker.tokens[tok] = sum
		} else {
			tracker.Add(tok, amount)
		}
	}
	return tracker, nil
}
