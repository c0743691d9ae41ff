package avm

import (
	"fmt"

	"github.com/avm-project/machine/avm/value"
)

// BlockType tags the variants of BlockReason on the wire.
type BlockType byte

const (
	BlockTypeNot BlockType = iota
	BlockTypeHalt
	BlockTypeError
	BlockTypeBreakpoint
	BlockTypeInbox
	BlockTypeSend
)

func (t BlockType) String() string {
	switch t {
	case BlockTypeNot:
		return "not blocked"
	case BlockTypeHalt:
		return "halted"
	case BlockTypeError:
		return "errored"
	case BlockTypeBreakpoint:
		return "breakpoint"
	case BlockTypeInbox:
		return "inbox"
	case BlockTypeSend:
		return "send"
	default:
		return fmt.Sprintf("BlockType(%d)", t)
	}
}

// WireLength returns the exact encoded size for the given tag, including
// the tag byte itself, and whether the tag is known. Encoded block reasons
// are always exactly this long, which framing code may rely on.
func WireLength(t BlockType) (int, bool) {
	switch t {
	case BlockTypeNot, BlockTypeHalt, BlockTypeError, BlockTypeBreakpoint:
		return 1, true
	case BlockTypeInbox:
		return 1 + value.IntEncodingLength, true
	case BlockTypeSend:
		return 1 + value.IntEncodingLength + TokenTypeLength, true
	default:
		return 0, false
	}
}

// BlockReason describes why a machine is not currently runnable. It is a
// closed set of variants; each carries only the data needed to resume or
// report, and is immutable once constructed.
type BlockReason interface {
	fmt.Stringer
	// BlockType returns the wire tag of the variant.
	BlockType() BlockType
	isBlockReason()
}

// NotBlocked means execution may proceed.
type NotBlocked struct{}

// HaltBlocked means execution has terminated.
type HaltBlocked struct{}

// ErrorBlocked means execution stopped on an unrecoverable machine error.
type ErrorBlocked struct{}

// BreakpointBlocked means execution paused at an instrumented breakpoint.
type BreakpointBlocked struct{}

// InboxBlocked means execution is waiting for an inbox message at or after
// the given sequence index.
type InboxBlocked struct {
	Inbox value.U256
}

// SendBlocked means an outbound transfer of Currency units of Token could
// not be completed yet.
type SendBlocked struct {
	Currency value.U256
	Token    TokenType
}

func (NotBlocked) BlockType() BlockType        { return BlockTypeNot }
func (HaltBlocked) BlockType() BlockType       { return BlockTypeHalt }
func (ErrorBlocked) BlockType() BlockType      { return BlockTypeError }
func (BreakpointBlocked) BlockType() BlockType { return BlockTypeBreakpoint }
func (InboxBlocked) BlockType() BlockType      { return BlockTypeInbox }
func (SendBlocked) BlockType() BlockType       { return BlockTypeSend }

func (NotBlocked) isBlockReason()        {}
func (HaltBlocked) isBlockReason()       {}
func (ErrorBlocked) isBlockReason()      {}
func (BreakpointBlocked) isBlockReason() {}
func (InboxBlocked) isBlockReason()      {}
func (SendBlocked) isBlockReason()       {}

func (NotBlocked) String() string        { return "not blocked" }
func (HaltBlocked) String() string       { return "halted" }
func (ErrorBlocked) String() string      { return "errored" }
func (BreakpointBlocked) String() string { return "stopped at breakpoint" }

func (r InboxBlocked) String() string {
	return fmt.Sprintf("waiting for inbox message %v", r.Inbox)
}

func (r SendBlocked) String() string {
	return fmt.Sprintf("waiting to send %v of token %v", r.Currency, r.Token)
}

// SerializeBlockReason encodes the reason as its tag byte followed by the
// variant payload. The result is exactly WireLength(reason.BlockType())
// bytes long.
func SerializeBlockReason(reason BlockReason) []byte {
	switch r := reason.(type) {
	case NotBlocked, HaltBlocked, ErrorBlocked, BreakpointBlocked:
		return []byte{byte(reason.BlockType())}
	case InboxBlocked:
		data := make([]byte, 0, 1+value.IntEncodingLength)
		data = append(data, byte(BlockTypeInbox))
		data = append(data, r.Inbox.Encode()...)
		return data
	case SendBlocked:
		data := make([]byte, 0, 1+value.IntEncodingLength+TokenTypeLength)
		data = append(data, byte(BlockTypeSend))
		data = append(data, r.Currency.Encode()...)
		data = append(data, r.Token[:]...)
		return data
	default:
		panic(fmt.Sprintf("unknown block reason type %T", reason))
	}
}

// BlockReasonFromBytes decodes a reason from externally supplied bytes. All
// length checks happen before any indexing; trailing bytes beyond the tag's
// wire length are ignored.
func BlockReasonFromBytes(data []byte) (BlockReason, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty buffer", ErrTruncatedBlockReasonData)
	}
	tag := BlockType(data[0])
	length, known := WireLength(tag)
	if !known {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownBlockReasonTag, data[0])
	}
	if len(data) < length {
		return nil, fmt.Errorf("%w: tag %v needs %d bytes, got %d", ErrTruncatedBlockReasonData, tag, length, len(data))
	}

	switch tag {
	case BlockTypeNot:
		return NotBlocked{}, nil
	case BlockTypeHalt:
		return HaltBlocked{}, nil
	case BlockTypeError:
		return ErrorBlocked{}, nil
	case BlockTypeBreakpoint:
		return BreakpointBlocked{}, nil
	case BlockTypeInbox:
		inbox, err := value.DecodeU256(data[1 : 1+value.IntEncodingLength])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncatedBlockReasonData, err)
		}
		return InboxBlocked{Inbox: inbox}, nil
	case BlockTypeSend:
		currency, err := value.DecodeU256(data[1 : 1+value.IntEncodingLength])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncatedBlockReasonData, err)
		}
		var tok TokenType
		copy(tok[:], data[1+value.IntEncodingLength:length])
		return SendBlocked{Currency: currency, Token: tok}, nil
	default:
		panic(fmt.Sprintf("unhandled block type %v", tag))
	}
}
