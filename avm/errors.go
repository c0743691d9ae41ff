package avm

import "github.com/avm-project/machine/avm/value"

// ConstError is re-exported for convenience when defining error constants
// against this package.
type ConstError = value.ConstError

const (
	// ErrPreconditionViolation is the panic payload raised when a
	// kind-specific operation is invoked on the wrong kind of token
	// identifier. This is a bug in the caller, not a data error.
	ErrPreconditionViolation = ConstError("operation applied to wrong token kind")

	// ErrMalformedLedgerData reports a ledger buffer whose framing does not
	// match the declared layout.
	ErrMalformedLedgerData = ConstError("malformed ledger data")

	// ErrTruncatedBlockReasonData reports a block-reason buffer shorter than
	// its tag requires.
	ErrTruncatedBlockReasonData = ConstError("truncated block reason data")

	// ErrUnknownBlockReasonTag reports a block-reason buffer starting with a
	// tag outside the known set.
	ErrUnknownBlockReasonTag = ConstError("unknown block reason tag")
)
