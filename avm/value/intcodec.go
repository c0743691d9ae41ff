package value

import "fmt"

// IntEncodingLength is the fixed width of the integer wire encoding used by
// the machine-state codecs: one format byte followed by the 32-byte
// big-endian magnitude.
const IntEncodingLength = 33

// intFormatByte is the format byte emitted in front of every encoded
// integer. Readers skip it without interpretation; its semantics belong to
// this codec alone.
const intFormatByte = 0x00

const ErrInvalidIntEncoding = ConstError("invalid integer encoding")

// Encode returns the fixed 33-byte wire encoding of i.
func (i U256) Encode() []byte {
	data := make([]byte, IntEncodingLength)
	data[0] = intFormatByte
	magnitude := i.Bytes32be()
	copy(data[1:], magnitude[:])
	return data
}

// DecodeU256 decodes the fixed-width wire encoding produced by Encode. The
// input must be exactly IntEncodingLength bytes long.
func DecodeU256(data []byte) (U256, error) {
	if len(data) != IntEncodingLength {
		return U256{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidIntEncoding, len(data), IntEncodingLength)
	}
	return NewU256FromBytes(data[1:]...), nil
}
