package avm

import (
	"encoding/hex"
	"fmt"
	"strings"

	"pgregory.net/rand"

	"github.com/avm-project/machine/avm/value"
)

// TokenTypeLength is the wire width of a token identifier.
const TokenTypeLength = 21

// TokenType identifies a class of tokens. The last byte is the
// discriminator: zero marks a fungible token, any other value a
// non-fungible asset class.
type TokenType [TokenTypeLength]byte

// IsToken returns true iff t identifies a fungible token.
func (t TokenType) IsToken() bool {
	return t[TokenTypeLength-1] == 0
}

// Value returns the integer form of t used by the generic value system: the
// 21 identifier bytes become the most significant bytes of a 32-byte
// big-endian integer, the low 11 bytes are zero. This alignment is a wire
// contract, not an internal choice.
func (t TokenType) Value() value.U256 {
	var data [32]byte
	copy(data[:TokenTypeLength], t[:])
	return value.NewU256FromBytes(data[:]...)
}

// TokenTypeFromValue recovers a TokenType from its integer form by taking
// the most significant 21 bytes of the big-endian representation. The low
// 88 bits of the input are dropped, so the conversion is lossy unless they
// are zero; TokenType -> integer -> TokenType always round-trips.
func TokenTypeFromValue(v value.U256) TokenType {
	data := v.Bytes32be()
	var t TokenType
	copy(t[:], data[:TokenTypeLength])
	return t
}

// RandomTokenType generates a random token identifier. With makeFungible
// the discriminator byte is forced to zero.
func RandomTokenType(rnd *rand.Rand, makeFungible bool) TokenType {
	t := TokenType{}
	rnd.Read(t[:]) // never returns an error
	if makeFungible {
		t[TokenTypeLength-1] = 0
	} else if t[TokenTypeLength-1] == 0 {
		t[TokenTypeLength-1] = 1
	}
	return t
}

func (t TokenType) String() string {
	return fmt.Sprintf("0x%x", t[:])
}

func (t TokenType) MarshalText() ([]byte, error) {
	return bytesToText(t[:])
}

func (t *TokenType) UnmarshalText(data []byte) error {
	return textToBytes(t[:], data)
}

// Hash returns a deterministic hash of t for hashed containers keyed by
// token identifiers.
func (t TokenType) Hash() uint64 {
	const tokenTypeSeed = 9587356
	seed := uint64(tokenTypeSeed)
	for _, b := range t {
		seed = hashCombine(seed, uint64(b))
	}
	return seed
}

// NFTKey names one specific non-fungible asset: the class plus the instance
// id within it. Equality is structural.
type NFTKey struct {
	Token TokenType
	ID    value.U256
}

// Hash returns a deterministic hash combining a fixed seed, the big-endian
// bytes of the instance id, and the identifier bytes. Two equal keys always
// hash alike, across processes and runs.
func (k NFTKey) Hash() uint64 {
	const nftKeySeed = 3754345
	seed := uint64(nftKeySeed)
	id := k.ID.Bytes32be()
	for _, b := range id {
		seed = hashCombine(seed, uint64(b))
	}
	for _, b := range k.Token {
		seed = hashCombine(seed, uint64(b))
	}
	return seed
}

func (k NFTKey) String() string {
	return fmt.Sprintf("%v/%v", k.Token, k.ID)
}

func hashCombine(seed, v uint64) uint64 {
	return seed ^ (v + 0x9e3779b97f4a7c15 + (seed << 6) + (seed >> 2))
}

func bytesToText(data []byte) ([]byte, error) {
	return []byte(fmt.Sprintf("0x%x", data)), nil
}

func textToBytes(trg []byte, data []byte) error {
	s := string(data)
	if !strings.HasPrefix(s, "0x") {
		return fmt.Errorf("invalid format, does not start with 0x: %v", s)
	}
	data, err := hex.DecodeString(s[2:])
	if err != nil {
		return err
	}
	if want, got := len(trg), len(data); want != got {
		return fmt.Errorf("invalid format, wanted %d bytes, got %d", want, got)
	}
	copy(trg, data)
	return nil
}
