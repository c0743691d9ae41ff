package value

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewU256FromBytes_WithLessThan32Bytes(t *testing.T) {
	x := NewU256FromBytes([]byte{1, 2, 3, 4}...)
	xBytes := x.Bytes32be()
	if !bytes.Equal(xBytes[:], []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3, 4}) {
		t.Fail()
	}
}

func TestNewU256FromBytes_PanicsWithMoreThan32Bytes(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fail()
		}
	}()
	_ = NewU256FromBytes(make([]byte, 33)...)
}

func TestU256_AddOverflow(t *testing.T) {
	sum, overflow := NewU256(1).AddOverflow(NewU256(2))
	if overflow {
		t.Errorf("unexpected overflow for small sum")
	}
	if want, got := NewU256(3), sum; !want.Eq(got) {
		t.Errorf("wrong sum, want %v, got %v", want, got)
	}

	sum, overflow = MaxU256().AddOverflow(NewU256(1))
	if !overflow {
		t.Errorf("overflow not reported")
	}
	if !sum.IsZero() {
		t.Errorf("wrapped sum should be zero, got %v", sum)
	}
}

func TestU256_EncodeProducesFixedWidth(t *testing.T) {
	tests := map[string]U256{
		"zero":  NewU256(),
		"one":   NewU256(1),
		"max":   MaxU256(),
		"mixed": NewU256(1, 2, 3, 4),
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			encoded := value.Encode()
			if want, got := IntEncodingLength, len(encoded); want != got {
				t.Fatalf("wrong encoding size, want %d, got %d", want, got)
			}
			if encoded[0] != intFormatByte {
				t.Errorf("wrong format byte, want 0x%02x, got 0x%02x", intFormatByte, encoded[0])
			}
			magnitude := value.Bytes32be()
			if !bytes.Equal(encoded[1:], magnitude[:]) {
				t.Errorf("magnitude not big-endian 32 bytes")
			}
		})
	}
}

func TestU256_EncodeDecodeRoundTrips(t *testing.T) {
	for _, value := range []U256{NewU256(), NewU256(42), NewU256(1, 2, 3, 4), MaxU256()} {
		restored, err := DecodeU256(value.Encode())
		if err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if want, got := value, restored; !want.Eq(got) {
			t.Errorf("round trip lost value, want %v, got %v", want, got)
		}
	}
}

func TestDecodeU256_RejectsWrongLength(t *testing.T) {
	for _, size := range []int{0, 1, 32, 34} {
		if _, err := DecodeU256(make([]byte, size)); !errors.Is(err, ErrInvalidIntEncoding) {
			t.Errorf("size %d: want ErrInvalidIntEncoding, got %v", size, err)
		}
	}
}

func TestDecodeU256_IgnoresFormatByte(t *testing.T) {
	data := NewU256(7).Encode()
	data[0] = 0xAB
	restored, err := DecodeU256(data)
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if want, got := NewU256(7), restored; !want.Eq(got) {
		t.Errorf("format byte leaked into value, want %v, got %v", want, got)
	}
}
