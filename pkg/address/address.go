// Package address derives deterministic account addresses from semantic
// seeds, so venue and receipt records never need external coordination
// to find their storage location.
package address

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// Size is the address length in bytes.
const Size = 32

// MaxPartLen caps a single derivation seed. The length-prefix framing
// uses 4 bytes, but seeds are human-supplied identifiers; anything past
// 64 KiB is a caller bug, not a real identifier.
const MaxPartLen = 64 * 1024

var (
	ErrEmptyNamespace = errors.New("address: empty namespace")
	ErrPartTooLong    = fmt.Errorf("address: derivation part exceeds %d bytes", MaxPartLen)
	ErrInvalidAddress = errors.New("address: invalid address encoding")
)

// Address is a fixed-size account address.
type Address [Size]byte

// Zero is the all-zero address, used as the "unset" value.
var Zero Address

// Derive computes the address for a namespace plus a sequence of seed
// parts. It is a pure function: identical inputs always produce the same
// address. Every component is length-prefixed before hashing so that
// ("ab","c") and ("a","bc") cannot collide.
func Derive(namespace string, parts ...[]byte) (Address, error) {
	if namespace == "" {
		return Zero, ErrEmptyNamespace
	}
	if len(namespace) > MaxPartLen {
		return Zero, ErrPartTooLong
	}

	var buf bytes.Buffer
	writeFramed(&buf, []byte(namespace))
	for _, part := range parts {
		if len(part) > MaxPartLen {
			return Zero, ErrPartTooLong
		}
		writeFramed(&buf, part)
	}

	return Address(blake2b.Sum256(buf.Bytes())), nil
}

func writeFramed(buf *bytes.Buffer, b []byte) {
	var prefix [4]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(len(b)))
	buf.Write(prefix[:])
	buf.Write(b)
}

// String returns the base58 text form.
func (a Address) String() string {
	return base58.Encode(a[:])
}

// Bytes returns the raw 32-byte form.
func (a Address) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, a[:])
	return b
}

// IsZero reports whether the address is the unset value.
func (a Address) IsZero() bool {
	return a == Zero
}

// MarshalText implements encoding.TextMarshaler (base58).
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Parse decodes the base58 text form back into an Address.
func Parse(s string) (Address, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %s", ErrInvalidAddress, s)
	}
	if len(raw) != Size {
		return Zero, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidAddress, Size, len(raw))
	}

	var a Address
	copy(a[:], raw)
	return a, nil
}
