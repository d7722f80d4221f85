package felt

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/holiman/uint256"

	"github.com/wippyai/cairo-panic/errors"
)

const (
	// Size is the width of the canonical big-endian form.
	Size = 32
	// WordSize is the width of a packed byte-array word.
	WordSize = 31
)

// Modulus is the field prime P = 2^251 + 17*2^192 + 1.
var Modulus = *uint256.MustFromHex("0x800000000000011000000000000000000000000000000000000000000000001")

// Felt is an element of the prime field, always reduced to [0, P).
// The zero value is the zero element. Felts compare with ==.
type Felt struct {
	v uint256.Int
}

// Zero is the additive identity.
var Zero Felt

// FromUint64 returns the felt holding u.
func FromUint64(u uint64) Felt {
	var f Felt
	f.v.SetUint64(u)
	return f
}

// FromBytes32 interprets b as a canonical big-endian felt.
func FromBytes32(b [Size]byte) (Felt, error) {
	var f Felt
	f.v.SetBytes32(b[:])
	if !f.v.Lt(&Modulus) {
		return Zero, errors.New(errors.PhaseParse, errors.KindOverflow).
			Value(f.v.Hex()).
			Detail("value is not below the field modulus").
			Build()
	}
	return f, nil
}

// Bytes32 returns the canonical 32-byte big-endian form.
func (f Felt) Bytes32() [Size]byte {
	return f.v.Bytes32()
}

// Bytes31 returns the 31-byte packed-word form. ok is false when the value
// needs more than 31 bytes (value >= 2^248).
func (f Felt) Bytes31() (out [WordSize]byte, ok bool) {
	if f.v.BitLen() > WordSize*8 {
		return out, false
	}
	full := f.v.Bytes32()
	copy(out[:], full[Size-WordSize:])
	return out, true
}

// Stripped returns the big-endian bytes with leading zero bytes removed.
// The zero element yields an empty slice.
func (f Felt) Stripped() []byte {
	return f.v.Bytes()
}

// ByteLen is len(f.Stripped()).
func (f Felt) ByteLen() int {
	return f.v.ByteLen()
}

// Uint converts f to a native unsigned size. ok is false when the value
// does not fit.
func (f Felt) Uint() (uint, bool) {
	if !f.v.IsUint64() {
		return 0, false
	}
	u := f.v.Uint64()
	if uint64(uint(u)) != u {
		return 0, false
	}
	return uint(u), true
}

// IsZero reports whether f is the zero element.
func (f Felt) IsZero() bool {
	return f.v.IsZero()
}

// Cmp compares f and g as integers.
func (f Felt) Cmp(g Felt) int {
	return f.v.Cmp(&g.v)
}

// Hex returns the lowercase 0x-prefixed form without leading zero digits.
func (f Felt) Hex() string {
	return f.v.Hex()
}

func (f Felt) String() string {
	return f.Hex()
}

// Dec returns the decimal form.
func (f Felt) Dec() string {
	return f.v.Dec()
}

// Parse reads a felt from 0x-prefixed hex (leading zeros allowed) or decimal.
func Parse(s string) (Felt, error) {
	f, err := parse(s)
	if err != nil {
		return Zero, err
	}
	return f, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Felt {
	f, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return f
}

// ParseList reads felts separated by whitespace and/or commas.
func ParseList(text string) ([]Felt, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	felts := make([]Felt, 0, len(fields))
	for i, field := range fields {
		f, err := parse(field)
		if err != nil {
			err.Path = []string{fmt.Sprintf("[%d]", i)}
			return nil, err
		}
		felts = append(felts, f)
	}
	return felts, nil
}

func parse(s string) (Felt, *errors.Error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, errors.InvalidInput(errors.PhaseParse, "empty felt")
	}

	var f Felt
	if digits, ok := cutHexPrefix(s); ok {
		if digits == "" {
			return Zero, errors.InvalidInput(errors.PhaseParse, fmt.Sprintf("felt %q has no digits", s))
		}
		digits = strings.TrimLeft(strings.ToLower(digits), "0")
		if digits == "" {
			return Zero, nil
		}
		if len(digits) > 2*Size {
			return Zero, errors.Overflow(errors.PhaseParse, nil, s, "felt252")
		}
		if err := f.v.SetFromHex("0x" + digits); err != nil {
			return Zero, errors.ParseFailed(fmt.Sprintf("felt %q", s), err)
		}
	} else if err := f.v.SetFromDecimal(s); err != nil {
		if err == uint256.ErrBig256Range {
			return Zero, errors.Overflow(errors.PhaseParse, nil, s, "felt252")
		}
		return Zero, errors.ParseFailed(fmt.Sprintf("felt %q", s), err)
	}

	if !f.v.Lt(&Modulus) {
		return Zero, errors.Overflow(errors.PhaseParse, nil, s, "felt252")
	}
	return f, nil
}

func cutHexPrefix(s string) (string, bool) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:], true
	}
	return s, false
}
