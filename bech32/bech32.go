package bech32

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zeebo/errs"
)

// Error is the class of all bech32 format errors.
var Error = errs.Class("bech32")

var (
	// ErrUnparseable is returned when the string does not have the
	// hrp 1 data layout.
	ErrUnparseable = errors.New("unparseable format")

	// ErrInvalidCharacter is returned when the data part contains a
	// character outside of the alphabet.
	ErrInvalidCharacter = errors.New("invalid character")
)

// ChecksumError is returned when the checksum does not reduce to the residue
// of any known encoding. Sum is the residue that was computed.
type ChecksumError struct {
	Sum uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("invalid checksum: %d", e.Sum)
}

const (
	charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

	separator = '1'

	// MaxHRPLength is the longest human readable part that is accepted.
	MaxHRPLength = 83

	checksumLength = 6
)

var generator = [5]uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}

// charsetRev maps lowercase and uppercase ASCII to the 5-bit value of the
// character, or -1.
var charsetRev = func() (rev [128]int8) {
	for i := range rev {
		rev[i] = -1
	}

	for i := 0; i < len(charset); i++ {
		c := charset[i]
		rev[c] = int8(i)

		if c >= 'a' && c <= 'z' {
			rev[c-'a'+'A'] = int8(i)
		}
	}

	return rev
}()

// Encoding identifies the checksum variant.
type Encoding int

const (
	Bech32 Encoding = iota + 1
	Bech32m
)

func (e Encoding) String() string {
	switch e {
	case Bech32:
		return "bech32"
	case Bech32m:
		return "bech32m"
	}

	return fmt.Sprintf("Encoding(%d)", int(e))
}

func (e Encoding) constant() uint32 {
	switch e {
	case Bech32:
		return 1
	case Bech32m:
		return 0x2bc830a3
	}

	panic(fmt.Sprintf("bech32: unknown encoding %d", int(e)))
}

// Payload is a decoded bech32 string.
type Payload struct {
	encoding Encoding
	hrp      string
	data     []byte
}

// NewPayload returns a payload for the given encoding, human readable part
// and 5-bit data values. It panics if the human readable part is empty or
// longer than MaxHRPLength, or if a data value does not fit in 5 bits.
func NewPayload(encoding Encoding, hrp string, data []byte) Payload {
	if len(hrp) == 0 {
		panic("bech32: hrp cannot be empty")
	}

	if len(hrp) > MaxHRPLength {
		panic(fmt.Sprintf("bech32: hrp is too long: %d > %d", len(hrp), MaxHRPLength))
	}

	for i, v := range data {
		if v > 31 {
			panic(fmt.Sprintf("bech32: data value out of range at %d: %d", i, v))
		}
	}

	encoding.constant()

	return Payload{
		encoding: encoding,
		hrp:      hrp,
		data:     append([]byte{}, data...),
	}
}

// Encoding returns the checksum variant of the payload.
func (p Payload) Encoding() Encoding { return p.encoding }

// HRP returns the human readable part.
func (p Payload) HRP() string { return p.hrp }

// Data returns a copy of the 5-bit data values. It is never nil.
func (p Payload) Data() []byte { return append([]byte{}, p.data...) }

// Len returns the number of 5-bit data values.
func (p Payload) Len() int { return len(p.data) }

// String returns the bech32 encoding of the payload.
func (p Payload) String() string {
	return Encode(p.encoding, p.hrp, p.data)
}

// Decode parses and verifies a bech32 or bech32m string.
func Decode(s string) (_ Payload, err error) {
	defer Error.WrapP(&err)

	hrp, data, err := split(s)
	if err != nil {
		return Payload{}, err
	}

	values := make([]byte, len(data))
	for i := 0; i < len(data); i++ {
		v := charsetRev[data[i]]
		if v < 0 {
			return Payload{}, fmt.Errorf(
				"%w %q at position %d",
				ErrInvalidCharacter,
				data[i],
				len(hrp)+1+i,
			)
		}

		values[i] = byte(v)
	}

	var encoding Encoding

	switch sum := polymod(expand(hrp), values); sum {
	case Bech32.constant():
		encoding = Bech32
	case Bech32m.constant():
		encoding = Bech32m
	default:
		return Payload{}, &ChecksumError{Sum: sum}
	}

	return Payload{
		encoding: encoding,
		hrp:      hrp,
		data:     values[:len(values)-checksumLength],
	}, nil
}

// split checks the character classes of s and returns the lowercase human
// readable part and the data part (checksum included).
func split(s string) (hrp, data string, err error) {
	var lower, upper bool

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c < 33 || c > 126:
			return "", "", fmt.Errorf("%w: character %q out of range", ErrUnparseable, c)
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		}
	}

	if lower && upper {
		return "", "", fmt.Errorf("%w: mixed case", ErrUnparseable)
	}

	pos := strings.LastIndexByte(s, separator)
	if pos < 1 {
		return "", "", fmt.Errorf("%w: missing human readable part", ErrUnparseable)
	}

	if pos > MaxHRPLength {
		return "", "", fmt.Errorf("%w: hrp is too long: %d > %d", ErrUnparseable, pos, MaxHRPLength)
	}

	if len(s)-pos-1 < checksumLength {
		return "", "", fmt.Errorf("%w: data part is too short", ErrUnparseable)
	}

	return strings.ToLower(s[:pos]), s[pos+1:], nil
}

// Encode returns the bech32 string for the human readable part and the 5-bit
// data values. The human readable part is lowercased. Encode panics if a data
// value does not fit in 5 bits.
func Encode(encoding Encoding, hrp string, data []byte) string {
	hrp = strings.ToLower(hrp)

	sum := checksum(encoding, hrp, data)

	var sb strings.Builder
	sb.Grow(len(hrp) + 1 + len(data) + len(sum))

	sb.WriteString(hrp)
	sb.WriteByte(separator)

	for _, v := range data {
		sb.WriteByte(charset[v])
	}

	for _, v := range sum {
		sb.WriteByte(charset[v])
	}

	return sb.String()
}

func checksum(encoding Encoding, hrp string, data []byte) []byte {
	mod := polymod(expand(hrp), data, make([]byte, checksumLength)) ^ encoding.constant()

	sum := make([]byte, checksumLength)
	for i := range sum {
		sum[i] = byte(mod>>(5*(5-i))) & 31
	}

	return sum
}

// expand returns the high 3 bits of every character, a zero, then the low 5
// bits of every character.
func expand(hrp string) []byte {
	v := make([]byte, 0, len(hrp)*2+1)

	for i := 0; i < len(hrp); i++ {
		v = append(v, hrp[i]>>5)
	}

	v = append(v, 0)

	for i := 0; i < len(hrp); i++ {
		v = append(v, hrp[i]&31)
	}

	return v
}

func polymod(values ...[]byte) uint32 {
	chk := uint32(1)

	for _, vs := range values {
		for _, v := range vs {
			top := chk >> 25
			chk = (chk&0x1ffffff)<<5 ^ uint32(v)

			for i, g := range generator {
				if (top>>i)&1 == 1 {
					chk ^= g
				}
			}
		}
	}

	return chk
}

// ConvertBits regroups data from fromBits-wide values into toBits-wide values.
// When pad is true a trailing partial group is padded with zero bits,
// otherwise leftover bits must be zero and fewer than fromBits.
func ConvertBits(data []byte, fromBits, toBits uint, pad bool) (_ []byte, err error) {
	defer Error.WrapP(&err)

	if fromBits < 1 || fromBits > 8 || toBits < 1 || toBits > 8 {
		return nil, errs.New("invalid bit width: from=%d to=%d", fromBits, toBits)
	}

	var acc, bits uint
	maxv := uint(1)<<toBits - 1

	out := make([]byte, 0, len(data)*int(fromBits)/int(toBits)+1)

	for i, v := range data {
		if uint(v)>>fromBits != 0 {
			return nil, errs.New("value out of range at %d: %d", i, v)
		}

		acc = acc<<fromBits | uint(v)
		bits += fromBits

		for bits >= toBits {
			bits -= toBits
			out = append(out, byte(acc>>bits&maxv))
		}
	}

	if pad {
		if bits > 0 {
			out = append(out, byte(acc<<(toBits-bits)&maxv))
		}
	} else if bits >= fromBits || acc<<(toBits-bits)&maxv != 0 {
		return nil, errs.New("invalid padding")
	}

	return out, nil
}
