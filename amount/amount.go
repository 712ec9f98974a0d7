package amount

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/zeebo/errs"
)

// Error is the class of all amount errors.
var Error = errs.Class("amount")

// ErrOverflow is returned when a value does not fit the requested unit.
var ErrOverflow = errors.New("overflow")

const (
	SatPerBitcoin   = 100_000_000
	MilliSatPerSat  = 1_000
	PicoPerMilliSat = 10
	PicoPerSat      = PicoPerMilliSat * MilliSatPerSat
	PicoPerBitcoin  = PicoPerSat * SatPerBitcoin
)

var (
	picoPerSat      = decimal.NewFromInt(PicoPerSat)
	picoPerMilliSat = decimal.NewFromInt(PicoPerMilliSat)
	picoPerBitcoin  = decimal.NewFromInt(PicoPerBitcoin)
)

// Amount is a quantity of bitcoin.
type Amount struct {
	satoshi       int64
	picoRemainder int64
}

// New returns the amount satoshi plus picoRemainder pico. It panics if the
// remainder is outside [0, 9_999].
func New(satoshi int64, picoRemainder int) Amount {
	if picoRemainder < 0 || picoRemainder >= PicoPerSat {
		panic(fmt.Sprintf("amount: pico remainder out of range: %d", picoRemainder))
	}

	return Amount{
		satoshi:       satoshi,
		picoRemainder: int64(picoRemainder),
	}
}

// FromSatoshi returns sat satoshi.
func FromSatoshi(sat int64) Amount {
	return Amount{satoshi: sat}
}

// FromMilliSat returns msat millisatoshi.
func FromMilliSat(msat int64) Amount {
	sat, rem := floorDiv(msat, MilliSatPerSat)

	return Amount{
		satoshi:       sat,
		picoRemainder: rem * PicoPerMilliSat,
	}
}

// FromPico returns pico pico bitcoin.
func FromPico(pico int64) Amount {
	sat, rem := floorDiv(pico, PicoPerSat)

	return Amount{
		satoshi:       sat,
		picoRemainder: rem,
	}
}

// FromBitcoin returns btc bitcoin. Digits below one pico are truncated toward
// zero.
func FromBitcoin(btc decimal.Decimal) (a Amount, err error) {
	pico := btc.Mul(picoPerBitcoin).Truncate(0).BigInt()

	sat, rem := new(big.Int).DivMod(pico, big.NewInt(PicoPerSat), new(big.Int))
	if !sat.IsInt64() {
		return a, Error.Wrap(fmt.Errorf("%w: %s bitcoin", ErrOverflow, btc))
	}

	return Amount{
		satoshi:       sat.Int64(),
		picoRemainder: rem.Int64(),
	}, nil
}

func floorDiv(x, y int64) (q, r int64) {
	q, r = x/y, x%y
	if r < 0 {
		q--
		r += y
	}

	return q, r
}

// Satoshi returns the whole satoshi part.
func (a Amount) Satoshi() int64 {
	return a.satoshi
}

// PicoRemainder returns the sub-satoshi part in pico, in [0, 9_999].
func (a Amount) PicoRemainder() int {
	return int(a.picoRemainder)
}

func (a Amount) pico() decimal.Decimal {
	return decimal.NewFromInt(a.satoshi).Mul(picoPerSat).Add(decimal.NewFromInt(a.picoRemainder))
}

// Bitcoin returns the exact amount in bitcoin.
func (a Amount) Bitcoin() decimal.Decimal {
	return decimal.New(a.satoshi, -8).Add(decimal.New(a.picoRemainder, -12))
}

// Pico returns the amount in pico bitcoin.
func (a Amount) Pico() (int64, error) {
	return toInt64(a.pico(), "pico")
}

// MilliSat returns the amount in millisatoshi, rounded toward zero.
func (a Amount) MilliSat() (int64, error) {
	msat, _ := a.pico().QuoRem(picoPerMilliSat, 0)

	return toInt64(msat, "millisat")
}

func toInt64(d decimal.Decimal, unit string) (int64, error) {
	v := d.BigInt()
	if !v.IsInt64() {
		return 0, Error.Wrap(fmt.Errorf("%w: %s %s", ErrOverflow, v, unit))
	}

	return v.Int64(), nil
}

// Cmp compares a and b and returns -1, 0 or +1.
func (a Amount) Cmp(b Amount) int {
	switch {
	case a.satoshi < b.satoshi:
		return -1
	case a.satoshi > b.satoshi:
		return 1
	case a.picoRemainder < b.picoRemainder:
		return -1
	case a.picoRemainder > b.picoRemainder:
		return 1
	}

	return 0
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool {
	return a.satoshi == 0 && a.picoRemainder == 0
}

// String formats the amount in bitcoin, e.g. "0.025 BTC".
func (a Amount) String() string {
	return a.Bitcoin().String() + " BTC"
}
