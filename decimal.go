package hashmix

import (
	"fmt"
	"strconv"
	"strings"

	"lukechampine.com/uint128"
)

const (
	// MaxDecimalScale is the largest number of fractional digits a Decimal holds.
	MaxDecimalScale = 28

	decimalSignMask  uint32 = 1 << 31
	decimalScaleMask uint32 = 0xff << 16
)

// Decimal is a 128-bit decimal floating point value: a 96-bit unsigned
// coefficient, a power-of-ten scale between 0 and 28, and a sign.
//
// Its words are laid out as flags, hi, lo, mid, which is the order they are
// mixed in. flags carries the scale in bits 16-23 and the sign in bit 31.
// Values that compare equal numerically but differ in scale (1.0 and 1.00)
// have different layouts and therefore different digests.
type Decimal struct {
	flags uint32
	hi    uint32
	lo    uint32
	mid   uint32
}

// NewDecimal returns the decimal (-1)^negative * coef / 10^scale.
func NewDecimal(coef uint128.Uint128, scale uint8, negative bool) (Decimal, error) {
	if coef.Hi>>32 != 0 {
		return Decimal{}, fmt.Errorf("%w: coefficient %s exceeds 96 bits", ErrDecimalRange, coef)
	}
	if scale > MaxDecimalScale {
		return Decimal{}, fmt.Errorf("%w: scale %d exceeds %d", ErrDecimalRange, scale, MaxDecimalScale)
	}

	flags := uint32(scale) << 16
	if negative {
		flags |= decimalSignMask
	}

	return Decimal{
		flags: flags,
		hi:    uint32(coef.Hi),
		lo:    uint32(coef.Lo),
		mid:   uint32(coef.Lo >> 32),
	}, nil
}

// DecimalFromBits builds a Decimal from its raw 32-bit parts without
// validating the flags word.
func DecimalFromBits(lo, mid, hi, flags uint32) Decimal {
	return Decimal{flags: flags, hi: hi, lo: lo, mid: mid}
}

// ParseDecimal parses an optionally signed decimal literal such as "-12.50".
// Exponents are not accepted. Digits beyond 96 bits of coefficient or 28
// fractional places yield ErrDecimalRange; there is no rounding.
func ParseDecimal(s string) (Decimal, error) {
	syntaxErr := &strconv.NumError{Func: "ParseDecimal", Num: s, Err: strconv.ErrSyntax}

	body := s
	negative := false
	if body != "" && (body[0] == '-' || body[0] == '+') {
		negative = body[0] == '-'
		body = body[1:]
	}

	var (
		coef   uint128.Uint128
		digits int
		scale  int
		point  bool
	)
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '.' && !point:
			point = true
		case c >= '0' && c <= '9':
			// coef stays below 2^96 between steps, so this cannot overflow 128 bits.
			coef = coef.Mul64(10).Add64(uint64(c - '0'))
			if coef.Hi>>32 != 0 {
				return Decimal{}, fmt.Errorf("%w: %q", ErrDecimalRange, s)
			}
			digits++
			if point {
				scale++
			}
		default:
			return Decimal{}, syntaxErr
		}
	}
	if digits == 0 {
		return Decimal{}, syntaxErr
	}
	if scale > MaxDecimalScale {
		return Decimal{}, fmt.Errorf("%w: %q", ErrDecimalRange, s)
	}

	return NewDecimal(coef, uint8(scale), negative)
}

// MustParseDecimal is like ParseDecimal but panics on error.
func MustParseDecimal(s string) Decimal {
	return must(ParseDecimal(s))
}

// Coefficient returns the unscaled 96-bit magnitude.
func (d Decimal) Coefficient() uint128.Uint128 {
	return uint128.New(uint64(d.mid)<<32|uint64(d.lo), uint64(d.hi))
}

// Scale returns the number of fractional digits.
func (d Decimal) Scale() uint8 {
	return uint8((d.flags & decimalScaleMask) >> 16)
}

// Negative reports whether the sign bit is set.
func (d Decimal) Negative() bool {
	return d.flags&decimalSignMask != 0
}

// Bits returns the parts in lo, mid, hi, flags order, the inverse of
// DecimalFromBits.
func (d Decimal) Bits() [4]uint32 {
	return [4]uint32{d.lo, d.mid, d.hi, d.flags}
}

func (d Decimal) layout() [4]uint32 {
	return [4]uint32{d.flags, d.hi, d.lo, d.mid}
}

func (d Decimal) String() string {
	digits := d.Coefficient().String()
	scale := int(d.Scale())
	if scale > 0 {
		if len(digits) <= scale {
			digits = strings.Repeat("0", scale-len(digits)+1) + digits
		}
		digits = digits[:len(digits)-scale] + "." + digits[len(digits)-scale:]
	}
	if d.Negative() {
		return "-" + digits
	}
	return digits
}
