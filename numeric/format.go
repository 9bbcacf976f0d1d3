package numeric

import (
	"math"
	"math/bits"
)

const hexChars = "0123456789abcdef"

// AppendHex appends the canonical (no leading zero, lowercase) hex spelling
// of v to dst, writing a single "0" for v == 0.
func AppendHex(dst []byte, v uint64) []byte {
	if v == 0 {
		return append(dst, '0')
	}
	nibbles := 16 - bits.LeadingZeros64(v)/4
	start := len(dst)
	dst = append(dst, make([]byte, nibbles)...)
	for i := nibbles - 1; i >= 0; i-- {
		dst[start+i] = hexChars[v&0xf]
		v >>= 4
	}
	return dst
}

// AppendUint64 appends the canonical wire encoding of v: plain hex if the
// low byte is non-zero (or v is zero), otherwise the folded
// <significand>p<exponent> form with all trailing zero bits moved into the
// exponent. This is the exact inverse of the
// canonical-form rule enforced during parsing (§4.3).
func AppendUint64(dst []byte, v uint64) []byte {
	if v == 0 {
		return AppendHex(dst, 0)
	}
	ctz := bits.TrailingZeros64(v)
	if ctz < 8 {
		return AppendHex(dst, v)
	}
	dst = AppendHex(dst, v>>uint(ctz))
	dst = append(dst, 'p')
	return AppendHex(dst, uint64(ctz))
}

// AppendInt64 appends the canonical wire encoding of a signed magnitude:
// an optional leading '-' followed by AppendUint64 of the magnitude. mag is
// the unsigned magnitude (the caller computes it, since the two's-complement
// magnitude of math.MinInt64 does not fit in an int64).
func AppendInt64(dst []byte, negative bool, mag uint64) []byte {
	if negative {
		dst = append(dst, '-')
	}
	return AppendUint64(dst, mag)
}

// AppendDouble appends the canonical wire encoding of a float64: "nan",
// "inf"/"-inf", "0" for zero and subnormals, or the <significand>p<exponent>
// / plain-hex form for every other finite value (§4.9.2).
func AppendDouble(dst []byte, v float64) []byte {
	raw := math.Float64bits(v)
	negate := raw>>63 != 0
	rawExp := (raw >> 52) & 0x7FF
	mantissa := raw & ((1 << 52) - 1)

	switch {
	case rawExp == 0:
		return append(dst, '0')
	case rawExp == 0x7FF:
		if mantissa != 0 {
			return append(dst, 'n', 'a', 'n')
		}
		if negate {
			dst = append(dst, '-')
		}
		return append(dst, 'i', 'n', 'f')
	default:
		if negate {
			dst = append(dst, '-')
		}
		exp := int(rawExp) - 1023

		sig := mantissa | (1 << 52)
		ctz := bits.TrailingZeros64(sig)
		sig >>= uint(ctz)
		exp -= 52 - ctz

		if exp >= 0 && exp < 8 {
			return AppendHex(dst, sig<<uint(exp))
		}

		dst = AppendHex(dst, sig)
		dst = append(dst, 'p')
		if exp < 0 {
			dst = append(dst, '-')
			exp = -exp
		}
		return AppendHex(dst, uint64(exp))
	}
}
