package atom

import (
	"errors"
	"math"
)

var (
	ErrWrongType  = errors.New("atom: next atom does not match the requested accessor")
	ErrOutOfRange = errors.New("atom: value does not fit the requested width")
)

// Int64 parses the next atom as a signed 64-bit integer: a positive integer
// atom no larger than math.MaxInt64, or a negative integer atom whose
// magnitude is at most 1<<63 (the magnitude 1<<63 is only representable as a
// negative value, so it is accepted here even though -1<<63 has no positive
// counterpart).
func Int64(c *Cursor) (int64, error) {
	v, err := Next(c)
	if err != nil {
		return 0, err
	}
	switch v.Tag {
	case TagPositiveInt:
		if v.Uint > math.MaxInt64 {
			return 0, ErrOutOfRange
		}
		return int64(v.Uint), nil
	case TagNegativeInt:
		if v.Uint > 1<<63 {
			return 0, ErrOutOfRange
		}
		return -int64(v.Uint), nil
	default:
		return 0, ErrWrongType
	}
}

// Uint64 parses the next atom as an unsigned 64-bit integer: only a
// positive integer atom is accepted.
func Uint64(c *Cursor) (uint64, error) {
	v, err := Next(c)
	if err != nil {
		return 0, err
	}
	if v.Tag != TagPositiveInt {
		return 0, ErrWrongType
	}
	return v.Uint, nil
}

// Int is Int64 restricted to the 32-bit signed range; a value outside it
// returns ErrOutOfRange.
func Int(c *Cursor) (int32, error) {
	v, err := Int64(c)
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, ErrOutOfRange
	}
	return int32(v), nil
}

// Uint is Uint64 restricted to the 32-bit unsigned range; a value outside it
// returns ErrOutOfRange.
func Uint(c *Cursor) (uint32, error) {
	v, err := Uint64(c)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, ErrOutOfRange
	}
	return uint32(v), nil
}

// Double parses the next atom as a binary64: NaN, +/-Inf, an integer atom,
// or a double atom are all accepted and widened/narrowed as needed.
func Double(c *Cursor) (float64, error) {
	v, err := Next(c)
	if err != nil {
		return 0, err
	}
	switch v.Tag {
	case TagDouble:
		return v.Double, nil
	case TagPositiveInt:
		return float64(v.Uint), nil
	case TagNegativeInt:
		return -float64(v.Uint), nil
	default:
		return 0, ErrWrongType
	}
}

// Float32 is Double cast to binary32; values outside binary32's range round
// to +/-Inf rather than erroring, matching ordinary Go float64->float32
// conversion.
func Float32(c *Cursor) (float32, error) {
	v, err := Double(c)
	if err != nil {
		return 0, err
	}
	return float32(v), nil
}

// Bool parses the next atom as a boolean: only T/F are accepted.
func Bool(c *Cursor) (bool, error) {
	v, err := Next(c)
	if err != nil {
		return false, err
	}
	if v.Tag != TagBool {
		return false, ErrWrongType
	}
	return v.Bool, nil
}

// String parses the next atom as a sized string, returning a slice that
// borrows the cursor's underlying buffer.
func String(c *Cursor) ([]byte, error) {
	v, err := Next(c)
	if err != nil {
		return nil, err
	}
	if v.Tag != TagString {
		return nil, ErrWrongType
	}
	return v.Slice, nil
}

// Bytes parses the next atom as a sized byte string, returning a slice that
// borrows the cursor's underlying buffer.
func Bytes(c *Cursor) ([]byte, error) {
	v, err := Next(c)
	if err != nil {
		return nil, err
	}
	if v.Tag != TagBytes {
		return nil, ErrWrongType
	}
	return v.Slice, nil
}
