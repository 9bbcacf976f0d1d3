// Package atom implements the any-value dispatcher, container scan, and
// typed accessors described in spec.md §§4.4-4.8: given a cursor positioned
// just before an atom, it decides what kind of atom follows and produces a
// tagged Value without copying the underlying buffer.
package atom

import (
	"errors"
	"math"

	"github.com/kanshi-io/atomwire/hexdigit"
	"github.com/kanshi-io/atomwire/numeric"
)

// Cursor is a parse position within a borrowed byte buffer. See
// numeric.Cursor for the field-level contract; it is re-exported here so
// callers of this package never need to import numeric directly.
type Cursor = numeric.Cursor

// Init wraps numeric.Init: buf must end in a newline, which is overwritten
// with a NUL sentinel in place.
func Init(buf []byte) (Cursor, error) {
	return numeric.Init(buf)
}

// Tag identifies the kind of value an Atom holds.
type Tag int

const (
	TagEnd Tag = iota
	TagBool
	TagPositiveInt
	TagNegativeInt
	TagDouble
	TagString
	TagBytes
	TagReference
	TagArray
	TagMap
	TagArrayEnd
	TagMapEnd
)

func (t Tag) String() string {
	switch t {
	case TagEnd:
		return "END"
	case TagBool:
		return "BOOL"
	case TagPositiveInt:
		return "POSITIVE_INT"
	case TagNegativeInt:
		return "NEGATIVE_INT"
	case TagDouble:
		return "DOUBLE"
	case TagString:
		return "STRING"
	case TagBytes:
		return "BYTES"
	case TagReference:
		return "REFERENCE"
	case TagArray:
		return "ARRAY"
	case TagMap:
		return "MAP"
	case TagArrayEnd:
		return "ARRAY_END"
	case TagMapEnd:
		return "MAP_END"
	default:
		return "UNKNOWN"
	}
}

// Value is the tagged union produced by Next and Any. Only the field named
// by Tag is meaningful; the rest are zero.
type Value struct {
	Tag       Tag
	Bool      bool
	Uint      uint64 // magnitude for TagPositiveInt/TagNegativeInt
	Double    float64
	Slice     []byte // borrowed: TagString, TagBytes, TagReference
	Container Cursor // borrowed sub-cursor: TagArray, TagMap
}

var (
	ErrUnexpectedChar   = errors.New("atom: unexpected character")
	ErrMissingSeparator = errors.New("atom: expected a leading space before the next atom")
	ErrExpectedNaN      = errors.New("atom: malformed nan literal")
	ErrBadSizeDelimiter = errors.New("atom: sized atom has an unrecognized delimiter")
	ErrSizeOverflow     = errors.New("atom: declared size does not fit in 64 bits")
	ErrSizeTooLarge     = errors.New("atom: declared size runs past the end of the buffer")
	ErrUnexpectedEnd    = errors.New("atom: unexpected end of message inside container")
	ErrMismatchedClose  = errors.New("atom: container close does not match its open")
	ErrTooDeep          = errors.New("atom: container nesting exceeds the 16-level limit")
)

const maxContainerDepth = 16

// Next consumes the mandatory leading space and the following atom,
// returning its tagged value. For Array/Map it does NOT scan to the matching
// close; use Any for that.
//
// End-of-input is detected by comparing c.Next against c.End, not by
// inspecting the byte there: for a top-level cursor that byte is the NUL
// sentinel Init wrote, but for a container's sub-cursor (see Any) it is
// whatever byte happens to follow the last child in the shared buffer, and
// must never be read as an atom.
func Next(c *Cursor) (Value, error) {
	if c.Next >= c.End {
		return Value{Tag: TagEnd}, nil
	}
	if c.Peek() != ' ' {
		return Value{}, ErrMissingSeparator
	}
	c.Next++
	return next(c)
}

// next parses the atom body immediately at c.Next, with the leading
// separator already consumed.
func next(c *Cursor) (Value, error) {
	if c.Next >= c.End {
		return Value{}, ErrUnexpectedChar
	}
	switch c.Peek() {
	case 'T':
		c.Next++
		return Value{Tag: TagBool, Bool: true}, nil
	case 'F':
		c.Next++
		return Value{Tag: TagBool, Bool: false}, nil
	case '[':
		c.Next++
		return Value{Tag: TagArray}, nil
	case ']':
		c.Next++
		return Value{Tag: TagArrayEnd}, nil
	case '{':
		c.Next++
		return Value{Tag: TagMap}, nil
	case '}':
		c.Next++
		return Value{Tag: TagMapEnd}, nil
	case 'n':
		if !consumeLiteral(c, "nan") {
			return Value{}, ErrExpectedNaN
		}
		return Value{Tag: TagDouble, Double: math.NaN()}, nil
	case '-', 'i':
		return parseRealAtom(c, true)
	default:
		if !hexdigit.IsHex(c.Peek()) {
			return Value{}, ErrUnexpectedChar
		}
		return parseNumericOrSized(c)
	}
}

func consumeLiteral(c *Cursor, lit string) bool {
	for i := 0; i < len(lit); i++ {
		if c.PeekAt(i) != lit[i] {
			return false
		}
	}
	c.Next += len(lit)
	return true
}

func parseRealAtom(c *Cursor, allowNegative bool) (Value, error) {
	r, err := numeric.ParseReal(c, allowNegative)
	if err != nil {
		return Value{}, err
	}
	return realToValue(r), nil
}

// realToValue applies the integer/double dispatch rule of spec.md §4.3.3.
func realToValue(r numeric.Real) Value {
	if r.Inf {
		d := numeric.BuildDouble(r.Negate, r.Significand, r.Exponent)
		return Value{Tag: TagDouble, Double: d}
	}
	fits, shifted := numeric.FitsInteger(r.Significand, r.Exponent)
	if !fits {
		d := numeric.BuildDouble(r.Negate, r.Significand, r.Exponent)
		return Value{Tag: TagDouble, Double: d}
	}
	if r.Negate {
		return Value{Tag: TagNegativeInt, Uint: shifted}
	}
	return Value{Tag: TagPositiveInt, Uint: shifted}
}

// parseNumericOrSized handles the lookahead branch where the next byte is a
// hex digit: it could be a plain/exponent-form number or a sized atom
// (string/bytes/reference). The hex run is parsed once and the delimiter
// that follows picks which.
func parseNumericOrSized(c *Cursor) (Value, error) {
	start := c.Next
	sig, overflowBits, err := numeric.ParseHex(c)
	if err != nil {
		return Value{}, err
	}

	switch c.Peek() {
	case 'p':
		c.Next = start
		return parseRealAtom(c, false)
	case ':', '|', '@':
		delim := c.Peek()
		c.Next++
		if overflowBits != 0 {
			return Value{}, ErrSizeOverflow
		}
		return parseSizedPayload(c, sig, delim)
	default:
		// Plain integer, no exponent: canonical only if zero or the low
		// byte is non-zero. Overflow beyond 64 bits is silently dropped,
		// matching the reference parser.
		if sig != 0 && sig&0xff == 0 {
			return Value{}, numeric.ErrNonCanonicalReal
		}
		return Value{Tag: TagPositiveInt, Uint: sig}, nil
	}
}

func parseSizedPayload(c *Cursor, size uint64, delim byte) (Value, error) {
	// The sentinel/terminator at c.End must remain unconsumed, but the
	// payload may run right up to it.
	if size > uint64(c.End-c.Next) {
		return Value{}, ErrSizeTooLarge
	}
	n := int(size)
	payload := c.Buf[c.Next : c.Next+n]
	c.Next += n

	tag := TagString
	switch delim {
	case ':':
		tag = TagString
	case '|':
		tag = TagBytes
	case '@':
		tag = TagReference
	default:
		return Value{}, ErrBadSizeDelimiter
	}
	return Value{Tag: tag, Slice: payload}, nil
}

// Any parses the next atom, and for Array/Map additionally scans to the
// matching close, setting Container to a sub-cursor over the interior
// (excluding the opening and closing delimiters). Nesting deeper than 16
// levels, a mismatched close, or an END encountered inside a container are
// all parse errors.
func Any(c *Cursor) (Value, error) {
	v, err := Next(c)
	if err != nil {
		return Value{}, err
	}
	if v.Tag != TagArray && v.Tag != TagMap {
		return v, nil
	}

	interiorStart := c.Next
	// bit i (0 = innermost currently-open level) is 1 for an array, 0 for a map.
	var isArray uint32
	if v.Tag == TagArray {
		isArray = 1
	}
	depth := 1

	for depth > 0 {
		child, err := Next(c)
		if err != nil {
			return Value{}, err
		}
		switch child.Tag {
		case TagArray, TagMap:
			if depth == maxContainerDepth {
				return Value{}, ErrTooDeep
			}
			depth++
			isArray <<= 1
			if child.Tag == TagArray {
				isArray |= 1
			}
		case TagArrayEnd, TagMapEnd:
			wantArray := child.Tag == TagArrayEnd
			if (isArray&1 != 0) != wantArray {
				return Value{}, ErrMismatchedClose
			}
			isArray >>= 1
			depth--
		case TagEnd:
			return Value{}, ErrUnexpectedEnd
		}
	}

	// c.Next now points just past the space-and-closing-delimiter of the
	// outermost container; back it up to just before the delimiter, and
	// past the separating space before it, to bound the interior.
	interiorEnd := c.Next - 2
	v.Container = c.Sub(interiorStart, interiorEnd)
	return v, nil
}
