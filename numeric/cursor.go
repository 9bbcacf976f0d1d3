// Package numeric implements the significand/exponent arithmetic shared by
// every numeric atom on the wire: parsing a canonical hex integer, parsing
// the <significand>p<exponent> real form, converting a significand/exponent
// pair to an IEEE-754 binary64, and the inverse formatting routines.
//
// It also owns the Cursor type, since a cursor is needed to parse even the
// lowest-level hex-digit run and nothing below this package needs one.
package numeric

import "errors"

var (
	// ErrEmptyBuffer is returned by Init when the buffer cannot hold a
	// message terminator.
	ErrEmptyBuffer = errors.New("numeric: buffer too small to hold a terminator")
	// ErrMissingTerminator is returned by Init when the buffer's last byte
	// is not the newline the wire format requires.
	ErrMissingTerminator = errors.New("numeric: buffer does not end in newline")
)

// Cursor is a borrowed position within a byte buffer: Next is the next
// unconsumed byte, End is the exclusive bound parsing must never cross. The
// buffer is never copied; every slice handed out by a higher-level package
// aliases it.
type Cursor struct {
	Buf  []byte
	Next int
	End  int
}

// Init takes ownership of buf for the lifetime of the returned Cursor. buf
// must end in a newline; Init overwrites that byte with a NUL sentinel so
// the parser can always peek one byte ahead at End without a bounds check,
// and returns a cursor whose End is the sentinel's index.
func Init(buf []byte) (Cursor, error) {
	if len(buf) == 0 {
		return Cursor{}, ErrEmptyBuffer
	}
	if buf[len(buf)-1] != '\n' {
		return Cursor{}, ErrMissingTerminator
	}
	buf[len(buf)-1] = 0
	return Cursor{Buf: buf, Next: 0, End: len(buf) - 1}, nil
}

// Done reports whether the cursor has been consumed up to (or past) its end
// sentinel.
func (c *Cursor) Done() bool {
	return c.Next >= c.End
}

// Peek returns the byte at the cursor's current position without advancing
// it. It is always safe to call: at End, the byte is the sentinel written by
// Init (or, for a sub-cursor, the space that precedes the closing container
// delimiter).
func (c *Cursor) Peek() byte {
	return c.Buf[c.Next]
}

// PeekAt returns the byte offset bytes ahead of Next without advancing,
// clamped to End so lookahead past the sentinel never panics.
func (c *Cursor) PeekAt(offset int) byte {
	i := c.Next + offset
	if i > c.End {
		i = c.End
	}
	return c.Buf[i]
}

// Sub returns a cursor over the half-open byte range [from, to) of the same
// backing buffer. It is used to hand out the interior of a container without
// copying.
func (c *Cursor) Sub(from, to int) Cursor {
	return Cursor{Buf: c.Buf, Next: from, End: to}
}
