// Package frame implements the 4-hex-digit length-prefixed stream framing
// of spec.md §4.10, and the message envelope (kind byte plus atom stream)
// of §4.11.
package frame

import (
	"errors"

	"github.com/kanshi-io/atomwire/atom"
	"github.com/kanshi-io/atomwire/hexdigit"
)

const (
	// MaxFrameSize is the largest frame the 4-hex-digit length prefix can
	// address.
	MaxFrameSize = 0xFFFF
	// HeaderSize is the length of the big-endian hex length prefix plus
	// its trailing newline.
	HeaderSize = 5
)

var (
	ErrFrameTooLarge   = errors.New("frame: body does not fit the 4-hex-digit length prefix")
	ErrFrameTooSmall   = errors.New("frame: frame must hold at least the header and a terminator")
	ErrMissingHeaderNL = errors.New("frame: buf[4] must be a newline")
	ErrMissingBodyNL   = errors.New("frame: buf[sz-1] must be a newline")
	ErrBadHeader       = errors.New("frame: header is not four hex digits followed by a newline")
	ErrUnprintableKind = errors.New("frame: message kind byte is not printable ASCII")
)

// Frame writes the big-endian 4-hex-digit length of the whole frame
// (header, body, and trailing newline) into buf[0:4]. The caller has
// already written the body into buf[5:], with buf[4] and buf[len(buf)-1]
// holding the newlines the header and body each require.
func Frame(buf []byte) error {
	sz := len(buf)
	if sz < HeaderSize+1 {
		return ErrFrameTooSmall
	}
	if sz > MaxFrameSize {
		return ErrFrameTooLarge
	}
	if buf[4] != '\n' {
		return ErrMissingHeaderNL
	}
	if buf[sz-1] != '\n' {
		return ErrMissingBodyNL
	}
	buf[0] = hexChars[(sz>>12)&0xf]
	buf[1] = hexChars[(sz>>8)&0xf]
	buf[2] = hexChars[(sz>>4)&0xf]
	buf[3] = hexChars[sz&0xf]
	return nil
}

const hexChars = "0123456789abcdef"

// DecodeHeader validates a 5-byte frame header (four hex digits plus a
// newline) and returns the frame's total declared length, header included.
// It only looks at header[0:5]; callers reading a stream one header at a
// time (see the transport package) can call it before the body has even
// arrived.
func DecodeHeader(header []byte) (int, error) {
	if len(header) < HeaderSize {
		return 0, ErrFrameTooSmall
	}
	for i := 0; i < 4; i++ {
		if !hexdigit.IsHex(header[i]) {
			return 0, ErrBadHeader
		}
	}
	if header[4] != '\n' {
		return 0, ErrBadHeader
	}
	return int(hexdigit.HexValue(header[0]))<<12 |
		int(hexdigit.HexValue(header[1]))<<8 |
		int(hexdigit.HexValue(header[2]))<<4 |
		int(hexdigit.HexValue(header[3])), nil
}

// Unframe reads a frame header from the start of buf and reports how many
// bytes the whole frame occupies.
//
//   - If len(buf) < 5, it returns (0, Cursor{}, nil): more data is needed
//     before the header can even be validated.
//   - If the header is malformed, it returns an error.
//   - If the declared length is greater than len(buf), it returns
//     (0, Cursor{}, nil): the header is valid but the body hasn't fully
//     arrived yet.
//   - Otherwise it returns the declared length and a cursor initialized
//     over the frame's body (buf[5:length]).
func Unframe(buf []byte) (length int, body atom.Cursor, err error) {
	if len(buf) < HeaderSize {
		return 0, atom.Cursor{}, nil
	}
	declared, err := DecodeHeader(buf[:HeaderSize])
	if err != nil {
		return 0, atom.Cursor{}, err
	}

	if declared > len(buf) {
		return 0, atom.Cursor{}, nil
	}

	c, err := atom.Init(buf[HeaderSize:declared])
	if err != nil {
		return 0, atom.Cursor{}, err
	}
	return declared, c, nil
}
