// Package transport provides the unix-socket / named-pipe collaborators the
// frame package expects to be plugged into. It hands back a net.Conn or
// net.Listener; ReadMessage and WriteMessage move whole frames over a stream
// using the frame package's header encoding. It does no atom parsing, the way
// kryptco-kr's common/socket package stays a thin wrapper around net.Dial
// and leaves the wire protocol to its callers.
package transport

import (
	"io"
	"os"

	"github.com/kanshi-io/atomwire/frame"
)

// DefaultSocketPath is used when ATOMWIRE_SOCKET is unset.
const DefaultSocketPath = "/tmp/atomwire.sock"

// SocketPath returns the configured socket/pipe path, honoring the
// ATOMWIRE_SOCKET environment variable override the way kryptco-kr's daemon
// honors KR_-prefixed variables for its own two-knob configuration.
func SocketPath() string {
	if p := os.Getenv("ATOMWIRE_SOCKET"); p != "" {
		return p
	}
	return DefaultSocketPath
}

// ReadMessage reads exactly one length-prefixed frame from r and returns its
// raw bytes, header included, ready for frame.Unframe.
func ReadMessage(r io.Reader) ([]byte, error) {
	header := make([]byte, frame.HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	length, err := frame.DecodeHeader(header)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	copy(buf, header)
	if _, err := io.ReadFull(r, buf[frame.HeaderSize:]); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteMessage frames body (a complete "<kind> <atoms>\n" envelope, already
// ending in its own newline, without the header) and writes the whole frame
// to w in one call.
func WriteMessage(w io.Writer, body []byte) error {
	buf := make([]byte, frame.HeaderSize+len(body))
	buf[4] = '\n'
	copy(buf[frame.HeaderSize:], body)
	if err := frame.Frame(buf); err != nil {
		return err
	}
	_, err := w.Write(buf)
	return err
}
