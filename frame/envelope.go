package frame

import "github.com/kanshi-io/atomwire/atom"

// Kind is a message envelope's leading byte, identifying what role the
// atoms that follow play (request, success reply, error reply, or a
// handle-carrying side-channel message).
type Kind byte

const (
	Request       Kind = 'R'
	Success       Kind = 'S'
	ErrorKind     Kind = 'E'
	HandleCarrier Kind = 'W'
)

// Peek returns the message-kind byte at c.Next without consuming it.
func Peek(c *atom.Cursor) (Kind, error) {
	if c.Next >= c.End || c.Buf[c.Next] <= ' ' || c.Buf[c.Next] > '~' {
		return 0, ErrUnprintableKind
	}
	return Kind(c.Buf[c.Next]), nil
}

// Start is Peek, but also advances past the kind byte so the next call to
// atom.Next/atom.Any sees the mandatory leading space before the first
// payload atom.
func Start(c *atom.Cursor) (Kind, error) {
	k, err := Peek(c)
	if err != nil {
		return 0, err
	}
	c.Next++
	return k, nil
}

// End drains every remaining atom in c until END, for skipping a message
// whose payload the caller doesn't need to inspect.
func End(c *atom.Cursor) error {
	for {
		v, err := atom.Any(c)
		if err != nil {
			return err
		}
		if v.Tag == atom.TagEnd {
			return nil
		}
	}
}
