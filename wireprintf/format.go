// Package wireprintf implements the printf-like atom formatter of spec.md
// §4.9: a small placeholder language that renders directly-typed arguments
// as canonical wire atoms, with the same two-pass direct-write/measure-only
// contract as the reference implementation so that callers can size a
// buffer ahead of time instead of growing one dynamically.
package wireprintf

import (
	"errors"

	"github.com/kanshi-io/atomwire/atom"
	"github.com/kanshi-io/atomwire/numeric"
)

// MaxAtomSize is the safety margin below which Format switches from writing
// directly into the destination buffer to a measurement-only pass: no
// single primitive placeholder (integer or double) needs more than this
// many bytes, so once less headroom than this remains, any further direct
// write risks running past the buffer.
const MaxAtomSize = 20

var (
	ErrMalformedFormat = errors.New("wireprintf: malformed format string")
	ErrMissingArg      = errors.New("wireprintf: too few arguments for format string")
	ErrArgType         = errors.New("wireprintf: argument does not match its placeholder")
)

type argCursor struct {
	args []interface{}
	pos  int
}

func (a *argCursor) next() (interface{}, error) {
	if a.pos >= len(a.args) {
		return nil, ErrMissingArg
	}
	v := a.args[a.pos]
	a.pos++
	return v, nil
}

// Format renders format against args into buf. It returns:
//
//   - (-1, err) for a malformed format string or a mistyped/missing argument.
//   - (n, nil) with n <= len(buf) on success: n is the number of bytes
//     written, not counting the trailing NUL Format always writes at buf[n].
//   - (n, nil) with n > len(buf): the result did not fit; n is the buffer
//     size that would be needed and buf's contents are unspecified.
func Format(buf []byte, format string, args ...interface{}) (int, error) {
	ac := &argCursor{args: args}
	sz := 0
	rest := format

	for sz+MaxAtomSize < len(buf) {
		if len(rest) == 0 {
			buf[sz] = 0
			return sz, nil
		}
		ch := rest[0]
		rest = rest[1:]
		if ch != '%' {
			buf[sz] = ch
			sz++
			continue
		}
		verb, tail, err := parseVerb(rest)
		if err != nil {
			return -1, err
		}
		rest = tail
		n, err := writeArg(buf[sz:], verb, ac)
		if err != nil {
			return -1, err
		}
		sz += n
	}

	// Out of direct-write headroom: switch to measuring into a fixed-size
	// scratch buffer, accumulating only the byte count each placeholder
	// would need.
	// The size returned keeps MaxAtomSize of headroom past the trailing NUL,
	// so a retry with a buffer of that size stays in direct-write mode.
	var scratch [MaxAtomSize]byte
	for {
		if len(rest) == 0 {
			sz++ // trailing NUL
			return sz + MaxAtomSize, nil
		}
		ch := rest[0]
		rest = rest[1:]
		if ch != '%' {
			sz++
			continue
		}
		verb, tail, err := parseVerb(rest)
		if err != nil {
			return -1, err
		}
		rest = tail
		n, err := writeArg(scratch[:], verb, ac)
		if err != nil {
			return -1, err
		}
		sz += n
	}
}

// parseVerb consumes one placeholder (the part after '%') from format and
// returns its canonical spelling plus what remains.
func parseVerb(format string) (verb, rest string, err error) {
	if len(format) == 0 {
		return "", "", ErrMalformedFormat
	}
	switch format[0] {
	case 'p', 'o', 'i', 'd', 'u', 'f', 'e', 'g', '%', 's':
		return format[:1], format[1:], nil
	case 'z':
		if len(format) >= 2 && (format[1] == 'i' || format[1] == 'u') {
			return format[:2], format[2:], nil
		}
	case 'l':
		if len(format) >= 3 && format[1] == 'l' {
			switch format[2] {
			case 'i', 'd', 'u':
				return format[:3], format[3:], nil
			}
			return "", "", ErrMalformedFormat
		}
		if len(format) >= 2 {
			switch format[1] {
			case 'i', 'd', 'u':
				return format[:2], format[2:], nil
			}
		}
	case '*':
		if len(format) >= 2 && (format[1] == 's' || format[1] == 'p') {
			return format[:2], format[2:], nil
		}
	case '.':
		if len(format) >= 3 && format[1] == '*' && format[2] == 's' {
			return format[:3], format[3:], nil
		}
	}
	return "", "", ErrMalformedFormat
}

// writeArg renders one placeholder into dst (which may be an undersized
// scratch buffer in measurement mode) and reports the canonical byte count
// it needs, consuming whatever arguments the placeholder requires from ac.
func writeArg(dst []byte, verb string, ac *argCursor) (int, error) {
	switch verb {
	case "o":
		v, err := ac.next()
		if err != nil {
			return 0, err
		}
		b, ok := v.(bool)
		if !ok {
			return 0, ErrArgType
		}
		return writeBytes(dst, []byte{boolChar(b)}), nil

	case "i", "d", "li", "ld", "lli", "lld", "zi":
		v, err := ac.next()
		if err != nil {
			return 0, err
		}
		n, ok := toInt64(v)
		if !ok {
			return 0, ErrArgType
		}
		return writeBytes(dst, appendInt64(nil, n)), nil

	case "u", "lu", "llu", "zu":
		v, err := ac.next()
		if err != nil {
			return 0, err
		}
		n, ok := toUint64(v)
		if !ok {
			return 0, ErrArgType
		}
		return writeBytes(dst, numeric.AppendUint64(nil, n)), nil

	case "f", "e", "g":
		v, err := ac.next()
		if err != nil {
			return 0, err
		}
		f, ok := toFloat64(v)
		if !ok {
			return 0, ErrArgType
		}
		return writeBytes(dst, numeric.AppendDouble(nil, f)), nil

	case "%":
		return writeBytes(dst, []byte{'%'}), nil

	case "s":
		v, err := ac.next()
		if err != nil {
			return 0, err
		}
		s, ok := v.(string)
		if !ok {
			return 0, ErrArgType
		}
		return writeSizedString(dst, ':', []byte(s)), nil

	case "*s", "*p":
		n, err := ac.next()
		if err != nil {
			return 0, err
		}
		want, ok := toInt64(n)
		if !ok {
			return 0, ErrArgType
		}
		raw, err := ac.next()
		if err != nil {
			return 0, err
		}
		payload, err := toBytes(raw)
		if err != nil {
			return 0, err
		}
		if int64(len(payload)) != want {
			return 0, ErrArgType
		}
		delim := byte(':')
		if verb == "*p" {
			delim = '|'
		}
		return writeSizedString(dst, delim, payload), nil

	case ".*s":
		n, err := ac.next()
		if err != nil {
			return 0, err
		}
		want, ok := toInt64(n)
		if !ok {
			return 0, ErrArgType
		}
		raw, err := ac.next()
		if err != nil {
			return 0, err
		}
		payload, err := toBytes(raw)
		if err != nil {
			return 0, err
		}
		if int64(len(payload)) != want {
			return 0, ErrArgType
		}
		return writeBytes(dst, payload), nil

	case "p":
		v, err := ac.next()
		if err != nil {
			return 0, err
		}
		value, ok := v.(atom.Value)
		if !ok {
			return 0, ErrArgType
		}
		return writeAtom(dst, value)

	default:
		return 0, ErrMalformedFormat
	}
}

func writeAtom(dst []byte, v atom.Value) (int, error) {
	switch v.Tag {
	case atom.TagBool:
		return writeBytes(dst, []byte{boolChar(v.Bool)}), nil
	case atom.TagPositiveInt:
		return writeBytes(dst, numeric.AppendUint64(nil, v.Uint)), nil
	case atom.TagNegativeInt:
		return writeBytes(dst, numeric.AppendInt64(nil, true, v.Uint)), nil
	case atom.TagDouble:
		return writeBytes(dst, numeric.AppendDouble(nil, v.Double)), nil
	case atom.TagString:
		return writeSizedString(dst, ':', v.Slice), nil
	case atom.TagBytes:
		return writeSizedString(dst, '|', v.Slice), nil
	case atom.TagReference:
		return writeSizedString(dst, '@', v.Slice), nil
	case atom.TagArray:
		interior := v.Container.Buf[v.Container.Next:v.Container.End]
		return writeContainer(dst, '[', ']', interior), nil
	case atom.TagMap:
		interior := v.Container.Buf[v.Container.Next:v.Container.End]
		return writeContainer(dst, '{', '}', interior), nil
	default:
		return 0, ErrArgType
	}
}

func appendInt64(dst []byte, v int64) []byte {
	if v < 0 {
		mag := uint64(-(v + 1)) + 1 // avoids overflow for v == math.MinInt64
		return numeric.AppendInt64(dst, true, mag)
	}
	return numeric.AppendInt64(dst, false, uint64(v))
}

func boolChar(b bool) byte {
	if b {
		return 'T'
	}
	return 'F'
}

func writeBytes(dst []byte, out []byte) int {
	if len(out) <= len(dst) {
		copy(dst, out)
	}
	return len(out)
}

// writeSizedString renders spec.md §4.9.3: a hex length prefix (always
// attempted; it is at most a handful of bytes and the caller guarantees
// enough headroom for that much), the delimiter, then the payload copied
// only if the whole thing fits in dst.
func writeSizedString(dst []byte, delim byte, payload []byte) int {
	prefix := numeric.AppendHex(nil, uint64(len(payload)))
	n := 0
	if len(prefix) <= len(dst) {
		copy(dst, prefix)
	}
	n += len(prefix)
	if n < len(dst) {
		dst[n] = delim
	}
	n++
	if n+len(payload) <= len(dst) {
		copy(dst[n:], payload)
	}
	return n + len(payload)
}

// writeContainer renders the open byte, the interior (which already starts
// each child with its separating space), then a space and the close byte.
func writeContainer(dst []byte, open, close byte, interior []byte) int {
	need := 1 + len(interior) + 2
	if need <= len(dst) {
		dst[0] = open
		copy(dst[1:], interior)
		dst[1+len(interior)] = ' '
		dst[2+len(interior)] = close
	}
	return need
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func toUint64(v interface{}) (uint64, bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	}
	return 0, false
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func toBytes(v interface{}) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	}
	return nil, ErrArgType
}
