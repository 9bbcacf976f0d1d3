package frame

import (
	"testing"

	"github.com/kanshi-io/atomwire/atom"
)

func TestFrameUnframeRoundTrip(t *testing.T) {
	body := "R 3:cmd\n"
	buf := make([]byte, HeaderSize+len(body))
	buf[4] = '\n'
	copy(buf[HeaderSize:], body)

	if err := Frame(buf); err != nil {
		t.Fatalf("Frame: %v", err)
	}

	length, cursor, err := Unframe(buf)
	if err != nil {
		t.Fatalf("Unframe: %v", err)
	}
	if length != len(buf) {
		t.Fatalf("length = %d, want %d", length, len(buf))
	}

	kind, err := Start(&cursor)
	if err != nil || kind != Request {
		t.Fatalf("Start: got %v, err %v, want Request", kind, err)
	}
	v, err := atom.Next(&cursor)
	if err != nil || v.Tag != atom.TagString || string(v.Slice) != "cmd" {
		t.Fatalf("payload atom: got %+v, err %v", v, err)
	}
	v, err = atom.Next(&cursor)
	if err != nil || v.Tag != atom.TagEnd {
		t.Fatalf("expected END, got %+v, err %v", v, err)
	}
}

func TestUnframeNeedsMoreData(t *testing.T) {
	length, _, err := Unframe([]byte("000"))
	if err != nil || length != 0 {
		t.Fatalf("short header: got length %d, err %v, want (0, nil)", length, err)
	}

	// A valid, complete header claiming a body longer than what's
	// available yet.
	length, _, err = Unframe([]byte("00ff\n"))
	if err != nil || length != 0 {
		t.Fatalf("incomplete body: got length %d, err %v, want (0, nil)", length, err)
	}
}

func TestUnframeBadHeader(t *testing.T) {
	if _, _, err := Unframe([]byte("00zz\nx")); err != ErrBadHeader {
		t.Fatalf("got %v, want ErrBadHeader", err)
	}
	if _, _, err := Unframe([]byte("0005x")); err != ErrBadHeader {
		t.Fatalf("got %v, want ErrBadHeader", err)
	}
}

func TestFramePreconditions(t *testing.T) {
	buf := make([]byte, 4)
	if err := Frame(buf); err != ErrFrameTooSmall {
		t.Fatalf("got %v, want ErrFrameTooSmall", err)
	}

	buf = make([]byte, 8)
	buf[4] = 'x'
	buf[7] = '\n'
	if err := Frame(buf); err != ErrMissingHeaderNL {
		t.Fatalf("got %v, want ErrMissingHeaderNL", err)
	}
}

func TestEndDrainsToCompletion(t *testing.T) {
	c, err := atom.Init([]byte(" 1 2 [ 3 ] 4\n"))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := End(&c); err != nil {
		t.Fatalf("End: %v", err)
	}
	if !c.Done() {
		t.Fatalf("cursor not fully drained")
	}
}

func TestPeekUnprintableKind(t *testing.T) {
	c, err := atom.Init([]byte("\n"))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := Peek(&c); err != ErrUnprintableKind {
		t.Fatalf("got %v, want ErrUnprintableKind", err)
	}
}
