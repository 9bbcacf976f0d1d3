// Package atomtesting centralizes the small fixture builders the transport
// and refcache package tests share, the way dsnet-compress's internal/testutil
// centralizes bit-generation helpers for its tests.
package atomtesting

import (
	"testing"

	"github.com/kanshi-io/atomwire/atom"
	"github.com/kanshi-io/atomwire/frame"
)

// Cursor builds a Cursor over text, appending the trailing newline Init
// requires, and fails the test immediately if Init rejects it.
func Cursor(t *testing.T, text string) atom.Cursor {
	t.Helper()
	c, err := atom.Init([]byte(text + "\n"))
	if err != nil {
		t.Fatalf("atomtesting.Cursor(%q): %v", text, err)
	}
	return c
}

// Frame builds a complete length-prefixed frame around a "<kind> <body>"
// envelope, computing the header so test fixtures can be written as plain
// text instead of hand-derived hex lengths.
func Frame(t *testing.T, kind frame.Kind, body string) []byte {
	t.Helper()
	text := string(kind) + " " + body + "\n"
	buf := make([]byte, frame.HeaderSize+len(text))
	buf[4] = '\n'
	copy(buf[frame.HeaderSize:], text)
	if err := frame.Frame(buf); err != nil {
		t.Fatalf("atomtesting.Frame(%q): %v", text, err)
	}
	return buf
}

// Drain reads every remaining atom from c via atom.Any, stopping at END,
// and fails the test on the first parse error.
func Drain(t *testing.T, c *atom.Cursor) []atom.Value {
	t.Helper()
	var out []atom.Value
	for {
		v, err := atom.Any(c)
		if err != nil {
			t.Fatalf("atomtesting.Drain: %v", err)
		}
		if v.Tag == atom.TagEnd {
			return out
		}
		out = append(out, v)
	}
}
