package atom

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func mustCursor(t *testing.T, s string) Cursor {
	t.Helper()
	c, err := Init([]byte(s))
	if err != nil {
		t.Fatalf("Init(%q): %v", s, err)
	}
	return c
}

// TestTrivialRequest walks the atom stream from spec.md's "Trivial request"
// scenario: a STRING, a NEGATIVE_INT, an ARRAY of two children, three flavors
// of DOUBLE, a one-byte BYTES payload containing a literal 0x0A, another
// STRING, one more numeric atom, then END. The kind byte ("R ") is stripped;
// this package only sees the atom stream, not the message envelope.
func TestTrivialRequest(t *testing.T) {
	msg := " 3:cmd -123 [ 23 3:abc ] nan inf -inf 1|" + "\n" + " 3:cde abcdp3" + "\n"
	c := mustCursor(t, msg)

	v, err := Any(&c)
	if err != nil || v.Tag != TagString || string(v.Slice) != "cmd" {
		t.Fatalf("atom 1: got %+v, err %v, want STRING(cmd)", v, err)
	}

	v, err = Any(&c)
	if err != nil || v.Tag != TagNegativeInt || v.Uint != 0x123 {
		t.Fatalf("atom 2: got %+v, err %v, want NEGATIVE_INT(0x123)", v, err)
	}

	v, err = Any(&c)
	if err != nil || v.Tag != TagArray {
		t.Fatalf("atom 3: got %+v, err %v, want ARRAY", v, err)
	}
	child, err := Any(&v.Container)
	if err != nil || child.Tag != TagPositiveInt || child.Uint != 0x23 {
		t.Fatalf("array child 1: got %+v, err %v, want POSITIVE_INT(0x23)", child, err)
	}
	child, err = Any(&v.Container)
	if err != nil || child.Tag != TagString || string(child.Slice) != "abc" {
		t.Fatalf("array child 2: got %+v, err %v, want STRING(abc)", child, err)
	}
	child, err = Any(&v.Container)
	if err != nil || child.Tag != TagEnd {
		t.Fatalf("array child 3: got %+v, err %v, want END", child, err)
	}

	v, err = Any(&c)
	if err != nil || v.Tag != TagDouble || !math.IsNaN(v.Double) {
		t.Fatalf("atom 4: got %+v, err %v, want DOUBLE(NaN)", v, err)
	}

	v, err = Any(&c)
	if err != nil || v.Tag != TagDouble || !math.IsInf(v.Double, 1) {
		t.Fatalf("atom 5: got %+v, err %v, want DOUBLE(+Inf)", v, err)
	}

	v, err = Any(&c)
	if err != nil || v.Tag != TagDouble || !math.IsInf(v.Double, -1) {
		t.Fatalf("atom 6: got %+v, err %v, want DOUBLE(-Inf)", v, err)
	}

	v, err = Any(&c)
	if err != nil || v.Tag != TagBytes || !bytes.Equal(v.Slice, []byte{0x0A}) {
		t.Fatalf("atom 7: got %+v, err %v, want BYTES(0x0A)", v, err)
	}

	v, err = Any(&c)
	if err != nil || v.Tag != TagString || string(v.Slice) != "cde" {
		t.Fatalf("atom 8: got %+v, err %v, want STRING(cde)", v, err)
	}

	// abcdp3 = significand 0xabcd, exponent 3: whichever tag the dispatch
	// rule picks, its numeric value must equal 0xabcd<<3.
	v, err = Any(&c)
	if err != nil {
		t.Fatalf("atom 9: %v", err)
	}
	var got float64
	switch v.Tag {
	case TagPositiveInt:
		got = float64(v.Uint)
	case TagDouble:
		got = v.Double
	default:
		t.Fatalf("atom 9: got tag %v, want POSITIVE_INT or DOUBLE", v.Tag)
	}
	if want := float64(uint64(0xabcd) << 3); got != want {
		t.Fatalf("atom 9: got %v, want %v", got, want)
	}

	v, err = Any(&c)
	if err != nil || v.Tag != TagEnd {
		t.Fatalf("atom 10: got %+v, err %v, want END", v, err)
	}
}

// TestContainerDepthLimit mirrors spec.md scenario 6: 16 levels of nested
// arrays must parse, 17 must fail with ErrTooDeep.
func TestContainerDepthLimit(t *testing.T) {
	build := func(depth int) string {
		var b strings.Builder
		for i := 0; i < depth; i++ {
			b.WriteString(" [")
		}
		for i := 0; i < depth; i++ {
			b.WriteString(" ]")
		}
		return b.String()
	}

	c := mustCursor(t, build(16)+"\n")
	if _, err := Any(&c); err != nil {
		t.Fatalf("16 levels of nesting: %v", err)
	}

	c = mustCursor(t, build(17)+"\n")
	if _, err := Any(&c); err != ErrTooDeep {
		t.Fatalf("17 levels of nesting: got %v, want ErrTooDeep", err)
	}
}

func TestMismatchedClose(t *testing.T) {
	c := mustCursor(t, " [ 1 }\n")
	if _, err := Any(&c); err != ErrMismatchedClose {
		t.Fatalf("got %v, want ErrMismatchedClose", err)
	}
}

func TestContainerBijection(t *testing.T) {
	// Iterating the sub-cursor returned for a container must yield exactly
	// its children followed by END, with no leakage into the sibling atom
	// that follows the container in the parent stream.
	c := mustCursor(t, " [ 1 2 ] 3\n")
	v, err := Any(&c)
	if err != nil || v.Tag != TagArray {
		t.Fatalf("outer: got %+v, err %v", v, err)
	}
	var got []uint64
	for {
		child, err := Any(&v.Container)
		if err != nil {
			t.Fatalf("child: %v", err)
		}
		if child.Tag == TagEnd {
			break
		}
		if child.Tag != TagPositiveInt {
			t.Fatalf("child tag = %v, want POSITIVE_INT", child.Tag)
		}
		got = append(got, child.Uint)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("children = %v, want [1 2]", got)
	}

	sibling, err := Any(&c)
	if err != nil || sibling.Tag != TagPositiveInt || sibling.Uint != 3 {
		t.Fatalf("sibling: got %+v, err %v, want POSITIVE_INT(3)", sibling, err)
	}
}

func TestNonCanonicalRejected(t *testing.T) {
	for _, in := range []string{" 100\n", " 01\n", " 0p0\n", " -0\n"} {
		c := mustCursor(t, in)
		if _, err := Any(&c); err == nil {
			t.Errorf("Any(%q) succeeded, want error", in)
		}
	}
}

func TestTypedAccessors(t *testing.T) {
	c := mustCursor(t, " 1f 3:abc T\n")
	i, err := Int64(&c)
	if err != nil || i != 0x1f {
		t.Fatalf("Int64: got %v, err %v", i, err)
	}
	s, err := String(&c)
	if err != nil || string(s) != "abc" {
		t.Fatalf("String: got %q, err %v", s, err)
	}
	b, err := Bool(&c)
	if err != nil || !b {
		t.Fatalf("Bool: got %v, err %v", b, err)
	}
}

func TestInt64RejectsWrongType(t *testing.T) {
	c := mustCursor(t, " T\n")
	if _, err := Int64(&c); err != ErrWrongType {
		t.Fatalf("got %v, want ErrWrongType", err)
	}
}
