package intern

import (
	"strings"
	"testing"
	"unsafe"
)

func TestInternReturnsStoredCopy(t *testing.T) {
	p := New()

	a := p.Intern("iso_a4_210x297mm")
	b := p.Intern(strings.Clone("iso_a4_210x297mm"))

	if a != b {
		t.Fatalf("Intern returned different values: %q vs %q", a, b)
	}
	if unsafe.StringData(a) != unsafe.StringData(b) {
		t.Error("expected equal strings to share storage")
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
}

func TestInternDistinctStrings(t *testing.T) {
	p := New()
	for _, s := range []string{"auto", "main", "manual", "auto", "main"} {
		p.Intern(s)
	}

	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3", p.Len())
	}
	if !p.Contains("manual") {
		t.Error("expected pool to contain manual")
	}
	if p.Contains("tray-1") {
		t.Error("expected pool not to contain tray-1")
	}
}

func TestInternDoesNotAliasCaller(t *testing.T) {
	p := New()
	buf := []byte("stationery")
	s := p.Intern(string(buf))
	buf[0] = 'X'

	if s != "stationery" {
		t.Errorf("interned string changed to %q", s)
	}
}

func TestRelease(t *testing.T) {
	p := New()
	held := p.Intern("photographic")

	p.Release()

	if p.Len() != 0 {
		t.Errorf("Len() after Release = %d, want 0", p.Len())
	}
	if held != "photographic" {
		t.Errorf("held string changed to %q", held)
	}

	// A released pool can be reused.
	p.Intern("labels")
	if p.Len() != 1 {
		t.Errorf("Len() after reuse = %d, want 1", p.Len())
	}

	var nilPool *Pool
	nilPool.Release()
	if nilPool.Len() != 0 || nilPool.Contains("x") {
		t.Error("expected nil pool to be empty")
	}
}
