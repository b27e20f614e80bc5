package directory

import "testing"

func TestLastWriterWins(t *testing.T) {
	d := Empty()
	d.Put("x", 0x1000)
	d.Put("x", 0x2000)
	addr, ok := d.Lookup("x")
	if !ok || addr != 0x2000 {
		t.Fatalf("Lookup(x) = (%#x, %v), want (0x2000, true)", addr, ok)
	}
}

func TestLookupMiss(t *testing.T) {
	d := Empty()
	if _, ok := d.Lookup("missing"); ok {
		t.Fatal("Lookup(missing) unexpectedly succeeded")
	}
}

func TestNewFromMap(t *testing.T) {
	d := New(map[string]uint64{"a": 1, "b": 2})
	if d.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", d.Len())
	}
	if addr, ok := d.Lookup("b"); !ok || addr != 2 {
		t.Fatalf("Lookup(b) = (%d, %v), want (2, true)", addr, ok)
	}
}
