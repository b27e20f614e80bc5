package debug

import "testing"

func TestCheckSumDeterministic(t *testing.T) {
	words := []uint32{0xE52DE004, 0xE52D4004}
	if CheckSum(words) != CheckSum(words) {
		t.Fatal("CheckSum is not deterministic")
	}
}

func TestCheckSumDiffersOnContent(t *testing.T) {
	a := CheckSum([]uint32{1, 2, 3})
	b := CheckSum([]uint32{1, 2, 4})
	if a == b {
		t.Fatal("different word streams produced the same checksum")
	}
}

func TestListingFormat(t *testing.T) {
	out := Listing([]uint32{0xDEADBEEF})
	want := "   0: deadbeef\n"
	if out != want {
		t.Fatalf("Listing() = %q, want %q", out, want)
	}
}
