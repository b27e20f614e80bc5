package armjit

import (
	"encoding/binary"
	"testing"
	"unsafe"
)

func TestCompileWritesLittleEndianWords(t *testing.T) {
	words, err := CompileWords("2+3", nil)
	if err != nil {
		t.Fatalf("CompileWords: %v", err)
	}
	out := make([]byte, len(words)*4)
	if err := Compile("2+3", nil, out); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for i, w := range words {
		got := binary.LittleEndian.Uint32(out[i*4:])
		if got != w {
			t.Fatalf("word %d = %#x, want %#x", i, got, w)
		}
	}
}

func TestCompileRejectsUndersizedBuffer(t *testing.T) {
	out := make([]byte, 2)
	if err := Compile("2+3", nil, out); err == nil {
		t.Fatal("expected an error for an undersized output buffer")
	}
}

func TestCompileResolvesExterns(t *testing.T) {
	x := int32(21)
	externs := map[string]uintptr{"x": uintptr(unsafe.Pointer(&x))}
	words, err := CompileWords("x*2", externs)
	if err != nil {
		t.Fatalf("CompileWords: %v", err)
	}
	if len(words) == 0 {
		t.Fatal("expected at least one word")
	}
}

func TestCompilePropagatesParseErrors(t *testing.T) {
	if _, err := CompileWords("(1+2", nil); err == nil {
		t.Fatal("expected a parse error for unbalanced parentheses")
	}
}

// TestEndToEndWordTables pins the exact word stream for each of the
// eight scenarios down to the byte: prologue, every literal pool,
// every arithmetic/call sequence, and epilogue. x, add and mul are
// given fixed synthetic addresses (never dereferenced here — this
// test checks the emitted encoding, not execution) so the expected
// tables are reproducible without touching real memory.
func TestEndToEndWordTables(t *testing.T) {
	const (
		addrX   = 0x2000
		addrAdd = 0x3000
		addrMul = 0x4000
	)

	cases := []struct {
		name    string
		expr    string
		externs map[string]uintptr
		want    []uint32
	}{
		{
			name: "2+3",
			expr: "2+3",
			want: []uint32{
				0xE52DE004, 0xE52D4004,
				0xE59F0000, 0xEA000000, 0x00000002, 0xE52D0004,
				0xE59F0000, 0xEA000000, 0x00000003, 0xE52D0004,
				0xE8BD0003, 0xE0810000, 0xE52D0004,
				0xE49D0004, 0xE8BD8010,
			},
		},
		{
			name: "2*3+4",
			expr: "2*3+4",
			want: []uint32{
				0xE52DE004, 0xE52D4004,
				0xE59F0000, 0xEA000000, 0x00000002, 0xE52D0004,
				0xE59F0000, 0xEA000000, 0x00000003, 0xE52D0004,
				0xE8BD0003, 0xE0000091, 0xE52D0004,
				0xE59F0000, 0xEA000000, 0x00000004, 0xE52D0004,
				0xE8BD0003, 0xE0810000, 0xE52D0004,
				0xE49D0004, 0xE8BD8010,
			},
		},
		{
			name: "2+3*4",
			expr: "2+3*4",
			want: []uint32{
				0xE52DE004, 0xE52D4004,
				0xE59F0000, 0xEA000000, 0x00000002, 0xE52D0004,
				0xE59F0000, 0xEA000000, 0x00000003, 0xE52D0004,
				0xE59F0000, 0xEA000000, 0x00000004, 0xE52D0004,
				0xE8BD0003, 0xE0000091, 0xE52D0004,
				0xE8BD0003, 0xE0810000, 0xE52D0004,
				0xE49D0004, 0xE8BD8010,
			},
		},
		{
			name: "(2+3)*4",
			expr: "(2+3)*4",
			want: []uint32{
				0xE52DE004, 0xE52D4004,
				0xE59F0000, 0xEA000000, 0x00000002, 0xE52D0004,
				0xE59F0000, 0xEA000000, 0x00000003, 0xE52D0004,
				0xE8BD0003, 0xE0810000, 0xE52D0004,
				0xE59F0000, 0xEA000000, 0x00000004, 0xE52D0004,
				0xE8BD0003, 0xE0000091, 0xE52D0004,
				0xE49D0004, 0xE8BD8010,
			},
		},
		{
			name: "-10+3",
			expr: "-10+3",
			want: []uint32{
				0xE52DE004, 0xE52D4004,
				0xE59F0000, 0xEA000000, 0x00000000, 0xE52D0004,
				0xE59F0000, 0xEA000000, 0x0000000a, 0xE52D0004,
				0xE8BD0003, 0xE0410000, 0xE52D0004,
				0xE59F0000, 0xEA000000, 0x00000003, 0xE52D0004,
				0xE8BD0003, 0xE0810000, 0xE52D0004,
				0xE49D0004, 0xE8BD8010,
			},
		},
		{
			name:    "x*2",
			expr:    "x*2",
			externs: map[string]uintptr{"x": addrX},
			want: []uint32{
				0xE52DE004, 0xE52D4004,
				0xE59F0000, 0xEA000000, addrX, 0xE5900000, 0xE52D0004,
				0xE59F0000, 0xEA000000, 0x00000002, 0xE52D0004,
				0xE8BD0003, 0xE0000091, 0xE52D0004,
				0xE49D0004, 0xE8BD8010,
			},
		},
		{
			name:    "add(2,3)",
			expr:    "add(2,3)",
			externs: map[string]uintptr{"add": addrAdd},
			want: []uint32{
				0xE52DE004, 0xE52D4004,
				0xE59F0000, 0xEA000000, 0x00000002, 0xE52D0004,
				0xE59F0000, 0xEA000000, 0x00000003, 0xE52D0004,
				0xE49D1004, 0xE49D0004,
				0xE59F4000, 0xEA000000, addrAdd,
				0xE12FFF34,
				0xE52D0004,
				0xE49D0004, 0xE8BD8010,
			},
		},
		{
			name:    "add(mul(2,3),4)",
			expr:    "add(mul(2,3),4)",
			externs: map[string]uintptr{"add": addrAdd, "mul": addrMul},
			want: []uint32{
				0xE52DE004, 0xE52D4004,
				0xE59F0000, 0xEA000000, 0x00000002, 0xE52D0004,
				0xE59F0000, 0xEA000000, 0x00000003, 0xE52D0004,
				0xE49D1004, 0xE49D0004,
				0xE59F4000, 0xEA000000, addrMul,
				0xE12FFF34,
				0xE52D0004,
				0xE59F0000, 0xEA000000, 0x00000004, 0xE52D0004,
				0xE49D1004, 0xE49D0004,
				0xE59F4000, 0xEA000000, addrAdd,
				0xE12FFF34,
				0xE52D0004,
				0xE49D0004, 0xE8BD8010,
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := CompileWords(c.expr, c.externs)
			if err != nil {
				t.Fatalf("CompileWords(%q): %v", c.expr, err)
			}
			if len(got) != len(c.want) {
				t.Fatalf("%s: got %d words, want %d\ngot:  %#08x\nwant: %#08x", c.expr, len(got), len(c.want), got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Fatalf("%s: word %d = %#08x, want %#08x", c.expr, i, got[i], c.want[i])
				}
			}
		})
	}
}
