// Package debug provides small diagnostics for compiled output: a
// content checksum and a disassembly-style listing, used by the CLI
// and the root demo to make the determinism property (the same tree
// and directory always produce the same bytes) something a reader can
// eyeball rather than take on faith.
package debug

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// CheckSum hashes the compiled word stream itself, not a filename —
// two compilations of the same expression against the same directory
// must produce the same sum regardless of what either caller decides
// to name its output.
func CheckSum(words []uint32) string {
	buf := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], w)
	}
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:])
}

// Listing renders words as an address-prefixed hex dump, one word per
// line, in the style of a disassembler's raw-bytes column.
func Listing(words []uint32) string {
	var sb strings.Builder
	for i, w := range words {
		fmt.Fprintf(&sb, "%4d: %08x\n", i*4, w)
	}
	return sb.String()
}
