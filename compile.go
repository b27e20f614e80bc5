// Package armjit compiles a textual integer arithmetic expression
// into a stream of AArch32 machine instructions. Compile (and
// CompileWords, which returns the words instead of writing them) is
// the exported boundary: the caller owns the output buffer, owns making
// it executable, and owns invoking it — none of that is this
// package's concern.
package armjit

import (
	"encoding/binary"

	"armjit/internal/directory"
	"armjit/internal/emitter"
	"armjit/internal/errs"
	"armjit/internal/parser"
)

// CompileWords parses expression and emits it as a sequence of
// 32-bit AArch32 words, resolving Variable and Function names against
// externs. Duplicate names in externs collapse to a single entry;
// Go's map already gives last-writer-wins ingestion for free.
func CompileWords(expression string, externs map[string]uintptr) ([]uint32, error) {
	root, err := parser.Parse(expression)
	if err != nil {
		return nil, err
	}
	dir := directory.Empty()
	for name, addr := range externs {
		dir.Put(name, uint64(addr))
	}
	return emitter.Emit(root, dir)
}

// Compile writes the compiled instruction stream into out as
// consecutive little-endian 32-bit words. out must already be
// allocated and at least large enough to hold the result; Compile
// never grows or reallocates it. On error, the contents of out are
// unspecified and must not be executed.
func Compile(expression string, externs map[string]uintptr, out []byte) error {
	words, err := CompileWords(expression, externs)
	if err != nil {
		return err
	}
	need := len(words) * 4
	if len(out) < need {
		return errs.Internalf("output buffer too small: need %d bytes, have %d", need, len(out))
	}
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return nil
}
