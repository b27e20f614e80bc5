// Package emitter lowers an expression tree (armjit/internal/ast) to
// a byte-exact AArch32 instruction stream in two stages: a single
// post-order walk builds a neutral list of intermediate instructions
// (internal/arch/arm32), and a second pass translates each one to its
// raw 32-bit encoding. Splitting the walk from the encoding keeps the
// tree-shaped logic architecture-agnostic and the architecture-specific
// bit formulas in one place.
package emitter

import (
	"fmt"

	"armjit/internal/arch"
	"armjit/internal/arch/arm32"
	"armjit/internal/ast"
	"armjit/internal/directory"
	"armjit/internal/errs"
)

// Emitter walks an AST against a fixed directory of resolved names.
type Emitter struct {
	dir *directory.Directory
}

func New(dir *directory.Directory) *Emitter {
	return &Emitter{dir: dir}
}

// Build produces the full intermediate instruction list for root,
// including the fixed prologue and epilogue.
func (e *Emitter) Build(root *ast.Node) ([]arm32.Instr, error) {
	out := prologue()
	body, err := e.walk(root)
	if err != nil {
		return nil, err
	}
	out = append(out, body...)
	out = append(out, epilogue()...)
	return out, nil
}

func prologue() []arm32.Instr {
	return []arm32.Instr{
		{Op: arm32.PushReg, RegA: arch.LR},
		{Op: arm32.PushReg, RegA: arch.R4},
	}
}

func epilogue() []arm32.Instr {
	return []arm32.Instr{
		{Op: arm32.PopReg, RegA: arch.R0},
		{Op: arm32.PopMultReg, RegA: arch.R4, RegB: arch.PC},
	}
}

// loadLiteral emits the three-word inline literal pool idiom that
// materializes payload into reg: ldr reg,[pc] / b skip / .word
// payload. WordDecl carries no bytes of its own — arm32.Translate
// folds it into the preceding LdrFromNext.
func loadLiteral(reg arch.Register, payload string) []arm32.Instr {
	return []arm32.Instr{
		{Op: arm32.LdrFromNext, RegA: reg, Payload: payload},
		{Op: arm32.WordDecl, Payload: payload},
	}
}

func (e *Emitter) walk(n *ast.Node) ([]arm32.Instr, error) {
	switch n.Tag {
	case ast.Constant:
		out := loadLiteral(arch.R0, n.Content)
		out = append(out, arm32.Instr{Op: arm32.PushReg, RegA: arch.R0})
		return out, nil

	case ast.Variable:
		addr, ok := e.dir.Lookup(n.Content)
		if !ok {
			return nil, errs.NotFound(n.Content)
		}
		out := loadLiteral(arch.R0, fmt.Sprintf("0x%x", addr))
		out = append(out,
			arm32.Instr{Op: arm32.LdrReg, RegA: arch.R0},
			arm32.Instr{Op: arm32.PushReg, RegA: arch.R0},
		)
		return out, nil

	case ast.Plus, ast.Minus, ast.Product:
		left, err := e.walk(n.Left())
		if err != nil {
			return nil, err
		}
		right, err := e.walk(n.Right())
		if err != nil {
			return nil, err
		}
		out := append(left, right...)
		out = append(out, arm32.Instr{Op: arm32.PopMultReg, RegA: arch.R0, RegB: arch.R1})
		out = append(out, arm32.Instr{Op: arithOp(n.Tag), RegA: arch.R0, RegB: arch.R1})
		out = append(out, arm32.Instr{Op: arm32.PushReg, RegA: arch.R0})
		return out, nil

	case ast.Function:
		if len(n.Children) == 0 || len(n.Children) > len(arch.ArgRegisters) {
			return nil, errs.Internalf("function %q takes between 1 and %d arguments, got %d", n.Content, len(arch.ArgRegisters), len(n.Children))
		}
		addr, ok := e.dir.Lookup(n.Content)
		if !ok {
			return nil, errs.NotFound(n.Content)
		}

		var out []arm32.Instr
		for _, arg := range n.Children {
			argInstrs, err := e.walk(arg)
			if err != nil {
				return nil, err
			}
			out = append(out, argInstrs...)
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			out = append(out, arm32.Instr{Op: arm32.PopReg, RegA: arch.ArgRegisters[i]})
		}
		out = append(out, loadLiteral(arch.R4, fmt.Sprintf("0x%x", addr))...)
		out = append(out, arm32.Instr{Op: arm32.BLX, RegA: arch.R4})
		out = append(out, arm32.Instr{Op: arm32.PushReg, RegA: arch.R0})
		return out, nil

	default:
		return nil, errs.Internalf("unknown node tag %v", n.Tag)
	}
}

func arithOp(tag ast.Tag) arm32.Op {
	switch tag {
	case ast.Plus:
		return arm32.ADD
	case ast.Minus:
		return arm32.SUB
	case ast.Product:
		return arm32.MUL
	default:
		panic("arithOp called on non-arithmetic tag")
	}
}

// Words translates a full intermediate instruction list to raw
// little-endian AArch32 words.
func Words(instrs []arm32.Instr) ([]uint32, error) {
	var words []uint32
	for _, in := range instrs {
		w, err := arm32.Translate(in)
		if err != nil {
			return nil, err
		}
		words = append(words, w...)
	}
	return words, nil
}

// Emit is the Build+Words convenience entry point the top-level
// Compile function drives.
func Emit(root *ast.Node, dir *directory.Directory) ([]uint32, error) {
	instrs, err := New(dir).Build(root)
	if err != nil {
		return nil, err
	}
	return Words(instrs)
}
