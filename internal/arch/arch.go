// Package arch defines the register set the emitter targets, kept
// separate from internal/arch/arm32's instruction tables: register
// identifiers are shared vocabulary between the emitter and the
// encoding tables, while the raw bit formulas belong to the
// architecture-specific subpackage.
package arch

// Register is one of the seven AArch32 registers this compiler ever
// names explicitly.
type Register int

const (
	R0 Register = iota
	R1
	R2
	R3
	R4
	LR
	PC
)

func (r Register) String() string {
	switch r {
	case R0:
		return "r0"
	case R1:
		return "r1"
	case R2:
		return "r2"
	case R3:
		return "r3"
	case R4:
		return "r4"
	case LR:
		return "lr"
	case PC:
		return "pc"
	default:
		return "unknown"
	}
}

// ParseRegister maps a lowercase register name, as produced by
// String, back to its Register.
func ParseRegister(s string) (Register, bool) {
	switch s {
	case "r0":
		return R0, true
	case "r1":
		return R1, true
	case "r2":
		return R2, true
	case "r3":
		return R3, true
	case "r4":
		return R4, true
	case "lr":
		return LR, true
	case "pc":
		return PC, true
	default:
		return 0, false
	}
}

// ArgRegisters lists the registers, in order, that hold the first
// four function-call arguments under AAPCS.
var ArgRegisters = [4]Register{R0, R1, R2, R3}
