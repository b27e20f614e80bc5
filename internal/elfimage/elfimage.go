// Package elfimage packages a compiled AArch32 word stream as a
// minimal, statically-linked ELF executable, so a compiled expression
// can be copied onto real (or emulated) ARM hardware and run directly
// instead of only through the in-process mmap/mprotect path in
// cmd/armjit. Writes a single-segment static image with a proper
// 32-bit ELF header and program header layout, as EM_ARM requires.
package elfimage

import (
	"encoding/binary"
)

const (
	pageSize  = uint32(0x1000)
	baseVaddr = uint32(0x10000) // typical static-PIE-free ARM32 load base
	ehSize    = uint32(52)
	phSize    = uint32(32)

	emARM  = 40
	etExec = 2
	ptLoad = 1
	pfRX   = 1 | 4 // PF_X | PF_R
)

// Build wraps routine (the compiled word stream returned by
// emitter.Emit / armjit.CompileWords) in a three-instruction _start
// trampoline — "bl routine; mov r7,#1; svc #0" — and returns a
// complete ARM32 Linux executable image. The trampoline turns the
// routine's AAPCS return value in r0 directly into the process exit
// code, since sys_exit also takes its status in r0.
func Build(routine []uint32) []byte {
	trampoline := trampolineWords()
	allWords := append(append([]uint32{}, trampoline...), routine...)

	textFileOff := pageSize
	textVaddr := baseVaddr + textFileOff
	textLen := uint32(len(allWords) * 4)

	fileSize := textFileOff + textLen
	buf := make([]byte, fileSize)

	writeHeader(buf, textVaddr)
	writeProgramHeader(buf[ehSize:], textFileOff, textVaddr, textLen)

	for i, w := range allWords {
		binary.LittleEndian.PutUint32(buf[textFileOff+uint32(i)*4:], w)
	}
	return buf
}

// trampolineWords returns the fixed three-word _start sequence. The
// bl offset is a constant because the trampoline's own length is
// fixed: pc-relative to the bl instruction (pc reads as bl's address
// + 8), the routine starts exactly one word after the trampoline's
// last word.
func trampolineWords() []uint32 {
	const blToRoutine = 0xEB000000 | 1 // bl +4 (pc-relative, word-aligned)
	const movR7One = 0xE3A07001        // mov r7, #1  (__NR_exit, EABI)
	const svc0 = 0xEF000000            // svc #0
	return []uint32{blToRoutine, movR7One, svc0}
}

func writeHeader(buf []byte, entry uint32) {
	buf[0], buf[1], buf[2], buf[3] = 0x7f, 'E', 'L', 'F'
	buf[4] = 1 // ELFCLASS32
	buf[5] = 1 // ELFDATA2LSB
	buf[6] = 1 // EV_CURRENT
	// buf[7] EI_OSABI = 0 (System V), buf[8] EI_ABIVERSION = 0, rest padding.

	binary.LittleEndian.PutUint16(buf[16:], etExec)
	binary.LittleEndian.PutUint16(buf[18:], emARM)
	binary.LittleEndian.PutUint32(buf[20:], 1) // e_version
	binary.LittleEndian.PutUint32(buf[24:], entry)
	binary.LittleEndian.PutUint32(buf[28:], ehSize) // e_phoff
	binary.LittleEndian.PutUint32(buf[32:], 0)      // e_shoff
	binary.LittleEndian.PutUint32(buf[36:], 0)      // e_flags
	binary.LittleEndian.PutUint16(buf[40:], uint16(ehSize))
	binary.LittleEndian.PutUint16(buf[42:], uint16(phSize))
	binary.LittleEndian.PutUint16(buf[44:], 1) // e_phnum
	binary.LittleEndian.PutUint16(buf[46:], 0) // e_shentsize
	binary.LittleEndian.PutUint16(buf[48:], 0) // e_shnum
	binary.LittleEndian.PutUint16(buf[50:], 0) // e_shstrndx
}

func writeProgramHeader(buf []byte, fileOff, vaddr, size uint32) {
	binary.LittleEndian.PutUint32(buf[0:], ptLoad)
	binary.LittleEndian.PutUint32(buf[4:], fileOff)
	binary.LittleEndian.PutUint32(buf[8:], vaddr)
	binary.LittleEndian.PutUint32(buf[12:], vaddr) // p_paddr
	binary.LittleEndian.PutUint32(buf[16:], size)   // p_filesz
	binary.LittleEndian.PutUint32(buf[20:], size)   // p_memsz
	binary.LittleEndian.PutUint32(buf[24:], pfRX)
	binary.LittleEndian.PutUint32(buf[28:], pageSize) // p_align
}
