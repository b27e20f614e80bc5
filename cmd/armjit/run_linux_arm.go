package main

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// runCompiled maps an executable page, copies the compiled word
// stream into it, and calls it as a parameterless int()-returning
// function. This is the one place in the repository that performs
// the page-allocation and page-protection steps the core package
// deliberately leaves to the caller.
func runCompiled(words []uint32) (int32, error) {
	buf := make([]byte, len(words)*4)
	for i, w := range words {
		buf[i*4] = byte(w)
		buf[i*4+1] = byte(w >> 8)
		buf[i*4+2] = byte(w >> 16)
		buf[i*4+3] = byte(w >> 24)
	}

	mem, err := unix.Mmap(-1, 0, len(buf), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return 0, fmt.Errorf("mmap: %v", err)
	}
	defer unix.Munmap(mem)

	copy(mem, buf)

	if err := unix.Mprotect(mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		return 0, fmt.Errorf("mprotect: %v", err)
	}

	return invoke(&mem[0]), nil
}
