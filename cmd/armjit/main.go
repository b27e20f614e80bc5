// Command armjit compiles a textual integer arithmetic expression to
// AArch32 machine code. It is a caller of the armjit package like any
// other: it owns allocating, protecting, and (with -run) invoking the
// compiled buffer, none of which the core library does for it.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"armjit"
	"armjit/debug"
	"armjit/internal/elfimage"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: armjit -expr <expression> [options]\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	fmt.Fprintf(os.Stderr, "  -expr <text>      Expression to compile (required)\n")
	fmt.Fprintf(os.Stderr, "  -sym name=addr    Bind a variable/function name to a fixed address (repeatable)\n")
	fmt.Fprintf(os.Stderr, "  -o <file>         Write the raw little-endian word stream to file\n")
	fmt.Fprintf(os.Stderr, "  -elf <file>       Write a standalone ARM32 ELF executable to file\n")
	fmt.Fprintf(os.Stderr, "  -run              mmap, mprotect and invoke the compiled code (linux/arm only)\n")
	os.Exit(2)
}

func main() {
	var expr, outPath, elfPath string
	var run bool
	syms := map[string]uintptr{}

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-expr":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "Error: -expr requires an argument")
				os.Exit(1)
			}
			expr = args[i]
		case "-sym":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "Error: -sym requires an argument")
				os.Exit(1)
			}
			name, addr, err := parseSym(args[i])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			syms[name] = addr
		case "-o":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "Error: -o requires an argument")
				os.Exit(1)
			}
			outPath = args[i]
		case "-elf":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "Error: -elf requires an argument")
				os.Exit(1)
			}
			elfPath = args[i]
		case "-run":
			run = true
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown option: %s\n", args[i])
			usage()
		}
	}

	if expr == "" {
		usage()
	}

	words, err := armjit.CompileWords(expr, syms)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(debug.Listing(words))
	fmt.Printf("checksum: %s\n", debug.CheckSum(words))

	if outPath != "" {
		if err := writeWords(outPath, words); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if elfPath != "" {
		if err := os.WriteFile(elfPath, elfimage.Build(words), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if run {
		result, err := runCompiled(words)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("result: %d\n", result)
	}
}

func parseSym(spec string) (name string, addr uintptr, err error) {
	i := strings.IndexByte(spec, '=')
	if i < 0 {
		return "", 0, fmt.Errorf("invalid -sym %q, expected name=addr", spec)
	}
	name = spec[:i]
	v, err := strconv.ParseUint(spec[i+1:], 0, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid address in -sym %q: %v", spec, err)
	}
	return name, uintptr(v), nil
}

func writeWords(path string, words []uint32) error {
	buf := make([]byte, len(words)*4)
	for i, w := range words {
		buf[i*4] = byte(w)
		buf[i*4+1] = byte(w >> 8)
		buf[i*4+2] = byte(w >> 16)
		buf[i*4+3] = byte(w >> 24)
	}
	return os.WriteFile(path, buf, 0o644)
}
