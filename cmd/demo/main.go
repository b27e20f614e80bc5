// Demo: compile a fixed expression and print its AArch32 instruction
// listing and checksum, in the spirit of a reference compiler's own
// smoke-test main.
package main

import (
	"fmt"
	"unsafe"

	"armjit"
	"armjit/debug"
)

func main() {
	const expr = "(x+3)*2"

	x := int32(5)
	externs := map[string]uintptr{
		"x": uintptr(unsafe.Pointer(&x)),
	}

	words, err := armjit.CompileWords(expr, externs)
	if err != nil {
		fmt.Println("compile error:", err)
		return
	}

	fmt.Printf("expression: %s\n", expr)
	fmt.Print(debug.Listing(words))
	fmt.Println("checksum:", debug.CheckSum(words))
}
