//go:build !(linux && arm)

package main

import "fmt"

// runCompiled is only meaningful on linux/arm: AArch32 machine code
// cannot be executed directly on any other OS/architecture pair, so
// -run reports why instead of silently doing nothing.
func runCompiled(words []uint32) (int32, error) {
	return 0, fmt.Errorf("-run requires GOOS=linux GOARCH=arm, not this host")
}
