package main

// invoke is implemented in invoke_arm.s: it branches to code and
// returns the AAPCS integer result left in r0.
func invoke(code *byte) int32
