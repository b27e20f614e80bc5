package ast

import "testing"

func TestZeroConstant(t *testing.T) {
	z := ZeroConstant()
	if z.Tag != Constant || z.Content != "0x0" {
		t.Fatalf("ZeroConstant() = %+v, want Constant 0x0", z)
	}
}

func TestLeftRight(t *testing.T) {
	n := &Node{Tag: Plus, Children: []*Node{
		{Tag: Constant, Content: "0x1"},
		{Tag: Constant, Content: "0x2"},
	}}
	if n.Left().Content != "0x1" || n.Right().Content != "0x2" {
		t.Fatalf("Left/Right mismatch on %+v", n)
	}
}

func TestTagString(t *testing.T) {
	tags := []Tag{Constant, Variable, Plus, Minus, Product, Function}
	for _, tg := range tags {
		if tg.String() == "unknown" {
			t.Errorf("Tag %d stringified as unknown", tg)
		}
	}
}
