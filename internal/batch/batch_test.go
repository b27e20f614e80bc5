package batch

import (
	"context"
	"testing"
)

func TestCompileAllIndependentBuffers(t *testing.T) {
	jobs := []Job{
		{Expression: "1+2", Out: make([]byte, 64)},
		{Expression: "3*4", Out: make([]byte, 64)},
		{Expression: "(1+2)*3", Out: make([]byte, 64)},
	}
	if err := CompileAll(context.Background(), jobs); err != nil {
		t.Fatalf("CompileAll: %v", err)
	}
	for i, j := range jobs {
		zero := true
		for _, b := range j.Out {
			if b != 0 {
				zero = false
				break
			}
		}
		if zero {
			t.Errorf("job %d: output buffer was never written", i)
		}
	}
	if string(jobs[0].Out[:4]) == string(jobs[1].Out[:4]) {
		// not a hard requirement, but differing expressions compiling to
		// the same first word would be a suspiciously strange coincidence
		t.Log("jobs 0 and 1 share a first word; prologue is shared by design")
	}
}

func TestCompileAllReportsErrors(t *testing.T) {
	jobs := []Job{
		{Expression: "1+2", Out: make([]byte, 64)},
		{Expression: "undefined_var", Out: make([]byte, 64)},
	}
	if err := CompileAll(context.Background(), jobs); err == nil {
		t.Fatal("expected an error from the job referencing an undefined name")
	}
}
