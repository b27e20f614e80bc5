// Package batch compiles several independent expressions concurrently,
// exercising the core's re-entrancy guarantee: distinct output
// buffers and distinct directories never interfere with each other
// even when compiled on separate goroutines at once.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"armjit"
)

// Job is one independent compilation request: an expression, its own
// externs, and its own caller-owned output buffer.
type Job struct {
	Expression string
	Externs    map[string]uintptr
	Out        []byte
}

// CompileAll runs every job on its own goroutine and waits for all of
// them. It returns the first error encountered; the other jobs still
// run to completion (errgroup does not cancel siblings on its own —
// ctx is threaded through only so a caller-supplied deadline can stop
// the batch early).
func CompileAll(ctx context.Context, jobs []Job) error {
	g, _ := errgroup.WithContext(ctx)
	for i := range jobs {
		job := jobs[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return armjit.Compile(job.Expression, job.Externs, job.Out)
		})
	}
	return g.Wait()
}
