package main

import (
	"context"
	"io"
	"log"

	"github.com/batchql/batchql/batchbuffer"
	"github.com/batchql/batchql/chunk"
	"github.com/batchql/batchql/config"
)

// demoStep is one unit of work a simulated sink worker performs:
// append a chunk of chunkSize tuples to a batch, optionally declaring
// the batch complete. Steps are interleaved across batches on purpose,
// the way parallel workers would actually arrive out of order.
type demoStep struct {
	batch    uint64
	complete bool
}

// buildDemoSchedule produces an out-of-order arrival pattern across n
// batches: every batch gets two chunks, and batches complete in an
// order that doesn't match their index, so the demo actually exercises
// the watermark's promotion logic instead of draining batches in the
// trivial order they were scheduled.
func buildDemoSchedule(n int) []demoStep {
	var steps []demoStep
	for b := 0; b < n; b++ {
		steps = append(steps, demoStep{batch: uint64(b)})
	}
	for b := n - 1; b >= 0; b-- {
		steps = append(steps, demoStep{batch: uint64(b), complete: true})
	}
	return steps
}

// pipelineExecutor implements batchbuffer.TaskExecutor by working
// through a fixed schedule one step per call, standing in for the
// out-of-scope task-scheduler collaborator that would otherwise drive
// real sink operators.
type pipelineExecutor struct {
	buf  *batchbuffer.Buffer
	size int

	steps []demoStep
	pos   int
}

func (p *pipelineExecutor) ExecuteOneTask(_ context.Context, _ *batchbuffer.StreamingResult) (batchbuffer.TaskStatus, error) {
	if p.pos >= len(p.steps) {
		return batchbuffer.TaskFinished, nil
	}
	step := p.steps[p.pos]
	p.pos++

	if err := p.buf.Append(chunk.NewSized(nil, p.size), step.batch); err != nil {
		return batchbuffer.TaskError, err
	}
	if step.complete {
		p.buf.CompleteBatch(step.batch)
	}
	if p.pos >= len(p.steps) {
		return batchbuffer.TaskFinished, nil
	}
	return batchbuffer.TaskReady, nil
}

// runDemo builds a buffer sized from the loaded config (falling back
// to config.BufferBudgets' defaults), drives the demo pipeline to
// completion through batchbuffer.StreamingResult, and prints each
// chunk's size as it's delivered.
func runDemo(ctx context.Context, out io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	currentBudget, otherBudget, err := config.BufferBudgets(cfg)
	if err != nil {
		return err
	}

	var buf *batchbuffer.Buffer
	executor := &pipelineExecutor{size: chunkSize, steps: buildDemoSchedule(batchCount)}
	buf = batchbuffer.NewBuffer(currentBudget, otherBudget, func() (batchbuffer.TaskExecutor, bool) {
		return executor, true
	})
	executor.buf = buf

	result := batchbuffer.NewStreamingResult(buf)
	delivered := 0
	for {
		c, err := result.Next(ctx)
		if err != nil {
			return err
		}
		if c == nil {
			break
		}
		delivered++
		log.SetOutput(out)
		log.Printf("delivered chunk #%d: %d tuples", delivered, c.Size())
	}
	log.Printf("stream finished, %d chunks delivered", delivered)
	return nil
}
