package batchbuffer

import (
	"context"
	"log"

	"github.com/batchql/batchql/chunk"
	"github.com/batchql/batchql/dberr"
)

// TaskStatus is the result of driving one pipeline task to the next
// yield point.
type TaskStatus int

const (
	TaskReady TaskStatus = iota
	TaskBlocked
	TaskFinished
	TaskError
)

// TaskExecutor is the task-system contract the buffer drives while
// replenishing itself: execute one unit of pipeline work and report
// where things stand.
type TaskExecutor interface {
	ExecuteOneTask(ctx context.Context, result *StreamingResult) (TaskStatus, error)
}

// StreamingResult is the consumer-facing handle over a Buffer: each
// call to Next either hands back the next buffered chunk or drives the
// pipeline until one is available.
type StreamingResult struct {
	buf *Buffer
}

// NewStreamingResult wraps a buffer for consumer-side iteration.
func NewStreamingResult(buf *Buffer) *StreamingResult {
	return &StreamingResult{buf: buf}
}

// Replenish is the driver step: if the buffer already holds enough to
// satisfy the consumer it returns immediately, otherwise it
// alternates unblocking eligible sinks and running pipeline tasks
// until the buffer fills or the pipeline finishes.
func (b *Buffer) Replenish(ctx context.Context, result *StreamingResult) (TaskStatus, error) {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		log.Println("replenish called on a closed buffer")
		return TaskError, ErrClosed()
	}

	if b.BufferIsFull() {
		return TaskReady, nil
	}

	b.mu.Lock()
	resolve := b.resolveExecutor
	b.mu.Unlock()
	if resolve == nil {
		log.Println("replenish found no executor left to drive, stream already ended")
		return TaskFinished, nil
	}
	executor, ok := resolve()
	if !ok {
		log.Println("replenish couldn't upgrade the client handle, stream already ended")
		return TaskFinished, nil
	}

	log.Println("buffer not full, driving pipeline tasks")
	for {
		b.UnblockSinks()

		status, err := executor.ExecuteOneTask(ctx, result)
		if err != nil {
			log.Println("pipeline task errored: ", err)
			return TaskError, dberr.Wrap(err, dberr.KindExecution)
		}
		if status == TaskFinished {
			log.Println("pipeline finished, stopping replenish loop")
			return status, nil
		}
		if status == TaskError {
			return status, nil
		}
		if b.BufferIsFull() {
			return TaskReady, nil
		}
	}
}

// Next returns the next chunk in the stream, driving the pipeline via
// Replenish whenever nothing is queued. It returns (nil, nil) at a
// clean end of stream.
func (r *StreamingResult) Next(ctx context.Context) (chunk.Sizer, error) {
	for {
		// Only take what is already queued here: Scan on an empty buffer
		// ends the stream, so it waits until the pipeline has finished.
		if c, ok := r.buf.popFront(); ok {
			return c, nil
		}

		status, err := r.buf.Replenish(ctx, r)
		if err != nil {
			return nil, err
		}
		if status == TaskFinished {
			// Give the buffer one last chance to drain anything the
			// final task produced before declaring end of stream.
			if c, ok := r.buf.Scan(); ok {
				return c, nil
			}
			return nil, nil
		}
		// TaskReady: loop and pop again, the buffer now has data.
	}
}
