// Package batchbuffer implements the batched, batch-ordered streaming
// buffer that sits between a pool of producer sink workers and a
// single consumer driver: admission control keyed on two tuple
// budgets, a watermark that promotes completed future batches into
// the scannable queue, and a blocked-sink token protocol that lets
// producers suspend instead of spinning when the buffer is full.
package batchbuffer

import (
	"log"
	"sync"

	"github.com/google/btree"

	"github.com/batchql/batchql/chunk"
)

// batchEntry holds the chunks accumulated so far for a batch that has
// not yet reached the watermark, plus whether the producer has
// signalled it is done appending to it. It implements btree.Item so
// the in-progress set can be walked in ascending batch-index order.
type batchEntry struct {
	index     uint64
	chunks    []chunk.Sizer
	completed bool
}

func (e *batchEntry) Less(than btree.Item) bool {
	return e.index < than.(*batchEntry).index
}

// Buffer is the batched buffered-data queue. The zero value is not
// usable; construct with NewBuffer.
type Buffer struct {
	mu sync.Mutex

	minBatch   uint64
	batches    []chunk.Sizer
	inProgress *btree.BTree

	blockedSinks map[uint64]*BlockedSinkToken

	currentTuples int
	otherTuples   int
	currentBudget int
	otherBudget   int

	closed bool

	// resolveExecutor is the weak handle to the driving client context:
	// Replenish upgrades it for the duration of a task and Scan clears
	// it once the stream has genuinely ended, so the buffer never
	// extends the context's lifetime beyond the pipeline's own.
	resolveExecutor func() (TaskExecutor, bool)
}

// NewBuffer constructs an empty buffer with the given admission
// budgets for the current batch and for all other (future) batches.
func NewBuffer(currentBudget, otherBudget int, resolveExecutor func() (TaskExecutor, bool)) *Buffer {
	return &Buffer{
		inProgress:      btree.New(8),
		blockedSinks:    make(map[uint64]*BlockedSinkToken),
		currentBudget:   currentBudget,
		otherBudget:     otherBudget,
		resolveExecutor: resolveExecutor,
	}
}

// Append adds a chunk produced for the given batch. The caller must
// already have been admitted (see ShouldBlock); Append does not block.
func (b *Buffer) Append(c chunk.Sizer, batch uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed()
	}
	if batch < b.minBatch {
		return errAppendBelowWatermark(batch, b.minBatch)
	}

	if batch == b.minBatch {
		b.currentTuples += c.Size()
		b.batches = append(b.batches, c)
		return nil
	}

	item := b.inProgress.Get(&batchEntry{index: batch})
	var entry *batchEntry
	if item == nil {
		entry = &batchEntry{index: batch}
	} else {
		entry = item.(*batchEntry)
	}
	// A fresh append always un-completes the batch: completion only
	// means "no further appends will occur", so another append
	// retracts that claim until CompleteBatch is called again.
	entry.completed = false
	entry.chunks = append(entry.chunks, c)
	b.otherTuples += c.Size()
	b.inProgress.ReplaceOrInsert(entry)
	return nil
}

// CompleteBatch marks a batch as having received its last chunk. If
// the batch is not (or no longer) in progress — e.g. it was already
// promoted — the call is a no-op.
func (b *Buffer) CompleteBatch(batch uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	item := b.inProgress.Get(&batchEntry{index: batch})
	if item == nil {
		return
	}
	item.(*batchEntry).completed = true
}

// ShouldBlock reports whether a sink producing for batch should
// suspend rather than append immediately.
func (b *Buffer) ShouldBlock(batch uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if batch == b.minBatch {
		return b.currentTuples >= b.currentBudget
	}
	return b.otherTuples >= b.otherBudget
}

// RegisterBlockedSink records a token to be fired once room frees up
// for the given batch. At most one token may be registered per batch
// at a time, and none once the buffer is closed.
func (b *Buffer) RegisterBlockedSink(token *BlockedSinkToken, batch uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed()
	}
	if _, exists := b.blockedSinks[batch]; exists {
		return errDuplicateBlockedSink(batch)
	}
	b.blockedSinks[batch] = token
	log.Println("sink waiting on batch ", batch)
	return nil
}

// UnblockSinks fires and removes every blocked token whose batch no
// longer should_block. The order tokens fire in is unspecified.
func (b *Buffer) UnblockSinks() {
	b.mu.Lock()
	var toFire []*BlockedSinkToken
	var toFireBatches []uint64
	for batch, token := range b.blockedSinks {
		blocked := b.isBlockedLocked(batch)
		if blocked {
			continue
		}
		toFire = append(toFire, token)
		toFireBatches = append(toFireBatches, batch)
		delete(b.blockedSinks, batch)
	}
	b.mu.Unlock()

	for i, token := range toFire {
		log.Println("unblocking sink for batch ", toFireBatches[i])
		token.Fire()
	}
}

func (b *Buffer) isBlockedLocked(batch uint64) bool {
	if batch == b.minBatch {
		return b.currentTuples >= b.currentBudget
	}
	return b.otherTuples >= b.otherBudget
}

// UpdateMinBatch advances the watermark to max(minBatch, candidate)
// and promotes every in-progress batch that is now eligible: the
// batch now equal to the watermark (regardless of completion), plus
// any batch below it that had already been marked completed. The walk
// stops at the first batch above the new watermark, or the first
// incomplete one below it — mirroring the source's promotion loop.
func (b *Buffer) UpdateMinBatch(candidate uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.updateMinBatchLocked(candidate)
}

func (b *Buffer) updateMinBatchLocked(candidate uint64) {
	if candidate > b.minBatch {
		b.minBatch = candidate
	}

	var toRemove []uint64
	b.inProgress.Ascend(func(item btree.Item) bool {
		entry := item.(*batchEntry)
		if entry.index > b.minBatch {
			return false
		}
		if entry.index != b.minBatch && !entry.completed {
			return false
		}
		assertf(entry.completed || entry.index == b.minBatch,
			"promoted batch %d must be completed or equal to min_batch %d", entry.index, b.minBatch)

		tupleCount := 0
		for _, c := range entry.chunks {
			tupleCount += c.Size()
			b.batches = append(b.batches, c)
		}
		b.otherTuples -= tupleCount
		b.currentTuples += tupleCount
		toRemove = append(toRemove, entry.index)
		return true
	})

	for _, idx := range toRemove {
		b.inProgress.Delete(&batchEntry{index: idx})
	}
}

// Scan dequeues at most one chunk for the consumer. It returns
// (nil, false) only once the stream has genuinely ended: no queued
// chunk, no in-progress batch that can still be promoted.
func (b *Buffer) Scan() (chunk.Sizer, bool) {
	c, ok := b.popFront()
	if ok {
		return c, true
	}

	// Nothing queued: see if the oldest in-progress batch is complete
	// and can be promoted to unblock it.
	b.mu.Lock()
	item := b.inProgress.Min()
	b.mu.Unlock()

	if item != nil {
		entry := item.(*batchEntry)
		if entry.completed {
			b.UpdateMinBatch(entry.index)
		}
		if c, ok := b.popFront(); ok {
			return c, true
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.resolveExecutor = nil
	assertf(len(b.blockedSinks) == 0, "stream ended with blocked sinks still registered")
	assertf(b.inProgress.Len() == 0, "stream ended with batches still in progress")
	log.Println("end of stream, releasing client handle")
	return nil, false
}

func (b *Buffer) popFront() (chunk.Sizer, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.batches) == 0 {
		return nil, false
	}
	c := b.batches[0]
	b.batches = b.batches[1:]
	b.currentTuples -= c.Size()
	return c, true
}

// BufferIsFull reports whether the consumer has enough buffered to
// stop driving tasks: false whenever batches is empty, since the
// consumer must never be starved while work remains to be scheduled.
func (b *Buffer) BufferIsFull() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.batches) == 0 {
		return false
	}
	return b.currentTuples >= b.currentBudget || b.otherTuples >= b.otherBudget
}

// Close marks the buffer closed and fires every blocked token's resume
// callback, removing it, so producer tasks unwind rather than hang.
func (b *Buffer) Close() {
	b.mu.Lock()
	b.closed = true
	tokens := make([]*BlockedSinkToken, 0, len(b.blockedSinks))
	for batch, token := range b.blockedSinks {
		tokens = append(tokens, token)
		delete(b.blockedSinks, batch)
	}
	b.mu.Unlock()

	log.Println("buffer closed, releasing ", len(tokens), " blocked sinks")
	for _, token := range tokens {
		token.Fire()
	}
}
