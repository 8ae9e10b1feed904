package batchbuffer

import "github.com/batchql/batchql/dberr"

// ErrClosed is returned by Append, RegisterBlockedSink and Replenish
// once Close has been called.
func ErrClosed() *dberr.Error {
	return dberr.New(dberr.KindClosedStream, "operation on a closed buffer")
}

// errAppendBelowWatermark signals a producer appended a chunk whose
// batch index is behind the current watermark. This can only happen
// through a programming error in the caller — tests must confirm
// callers never trigger it.
func errAppendBelowWatermark(batch, minBatch uint64) *dberr.Error {
	return dberr.Newf(dberr.KindInvariantViolation,
		"append with batch %d below min_batch %d", batch, minBatch)
}

func errDuplicateBlockedSink(batch uint64) *dberr.Error {
	return dberr.Newf(dberr.KindInvariantViolation,
		"blocked sink already registered for batch %d", batch)
}
