package batchbuffer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/batchql/batchql/batchbuffer"
	"github.com/batchql/batchql/chunk"
)

// sizedChunk is a minimal chunk.Sizer stand-in, avoiding the need for
// a real arrow.Record in buffer-level tests that only care about
// tuple counts and delivery order.
type sizedChunk struct {
	n int
}

func (s sizedChunk) Size() int { return s.n }

func noExecutor() (batchbuffer.TaskExecutor, bool) { return nil, false }

func newTestBuffer(currentBudget, otherBudget int) *batchbuffer.Buffer {
	return batchbuffer.NewBuffer(currentBudget, otherBudget, noExecutor)
}

// S1 — single batch.
func TestScenario_SingleBatch(t *testing.T) {
	buf := newTestBuffer(100, 100)

	require.NoError(t, buf.Append(sizedChunk{50}, 0))
	require.NoError(t, buf.Append(sizedChunk{50}, 0))
	buf.CompleteBatch(0)

	c1, ok := buf.Scan()
	require.True(t, ok)
	require.Equal(t, 50, c1.Size())

	c2, ok := buf.Scan()
	require.True(t, ok)
	require.Equal(t, 50, c2.Size())

	_, ok = buf.Scan()
	require.False(t, ok)
}

// S2 — out-of-order batches.
func TestScenario_OutOfOrderBatches(t *testing.T) {
	buf := newTestBuffer(100, 100)

	require.NoError(t, buf.Append(sizedChunk{10}, 1))
	require.NoError(t, buf.Append(sizedChunk{10}, 2))
	buf.CompleteBatch(1)
	buf.CompleteBatch(2)

	// Scan's own promote-then-retry step surfaces batch 1's chunk
	// directly: nothing was queued, but the oldest in-progress batch
	// was already completed, so the watermark auto-advances to 1 and
	// the retried pop succeeds within this same call.
	c1, ok := buf.Scan()
	require.True(t, ok, "batch 1 should have been promoted by the scan's own retry")
	require.Equal(t, 10, c1.Size())

	c2, ok := buf.Scan()
	require.True(t, ok, "batch 2 should promote once batch 1 drains")
	require.Equal(t, 10, c2.Size())

	_, ok = buf.Scan()
	require.False(t, ok)
}

// S3 — back-pressure on the current batch.
func TestScenario_BackPressureCurrentBatch(t *testing.T) {
	buf := newTestBuffer(10, 100)

	require.NoError(t, buf.Append(sizedChunk{10}, 0))
	require.True(t, buf.ShouldBlock(0))

	fired := false
	token := batchbuffer.NewBlockedSinkToken(func() { fired = true })
	require.NoError(t, buf.RegisterBlockedSink(token, 0))

	_, ok := buf.Scan()
	require.True(t, ok)

	buf.UnblockSinks()
	require.True(t, fired)
}

// S4 — back-pressure on future batches.
func TestScenario_BackPressureFutureBatch(t *testing.T) {
	buf := newTestBuffer(100, 5)

	require.NoError(t, buf.Append(sizedChunk{5}, 3))
	require.True(t, buf.ShouldBlock(3))

	fired := false
	token := batchbuffer.NewBlockedSinkToken(func() { fired = true })
	require.NoError(t, buf.RegisterBlockedSink(token, 3))

	buf.UpdateMinBatch(3)

	buf.UnblockSinks()
	require.True(t, fired)

	c, ok := buf.Scan()
	require.True(t, ok)
	require.Equal(t, 5, c.Size())
}

func TestAppend_BelowWatermarkIsInvariantViolation(t *testing.T) {
	buf := newTestBuffer(100, 100)
	buf.UpdateMinBatch(5)

	err := buf.Append(sizedChunk{1}, 2)
	require.Error(t, err)
}

func TestAppend_AfterCloseFails(t *testing.T) {
	buf := newTestBuffer(100, 100)
	buf.Close()

	err := buf.Append(sizedChunk{1}, 0)
	require.Error(t, err)
}

func TestRegisterBlockedSink_DuplicateFails(t *testing.T) {
	buf := newTestBuffer(1, 100)
	require.NoError(t, buf.Append(sizedChunk{1}, 0))

	require.NoError(t, buf.RegisterBlockedSink(batchbuffer.NewBlockedSinkToken(func() {}), 0))
	err := buf.RegisterBlockedSink(batchbuffer.NewBlockedSinkToken(func() {}), 0)
	require.Error(t, err)
}

// Invariant 4: after Close, no blocked-sink token remains registered
// — i.e. every token that was registered gets fired exactly once by
// the close itself.
func TestInvariant_CloseReleasesAllBlockedTokens(t *testing.T) {
	buf := newTestBuffer(1, 1)
	require.NoError(t, buf.Append(sizedChunk{1}, 0))
	require.NoError(t, buf.Append(sizedChunk{1}, 1))

	var fired int
	require.NoError(t, buf.RegisterBlockedSink(batchbuffer.NewBlockedSinkToken(func() { fired++ }), 0))
	require.NoError(t, buf.RegisterBlockedSink(batchbuffer.NewBlockedSinkToken(func() { fired++ }), 1))

	buf.Close()
	require.Equal(t, 2, fired)

	// A closed buffer accepts no new token either, so nothing can stay
	// registered after Close.
	require.Error(t, buf.RegisterBlockedSink(batchbuffer.NewBlockedSinkToken(func() {}), 0))
}

// Invariant 3: min_batch is monotonic non-decreasing.
func TestInvariant_MinBatchMonotonic(t *testing.T) {
	buf := newTestBuffer(100, 100)
	buf.UpdateMinBatch(5)
	buf.UpdateMinBatch(2) // must not regress
	require.Error(t, buf.Append(sizedChunk{1}, 4), "min_batch must still be 5, not 2: batch 4 is below it")
}

// Invariant 2: scanned chunks arrive in non-decreasing batch order.
func TestInvariant_ScanOrderIsBatchAscending(t *testing.T) {
	buf := newTestBuffer(1000, 1000)

	require.NoError(t, buf.Append(sizedChunk{1}, 0))
	require.NoError(t, buf.Append(sizedChunk{2}, 2))
	require.NoError(t, buf.Append(sizedChunk{3}, 1))
	buf.CompleteBatch(1)
	buf.CompleteBatch(2)

	var sizes []int
	for {
		c, ok := buf.Scan()
		if !ok {
			break
		}
		sizes = append(sizes, c.Size())
	}

	require.Equal(t, []int{1, 3, 2}, sizes)
}

// A batch re-appended to after CompleteBatch retracts its completion:
// advancing the watermark past a retracted-but-not-reconfirmed batch
// must not promote it.
func TestAppend_RetractsCompletion(t *testing.T) {
	buf := newTestBuffer(100, 100)

	require.NoError(t, buf.Append(sizedChunk{1}, 2))
	buf.CompleteBatch(2)
	require.NoError(t, buf.Append(sizedChunk{1}, 2)) // retracts completion

	buf.UpdateMinBatch(3)

	_, ok := buf.Scan()
	require.False(t, ok, "batch 2 must stay in progress: completion was retracted")

	buf.CompleteBatch(2)
	c1, ok := buf.Scan()
	require.True(t, ok, "re-completing should let the watermark advance past it now")
	require.Equal(t, 1, c1.Size())
	c2, ok := buf.Scan()
	require.True(t, ok)
	require.Equal(t, 1, c2.Size())
}

var _ chunk.Sizer = sizedChunk{}
