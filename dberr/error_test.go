package dberr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/batchql/batchql/dberr"
)

func TestError_EqualityIgnoresExtraAndMessage(t *testing.T) {
	a := dberr.New(dberr.KindClosedStream, "buffer closed")
	_ = a.Error() // force the final message cache to compute

	b := dberr.New(dberr.KindClosedStream, "buffer closed").WithExtra("batch", "3")

	require.True(t, a.Equal(b))
}

func TestError_EqualityDiffersOnKindOrMessage(t *testing.T) {
	a := dberr.New(dberr.KindClosedStream, "buffer closed")
	b := dberr.New(dberr.KindInvariantViolation, "buffer closed")
	c := dberr.New(dberr.KindClosedStream, "something else")

	require.False(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestError_ReraisePrependsContext(t *testing.T) {
	original := dberr.New(dberr.KindExecution, "task failed")
	reraised := original.Reraise("sink worker")

	require.Equal(t, "sink worker: task failed", reraised.RawMessage)
	require.Equal(t, dberr.KindExecution, reraised.Kind)
	require.Equal(t, "execution: sink worker: task failed", reraised.Error())
}

func TestError_ReraiseCopiesExtraInfo(t *testing.T) {
	original := dberr.New(dberr.KindExecution, "task failed").WithExtra("batch", "7")
	reraised := original.Reraise("retry")

	require.Equal(t, "7", reraised.ExtraInfo["batch"])

	reraised.WithExtra("batch", "8")
	require.Equal(t, "7", original.ExtraInfo["batch"], "reraise must not alias the original's extra info")
}

func TestError_RoundTripRawMessageReconstructsEqual(t *testing.T) {
	original := dberr.New(dberr.KindDeserialization, "unknown tag FOO")
	rebuilt := dberr.New(original.Kind, original.RawMessage)

	require.True(t, original.Equal(rebuilt))
}
