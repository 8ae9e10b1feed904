package chunk_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/batchql/batchql/chunk"
)

func TestDataChunk_Size(t *testing.T) {
	c := chunk.NewSized(nil, 37)
	defer c.Release()

	require.Equal(t, 37, c.Size())
}

func TestDataChunk_Size_Empty(t *testing.T) {
	c := chunk.NewSized(nil, 0)
	defer c.Release()

	require.Equal(t, 0, c.Size())
}

func TestDataChunk_Size_Nil(t *testing.T) {
	var c chunk.DataChunk
	require.Equal(t, 0, c.Size())
}
