// Package chunk provides the DataChunk handle that flows through the
// batched buffer: an owned, movable container of tuples with a known
// size. The buffer never looks inside it.
package chunk

import (
	"github.com/apache/arrow/go/v13/arrow"
	"github.com/apache/arrow/go/v13/arrow/array"
	"github.com/apache/arrow/go/v13/arrow/memory"
)

// Sizer is the only thing the buffer ever needs from a chunk:
// how many tuples it carries. Keeping the dependency this narrow lets
// tests stand in fakes instead of constructing real columnar batches.
type Sizer interface {
	Size() int
}

// DataChunk wraps a columnar batch of tuples. It is the concrete
// implementation of Sizer used end to end by this module; the buffer
// itself only ever depends on the Sizer interface.
type DataChunk struct {
	Record arrow.Record
}

// New wraps an already-built arrow.Record as a DataChunk.
func New(record arrow.Record) *DataChunk {
	return &DataChunk{Record: record}
}

// Size returns the number of tuples (rows) in the chunk.
func (c *DataChunk) Size() int {
	if c.Record == nil {
		return 0
	}
	return int(c.Record.NumRows())
}

// Release drops the chunk's reference to its underlying arrow buffers.
func (c *DataChunk) Release() {
	if c.Record != nil {
		c.Record.Release()
		c.Record = nil
	}
}

// NewSized builds a throwaway single-column int64 chunk with the given
// number of tuples. It exists for callers (tests, the demo driver) that
// need a real DataChunk without caring about its schema or contents.
func NewSized(mem memory.Allocator, size int) *DataChunk {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	schema := arrow.NewSchema(
		[]arrow.Field{{Name: "tuple", Type: arrow.PrimitiveTypes.Int64}},
		nil,
	)
	builder := array.NewInt64Builder(mem)
	defer builder.Release()
	values := make([]int64, size)
	for i := range values {
		values[i] = int64(i)
	}
	builder.AppendValues(values, nil)
	col := builder.NewArray()
	defer col.Release()

	record := array.NewRecord(schema, []arrow.Array{col}, int64(size))
	return New(record)
}
