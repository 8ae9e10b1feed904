package planner

import (
	"fmt"

	"github.com/batchql/batchql/graph"
)

// Visualize implements graph.Visualizer the way every physical.Node
// does: one graph.Node per operator, carrying its detail fields and
// recursing into its children.
func (op *Operator) Visualize() *graph.Node {
	n := graph.NewNode(op.Kind.String())

	switch {
	case op.HashAggregate != nil:
		for i, ref := range op.HashAggregate.GroupBy {
			n.AddField(fmt.Sprintf("group_%d", i), fmt.Sprintf("(%s, %d)", ref.Type.TypeID, ref.Index))
		}
	case op.DelimScan != nil:
		n.AddField("chunk_types", fmt.Sprintf("%d columns", len(op.DelimScan.ChunkTypes)))
	case op.DelimJoin != nil:
		n.AddChild("join", op.DelimJoin.Join.Visualize())
		n.AddChild("distinct", op.DelimJoin.Distinct.Visualize())
		for i, scan := range op.DelimJoin.DelimScans {
			n.AddChild(fmt.Sprintf("delim_scan_%d", i), scan.Visualize())
		}
		return n
	}

	for i, child := range op.Children {
		n.AddChild(fmt.Sprintf("child_%d", i), child.Visualize())
	}
	return n
}

var _ graph.Visualizer = (*Operator)(nil)
