package main

import (
	"fmt"
	"io"

	"github.com/batchql/batchql"
	"github.com/batchql/batchql/graph"
	"github.com/batchql/batchql/planner"
)

// cannedJoinPlanner stands in for the out-of-scope physical-plan
// generator: it always returns the same two-child hash join, with a
// delim-scan buried in its left subtree, so --visualize has something
// worth drawing regardless of what logical join it's asked to plan.
type cannedJoinPlanner struct{}

func (cannedJoinPlanner) PlanComparisonJoin(join planner.LogicalComparisonJoin) (*planner.Operator, error) {
	delimScan := &planner.Operator{
		Kind:      planner.OpDelimScan,
		DelimScan: &planner.DelimScanDetail{ChunkTypes: []string{"INT"}},
	}
	left := &planner.Operator{Kind: planner.OpHashJoin, Children: []*planner.Operator{delimScan}}
	right := &planner.Operator{Kind: planner.OpHashJoin}
	return &planner.Operator{Kind: planner.OpHashJoin, Children: []*planner.Operator{left, right}}, nil
}

// runVisualize plans a canned SEMI join and prints the resulting
// delim-join plan as Graphviz DOT, the way cmd/sqlviz prints a logical
// or physical plan.
func runVisualize(out io.Writer) error {
	join := planner.LogicalComparisonJoin{
		JoinType: planner.Semi,
		Left:     &planner.LogicalNode{Label: "outer"},
		Right:    &planner.LogicalNode{Label: "inner"},
		DuplicateEliminatedColumns: []planner.BoundReference{
			{Type: batchql.Type{TypeID: batchql.TypeIDInt}, Index: 0},
		},
	}

	plan, err := planner.PlanDelimJoin(cannedJoinPlanner{}, join)
	if err != nil {
		return err
	}

	dot, err := graph.Show(plan.Visualize())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, dot.String())
	return nil
}
