package planner

import "github.com/batchql/batchql"

// BoundReference is a (type, index) pair into one of a join's child
// relations, the shape duplicate-eliminated columns and hash-aggregate
// group keys are expressed in. It is a
// thin re-export of the module-wide batchql.BoundReference so callers
// outside this package don't need to import both.
type BoundReference = batchql.BoundReference

// LogicalNode stands in for the out-of-scope logical-plan node type:
// the full logical planner that would build join children (scans,
// filters, nested joins, delim scans awaiting decorrelation) is
// consumed only through this narrow placeholder, carrying just enough
// identity for a JoinPlanner implementation to tell which side is
// which after a flip.
type LogicalNode struct {
	Label string
}

// LogicalComparisonJoin is the input to PlanDelimJoin: a logical
// comparison-join node carrying everything needed to choose a
// delimitation side and build the distinct projection.
type LogicalComparisonJoin struct {
	JoinType                   JoinType
	Left, Right                *LogicalNode
	DuplicateEliminatedColumns []BoundReference
	EstimatedCardinality       uint64
	Types                      []batchql.Type
}

// JoinPlanner stands in for the out-of-scope physical-plan generator's
// comparison-join planning step.
// It must return an Operator with exactly two children, Children[0]
// built from join.Left and Children[1] built from join.Right, in that
// order — PlanDelimJoin relies on this positional contract to know
// which child subtree to gather delim-scans from after a flip.
type JoinPlanner interface {
	PlanComparisonJoin(join LogicalComparisonJoin) (*Operator, error)
}
