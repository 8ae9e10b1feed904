// Package planner implements the delim-join physical-plan construction:
// a rewrite pass over a logical comparison-join node that chooses LEFT
// vs RIGHT delimitation, discovers correlated-scan placeholders already
// embedded in the built join plan, and wraps the join with a
// de-duplicating hash-aggregate.
package planner

import "fmt"

// JoinType mirrors the closed set of logical join kinds a comparison
// join node can carry. Only the kinds PlanDelimJoin knows how to
// normalize are supported; anything else is an invariant violation.
type JoinType int

const (
	Inner JoinType = iota
	Outer
	Left
	Right
	Single
	Mark
	Semi
	Anti
	RightSemi
	RightAnti
)

func (t JoinType) String() string {
	switch t {
	case Inner:
		return "INNER"
	case Outer:
		return "OUTER"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	case Single:
		return "SINGLE"
	case Mark:
		return "MARK"
	case Semi:
		return "SEMI"
	case Anti:
		return "ANTI"
	case RightSemi:
		return "RIGHT_SEMI"
	case RightAnti:
		return "RIGHT_ANTI"
	default:
		return fmt.Sprintf("JoinType(%d)", int(t))
	}
}

// OperatorKind is the closed set of physical-operator shapes the
// planner either consumes (OpHashJoin, OpCrossProduct, OpDelimScan —
// produced by the out-of-scope physical-plan generator) or produces
// (OpHashAggregate, OpLeftDelimJoin, OpRightDelimJoin).
type OperatorKind int

const (
	OpHashJoin OperatorKind = iota
	OpCrossProduct
	OpHashAggregate
	OpDelimScan
	OpLeftDelimJoin
	OpRightDelimJoin
)

func (k OperatorKind) String() string {
	switch k {
	case OpHashJoin:
		return "HASH_JOIN"
	case OpCrossProduct:
		return "CROSS_PRODUCT"
	case OpHashAggregate:
		return "HASH_AGGREGATE"
	case OpDelimScan:
		return "DELIM_SCAN"
	case OpLeftDelimJoin:
		return "LEFT_DELIM_JOIN"
	case OpRightDelimJoin:
		return "RIGHT_DELIM_JOIN"
	default:
		return fmt.Sprintf("OperatorKind(%d)", int(k))
	}
}

// HashAggregateDetail is OpHashAggregate's payload: the distinct
// projection the delim-join wraps its join with, grouping on the
// duplicate-eliminated columns with no aggregate functions at all.
type HashAggregateDetail struct {
	GroupBy []BoundReference
}

// DelimScanDetail is OpDelimScan's payload. The real implementation
// would carry the chunk types the scan reads from the duplicate
// eliminated stream; kept here only so Visualize has something to
// show, since the physical-plan generator that actually produces
// delim scans is out of scope.
type DelimScanDetail struct {
	ChunkTypes []string
}

// DelimJoinDetail is OpLeftDelimJoin/OpRightDelimJoin's payload:
// the underlying comparison join, the delim-scans gathered out of it
// (non-owning references, never duplicated or freed independently of
// Join), and the distinct producer that feeds them.
type DelimJoinDetail struct {
	Join       *Operator
	DelimScans []*Operator
	Distinct   *Operator
}

// Operator is the minimal plan-tree stand-in for the out-of-scope
// physical-operator hierarchy: enough structure for PlanDelimJoin to
// walk, gather delim-scans from, and wrap, and enough for
// graph.Visualizer to render. At most one of the three detail fields
// is populated, chosen by Kind: HashAggregate for OpHashAggregate,
// DelimJoin for the delim-join kinds, and optionally DelimScan for
// OpDelimScan. Hash joins and cross products carry no detail, since
// this module only ever inspects their Kind and Children.
type Operator struct {
	Kind     OperatorKind
	Children []*Operator

	HashAggregate *HashAggregateDetail
	DelimScan     *DelimScanDetail
	DelimJoin     *DelimJoinDetail
}
