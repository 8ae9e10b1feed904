package planner

// delimSide records which child of the built join subtree the
// delimitation is anchored on: a left delim join is fed by scans
// sitting in the right subtree, and vice versa, so the side also picks
// which child index gatherDelimScans walks.
type delimSide int

const (
	sideLeft delimSide = iota
	sideRight
)

// normalizeSide decides which side a join type delimitates on,
// whether its children must be flipped first, and (when flipping) the
// join type the flip leaves behind.
// SINGLE and MARK can't be flipped and plan as left delim joins
// unchanged; every other supported type ends up a right delim join by
// swapping children, generalized to cover RIGHT symmetrically with
// LEFT ("LEFT ↔ RIGHT: flip and swap") — see DESIGN.md for that
// decision.
func normalizeSide(jt JoinType) (side delimSide, flip bool, newType JoinType, err error) {
	switch jt {
	case Single, Mark:
		return sideLeft, false, jt, nil
	case Inner, Outer:
		return sideRight, true, jt, nil
	case Left:
		return sideRight, true, Right, nil
	case Right:
		return sideRight, true, Left, nil
	case Semi:
		return sideRight, true, RightSemi, nil
	case Anti:
		return sideRight, true, RightAnti, nil
	default:
		return 0, false, 0, errUnsupportedJoinType(jt)
	}
}

// gatherDelimScans walks a built plan subtree collecting every
// OpDelimScan operator it finds, depth-first. The returned slice holds
// non-owning references into op's own tree: callers must not mutate or
// free these nodes independently of the join plan that owns them.
func gatherDelimScans(op *Operator, out []*Operator) []*Operator {
	if op == nil {
		return out
	}
	if op.Kind == OpDelimScan {
		out = append(out, op)
	}
	for _, child := range op.Children {
		out = gatherDelimScans(child, out)
	}
	return out
}

// buildDistinct constructs the distinct projection: a hash-aggregate
// grouping on the duplicate-eliminated columns with no aggregate
// functions, so it only ever de-duplicates.
func buildDistinct(groupBy []BoundReference) *Operator {
	distinctGroups := make([]BoundReference, len(groupBy))
	copy(distinctGroups, groupBy)
	return &Operator{
		Kind:          OpHashAggregate,
		HashAggregate: &HashAggregateDetail{GroupBy: distinctGroups},
	}
}

// PlanDelimJoin normalizes the delimitation side (flipping the join's
// children when the join type calls for it), plans the underlying
// comparison join through jp, gathers delim-scan placeholders from the
// subtree opposite the delimitation side, and — only if any were found
// — wraps the plan in a delim-join operator carrying the distinct
// producer. If no delim-scans are present the plain join is returned
// unchanged: an earlier pass already optimized the delimitation away.
func PlanDelimJoin(jp JoinPlanner, join LogicalComparisonJoin) (*Operator, error) {
	side, flip, newType, err := normalizeSide(join.JoinType)
	if err != nil {
		return nil, err
	}

	if flip {
		join.Left, join.Right = join.Right, join.Left
	}
	join.JoinType = newType

	plan, err := jp.PlanComparisonJoin(join)
	if err != nil {
		return nil, err
	}
	if plan.Kind == OpCrossProduct {
		return nil, errNotAJoin()
	}
	if len(plan.Children) != 2 {
		return nil, errWrongChildCount(len(plan.Children))
	}

	var opposite *Operator
	var wrapKind OperatorKind
	if side == sideLeft {
		opposite = plan.Children[1]
		wrapKind = OpLeftDelimJoin
	} else {
		opposite = plan.Children[0]
		wrapKind = OpRightDelimJoin
	}

	delimScans := gatherDelimScans(opposite, nil)
	if len(delimScans) == 0 {
		return plan, nil
	}

	return &Operator{
		Kind:     wrapKind,
		Children: []*Operator{plan},
		DelimJoin: &DelimJoinDetail{
			Join:       plan,
			DelimScans: delimScans,
			Distinct:   buildDistinct(join.DuplicateEliminatedColumns),
		},
	}, nil
}
