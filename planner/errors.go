package planner

import "github.com/batchql/batchql/dberr"

// errUnsupportedJoinType signals a join type PlanDelimJoin's side-flip
// table has no rule for: a programming error in the caller, not a
// recoverable planning failure.
func errUnsupportedJoinType(jt JoinType) *dberr.Error {
	return dberr.Newf(dberr.KindInvariantViolation, "delim-join planning not implemented for join type %s", jt)
}

// errNotAJoin asserts that PlanComparisonJoin never hands PlanDelimJoin
// a cross product.
func errNotAJoin() *dberr.Error {
	return dberr.New(dberr.KindInvariantViolation, "comparison join planner returned a cross product, not a join")
}

func errWrongChildCount(n int) *dberr.Error {
	return dberr.Newf(dberr.KindInvariantViolation, "comparison join plan must have exactly two children, got %d", n)
}
