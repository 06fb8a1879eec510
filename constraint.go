package structmatch

// ═══════════════════════════════════════════════════════════════════════════════
// CONSTRAINT SATISFACTION
// ═══════════════════════════════════════════════════════════════════════════════
// This is the core algorithm. Given a document where every element's
// posting list has a hit, find every assignment of one occurrence per
// element that satisfies every constraint edge.
//
// Pre-computation: once SortIndex is fixed (see AssignOrder), every
// constraint edge is attached to whichever of its two endpoints is bound
// LATER (the larger SortIndex). That state's constraintIndex then lists
// every check it must run the moment a candidate occurrence is tentatively
// chosen for it — at that point every earlier-bound endpoint is already
// fixed, so the check is a constant-time comparison against already-chosen
// spans. Every edge is checked exactly once, at the right moment, with no
// revisiting.
// ═══════════════════════════════════════════════════════════════════════════════

// BuildConstraintIndexes attaches every constraint edge to the later-bound
// (larger SortIndex) of its two endpoints. states must already be ordered
// and SortIndex-assigned by AssignOrder.
func BuildConstraintIndexes(states []*PostingState, edges []ConstraintEdge) error {
	posByElement := make(map[int]int, len(states))
	for i, s := range states {
		posByElement[s.ElementIndex] = i
	}

	for _, s := range states {
		s.ConstraintIndex = nil
	}

	for _, e := range edges {
		headPos, ok := posByElement[e.HeadElement]
		if !ok {
			return invariantErrorf("constraint references element %d with no posting state", e.HeadElement)
		}
		depPos, ok := posByElement[e.DepElement]
		if !ok {
			return invariantErrorf("constraint references element %d with no posting state", e.DepElement)
		}
		if headPos == depPos {
			return invariantErrorf("constraint head and dependent resolve to the same element %d", e.HeadElement)
		}

		check := ConstraintCheck{ConstrainingPos: headPos, DependentPos: depPos, Kind: e.Kind}
		if headPos > depPos {
			states[headPos].ConstraintIndex = append(states[headPos].ConstraintIndex, check)
		} else {
			states[depPos].ConstraintIndex = append(states[depPos].ConstraintIndex, check)
		}
	}
	return nil
}

// checkConstraint tests one constraint edge against two tentatively-chosen
// spans.
func checkConstraint(kind ConstraintKind, constraining, dependent ElementSpan) bool {
	switch kind {
	case KindParent:
		return dependent.ParentID == constraining.ID
	case KindContains:
		return constraining.StartOffset <= dependent.StartOffset && dependent.EndOffset <= constraining.EndOffset
	default:
		return false
	}
}

// checkIncremental runs every precomputed check attached to s against the
// states slice's current selections, returning false on the first failure.
func checkIncremental(s *PostingState, states []*PostingState) bool {
	for _, c := range s.ConstraintIndex {
		constraining := states[c.ConstrainingPos].CurrElement()
		dependent := states[c.DependentPos].CurrElement()
		if !checkConstraint(c.Kind, constraining, dependent) {
			return false
		}
	}
	return true
}

// MatchTuple is one emitted assignment: exactly one occurrence per query
// element, in SortIndex order.
type MatchTuple []ElementSpan

// matchRecursion enumerates every tuple for the current document, calling
// emit for each. It stops as soon as emit returns a non-nil error and
// returns that error unchanged, ErrStopIteration included; the caller
// (Engine.Run) is what treats ErrStopIteration as a clean stop.
func matchRecursion(i int, states []*PostingState, emit func(MatchTuple) error) error {
	if i == len(states) {
		tuple := make(MatchTuple, len(states))
		for j, s := range states {
			tuple[j] = s.CurrElement()
		}
		return emit(tuple)
	}

	s := states[i]

	// Pruning refinement: an isolated element (no constraint touches it at
	// all) only needs one occurrence tried — any one suffices, since
	// nothing downstream checks which one was picked.
	limit := s.Buffer.Qty
	if s.IsIsolated() && limit > 1 {
		limit = 1
	}

	for j := 0; j < limit; j++ {
		s.SetCurrElemIndex(j)
		if checkIncremental(s, states) {
			if err := matchRecursion(i+1, states, emit); err != nil {
				return err
			}
		}
	}
	return nil
}

// stopIteration is the type of ErrStopIteration, a sentinel an emit
// callback can return to end
// enumeration early (e.g. a reporter with a result cap) without signaling a
// real error to the caller of Run.
type stopIteration struct{}

func (stopIteration) Error() string { return "structmatch: iteration stopped" }

// ErrStopIteration, when returned by a MatchReporter, halts the current
// document's enumeration (and, since documents are processed in order, the
// whole query) without being surfaced as an error from Engine.Run.
var ErrStopIteration error = stopIteration{}
