package structmatch

import "sort"

// ═══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION / STATISTICS PLUMBING
// ═══════════════════════════════════════════════════════════════════════════════
// This file doesn't do any matching itself — it exposes the numbers that
// decide processing order: each element's posting cost, its connected
// component's cheapest posting cost, and its connectivity, so the
// intersection driver and the constraint recursion both walk elements
// cheapest-and-most-constraining first.
// ═══════════════════════════════════════════════════════════════════════════════

// AssignOrder computes MinCompPostCost for every state and sorts the slice
// in place by ascending (MinCompPostCost, -ConnectQty) — cheapest connected
// component first, and within it the most-connected element first.
// SortIndex on each state is set to its resulting position, which is also
// its index in the now-sorted slice.
func AssignOrder(states []*PostingState) {
	compMin := make(map[int]int64)
	for _, s := range states {
		if s.IsIsolated() {
			continue // isolated elements form their own singleton group below
		}
		cur, ok := compMin[s.Element.ComponentID]
		if !ok || s.PostCost < cur {
			compMin[s.Element.ComponentID] = s.PostCost
		}
	}

	for _, s := range states {
		if s.IsIsolated() {
			s.MinCompPostCost = s.PostCost
		} else {
			s.MinCompPostCost = compMin[s.Element.ComponentID]
		}
	}

	sort.SliceStable(states, func(i, j int) bool {
		if states[i].MinCompPostCost != states[j].MinCompPostCost {
			return states[i].MinCompPostCost < states[j].MinCompPostCost
		}
		return states[i].Element.ConnectQty > states[j].Element.ConnectQty
	})

	for i, s := range states {
		s.SortIndex = i
		s.Element.SortIndex = i
	}
}
