package structmatch

// ═══════════════════════════════════════════════════════════════════════════════
// INTERSECTION DRIVER
// ═══════════════════════════════════════════════════════════════════════════════
// Advances every element's posting state to a common document id using
// galloping AND-intersection: find the current maximum doc id among all
// states (the "leader"), advance every lagging state to that target, and
// repeat until either everyone agrees or one of them runs out. Each round
// can raise the leader again, so the number of rounds depends on how the
// postings interleave; this is the same leapfrog pattern a conjunction
// posting-list join uses regardless of implementation language.
// ═══════════════════════════════════════════════════════════════════════════════

// Driver advances a set of ordered posting states to shared document ids.
type Driver struct {
	states []*PostingState
}

// NewDriver wraps already-ordered posting states (see AssignOrder).
func NewDriver(states []*PostingState) *Driver {
	return &Driver{states: states}
}

// Start positions every state at its first document.
func (d *Driver) Start() (int, error) {
	for _, s := range d.states {
		if _, err := s.NextDoc(); err != nil {
			return 0, err
		}
	}
	return d.converge()
}

// NextCommonDoc advances past the current shared document (if any) and
// finds the next one every state agrees on.
func (d *Driver) NextCommonDoc() (int, error) {
	if len(d.states) == 0 {
		return NoMoreDocs, nil
	}
	if _, err := d.states[0].NextDoc(); err != nil {
		return 0, err
	}
	return d.converge()
}

// SeekTo advances every state to the first shared document id >= floor,
// supporting host-side pagination.
func (d *Driver) SeekTo(floor int) (int, error) {
	for _, s := range d.states {
		if _, err := s.Advance(floor); err != nil {
			return 0, err
		}
	}
	return d.converge()
}

// converge repeatedly raises every lagging state to the current maximum doc
// id until all states agree or one is exhausted.
func (d *Driver) converge() (int, error) {
	if len(d.states) == 0 {
		return NoMoreDocs, nil
	}

	for {
		leader := -1
		for _, s := range d.states {
			if s.DocID() > leader {
				leader = s.DocID()
			}
		}
		if leader == NoMoreDocs {
			return NoMoreDocs, nil
		}

		allMatch := true
		for _, s := range d.states {
			if s.DocID() == leader {
				continue
			}
			id, err := s.Advance(leader)
			if err != nil {
				return 0, err
			}
			if id == NoMoreDocs {
				return NoMoreDocs, nil
			}
			if id != leader {
				allMatch = false
			}
		}
		if allMatch {
			return leader, nil
		}
	}
}
