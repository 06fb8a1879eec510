package structmatch

// ═══════════════════════════════════════════════════════════════════════════════
// ELEMENT SPAN BUFFER
// ═══════════════════════════════════════════════════════════════════════════════
// One ElementSpan is a single occurrence of a query element (a token or an
// annotation) inside one document. A PostingState decodes a document's
// positions into an ElementBuffer once per document, sorted by StartOffset,
// then repeatedly searches it while the constraint recursion tries
// candidate occurrences.
//
// The buffer grows by plain array capacity doubling rather than a linked
// structure, since occurrences are appended in posting-stream order
// (already sorted) rather than inserted at arbitrary positions.
// ═══════════════════════════════════════════════════════════════════════════════

// ElementSpan is one occurrence within one document.
type ElementSpan struct {
	ID          int // the occurrence's own annotation id, 0 for plain tokens
	ParentID    int // parent annotation id, 0 if none
	StartOffset int
	EndOffset   int
}

// ElementBuffer holds the occurrences of one query element within the
// current document, sorted by non-decreasing StartOffset. Qty is the valid
// length; Data may have spare capacity beyond it.
type ElementBuffer struct {
	Data []ElementSpan
	Qty  int
}

// NewElementBuffer creates an empty buffer with a small initial capacity.
func NewElementBuffer() *ElementBuffer {
	return &ElementBuffer{Data: make([]ElementSpan, 8)}
}

// Reset clears the buffer for a new document without releasing capacity.
func (b *ElementBuffer) Reset() {
	b.Qty = 0
}

// Append adds a span to the end of the buffer, doubling capacity on demand.
// Callers must append in non-decreasing StartOffset order — the posting
// stream already guarantees this at index time.
func (b *ElementBuffer) Append(span ElementSpan) {
	if b.Qty == len(b.Data) {
		grown := make([]ElementSpan, len(b.Data)*2+1)
		copy(grown, b.Data)
		b.Data = grown
	}
	if b.Qty > 0 && span.StartOffset < b.Data[b.Qty-1].StartOffset {
		panic(invariantErrorf("element spans appended out of order: %d after %d",
			span.StartOffset, b.Data[b.Qty-1].StartOffset))
	}
	b.Data[b.Qty] = span
	b.Qty++
}

// Get returns the span at index i. It panics on an out-of-range index: this
// is always a programmer error (INTERNAL_INVARIANT), never a data error.
func (b *ElementBuffer) Get(i int) ElementSpan {
	if i < 0 || i >= b.Qty {
		panic(invariantErrorf("element buffer index %d out of range [0,%d)", i, b.Qty))
	}
	return b.Data[i]
}

// FindElemLargerOffset returns the smallest index i >= max(0, minIndex) with
// buffer[i].StartOffset > offsetToExceed, or Qty if none exists.
//
// Protocol:
//  1. Take up to linSearchIter linear steps from minIndex.
//  2. If still not found, gallop: double the stride until the probed index's
//     StartOffset exceeds offsetToExceed, or the stride runs off the end of
//     the buffer.
//  3. Binary search the bracketed range for the exact boundary.
//
// Ties (StartOffset == offsetToExceed) are not "found" — the comparison is
// strict, so scanning continues past them automatically; there is no
// separate tie-handling branch.
func (b *ElementBuffer) FindElemLargerOffset(linSearchIter, offsetToExceed, minIndex int) int {
	idx := minIndex
	if idx < 0 {
		idx = 0
	}
	if idx >= b.Qty {
		return b.Qty
	}

	// Phase 1: linear search, bounded by linSearchIter.
	steps := 0
	for steps < linSearchIter {
		if idx >= b.Qty {
			return b.Qty
		}
		if b.Data[idx].StartOffset > offsetToExceed {
			return idx
		}
		idx++
		steps++
	}
	if idx >= b.Qty {
		return b.Qty
	}
	if b.Data[idx].StartOffset > offsetToExceed {
		return idx
	}

	// Phase 2: galloping doubling search. idx always points at an entry
	// known to be <= offsetToExceed; probe further and further ahead until
	// we overshoot or run off the array.
	stride := 1
	upper := b.Qty
	for {
		probe := idx + stride
		if probe >= b.Qty {
			upper = b.Qty
			break
		}
		if b.Data[probe].StartOffset > offsetToExceed {
			upper = probe
			break
		}
		idx = probe
		stride *= 2
	}

	// Phase 3: binary search in (idx, upper] for the first entry > offsetToExceed.
	lo, hi := idx, upper
	for lo+1 < hi {
		mid := lo + (hi-lo)/2
		if b.Data[mid].StartOffset > offsetToExceed {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi
}
