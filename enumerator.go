package structmatch

import "math"

// NoMoreDocs is the sentinel document id returned by Advance/NextDoc once a
// posting is exhausted.
const NoMoreDocs = math.MaxInt32

// PostingEnumerator is the host-supplied per-element posting stream this
// engine consumes. The host opens one per query element; it must yield
// positions within a document in ascending StartOffset order, and each
// position's payload must decode per payload.go.
//
// Implementations are not required to be safe for concurrent use — a
// PostingState wraps exactly one enumerator and both live on a single
// query-execution goroutine.
type PostingEnumerator interface {
	// DocID returns the enumerator's current document id: -1 if it has
	// never been advanced, NoMoreDocs once it is exhausted.
	DocID() int

	// Advance moves to the first document id >= target, returning it (or
	// NoMoreDocs). target may equal the current doc id, in which case the
	// enumerator must not move.
	Advance(target int) (int, error)

	// NextDoc moves to the next document id, returning it (or NoMoreDocs).
	NextDoc() (int, error)

	// Freq returns the number of positions (occurrences) of this element in
	// the current document.
	Freq() (int, error)

	// NextPosition advances to the next position within the current
	// document and returns it. Must be called exactly Freq() times per
	// document, in ascending StartOffset order.
	NextPosition() (int, error)

	// Payload returns the payload bytes for the position last returned by
	// NextPosition, decodable per payload.go.
	Payload() ([]byte, error)

	// Cost is an estimate of the total number of postings (term frequency
	// across the whole index), used by AssignOrder to order elements
	// cheapest-first.
	Cost() int64
}
