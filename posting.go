package structmatch

// ═══════════════════════════════════════════════════════════════════════════════
// POSTING STATE
// ═══════════════════════════════════════════════════════════════════════════════
// PostingState wraps one element's posting enumerator and drives everything
// that touches it: document iteration, decoding a document's occurrences
// into an ElementBuffer, and the cursor the constraint recursion moves while
// it tries candidate occurrences.
//
// A PostingState is created fresh for each query execution and is never
// shared across goroutines — it owns a mutable cursor and a reusable buffer.
// ═══════════════════════════════════════════════════════════════════════════════

// ConstraintCheck is one precomputed entry in a PostingState's
// constraintIndex: a constraint edge attached to the later-bound of its two
// endpoints. ConstrainingPos and DependentPos are indices into the Engine's
// ordered []*PostingState slice, not into CompiledQuery.Elements.
type ConstraintCheck struct {
	ConstrainingPos int
	DependentPos    int
	Kind            ConstraintKind
}

// PostingState is per-element, per-query-execution state.
type PostingState struct {
	Element      QueryElement
	ElementIndex int // index into the originating CompiledQuery.Elements

	enum PostingEnumerator
	docID int

	Buffer        *ElementBuffer
	CurrElemIndex int

	// Bookkeeping that drives ordering; see AssignOrder.
	PostCost        int64
	MinCompPostCost int64
	SortIndex       int

	// ConstraintIndex is built once, after SortIndex is fixed, by
	// BuildConstraintIndexes (constraint.go).
	ConstraintIndex []ConstraintCheck
}

// NewPostingState wraps an enumerator for one query element.
func NewPostingState(elementIndex int, elem QueryElement, enum PostingEnumerator) *PostingState {
	return &PostingState{
		Element:      elem,
		ElementIndex: elementIndex,
		enum:         enum,
		docID:        -1,
		Buffer:       NewElementBuffer(),
		PostCost:     enum.Cost(),
	}
}

// DocID returns the current document id (-1 before the first Advance/NextDoc).
func (s *PostingState) DocID() int {
	return s.docID
}

// Advance moves the underlying posting to the first doc id >= target,
// resets the element buffer, and returns the new doc id.
func (s *PostingState) Advance(target int) (int, error) {
	id, err := s.enum.Advance(target)
	if err != nil {
		return 0, ioErrorf(err)
	}
	s.docID = id
	s.Buffer.Reset()
	return id, nil
}

// NextDoc moves to the next document and resets the element buffer.
func (s *PostingState) NextDoc() (int, error) {
	id, err := s.enum.NextDoc()
	if err != nil {
		return 0, ioErrorf(err)
	}
	s.docID = id
	s.Buffer.Reset()
	return id, nil
}

// ReadDocElements decodes every position of the current document into the
// element buffer. It must be called once per document, after the posting
// state has landed on that document via Advance/NextDoc.
func (s *PostingState) ReadDocElements() error {
	s.Buffer.Reset()
	if s.docID == NoMoreDocs {
		return nil
	}

	freq, err := s.enum.Freq()
	if err != nil {
		return ioErrorf(err)
	}

	for i := 0; i < freq; i++ {
		if _, err := s.enum.NextPosition(); err != nil {
			return ioErrorf(err)
		}
		payload, err := s.enum.Payload()
		if err != nil {
			return ioErrorf(err)
		}
		decoded, err := DecodePayload(payload)
		if err != nil {
			return err
		}
		s.Buffer.Append(ElementSpan{
			ID:          decoded.AnnotID,
			ParentID:    decoded.ParentID,
			StartOffset: decoded.StartOffset,
			EndOffset:   decoded.EndOffset,
		})
	}
	return nil
}

// SetCurrElemIndex moves the cursor into the element buffer.
func (s *PostingState) SetCurrElemIndex(i int) {
	s.CurrElemIndex = i
}

// CurrElement returns the span currently selected by the cursor.
func (s *PostingState) CurrElement() ElementSpan {
	return s.Buffer.Get(s.CurrElemIndex)
}

// FindElemLargerOffset delegates to the element buffer.
func (s *PostingState) FindElemLargerOffset(linSearchIter, offsetToExceed, minIndex int) int {
	return s.Buffer.FindElemLargerOffset(linSearchIter, offsetToExceed, minIndex)
}

// IsIsolated reports whether this element has zero constraint edges — a
// connected component of size 0, rather than 1, in assignConnectivity's
// counting. Isolated elements only need one occurrence tried during the
// constraint recursion, since nothing downstream checks which one was
// picked.
func (s *PostingState) IsIsolated() bool {
	return s.Element.ConnectQty == 0
}
