package structmatch

import (
	"math/rand"
	"sort"
	"unicode"
)

// ═══════════════════════════════════════════════════════════════════════════════
// MEMINDEX — reference in-memory PostingEnumerator
// ═══════════════════════════════════════════════════════════════════════════════
// PostingEnumerator only defines the posting enumerator at its boundary:
// something the host supplies. That makes the engine impossible to
// exercise without a real search server. MemIndex is a small, exported,
// in-memory implementation of that contract built on a sorted forward-
// pointer skip list keyed on plain document ids, since a posting
// enumerator only ever needs to jump between documents — positions within
// a document are handled by the ElementSpan buffer (span.go), not by the
// skip list.
//
// It doubles as a reference implementation for anyone wiring this engine
// against a toy or test index.
// ═══════════════════════════════════════════════════════════════════════════════

const maxSkipHeight = 16

// docNode is one node of a term's document-id skip list.
type docNode struct {
	docID int
	tower [maxSkipHeight]*docNode
}

// docSkipList keeps a term's document ids in ascending sorted order with
// express lanes for fast advance.
type docSkipList struct {
	head   *docNode
	height int
	rng    *rand.Rand
}

func newDocSkipList(rng *rand.Rand) *docSkipList {
	return &docSkipList{head: &docNode{}, height: 1, rng: rng}
}

// insert adds a document id (idempotent: inserting an existing id is a no-op).
func (l *docSkipList) insert(docID int) {
	var journey [maxSkipHeight]*docNode
	current := l.head
	for level := l.height - 1; level >= 0; level-- {
		for current.tower[level] != nil && current.tower[level].docID < docID {
			current = current.tower[level]
		}
		journey[level] = current
	}
	if current.tower[0] != nil && current.tower[0].docID == docID {
		return
	}

	height := 1
	for height < maxSkipHeight && l.rng.Float64() < 0.5 {
		height++
	}
	node := &docNode{docID: docID}
	for level := 0; level < height; level++ {
		pred := journey[level]
		if pred == nil {
			pred = l.head
		}
		node.tower[level] = pred.tower[level]
		pred.tower[level] = node
	}
	if height > l.height {
		l.height = height
	}
}

// ceiling returns the first node with docID >= target, or nil.
func (l *docSkipList) ceiling(target int) *docNode {
	current := l.head
	for level := l.height - 1; level >= 0; level-- {
		for current.tower[level] != nil && current.tower[level].docID < target {
			current = current.tower[level]
		}
	}
	return current.tower[0]
}

// first returns the first node, or nil if the list is empty.
func (l *docSkipList) first() *docNode {
	return l.head.tower[0]
}

// termPostings is one term's full posting list: the set of documents it
// appears in (via docSkipList, for Advance/NextDoc) plus, per document, the
// decoded spans in StartOffset order.
type termPostings struct {
	docs     *docSkipList
	spans    map[int][]ElementSpan
	label    string // lowercased label recorded at index time, reused on encode
	totalLen int64  // total occurrence count, used as Cost()
}

// MemIndex is an in-memory, per-term posting store implementing enough of a
// search index to open PostingEnumerators against.
type MemIndex struct {
	terms map[string]*termPostings
	rng   *rand.Rand
}

// NewMemIndex creates an empty in-memory index.
func NewMemIndex() *MemIndex {
	return &MemIndex{terms: make(map[string]*termPostings)}
}

// randSource lazily creates the index's random source — deferred so a zero
// MemIndex (from struct literal) still works without a constructor call.
func (idx *MemIndex) randSource() *rand.Rand {
	if idx.rng == nil {
		idx.rng = rand.New(rand.NewSource(1)) // deterministic: this is a test fixture, not a hot path
	}
	return idx.rng
}

// AddSpan records one occurrence of term in docID, at the given span. label
// is the lowercased annotations-field label this occurrence would carry at
// index time; pass term itself for plain tokens.
func (idx *MemIndex) AddSpan(term string, docID int, label string, span ElementSpan) {
	if idx.terms == nil {
		idx.terms = make(map[string]*termPostings)
	}
	tp, ok := idx.terms[term]
	if !ok {
		tp = &termPostings{docs: newDocSkipList(idx.randSource()), spans: make(map[int][]ElementSpan), label: label}
		idx.terms[term] = tp
	}
	tp.docs.insert(docID)
	tp.spans[docID] = append(tp.spans[docID], span)
	tp.totalLen++
	sort.Slice(tp.spans[docID], func(i, j int) bool {
		return tp.spans[docID][i].StartOffset < tp.spans[docID][j].StartOffset
	})
}

// AddToken is a convenience for plain TOKEN elements: annotId and parentId
// are both 0.
func (idx *MemIndex) AddToken(term string, docID, startOffset, endOffset int) {
	idx.AddSpan(term, docID, term, ElementSpan{StartOffset: startOffset, EndOffset: endOffset})
}

// AddAnnotation is a convenience for ANNOTATION elements.
func (idx *MemIndex) AddAnnotation(term string, docID, startOffset, endOffset, annotID, parentID int) {
	idx.AddSpan(term, docID, term, ElementSpan{
		ID: annotID, ParentID: parentID, StartOffset: startOffset, EndOffset: endOffset,
	})
}

// OpenEnumerator builds an OpenEnumerator (engine.go) backed by this index:
// term lookup is simply QueryElement.Token, case already normalized by the
// parser for ANNOTATION elements.
func (idx *MemIndex) OpenEnumerator(elem QueryElement, _ int) (PostingEnumerator, error) {
	tp, ok := idx.terms[elem.Token]
	if !ok {
		tp = &termPostings{docs: newDocSkipList(idx.randSource()), spans: make(map[int][]ElementSpan)}
	}
	return &memEnumerator{postings: tp, docID: -1}, nil
}

// memEnumerator implements PostingEnumerator against one term's termPostings.
type memEnumerator struct {
	postings *termPostings
	docID    int
	node     *docNode
	posIdx   int
}

func (e *memEnumerator) DocID() int { return e.docID }

func (e *memEnumerator) Advance(target int) (int, error) {
	if e.docID != NoMoreDocs && e.docID >= target {
		return e.docID, nil
	}
	node := e.postings.docs.ceiling(target)
	return e.land(node), nil
}

func (e *memEnumerator) NextDoc() (int, error) {
	var node *docNode
	if e.node == nil && e.docID == -1 {
		node = e.postings.docs.first()
	} else if e.node != nil {
		node = e.node.tower[0]
	}
	return e.land(node), nil
}

func (e *memEnumerator) land(node *docNode) int {
	e.node = node
	e.posIdx = 0
	if node == nil {
		e.docID = NoMoreDocs
	} else {
		e.docID = node.docID
	}
	return e.docID
}

func (e *memEnumerator) Freq() (int, error) {
	if e.docID == NoMoreDocs {
		return 0, nil
	}
	return len(e.postings.spans[e.docID]), nil
}

func (e *memEnumerator) NextPosition() (int, error) {
	i := e.posIdx
	e.posIdx++
	return i, nil
}

// Payload re-encodes the span at the position last returned by
// NextPosition, exercising the round trip through EncodePayload/DecodePayload
// exactly as a real indexer and this engine would.
func (e *memEnumerator) Payload() ([]byte, error) {
	spans := e.postings.spans[e.docID]
	if e.posIdx-1 < 0 || e.posIdx-1 >= len(spans) {
		return nil, invariantErrorf("payload requested out of position order")
	}
	span := spans[e.posIdx-1]
	return EncodePayload(e.postings.label, span.StartOffset, span.EndOffset, span.ID, span.ParentID)
}

func (e *memEnumerator) Cost() int64 {
	return e.postings.totalLen
}

// ═══════════════════════════════════════════════════════════════════════════════
// WHITESPACE TOKENIZER
// ═══════════════════════════════════════════════════════════════════════════════
// The annotations field requires a whitespace tokenizer; this is the
// reference implementation of that tokenizer, trimmed to splitting only — no
// lowercasing, stopwording or stemming belongs here — so MemIndex fixtures
// built from raw text get the same field shape a real host index would.
// ═══════════════════════════════════════════════════════════════════════════════

// TokenSpan is one whitespace-delimited word and its character offsets.
type TokenSpan struct {
	Text        string
	StartOffset int
	EndOffset   int
}

// WhitespaceTokenize splits text on Unicode whitespace, recording each
// token's character offsets the way the annotated text field records
// positions and character offsets for every position it indexes.
func WhitespaceTokenize(text string) []TokenSpan {
	var tokens []TokenSpan
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		if i >= len(runes) {
			break
		}
		start := i
		for i < len(runes) && !unicode.IsSpace(runes[i]) {
			i++
		}
		tokens = append(tokens, TokenSpan{
			Text:        string(runes[start:i]),
			StartOffset: start,
			EndOffset:   i,
		})
	}
	return tokens
}

// IndexText whitespace-tokenizes text and records every word as a plain
// TOKEN occurrence in docID, the way a host's token-stream indexer would.
func (idx *MemIndex) IndexText(docID int, text string) {
	for _, tok := range WhitespaceTokenize(text) {
		idx.AddToken(tok.Text, docID, tok.StartOffset, tok.EndOffset)
	}
}
