package structmatch

import "testing"

func runQuery(t *testing.T, idx *MemIndex, query string) []MatchTuple {
	t.Helper()
	compiled, err := Compile(query)
	if err != nil {
		t.Fatalf("Compile(%q): %v", query, err)
	}
	engine, err := NewEngine(compiled, idx.OpenEnumerator)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	reporter := &TupleReporter{}
	if err := engine.Run(reporter); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return reporter.Tuples
}

func TestEngineContainsQueryMatches(t *testing.T) {
	idx := NewMemIndex()
	idx.IndexText(1, "The cat sat on the mat.")
	idx.AddAnnotation("sentence", 1, 0, 24, 5, 0)

	tuples := runQuery(t, idx, "@s:sentence ~w:cat #contains(s,w)")
	if len(tuples) != 1 {
		t.Fatalf("len(tuples) = %d, want 1", len(tuples))
	}
	sentence, token := tuples[0][0], tuples[0][1]
	if sentence.StartOffset != 0 || sentence.EndOffset != 24 {
		t.Errorf("sentence span = %+v", sentence)
	}
	if token.StartOffset != 4 || token.EndOffset != 7 {
		t.Errorf("token span = %+v, want cat at [4,7)", token)
	}
}

func TestEngineContainsQueryExcludesOutsideOccurrence(t *testing.T) {
	idx := NewMemIndex()
	// "cat" appears once inside the sentence and once outside it.
	idx.AddAnnotation("sentence", 1, 0, 10, 5, 0)
	idx.AddToken("cat", 1, 3, 6)
	idx.AddToken("cat", 1, 20, 23)

	tuples := runQuery(t, idx, "@s:sentence ~w:cat #contains(s,w)")
	if len(tuples) != 1 {
		t.Fatalf("len(tuples) = %d, want 1", len(tuples))
	}
	if tuples[0][1].StartOffset != 3 {
		t.Errorf("expected the inside occurrence, got %+v", tuples[0][1])
	}
}

func TestEngineParentQueryMatches(t *testing.T) {
	idx := NewMemIndex()
	idx.AddAnnotation("noun_phrase", 1, 4, 7, 8, 0)
	idx.AddAnnotation("sentence", 1, 0, 24, 5, 8) // sentence's parent is the noun phrase

	tuples := runQuery(t, idx, "@np:noun_phrase @s:sentence #parent(np,s)")
	if len(tuples) != 1 {
		t.Fatalf("len(tuples) = %d, want 1", len(tuples))
	}
}

func TestEngineParentQueryNoMatchWithoutParentLink(t *testing.T) {
	idx := NewMemIndex()
	idx.AddAnnotation("noun_phrase", 1, 4, 7, 8, 0)
	idx.AddAnnotation("sentence", 1, 0, 24, 5, 99) // unrelated parent id

	tuples := runQuery(t, idx, "@np:noun_phrase @s:sentence #parent(np,s)")
	if len(tuples) != 0 {
		t.Fatalf("len(tuples) = %d, want 0", len(tuples))
	}
}

func TestEngineIsolatedElementContributesOnlyOneBinding(t *testing.T) {
	idx := NewMemIndex()
	idx.AddToken("cat", 1, 0, 3)
	idx.AddToken("cat", 1, 10, 13)
	idx.AddToken("cat", 1, 20, 23)
	idx.AddToken("dog", 1, 30, 33)

	// No constraint at all: both elements are isolated singleton groups.
	tuples := runQuery(t, idx, "~w:cat ~d:dog")
	if len(tuples) != 1 {
		t.Fatalf("isolated elements should each contribute one occurrence, got %d tuples", len(tuples))
	}
}

func TestEngineMultipleDocumentsReportedInAscendingOrder(t *testing.T) {
	idx := NewMemIndex()
	idx.AddAnnotation("sentence", 3, 0, 10, 1, 0)
	idx.AddToken("cat", 3, 2, 5)
	idx.AddAnnotation("sentence", 1, 0, 10, 2, 0)
	idx.AddToken("cat", 1, 2, 5)
	idx.AddAnnotation("sentence", 2, 0, 10, 3, 0)
	idx.AddToken("cat", 2, 2, 5)

	compiled, err := Compile("@s:sentence ~w:cat #contains(s,w)")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	engine, err := NewEngine(compiled, idx.OpenEnumerator)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	var seenDocs []int
	err = engine.Run(ReporterFunc(func(docID int, tuple MatchTuple) error {
		seenDocs = append(seenDocs, docID)
		return nil
	}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []int{1, 2, 3}
	if len(seenDocs) != len(want) {
		t.Fatalf("seenDocs = %v, want %v", seenDocs, want)
	}
	for i := range want {
		if seenDocs[i] != want[i] {
			t.Errorf("seenDocs[%d] = %d, want %d", i, seenDocs[i], want[i])
		}
	}
}

func TestEngineNoMatchesReturnsCleanly(t *testing.T) {
	idx := NewMemIndex()
	idx.AddToken("cat", 1, 0, 3)
	// "dog" was never indexed at all.
	tuples := runQuery(t, idx, "~w:cat ~d:dog")
	if len(tuples) != 0 {
		t.Errorf("expected zero tuples for a term absent from the index, got %d", len(tuples))
	}
}

func TestEngineBitmapReporterAccumulatesDocIDs(t *testing.T) {
	idx := NewMemIndex()
	idx.AddAnnotation("sentence", 1, 0, 10, 1, 0)
	idx.AddToken("cat", 1, 2, 5)
	idx.AddAnnotation("sentence", 2, 0, 10, 1, 0)
	idx.AddToken("cat", 2, 2, 5)

	compiled, err := Compile("@s:sentence ~w:cat #contains(s,w)")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	engine, err := NewEngine(compiled, idx.OpenEnumerator)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	reporter := NewBitmapReporter()
	if err := engine.Run(reporter); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reporter.Docs.GetCardinality() != 2 {
		t.Errorf("bitmap cardinality = %d, want 2", reporter.Docs.GetCardinality())
	}
	if !reporter.Docs.Contains(1) || !reporter.Docs.Contains(2) {
		t.Errorf("expected bitmap to contain docs 1 and 2, got %v", reporter.Docs.ToArray())
	}
}

func TestEngineLimitReporterStopsEarly(t *testing.T) {
	idx := NewMemIndex()
	for doc := 1; doc <= 5; doc++ {
		idx.AddAnnotation("sentence", doc, 0, 10, 1, 0)
		idx.AddToken("cat", doc, 2, 5)
	}
	compiled, err := Compile("@s:sentence ~w:cat #contains(s,w)")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	engine, err := NewEngine(compiled, idx.OpenEnumerator)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	inner := &TupleReporter{}
	limited := &LimitReporter{Inner: inner, Max: 2}
	if err := engine.Run(limited); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(inner.Tuples) != 2 {
		t.Fatalf("len(inner.Tuples) = %d, want 2", len(inner.Tuples))
	}
}

func TestEngineSeekToSkipsAheadToFloor(t *testing.T) {
	idx := NewMemIndex()
	for _, doc := range []int{1, 5, 9} {
		idx.AddAnnotation("sentence", doc, 0, 10, 1, 0)
		idx.AddToken("cat", doc, 2, 5)
	}
	compiled, err := Compile("@s:sentence ~w:cat #contains(s,w)")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	engine, err := NewEngine(compiled, idx.OpenEnumerator)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	var seenDocs []int
	err = engine.SeekTo(5, ReporterFunc(func(docID int, tuple MatchTuple) error {
		seenDocs = append(seenDocs, docID)
		return nil
	}))
	if err != nil {
		t.Fatalf("SeekTo: %v", err)
	}
	if len(seenDocs) != 2 || seenDocs[0] != 5 || seenDocs[1] != 9 {
		t.Errorf("seenDocs = %v, want [5 9]", seenDocs)
	}
}
