package structmatch

import "testing"

func TestWhitespaceTokenizeOffsets(t *testing.T) {
	tokens := WhitespaceTokenize("The  cat sat.")
	want := []TokenSpan{
		{Text: "The", StartOffset: 0, EndOffset: 3},
		{Text: "cat", StartOffset: 5, EndOffset: 8},
		{Text: "sat.", StartOffset: 9, EndOffset: 13},
	}
	if len(tokens) != len(want) {
		t.Fatalf("len(tokens) = %d, want %d: %+v", len(tokens), len(want), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("tokens[%d] = %+v, want %+v", i, tokens[i], want[i])
		}
	}
}

func TestWhitespaceTokenizeEmptyAndAllSpace(t *testing.T) {
	if got := WhitespaceTokenize(""); len(got) != 0 {
		t.Errorf("empty text should yield no tokens, got %v", got)
	}
	if got := WhitespaceTokenize("   \t\n"); len(got) != 0 {
		t.Errorf("all-whitespace text should yield no tokens, got %v", got)
	}
}

func TestMemIndexOpenEnumeratorAdvancesAcrossDocs(t *testing.T) {
	idx := NewMemIndex()
	idx.AddToken("cat", 5, 0, 3)
	idx.AddToken("cat", 2, 0, 3)
	idx.AddToken("cat", 9, 0, 3)

	elem := QueryElement{Token: "cat", Type: TypeToken}
	enum, err := idx.OpenEnumerator(elem, 0)
	if err != nil {
		t.Fatalf("OpenEnumerator: %v", err)
	}

	var got []int
	for {
		doc, err := enum.NextDoc()
		if err != nil {
			t.Fatalf("NextDoc: %v", err)
		}
		if doc == NoMoreDocs {
			break
		}
		got = append(got, doc)
	}
	want := []int{2, 5, 9}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestMemIndexAdvanceSkipsToTarget(t *testing.T) {
	idx := NewMemIndex()
	for _, doc := range []int{1, 4, 7, 10} {
		idx.AddToken("cat", doc, 0, 3)
	}
	enum, err := idx.OpenEnumerator(QueryElement{Token: "cat"}, 0)
	if err != nil {
		t.Fatalf("OpenEnumerator: %v", err)
	}
	doc, err := enum.Advance(5)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if doc != 7 {
		t.Errorf("Advance(5) = %d, want 7", doc)
	}
	// Advancing to a target <= the current doc must not move.
	doc, err = enum.Advance(5)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if doc != 7 {
		t.Errorf("Advance(5) on an already-past posting moved to %d, want 7", doc)
	}
}

func TestMemIndexAdvancePastEndReturnsNoMoreDocs(t *testing.T) {
	idx := NewMemIndex()
	idx.AddToken("cat", 1, 0, 3)
	enum, err := idx.OpenEnumerator(QueryElement{Token: "cat"}, 0)
	if err != nil {
		t.Fatalf("OpenEnumerator: %v", err)
	}
	doc, err := enum.Advance(100)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if doc != NoMoreDocs {
		t.Errorf("Advance past the last doc = %d, want NoMoreDocs", doc)
	}
}

func TestMemIndexPayloadRoundTripsThroughFreqAndPosition(t *testing.T) {
	idx := NewMemIndex()
	idx.AddAnnotation("sentence", 1, 0, 24, 5, 0)
	idx.AddAnnotation("sentence", 1, 30, 50, 6, 0)

	enum, err := idx.OpenEnumerator(QueryElement{Token: "sentence"}, 0)
	if err != nil {
		t.Fatalf("OpenEnumerator: %v", err)
	}
	doc, err := enum.NextDoc()
	if err != nil || doc != 1 {
		t.Fatalf("NextDoc() = (%d, %v), want (1, nil)", doc, err)
	}
	freq, err := enum.Freq()
	if err != nil {
		t.Fatalf("Freq: %v", err)
	}
	if freq != 2 {
		t.Fatalf("Freq() = %d, want 2", freq)
	}

	for i := 0; i < freq; i++ {
		if _, err := enum.NextPosition(); err != nil {
			t.Fatalf("NextPosition: %v", err)
		}
		payload, err := enum.Payload()
		if err != nil {
			t.Fatalf("Payload: %v", err)
		}
		decoded, err := DecodePayload(payload)
		if err != nil {
			t.Fatalf("DecodePayload: %v", err)
		}
		if i == 0 && decoded.AnnotID != 5 {
			t.Errorf("first position AnnotID = %d, want 5", decoded.AnnotID)
		}
		if i == 1 && decoded.AnnotID != 6 {
			t.Errorf("second position AnnotID = %d, want 6", decoded.AnnotID)
		}
	}
}

func TestMemIndexUnknownTermYieldsExhaustedEnumerator(t *testing.T) {
	idx := NewMemIndex()
	enum, err := idx.OpenEnumerator(QueryElement{Token: "absent"}, 0)
	if err != nil {
		t.Fatalf("OpenEnumerator: %v", err)
	}
	doc, err := enum.NextDoc()
	if err != nil {
		t.Fatalf("NextDoc: %v", err)
	}
	if doc != NoMoreDocs {
		t.Errorf("unknown term should be immediately exhausted, got %d", doc)
	}
}
