package structmatch

import "github.com/RoaringBitmap/roaring"

// ═══════════════════════════════════════════════════════════════════════════════
// MATCH REPORTER
// ═══════════════════════════════════════════════════════════════════════════════
// On each successful tuple the engine invokes a host-provided sink with the
// doc id and the bound occurrences. The host decides whether it wants
// per-tuple enumeration (every way a document can match) or per-doc
// membership (does this document match at all) — this engine reports the
// former and leaves deduplication to the reporter.
// ═══════════════════════════════════════════════════════════════════════════════

// MatchReporter receives one call per emitted tuple. Returning ErrStopIteration
// halts enumeration for the remainder of the query without surfacing as an
// error from Engine.Run; any other error aborts the run and is returned.
type MatchReporter interface {
	Report(docID int, tuple MatchTuple) error
}

// ReporterFunc adapts a plain function to MatchReporter.
type ReporterFunc func(docID int, tuple MatchTuple) error

func (f ReporterFunc) Report(docID int, tuple MatchTuple) error {
	return f(docID, tuple)
}

// TupleReporter collects every emitted tuple verbatim. Useful for tests and
// small result sets; for large ones prefer BitmapReporter or a custom sink.
type TupleReporter struct {
	Tuples []MatchTuple
}

func (r *TupleReporter) Report(_ int, tuple MatchTuple) error {
	r.Tuples = append(r.Tuples, tuple)
	return nil
}

// BitmapReporter accumulates matched document ids into a roaring bitmap
// instead of materializing every tuple: a compressed, fast doc-id set for
// hosts that only want per-doc membership and would otherwise have to
// deduplicate tuples down to documents themselves.
type BitmapReporter struct {
	Docs *roaring.Bitmap
}

// NewBitmapReporter creates a reporter with an empty bitmap.
func NewBitmapReporter() *BitmapReporter {
	return &BitmapReporter{Docs: roaring.NewBitmap()}
}

func (r *BitmapReporter) Report(docID int, _ MatchTuple) error {
	r.Docs.Add(uint32(docID))
	return nil
}

// LimitReporter wraps another reporter and stops iteration once it has
// accepted max tuples, for hosts that paginate results a page at a time.
type LimitReporter struct {
	Inner MatchReporter
	Max   int
	count int
}

func (r *LimitReporter) Report(docID int, tuple MatchTuple) error {
	if r.count >= r.Max {
		return ErrStopIteration
	}
	if err := r.Inner.Report(docID, tuple); err != nil {
		return err
	}
	r.count++
	if r.count >= r.Max {
		return ErrStopIteration
	}
	return nil
}
