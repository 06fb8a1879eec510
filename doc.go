// ═══════════════════════════════════════════════════════════════════════════════
// WHAT IS A STRUCTURED MATCH?
// ═══════════════════════════════════════════════════════════════════════════════
// A normal inverted-index query finds documents containing a set of terms.
// A structured query additionally demands a relationship between WHERE those
// terms occur inside one document.
//
// Example query:
//
//	@s:sentence @w:cat #contains(s,w)
//
// This asks for documents where some annotated "sentence" span contains some
// occurrence of the token "cat" — not just documents that happen to have both.
//
// Example document (offsets are characters):
//
//	"The cat sat on the mat."
//	 sentence: [0, 24) id=5
//	 token "cat":       [4, 7) parentId=5
//
// The sentence's span [0,24) contains the cat token's span [4,7), so this
// document matches, and the engine can report back which sentence id and
// which occurrence of "cat" satisfied it.
//
// ═══════════════════════════════════════════════════════════════════════════════
// PACKAGE LAYOUT
// ═══════════════════════════════════════════════════════════════════════════════
//
//	payload.go     per-position annotation metadata codec
//	span.go        per-document occurrence buffer + exponential search
//	query.go       mini-language parser -> CompiledQuery
//	enumerator.go  external posting-enumerator contract
//	posting.go     PostingState wrapping one posting enumerator
//	stats.go       cost/connectivity bookkeeping that drives ordering
//	constraint.go  constraint-satisfaction recursion
//	intersect.go   galloping doc-id intersection
//	report.go      match reporting sinks
//	engine.go      glue: Compile a query, wire postings, run it
//	schema.go      host index-schema validation (fail fast at startup)
//	memindex.go    in-memory reference PostingEnumerator, used by tests
//
// ═══════════════════════════════════════════════════════════════════════════════
package structmatch
