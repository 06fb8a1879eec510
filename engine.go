package structmatch

import "log/slog"

// ═══════════════════════════════════════════════════════════════════════════════
// ENGINE — gluing compile, postings, ordering, intersection and recursion
// ═══════════════════════════════════════════════════════════════════════════════

// OpenEnumerator opens the posting enumerator for one query element. The
// host implements this against its own index; this engine never constructs
// an enumerator itself.
type OpenEnumerator func(elem QueryElement, index int) (PostingEnumerator, error)

// Engine runs one compiled query against postings opened for it. An Engine
// (and everything it owns: PostingStates, buffers, cursors) is owned by a
// single query-execution goroutine and must not be shared across threads.
type Engine struct {
	Query  *CompiledQuery
	states []*PostingState // ordered by SortIndex after NewEngine
	driver *Driver
	log    *slog.Logger
}

// NewEngine opens one posting enumerator per query element via open,
// computes element ordering, and precomputes each state's constraint index.
// The returned Engine is ready for Run.
func NewEngine(query *CompiledQuery, open OpenEnumerator) (*Engine, error) {
	return NewEngineWithLogger(query, open, slog.Default())
}

// NewEngineWithLogger is NewEngine with an explicit logger, for hosts that
// want query compilation/execution logs routed somewhere specific.
func NewEngineWithLogger(query *CompiledQuery, open OpenEnumerator, log *slog.Logger) (*Engine, error) {
	if len(query.Elements) == 0 {
		return nil, syntaxErrorf("compiled query has no elements")
	}

	states := make([]*PostingState, len(query.Elements))
	for i, elem := range query.Elements {
		enum, err := open(elem, i)
		if err != nil {
			return nil, err
		}
		states[i] = NewPostingState(i, elem, enum)
	}

	AssignOrder(states)
	if err := BuildConstraintIndexes(states, query.Edges); err != nil {
		return nil, err
	}

	log.Info("compiled structured query",
		slog.Int("elements", len(states)),
		slog.Int("edges", len(query.Edges)))

	return &Engine{
		Query:  query,
		states: states,
		driver: NewDriver(states),
		log:    log,
	}, nil
}

// Run walks every matching document in ascending doc-id order, enumerating
// and reporting every tuple that satisfies all constraints. It returns nil
// once postings are exhausted, whether or not anything matched — a clean
// run with zero results is not an error; check the reporter for that.
func (e *Engine) Run(reporter MatchReporter) error {
	docID, err := e.driver.Start()
	if err != nil {
		return err
	}

	for docID != NoMoreDocs {
		if err := e.runDoc(docID, reporter); err != nil {
			if err == ErrStopIteration {
				return nil
			}
			return err
		}

		docID, err = e.driver.NextCommonDoc()
		if err != nil {
			return err
		}
	}
	return nil
}

// SeekTo skips ahead to the first matching document id >= floor and resumes
// from there, for host-side pagination.
func (e *Engine) SeekTo(floor int, reporter MatchReporter) error {
	docID, err := e.driver.SeekTo(floor)
	if err != nil {
		return err
	}

	for docID != NoMoreDocs {
		if err := e.runDoc(docID, reporter); err != nil {
			if err == ErrStopIteration {
				return nil
			}
			return err
		}

		docID, err = e.driver.NextCommonDoc()
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) runDoc(docID int, reporter MatchReporter) error {
	for _, s := range e.states {
		if err := s.ReadDocElements(); err != nil {
			return err
		}
	}

	emitted := 0
	err := matchRecursion(0, e.states, func(tuple MatchTuple) error {
		emitted++
		return reporter.Report(docID, tuple)
	})

	e.log.Debug("visited document", slog.Int("docID", docID), slog.Int("tuples", emitted))
	return err
}
