// Package widget binds a game selector, a query field and a trigger to a
// backend search and renders the outcome into an output region.
package widget

import (
	"context"
	"sync"
	"sync/atomic"

	"flipradar/models"
	"flipradar/views/partials"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
)

// EnterKey is the only key in the query field that triggers a search
const EnterKey = "Enter"

// Controls exposes the current values of the two input controls
type Controls interface {
	Game() string
	Query() string
}

// Region is the output area. SetHTML replaces its whole content.
type Region interface {
	SetHTML(html string)
}

// Searcher runs one search and reports the outcome. It must not panic on failure.
type Searcher interface {
	Search(ctx context.Context, req models.SearchRequest) models.SearchOutcome
}

// SearcherFunc adapts a function to Searcher
type SearcherFunc func(ctx context.Context, req models.SearchRequest) models.SearchOutcome

func (f SearcherFunc) Search(ctx context.Context, req models.SearchRequest) models.SearchOutcome {
	return f(ctx, req)
}

// Widget is the search component. Each trigger with a non-empty query starts
// one asynchronous search; searches are never cancelled by later ones.
type Widget struct {
	controls Controls
	region   Region
	searcher Searcher

	ctx          context.Context
	discardStale bool

	generation atomic.Uint64
	regionMu   sync.Mutex // serializes region writes with generation checks
	inFlight   sync.WaitGroup
}

// Option configures a Widget
type Option func(*Widget)

// WithDiscardStale drops outcomes of searches superseded by a newer one.
// Without it the last response to arrive wins, whichever search it belongs to.
func WithDiscardStale() Option {
	return func(w *Widget) {
		w.discardStale = true
	}
}

// WithContext sets the context passed to the searcher
func WithContext(ctx context.Context) Option {
	return func(w *Widget) {
		w.ctx = ctx
	}
}

// New builds a widget over its injected controls, output region and searcher
func New(controls Controls, region Region, searcher Searcher, opts ...Option) *Widget {
	w := &Widget{
		controls: controls,
		region:   region,
		searcher: searcher,
		ctx:      context.Background(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Activate handles activation of the trigger control.
// It reports whether a search was started.
func (w *Widget) Activate() bool {
	return w.trigger()
}

// KeyPress handles a key press in the query field. Only Enter triggers.
func (w *Widget) KeyPress(key string) bool {
	if key != EnterKey {
		return false
	}
	return w.trigger()
}

// Generation returns the number of searches started so far
func (w *Widget) Generation() uint64 {
	return w.generation.Load()
}

// Wait blocks until every started search has finished rendering
func (w *Widget) Wait() {
	w.inFlight.Wait()
}

func (w *Widget) trigger() bool {
	req := models.NewSearchRequest(w.controls.Game(), w.controls.Query())
	if req.IsEmpty() {
		return false
	}

	w.regionMu.Lock()
	w.region.SetHTML(partials.Searching())
	gen := w.generation.Add(1)
	w.regionMu.Unlock()

	searchID := uuid.NewString()
	logger.Debug("Search started",
		"search_id", searchID,
		"generation", gen,
		"game", req.Game,
		"q", req.Query,
	)

	w.inFlight.Add(1)
	go w.run(req, gen, searchID)
	return true
}

func (w *Widget) run(req models.SearchRequest, gen uint64, searchID string) {
	defer w.inFlight.Done()

	outcome := w.searcher.Search(w.ctx, req)

	if outcome.Kind == models.OutcomeFailed {
		logger.LogErr(outcome.Err, "search failed", "search_id", searchID, "generation", gen)
	}

	html := partials.RenderOutcome(outcome, req.Game)

	w.regionMu.Lock()
	if w.discardStale && gen != w.generation.Load() {
		w.regionMu.Unlock()
		logger.Debug("Stale search outcome discarded",
			"search_id", searchID,
			"generation", gen,
		)
		return
	}
	w.region.SetHTML(html)
	w.regionMu.Unlock()

	logger.Debug("Search rendered",
		"search_id", searchID,
		"generation", gen,
		"outcome", outcome.Kind.String(),
		"count", len(outcome.Results),
	)
}
