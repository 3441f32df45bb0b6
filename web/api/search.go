package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"flipradar/catalog"
	"flipradar/flip"
	"flipradar/models"
	"flipradar/widget"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// Catalog is the product source behind the search and pricing endpoints
type Catalog interface {
	SearchProducts(ctx context.Context, game, q string, limit int) (models.ResultList, error)
	GetPrices(ctx context.Context, productID int) (catalog.ProductPrices, error)
	GetProduct(ctx context.Context, productID int) (models.CardResult, error)
}

// Radar ranks resale opportunities for a card query
type Radar interface {
	Analyze(ctx context.Context, game, q string) (flip.Report, error)
}

// ErrorResponse is the JSON body of every failed API call
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handlers serves the search API and the server-rendered widget fragment
type Handlers struct {
	Catalog Catalog
	Radar   Radar
	Limit   int
}

func writeError(ctx rweb.Context, status int, message string) error {
	ctx.SetStatus(status)
	return ctx.WriteJSON(ErrorResponse{Error: message})
}

// Health handles GET /health
func Health(ctx rweb.Context) error {
	return ctx.WriteJSON(map[string]string{"status": "ok"})
}

// Search handles GET /api/search?game=&q=
// Always answers with a JSON array on success so the widget can render it directly.
func (h Handlers) Search(ctx rweb.Context) error {
	req := models.NewSearchRequest(ctx.Request().QueryParam("game"), ctx.Request().QueryParam("q"))
	if req.Game == "" {
		req.Game = catalog.Games[0]
	}
	if req.IsEmpty() {
		return ctx.WriteJSON(models.ResultList{})
	}

	list, err := h.Catalog.SearchProducts(context.Background(), req.Game, req.Query, h.Limit)
	if err != nil {
		logger.LogErr(err, "catalog search failed", "game", req.Game, "q", req.Query)
		return writeError(ctx, http.StatusBadGateway, err.Error())
	}
	if list == nil {
		list = models.ResultList{}
	}

	return ctx.WriteJSON(list)
}

// Prices handles GET /api/prices?product_id=
func (h Handlers) Prices(ctx rweb.Context) error {
	productID, err := ParseProductID(ctx.Request().QueryParam("product_id"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	prices, err := h.Catalog.GetPrices(context.Background(), productID)
	if err != nil {
		logger.LogErr(err, "pricing lookup failed", "product_id", productID)
		return writeError(ctx, http.StatusBadGateway, err.Error())
	}
	return ctx.WriteJSON(prices)
}

// Flip handles GET /api/flip?game=&q=
func (h Handlers) Flip(ctx rweb.Context) error {
	req := models.NewSearchRequest(ctx.Request().QueryParam("game"), ctx.Request().QueryParam("q"))
	if req.Game == "" {
		req.Game = catalog.Games[0]
	}
	if req.IsEmpty() {
		return writeError(ctx, http.StatusBadRequest, "q is required")
	}
	if h.Radar == nil {
		return writeError(ctx, http.StatusServiceUnavailable, "flip radar is not configured")
	}

	rep, err := h.Radar.Analyze(context.Background(), req.Game, req.Query)
	if err != nil {
		logger.LogErr(err, "radar pass failed", "game", req.Game, "q", req.Query)
		return writeError(ctx, http.StatusBadGateway, err.Error())
	}
	return ctx.WriteJSON(rep)
}

// CardQuery names a product for a market search, e.g. "Charizard 4/102"
func CardQuery(card models.CardResult) string {
	q := card.Name.String()
	if !card.Number.IsEmpty() {
		q += " " + card.Number.String()
	}
	return strings.TrimSpace(q)
}

// SearchResultsPartial handles GET /partials/search-results?game=&q=
// It drives a request-scoped widget against the catalog and returns the final fragment.
func (h Handlers) SearchResultsPartial(ctx rweb.Context) error {
	controls := QueryControls{
		game:  ctx.Request().QueryParam("game"),
		query: ctx.Request().QueryParam("q"),
	}
	if controls.game == "" {
		controls.game = catalog.Games[0]
	}

	region := &CapturedRegion{}
	w := widget.New(controls, region, catalog.Searcher{Client: h.Catalog, Limit: h.Limit})
	if !w.Activate() {
		ctx.SetStatus(http.StatusNoContent)
		return nil
	}
	w.Wait()

	ctx.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.WriteHTML(region.HTML())
}

// QueryControls are widget controls fixed from request parameters
type QueryControls struct {
	game  string
	query string
}

func (q QueryControls) Game() string  { return q.game }
func (q QueryControls) Query() string { return q.query }

// CapturedRegion keeps the last fragment written by a widget
type CapturedRegion struct {
	mu     sync.Mutex
	html   string
	writes int
}

func (r *CapturedRegion) SetHTML(html string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.html = html
	r.writes++
}

// HTML returns the current content
func (r *CapturedRegion) HTML() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.html
}

// Writes reports how many times the content was replaced
func (r *CapturedRegion) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// ParseProductID validates the product_id parameter
func ParseProductID(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, serr.New("product_id is required")
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, serr.New("product_id must be a positive integer")
	}
	return id, nil
}
