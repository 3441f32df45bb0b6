package web

import (
	"context"
	"net/http"

	"flipradar/catalog"
	"flipradar/models"
	"flipradar/web/api"
	"flipradar/web/pages/landing"
	"flipradar/web/pages/results"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// setupRoutes configures all application routes
func setupRoutes(s *rweb.Server, deps Deps) {
	h := api.Handlers{Catalog: deps.Catalog, Radar: deps.Radar, Limit: deps.SearchLimit}
	landingPage := landing.NewPage(catalog.Games).Render()

	// Pages
	s.Get("/", func(ctx rweb.Context) error {
		ctx.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.WriteHTML(landingPage)
	})
	s.Get("/results", resultsPage(deps))

	s.Get("/health", api.Health)

	// JSON API consumed by the browser widget and the terminal frontend
	s.Get("/api/search", h.Search)
	s.Get("/api/prices", h.Prices)
	s.Get("/api/flip", h.Flip)

	// Server-rendered widget fragment
	s.Get("/partials/search-results", h.SearchResultsPartial)
}

// resultsPage handles GET /results?game=&q=&product_id=
// q names the card for the radar. When only product_id is given, the card name comes from the catalog.
func resultsPage(deps Deps) rweb.Handler {
	return func(ctx rweb.Context) error {
		req := models.NewSearchRequest(ctx.Request().QueryParam("game"), ctx.Request().QueryParam("q"))
		if req.Game == "" {
			req.Game = catalog.Games[0]
		}

		productID := 0
		if raw := ctx.Request().QueryParam("product_id"); raw != "" || req.IsEmpty() {
			id, err := api.ParseProductID(raw)
			if err != nil {
				ctx.SetStatus(http.StatusBadRequest)
				return ctx.WriteHTML("<h1>400 - q or product_id is required</h1>")
			}
			productID = id
		}

		query := req.Query
		if query == "" {
			card, err := deps.Catalog.GetProduct(context.Background(), productID)
			if err != nil {
				logger.LogErr(err, "failed to look up product for results page", "product_id", productID)
			} else {
				query = api.CardQuery(card)
			}
		}

		page := results.NewPage(req.Game, query, productID)

		if productID > 0 {
			prices, err := deps.Catalog.GetPrices(context.Background(), productID)
			if err != nil {
				logger.LogErr(err, "failed to load prices for results page", "product_id", productID)
				page.PricesFailed = true
			}
			page.Prices = prices
		}

		if query != "" {
			if deps.Radar == nil {
				page.RadarFailed = true
			} else {
				rep, err := deps.Radar.Analyze(context.Background(), req.Game, query)
				if err != nil {
					logger.LogErr(err, "radar pass failed for results page", "game", req.Game, "q", query)
					page.RadarFailed = true
				}
				page.Report = rep
			}
		}

		ctx.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.WriteHTML(page.Render())
	}
}
