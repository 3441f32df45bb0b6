package web

import (
	"flipradar/config"
	"flipradar/web/api"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// searchRequestsPerMinute caps /api and /partials calls per client
const searchRequestsPerMinute = 120

// Deps are the collaborators the routes need
// Radar may be nil, in which case the results page reports eBay as unavailable.
type Deps struct {
	Catalog     api.Catalog
	Radar       api.Radar
	SearchLimit int
}

// NewServer creates and configures the RWeb server
func NewServer(cfg config.ServerConfig, deps Deps) *rweb.Server {
	s := rweb.NewServer(rweb.ServerOptions{
		Address: cfg.Address,
		Verbose: cfg.Verbose,
	})

	s.Use(rweb.RequestInfo)
	s.Use(CorsMiddleware)
	s.Use(SecurityHeadersMiddleware)
	s.Use(RateLimitMiddleware(searchRequestsPerMinute))
	s.Use(LoggingMiddleware)

	setupRoutes(s, deps)
	SetupStaticFiles(s)

	return s
}

// Run starts the server
func Run(s *rweb.Server, address string) error {
	logger.Info("Flip Radar web server starting", "address", address)
	return s.Run()
}
