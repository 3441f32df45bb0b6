package catalog

import (
	"context"

	"flipradar/models"
)

// ProductSearcher is the part of the catalog a widget search needs
type ProductSearcher interface {
	SearchProducts(ctx context.Context, game, q string, limit int) (models.ResultList, error)
}

// Searcher runs widget searches directly against the catalog, without the HTTP hop
type Searcher struct {
	Client ProductSearcher
	Limit  int
}

func (s Searcher) Search(ctx context.Context, req models.SearchRequest) models.SearchOutcome {
	list, err := s.Client.SearchProducts(ctx, req.Game, req.Query, s.Limit)
	if err != nil {
		return models.Failed(err)
	}
	return models.Found(list)
}
