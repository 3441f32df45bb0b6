package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"flipradar/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// Path of the backend search endpoint, relative to the client's base URL
const Path = "/api/search"

// Client calls the backend search endpoint.
// The zero HTTPClient timeout is intentional: a search waits for its answer.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the backend at baseURL (scheme and host, no trailing path)
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

// URL builds the GET URL for a request
func (c *Client) URL(req models.SearchRequest) string {
	return c.BaseURL + Path + "?game=" + models.EncodeComponent(req.Game) +
		"&q=" + models.EncodeComponent(req.Query)
}

// Search issues one GET and folds every failure into the outcome
func (c *Client) Search(ctx context.Context, req models.SearchRequest) models.SearchOutcome {
	list, err := c.fetch(ctx, req)
	if err != nil {
		return models.Failed(err)
	}
	logger.Debug("Search response decoded", "game", req.Game, "q", req.Query, "count", len(list))
	return models.Found(list)
}

func (c *Client) fetch(ctx context.Context, req models.SearchRequest) (models.ResultList, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(req), nil)
	if err != nil {
		return nil, serr.Wrap(err, "failed to create search request")
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, serr.Wrap(err, "search request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, serr.New(fmt.Sprintf("search returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, serr.Wrap(err, "failed to read search response")
	}

	return DecodeResults(body)
}

// DecodeResults parses a search response body.
// Invalid JSON is an error. Valid JSON that is not an array yields an empty list.
// Array elements that are not objects decode to an empty card.
func DecodeResults(body []byte) (models.ResultList, error) {
	if !json.Valid(body) {
		return nil, serr.New("search response is not valid JSON")
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, serr.Wrap(err, "failed to decode search response")
	}

	list := make(models.ResultList, 0, len(raw))
	for _, elem := range raw {
		var card models.CardResult
		if e := bytes.TrimSpace(elem); len(e) > 0 && e[0] == '{' {
			if err := json.Unmarshal(e, &card); err != nil {
				return nil, serr.Wrap(err, "failed to decode search result")
			}
		}
		list = append(list, card)
	}
	return list, nil
}
