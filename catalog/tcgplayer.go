package catalog

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"flipradar/cache"
	"flipradar/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

const (
	DefaultAuthURL = "https://api.tcgplayer.com/token"
	DefaultAPIBase = "https://api.tcgplayer.com"

	tokenCacheKey = "tcg:token"
	maxPageSize   = 50
)

// categoryIDs maps the game filter to a TCGplayer catalog category
var categoryIDs = map[string]int{
	"mtg":     1,
	"pokemon": 3,
}

// Games lists the game filters the catalog understands, in display order
var Games = []string{"pokemon", "mtg"}

// Options configures the TCGplayer client
type Options struct {
	PublicKey  string
	PrivateKey string
	AuthURL    string
	APIBase    string
	Timeout    time.Duration
}

// Client talks to the TCGplayer catalog and pricing API.
// The bearer token is kept in the shared TTL cache.
type Client struct {
	opts       Options
	cache      *cache.TTL
	httpClient *http.Client
}

// NewClient creates a TCGplayer client. Empty URLs fall back to the public API.
func NewClient(opts Options, tokenCache *cache.TTL) *Client {
	if opts.AuthURL == "" {
		opts.AuthURL = DefaultAuthURL
	}
	if opts.APIBase == "" {
		opts.APIBase = DefaultAPIBase
	}
	opts.APIBase = strings.TrimRight(opts.APIBase, "/")

	return &Client{
		opts:       opts,
		cache:      tokenCache,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
}

// PriceRow is one sub-type price line of a product
type PriceRow struct {
	SubTypeName    string   `json:"subTypeName"`
	MarketPrice    *float64 `json:"marketPrice"`
	LowPrice       *float64 `json:"lowPrice"`
	MidPrice       *float64 `json:"midPrice"`
	HighPrice      *float64 `json:"highPrice"`
	DirectLowPrice *float64 `json:"directLowPrice"`
}

// ProductPrices is the pricing answer for one product
type ProductPrices struct {
	Source    string     `json:"source"`
	ProductID int        `json:"productId"`
	Prices    []PriceRow `json:"prices"`
}

// CategoryID resolves a game filter, ignoring case
func CategoryID(game string) (int, error) {
	id, ok := categoryIDs[strings.ToLower(game)]
	if !ok {
		return 0, serr.New("game must be 'pokemon' or 'mtg'")
	}
	return id, nil
}

// SearchProducts looks up products by name within the game's category
func (c *Client) SearchProducts(ctx context.Context, game, q string, limit int) (models.ResultList, error) {
	categoryID, err := CategoryID(game)
	if err != nil {
		return nil, err
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, serr.Wrap(err, "failed to get access token")
	}

	params := url.Values{}
	params.Set("categoryId", strconv.Itoa(categoryID))
	params.Set("productName", q)
	params.Set("getExtendedFields", "true")
	params.Set("pageSize", strconv.Itoa(min(limit, maxPageSize)))

	var payload struct {
		Results []product `json:"results"`
	}
	if err := c.getJSON(ctx, token, c.opts.APIBase+"/catalog/products?"+params.Encode(), &payload); err != nil {
		return nil, serr.Wrap(err, "catalog product search failed")
	}

	list := make(models.ResultList, 0, len(payload.Results))
	for _, item := range payload.Results {
		list = append(list, item.card(game))
	}

	logger.Debug("Catalog search", "game", game, "q", q, "count", len(list))
	return list, nil
}

// GetProduct fetches one product, used to name the card a radar pass searches for
func (c *Client) GetProduct(ctx context.Context, productID int) (models.CardResult, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return models.CardResult{}, serr.Wrap(err, "failed to get access token")
	}

	var payload struct {
		Results []product `json:"results"`
	}
	rawURL := fmt.Sprintf("%s/catalog/products/%d?getExtendedFields=true", c.opts.APIBase, productID)
	if err := c.getJSON(ctx, token, rawURL, &payload); err != nil {
		return models.CardResult{}, serr.Wrap(err, "catalog product lookup failed")
	}
	if len(payload.Results) == 0 {
		return models.CardResult{}, serr.New(fmt.Sprintf("product %d not found", productID))
	}

	item := payload.Results[0]
	return item.card(gameOf(item.CategoryID)), nil
}

// GetPrices fetches the price points of one product
func (c *Client) GetPrices(ctx context.Context, productID int) (ProductPrices, error) {
	out := ProductPrices{Source: "tcgplayer", ProductID: productID}

	token, err := c.accessToken(ctx)
	if err != nil {
		return out, serr.Wrap(err, "failed to get access token")
	}

	var payload struct {
		Results []PriceRow `json:"results"`
	}
	if err := c.getJSON(ctx, token, fmt.Sprintf("%s/pricing/product/%d", c.opts.APIBase, productID), &payload); err != nil {
		return out, serr.Wrap(err, "pricing request failed")
	}

	out.Prices = payload.Results
	return out, nil
}

// accessToken returns the cached bearer token or fetches a new one with client credentials
func (c *Client) accessToken(ctx context.Context) (string, error) {
	var token string
	if hit, err := c.cache.Get(tokenCacheKey, &token); err != nil {
		logger.LogErr(err, "failed to read cached token")
	} else if hit && token != "" {
		return token, nil
	}

	if c.opts.PublicKey == "" || c.opts.PrivateKey == "" {
		return "", serr.New("missing TCGplayer keys, set FLIPRADAR_TCGPLAYER_PUBLIC_KEY and FLIPRADAR_TCGPLAYER_PRIVATE_KEY")
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", serr.Wrap(err, "failed to create token request")
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.opts.PublicKey + ":" + c.opts.PrivateKey))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", serr.Wrap(err, "token request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", serr.New(fmt.Sprintf("token request returned status %d", resp.StatusCode))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", serr.Wrap(err, "failed to decode token response")
	}
	if payload.AccessToken == "" {
		return "", serr.New("token response missing access_token")
	}

	if err := c.cache.Set(tokenCacheKey, payload.AccessToken); err != nil {
		logger.LogErr(err, "failed to cache access token")
	}
	logger.Info("Obtained TCGplayer access token")
	return payload.AccessToken, nil
}

func (c *Client) getJSON(ctx context.Context, token, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return serr.Wrap(err, "failed to create request")
	}
	req.Header.Set("Authorization", "bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return serr.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return serr.New(fmt.Sprintf("request returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return serr.Wrap(err, "failed to decode response")
	}
	return nil
}

// product is a catalog entry as TCGplayer returns it
type product struct {
	ProductID    models.Text `json:"productId"`
	CategoryID   int         `json:"categoryId"`
	Name         models.Text `json:"name"`
	ImageURL     models.Text `json:"imageUrl"`
	ExtendedData []struct {
		Name  string      `json:"name"`
		Value models.Text `json:"value"`
	} `json:"extendedData"`
}

func (p product) card(game string) models.CardResult {
	ext := make(map[string]models.Text, len(p.ExtendedData))
	for _, f := range p.ExtendedData {
		ext[f.Name] = f.Value
	}

	return models.CardResult{
		Source:      "tcgplayer",
		Game:        models.Text(strings.ToLower(game)),
		ProductID:   p.ProductID,
		Name:        p.Name,
		ImageURL:    p.ImageURL,
		Set:         firstOf(ext, "Set Name", "Set", "Expansion"),
		Number:      firstOf(ext, "Number", "Card Number"),
		Rarity:      firstOf(ext, "Rarity"),
		PrintedType: firstOf(ext, "Printed Type", "Card Type"),
	}
}

// gameOf maps a category back to its game filter, empty for other categories
func gameOf(categoryID int) string {
	for game, id := range categoryIDs {
		if id == categoryID {
			return game
		}
	}
	return ""
}

func firstOf(ext map[string]models.Text, names ...string) models.Text {
	for _, name := range names {
		if v := ext[name]; !v.IsEmpty() {
			return v
		}
	}
	return ""
}
