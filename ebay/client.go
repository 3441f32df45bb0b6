// Package ebay searches live and sold listings through the eBay Browse API.
package ebay

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
	DefaultTokenURL      = "https://api.ebay.com/identity/v1/oauth2/token"
	DefaultBrowseURL     = "https://api.ebay.com/buy/browse/v1/item_summary/search"
	DefaultMarketplaceID = "EBAY_US"

	apiScope      = "https://api.ebay.com/oauth/api_scope"
	tokenCacheKey = "ebay:token"
	maxPageSize   = 50
)

// Options configures the eBay client
type Options struct {
	ClientID      string
	ClientSecret  string
	MarketplaceID string
	TokenURL      string
	BrowseURL     string
	Timeout       time.Duration
}

// Listing is one item summary. Price and Shipping are nil when eBay omits them or sends garbage.
type Listing struct {
	Title      string   `json:"title" msgpack:"title"`
	ItemWebURL string   `json:"itemWebUrl" msgpack:"itemWebUrl"`
	Price      *float64 `json:"price" msgpack:"price"`
	Currency   string   `json:"currency" msgpack:"currency"`
	Image      string   `json:"image" msgpack:"image"`
	Condition  string   `json:"condition" msgpack:"condition"`
	Seller     string   `json:"seller" msgpack:"seller"`
	Shipping   *float64 `json:"shipping" msgpack:"shipping"`
}

// SearchResult is the answer to one live or sold search
type SearchResult struct {
	Source string    `json:"source" msgpack:"source"`
	Query  string    `json:"query" msgpack:"query"`
	Sold   bool      `json:"sold" msgpack:"sold"`
	Items  []Listing `json:"items" msgpack:"items"`
}

// Client talks to eBay. The application token and recent searches live in the shared TTL cache.
type Client struct {
	opts       Options
	cache      *cache.TTL
	httpClient *http.Client
}

// NewClient creates an eBay client. Empty URLs and marketplace fall back to eBay US production.
func NewClient(opts Options, ttlCache *cache.TTL) *Client {
	if opts.TokenURL == "" {
		opts.TokenURL = DefaultTokenURL
	}
	if opts.BrowseURL == "" {
		opts.BrowseURL = DefaultBrowseURL
	}
	if opts.MarketplaceID == "" {
		opts.MarketplaceID = DefaultMarketplaceID
	}

	return &Client{
		opts:       opts,
		cache:      ttlCache,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
}

// ListingsKey is the cache key of a live or sold search
func ListingsKey(q string, sold bool) string {
	kind := "live"
	if sold {
		kind = "sold"
	}
	return strings.ToLower("ebay:" + kind + ":" + q)
}

// Listings returns a cached search result for q, searching eBay on a miss
func (c *Client) Listings(ctx context.Context, q string, limit int, sold bool) (SearchResult, error) {
	key := ListingsKey(q, sold)

	var cached SearchResult
	if hit, err := c.cache.Get(key, &cached); err != nil {
		logger.LogErr(err, "failed to read cached listings", "key", key)
	} else if hit && len(cached.Items) > 0 {
		return cached, nil
	}

	res, err := c.Search(ctx, q, limit, sold)
	if err != nil {
		return res, err
	}
	if err := c.cache.Set(key, res); err != nil {
		logger.LogErr(err, "failed to cache listings", "key", key)
	}
	return res, nil
}

// Search runs one Browse API item search. sold restricts it to completed sales.
func (c *Client) Search(ctx context.Context, q string, limit int, sold bool) (SearchResult, error) {
	out := SearchResult{Source: "ebay", Query: q, Sold: sold}

	token, err := c.accessToken(ctx)
	if err != nil {
		return out, serr.Wrap(err, "failed to get eBay access token")
	}

	filters := []string{"deliveryCountry:US"}
	if sold {
		filters = append(filters, "soldItems:true")
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("limit", strconv.Itoa(min(limit, maxPageSize)))
	params.Set("filter", strings.Join(filters, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BrowseURL+"?"+params.Encode(), nil)
	if err != nil {
		return out, serr.Wrap(err, "failed to create browse request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-EBAY-C-MARKETPLACE-ID", c.opts.MarketplaceID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, serr.Wrap(err, "browse request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return out, serr.New(fmt.Sprintf("browse request returned status %d", resp.StatusCode))
	}

	var payload struct {
		ItemSummaries []itemSummary `json:"itemSummaries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return out, serr.Wrap(err, "failed to decode browse response")
	}

	out.Items = make([]Listing, 0, len(payload.ItemSummaries))
	for i, it := range payload.ItemSummaries {
		if i >= limit {
			break
		}
		out.Items = append(out.Items, it.listing())
	}

	logger.Debug("eBay search", "q", q, "sold", sold, "count", len(out.Items))
	return out, nil
}

type amount struct {
	Value    models.Text `json:"value"`
	Currency string      `json:"currency"`
}

type itemSummary struct {
	Title      string  `json:"title"`
	ItemWebURL string  `json:"itemWebUrl"`
	Price      *amount `json:"price"`
	Image      *struct {
		ImageURL string `json:"imageUrl"`
	} `json:"image"`
	Condition string `json:"condition"`
	Seller    *struct {
		Username string `json:"username"`
	} `json:"seller"`
	ShippingOptions []struct {
		ShippingCost *amount `json:"shippingCost"`
	} `json:"shippingOptions"`
}

func (it itemSummary) listing() Listing {
	l := Listing{
		Title:      it.Title,
		ItemWebURL: it.ItemWebURL,
		Condition:  it.Condition,
	}
	if it.Price != nil {
		l.Price = parseAmount(it.Price.Value)
		l.Currency = it.Price.Currency
	}
	if it.Image != nil {
		l.Image = it.Image.ImageURL
	}
	if it.Seller != nil {
		l.Seller = it.Seller.Username
	}
	if len(it.ShippingOptions) > 0 && it.ShippingOptions[0].ShippingCost != nil {
		l.Shipping = parseAmount(it.ShippingOptions[0].ShippingCost.Value)
	}
	return l
}

// parseAmount reads eBay's string-encoded amounts
func parseAmount(v models.Text) *float64 {
	if v.IsEmpty() {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
	if err != nil {
		return nil
	}
	return &f
}

// accessToken returns the cached application token or mints one with client credentials
func (c *Client) accessToken(ctx context.Context) (string, error) {
	var token string
	if hit, err := c.cache.Get(tokenCacheKey, &token); err != nil {
		logger.LogErr(err, "failed to read cached eBay token")
	} else if hit && token != "" {
		return token, nil
	}

	if c.opts.ClientID == "" || c.opts.ClientSecret == "" {
		return "", serr.New("missing eBay credentials, set FLIPRADAR_EBAY_CLIENT_ID and FLIPRADAR_EBAY_CLIENT_SECRET")
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", apiScope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", serr.Wrap(err, "failed to create token request")
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.opts.ClientID + ":" + c.opts.ClientSecret))
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
		logger.LogErr(err, "failed to cache eBay token")
	}
	logger.Info("Obtained eBay access token")
	return payload.AccessToken, nil
}
