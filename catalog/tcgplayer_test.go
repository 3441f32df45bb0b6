package catalog

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"flipradar/cache"
	"flipradar/models"
)

// fakeTCGplayer serves the token, product search and pricing endpoints
type fakeTCGplayer struct {
	srv         *httptest.Server
	tokenCalls  atomic.Int32
	lastProduct atomic.Value // raw query of the last product search
}

func newFakeTCGplayer(t *testing.T) *fakeTCGplayer {
	t.Helper()
	f := &fakeTCGplayer{}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		want := "Basic " + base64.StdEncoding.EncodeToString([]byte("pub:priv"))
		if r.Method != http.MethodPost || r.Header.Get("Authorization") != want {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		r.ParseForm()
		if r.PostForm.Get("grant_type") != "client_credentials" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer"}`))
	})
	mux.HandleFunc("/catalog/products", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.lastProduct.Store(r.URL.RawQuery)
		w.Write([]byte(`{"results":[
			{"productId":123,"name":"Charizard","imageUrl":"https://img/1.jpg","extendedData":[
				{"name":"Set Name","value":"Base"},{"name":"Number","value":"4/102"},{"name":"Rarity","value":"Holo Rare"}]},
			{"productId":456,"name":"Charmander","extendedData":[
				{"name":"Expansion","value":"Jungle"},{"name":"Card Number","value":"46"},{"name":"Card Type","value":"Pokemon"}]},
			{"productId":789,"name":"Energy"}
		]}`))
	})
	mux.HandleFunc("/catalog/products/123", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("getExtendedFields") != "true" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"results":[{"productId":123,"categoryId":3,"name":"Charizard","extendedData":[
			{"name":"Set Name","value":"Base"},{"name":"Number","value":"4/102"}]}]}`))
	})
	mux.HandleFunc("/catalog/products/999", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	})
	mux.HandleFunc("/pricing/product/123", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"subTypeName":"Holofoil","marketPrice":350.5,"lowPrice":300,"midPrice":340,"highPrice":500,"directLowPrice":null}]}`))
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeTCGplayer) client(pub, priv string) *Client {
	return NewClient(Options{
		PublicKey:  pub,
		PrivateKey: priv,
		AuthURL:    f.srv.URL + "/token",
		APIBase:    f.srv.URL,
		Timeout:    5 * time.Second,
	}, cache.New(30*time.Minute))
}

func TestCategoryID(t *testing.T) {
	testCases := []struct {
		game     string
		expected int
		ok       bool
	}{
		{"pokemon", 3, true},
		{"Pokemon", 3, true},
		{"mtg", 1, true},
		{"MTG", 1, true},
		{"yugioh", 0, false},
		{"", 0, false},
	}

	for _, tc := range testCases {
		id, err := CategoryID(tc.game)
		if (err == nil) != tc.ok || id != tc.expected {
			t.Errorf("CategoryID(%q) = (%d, %v); want %d ok=%v", tc.game, id, err, tc.expected, tc.ok)
		}
	}
}

func TestSearchProductsMapsExtendedFields(t *testing.T) {
	f := newFakeTCGplayer(t)
	list, err := f.client("pub", "priv").SearchProducts(context.Background(), "Pokemon", "Char", 100)
	if err != nil {
		t.Fatalf("SearchProducts failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 products, got %d", len(list))
	}

	first := list[0]
	if first.ProductID != "123" || first.Name != "Charizard" || first.Set != "Base" || first.Number != "4/102" {
		t.Errorf("first product mapped wrong: %+v", first)
	}
	if first.Rarity != "Holo Rare" || first.Source != "tcgplayer" || first.Game != "pokemon" {
		t.Errorf("first product metadata wrong: %+v", first)
	}

	second := list[1]
	if second.Set != "Jungle" || second.Number != "46" || second.PrintedType != "Pokemon" {
		t.Errorf("fallback extended fields not used: %+v", second)
	}

	if !list[2].Set.IsEmpty() || !list[2].Number.IsEmpty() {
		t.Errorf("product without extended data should have empty set/number: %+v", list[2])
	}

	raw, _ := f.lastProduct.Load().(string)
	for _, want := range []string{"categoryId=3", "productName=Char", "getExtendedFields=true", "pageSize=50"} {
		if !strings.Contains(raw, want) {
			t.Errorf("product query %q should contain %q", raw, want)
		}
	}
}

func TestTokenIsCached(t *testing.T) {
	f := newFakeTCGplayer(t)
	c := f.client("pub", "priv")

	for i := 0; i < 3; i++ {
		if _, err := c.SearchProducts(context.Background(), "mtg", "Lotus", 10); err != nil {
			t.Fatalf("search %d failed: %v", i, err)
		}
	}

	if f.tokenCalls.Load() != 1 {
		t.Errorf("token endpoint called %d times; want 1", f.tokenCalls.Load())
	}
}

func TestMissingKeys(t *testing.T) {
	f := newFakeTCGplayer(t)
	c := f.client("", "")
	if _, err := c.SearchProducts(context.Background(), "pokemon", "Char", 10); err == nil {
		t.Fatal("expected an error without keys")
	}

	_, err := c.accessToken(context.Background())
	if err == nil || !strings.Contains(err.Error(), "missing TCGplayer keys") {
		t.Errorf("error should explain missing keys, got %v", err)
	}
	if f.tokenCalls.Load() != 0 {
		t.Error("no token request should be made without keys")
	}
}

func TestUnknownGame(t *testing.T) {
	f := newFakeTCGplayer(t)
	_, err := f.client("pub", "priv").SearchProducts(context.Background(), "yugioh", "Blue-Eyes", 10)
	if err == nil || !strings.Contains(err.Error(), "game must be") {
		t.Errorf("expected game error, got %v", err)
	}
}

func TestGetPrices(t *testing.T) {
	f := newFakeTCGplayer(t)
	prices, err := f.client("pub", "priv").GetPrices(context.Background(), 123)
	if err != nil {
		t.Fatalf("GetPrices failed: %v", err)
	}
	if prices.ProductID != 123 || len(prices.Prices) != 1 {
		t.Fatalf("unexpected prices %+v", prices)
	}
	row := prices.Prices[0]
	if row.SubTypeName != "Holofoil" || row.MarketPrice == nil || *row.MarketPrice != 350.5 {
		t.Errorf("unexpected price row %+v", row)
	}
	if row.DirectLowPrice != nil {
		t.Error("null price should stay nil")
	}
}

func TestGetProduct(t *testing.T) {
	f := newFakeTCGplayer(t)
	c := f.client("pub", "priv")

	card, err := c.GetProduct(context.Background(), 123)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if card.Name != "Charizard" || card.Number != "4/102" || card.Set != "Base" || card.Game != "pokemon" {
		t.Errorf("unexpected product %+v", card)
	}

	if _, err := c.GetProduct(context.Background(), 999); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestSearcherOutcomes(t *testing.T) {
	f := newFakeTCGplayer(t)

	ok := Searcher{Client: f.client("pub", "priv"), Limit: 20}
	outcome := ok.Search(context.Background(), models.NewSearchRequest("pokemon", "Char"))
	if outcome.Kind != models.OutcomeResults || len(outcome.Results) != 3 {
		t.Errorf("expected 3 results, got %s / %d", outcome.Kind, len(outcome.Results))
	}

	bad := Searcher{Client: f.client("", ""), Limit: 20}
	outcome = bad.Search(context.Background(), models.NewSearchRequest("pokemon", "Char"))
	if outcome.Kind != models.OutcomeFailed {
		t.Errorf("expected failed outcome, got %s", outcome.Kind)
	}
}
