package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// SearchRequest is the input of one search: the game filter and the trimmed query.
// It is built fresh for every trigger and never persisted.
type SearchRequest struct {
	Game  string
	Query string
}

// NewSearchRequest trims the query. Game is an opaque identifier and is kept as given.
func NewSearchRequest(game, query string) SearchRequest {
	return SearchRequest{
		Game:  game,
		Query: strings.TrimSpace(query),
	}
}

// IsEmpty reports whether the request should be dropped without a network call
func (r SearchRequest) IsEmpty() bool {
	return r.Query == ""
}

// CardResult is one item of the backend search response.
// Fields are taken verbatim from the backend; the widget only checks presence.
type CardResult struct {
	Name        Text `json:"name"`
	Set         Text `json:"set"`
	Number      Text `json:"number"`
	ProductID   Text `json:"productId"`
	Source      Text `json:"source,omitempty"`
	Game        Text `json:"game,omitempty"`
	ImageURL    Text `json:"imageUrl,omitempty"`
	Rarity      Text `json:"rarity,omitempty"`
	PrintedType Text `json:"printedType,omitempty"`
}

// ResultList keeps the backend order, which is the display order.
type ResultList []CardResult

// Text is a leniently decoded JSON scalar.
// Strings decode as-is, numbers and booleans as their literal text,
// null or absent as the empty string. Objects and arrays keep their compact JSON.
type Text string

// String returns the text, empty when absent
func (t Text) String() string {
	return string(t)
}

// IsEmpty reports whether the field was absent, null or an empty string
func (t Text) IsEmpty() bool {
	return t == ""
}

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*t = Text(buf.String())
	return nil
}

// MarshalJSON writes empty text as null so absent fields stay absent-looking to clients
func (t Text) MarshalJSON() ([]byte, error) {
	if t == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(t))
}
