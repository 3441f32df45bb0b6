// Package flip scores eBay listings against a card and ranks resale opportunities.
package flip

import (
	"regexp"
	"strings"
)

// bannedWords mark listings that are not a single genuine card
var bannedWords = []string{
	"proxy", "custom", "digital", "download", "code", "mtgo",
	"lot", "bundle", "playset", "booster", "box", "case", "empty",
	"replica", "fake",
}

var nonWord = regexp.MustCompile(`[^a-z0-9/ ]+`)

const (
	tokenWeight  = 0.80
	numberBonus  = 0.15
	maxTokenBase = 8
)

// Reason records one check behind a match confidence
type Reason struct {
	Check string `json:"check"`
	Value string `json:"value"`
	Hits  int    `json:"hits,omitempty"`
	Total int    `json:"total,omitempty"`
	OK    bool   `json:"ok"`
}

// Match is how confidently a listing title names the searched card
type Match struct {
	Confidence float64  `json:"confidence"`
	Reasons    []Reason `json:"reasons"`
}

func normalize(s string) string {
	s = nonWord.ReplaceAllString(strings.ToLower(s), " ")
	return strings.Join(strings.Fields(s), " ")
}

// BuildMarketQuery turns a card query into an eBay search phrase for the game
func BuildMarketQuery(game, q string) string {
	q = strings.TrimSpace(q)
	switch strings.ToLower(strings.TrimSpace(game)) {
	case "pokemon":
		return q + " pokemon card"
	case "mtg":
		return q + " magic the gathering card"
	}
	return q
}

// ScoreListing rates a listing title against the card query.
// Banned words zero the score. Query tokens longer than two characters
// earn up to 0.80, and a matching collector number adds 0.15.
func ScoreListing(query, title string) Match {
	t := normalize(title)
	q := normalize(query)

	var m Match
	for _, w := range bannedWords {
		if strings.Contains(t, w) {
			m.Reasons = append(m.Reasons, Reason{Check: "banned_word", Value: w})
			return m
		}
	}
	m.Reasons = append(m.Reasons, Reason{Check: "banned_word", Value: "none", OK: true})

	var tokens []string
	for _, tok := range strings.Fields(q) {
		if len(tok) > 2 {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		m.Reasons = append(m.Reasons, Reason{Check: "query_tokens"})
		return m
	}

	hits := 0
	var numTokens []string
	for _, tok := range tokens {
		if strings.Contains(t, tok) {
			hits++
		}
		if strings.ContainsAny(tok, "0123456789") {
			numTokens = append(numTokens, tok)
		}
	}

	ratio := float64(hits) / float64(max(1, min(len(tokens), maxTokenBase)))
	m.Confidence += tokenWeight * min(1, ratio)
	m.Reasons = append(m.Reasons, Reason{Check: "query_tokens", Hits: hits, Total: len(tokens), OK: hits > 0})

	if len(numTokens) > 0 {
		numHit := false
		for _, tok := range numTokens {
			if strings.Contains(t, tok) {
				numHit = true
				break
			}
		}
		r := Reason{Check: "number_token", Value: "missing"}
		if numHit {
			m.Confidence += numberBonus
			r.Value, r.OK = "matched", true
		}
		m.Reasons = append(m.Reasons, r)
	}

	m.Confidence = max(0, min(1, m.Confidence))
	return m
}
