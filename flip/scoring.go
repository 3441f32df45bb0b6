package flip

import (
	"sort"

	"flipradar/ebay"
)

// Opportunity is a live listing worth buying to resell
type Opportunity struct {
	Item      ebay.Listing `json:"item"`
	Match     Match        `json:"match"`
	Discount  float64      `json:"discount"`
	Economics Economics    `json:"economics"`
}

// Score weights profit by match confidence and discount
func (o Opportunity) Score() float64 {
	return o.Economics.Profit * o.Match.Confidence * (1 + o.Discount)
}

// Rank orders opportunities best first, by score then by profit
func Rank(opps []Opportunity) []Opportunity {
	out := make([]Opportunity, len(opps))
	copy(out, opps)
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].Score(), out[j].Score()
		if si != sj {
			return si > sj
		}
		return out[i].Economics.Profit > out[j].Economics.Profit
	})
	return out
}
