package flip

import "testing"

var testAssumptions = Assumptions{FeeRate: 0.1325, RiskBufferRate: 0.07, DefaultShippingUSD: 4.50}

func TestExpectedProfit(t *testing.T) {
	ship := 5.0
	e := ExpectedProfit(60, &ship, 100, testAssumptions)
	if e.BuyTotal != 65 || !near(e.Fee, 13.25) || !near(e.RiskBuffer, 7) {
		t.Errorf("unexpected costs %+v", e)
	}
	if !near(e.NetSale, 79.75) || !near(e.Profit, 14.75) {
		t.Errorf("net/profit = %v/%v", e.NetSale, e.Profit)
	}
	if e.ROI == nil || !near(*e.ROI, 14.75/65) {
		t.Errorf("roi = %v", e.ROI)
	}
}

func TestExpectedProfitDefaultShipping(t *testing.T) {
	e := ExpectedProfit(10, nil, 20, testAssumptions)
	if e.LiveShipping != 4.50 || e.BuyTotal != 14.50 {
		t.Errorf("default shipping not applied: %+v", e)
	}
}

func TestExpectedProfitFreeItemHasNoROI(t *testing.T) {
	free := 0.0
	if e := ExpectedProfit(0, &free, 20, testAssumptions); e.ROI != nil {
		t.Errorf("roi should be nil for a zero buy total, got %v", *e.ROI)
	}
}

func TestRank(t *testing.T) {
	mk := func(title string, profit, conf, disc float64) Opportunity {
		o := Opportunity{Discount: disc}
		o.Item.Title = title
		o.Economics.Profit = profit
		o.Match.Confidence = conf
		return o
	}
	in := []Opportunity{
		mk("low", 10, 0.8, 0.1),
		mk("high", 40, 0.9, 0.3),
		mk("tie-a", 20, 0.5, 0),
		mk("tie-b", 10, 1, 0),
	}

	got := Rank(in)
	order := []string{"high", "tie-a", "tie-b", "low"}
	for i, title := range order {
		if got[i].Item.Title != title {
			t.Errorf("rank %d = %s; want %s", i, got[i].Item.Title, title)
		}
	}
	if in[0].Item.Title != "low" {
		t.Error("Rank must not reorder its input")
	}
}
