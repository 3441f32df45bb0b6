package flip

// Assumptions are the selling costs applied to a resale
type Assumptions struct {
	FeeRate            float64 `json:"feeRate"`
	RiskBufferRate     float64 `json:"riskBufferRate"`
	DefaultShippingUSD float64 `json:"defaultShippingUsd"`
}

// Economics is the buy-then-resell breakdown of one listing
type Economics struct {
	LivePrice    float64  `json:"livePrice"`
	LiveShipping float64  `json:"liveShipping"`
	BuyTotal     float64  `json:"buyTotal"`
	SoldMedian   float64  `json:"soldMedian"`
	Fee          float64  `json:"ebayFee"`
	RiskBuffer   float64  `json:"riskBuffer"`
	NetSale      float64  `json:"netSale"`
	Profit       float64  `json:"profit"`
	ROI          *float64 `json:"roi"`
}

// ShippingOr returns the listing's shipping cost or the assumed default when it is unknown
func (a Assumptions) ShippingOr(shipping *float64) float64 {
	if shipping == nil {
		return a.DefaultShippingUSD
	}
	return *shipping
}

// ExpectedProfit prices buying at livePrice plus shipping and reselling at the sold median
func ExpectedProfit(livePrice float64, shipping *float64, soldMedian float64, a Assumptions) Economics {
	ship := a.ShippingOr(shipping)
	buy := livePrice + ship
	fee := soldMedian * a.FeeRate
	risk := soldMedian * a.RiskBufferRate
	net := soldMedian - fee - risk
	profit := net - buy

	e := Economics{
		LivePrice:    livePrice,
		LiveShipping: ship,
		BuyTotal:     buy,
		SoldMedian:   soldMedian,
		Fee:          fee,
		RiskBuffer:   risk,
		NetSale:      net,
		Profit:       profit,
	}
	if buy > 0 {
		roi := profit / buy
		e.ROI = &roi
	}
	return e
}
