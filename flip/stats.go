package flip

import (
	"math"
	"sort"
)

// Summary describes a set of sold prices. Every field but Count is nil when no usable price exists.
type Summary struct {
	Count  int      `json:"count"`
	Median *float64 `json:"median"`
	P25    *float64 `json:"p25"`
	P75    *float64 `json:"p75"`
	IQR    *float64 `json:"iqr"`
	Stdev  *float64 `json:"stdev"`
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
}

// Summarize computes the distribution of the positive prices in values
func Summarize(values []float64) Summary {
	ys := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0) {
			ys = append(ys, v)
		}
	}
	if len(ys) == 0 {
		return Summary{}
	}
	sort.Float64s(ys)

	n := len(ys)
	var median float64
	if n%2 == 1 {
		median = ys[n/2]
	} else {
		median = (ys[n/2-1] + ys[n/2]) / 2
	}

	p25 := percentile(ys, 0.25)
	p75 := percentile(ys, 0.75)
	iqr := p75 - p25

	var sum float64
	for _, y := range ys {
		sum += y
	}
	mean := sum / float64(n)
	var sq float64
	for _, y := range ys {
		sq += (y - mean) * (y - mean)
	}
	stdev := math.Sqrt(sq / float64(max(1, n-1)))

	return Summary{
		Count:  n,
		Median: &median,
		P25:    &p25,
		P75:    &p75,
		IQR:    &iqr,
		Stdev:  &stdev,
		Min:    &ys[0],
		Max:    &ys[n-1],
	}
}

// percentile interpolates linearly between the closest ranks of sorted ys
func percentile(ys []float64, p float64) float64 {
	if p <= 0 {
		return ys[0]
	}
	if p >= 1 {
		return ys[len(ys)-1]
	}
	idx := float64(len(ys)-1) * p
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return ys[lo]
	}
	frac := idx - float64(lo)
	return ys[lo]*(1-frac) + ys[hi]*frac
}
