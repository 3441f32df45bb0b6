package flip

import (
	"math"
	"testing"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize([]float64{0, -3})
	if s.Count != 0 || s.Median != nil || s.Stdev != nil || s.Min != nil {
		t.Errorf("expected empty summary, got %+v", s)
	}
}

func TestSummarizeOdd(t *testing.T) {
	s := Summarize([]float64{30, 10, 20, 0, 40, 50})
	if s.Count != 5 {
		t.Fatalf("count = %d; zero prices must be dropped", s.Count)
	}
	if *s.Median != 30 || *s.Min != 10 || *s.Max != 50 {
		t.Errorf("median/min/max = %v/%v/%v", *s.Median, *s.Min, *s.Max)
	}
	if *s.P25 != 20 || *s.P75 != 40 || *s.IQR != 20 {
		t.Errorf("quartiles = %v/%v iqr %v", *s.P25, *s.P75, *s.IQR)
	}
	if !near(*s.Stdev, math.Sqrt(250)) {
		t.Errorf("sample stdev = %v", *s.Stdev)
	}
}

func TestSummarizeEvenInterpolates(t *testing.T) {
	s := Summarize([]float64{10, 20, 30, 40})
	if *s.Median != 25 {
		t.Errorf("median = %v; want 25", *s.Median)
	}
	if !near(*s.P25, 17.5) || !near(*s.P75, 32.5) {
		t.Errorf("quartiles = %v/%v; want 17.5/32.5", *s.P25, *s.P75)
	}
}

func TestSummarizeSingle(t *testing.T) {
	s := Summarize([]float64{12})
	if *s.Median != 12 || *s.Stdev != 0 || *s.IQR != 0 {
		t.Errorf("single value summary %+v", s)
	}
}
