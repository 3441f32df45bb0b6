package api

import (
	"testing"

	"flipradar/models"
)

func TestParseProductID(t *testing.T) {
	testCases := []struct {
		raw      string
		expected int
		ok       bool
	}{
		{"123", 123, true},
		{" 42 ", 42, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-1", 0, false},
		{"0", 0, false},
	}

	for _, tc := range testCases {
		id, err := ParseProductID(tc.raw)
		if (err == nil) != tc.ok || id != tc.expected {
			t.Errorf("ParseProductID(%q) = (%d, %v); want %d ok=%v", tc.raw, id, err, tc.expected, tc.ok)
		}
	}
}

func TestCapturedRegion(t *testing.T) {
	r := &CapturedRegion{}
	r.SetHTML("<div>one</div>")
	r.SetHTML("<div>two</div>")

	if r.HTML() != "<div>two</div>" {
		t.Errorf("HTML() = %q; want last write", r.HTML())
	}
	if r.Writes() != 2 {
		t.Errorf("Writes() = %d; want 2", r.Writes())
	}
}

func TestQueryControls(t *testing.T) {
	c := QueryControls{game: "mtg", query: "Lotus"}
	if c.Game() != "mtg" || c.Query() != "Lotus" {
		t.Errorf("unexpected controls %+v", c)
	}
}

func TestCardQuery(t *testing.T) {
	card := models.CardResult{Name: "Charizard", Number: "4/102"}
	if got := CardQuery(card); got != "Charizard 4/102" {
		t.Errorf("CardQuery = %q", got)
	}
	if got := CardQuery(models.CardResult{Name: " Black Lotus "}); got != "Black Lotus" {
		t.Errorf("CardQuery without number = %q", got)
	}
}
