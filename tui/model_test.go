package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"flipradar/models"
	"flipradar/widget"

	tea "github.com/charmbracelet/bubbletea"
)

// recordingSearcher returns fixed results and remembers the requests it saw
type recordingSearcher struct {
	mu   sync.Mutex
	reqs []models.SearchRequest
}

func (s *recordingSearcher) Search(ctx context.Context, req models.SearchRequest) models.SearchOutcome {
	s.mu.Lock()
	s.reqs = append(s.reqs, req)
	s.mu.Unlock()
	return models.Found(models.ResultList{
		{Name: "Charizard", Set: "Base", Number: "4/102", ProductID: "123"},
		{Name: "<b>Bulk</b>", ProductID: "9"},
	})
}

func (s *recordingSearcher) requests() []models.SearchRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SearchRequest(nil), s.reqs...)
}

type harness struct {
	model    Model
	searcher *recordingSearcher
	msgs     chan tea.Msg
}

func newHarness() *harness {
	h := &harness{searcher: &recordingSearcher{}, msgs: make(chan tea.Msg, 16)}
	region := &ProgramRegion{}
	region.Attach(func(msg tea.Msg) { h.msgs <- msg })
	h.model = NewModel(h.searcher, region, []string{"pokemon", "mtg"}, "http://localhost:8000/")
	return h
}

func (h *harness) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

func (h *harness) typeText(t *testing.T, text string) {
	h.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// deliver feeds n region writes back into the model, in whatever order they arrive
func (h *harness) deliver(t *testing.T, n int) {
	t.Helper()
	h.model.Widget().Wait()
	for i := 0; i < n; i++ {
		select {
		case msg := <-h.msgs:
			h.send(t, msg)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for region write %d of %d", i+1, n)
		}
	}
}

func TestEnterInQueryTriggersSearch(t *testing.T) {
	h := newHarness()
	h.typeText(t, "Char")
	h.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	h.deliver(t, 2)

	reqs := h.searcher.requests()
	if len(reqs) != 1 || reqs[0].Game != "pokemon" || reqs[0].Query != "Char" {
		t.Fatalf("unexpected searches %+v", reqs)
	}

	rows := h.model.Results().Rows
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", h.model.Results())
	}
	if rows[0].Title != "Charizard" || rows[0].Subtitle != "Base • 4/102" {
		t.Errorf("unexpected first row %+v", rows[0])
	}
	if !strings.Contains(rows[0].Link, "product_id=123") {
		t.Errorf("row link %q should carry the product id", rows[0].Link)
	}
	if rows[1].Title != "<b>Bulk</b>" {
		t.Errorf("escaped name should read back as plain text, got %q", rows[1].Title)
	}

	view := h.model.View()
	if !strings.Contains(view, "Charizard") || !strings.Contains(view, "http://localhost:8000/results?game=pokemon") {
		t.Errorf("view should list results with absolute links:\n%s", view)
	}
}

func TestTypingDoesNotSearch(t *testing.T) {
	h := newHarness()
	h.typeText(t, "Lotus")
	if g := h.model.Widget().Generation(); g != 0 {
		t.Errorf("typing started %d searches; want 0", g)
	}
}

func TestEmptyQueryIgnored(t *testing.T) {
	h := newHarness()
	h.typeText(t, "   ")
	h.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	if g := h.model.Widget().Generation(); g != 0 {
		t.Errorf("blank query started %d searches; want 0", g)
	}
}

func TestFocusCycle(t *testing.T) {
	h := newHarness()
	if h.model.Focused() != FocusQuery {
		t.Fatalf("initial focus %v; want query", h.model.Focused())
	}

	h.send(t, tea.KeyMsg{Type: tea.KeyTab})
	if h.model.Focused() != FocusButton {
		t.Errorf("tab from query should focus the button, got %v", h.model.Focused())
	}
	h.send(t, tea.KeyMsg{Type: tea.KeyTab})
	if h.model.Focused() != FocusGame {
		t.Errorf("tab from button should wrap to the game selector, got %v", h.model.Focused())
	}
	h.send(t, tea.KeyMsg{Type: tea.KeyShiftTab})
	if h.model.Focused() != FocusButton {
		t.Errorf("shift+tab from game should focus the button, got %v", h.model.Focused())
	}
}

func TestGameSelectorCycles(t *testing.T) {
	h := newHarness()
	h.send(t, tea.KeyMsg{Type: tea.KeyShiftTab})

	h.send(t, tea.KeyMsg{Type: tea.KeyRight})
	if h.model.Game() != "mtg" {
		t.Errorf("right should select mtg, got %q", h.model.Game())
	}
	h.send(t, tea.KeyMsg{Type: tea.KeyRight})
	if h.model.Game() != "pokemon" {
		t.Errorf("right should wrap to pokemon, got %q", h.model.Game())
	}
	h.send(t, tea.KeyMsg{Type: tea.KeyLeft})
	if h.model.Game() != "mtg" {
		t.Errorf("left should wrap to mtg, got %q", h.model.Game())
	}
}

func TestButtonActivates(t *testing.T) {
	h := newHarness()
	h.send(t, tea.KeyMsg{Type: tea.KeyShiftTab})
	h.send(t, tea.KeyMsg{Type: tea.KeyRight})
	h.send(t, tea.KeyMsg{Type: tea.KeyTab})
	h.typeText(t, "Lotus")
	h.send(t, tea.KeyMsg{Type: tea.KeyTab})

	h.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	h.deliver(t, 2)

	reqs := h.searcher.requests()
	if len(reqs) != 1 || reqs[0].Game != "mtg" || reqs[0].Query != "Lotus" {
		t.Fatalf("unexpected searches %+v", reqs)
	}
	if !strings.Contains(h.model.Results().Rows[0].Link, "game=mtg") {
		t.Error("links should carry the selected game")
	}
}

func TestStaleFragmentDropped(t *testing.T) {
	h := newHarness()
	h.send(t, ResultsHTMLMsg{Seq: 2, HTML: `<div class="muted">No results.</div>`})
	h.send(t, ResultsHTMLMsg{Seq: 1, HTML: `<div class="muted">Searching…</div>`})

	if got := h.model.Results().Placeholder; got != "No results." {
		t.Errorf("placeholder = %q; an earlier write must not replace a later one", got)
	}
}

func TestQuit(t *testing.T) {
	h := newHarness()
	cmd := h.send(t, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should quit")
	}
}

func TestNewModelWithOptions(t *testing.T) {
	region := &ProgramRegion{}
	m := NewModel(widget.SearcherFunc(func(ctx context.Context, req models.SearchRequest) models.SearchOutcome {
		return models.Empty()
	}), region, []string{"pokemon"}, "", widget.WithDiscardStale())

	if m.Game() != "pokemon" {
		t.Errorf("default game %q; want first entry", m.Game())
	}
}
