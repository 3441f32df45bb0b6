package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// ResultsHTMLMsg carries a new region fragment into the program.
// Seq increases with every write so late deliveries can be dropped.
type ResultsHTMLMsg struct {
	Seq  uint64
	HTML string
}

// ProgramRegion forwards widget writes to a running tea.Program.
// Writes may come from inside Update, so delivery happens on its own goroutine.
type ProgramRegion struct {
	mu   sync.Mutex
	seq  uint64
	send func(tea.Msg)
}

// Attach sets the delivery function, normally (*tea.Program).Send
func (r *ProgramRegion) Attach(send func(tea.Msg)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.send = send
}

func (r *ProgramRegion) SetHTML(html string) {
	r.mu.Lock()
	r.seq++
	msg := ResultsHTMLMsg{Seq: r.seq, HTML: html}
	send := r.send
	r.mu.Unlock()

	if send == nil {
		return
	}
	go send(msg)
}
