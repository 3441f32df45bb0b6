package tui

import "sync"

// Form holds the values the widget reads when a search is triggered
type Form struct {
	mu    sync.RWMutex
	game  string
	query string
}

func (f *Form) Set(game, query string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.game = game
	f.query = query
}

func (f *Form) Game() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.game
}

func (f *Form) Query() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.query
}
