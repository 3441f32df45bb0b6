package tui

import (
	"flipradar/catalog"
	"flipradar/widget"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rohanthewiz/serr"
)

// Run starts the terminal frontend and blocks until the user quits
func Run(searcher widget.Searcher, linkBase string) error {
	region := &ProgramRegion{}
	model := NewModel(searcher, region, catalog.Games, linkBase)

	p := tea.NewProgram(model, tea.WithAltScreen())
	region.Attach(p.Send)

	if _, err := p.Run(); err != nil {
		return serr.Wrap(err, "terminal frontend failed")
	}
	return nil
}
