package landing

import "github.com/rohanthewiz/element"

// SearchBar holds the widget's three controls: game selector, query field and search button.
// The ids are the contract with static/js/app.js.
type SearchBar struct {
	Games []string
}

var gameLabels = map[string]string{
	"pokemon": "Pokémon",
	"mtg":     "Magic: The Gathering",
}

// Render implements element.Component
func (s SearchBar) Render(b *element.Builder) (x any) {
	b.DivClass("searchBar").R(
		b.Select("id", "game", "class", "searchSelect").R(
			element.ForEach(s.Games, func(game string) {
				label := gameLabels[game]
				if label == "" {
					label = game
				}
				b.Option("value", game).T(label)
			}),
		),
		b.Input("type", "text", "id", "q", "class", "searchInput",
			"placeholder", "Card name, e.g. Charizard",
			"autocomplete", "off"),
		b.Button("type", "button", "id", "btnSearch", "class", "btn btnPrimary").T("Search"),
	)
	return
}
