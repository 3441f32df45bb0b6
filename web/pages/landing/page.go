package landing

import (
	"flipradar/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// AppScriptURL is the browser widget with a cache-bust version
const AppScriptURL = "/static/js/app.js?v=1"

// Page is the landing page hosting the search widget
type Page struct {
	shared.Page
	Games []string
}

// NewPage creates the landing page for the given game filters
func NewPage(games []string) Page {
	return Page{
		Page:  shared.Page{Title: "Flip Radar - Card Search"},
		Games: games,
	}
}

// Render generates the complete HTML for the landing page
func (p Page) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		p.Head(b),
		b.Body().R(
			element.RenderComponents(b, p.Banner()),
			b.Main("class", "container").R(
				element.RenderComponents(b, SearchBar{Games: p.Games}),
				// Output region, replaced wholesale by the widget
				b.Div("id", "results", "class", "results").R(),
			),
			element.RenderComponents(b, p.Footer()),
			b.Script("src", AppScriptURL).R(),
		),
	)

	return b.String()
}
