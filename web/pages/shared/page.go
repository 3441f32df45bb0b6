// Package shared holds the page frame used by every full page.
package shared

import "github.com/rohanthewiz/element"

// StylesheetURL is the app stylesheet with a cache-bust version
const StylesheetURL = "/static/css/app.css?v=1"

// Page is embedded by full pages for the document head, banner and footer
type Page struct {
	Title string
}

// Head renders the document head
func (p Page) Head(b *element.Builder) any {
	return b.Head().R(
		b.Meta("charset", "UTF-8"),
		b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
		b.Title().T(p.Title),
		b.Link("rel", "icon", "href", "/favicon.ico"),
		b.Link("rel", "stylesheet", "href", StylesheetURL),
	)
}

func (p Page) Banner() Banner {
	return Banner{Title: "Flip Radar"}
}

func (p Page) Footer() Footer {
	return Footer{}
}
