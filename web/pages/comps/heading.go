package comps

import "github.com/rohanthewiz/element"

// Heading is a page title with an optional muted subtitle.
// Both strings are written raw, so callers escape user input.
type Heading struct {
	Title    string
	Subtitle string
}

func (h Heading) Render(b *element.Builder) (x any) {
	b.DivClass("heading").R(
		b.H2().T(h.Title),
		func() (x any) {
			if h.Subtitle != "" {
				b.DivClass("muted").T(h.Subtitle)
			}
			return
		}(),
	)
	return
}
