package shared

import "github.com/rohanthewiz/element"

type Banner struct {
	Title string
}

func (bn Banner) Render(b *element.Builder) any {
	b.Header("class", "banner").R(
		b.A("class", "brand", "href", "/").T(bn.Title),
		b.SpanClass("tagline").T("Card prices at a glance"),
	)
	return nil
}
