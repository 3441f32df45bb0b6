package shared

import "github.com/rohanthewiz/element"

type Footer struct{}

func (f Footer) Render(b *element.Builder) any {
	b.Footer("class", "footer").R(
		b.P("class", "muted").T("Prices from TCGplayer. Not affiliated."),
	)
	return nil
}
