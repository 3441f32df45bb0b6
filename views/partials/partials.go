package partials

import (
	"strings"

	"flipradar/models"

	"github.com/rohanthewiz/element"
)

// SubtitleSeparator joins set and number in the row subtitle
const SubtitleSeparator = " • "

// htmlEscaper maps the five markup characters to their entities.
// The builder writes text raw, so every backend string goes through Escape first.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape makes backend-supplied text safe to place in markup
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// Searching is the transient placeholder written before the request goes out
func Searching() string {
	return renderMuted("Searching…")
}

// NoResults is written for an empty array or a non-array response
func NoResults() string {
	return renderMuted("No results.")
}

// SearchFailed is written when the request or the response parse fails
func SearchFailed() string {
	b := element.NewBuilder()
	b.DivClass("muted searchFailed").T("Search failed. Please try again.")
	return b.String()
}

func renderMuted(text string) string {
	b := element.NewBuilder()
	b.DivClass("muted").T(text)
	return b.String()
}

// Subtitle joins the non-empty set and number values
func Subtitle(card models.CardResult) string {
	parts := make([]string, 0, 2)
	if !card.Set.IsEmpty() {
		parts = append(parts, card.Set.String())
	}
	if !card.Number.IsEmpty() {
		parts = append(parts, card.Number.String())
	}
	return strings.Join(parts, SubtitleSeparator)
}

// ResultsLink points at the Flip Radar page for one product under the current game filter
func ResultsLink(game, productID string) string {
	return "/results?game=" + models.EncodeComponent(game) +
		"&product_id=" + models.EncodeComponent(productID)
}

// ResultRows renders one row per card, in the order received
func ResultRows(list models.ResultList, game string) string {
	b := element.NewBuilder()

	element.ForEach([]models.CardResult(list), func(card models.CardResult) {
		b.DivClass("resultRow").R(
			b.Div().R(
				b.DivClass("rTitle").T(Escape(card.Name.String())),
				b.DivClass("rSub").T(Escape(Subtitle(card))),
			),
			b.Div().R(
				b.A("class", "primaryLink", "href", ResultsLink(game, card.ProductID.String())).T("Flip Radar →"),
			),
		)
	})

	return b.String()
}

// RenderOutcome picks the fragment that replaces the output region
func RenderOutcome(outcome models.SearchOutcome, game string) string {
	switch outcome.Kind {
	case models.OutcomeResults:
		if len(outcome.Results) == 0 {
			return NoResults()
		}
		return ResultRows(outcome.Results, game)
	case models.OutcomeFailed:
		return SearchFailed()
	default:
		return NoResults()
	}
}
