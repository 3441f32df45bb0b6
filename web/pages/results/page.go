// Package results renders the Flip Radar page for one card.
package results

import (
	"fmt"
	"strconv"
	"strings"

	"flipradar/catalog"
	"flipradar/ebay"
	"flipradar/flip"
	"flipradar/views/partials"
	"flipradar/web/pages/comps"
	"flipradar/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// Page shows ranked resale opportunities for a card, the sold comps behind them,
// and the catalog price points when the page was opened for a product.
type Page struct {
	shared.Page
	Game      string
	Query     string
	ProductID int

	Report      flip.Report
	RadarFailed bool

	Prices       catalog.ProductPrices
	PricesFailed bool
}

// NewPage builds the results page for a card query. productID is 0 when no catalog product is known.
func NewPage(game, query string, productID int) Page {
	title := query
	if title == "" {
		title = "Product " + strconv.Itoa(productID)
	}
	return Page{
		Page:      shared.Page{Title: "Flip Radar - " + title},
		Game:      game,
		Query:     query,
		ProductID: productID,
	}
}

func (p Page) heading() comps.Heading {
	h := comps.Heading{Title: partials.Escape(p.Query), Subtitle: partials.Escape(p.Game)}
	if p.Query == "" {
		h.Title = "Product " + strconv.Itoa(p.ProductID)
	}
	if p.Report.MarketQuery != "" {
		h.Subtitle += partials.SubtitleSeparator + "eBay: " + partials.Escape(p.Report.MarketQuery)
	}
	return h
}

func (p Page) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		p.Head(b),
		b.Body().R(
			element.RenderComponents(b, p.Banner()),
			b.Main("class", "container").R(
				element.RenderComponents(b, p.heading()),
				p.renderRadar(b),
				func() (x any) {
					if p.ProductID > 0 {
						b.SectionClass("panel").R(
							b.H3().T("TCGplayer prices"),
							p.renderPrices(b),
						)
					}
					return
				}(),
				b.P().R(
					b.A("class", "primaryLink", "href", "/").T("← New search"),
				),
			),
			element.RenderComponents(b, p.Footer()),
		),
	)

	return b.String()
}

func (p Page) renderRadar(b *element.Builder) (x any) {
	b.SectionClass("panel radar").R(
		b.H3().T("Flip opportunities"),
		func() (x any) {
			switch {
			case p.Query == "":
				b.DivClass("muted").T("The card name is unavailable, so eBay was not searched.")
			case p.RadarFailed:
				b.DivClass("muted searchFailed").T("eBay listings are unavailable right now. Please try again.")
			case p.Report.SoldStats.Median == nil:
				b.DivClass("muted").T("No matching sold listings to price this card.")
			default:
				p.renderSoldStats(b)
				p.renderOpportunities(b)
			}
			return
		}(),
	)
	return
}

func (p Page) renderSoldStats(b *element.Builder) {
	s := p.Report.SoldStats
	stat := func(label, value string) {
		b.DivClass("stat").R(
			b.SpanClass("muted").T(label),
			b.Strong().T(value),
		)
	}

	b.DivClass("soldStats").R(
		b.Wrap(func() {
			stat("Sold comps", strconv.Itoa(p.Report.SoldCountUsed))
			stat("Median", FormatPrice(s.Median))
			stat("P25", FormatPrice(s.P25))
			stat("P75", FormatPrice(s.P75))
			stat("IQR", FormatPrice(s.IQR))
			stat("Std dev", FormatPrice(s.Stdev))
			stat("Min", FormatPrice(s.Min))
			stat("Max", FormatPrice(s.Max))
		}),
	)

	t := p.Report.Thresholds
	b.DivClass("muted thresholds").T(strings.Join([]string{
		"Min confidence " + fmt.Sprintf("%.2f", t.MinConfidence),
		"Min discount " + FormatPercent(t.MinDiscount),
		"Min profit " + fmt.Sprintf("$%.2f", t.MinProfitUSD),
	}, partials.SubtitleSeparator))
}

func (p Page) renderOpportunities(b *element.Builder) {
	if len(p.Report.Ranked) == 0 {
		b.DivClass("muted").T("No live listings clear the thresholds right now.")
		return
	}

	b.DivClass("priceList").R(
		b.DivClass("priceRow priceHeader").R(
			b.Span().T("Listing"),
			b.Span().T("Buy total"),
			b.Span().T("Discount"),
			b.Span().T("Profit"),
			b.Span().T("ROI"),
			b.Span().T("Match"),
		),
		element.ForEach(p.Report.Ranked, func(o flip.Opportunity) {
			b.DivClass("priceRow opportunity").R(
				listingTitle(b, o.Item),
				b.Span().T(fmt.Sprintf("$%.2f", o.Economics.BuyTotal)),
				b.Span().T(FormatPercent(o.Discount)),
				b.Span().T(fmt.Sprintf("$%.2f", o.Economics.Profit)),
				b.Span().T(func() string {
					if o.Economics.ROI == nil {
						return "–"
					}
					return FormatPercent(*o.Economics.ROI)
				}()),
				b.Span().T(FormatPercent(o.Match.Confidence)),
			)
		}),
	)
}

// listingTitle links to the eBay listing when it has a web URL
func listingTitle(b *element.Builder, it ebay.Listing) (x any) {
	title := partials.Escape(it.Title)
	if strings.HasPrefix(it.ItemWebURL, "https://") || strings.HasPrefix(it.ItemWebURL, "http://") {
		b.A("class", "rTitle", "href", partials.Escape(it.ItemWebURL), "rel", "noopener", "target", "_blank").T(title)
		return
	}
	b.SpanClass("rTitle").T(title)
	return
}

func (p Page) renderPrices(b *element.Builder) (x any) {
	if p.PricesFailed {
		b.DivClass("muted searchFailed").T("Prices are unavailable right now. Please try again.")
		return
	}
	if len(p.Prices.Prices) == 0 {
		b.DivClass("muted").T("No prices for this product.")
		return
	}

	b.DivClass("priceList").R(
		b.DivClass("priceRow priceHeader").R(
			b.Span().T("Printing"),
			b.Span().T("Market"),
			b.Span().T("Low"),
			b.Span().T("Mid"),
			b.Span().T("High"),
			b.Span().T("Direct low"),
		),
		element.ForEach(p.Prices.Prices, func(row catalog.PriceRow) {
			b.DivClass("priceRow").R(
				b.SpanClass("rTitle").T(partials.Escape(row.SubTypeName)),
				b.Span().T(FormatPrice(row.MarketPrice)),
				b.Span().T(FormatPrice(row.LowPrice)),
				b.Span().T(FormatPrice(row.MidPrice)),
				b.Span().T(FormatPrice(row.HighPrice)),
				b.Span().T(FormatPrice(row.DirectLowPrice)),
			)
		}),
	)
	return
}

// FormatPrice renders a USD amount, or a dash when the price is unknown
func FormatPrice(v *float64) string {
	if v == nil {
		return "–"
	}
	return fmt.Sprintf("$%.2f", *v)
}

// FormatPercent renders a ratio as a whole percentage
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}
