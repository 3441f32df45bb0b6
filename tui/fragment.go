package tui

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohanthewiz/serr"
)

// Row is one search result read back from the rendered fragment
type Row struct {
	Title    string
	Subtitle string
	Link     string
}

// Fragment is the terminal view of the output region: result rows or a single placeholder line
type Fragment struct {
	Rows        []Row
	Placeholder string
	Failed      bool
}

// ParseFragment reads the widget's HTML fragment. Entities are decoded, so text is plain.
func ParseFragment(html string) (Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Fragment{}, serr.Wrap(err, "failed to parse results fragment")
	}

	var frag Fragment
	doc.Find(".resultRow").Each(func(i int, s *goquery.Selection) {
		link, _ := s.Find("a.primaryLink").Attr("href")
		frag.Rows = append(frag.Rows, Row{
			Title:    strings.TrimSpace(s.Find(".rTitle").Text()),
			Subtitle: strings.TrimSpace(s.Find(".rSub").Text()),
			Link:     link,
		})
	})
	if len(frag.Rows) > 0 {
		return frag, nil
	}

	muted := doc.Find(".muted").First()
	frag.Placeholder = strings.TrimSpace(muted.Text())
	frag.Failed = muted.HasClass("searchFailed")
	return frag, nil
}
