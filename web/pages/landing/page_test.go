package landing

import (
	"strings"
	"testing"
)

func TestRenderHasWidgetControls(t *testing.T) {
	html := NewPage([]string{"pokemon", "mtg", "lorcana"}).Render()

	for _, want := range []string{
		`id="game"`, `id="q"`, `id="btnSearch"`, `id="results"`,
		"Pokémon", "Magic: The Gathering", `value="lorcana"`,
		AppScriptURL,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("landing page should contain %q", want)
		}
	}
}

func TestGameOrderFollowsInput(t *testing.T) {
	html := NewPage([]string{"mtg", "pokemon"}).Render()
	if strings.Index(html, `value="mtg"`) > strings.Index(html, `value="pokemon"`) {
		t.Error("first game should be the first option, and so the default")
	}
}
