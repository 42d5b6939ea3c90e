package web

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"mvp-board/internal/fetcher"
	"mvp-board/internal/model"
)

func loadTemplates(t *testing.T) *Templates {
	t.Helper()
	templates, err := NewTemplates(os.DirFS("../.."))
	if err != nil {
		t.Fatalf("NewTemplates() error = %v", err)
	}
	return templates
}

func renderPanel(t *testing.T, st fetcher.State) string {
	t.Helper()
	var buf bytes.Buffer
	if err := loadTemplates(t).ExecutePartial(&buf, "result_panel", BuildResultView(st)); err != nil {
		t.Fatalf("ExecutePartial() error = %v", err)
	}
	return buf.String()
}

func TestBuildResultViewHighlightsMVP(t *testing.T) {
	st := fetcher.Success(model.Query{Year: "2023"}, []model.PlayerResult{
		{Player: "A", MVPScore: 10, IsMVP: true},
		{Player: "B", MVPScore: 5, IsMVP: false},
	})
	view := BuildResultView(st)

	if view.Kind != ResultPlayers {
		t.Fatalf("Kind = %q, want %q", view.Kind, ResultPlayers)
	}
	if len(view.Cards) != 2 {
		t.Fatalf("len(Cards) = %d, want 2", len(view.Cards))
	}
	if !view.Cards[0].Highlight || view.Cards[0].Player != "A" {
		t.Fatalf("Cards[0] = %+v, want highlighted A", view.Cards[0])
	}
	if view.Cards[1].Highlight {
		t.Fatalf("Cards[1] = %+v, want not highlighted", view.Cards[1])
	}
	if view.Cards[0].Score != "10" || view.Cards[1].Score != "5" {
		t.Fatalf("scores = %q, %q", view.Cards[0].Score, view.Cards[1].Score)
	}

	html := renderPanel(t, st)
	if strings.Count(html, "mvp-highlight") != 1 {
		t.Fatalf("want exactly one highlighted card, got:\n%s", html)
	}
	if !strings.Contains(html, `class="card mvp-highlight" data-player="A"`) {
		t.Fatalf("player A is not the highlighted card:\n%s", html)
	}
	if strings.Contains(html, "error-message") {
		t.Fatalf("success panel renders an error notice:\n%s", html)
	}
}

func TestBuildResultViewKeepsServerOrder(t *testing.T) {
	st := fetcher.Success(model.Query{Year: "2023"}, []model.PlayerResult{
		{Player: "Low", MVPScore: 1.5},
		{Player: "High", MVPScore: 99.25},
	})
	view := BuildResultView(st)
	if view.Cards[0].Player != "Low" || view.Cards[1].Player != "High" {
		t.Fatalf("cards reordered: %+v", view.Cards)
	}
	if view.Cards[1].Score != "99.25" {
		t.Fatalf("Score = %q, want %q", view.Cards[1].Score, "99.25")
	}
}

func TestBuildResultViewHighlightsEveryFlaggedEntry(t *testing.T) {
	view := BuildResultView(fetcher.Success(model.Query{Year: "2023"}, []model.PlayerResult{
		{Player: "A", MVPScore: 10, IsMVP: true},
		{Player: "B", MVPScore: 9, IsMVP: true},
		{Player: "C", MVPScore: 8},
	}))
	highlighted := 0
	for _, card := range view.Cards {
		if card.Highlight {
			highlighted++
		}
	}
	if highlighted != 2 {
		t.Fatalf("highlighted = %d, want 2", highlighted)
	}
}

func TestBuildResultViewFailure(t *testing.T) {
	st := fetcher.Failure(model.Query{Year: "1800"}, "bad year")
	view := BuildResultView(st)
	if view.Kind != ResultError || view.Message != "bad year" || len(view.Cards) != 0 {
		t.Fatalf("view = %+v", view)
	}

	html := renderPanel(t, st)
	if !strings.Contains(html, "Error: bad year") {
		t.Fatalf("missing error notice:\n%s", html)
	}
	if strings.Contains(html, `class="cards"`) {
		t.Fatalf("error panel renders the card list:\n%s", html)
	}
}

func TestBuildResultViewEmpty(t *testing.T) {
	st := fetcher.Success(model.Query{Year: "2023"}, nil)
	view := BuildResultView(st)
	if view.Kind != ResultEmpty {
		t.Fatalf("Kind = %q, want %q", view.Kind, ResultEmpty)
	}

	html := renderPanel(t, st)
	if !strings.Contains(html, "No players matched the criteria.") {
		t.Fatalf("missing placeholder:\n%s", html)
	}
	if strings.Contains(html, "error-message") {
		t.Fatalf("empty panel renders an error notice:\n%s", html)
	}
}

func TestBuildResultViewIdle(t *testing.T) {
	view := BuildResultView(fetcher.Idle())
	if view.Kind != ResultLoading || view.Generation != 0 {
		t.Fatalf("view = %+v", view)
	}
}

func TestFormatScore(t *testing.T) {
	tests := map[float64]string{
		0:     "0",
		10:    "10",
		5.25:  "5.25",
		12.35: "12.35",
	}
	for in, want := range tests {
		if got := formatScore(in); got != want {
			t.Fatalf("formatScore(%v) = %q, want %q", in, got, want)
		}
	}
}
