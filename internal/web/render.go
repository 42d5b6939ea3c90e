package web

import (
	"mvp-board/internal/fetcher"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	loadingText = "Loading MVP scores…"
	emptyText   = "No players matched the criteria."
)

var scorePrinter = message.NewPrinter(language.English)

// BuildResultView maps a committed state to what the result panel shows.
// Every entry flagged as MVP is highlighted; duplicates are not resolved here.
func BuildResultView(st fetcher.State) ResultView {
	view := ResultView{Generation: st.Generation, Year: st.Query.Year}
	switch st.Status {
	case fetcher.StatusFailure:
		view.Kind = ResultError
		view.Message = st.Message
	case fetcher.StatusSuccess:
		if len(st.Players) == 0 {
			view.Kind = ResultEmpty
			view.Message = emptyText
			return view
		}
		view.Kind = ResultPlayers
		view.Cards = make([]PlayerCard, 0, len(st.Players))
		for _, p := range st.Players {
			view.Cards = append(view.Cards, PlayerCard{
				Player:    p.Player,
				Score:     formatScore(p.MVPScore),
				Highlight: p.IsMVP,
			})
		}
	default:
		view.Kind = ResultLoading
		view.Message = loadingText
	}
	return view
}

func formatScore(score float64) string {
	return scorePrinter.Sprint(number.Decimal(score, number.MaxFractionDigits(2)))
}
