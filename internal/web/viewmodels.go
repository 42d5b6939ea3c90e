package web

type BaseView struct {
	Title string
	IsDev bool
}

// FormView mirrors the four filter inputs exactly as typed.
type FormView struct {
	Year             string
	LowerPoints      string
	LowerEfg         string
	LowerGamesPlayed string
	YearInvalid      bool
	Error            string
}

type IndexView struct {
	BaseView
	Form FormView
}

type ResultKind string

const (
	ResultLoading ResultKind = "loading"
	ResultError   ResultKind = "error"
	ResultEmpty   ResultKind = "empty"
	ResultPlayers ResultKind = "players"
)

type PlayerCard struct {
	Player    string
	Score     string
	Highlight bool
}

type ResultView struct {
	Kind       ResultKind
	Generation uint64
	Year       string
	Message    string
	Cards      []PlayerCard
}

type ResultPageView struct {
	BaseView
	ViewID   string
	Form     FormView
	ShareURL string
	Result   ResultView
}

// liveMessage is pushed over the result websocket after every commit.
type liveMessage struct {
	Type       string `json:"type"`
	Generation uint64 `json:"generation"`
	HTML       string `json:"html"`
}
