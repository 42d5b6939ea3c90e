package fetcher

import (
	"errors"

	"mvp-board/internal/model"
	"mvp-board/internal/scoring"
)

// GenericFailureMessage is shown for every failure that is not an error
// reported by the scoring endpoint itself.
const GenericFailureMessage = "Failed to fetch data"

type Status int

const (
	StatusIdle Status = iota
	StatusSuccess
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	}
	return "idle"
}

// State is the committed outcome of a result view. Exactly one of Players
// (StatusSuccess) or Message (StatusFailure) is meaningful; StatusIdle
// carries neither.
type State struct {
	Status     Status
	Generation uint64
	Query      model.Query
	Players    []model.PlayerResult
	Message    string
}

func Idle() State {
	return State{Status: StatusIdle}
}

func Success(q model.Query, players []model.PlayerResult) State {
	if players == nil {
		players = []model.PlayerResult{}
	}
	return State{Status: StatusSuccess, Query: q, Players: players}
}

func Failure(q model.Query, message string) State {
	return State{Status: StatusFailure, Query: q, Message: message}
}

// Outcome maps the result of one scoring request to a State. Only messages
// from the endpoint's error envelope reach the user verbatim.
func Outcome(q model.Query, players []model.PlayerResult, err error) State {
	if err == nil {
		return Success(q, players)
	}
	var appErr *scoring.ApplicationError
	if errors.As(err, &appErr) {
		return Failure(q, appErr.Message)
	}
	return Failure(q, GenericFailureMessage)
}
