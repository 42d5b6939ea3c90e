package model

import "time"

const (
	DefaultLowerPoints      = 15.0
	DefaultLowerEfg         = 40.0
	DefaultLowerGamesPlayed = 50.0
)

// Query is the filter a result view fetches MVP scores for.
type Query struct {
	Year             string  `json:"year" validate:"required"`
	LowerPoints      float64 `json:"lowerPoints" validate:"gte=0"`
	LowerEfg         float64 `json:"lowerEfg" validate:"gte=0"`
	LowerGamesPlayed float64 `json:"lowerGamesPlayed" validate:"gte=0"`
}

func DefaultQuery() Query {
	return Query{
		LowerPoints:      DefaultLowerPoints,
		LowerEfg:         DefaultLowerEfg,
		LowerGamesPlayed: DefaultLowerGamesPlayed,
	}
}

type PlayerResult struct {
	Player   string  `json:"player"`
	MVPScore float64 `json:"mvpScore"`
	IsMVP    bool    `json:"isMvp"`
}

// PublishedQuery is a submitted Query held in the shared store.
type PublishedQuery struct {
	ID        string
	Query     Query
	CreatedAt time.Time
}
