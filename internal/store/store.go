// Package store is the shared location submitted queries are published to,
// so a result view can pick up the exact query the form produced.
package store

import (
	"context"
	"errors"
	"time"

	"mvp-board/internal/model"
)

var ErrYearRequired = errors.New("query year is required")

type Store interface {
	PublishQuery(ctx context.Context, q model.Query) (model.PublishedQuery, error)
	GetQuery(ctx context.Context, id string) (model.PublishedQuery, bool)
	Close() error
}

// Options shared by every backend. A zero TTL keeps published queries until
// the backend is closed.
type Options struct {
	MigrationsDir string
	TTL           time.Duration
}

func expired(p model.PublishedQuery, ttl time.Duration, now time.Time) bool {
	return ttl > 0 && now.Sub(p.CreatedAt) > ttl
}
