package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"mvp-board/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db  *sql.DB
	ttl time.Duration
}

func NewSQLiteStore(path string, opts Options) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	migrations, err := migrationsFS(opts.MigrationsDir, "sqlite")
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := applyMigrations(db, migrations, "?"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, ttl: opts.TTL}, nil
}

func (s *SQLiteStore) PublishQuery(ctx context.Context, q model.Query) (model.PublishedQuery, error) {
	if q.Year == "" {
		return model.PublishedQuery{}, ErrYearRequired
	}
	p := model.PublishedQuery{ID: uuid.NewString(), Query: q, CreatedAt: time.Now().UTC()}
	_, err := s.db.ExecContext(ctx, `INSERT INTO published_queries (id, year, lower_points, lower_efg, lower_games_played, created_at) VALUES (?,?,?,?,?,?)`,
		p.ID, q.Year, q.LowerPoints, q.LowerEfg, q.LowerGamesPlayed, p.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return model.PublishedQuery{}, fmt.Errorf("insert published query: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) GetQuery(ctx context.Context, id string) (model.PublishedQuery, bool) {
	var p model.PublishedQuery
	var createdAt int64
	err := s.db.QueryRowContext(ctx, `SELECT id, year, lower_points, lower_efg, lower_games_played, created_at FROM published_queries WHERE id = ?`, id).
		Scan(&p.ID, &p.Query.Year, &p.Query.LowerPoints, &p.Query.LowerEfg, &p.Query.LowerGamesPlayed, &createdAt)
	if err != nil {
		return model.PublishedQuery{}, false
	}
	p.CreatedAt = time.UnixMilli(createdAt).UTC()
	if expired(p, s.ttl, time.Now()) {
		return model.PublishedQuery{}, false
	}
	return p, true
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
