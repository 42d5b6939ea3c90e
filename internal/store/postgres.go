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
	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStore struct {
	db  *sql.DB
	ttl time.Duration
}

func NewPostgresStore(dsn string, opts Options) (*PostgresStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	migrations, err := migrationsFS(opts.MigrationsDir, "postgres")
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := applyMigrations(db, migrations, "$1"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db, ttl: opts.TTL}, nil
}

func (s *PostgresStore) PublishQuery(ctx context.Context, q model.Query) (model.PublishedQuery, error) {
	if q.Year == "" {
		return model.PublishedQuery{}, ErrYearRequired
	}
	p := model.PublishedQuery{ID: uuid.NewString(), Query: q, CreatedAt: time.Now().UTC()}
	_, err := s.db.ExecContext(ctx, `INSERT INTO published_queries (id, year, lower_points, lower_efg, lower_games_played, created_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, q.Year, q.LowerPoints, q.LowerEfg, q.LowerGamesPlayed, p.CreatedAt,
	)
	if err != nil {
		return model.PublishedQuery{}, fmt.Errorf("insert published query: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) GetQuery(ctx context.Context, id string) (model.PublishedQuery, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return model.PublishedQuery{}, false
	}
	var p model.PublishedQuery
	err := s.db.QueryRowContext(ctx, `SELECT id, year, lower_points, lower_efg, lower_games_played, created_at FROM published_queries WHERE id = $1`, id).
		Scan(&p.ID, &p.Query.Year, &p.Query.LowerPoints, &p.Query.LowerEfg, &p.Query.LowerGamesPlayed, &p.CreatedAt)
	if err != nil {
		return model.PublishedQuery{}, false
	}
	if expired(p, s.ttl, time.Now()) {
		return model.PublishedQuery{}, false
	}
	return p, true
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
