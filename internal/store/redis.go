package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"mvp-board/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "mvpboard:query:"

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	if strings.TrimSpace(opts.Addr) == "" {
		return nil, errors.New("redis addr is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client, ttl: opts.TTL}, nil
}

type redisQuery struct {
	Query     model.Query `json:"query"`
	CreatedAt time.Time   `json:"createdAt"`
}

func (s *RedisStore) PublishQuery(ctx context.Context, q model.Query) (model.PublishedQuery, error) {
	if q.Year == "" {
		return model.PublishedQuery{}, ErrYearRequired
	}
	p := model.PublishedQuery{ID: uuid.NewString(), Query: q, CreatedAt: time.Now().UTC()}
	payload, err := json.Marshal(redisQuery{Query: p.Query, CreatedAt: p.CreatedAt})
	if err != nil {
		return model.PublishedQuery{}, fmt.Errorf("marshal published query: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+p.ID, payload, s.ttl).Err(); err != nil {
		return model.PublishedQuery{}, fmt.Errorf("redis set: %w", err)
	}
	return p, nil
}

func (s *RedisStore) GetQuery(ctx context.Context, id string) (model.PublishedQuery, bool) {
	payload, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		return model.PublishedQuery{}, false
	}
	var stored redisQuery
	if err := json.Unmarshal(payload, &stored); err != nil {
		return model.PublishedQuery{}, false
	}
	return model.PublishedQuery{ID: id, Query: stored.Query, CreatedAt: stored.CreatedAt}, true
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
