// Package redis implements flowstore.Store atop redis/go-redis/v9,
// grounded on the teacher's store/redis checkpoint backend: a
// value-per-key store plus a secondary set index, pipelined together.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"flowcore/flow"
	"flowcore/flowstore"
)

// Options configures a Store's connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // key prefix, default "flowcore:"
	TTL      time.Duration // expiration for saved records, default 0 (none)
}

// Store implements flowstore.Store with one Redis key per FlowRecord
// plus a set index so List doesn't need a KEYS scan.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New returns a Store talking to the Redis instance opts describes.
func New(opts Options) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "flowcore:"
	}

	return &Store{client: client, prefix: prefix, ttl: opts.TTL}
}

func (s *Store) recordKey(id string) string { return fmt.Sprintf("%srecord:%s", s.prefix, id) }
func (s *Store) indexKey() string           { return s.prefix + "index" }

var _ flowstore.Store = (*Store)(nil)

func (s *Store) Save(ctx context.Context, id string, rec *flow.FlowRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.recordKey(id), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save record to redis: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, id string) (*flow.FlowRecord, error) {
	data, err := s.client.Get(ctx, s.recordKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, flowstore.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load record from redis: %w", err)
	}
	var rec flow.FlowRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &rec, nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return ids, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.recordKey(id))
	pipe.SRem(ctx, s.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}
