package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"stats_hub_backend/internal/model"
	"stats_hub_backend/internal/util"
	"stats_hub_backend/pkg/logger"
	"stats_hub_backend/pkg/monitoring"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

type recordFetcher interface {
	Fetch(ctx context.Context, q model.RecordQuery) ([]model.ActivityRecord, error)
}

// snapshotStore 保存某次查询的记录快照
type snapshotStore interface {
	get(ctx context.Context, key string) ([]model.ActivityRecord, bool, error)
	set(ctx context.Context, key string, records []model.ActivityRecord) error
	backend() string
}

// CachedRecordSource 为记录源加一层短期快照缓存。
// 缓存读写失败只记录日志和指标，始终回落到底层记录源。
type CachedRecordSource struct {
	next  recordFetcher
	store snapshotStore
}

func NewRedisCachedSource(next recordFetcher, rdb *redis.Client, ttl time.Duration) *CachedRecordSource {
	return &CachedRecordSource{next: next, store: &redisStore{rdb: rdb, ttl: ttl}}
}

func NewLocalCachedSource(next recordFetcher, size int, ttl time.Duration) *CachedRecordSource {
	if size <= 0 {
		size = 1024
	}
	return &CachedRecordSource{
		next:  next,
		store: &localStore{cache: lru.NewLRU[string, []model.ActivityRecord](size, nil, ttl)},
	}
}

// CacheKey stats:records:{user}:{modules}:{categories}:{from}:{to}
func CacheKey(q model.RecordQuery) string {
	return fmt.Sprintf("stats:records:%d:%s:%s:%s:%s",
		q.UserID,
		joinSorted(q.Modules),
		joinSorted(q.Categories),
		formatDate(q.DateFrom),
		formatDate(q.DateTo),
	)
}

func (c *CachedRecordSource) Fetch(ctx context.Context, q model.RecordQuery) ([]model.ActivityRecord, error) {
	key := CacheKey(q)
	backend := c.store.backend()

	cached, ok, err := c.store.get(ctx, key)
	switch {
	case err != nil:
		monitoring.CacheRequests.WithLabelValues(backend, "error").Inc()
		logger.Log.Warn("Record cache read failed", zap.String("key", key), zap.Error(err))
	case ok:
		monitoring.CacheRequests.WithLabelValues(backend, "hit").Inc()
		return copyRecords(cached), nil
	default:
		monitoring.CacheRequests.WithLabelValues(backend, "miss").Inc()
	}

	records, err := c.next.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	if err := c.store.set(ctx, key, records); err != nil {
		monitoring.CacheRequests.WithLabelValues(backend, "error").Inc()
		logger.Log.Warn("Record cache write failed", zap.String("key", key), zap.Error(err))
	}
	return records, nil
}

type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func (s *redisStore) backend() string { return "redis" }

func (s *redisStore) get(ctx context.Context, key string) ([]model.ActivityRecord, bool, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var records []model.ActivityRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false, err
	}
	return records, true, nil
}

func (s *redisStore) set(ctx context.Context, key string, records []model.ActivityRecord) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, raw, s.ttl).Err()
}

type localStore struct {
	cache *lru.LRU[string, []model.ActivityRecord]
}

func (s *localStore) backend() string { return "local" }

func (s *localStore) get(_ context.Context, key string) ([]model.ActivityRecord, bool, error) {
	records, ok := s.cache.Get(key)
	return records, ok, nil
}

func (s *localStore) set(_ context.Context, key string, records []model.ActivityRecord) error {
	s.cache.Add(key, copyRecords(records))
	return nil
}

func copyRecords(records []model.ActivityRecord) []model.ActivityRecord {
	out := make([]model.ActivityRecord, len(records))
	copy(out, records)
	return out
}

func joinSorted(values []string) string {
	if len(values) == 0 {
		return "*"
	}
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(util.DateFormat)
}
