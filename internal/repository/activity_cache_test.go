package repository

import (
	"context"
	"errors"
	"stats_hub_backend/internal/model"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls   int
	records []model.ActivityRecord
	err     error
}

func (s *countingSource) Fetch(context.Context, model.RecordQuery) ([]model.ActivityRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func sampleRecords() []model.ActivityRecord {
	at := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	return []model.ActivityRecord{
		{ID: "1", Module: model.ModuleStudy, CategoryKey: "algebra", Timestamp: at, Score: 80, Percentage: 80, DurationMinutes: 30},
		{ID: "2", Module: model.ModuleStudy, CategoryKey: "algebra", Timestamp: at.Add(time.Hour), Score: 90, Percentage: 90, ItemCount: 12},
	}
}

func TestCacheKey(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	key := CacheKey(model.RecordQuery{UserID: 7, Modules: []string{"sleep", "study"}, DateFrom: &from})
	assert.Equal(t, "stats:records:7:sleep,study:*:2024-03-01:-", key)

	// 模块顺序不影响缓存键
	assert.Equal(t, key, CacheKey(model.RecordQuery{UserID: 7, Modules: []string{"study", "sleep"}, DateFrom: &from}))
}

func TestRedisCachedSource(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	src := &countingSource{records: sampleRecords()}
	cached := NewRedisCachedSource(src, rdb, time.Minute)
	q := model.RecordQuery{UserID: 7, Modules: []string{model.ModuleStudy}}

	first, err := cached.Fetch(context.Background(), q)
	require.NoError(t, err)
	second, err := cached.Fetch(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists(CacheKey(q)))

	mr.FastForward(2 * time.Minute)
	_, err = cached.Fetch(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestRedisCachedSource_FallsThroughWhenRedisIsDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	src := &countingSource{records: sampleRecords()}
	cached := NewRedisCachedSource(src, rdb, time.Minute)

	records, err := cached.Fetch(context.Background(), model.RecordQuery{UserID: 7})
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 1, src.calls)
}

func TestLocalCachedSource(t *testing.T) {
	src := &countingSource{records: sampleRecords()}
	cached := NewLocalCachedSource(src, 16, time.Minute)
	q := model.RecordQuery{UserID: 7}

	first, err := cached.Fetch(context.Background(), q)
	require.NoError(t, err)
	first[0].Percentage = 0

	second, err := cached.Fetch(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
	// 调用方修改返回结果不会污染缓存
	assert.Equal(t, 80.0, second[0].Percentage)

	other, err := cached.Fetch(context.Background(), model.RecordQuery{UserID: 8})
	require.NoError(t, err)
	assert.Len(t, other, 2)
	assert.Equal(t, 2, src.calls)
}

func TestCachedSource_DoesNotCacheErrors(t *testing.T) {
	boom := errors.New("db down")
	src := &countingSource{err: boom}
	cached := NewLocalCachedSource(src, 16, time.Minute)

	_, err := cached.Fetch(context.Background(), model.RecordQuery{UserID: 7})
	assert.ErrorIs(t, err, boom)
	_, err = cached.Fetch(context.Background(), model.RecordQuery{UserID: 7})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, src.calls)
}
