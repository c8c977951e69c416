package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
)

// memoryCacheRepo mimics the redis-backed repository, including glob-style
// pattern deletion for "prefix:*" patterns.
type memoryCacheRepo struct {
	store map[string][]byte
}

func (m *memoryCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	if m.store == nil {
		return appErrors.ErrCacheMiss
	}
	payload, ok := m.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (m *memoryCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if m.store == nil {
		m.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = payload
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.store {
		if strings.HasPrefix(key, prefix) {
			delete(m.store, key)
		}
	}
	return nil
}

func TestCacheServiceHitMissRoundTrip(t *testing.T) {
	svc := NewCacheService(&memoryCacheRepo{}, nil, time.Minute, zap.NewNop(), true)
	ctx := context.Background()

	var out string
	hit, err := svc.Get(ctx, "key", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(ctx, "key", "value", 0))

	hit, err = svc.Get(ctx, "key", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "value", out)
}

func TestCacheServiceDisabledIsNoop(t *testing.T) {
	repo := &memoryCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), false)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "key", "value", 0))
	assert.Empty(t, repo.store)

	var out string
	hit, err := svc.Get(ctx, "key", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheServiceInvalidateByPattern(t *testing.T) {
	svc := NewCacheService(&memoryCacheRepo{}, nil, time.Minute, zap.NewNop(), true)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "monitoring:summary:2025:3", "a", 0))
	require.NoError(t, svc.Set(ctx, "monitoring:summary:2025:4", "b", 0))
	require.NoError(t, svc.Set(ctx, "other:key", "c", 0))

	require.NoError(t, svc.Invalidate(ctx, "monitoring:summary:*"))

	var out string
	hit, _ := svc.Get(ctx, "monitoring:summary:2025:3", &out)
	assert.False(t, hit)
	hit, _ = svc.Get(ctx, "other:key", &out)
	assert.True(t, hit)
}
