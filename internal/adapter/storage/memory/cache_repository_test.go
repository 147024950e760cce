package memory

import (
	"context"
	"testing"
	"time"

	"rpc-speed-bot/internal/config"
	"rpc-speed-bot/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCacheRepository_MissThenHit(t *testing.T) {
	repo := NewCacheRepository(config.CacheConfig{DefaultExpiration: time.Minute, CleanupInterval: time.Minute}, zap.NewNop())
	ctx := context.Background()

	_, found, err := repo.GetLatest(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	in := entity.Snapshot{Tick: 3, Rows: []entity.DisplayRow{{Name: "A", SuccessCount: 3}}}
	require.NoError(t, repo.SetLatest(ctx, in))

	got, found, err := repo.GetLatest(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, in, got)
}

func TestCacheRepository_StoresCopy(t *testing.T) {
	repo := NewCacheRepository(config.CacheConfig{DefaultExpiration: time.Minute, CleanupInterval: time.Minute}, zap.NewNop())
	ctx := context.Background()

	rows := []entity.DisplayRow{{Name: "A", SuccessCount: 1}}
	require.NoError(t, repo.SetLatest(ctx, entity.Snapshot{Tick: 1, Rows: rows}))
	rows[0].SuccessCount = 99

	got, _, _ := repo.GetLatest(ctx)
	assert.Equal(t, uint64(1), got.Rows[0].SuccessCount)
}

func TestCacheRepository_Expires(t *testing.T) {
	repo := NewCacheRepository(config.CacheConfig{DefaultExpiration: 20 * time.Millisecond, CleanupInterval: time.Minute}, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.SetLatest(ctx, entity.Snapshot{Tick: 1}))
	time.Sleep(50 * time.Millisecond)

	_, found, err := repo.GetLatest(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}
