package memory

import (
	"context"
	"fmt"

	"rpc-speed-bot/internal/config"
	"rpc-speed-bot/internal/domain/entity"
	domainRepo "rpc-speed-bot/internal/domain/repository"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.SnapshotRepository = (*CacheRepository)(nil)

const latestSnapshotKey = "latest_snapshot"

// CacheRepository implements domainRepo.SnapshotRepository using the go-cache in-memory library.
// A snapshot older than the default expiration is treated as absent, so a stalled
// poll loop is visible to readers.
type CacheRepository struct {
	cache  *cache.Cache
	logger *zap.Logger
}

// NewCacheRepository creates a new in-memory snapshot repository instance.
func NewCacheRepository(cfg config.CacheConfig, logger *zap.Logger) *CacheRepository {
	defaultExpiration := cfg.GetDefaultExpiration()
	cleanupInterval := cfg.GetCleanupInterval()

	c := cache.New(defaultExpiration, cleanupInterval)
	logger.Info(
		"Initialized go-cache for snapshot storage",
		zap.Duration("defaultExpiration", defaultExpiration),
		zap.Duration("cleanupInterval", cleanupInterval),
	)

	return &CacheRepository{
		cache:  c,
		logger: logger.Named("MemorySnapshotStorage"),
	}
}

// GetLatest retrieves the cached snapshot, returning found status.
func (r *CacheRepository) GetLatest(_ context.Context) (entity.Snapshot, bool, error) {
	x, found := r.cache.Get(latestSnapshotKey)
	if !found {
		r.logger.Debug("Memory cache miss", zap.String("key", latestSnapshotKey))
		return entity.Snapshot{}, false, nil
	}
	snapshot, ok := x.(entity.Snapshot)
	if !ok {
		r.logger.Warn(
			"Memory cache data type mismatch for key",
			zap.String("key", latestSnapshotKey), zap.Any("type", fmt.Sprintf("%T", x)),
		)
		return entity.Snapshot{}, false, nil
	}
	return snapshot, true, nil
}

// SetLatest stores a copy of snapshot under the default expiration.
func (r *CacheRepository) SetLatest(_ context.Context, snapshot entity.Snapshot) error {
	rows := make([]entity.DisplayRow, len(snapshot.Rows))
	copy(rows, snapshot.Rows)
	snapshot.Rows = rows

	r.cache.Set(latestSnapshotKey, snapshot, cache.DefaultExpiration)
	r.logger.Debug("Memory cache set", zap.String("key", latestSnapshotKey), zap.Uint64("tick", snapshot.Tick))
	return nil
}
