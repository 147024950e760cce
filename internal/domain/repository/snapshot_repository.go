package repository

import (
	"context"

	"rpc-speed-bot/internal/domain/entity"
)

// SnapshotRepository defines the interface for keeping the most recent poll snapshot.
type SnapshotRepository interface {
	// GetLatest returns the most recent snapshot and whether one was found.
	GetLatest(ctx context.Context) (entity.Snapshot, bool, error)

	// SetLatest replaces the stored snapshot.
	SetLatest(ctx context.Context, snapshot entity.Snapshot) error
}
