package repository

import (
	"context"

	"rpc-speed-bot/internal/domain/entity"
)

// TargetRepository defines the interface for loading the monitored target list.
type TargetRepository interface {
	// LoadTargets returns the targets in source order. An empty source yields an empty slice.
	LoadTargets(ctx context.Context) ([]entity.Target, error)
}
