package port

import (
	"context"

	"rpc-speed-bot/internal/domain/entity"
)

// MonitorService defines the polling loop over the target registry.
type MonitorService interface {
	// RunCycle probes every target once, in registry order, and reports the snapshot.
	RunCycle(ctx context.Context) (entity.Snapshot, error)

	// Run executes a cycle immediately and then one per interval until ctx is done.
	Run(ctx context.Context) error

	// Latest returns the most recent snapshot.
	Latest(ctx context.Context) (entity.Snapshot, error)
}
