package service

import (
	"context"

	"rpc-speed-bot/internal/domain/entity"
)

// Prober defines the interface for probing a single RPC endpoint.
// A non-nil error means the probe failed and must be counted as such.
type Prober interface {
	Probe(ctx context.Context, rpcURL entity.RPCURL) (entity.ProbeResult, error)
}
