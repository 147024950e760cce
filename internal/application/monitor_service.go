package application

import (
	"context"
	"time"

	"rpc-speed-bot/internal/application/port"
	"rpc-speed-bot/internal/config"
	"rpc-speed-bot/internal/domain"
	"rpc-speed-bot/internal/domain/entity"
	domainRepo "rpc-speed-bot/internal/domain/repository"
	domainService "rpc-speed-bot/internal/domain/service"

	"go.uber.org/zap"
)

// Compile-time check to ensure monitorService implements MonitorService
var _ port.MonitorService = (*monitorService)(nil)

// monitorService owns the target registry and the global tick counter. All
// mutation happens from RunCycle, which probes targets strictly one at a time.
type monitorService struct {
	targets   []entity.Target
	prober    domainService.Prober
	reporter  domainService.Reporter
	snapshots domainRepo.SnapshotRepository
	logger    *zap.Logger
	cfg       config.MonitorConfig
	tickCount uint64
}

// probeOutcome is the transient result for one target within a cycle.
type probeOutcome struct {
	result entity.ProbeResult
	err    error
}

// NewMonitorService creates the polling service. targets is copied; the service
// is its only mutator from then on.
func NewMonitorService(
	targets []entity.Target,
	prober domainService.Prober,
	reporter domainService.Reporter,
	snapshots domainRepo.SnapshotRepository,
	logger *zap.Logger,
	cfg config.MonitorConfig,
) port.MonitorService {
	owned := make([]entity.Target, len(targets))
	copy(owned, targets)

	return &monitorService{
		targets:   owned,
		prober:    prober,
		reporter:  reporter,
		snapshots: snapshots,
		logger:    logger.Named("MonitorService"),
		cfg:       cfg,
	}
}

// RunCycle probes every target once and reports the resulting snapshot. If ctx is
// cancelled mid-cycle nothing is committed: counters and the tick count stay as
// they were, so success+failed always equals the number of completed ticks.
func (s *monitorService) RunCycle(ctx context.Context) (entity.Snapshot, error) {
	startedAt := time.Now()
	outcomes := make([]probeOutcome, len(s.targets))

	for i := range s.targets {
		if err := ctx.Err(); err != nil {
			s.logger.Info("Cycle abandoned before completion", zap.Int("probed", i), zap.Error(err))
			return entity.Snapshot{}, err
		}
		outcomes[i] = s.probe(ctx, s.targets[i])
	}
	if err := ctx.Err(); err != nil {
		s.logger.Info("Cycle abandoned before completion", zap.Int("probed", len(s.targets)), zap.Error(err))
		return entity.Snapshot{}, err
	}

	s.tickCount++
	snapshot := entity.Snapshot{
		Tick:       s.tickCount,
		Rows:       make([]entity.DisplayRow, len(s.targets)),
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}
	for i := range s.targets {
		snapshot.Rows[i] = s.commit(&s.targets[i], outcomes[i])
	}

	s.logger.Info("Cycle finished",
		zap.Uint64("tick", snapshot.Tick),
		zap.Int("targets", len(snapshot.Rows)),
		zap.Duration("duration", snapshot.FinishedAt.Sub(snapshot.StartedAt)),
	)

	if err := s.snapshots.SetLatest(ctx, snapshot); err != nil {
		s.logger.Error("Failed to store snapshot", zap.Uint64("tick", snapshot.Tick), zap.Error(err))
	}
	if err := s.reporter.Render(snapshot); err != nil {
		s.logger.Error("Failed to render snapshot", zap.Uint64("tick", snapshot.Tick), zap.Error(err))
	}

	return snapshot, nil
}

// probe runs a single bounded probe against target.
func (s *monitorService) probe(ctx context.Context, target entity.Target) probeOutcome {
	probeCtx, cancel := context.WithTimeout(ctx, s.cfg.GetProbeTimeout())
	defer cancel()

	result, err := s.prober.Probe(probeCtx, target.Endpoint)
	if err != nil {
		s.logger.Debug("Probe failed", zap.String("target", target.Name), zap.Error(err))
	} else {
		s.logger.Debug("Probe succeeded",
			zap.String("target", target.Name),
			zap.Duration("latency", result.Latency),
			zap.Bool("hasBlockNumber", result.BlockNumber != nil),
		)
	}
	return probeOutcome{result: result, err: err}
}

// commit folds outcome into target and builds its display row for the current tick.
func (s *monitorService) commit(target *entity.Target, outcome probeOutcome) entity.DisplayRow {
	success := outcome.err == nil
	target.Record(success)

	row := entity.DisplayRow{
		Name:              target.Name,
		RequestTotalCount: s.tickCount,
		SuccessCount:      target.SuccessCount,
		FailedCount:       target.FailedCount,
		SuccessRate:       target.SuccessRate(s.tickCount),
		Protocol:          target.Endpoint.Protocol(),
	}
	if success {
		latencyMs := outcome.result.Latency.Milliseconds()
		row.LatencyMs = &latencyMs
		if outcome.result.BlockNumber != nil {
			blockNumber := *outcome.result.BlockNumber
			row.BlockNumber = &blockNumber
		}
	}
	return row
}

// Run executes a cycle immediately, then waits the configured interval after each
// cycle finishes before starting the next. Overruns are not caught up.
func (s *monitorService) Run(ctx context.Context) error {
	if len(s.targets) == 0 {
		return domain.ErrNoTargets
	}

	interval := s.cfg.GetInterval()
	s.logger.Info("Starting monitor",
		zap.Int("targets", len(s.targets)),
		zap.Duration("interval", interval),
		zap.Duration("probeTimeout", s.cfg.GetProbeTimeout()),
	)

	for {
		if _, err := s.RunCycle(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("Cycle failed", zap.Error(err))
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Monitor stopping due to context cancellation.", zap.Uint64("ticks", s.tickCount))
			return nil
		case <-timer.C:
		}
	}
}

// Latest returns the most recently stored snapshot.
func (s *monitorService) Latest(ctx context.Context) (entity.Snapshot, error) {
	snapshot, found, err := s.snapshots.GetLatest(ctx)
	if err != nil {
		return entity.Snapshot{}, err
	}
	if !found {
		return entity.Snapshot{}, domain.ErrNoSnapshot
	}
	return snapshot, nil
}
