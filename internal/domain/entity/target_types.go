package entity

import "time"

// Target is one monitored RPC endpoint together with its cumulative counters.
// Name and Endpoint never change after load; the counters are owned by the poll cycle.
type Target struct {
	Name         string
	Endpoint     RPCURL
	SuccessCount uint64
	FailedCount  uint64
}

// Record folds a single probe outcome into the target's counters.
func (t *Target) Record(success bool) {
	if success {
		t.SuccessCount++
		return
	}
	t.FailedCount++
}

// SuccessRate returns the displayed health percentage. A target that has never
// failed is always 100%. Otherwise the denominator is the global tick count,
// shared by every target, not this target's own attempt count.
func (t Target) SuccessRate(tickCount uint64) float64 {
	if t.FailedCount == 0 {
		return 100.0
	}
	if tickCount == 0 {
		return 0
	}
	return float64(t.SuccessCount) / float64(tickCount) * 100.0
}

// DisplayRow is the per-target view of one tick handed to the reporter.
type DisplayRow struct {
	Name              string   `json:"name"`
	RequestTotalCount uint64   `json:"requestTotalCount"`
	SuccessCount      uint64   `json:"successCount"`
	FailedCount       uint64   `json:"failedCount"`
	SuccessRate       float64  `json:"successRate"`
	LatencyMs         *int64   `json:"latencyMs,omitempty"`
	BlockNumber       *uint64  `json:"blockNumber,omitempty"`
	Protocol          Protocol `json:"protocol"`
}

// Snapshot is the full result of one tick.
type Snapshot struct {
	Tick       uint64       `json:"tick"`
	Rows       []DisplayRow `json:"rows"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`
}

// Row returns the row for the named target, if present.
func (s Snapshot) Row(name string) (DisplayRow, bool) {
	for _, r := range s.Rows {
		if r.Name == name {
			return r, true
		}
	}
	return DisplayRow{}, false
}
