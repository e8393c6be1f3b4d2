package metrics

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Perspective — метка направления сопоставления в метриках.
type Perspective string

const (
	PerspectiveReverseProspecting Perspective = "reverse-prospecting"
	PerspectiveHotSheet           Perspective = "hot-sheet"
)

// MatchMetrics — счётчики прогонов сопоставления по направлениям.
type MatchMetrics struct {
	log *slog.Logger

	prospecting counters
	hotSheet    counters
}

type counters struct {
	runsTotal      atomic.Int64
	evaluatedTotal atomic.Int64
	matchesTotal   atomic.Int64
	invalidTotal   atomic.Int64
	latencyTotalUs atomic.Int64
	lastLatencyUs  atomic.Int64
	lastMatchCount atomic.Int64
}

func New(log *slog.Logger) *MatchMetrics {
	return &MatchMetrics{log: log}
}

// Run — итог одного прогона MatchCounter.
type Run struct {
	Evaluated int
	Matches   int
	Invalid   int
	Latency   time.Duration
}

// RecordRun записывает прогон сопоставления. Неизвестное направление игнорируется.
func (m *MatchMetrics) RecordRun(p Perspective, run Run) {
	c := m.forPerspective(p)
	if c == nil {
		return
	}

	latencyUs := run.Latency.Microseconds()
	c.runsTotal.Add(1)
	c.evaluatedTotal.Add(int64(run.Evaluated))
	c.matchesTotal.Add(int64(run.Matches))
	c.invalidTotal.Add(int64(run.Invalid))
	c.latencyTotalUs.Add(latencyUs)
	c.lastLatencyUs.Store(latencyUs)
	c.lastMatchCount.Store(int64(run.Matches))

	if m.log != nil {
		attrs := []any{
			slog.String("perspective", string(p)),
			slog.Int("evaluated", run.Evaluated),
			slog.Int("matches", run.Matches),
			slog.Int64("latency_us", latencyUs),
		}
		if run.Invalid > 0 {
			attrs = append(attrs, slog.Int("invalid", run.Invalid))
			m.log.Warn("match run skipped invalid records", attrs...)
		} else {
			m.log.Debug("match run completed", attrs...)
		}
	}
}

// Timer измеряет длительность прогона.
type Timer struct {
	metrics     *MatchMetrics
	perspective Perspective
	startTime   time.Time
}

// StartTimer начинает измерение прогона.
func (m *MatchMetrics) StartTimer(p Perspective) *Timer {
	return &Timer{
		metrics:     m,
		perspective: p,
		startTime:   time.Now(),
	}
}

// Stop останавливает таймер и записывает прогон.
func (t *Timer) Stop(evaluated, matches, invalid int) {
	t.metrics.RecordRun(t.perspective, Run{
		Evaluated: evaluated,
		Matches:   matches,
		Invalid:   invalid,
		Latency:   time.Since(t.startTime),
	})
}

// Stats — текущая статистика по направлениям.
type Stats struct {
	ReverseProspecting PerspectiveStats `json:"reverse_prospecting"`
	HotSheet           PerspectiveStats `json:"hot_sheet"`
}

// PerspectiveStats — статистика по одному направлению.
type PerspectiveStats struct {
	RunsTotal      int64   `json:"runs_total"`
	EvaluatedTotal int64   `json:"evaluated_total"`
	MatchesTotal   int64   `json:"matches_total"`
	InvalidTotal   int64   `json:"invalid_total"`
	MatchRate      float64 `json:"match_rate"`
	AvgLatencyUs   float64 `json:"avg_latency_us"`
	LastLatencyUs  int64   `json:"last_latency_us"`
	LastMatchCount int64   `json:"last_match_count"`
}

// GetStats возвращает текущую статистику.
func (m *MatchMetrics) GetStats() Stats {
	return Stats{
		ReverseProspecting: m.prospecting.stats(),
		HotSheet:           m.hotSheet.stats(),
	}
}

func (c *counters) stats() PerspectiveStats {
	runs := c.runsTotal.Load()
	evaluated := c.evaluatedTotal.Load()
	matches := c.matchesTotal.Load()

	var matchRate, avgLatency float64
	if evaluated > 0 {
		matchRate = float64(matches) / float64(evaluated)
	}
	if runs > 0 {
		avgLatency = float64(c.latencyTotalUs.Load()) / float64(runs)
	}

	return PerspectiveStats{
		RunsTotal:      runs,
		EvaluatedTotal: evaluated,
		MatchesTotal:   matches,
		InvalidTotal:   c.invalidTotal.Load(),
		MatchRate:      matchRate,
		AvgLatencyUs:   avgLatency,
		LastLatencyUs:  c.lastLatencyUs.Load(),
		LastMatchCount: c.lastMatchCount.Load(),
	}
}

func (m *MatchMetrics) forPerspective(p Perspective) *counters {
	switch p {
	case PerspectiveReverseProspecting:
		return &m.prospecting
	case PerspectiveHotSheet:
		return &m.hotSheet
	}
	return nil
}
