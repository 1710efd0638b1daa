package experiment

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives one call per finished run.
type MetricsCollector interface {
	// RecordRun is called after each (corpus, hasher) run.
	// items is the number of digests computed, err is nil if successful.
	RecordRun(hasher string, items int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(string, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Failed runs are counted but contribute neither items nor time.
type BasicMetricsCollector struct {
	RunCount   atomic.Int64
	RunErrors  atomic.Int64
	Items      atomic.Int64
	TotalNanos atomic.Int64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(_ string, items int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	b.Items.Add(int64(items))
	b.TotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	stats := BasicMetricsStats{
		RunCount:  b.RunCount.Load(),
		RunErrors: b.RunErrors.Load(),
		Items:     b.Items.Load(),
	}
	if nanos := b.TotalNanos.Load(); nanos > 0 && stats.Items > 0 {
		stats.NanosPerItem = float64(nanos) / float64(stats.Items)
	}
	return stats
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount     int64
	RunErrors    int64
	Items        int64
	NanosPerItem float64
}
