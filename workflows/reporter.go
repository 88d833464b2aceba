package workflows

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/dcode-github/realty_portal/metrics"
	"github.com/dcode-github/realty_portal/store"
)

// Reporter receives access-control rejections separately from ordinary
// failures so rule misconfigurations can be diagnosed on their own.
type Reporter interface {
	ReportPermission(ctx context.Context, err *store.PermissionError)
}

type LogReporter struct {
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewLogReporter(log *zap.Logger, m *metrics.Metrics) *LogReporter {
	return &LogReporter{log: log, metrics: m}
}

func (r *LogReporter) ReportPermission(_ context.Context, err *store.PermissionError) {
	if r.metrics != nil {
		r.metrics.PermissionErrors.WithLabelValues(err.Operation).Inc()
	}
	r.log.Warn("permission-error",
		zap.String("path", err.Path),
		zap.String("operation", err.Operation),
		zap.Any("requestResourceData", err.Data),
		zap.NamedError("cause", err.Err))
}

// Collector keeps reported errors in memory; the admin diagnostics endpoint
// and tests read from it.
type Collector struct {
	mu     sync.Mutex
	events []store.PermissionError
	next   Reporter
}

// NewCollector keeps up to the most recent 50 events and forwards each one
// to next when it is not nil.
func NewCollector(next Reporter) *Collector {
	return &Collector{next: next}
}

const collectorCapacity = 50

func (c *Collector) ReportPermission(ctx context.Context, err *store.PermissionError) {
	c.mu.Lock()
	c.events = append(c.events, *err)
	if len(c.events) > collectorCapacity {
		c.events = c.events[len(c.events)-collectorCapacity:]
	}
	c.mu.Unlock()
	if c.next != nil {
		c.next.ReportPermission(ctx, err)
	}
}

func (c *Collector) Events() []store.PermissionError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]store.PermissionError(nil), c.events...)
}
