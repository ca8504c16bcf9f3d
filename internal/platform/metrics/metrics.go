package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   atomic.Uint64
	errorRequests   atomic.Uint64
	rateLimited     atomic.Uint64
	totalDurationMs atomic.Uint64
	calculations    atomic.Uint64
	warnings        atomic.Uint64
	gatewayCalls    atomic.Uint64
	gatewayFailures atomic.Uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.totalRequests.Add(1)
	if status >= 500 {
		c.errorRequests.Add(1)
	}
	if status == 429 {
		c.rateLimited.Add(1)
	}
	c.totalDurationMs.Add(uint64(duration.Milliseconds()))
}

// RecordCalculation counts one salary computation and the warnings it raised.
func (c *Collector) RecordCalculation(warnings int) {
	if c == nil {
		return
	}
	c.calculations.Add(1)
	c.warnings.Add(uint64(warnings))
}

func (c *Collector) RecordGatewayCall(err error) {
	if c == nil {
		return
	}
	c.gatewayCalls.Add(1)
	if err != nil {
		c.gatewayFailures.Add(1)
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := c.totalRequests.Load()
	totalMs := c.totalDurationMs.Load()
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":        total,
		"errorsTotal":          c.errorRequests.Load(),
		"rateLimitedTotal":     c.rateLimited.Load(),
		"avgDurationMs":        avg,
		"totalDurationMs":      totalMs,
		"calculationsTotal":    c.calculations.Load(),
		"warningsTotal":        c.warnings.Load(),
		"gatewayCallsTotal":    c.gatewayCalls.Load(),
		"gatewayFailuresTotal": c.gatewayFailures.Load(),
	}
}
