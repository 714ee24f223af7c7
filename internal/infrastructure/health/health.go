// Package health reports the state of the service dependencies.
package health

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Status represents the health status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

const defaultProbeTimeout = 5 * time.Second

// CheckResult represents the result of a health check
type CheckResult struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Response represents a health check response
type Response struct {
	Status     Status                 `json:"status"`
	Version    string                 `json:"version,omitempty"`
	Uptime     string                 `json:"uptime,omitempty"`
	Checks     map[string]CheckResult `json:"checks,omitempty"`
	ReportedAt time.Time              `json:"reported_at"`
}

// ProbeFunc pings one dependency.
type ProbeFunc func(ctx context.Context) error

type probe struct {
	name     string
	fn       ProbeFunc
	critical bool
}

// Checker runs the registered probes. A failing critical probe makes the
// service unhealthy; any other failing probe only degrades it.
type Checker struct {
	mu        sync.RWMutex
	probes    []probe
	startTime time.Time
	version   string
	timeout   time.Duration
}

func NewChecker(version string) *Checker {
	return &Checker{
		startTime: time.Now(),
		version:   version,
		timeout:   defaultProbeTimeout,
	}
}

// Register adds a probe. A nil fn reports the dependency as not configured.
func (c *Checker) Register(name string, critical bool, fn ProbeFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.probes = append(c.probes, probe{name: name, fn: fn, critical: critical})
	sort.Slice(c.probes, func(i, j int) bool { return c.probes[i].name < c.probes[j].name })
}

// Check runs every probe concurrently.
func (c *Checker) Check(ctx context.Context) Response {
	c.mu.RLock()
	probes := append([]probe(nil), c.probes...)
	c.mu.RUnlock()

	results := make([]CheckResult, len(probes))
	var wg sync.WaitGroup
	for i, p := range probes {
		wg.Add(1)
		go func(i int, p probe) {
			defer wg.Done()
			results[i] = c.run(ctx, p)
		}(i, p)
	}
	wg.Wait()

	checks := make(map[string]CheckResult, len(probes))
	for i, p := range probes {
		checks[p.name] = results[i]
	}

	return Response{
		Status:     overallStatus(probes, results),
		Version:    c.version,
		Uptime:     time.Since(c.startTime).Round(time.Second).String(),
		Checks:     checks,
		ReportedAt: time.Now(),
	}
}

func (c *Checker) run(ctx context.Context, p probe) CheckResult {
	failed := StatusDegraded
	if p.critical {
		failed = StatusUnhealthy
	}
	if p.fn == nil {
		return CheckResult{Status: failed, Message: p.name + " not configured"}
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := p.fn(ctx); err != nil {
		return CheckResult{
			Status:  failed,
			Message: err.Error(),
			Latency: time.Since(start).String(),
		}
	}
	return CheckResult{
		Status:  StatusHealthy,
		Latency: time.Since(start).String(),
	}
}

func overallStatus(probes []probe, results []CheckResult) Status {
	status := StatusHealthy
	for i := range probes {
		switch results[i].Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			status = StatusDegraded
		}
	}
	return status
}
