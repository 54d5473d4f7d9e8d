package health

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Probe is a single named health check. Check returns a short status
// string on success and an error on failure.
type Probe struct {
	Name  string
	Check func(ctx context.Context) (string, error)
}

// Result is the outcome of running one probe
type Result struct {
	Name    string
	Healthy bool
	Status  string
}

// Status is a snapshot of the monitor's state
type Status struct {
	Running   bool
	LastCheck time.Time
	Unhealthy []string
}

// Monitor periodically runs probes against the configured services and
// logs transitions between healthy and unhealthy
type Monitor struct {
	probes []Probe
	logger *slog.Logger

	mu        sync.Mutex
	running   bool
	lastCheck time.Time
	unhealthy map[string]bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewMonitor creates a monitor over the given probes
func NewMonitor(probes []Probe, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		probes:    probes,
		logger:    logger.With("component", "health"),
		unhealthy: make(map[string]bool),
	}
}

// Start launches the periodic check loop. It runs one check immediately,
// then every interval until Stop is called. Starting a running monitor is
// a no-op.
func (m *Monitor) Start(interval time.Duration) {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.running = true
	m.cancel = cancel
	m.done = make(chan struct{})
	m.mu.Unlock()

	m.logger.Info("health monitoring started", "interval", interval.String(), "probes", len(m.probes))

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		m.RunChecks(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.RunChecks(ctx)
			}
		}
	}()
}

// Stop halts the check loop and waits for it to exit
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	cancel := m.cancel
	done := m.done
	m.mu.Unlock()

	cancel()
	<-done
	m.logger.Info("health monitoring stopped")
}

// RunChecks runs every probe once and returns the results. Transitions
// are logged: a probe that newly fails is logged at warn, one that
// recovers at info.
func (m *Monitor) RunChecks(ctx context.Context) []Result {
	results := make([]Result, 0, len(m.probes))
	for _, p := range m.probes {
		status, err := p.Check(ctx)
		r := Result{Name: p.Name, Healthy: err == nil, Status: status}
		if err != nil {
			r.Status = err.Error()
		}
		results = append(results, r)
	}

	m.mu.Lock()
	for _, r := range results {
		was := m.unhealthy[r.Name]
		if !r.Healthy && !was {
			m.unhealthy[r.Name] = true
			m.logger.Warn("service unhealthy", "service", r.Name, "status", r.Status)
		} else if r.Healthy && was {
			delete(m.unhealthy, r.Name)
			m.logger.Info("service recovered", "service", r.Name)
		}
	}
	m.lastCheck = time.Now()
	m.mu.Unlock()

	return results
}

// Status returns a snapshot of the monitor's current state
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.unhealthy))
	for name := range m.unhealthy {
		names = append(names, name)
	}
	sort.Strings(names)

	return Status{
		Running:   m.running,
		LastCheck: m.lastCheck,
		Unhealthy: names,
	}
}
