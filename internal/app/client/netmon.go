package client

import (
	"context"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

const probeInterval = 5 * time.Second

// Prober answers whether the server is currently reachable.
type Prober interface {
	Ping(ctx context.Context) error
}

// Monitor tracks the online/offline flag for the offline facade. The flag is
// set by explicit SetOnline calls (the platform's connectivity signal) and
// re-checked on a fixed poll interval, since explicit events are not reliable
// everywhere. Each offline-to-online transition fires the registered callback
// in its own goroutine.
type Monitor struct {
	prober   Prober
	log      *slog.Logger
	interval time.Duration
	onOnline func()

	mu      sync.RWMutex
	online  bool
	started bool

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewMonitor(prober Prober, onOnline func(), log *slog.Logger) *Monitor {
	return &Monitor{
		prober:   prober,
		log:      log,
		interval: probeInterval,
		onOnline: onOnline,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start primes the flag with an immediate probe and launches the poll loop.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	m.started = true
	m.mu.Unlock()

	m.setOnline(m.probe(ctx))
	go m.loop(ctx)
}

// Stop terminates the poll loop and waits for it to exit. Safe to call more
// than once and without a prior Start.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })

	m.mu.RLock()
	started := m.started
	m.mu.RUnlock()
	if started {
		<-m.done
	}
}

// IsOnline reports the last known connectivity state.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// SetOnline records an explicit connectivity transition. Going from offline
// to online triggers the callback; going offline only flips the flag.
func (m *Monitor) SetOnline(online bool) {
	m.setOnline(online)
}

func (m *Monitor) setOnline(online bool) {
	m.mu.Lock()
	wasOnline := m.online
	m.online = online
	m.mu.Unlock()

	if online && !wasOnline {
		m.log.Debug("connectivity restored")
		if m.onOnline != nil {
			go m.onOnline()
		}
	}
}

func (m *Monitor) probe(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return m.prober.Ping(probeCtx) == nil
}

func (m *Monitor) loop(ctx context.Context) {
	defer close(m.done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.setOnline(m.probe(ctx))
		}
	}
}
