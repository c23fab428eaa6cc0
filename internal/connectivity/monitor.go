package connectivity

import (
	"context"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2/data/binding"
	"go.uber.org/zap"

	"github.com/civitas/civitas-reader/internal/logging"
)

// Source reports host reachability. Watch emits the current value and then
// every change until ctx is done, at which point the channel is closed.
type Source interface {
	Watch(ctx context.Context) (<-chan bool, error)
}

// Monitor publishes reachability changes to subscribers
type Monitor struct {
	source Source
	logger *zap.Logger
	online atomic.Bool

	mu     sync.Mutex
	subs   map[uint64]func(bool)
	nextID uint64
}

// NewMonitor creates a monitor reading from source. The monitor reports
// online until the source says otherwise.
func NewMonitor(source Source, logger *zap.Logger) *Monitor {
	m := &Monitor{
		source: source,
		logger: logging.OrNop(logger),
		subs:   make(map[uint64]func(bool)),
	}
	m.online.Store(true)
	return m
}

// Online returns the last known reachability
func (m *Monitor) Online() bool {
	return m.online.Load()
}

// Subscribe registers fn for every change. Changes are delivered in order
// from the monitor goroutine. The returned function unsubscribes.
func (m *Monitor) Subscribe(fn func(online bool)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Start watches the source until ctx is done. When the source is missing or
// fails to start, the monitor stays online.
func (m *Monitor) Start(ctx context.Context) {
	if m.source == nil {
		m.logger.Warn("no connectivity source, assuming online")
		return
	}
	changes, err := m.source.Watch(ctx)
	if err != nil {
		m.logger.Warn("connectivity source failed, assuming online", zap.Error(err))
		return
	}

	go func() {
		for online := range changes {
			m.publish(online)
		}
		m.logger.Debug("connectivity watch stopped")
	}()
}

// Bind mirrors the online flag into a Fyne binding. The returned function
// stops mirroring.
func (m *Monitor) Bind(b binding.Bool) func() {
	_ = b.Set(m.Online())
	return m.Subscribe(func(online bool) {
		_ = b.Set(online)
	})
}

func (m *Monitor) publish(online bool) {
	if m.online.Swap(online) == online {
		return
	}
	m.logger.Info("connectivity changed", zap.Bool("online", online))

	m.mu.Lock()
	subs := make([]func(bool), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(online)
	}
}
