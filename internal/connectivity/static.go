package connectivity

import (
	"context"
	"sync"
)

const staticBuffer = 64

// Static is a Source whose value is set by hand
type Static struct {
	mu       sync.Mutex
	value    bool
	watchers map[chan bool]struct{}
}

// NewStatic creates a static source with an initial value
func NewStatic(online bool) *Static {
	return &Static{
		value:    online,
		watchers: make(map[chan bool]struct{}),
	}
}

// Watch implements Source
func (s *Static) Watch(ctx context.Context) (<-chan bool, error) {
	ch := make(chan bool, staticBuffer)

	s.mu.Lock()
	ch <- s.value
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, ch)
		close(ch)
		s.mu.Unlock()
	}()
	return ch, nil
}

// Set changes the value and notifies watchers when it differs
func (s *Static) Set(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value == online {
		return
	}
	s.value = online
	for ch := range s.watchers {
		ch <- online
	}
}
