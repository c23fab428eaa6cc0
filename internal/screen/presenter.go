package screen

import (
	"context"
	"sync"

	"github.com/civitas/civitas-reader/internal/reconcile"
)

// Connectivity is the read side of the connectivity monitor
type Connectivity interface {
	Online() bool
	Subscribe(fn func(online bool)) func()
}

// presenter is the part shared by all list presenters
type presenter[T any] struct {
	rec *reconcile.Reconciler[T]

	closeOnce   sync.Once
	unsubscribe func()
}

func (p *presenter[T]) attach(rec *reconcile.Reconciler[T], conn Connectivity) {
	p.rec = rec
	p.unsubscribe = func() {}
	if conn != nil {
		// Subscribe first, then seed until the seeded value is still
		// current. SetOnline ignores a repeated value.
		p.unsubscribe = conn.Subscribe(rec.SetOnline)
		for {
			online := conn.Online()
			rec.SetOnline(online)
			if conn.Online() == online {
				break
			}
		}
	}
}

// Subscribe registers fn for presentation changes
func (p *presenter[T]) Subscribe(fn func(reconcile.Presentation[T])) func() {
	return p.rec.Subscribe(fn)
}

// Presentation returns what the screen shows right now
func (p *presenter[T]) Presentation() reconcile.Presentation[T] {
	return p.rec.Presentation()
}

// State returns the current fetch state
func (p *presenter[T]) State() reconcile.State[T] {
	return p.rec.State()
}

// Refresh re-issues the last query
func (p *presenter[T]) Refresh(ctx context.Context) {
	p.rec.Refresh(ctx)
}

// Wait blocks until in-flight requests complete
func (p *presenter[T]) Wait() {
	p.rec.Wait()
}

// Close stops following connectivity and drops subscribers
func (p *presenter[T]) Close() {
	p.closeOnce.Do(func() {
		p.unsubscribe()
		p.rec.Close()
	})
}
