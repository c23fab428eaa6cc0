package reconcile

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/civitas/civitas-reader/internal/catalog"
	"github.com/civitas/civitas-reader/internal/logging"
	"github.com/civitas/civitas-reader/internal/model"
)

// FetchFunc loads the result for a query
type FetchFunc[T any] func(ctx context.Context, q model.Query) (T, error)

// Tag identifies one issued request. Two requests for equal queries still
// carry different tags.
type Tag struct {
	Query model.Query
	ID    uuid.UUID
}

// State is the fetch state owned by one screen
type State[T any] struct {
	Status    model.FetchStatus
	Result    T
	HasResult bool
	Err       model.ErrorKind
	Query     model.Query // query of Result, or of the failed request
}

// Options configures a Reconciler
type Options[T any] struct {
	Name      string                 // used in logs
	Normalize func(T) T              // applied to every successful result
	IsEmpty   func(T) bool           // selects the empty presentation
	Classify  func(error) model.ErrorKind
	Logger    *zap.Logger
}

// Reconciler applies fetch completions to a single screen state. Only the
// completion of the most recent request is applied; everything else is
// discarded.
type Reconciler[T any] struct {
	fetch FetchFunc[T]
	opts  Options[T]

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	state     State[T]
	pending   *Tag
	lastQuery model.Query
	hasLast   bool
	online    bool
	subs      map[uint64]func(Presentation[T])
	nextSub   uint64

	notifyMu sync.Mutex
}

// New creates an idle reconciler. It starts online.
func New[T any](fetch FetchFunc[T], opts Options[T]) *Reconciler[T] {
	if opts.Classify == nil {
		opts.Classify = catalog.KindOf
	}
	opts.Logger = logging.OrNop(opts.Logger)
	if opts.Name != "" {
		opts.Logger = opts.Logger.Named(opts.Name)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Reconciler[T]{
		fetch:  fetch,
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
		state:  State[T]{Status: model.FetchStatusIdle},
		online: true,
		subs:   make(map[uint64]func(Presentation[T])),
	}
}

// ForItems creates a reconciler for item listings. Results are deduped by id
// and an empty list presents as "no items".
func ForItems(name string, fetch FetchFunc[[]model.CatalogItem], logger *zap.Logger) *Reconciler[[]model.CatalogItem] {
	return New(fetch, Options[[]model.CatalogItem]{
		Name:      name,
		Normalize: model.DedupeItems,
		IsEmpty:   func(items []model.CatalogItem) bool { return len(items) == 0 },
		Logger:    logger,
	})
}

// Request issues a fetch for q. While offline nothing is sent and the state
// fails with NetworkUnavailable.
func (r *Reconciler[T]) Request(ctx context.Context, q model.Query) {
	tag, ok := r.Begin(q)
	if !ok {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		result, err := r.run(ctx, q)
		r.Complete(tag, result, err)
	}()
}

// Refresh re-issues the last requested query. It does nothing before the
// first request.
func (r *Reconciler[T]) Refresh(ctx context.Context) {
	r.mu.Lock()
	q, ok := r.lastQuery, r.hasLast
	r.mu.Unlock()
	if ok {
		r.Request(ctx, q)
	}
}

// Begin records a new request for q and returns its tag. It returns false
// when the request is gated by the offline state and must not be sent.
func (r *Reconciler[T]) Begin(q model.Query) (Tag, bool) {
	r.mu.Lock()
	r.lastQuery, r.hasLast = q, true

	if !r.online {
		var zero T
		r.pending = nil
		r.state = State[T]{
			Status: model.FetchStatusFailed,
			Result: zero,
			Err:    model.ErrorKindNetworkUnavailable,
			Query:  q,
		}
		r.mu.Unlock()

		r.opts.Logger.Debug("request gated while offline", logging.QueryFields(q)...)
		r.notify()
		return Tag{}, false
	}

	tag := Tag{Query: q, ID: uuid.New()}
	r.pending = &tag
	switch {
	case r.state.Status == model.FetchStatusIdle:
		r.state.Status = model.FetchStatusLoading
	case r.state.Status.IsSettled():
		r.state.Status = model.FetchStatusRefreshing
	}
	r.mu.Unlock()

	r.opts.Logger.Debug("request issued", append(logging.QueryFields(q), zap.String("request_id", tag.ID.String()))...)
	r.notify()
	return tag, true
}

// Complete applies the outcome of the request identified by tag. It reports
// whether the outcome was applied; completions of superseded requests and
// repeated completions are discarded.
func (r *Reconciler[T]) Complete(tag Tag, result T, err error) bool {
	r.mu.Lock()
	if r.pending == nil || *r.pending != tag {
		r.mu.Unlock()
		r.opts.Logger.Debug("stale completion discarded",
			append(logging.QueryFields(tag.Query), zap.String("request_id", tag.ID.String()))...)
		return false
	}
	r.pending = nil

	if err != nil {
		var zero T
		kind := r.opts.Classify(err)
		r.state = State[T]{
			Status: model.FetchStatusFailed,
			Result: zero,
			Err:    kind,
			Query:  tag.Query,
		}
		r.mu.Unlock()

		fields := append(logging.QueryFields(tag.Query), zap.String("kind", kind.String()), zap.Error(err))
		if kind == model.ErrorKindNetworkUnavailable {
			r.opts.Logger.Info("request failed", fields...)
		} else {
			r.opts.Logger.Warn("request failed", fields...)
		}
		r.notify()
		return true
	}

	if r.opts.Normalize != nil {
		result = r.opts.Normalize(result)
	}
	r.state = State[T]{
		Status:    model.FetchStatusReady,
		Result:    result,
		HasResult: true,
		Err:       model.ErrorKindNone,
		Query:     tag.Query,
	}
	r.mu.Unlock()

	r.notify()
	return true
}

// SetOnline updates connectivity. Regaining connectivity while failed with
// NetworkUnavailable re-fetches the last query once.
func (r *Reconciler[T]) SetOnline(online bool) {
	r.mu.Lock()
	if r.online == online {
		r.mu.Unlock()
		return
	}
	r.online = online
	refetch := online && r.hasLast &&
		r.state.Status == model.FetchStatusFailed &&
		r.state.Err == model.ErrorKindNetworkUnavailable
	q := r.lastQuery
	r.mu.Unlock()

	r.notify()
	if refetch {
		r.opts.Logger.Debug("connectivity restored, re-fetching", logging.QueryFields(q)...)
		r.Request(r.ctx, q)
	}
}

// State returns a copy of the current state
func (r *Reconciler[T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Pending returns the tag of the in-flight request, if any
func (r *Reconciler[T]) Pending() (Tag, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending == nil {
		return Tag{}, false
	}
	return *r.pending, true
}

// LastQuery returns the most recently requested query
func (r *Reconciler[T]) LastQuery() (model.Query, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastQuery, r.hasLast
}

// Online reports the connectivity last passed to SetOnline
func (r *Reconciler[T]) Online() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.online
}

// Presentation returns what the screen should show right now
func (r *Reconciler[T]) Presentation() Presentation[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return present(r.state, r.online, r.opts.IsEmpty)
}

// Subscribe registers fn for presentation changes. fn is called outside the
// state lock but must not issue requests synchronously.
func (r *Reconciler[T]) Subscribe(fn func(Presentation[T])) func() {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

// Wait blocks until requests started by Request have completed
func (r *Reconciler[T]) Wait() {
	r.wg.Wait()
}

// Close cancels automatic re-fetches and drops all subscribers
func (r *Reconciler[T]) Close() {
	r.cancel()
	r.mu.Lock()
	r.subs = make(map[uint64]func(Presentation[T]))
	r.mu.Unlock()
}

func (r *Reconciler[T]) run(ctx context.Context, q model.Query) (result T, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.opts.Logger.Error("fetch panicked", zap.Any("panic", p))
			err = fmt.Errorf("reconcile: fetch panicked: %v", p)
		}
	}()
	return r.fetch(ctx, q)
}

// notify delivers the current presentation. Deliveries are serialized and
// each one reads the state at delivery time, so the last delivery always
// reflects the latest state.
func (r *Reconciler[T]) notify() {
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	r.mu.Lock()
	p := present(r.state, r.online, r.opts.IsEmpty)
	subs := make([]func(Presentation[T]), 0, len(r.subs))
	for _, fn := range r.subs {
		subs = append(subs, fn)
	}
	r.mu.Unlock()

	for _, fn := range subs {
		fn(p)
	}
}
