package router

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zoodb/zoodb/pkg/history"
	"github.com/zoodb/zoodb/pkg/routematch"
)

var (
	// ErrClosed is returned by operations on a Router after Close.
	ErrClosed = errors.New("router: closed")

	// ErrNoTraversal is returned by Back and Forward when the history
	// cannot traverse entries.
	ErrNoTraversal = errors.New("router: history does not support traversal")
)

// Router holds the current path of a mounted application.
// It is safe for concurrent use.
type Router struct {
	cfg     config
	history history.History

	mu          sync.Mutex
	path        string
	closed      bool
	unsubscribe func()
	nextID      int
	observers   map[int]func(Change)
}

// Mount reads the current location from h and starts following its
// back/forward traversal until Close is called.
func Mount(h history.History, opts ...Option) *Router {
	r := &Router{
		cfg:       newConfig(h, opts),
		history:   h,
		observers: make(map[int]func(Change)),
	}

	r.mu.Lock()
	r.unsubscribe = h.OnPopState(r.onPopState)
	r.path = h.Location()
	path := r.path
	r.mu.Unlock()

	r.cfg.logger.Debug("router mounted", "path", path)
	return r
}

// Close releases the history subscription and drops all subscribers.
// It is safe to call more than once.
func (r *Router) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	unsubscribe := r.unsubscribe
	r.unsubscribe = nil
	r.observers = nil
	r.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	r.cfg.logger.Debug("router closed")
}

// Path returns the current path.
func (r *Router) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}

// Navigate changes the current path to to. See NavigateContext.
func (r *Router) Navigate(to string, opts ...NavigateOption) error {
	return r.NavigateContext(context.Background(), to, opts...)
}

// NavigateContext pushes to onto the history, or replaces the current entry
// with WithReplace, scrolls to the top unless WithoutScrollTop is given, and
// sets the current path to exactly to.
func (r *Router) NavigateContext(ctx context.Context, to string, opts ...NavigateOption) error {
	options := defaultNavigateOptions()
	for _, opt := range opts {
		opt(&options)
	}

	_, span := r.cfg.tracer.Start(ctx, "router.navigate", trace.WithAttributes(
		attribute.String("router.to", to),
		attribute.Bool("router.replace", options.Replace),
	))
	defer span.End()

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		span.SetStatus(codes.Error, ErrClosed.Error())
		return ErrClosed
	}

	cause := CauseNavigate
	if options.Replace {
		cause = CauseReplace
		r.history.Replace(to)
	} else {
		r.history.Push(to)
	}
	if options.ScrollTop && r.cfg.scroller != nil {
		r.cfg.scroller.ScrollTo(0, 0)
	}

	change := Change{From: r.path, To: to, Cause: cause}
	r.path = to
	observers := r.snapshotObservers()
	r.mu.Unlock()

	span.SetAttributes(attribute.String("router.from", change.From))
	r.cfg.logger.Debug("navigate", "from", change.From, "to", to, "cause", cause.String())
	notify(observers, change)
	return nil
}

// Back moves one entry back in the history.
func (r *Router) Back() error {
	return r.traverse(-1)
}

// Forward moves one entry forward in the history.
func (r *Router) Forward() error {
	return r.traverse(1)
}

func (r *Router) traverse(delta int) error {
	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return ErrClosed
	}
	t, ok := r.history.(history.Traverser)
	if !ok {
		return ErrNoTraversal
	}
	t.Go(delta)
	return nil
}

// Match matches pattern against the current path.
func (r *Router) Match(pattern string) (routematch.Params, bool, error) {
	return routematch.Match(pattern, r.Path())
}

// Resolve finds the first route in t matching the current path.
func (r *Router) Resolve(t *Table) (Resolution, bool, error) {
	return t.Resolve(r.Path())
}

// Subscribe registers fn to be called after every change of the current
// path. fn runs on the goroutine that caused the change. The returned
// function removes the registration.
func (r *Router) Subscribe(fn func(Change)) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return func() {}
	}
	id := r.nextID
	r.nextID++
	r.observers[id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.observers != nil {
			delete(r.observers, id)
		}
	}
}

// onPopState re-reads the location rather than trusting the callback
// argument, so the state always equals what the history reports.
func (r *Router) onPopState(string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	change := Change{From: r.path, To: r.history.Location(), Cause: CausePopState}
	r.path = change.To
	observers := r.snapshotObservers()
	r.mu.Unlock()

	r.cfg.logger.Debug("popstate", "from", change.From, "to", change.To)
	notify(observers, change)
}

// snapshotObservers must be called with r.mu held.
func (r *Router) snapshotObservers() []func(Change) {
	if len(r.observers) == 0 {
		return nil
	}
	out := make([]func(Change), 0, len(r.observers))
	for _, fn := range r.observers {
		out = append(out, fn)
	}
	return out
}

func notify(observers []func(Change), change Change) {
	for _, fn := range observers {
		fn(change)
	}
}
