package device

import (
	"context"
	"sync"
)

// State is an observer's lifecycle position.
type State int

const (
	Constructed State = iota
	Attached
	Detached
)

func (s State) String() string {
	switch s {
	case Constructed:
		return "constructed"
	case Attached:
		return "attached"
	case Detached:
		return "detached"
	default:
		return "unknown"
	}
}

// ObserverOptions configure a single observer.
type ObserverOptions struct {
	// UserAgent overrides the reporter's default user-agent string.
	UserAgent string
}

// Observer bridges a UI element's lifecycle onto a Reporter.
type Observer struct {
	r *Reporter

	mu            sync.Mutex
	fn            Listener
	state         State
	headless      bool
	id            ID
	cancelInitial func() bool
}

// NewObserver constructs an observer for fn. Without an interactive display
// the observer is headless: fn receives one snapshot synchronously and the
// observer never attaches.
func (r *Reporter) NewObserver(fn Listener, opts ObserverOptions) *Observer {
	r.UseUserAgent(opts.UserAgent)

	o := &Observer{r: r, fn: fn}
	if _, ok := r.env.Display(); !ok {
		o.headless = true
		r.logger.Debug("device: no display attached, delivering once")
		r.Deliver(fn)
	}
	return o
}

// Attach registers the observer and schedules its initial snapshot after the
// reporter's initial delay. It reports false when the observer is headless or
// not in the Constructed state.
func (o *Observer) Attach() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.headless || o.state != Constructed {
		return false
	}
	o.id = o.r.Register(o.fn)
	o.state = Attached
	o.cancelInitial = o.r.DeliverAfter(o.deliverCurrent, o.r.initialDelay)
	return true
}

// Detach unregisters the observer and cancels its initial snapshot if that
// has not fired yet.
func (o *Observer) Detach() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != Attached {
		return false
	}
	if o.cancelInitial != nil {
		o.cancelInitial()
		o.cancelInitial = nil
	}
	o.r.Unregister(o.id)
	o.state = Detached
	return true
}

// SetListener replaces the observer's callback. An attached observer keeps
// its position in the subscriber list.
func (o *Observer) SetListener(fn Listener) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fn = fn
	if o.state == Attached {
		o.r.Replace(o.id, fn)
	}
}

// State returns the current lifecycle state.
func (o *Observer) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Headless reports whether the observer was built without a display.
func (o *Observer) Headless() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.headless
}

// ID returns the registration id. It is the zero ID until Attach succeeds.
func (o *Observer) ID() ID {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.id
}

// deliverCurrent sends the initial snapshot unless the observer was detached
// after its timer had already fired.
func (o *Observer) deliverCurrent(info Info) {
	o.mu.Lock()
	fn, state := o.fn, o.state
	o.mu.Unlock()
	if state != Attached {
		return
	}
	fn(info)
}

// Subscription is an attached observer that must be closed.
type Subscription struct {
	observer *Observer
	once     sync.Once
}

// Subscribe constructs and attaches an observer in one step. Callers should
// defer Close.
func (r *Reporter) Subscribe(fn Listener, opts ObserverOptions) *Subscription {
	o := r.NewObserver(fn, opts)
	o.Attach()
	return &Subscription{observer: o}
}

// Observer returns the underlying observer.
func (s *Subscription) Observer() *Observer {
	return s.observer
}

// Close detaches the observer. It is safe to call more than once.
func (s *Subscription) Close() error {
	s.once.Do(func() {
		s.observer.Detach()
	})
	return nil
}

// Watch subscribes fn and blocks until ctx is done, then releases the
// subscription and returns ctx.Err().
func (r *Reporter) Watch(ctx context.Context, fn Listener, opts ObserverOptions) error {
	sub := r.Subscribe(fn, opts)
	defer sub.Close()
	<-ctx.Done()
	return ctx.Err()
}
