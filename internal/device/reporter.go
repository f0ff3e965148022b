package device

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/five82/devinfo/internal/clock"
	"github.com/five82/devinfo/internal/debounce"
)

// Timing defaults.
const (
	// DefaultDebounce is the quiet period before a resize burst is broadcast.
	DefaultDebounce = debounce.DefaultInterval

	// DefaultInitialDelay lets layout settle before an attached observer
	// receives its first snapshot.
	DefaultInitialDelay = time.Millisecond
)

// ID identifies one registration in the subscriber list.
type ID uuid.UUID

func (id ID) String() string {
	return uuid.UUID(id).String()
}

// Options configure a Reporter.
type Options struct {
	Debounce     time.Duration // zero uses DefaultDebounce
	InitialDelay time.Duration // zero uses DefaultInitialDelay
	Clock        clock.Clock   // nil uses clock.Real
	Logger       *slog.Logger  // nil discards
	UserAgent    string        // default raw UA; empty asks the environment
}

type entry struct {
	id ID
	fn Listener
}

// Reporter owns the subscriber list, the shared resize debouncer and the
// cached user-agent parse for one environment.
//
// Notifications travel on two channels. Changed and Broadcast fan a single
// snapshot out to every registered listener, Changed after the debounce
// quiet period. Deliver and DeliverAfter bypass the list and send to one
// listener only.
type Reporter struct {
	env          Environment
	clock        clock.Clock
	logger       *slog.Logger
	initialDelay time.Duration
	defaultUA    string
	changed      *debounce.Debouncer

	mu           sync.Mutex
	entries      []entry
	removeResize func()
	ua           UserAgent
	uaParsed     bool

	// dispatchMu keeps delivery rounds from interleaving.
	dispatchMu sync.Mutex
}

// New returns a Reporter measuring env.
func New(env Environment, opts Options) *Reporter {
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	delay := opts.InitialDelay
	if delay <= 0 {
		delay = DefaultInitialDelay
	}
	interval := opts.Debounce
	if interval <= 0 {
		interval = DefaultDebounce
	}

	r := &Reporter{
		env:          env,
		clock:        clk,
		logger:       logger,
		initialDelay: delay,
		defaultUA:    opts.UserAgent,
	}
	r.changed = debounce.New(interval, clk, r.Broadcast)
	return r
}

// Snapshot measures the environment now.
func (r *Reporter) Snapshot() Info {
	return Build(r.env, r.userAgent())
}

// UseUserAgent parses raw and caches it for subsequent snapshots. Empty raw
// selects the reporter's default. Parsing the same string again is skipped.
func (r *Reporter) UseUserAgent(raw string) UserAgent {
	if raw == "" {
		raw = r.defaultUserAgent()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.uaParsed && r.ua.Raw == raw {
		return r.ua
	}
	r.ua = ParseUserAgent(raw)
	r.uaParsed = true
	r.logger.Debug("device: parsed user agent",
		"browser", r.ua.Browser,
		"os", r.ua.OS,
		"device", r.ua.Device)
	return r.ua
}

func (r *Reporter) userAgent() UserAgent {
	r.mu.Lock()
	if r.uaParsed {
		ua := r.ua
		r.mu.Unlock()
		return ua
	}
	r.mu.Unlock()
	return r.UseUserAgent("")
}

func (r *Reporter) defaultUserAgent() string {
	if r.defaultUA != "" {
		return r.defaultUA
	}
	return r.env.UserAgent()
}

// Register appends fn to the subscriber list. The first registration starts
// listening for resize events.
func (r *Reporter) Register(fn Listener) ID {
	id := ID(uuid.New())

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 && r.removeResize == nil {
		r.removeResize = r.env.OnResize(r.changed.Trigger)
		r.logger.Debug("device: resize listener attached")
	}
	r.entries = append(r.entries, entry{id: id, fn: fn})
	return id
}

// Unregister removes the entry for id. Unknown ids are ignored and reported
// as false. Removing the last entry stops listening for resize events.
func (r *Reporter) Unregister(id ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return false
	}
	r.entries = append(r.entries[:idx], r.entries[idx+1:]...)
	if len(r.entries) == 0 && r.removeResize != nil {
		r.removeResize()
		r.removeResize = nil
		r.logger.Debug("device: resize listener detached")
	}
	return true
}

// Replace swaps the listener registered under id, keeping its position.
func (r *Reporter) Replace(id ID, fn Listener) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return false
	}
	r.entries[idx].fn = fn
	return true
}

// Len returns the number of registered listeners.
func (r *Reporter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// IDs returns the registered ids in list order.
func (r *Reporter) IDs() []ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]ID, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.id
	}
	return ids
}

// Listening reports whether a resize listener is attached to the environment.
func (r *Reporter) Listening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeResize != nil
}

func (r *Reporter) indexLocked(id ID) int {
	for i, e := range r.entries {
		if e.id == id {
			return i
		}
	}
	return -1
}

// Publish builds one snapshot and hands each listener its own copy, in order.
// Panics raised by a listener propagate to the caller.
func (r *Reporter) Publish(listeners ...Listener) {
	if len(listeners) == 0 {
		return
	}
	r.dispatchMu.Lock()
	defer r.dispatchMu.Unlock()

	info := r.Snapshot()
	for _, fn := range listeners {
		fn(info.Clone())
	}
}

// Broadcast publishes to every registered listener immediately.
func (r *Reporter) Broadcast() {
	r.mu.Lock()
	listeners := make([]Listener, len(r.entries))
	for i, e := range r.entries {
		listeners[i] = e.fn
	}
	r.mu.Unlock()

	r.logger.Debug("device: broadcasting snapshot", "listeners", len(listeners))
	r.Publish(listeners...)
}

// Changed signals that the environment may have changed. Bursts are
// coalesced and only the last call leads to a Broadcast.
func (r *Reporter) Changed() {
	r.changed.Trigger()
}

// Deliver sends a fresh snapshot to fn alone, bypassing the subscriber list.
func (r *Reporter) Deliver(fn Listener) {
	r.Publish(fn)
}

// DeliverAfter schedules Deliver after d. The returned function cancels the
// delivery if it has not started yet.
func (r *Reporter) DeliverAfter(fn Listener, d time.Duration) (cancel func() bool) {
	timer := r.clock.AfterFunc(d, func() {
		r.Publish(fn)
	})
	return timer.Stop
}
