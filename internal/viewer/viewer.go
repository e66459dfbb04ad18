package viewer

import (
	"context"
	"sync"
	"time"

	"mealview/internal/model"
)

// Fetcher retrieves one random recipe. Each call is one network round trip.
type Fetcher interface {
	FetchRandom(ctx context.Context) (model.Recipe, error)
}

// Event describes one finished fetch cycle.
type Event struct {
	Cycle      uint64
	StartedAt  time.Time
	FinishedAt time.Time
	Recipe     *model.Recipe
	Err        error
	// Discarded is set when the result arrived after teardown and was not applied.
	Discarded bool
}

// Observer is called once per finished cycle, outside the viewer's lock.
type Observer func(Event)

// Option configures a Viewer.
type Option func(*Viewer)

// WithObserver registers o to receive cycle events.
func WithObserver(o Observer) Option {
	return func(v *Viewer) { v.observer = o }
}

// WithClock replaces time.Now for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(v *Viewer) { v.now = now }
}

// Viewer owns the state of one recipe screen and drives its fetch cycles.
//
// All transitions happen under mu. A fetch runs on its own goroutine bound to
// the viewer's context, so Close cancels it and its result is dropped.
type Viewer struct {
	fetcher  Fetcher
	observer Observer
	now      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	state   State
	settled chan struct{} // closed when the current cycle leaves PhaseLoading
	closed  bool
}

// New returns an idle viewer. Call Mount to start the first fetch.
func New(f Fetcher, opts ...Option) *Viewer {
	ctx, cancel := context.WithCancel(context.Background())
	v := &Viewer{
		fetcher: f,
		now:     time.Now,
		ctx:     ctx,
		cancel:  cancel,
		state:   State{Phase: PhaseIdle},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mount moves an idle viewer to loading and starts its first fetch.
// It returns false if the viewer was already mounted or has been closed.
func (v *Viewer) Mount() bool {
	return v.begin(PhaseIdle)
}

// LoadAnother starts a new fetch from the loaded or failed phase.
// While a fetch is in flight it does nothing and returns false.
func (v *Viewer) LoadAnother() bool {
	return v.begin(PhaseLoaded, PhaseFailed)
}

func (v *Viewer) begin(from ...Phase) bool {
	v.mu.Lock()
	if v.closed || !phaseIn(v.state.Phase, from) {
		v.mu.Unlock()
		return false
	}

	cycle := v.state.Cycle + 1
	v.state = State{Phase: PhaseLoading, Cycle: cycle}
	settled := make(chan struct{})
	v.settled = settled
	v.wg.Add(1)
	v.mu.Unlock()

	go v.fetch(cycle, settled)
	return true
}

func (v *Viewer) fetch(cycle uint64, settled chan struct{}) {
	defer v.wg.Done()

	started := v.now()
	recipe, err := v.fetcher.FetchRandom(v.ctx)
	ev := Event{Cycle: cycle, StartedAt: started, FinishedAt: v.now(), Err: err}
	if err == nil {
		ev.Recipe = &recipe
	}

	v.mu.Lock()
	if v.closed || v.state.Cycle != cycle {
		ev.Discarded = true
	} else if err != nil {
		v.state = State{Phase: PhaseFailed, Cycle: cycle}
	} else {
		r := recipe
		v.state = State{Phase: PhaseLoaded, Cycle: cycle, Recipe: &r}
	}
	close(settled)
	v.mu.Unlock()

	if v.observer != nil {
		v.observer(ev)
	}
}

// State returns a snapshot of the current state.
func (v *Viewer) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.clone()
}

// Wait blocks until the current cycle has settled or ctx is done, then
// returns the state at that point.
func (v *Viewer) Wait(ctx context.Context) (State, error) {
	v.mu.Lock()
	if v.state.Phase != PhaseLoading || v.closed {
		s := v.state.clone()
		v.mu.Unlock()
		return s, nil
	}
	settled := v.settled
	v.mu.Unlock()

	select {
	case <-settled:
		return v.State(), nil
	case <-ctx.Done():
		return v.State(), ctx.Err()
	}
}

// Close tears the viewer down. An in-flight fetch is cancelled and its
// result discarded; later Mount and LoadAnother calls are no-ops.
// Close waits for the fetch goroutine to return, so it must not be called
// from an Observer.
func (v *Viewer) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.mu.Unlock()

	v.cancel()
	v.wg.Wait()
}

// Closed reports whether Close has been called.
func (v *Viewer) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

func phaseIn(p Phase, set []Phase) bool {
	for _, s := range set {
		if p == s {
			return true
		}
	}
	return false
}
