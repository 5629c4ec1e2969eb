// Package deeplink resolves notification payloads into navigable event
// targets. A payload carries only an event id; the resolver fetches the full
// event and hands it to a navigation dispatch, or surfaces the failure and
// returns to idle.
package deeplink

import (
	"context"
	"sync"

	"github.com/gatherhub/api/internal/model"
)

// State is the resolver lifecycle state
type State int

const (
	// Idle means no payload is being resolved.
	Idle State = iota
	// PendingResolve means a payload arrived and its event is being fetched.
	PendingResolve
	// Resolved means the latest payload produced a navigation.
	Resolved
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PendingResolve:
		return "pending_resolve"
	case Resolved:
		return "resolved"
	}
	return "unknown"
}

// Payload is the minimal notification content: a target event id.
type Payload struct {
	EventID string
}

// Navigation is the resolved outcome handed to the dispatch func.
type Navigation struct {
	Event *model.Event
}

// EventFetcher loads the event a payload points at.
type EventFetcher interface {
	GetEvent(ctx context.Context, eventID string) (*model.Event, error)
}

// Resolver turns payloads into navigations. Deliveries may overlap; only the
// newest one wins. A completion belonging to a superseded delivery is
// discarded without dispatching or surfacing anything.
type Resolver struct {
	fetcher   EventFetcher
	dispatch  func(Navigation)
	onFailure func(Payload, error)

	mu    sync.Mutex
	state State
	seq   uint64
}

// NewResolver creates a resolver. dispatch receives successful navigations;
// onFailure receives abandoned payloads with their cause. Either callback may
// be nil.
func NewResolver(fetcher EventFetcher, dispatch func(Navigation), onFailure func(Payload, error)) *Resolver {
	return &Resolver{
		fetcher:   fetcher,
		dispatch:  dispatch,
		onFailure: onFailure,
		state:     Idle,
	}
}

// State returns the current lifecycle state.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Deliver resolves a payload. It blocks for the fetch, so callers that need
// fire-and-forget run it in a goroutine; overlapping calls are safe and the
// last delivered payload determines the final state.
func (r *Resolver) Deliver(ctx context.Context, p Payload) {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.state = PendingResolve
	r.mu.Unlock()

	event, err := r.fetcher.GetEvent(ctx, p.EventID)

	r.mu.Lock()
	if seq != r.seq {
		// A newer payload arrived while this one was in flight.
		r.mu.Unlock()
		return
	}

	if err != nil {
		r.state = Idle
		r.mu.Unlock()
		if r.onFailure != nil {
			r.onFailure(p, err)
		}
		return
	}

	r.state = Resolved
	r.mu.Unlock()

	if r.dispatch != nil {
		r.dispatch(Navigation{Event: event})
	}
}

// Reset returns the resolver to Idle, e.g. after the navigation completed.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = Idle
}
