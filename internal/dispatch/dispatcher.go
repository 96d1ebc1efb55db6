// Package dispatch runs a Model on a single goroutine, feeding it actions from
// a queue and publishing the events it produces.
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/tessro/spot/internal/app"
	"github.com/tessro/spot/internal/core"
	"github.com/tessro/spot/internal/logging"
)

// ErrStopped is returned by Submit after the dispatcher has stopped.
var ErrStopped = errors.New("dispatcher stopped")

// Record is one event produced by the model, with delivery metadata.
type Record struct {
	ID  uuid.UUID
	Seq uint64
	At  time.Time
	// Action is the ActionType of the action that produced the event.
	Action string
	Event  app.Event
	// StateHash fingerprints the state after the action was applied.
	StateHash uint64
	// Track is a copy of the current playlist entry after the action, or nil
	// when the current URI is unset or not in the playlist.
	Track *core.Track
}

// Dispatcher serializes actions onto a Model.
type Dispatcher struct {
	model   *app.Model
	logger  *slog.Logger
	actions chan app.Action
	records chan Record
	done    chan struct{}

	closeOnce sync.Once
	stopOnce  sync.Once
	seq       uint64
	now       func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithBuffer sets the capacity of the action and record queues.
func WithBuffer(n int) Option {
	return func(d *Dispatcher) {
		if n >= 0 {
			d.actions = make(chan app.Action, n)
			d.records = make(chan Record, n)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates a dispatcher for model. Run must be called to start it.
func New(model *app.Model, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		model:   model,
		logger:  logging.Discard(),
		actions: make(chan app.Action, 16),
		records: make(chan Record, 16),
		done:    make(chan struct{}),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Records returns the channel of produced events. It is closed when Run
// returns.
func (d *Dispatcher) Records() <-chan Record {
	return d.records
}

// Submit queues an action. It blocks until the action is accepted, ctx is
// done, or the dispatcher stops. Submit must not be called after Close.
func (d *Dispatcher) Submit(ctx context.Context, action app.Action) error {
	select {
	case <-d.done:
		return ErrStopped
	default:
	}

	select {
	case d.actions <- action:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-d.done:
		return ErrStopped
	}
}

// Close signals that no more actions will be submitted. Run returns after the
// queued actions are applied.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() { close(d.actions) })
}

// Stop makes Run return without draining the queue.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() { close(d.done) })
}

// Run applies actions until Close has been called and the queue is drained,
// Stop is called, or ctx is done. It must be called once.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer close(d.records)

	for {
		select {
		case <-d.done:
			return nil
		default:
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.done:
			return nil
		case action, ok := <-d.actions:
			if !ok {
				return nil
			}
			if err := d.apply(ctx, action); err != nil {
				return err
			}
		}
	}
}

func (d *Dispatcher) apply(ctx context.Context, action app.Action) error {
	if action == nil {
		return nil
	}

	before := d.fingerprint()
	events := d.model.Apply(action)
	after := d.fingerprint()

	var track *core.Track
	if t, ok := d.model.State().CurrentTrack(); ok {
		current := *t
		track = &current
	}

	d.logger.Debug("action applied",
		"action", action.ActionType(),
		"events", len(events),
		"state_changed", before != after,
	)

	for _, e := range events {
		d.seq++
		rec := Record{
			ID:        uuid.New(),
			Seq:       d.seq,
			At:        d.now(),
			Action:    action.ActionType(),
			Event:     e,
			StateHash: after,
			Track:     track,
		}
		select {
		case d.records <- rec:
		case <-ctx.Done():
			return ctx.Err()
		case <-d.done:
			return nil
		}
	}
	return nil
}

// fingerprint hashes the model state. Hash failures yield 0, which only
// affects change logging.
func (d *Dispatcher) fingerprint() uint64 {
	h, err := hashstructure.Hash(d.model.State(), hashstructure.FormatV2, nil)
	if err != nil {
		d.logger.Debug("state hash failed", "error", err)
		return 0
	}
	return h
}
