// Package sim runs the physics loop of the simulation.
//
// A World owns its vehicles. Once Run starts, the physics goroutine is the
// only code that touches them: control changes and spawns are queued and
// applied at the start of the next tick, and readers get immutable Frames
// published after each batch of ticks.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/unklstewy/shipcommand/internal/logging"
	"github.com/unklstewy/shipcommand/pkg/config"
	"github.com/unklstewy/shipcommand/pkg/kinematics"
	"github.com/unklstewy/shipcommand/pkg/magnitudes"
)

var (
	// ErrUnknownVehicle is returned for an id that is not in the world.
	ErrUnknownVehicle = errors.New("sim: unknown vehicle")

	// ErrNotSteerable is returned by SetControls for a participant that
	// takes no control input.
	ErrNotSteerable = errors.New("sim: participant cannot be steered")
)

// maxCatchUp bounds the physics steps run for a single wake-up. A loop that
// falls further behind drops the remaining time instead of spiralling.
const maxCatchUp = 10

// Participant is anything the world advances each tick and publishes in
// its frames.
type Participant interface {
	kinematics.Stepper
	kinematics.Observer
}

// Steerable is a participant that accepts control input.
type Steerable interface {
	Participant
	Apply(in kinematics.ControlInput)
}

var _ Steerable = (*kinematics.Vehicle)(nil)

type entry struct {
	id   string
	name string
	body Participant
}

// World is the set of simulated vehicles and the loop that advances them.
type World struct {
	log            *logging.Logger
	step           time.Duration
	renderInterval time.Duration

	// Owned by the physics goroutine
	vehicles []entry
	ticks    uint64

	// Cross-goroutine state
	frame    atomic.Pointer[Frame]
	paused   atomic.Bool
	stepRate atomic.Uint64 // math.Float64bits of steps per second

	mu      sync.Mutex
	pending []func()
	ids     map[string]Participant
	subs    map[chan *Frame]*rate.Limiter
	closed  bool
}

// NewWorld creates an empty world stepping at cfg.PhysicsRateHz and feeding
// subscribers at cfg.RenderRateHz.
func NewWorld(cfg config.SimulationConfig, log *logging.Logger) *World {
	if cfg.PhysicsRateHz <= 0 {
		cfg.PhysicsRateHz = 60
	}
	if cfg.RenderRateHz <= 0 {
		cfg.RenderRateHz = 20
	}
	w := &World{
		log:            log,
		step:           cfg.PhysicsStep(),
		renderInterval: cfg.RenderInterval(),
		ids:            make(map[string]Participant),
		subs:           make(map[chan *Frame]*rate.Limiter),
	}
	w.paused.Store(cfg.StartPaused)
	w.publish()
	return w
}

// Add queues p for insertion and returns its id. The participant appears in
// the first frame published after the next tick boundary. Frames list
// participants ordered by name.
func (w *World) Add(p Participant) string {
	id := uuid.NewString()
	name := p.Snapshot().Name

	w.mu.Lock()
	w.ids[id] = p
	w.pending = append(w.pending, func() {
		w.vehicles = append(w.vehicles, entry{id: id, name: name, body: p})
		sort.SliceStable(w.vehicles, func(i, j int) bool {
			return w.vehicles[i].name < w.vehicles[j].name
		})
	})
	w.mu.Unlock()

	return id
}

// Remove queues the removal of the vehicle with id.
func (w *World) Remove(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.ids[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVehicle, id)
	}
	delete(w.ids, id)
	w.pending = append(w.pending, func() {
		for i, e := range w.vehicles {
			if e.id == id {
				w.vehicles = append(w.vehicles[:i], w.vehicles[i+1:]...)
				return
			}
		}
	})
	return nil
}

// SetControls queues a control change for the vehicle with id. It takes
// effect at the next tick boundary.
func (w *World) SetControls(id string, in kinematics.ControlInput) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.ids[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVehicle, id)
	}
	s, ok := p.(Steerable)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotSteerable, id)
	}
	w.pending = append(w.pending, func() {
		s.Apply(in)
	})
	return nil
}

// Pause stops physics steps. Queued commands are still applied.
func (w *World) Pause() {
	if !w.paused.Swap(true) {
		w.log.Info(context.Background(), "simulation paused", "tick", w.Snapshot().Tick)
	}
}

// Resume restarts physics steps after Pause.
func (w *World) Resume() {
	if w.paused.Swap(false) {
		w.log.Info(context.Background(), "simulation resumed", "tick", w.Snapshot().Tick)
	}
}

func (w *World) Paused() bool { return w.paused.Load() }

// StepRate is the measured number of physics steps per second over the last
// second of Run.
func (w *World) StepRate() float64 {
	return math.Float64frombits(w.stepRate.Load())
}

// Snapshot returns the most recently published frame.
func (w *World) Snapshot() *Frame {
	return w.frame.Load()
}

// Subscribe returns a channel receiving frames at most at the render rate.
// Slow subscribers miss frames rather than stall the physics loop. The
// channel is closed when ctx is done or Run returns.
func (w *World) Subscribe(ctx context.Context) <-chan *Frame {
	ch := make(chan *Frame, 1)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		close(ch)
		return ch
	}
	w.subs[ch] = rate.NewLimiter(rate.Every(w.renderInterval), 1)
	ch <- w.frame.Load()
	w.mu.Unlock()

	go func() {
		<-ctx.Done()
		w.mu.Lock()
		defer w.mu.Unlock()
		if _, ok := w.subs[ch]; ok {
			delete(w.subs, ch)
			close(ch)
		}
	}()

	return ch
}

// Run advances the world in real time until ctx is done. Physics steps are
// fixed; wall-clock time is accumulated and consumed one step at a time.
// Run must not be called more than once, nor concurrently with Advance.
func (w *World) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.step)
	defer ticker.Stop()

	w.log.Info(ctx, "physics loop started", "step", w.step.String(), "render_interval", w.renderInterval.String())

	last := time.Now()
	var accumulated time.Duration

	windowStart := last
	var windowSteps int

	for {
		select {
		case <-ctx.Done():
			w.shutdown()
			w.log.Info(context.Background(), "physics loop stopped", "tick", w.ticks)
			return nil

		case now := <-ticker.C:
			accumulated += now.Sub(last)
			last = now

			w.applyPending()

			if w.paused.Load() {
				accumulated = 0
			}

			steps := 0
			for accumulated >= w.step && steps < maxCatchUp {
				w.tick()
				accumulated -= w.step
				steps++
			}
			if accumulated >= w.step {
				w.log.Warn(ctx, "physics loop falling behind, dropping time", "dropped", accumulated.String())
				accumulated = 0
			}
			windowSteps += steps

			w.publish()

			if window := now.Sub(windowStart); window >= time.Second {
				w.stepRate.Store(math.Float64bits(float64(windowSteps) / window.Seconds()))
				windowStart = now
				windowSteps = 0
			}
		}
	}
}

// Advance applies queued commands and runs n physics steps immediately,
// then publishes a frame. It ignores Pause and is meant for tools and tests
// that drive the world without Run.
func (w *World) Advance(n int) {
	w.applyPending()
	for i := 0; i < n; i++ {
		w.tick()
	}
	w.publish()
}

func (w *World) applyPending() {
	w.mu.Lock()
	pending := w.pending
	w.pending = nil
	w.mu.Unlock()

	for _, apply := range pending {
		apply()
	}
}

func (w *World) tick() {
	dt := w.step.Seconds()
	for _, e := range w.vehicles {
		e.body.Step(dt)
	}
	w.ticks++
}

func (w *World) publish() {
	f := &Frame{
		Tick:     w.ticks,
		Elapsed:  magnitudes.Seconds(float64(w.ticks) * w.step.Seconds()),
		Paused:   w.paused.Load(),
		Vehicles: make([]VehicleState, len(w.vehicles)),
	}
	for i, e := range w.vehicles {
		f.Vehicles[i] = VehicleState{ID: e.id, Snapshot: e.body.Snapshot()}
	}
	w.frame.Store(f)

	w.mu.Lock()
	defer w.mu.Unlock()
	for ch, limiter := range w.subs {
		if !limiter.Allow() {
			continue
		}
		select {
		case ch <- f:
		default:
			// slow subscriber, drop frame
		}
	}
}

func (w *World) shutdown() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	for ch := range w.subs {
		delete(w.subs, ch)
		close(ch)
	}
}
