// Package transport implements the playback state machine: it owns the
// current sample index, the play/pause/scrub mode and the timing
// accumulators, and advances them in response to wall-clock ticks and
// user commands. It performs no I/O and never blocks; the host render
// loop drives it with Update once per tick on a single goroutine.
package transport

import (
	"fmt"

	"github.com/matchview/replay/pkg/core"
)

// Mode is the single playback mode. Scrub modes imply a paused persisted
// state, so the four values cover every reachable combination and make
// "playing while rewinding" unrepresentable.
type Mode uint8

const (
	Paused Mode = iota
	Playing
	FastForwarding
	Rewinding
)

// String returns the display label for the mode.
func (m Mode) String() string {
	switch m {
	case Playing:
		return "PLAYING"
	case FastForwarding:
		return "FAST FORWARD"
	case Rewinding:
		return "REWIND"
	default:
		return "PAUSED"
	}
}

// Persisted collapses scrub modes to the persisted play/pause state.
func (m Mode) Persisted() Mode {
	if m == Playing {
		return Playing
	}
	return Paused
}

// Scrubbing returns true for the transient fast-forward/rewind modes.
func (m Mode) Scrubbing() bool {
	return m == FastForwarding || m == Rewinding
}

// Direction identifies one of the two directional inputs.
type Direction uint8

const (
	Backward Direction = iota // left input, steps/scrubs toward index 0
	Forward                   // right input, steps/scrubs toward the end
)

// Per-input hold lifecycle. A fresh press steps one sample immediately;
// only a press that outlives the hold threshold escalates to a scrub.
type holdState uint8

const (
	holdIdle holdState = iota
	holdPressed
	holdHeld
)

type hold struct {
	state   holdState
	heldFor float64
}

// Config holds the fixed playback timing parameters.
type Config struct {
	// SampleRate is the recording rate in Hz; one sample represents
	// 1/SampleRate seconds of real time.
	SampleRate float64
	// FastForward and Rewind are the rates at which simulated time is
	// consumed relative to wall time while scrubbing. Both must be > 1.
	FastForward float64
	Rewind      float64
	// HoldThreshold is how long a directional input must be held, in
	// seconds, before a single step escalates into a continuous scrub.
	HoldThreshold float64
}

// DefaultConfig matches the reference recording setup: 30 Hz data with
// 5x scrubbing and a 300 ms hold buffer.
func DefaultConfig() Config {
	return Config{
		SampleRate:    30,
		FastForward:   5,
		Rewind:        5,
		HoldThreshold: 0.3,
	}
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %g", c.SampleRate)
	}
	if c.FastForward <= 1 {
		return fmt.Errorf("fast-forward multiplier must be > 1, got %g", c.FastForward)
	}
	if c.Rewind <= 1 {
		return fmt.Errorf("rewind multiplier must be > 1, got %g", c.Rewind)
	}
	if c.HoldThreshold < 0 {
		return fmt.Errorf("hold threshold must not be negative, got %g", c.HoldThreshold)
	}
	return nil
}

// Controller is the transport state machine for one playback session.
// It is the sole owner and mutator of its state; the timeline is
// read-only shared data. Not safe for concurrent use.
type Controller struct {
	timeline       core.Timeline
	cfg            Config
	sampleDuration float64

	index       int
	mode        Mode
	accumulated float64
	progress    float64
	holds       [2]hold

	// resumePlay queues a play/pause toggle received while a scrub is
	// active; it takes effect when the hold is released and is dropped
	// when the scrub is cancelled by a timeline boundary.
	resumePlay bool
}

// New creates a Controller positioned at the first sample, paused.
func New(timeline core.Timeline, cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transport config: %w", err)
	}
	return &Controller{
		timeline:       timeline,
		cfg:            cfg,
		sampleDuration: 1 / cfg.SampleRate,
	}, nil
}

// Update advances the transport by dt wall-clock seconds. Hold timers
// are updated before escalation, and escalation before time-based index
// advancement, so a hold crossing its threshold pre-empts the tick's
// own step under the previous mode.
func (c *Controller) Update(dt float64) {
	if c.timeline.Empty() {
		return
	}

	for d := range c.holds {
		if c.holds[d].state != holdIdle {
			c.holds[d].heldFor += dt
		}
	}

	c.checkEscalation()
	c.advance(dt)

	c.progress = c.accumulated / c.sampleDuration
}

// checkEscalation promotes pressed inputs that have outlived the hold
// threshold into continuous scrubs. Left is evaluated first, so it wins
// when both thresholds are crossed in the same tick; the loser stays
// pressed and escalates once the winning scrub ends.
func (c *Controller) checkEscalation() {
	if c.holds[Backward].state == holdPressed &&
		c.holds[Backward].heldFor >= c.cfg.HoldThreshold &&
		c.mode != FastForwarding {
		c.holds[Backward].state = holdHeld
		c.mode = Rewinding
		c.accumulated = 0
	}

	if c.holds[Forward].state == holdPressed &&
		c.holds[Forward].heldFor >= c.cfg.HoldThreshold &&
		c.mode != Rewinding {
		c.holds[Forward].state = holdHeld
		c.mode = FastForwarding
		c.accumulated = 0
	}
}

// advance consumes dt under whichever mode currently governs and steps
// the index once when a full sample duration has accumulated. Stepping
// past either end clamps and deterministically stops the active mode.
func (c *Controller) advance(dt float64) {
	switch c.mode {
	case FastForwarding:
		c.accumulated += dt * c.cfg.FastForward
		if c.accumulated >= c.sampleDuration {
			c.accumulated = 0
			c.stepOrStop(Forward)
		}
	case Rewinding:
		c.accumulated += dt * c.cfg.Rewind
		if c.accumulated >= c.sampleDuration {
			c.accumulated = 0
			c.stepOrStop(Backward)
		}
	case Playing:
		c.accumulated += dt
		if c.accumulated >= c.sampleDuration {
			c.accumulated = 0
			c.stepOrStop(Forward)
		}
	case Paused:
		// idle: time does not accumulate
	}
}

func (c *Controller) stepOrStop(dir Direction) {
	if dir == Forward && c.index < c.timeline.Len()-1 {
		c.index++
		return
	}
	if dir == Backward && c.index > 0 {
		c.index--
		return
	}
	// Reached a timeline boundary: the sole termination condition for
	// the governing mode besides an explicit hold release.
	c.mode = Paused
	c.resumePlay = false
}

// TogglePlayPause flips the persisted mode. Entering PLAYING resets the
// accumulator so motion starts exactly at the current sample. While a
// scrub is active the toggle is queued and applied when the scrub ends.
func (c *Controller) TogglePlayPause() {
	if c.timeline.Empty() {
		return
	}
	switch c.mode {
	case Playing:
		c.mode = Paused
	case Paused:
		c.mode = Playing
		c.accumulated = 0
		c.progress = 0
	case FastForwarding, Rewinding:
		c.resumePlay = !c.resumePlay
	}
}

// Restart rewinds to the first sample, paused, with all hold and scrub
// state cleared.
func (c *Controller) Restart() {
	c.index = 0
	c.mode = Paused
	c.accumulated = 0
	c.progress = 0
	c.resumePlay = false
	c.holds = [2]hold{}
}

// StepForward moves one sample toward the end and pauses. No-op at the
// last sample.
func (c *Controller) StepForward() {
	if c.timeline.Empty() || c.index >= c.timeline.Len()-1 {
		return
	}
	c.index++
	c.pauseAfterStep()
}

// StepBackward moves one sample toward the start and pauses. No-op at
// the first sample.
func (c *Controller) StepBackward() {
	if c.timeline.Empty() || c.index <= 0 {
		return
	}
	c.index--
	c.pauseAfterStep()
}

func (c *Controller) pauseAfterStep() {
	c.mode = Paused
	c.resumePlay = false
	c.accumulated = 0
	c.progress = 0
}

// BeginHold marks a directional input as pressed and performs the
// immediate single step, so a tap always moves exactly one sample even
// if released before the hold threshold. Any opposite-direction scrub
// is cancelled and playback is paused.
func (c *Controller) BeginHold(dir Direction) {
	if c.timeline.Empty() {
		return
	}

	c.holds[dir] = hold{state: holdPressed}

	if dir == Backward && c.mode == FastForwarding {
		c.mode = Paused
	}
	if dir == Forward && c.mode == Rewinding {
		c.mode = Paused
	}
	if c.mode == Playing {
		c.mode = Paused
	}
	c.resumePlay = false
	c.accumulated = 0
	c.progress = 0

	if dir == Backward {
		c.StepBackward()
	} else {
		c.StepForward()
	}
}

// EndHold clears a directional input and cancels its scrub mode if one
// was active. A queued play/pause toggle takes effect here.
func (c *Controller) EndHold(dir Direction) {
	c.holds[dir] = hold{}

	scrub := FastForwarding
	if dir == Backward {
		scrub = Rewinding
	}
	if c.mode != scrub {
		return
	}
	if c.resumePlay {
		c.mode = Playing
		c.resumePlay = false
		c.accumulated = 0
		c.progress = 0
		return
	}
	c.mode = Paused
}

// CurrentSample returns the sample at the current index, or false for an
// empty timeline.
func (c *Controller) CurrentSample() (core.Sample, bool) {
	if c.timeline.Empty() {
		return core.Sample{}, false
	}
	return c.timeline.At(c.index), true
}

// LookaheadSample returns the next sample for interpolation. It exists
// only during normal forward playback: scrubbing and paused states never
// interpolate.
func (c *Controller) LookaheadSample() (core.Sample, bool) {
	if c.mode != Playing || c.index >= c.timeline.Len()-1 {
		return core.Sample{}, false
	}
	return c.timeline.At(c.index + 1), true
}

// Index returns the current sample index. Meaningless for an empty
// timeline.
func (c *Controller) Index() int {
	return c.index
}

// Mode returns the governing mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Progress returns the fractional progress through the current sample
// interval, in [0,1).
func (c *Controller) Progress() float64 {
	return c.progress
}

// Info is the read-only playback snapshot exposed to status displays.
type Info struct {
	CurrentSample  int // 1-based
	TotalSamples   int
	Time           float64
	State          string // persisted mode label
	Label          string // mode label accounting for an active scrub
	FastForwarding bool
	Rewinding      bool
	FastForward    float64
	Rewind         float64
}

// Info returns the current playback snapshot.
func (c *Controller) Info() Info {
	if c.timeline.Empty() {
		return Info{State: "NO DATA", Label: "NO DATA"}
	}

	info := Info{
		CurrentSample:  c.index + 1,
		TotalSamples:   c.timeline.Len(),
		Time:           c.timeline.At(c.index).Time,
		State:          c.mode.Persisted().String(),
		Label:          c.mode.String(),
		FastForwarding: c.mode == FastForwarding,
		Rewinding:      c.mode == Rewinding,
		FastForward:    c.cfg.FastForward,
		Rewind:         c.cfg.Rewind,
	}
	switch c.mode {
	case FastForwarding:
		info.Label = fmt.Sprintf("FAST FORWARD %gx", c.cfg.FastForward)
	case Rewinding:
		info.Label = fmt.Sprintf("REWIND %gx", c.cfg.Rewind)
	}
	return info
}
