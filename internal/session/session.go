// Package session ties one loaded timeline to its transport controller
// and command plumbing. The host pushes command names from any goroutine;
// the session drains them at the top of each tick, applies them through
// the dispatcher and then advances the transport, so every mutation of
// playback state happens on the tick goroutine.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/matchview/replay/internal/dispatcher"
	"github.com/matchview/replay/internal/interp"
	"github.com/matchview/replay/internal/logging"
	"github.com/matchview/replay/internal/queue"
	"github.com/matchview/replay/internal/transport"
	"github.com/matchview/replay/pkg/core"
)

// Transport command names accepted by Enqueue.
const (
	CmdPlayPause    = "play_pause"
	CmdRestart      = "restart"
	CmdStepForward  = "step_forward"
	CmdStepBackward = "step_backward"
	CmdHoldLeft     = "hold_left"
	CmdHoldRight    = "hold_right"
	CmdReleaseLeft  = "release_left"
	CmdReleaseRight = "release_right"
)

// Session is one playback run over a loaded timeline.
type Session struct {
	timeline   core.Timeline
	transport  *transport.Controller
	commands   *queue.Queue[string]
	dispatcher *dispatcher.Dispatcher
	log        zerolog.Logger

	ticks metric.Int64Counter
}

// New creates a session over the timeline, paused at the first sample.
// An empty timeline is allowed; the session then renders a no-data
// state and ignores commands.
func New(timeline core.Timeline, cfg transport.Config, log zerolog.Logger) (*Session, error) {
	ctrl, err := transport.New(timeline, cfg)
	if err != nil {
		return nil, err
	}

	disp, err := dispatcher.New(logging.NewDispatcherLogger(log))
	if err != nil {
		return nil, fmt.Errorf("creating dispatcher: %w", err)
	}

	s := &Session{
		timeline:   timeline,
		transport:  ctrl,
		commands:   queue.New[string](),
		dispatcher: disp,
		log:        log,
	}

	s.ticks, err = meter().Int64Counter(
		"session.ticks",
		metric.WithDescription("Total playback ticks processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tick counter: %w", err)
	}

	s.registerHandlers()

	log.Info().Int("samples", timeline.Len()).
		Int("players", timeline.PlayersPerSample()).
		Msg("Playback session ready")
	return s, nil
}

func (s *Session) registerHandlers() {
	wrap := func(f func()) dispatcher.HandlerFunc {
		return func(dispatcher.Command) error {
			f()
			return nil
		}
	}

	t := s.transport
	s.dispatcher.Register(CmdPlayPause, wrap(t.TogglePlayPause), dispatcher.Logged())
	s.dispatcher.Register(CmdRestart, wrap(t.Restart), dispatcher.Logged())
	s.dispatcher.Register(CmdStepForward, wrap(t.StepForward))
	s.dispatcher.Register(CmdStepBackward, wrap(t.StepBackward))
	s.dispatcher.Register(CmdHoldLeft, wrap(func() { t.BeginHold(transport.Backward) }))
	s.dispatcher.Register(CmdHoldRight, wrap(func() { t.BeginHold(transport.Forward) }))
	s.dispatcher.Register(CmdReleaseLeft, wrap(func() { t.EndHold(transport.Backward) }))
	s.dispatcher.Register(CmdReleaseRight, wrap(func() { t.EndHold(transport.Forward) }))
}

// Enqueue buffers a command for the next tick. Safe to call from any
// goroutine. Unknown names are rejected here so a typo in an input
// binding surfaces immediately rather than at dispatch time.
func (s *Session) Enqueue(name string) error {
	if !s.dispatcher.HasHandler(name) {
		return fmt.Errorf("unknown command: %s", name)
	}
	s.commands.Push(name)
	return nil
}

// Tick drains the queued commands in arrival order and advances the
// transport by dt seconds. Must be called from a single goroutine.
func (s *Session) Tick(dt float64) {
	for _, name := range s.commands.Drain() {
		cmd := dispatcher.Command{Name: name, Timestamp: time.Now()}
		if err := s.dispatcher.Dispatch(cmd); err != nil {
			s.log.Error().Err(err).Str("command", name).Msg("Command failed")
		}
	}

	s.transport.Update(dt)
	s.ticks.Add(context.Background(), 1)
}

// Frame resolves the positions to present for the current instant.
// Interpolation toward the next sample happens only during normal
// playback; otherwise the current sample is shown verbatim.
func (s *Session) Frame() (interp.RenderFrame, bool) {
	current, ok := s.transport.CurrentSample()
	if !ok {
		return interp.RenderFrame{}, false
	}

	var next *core.Sample
	if lookahead, ok := s.transport.LookaheadSample(); ok {
		next = &lookahead
	}
	return interp.Frame(current, next, s.transport.Progress()), true
}

// Info returns the playback status snapshot.
func (s *Session) Info() transport.Info {
	return s.transport.Info()
}

// Transport exposes the underlying controller for direct host access,
// such as scripted playback that bypasses the command queue.
func (s *Session) Transport() *transport.Controller {
	return s.transport
}
