package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/matchview/replay/internal/config"
	"github.com/matchview/replay/internal/influx"
	"github.com/matchview/replay/internal/render"
	"github.com/matchview/replay/internal/session"
	"github.com/matchview/replay/internal/source"
	"github.com/matchview/replay/internal/transport"
	"github.com/matchview/replay/pkg/core"
)

func transportConfig(pb config.PlaybackConfig) transport.Config {
	return transport.Config{
		SampleRate:    pb.SampleRate,
		FastForward:   pb.FastForward,
		Rewind:        pb.Rewind,
		HoldThreshold: pb.HoldThreshold.Seconds(),
	}
}

// loadTimeline loads the configured source. A load failure is not fatal:
// the session starts empty and renders its no-data state.
func loadTimeline(log zerolog.Logger) core.Timeline {
	srcCfg := config.GetSourceConfig()
	src, err := source.NewSource(srcCfg, config.GetPlaybackConfig().PlayerCount, log)
	if err != nil {
		log.Warn().Err(err).Str("type", srcCfg.Type).Msg("Source unavailable, starting without data")
		return nil
	}

	timeline, err := src.Load()
	if err != nil {
		log.Warn().Err(err).Str("type", srcCfg.Type).Str("path", srcCfg.Path).
			Msg("Recording failed to load, starting without data")
		return nil
	}

	log.Info().Int("samples", timeline.Len()).
		Float64("duration", timeline.Duration()).Msg("Recording loaded")
	return timeline
}

// setupTelemetry connects the optional InfluxDB sink. Returns nil when
// telemetry is disabled.
func setupTelemetry(log zerolog.Logger) *influx.Manager {
	if !config.GetBool("influx.enabled") {
		return nil
	}

	backupPath := filepath.Join(config.GetString("logsDir"), "telemetry.lp.gz")
	mgr := influx.NewManager(log, backupPath)
	if err := mgr.Connect(); err != nil {
		log.Warn().Err(err).Msg("Telemetry unavailable, continuing without it")
		return nil
	}
	return mgr
}

func runPlay(log zerolog.Logger) error {
	pb := config.GetPlaybackConfig()
	s, err := session.New(loadTimeline(log), transportConfig(pb), log)
	if err != nil {
		return err
	}

	renderer := render.New(config.GetDisplayConfig())
	telemetry := setupTelemetry(log)
	if telemetry != nil {
		defer telemetry.Close()
	}

	quit := make(chan struct{})
	go readInput(s, log, quit)

	interval := time.Duration(float64(time.Second) / pb.SampleRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	name := recordingName()
	last := time.Now()
	lastLabel := ""
	for {
		select {
		case <-quit:
			log.Info().Msg("Playback session ended")
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			tickStart := time.Now()
			s.Tick(dt)
			if err := renderFrame(renderer, s); err != nil {
				return err
			}

			if telemetry != nil {
				ctx := context.Background()
				point := influx.TickPoint(name, dt, time.Since(tickStart))
				if err := telemetry.WritePoint(ctx, influx.BucketPerformance, point); err != nil {
					log.Debug().Err(err).Msg("Tick telemetry dropped")
				}
				if info := s.Info(); info.Label != lastLabel {
					lastLabel = info.Label
					point := influx.PlaybackPoint(name, info)
					if err := telemetry.WritePoint(ctx, influx.BucketPlayback, point); err != nil {
						log.Debug().Err(err).Msg("State telemetry dropped")
					}
				}
			}
		}
	}
}

func renderFrame(renderer *render.Renderer, s *session.Session) error {
	if frame, ok := s.Frame(); ok {
		return renderer.Render(os.Stdout, frame, s.Info())
	}
	return renderer.RenderNoData(os.Stdout, s.Info())
}

// readInput turns stdin lines into transport commands. EOF or "q" ends
// the session.
func readInput(s *session.Session, log zerolog.Logger, quit chan struct{}) {
	defer close(quit)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "q" {
			return
		}

		names, ok := commandsFor(line)
		if !ok {
			log.Warn().Str("input", line).Msg("Unknown input")
			continue
		}
		for _, name := range names {
			if err := s.Enqueue(name); err != nil {
				log.Warn().Err(err).Msg("Command rejected")
			}
		}
	}
}

func commandsFor(line string) ([]string, bool) {
	switch line {
	case "p":
		return []string{session.CmdPlayPause}, true
	case "r":
		return []string{session.CmdRestart}, true
	case ">":
		return []string{session.CmdStepForward}, true
	case "<":
		return []string{session.CmdStepBackward}, true
	case ">>":
		return []string{session.CmdHoldRight}, true
	case "<<":
		return []string{session.CmdHoldLeft}, true
	case ".":
		// Releases both sides so a buffered opposite press can escalate.
		return []string{session.CmdReleaseLeft, session.CmdReleaseRight}, true
	default:
		return nil, false
	}
}

// runScriptCommand drives a session from a command file with a fixed
// tick, so a scripted run is reproducible. Each line holds either "+N"
// (advance N ticks) or one interactive input token.
func runScriptCommand(log zerolog.Logger, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: matchview script <file>")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	pb := config.GetPlaybackConfig()
	s, err := session.New(loadTimeline(log), transportConfig(pb), log)
	if err != nil {
		return err
	}
	dt := 1 / pb.SampleRate

	lineNo := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "+") {
			n, err := strconv.Atoi(line[1:])
			if err != nil || n < 0 {
				return fmt.Errorf("script line %d: bad tick count %q", lineNo, line)
			}
			for i := 0; i < n; i++ {
				s.Tick(dt)
			}
			continue
		}

		names, ok := commandsFor(line)
		if !ok {
			return fmt.Errorf("script line %d: unknown input %q", lineNo, line)
		}
		for _, name := range names {
			if err := s.Enqueue(name); err != nil {
				return fmt.Errorf("script line %d: %w", lineNo, err)
			}
		}
		s.Tick(dt)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading script: %w", err)
	}

	renderer := render.New(config.GetDisplayConfig())
	if err := renderFrame(renderer, s); err != nil {
		return err
	}

	info := s.Info()
	log.Info().Int("sample", info.CurrentSample).Int("total", info.TotalSamples).
		Str("state", info.State).Msg("Script finished")
	return nil
}
