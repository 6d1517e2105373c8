// Package source loads recorded timelines from their storage formats and
// validates them against the contract the playback core relies on: a
// uniform player count per sample and every coordinate normalized to
// [0,1]. The transport controller performs no validation of its own.
package source

import (
	"errors"
	"fmt"

	"github.com/matchview/replay/pkg/core"
)

// Source produces a validated timeline for one playback session.
type Source interface {
	Load() (core.Timeline, error)
}

// ErrNoSamples is returned when a recording contains no samples.
var ErrNoSamples = errors.New("recording contains no samples")

// Validated wraps a source so the loaded timeline is checked against the
// playback contract before it is returned. players is the configured
// player count; 0 accepts whatever uniform count the recording carries.
func Validated(inner Source, players int) Source {
	return &validated{inner: inner, players: players}
}

type validated struct {
	inner   Source
	players int
}

func (v *validated) Load() (core.Timeline, error) {
	t, err := v.inner.Load()
	if err != nil {
		return nil, err
	}
	if err := Validate(t, v.players); err != nil {
		return nil, fmt.Errorf("invalid recording: %w", err)
	}
	return t, nil
}

// Validate checks the timeline contract. Loaders call it before handing
// a timeline to the playback session.
func Validate(t core.Timeline, players int) error {
	if t.Empty() {
		return ErrNoSamples
	}

	want := players
	if want <= 0 {
		want = len(t[0].Players)
	}
	for i, s := range t {
		if len(s.Players) != want {
			return fmt.Errorf("sample %d has %d players, expected %d", i, len(s.Players), want)
		}
		if !inUnit(s.Ball.X) || !inUnit(s.Ball.Y) || !inUnit(s.Ball.Z) {
			return fmt.Errorf("sample %d ball position out of bounds: (%g, %g, %g)",
				i, s.Ball.X, s.Ball.Y, s.Ball.Z)
		}
		for j, p := range s.Players {
			if !inUnit(p.X) || !inUnit(p.Y) {
				return fmt.Errorf("sample %d player %d position out of bounds: (%g, %g)",
					i, j, p.X, p.Y)
			}
		}
	}
	return nil
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
