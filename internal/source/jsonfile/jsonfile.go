// Package jsonfile loads timelines from the JSON recording format:
// an array of samples, each with a time, a ball coordinate array and a
// player coordinate array. Files ending in .gz are transparently
// decompressed.
package jsonfile

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matchview/replay/pkg/core"
)

// rawSample mirrors one element of the recording array. Legacy
// recordings carry 2-element ball coordinates without a height.
type rawSample struct {
	Time    float64     `json:"time"`
	Ball    []float64   `json:"ball"`
	Players [][]float64 `json:"players"`
}

// Loader reads one JSON recording file.
type Loader struct {
	path string
}

// New creates a loader for the given recording file.
func New(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and decodes the recording into a timeline.
func (l *Loader) Load() (core.Timeline, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("opening recording: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(l.path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening gzip recording: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	timeline, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding recording %s: %w", l.path, err)
	}
	return timeline, nil
}

// Decode reads one JSON recording from r. Used directly by sources that
// stream the recording from somewhere other than a local file.
func Decode(r io.Reader) (core.Timeline, error) {
	var raw []rawSample
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}

	timeline := make(core.Timeline, 0, len(raw))
	for i, rs := range raw {
		sample, err := rs.toSample()
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		timeline = append(timeline, sample)
	}
	return timeline, nil
}

func (rs rawSample) toSample() (core.Sample, error) {
	var ball core.BallPosition
	switch len(rs.Ball) {
	case 3:
		ball = core.BallPosition{X: rs.Ball[0], Y: rs.Ball[1], Z: rs.Ball[2]}
	case 2:
		// legacy format: no height channel, assume ground level
		ball = core.BallPosition{X: rs.Ball[0], Y: rs.Ball[1]}
	default:
		return core.Sample{}, fmt.Errorf("ball has %d coordinates, expected 2 or 3", len(rs.Ball))
	}

	players := make([]core.Position, len(rs.Players))
	for i, p := range rs.Players {
		if len(p) != 2 {
			return core.Sample{}, fmt.Errorf("player %d has %d coordinates, expected 2", i, len(p))
		}
		players[i] = core.Position{X: p[0], Y: p[1]}
	}

	return core.Sample{Time: rs.Time, Ball: ball, Players: players}, nil
}
