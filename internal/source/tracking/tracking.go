// Package tracking loads raw optical-tracking exports. Positions arrive
// as WGS84 "lon,lat" strings plus a pitch calibration; everything is
// projected and normalized into pitch space on load.
package tracking

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matchview/replay/internal/geo"
	"github.com/matchview/replay/pkg/core"
)

// defaultMaxBallHeight caps the ball height used to normalize the z
// component, in meters.
const defaultMaxBallHeight = 10.0

type rawFile struct {
	Pitch         rawPitch    `json:"pitch"`
	MaxBallHeight float64     `json:"maxBallHeight"`
	Samples       []rawSample `json:"samples"`
}

type rawPitch struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

type rawSample struct {
	Time    float64  `json:"time"`
	Ball    string   `json:"ball"`
	Players []string `json:"players"`
}

// Loader reads a tracking export from a JSON file.
type Loader struct {
	path string
}

// New creates a loader for the given tracking export.
func New(path string) *Loader {
	return &Loader{path: path}
}

// Load parses the export, projects every coordinate and normalizes it
// against the calibrated pitch.
func (l *Loader) Load() (core.Timeline, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("reading tracking export: %w", err)
	}

	var raw rawFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing tracking export: %w", err)
	}

	pitch, err := calibration(raw.Pitch)
	if err != nil {
		return nil, err
	}

	maxHeight := raw.MaxBallHeight
	if maxHeight <= 0 {
		maxHeight = defaultMaxBallHeight
	}

	timeline := make(core.Timeline, 0, len(raw.Samples))
	ballsInside := 0
	for i, rs := range raw.Samples {
		sample, inside, err := convertSample(rs, pitch, maxHeight)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		if inside {
			ballsInside++
		}
		timeline = append(timeline, sample)
	}

	// Individual points off the surface are clamped, but a recording
	// whose ball never enters the pitch was calibrated against the
	// wrong corners.
	if len(timeline) > 0 && ballsInside == 0 {
		return nil, fmt.Errorf("no ball position inside the calibrated pitch (perimeter %.0f m): calibration mismatch",
			pitch.Perimeter())
	}
	return timeline, nil
}

func calibration(p rawPitch) (geo.Pitch, error) {
	minLon, minLat, _, err := geo.ParsePoint(p.Min)
	if err != nil {
		return geo.Pitch{}, fmt.Errorf("pitch min corner: %w", err)
	}
	maxLon, maxLat, _, err := geo.ParsePoint(p.Max)
	if err != nil {
		return geo.Pitch{}, fmt.Errorf("pitch max corner: %w", err)
	}
	pitch, err := geo.NewPitchFromLonLat(minLon, minLat, maxLon, maxLat)
	if err != nil {
		return geo.Pitch{}, fmt.Errorf("pitch calibration: %w", err)
	}
	return pitch, nil
}

func convertSample(rs rawSample, pitch geo.Pitch, maxHeight float64) (core.Sample, bool, error) {
	lon, lat, z, err := geo.ParsePoint(rs.Ball)
	if err != nil {
		return core.Sample{}, false, fmt.Errorf("ball: %w", err)
	}
	inside := pitch.ContainsLonLat(lon, lat)
	ballXY := pitch.NormalizeLonLat(lon, lat)
	ball := core.BallPosition{X: ballXY.X, Y: ballXY.Y, Z: clamp01(z / maxHeight)}

	players := make([]core.Position, 0, len(rs.Players))
	for j, ps := range rs.Players {
		lon, lat, _, err := geo.ParsePoint(ps)
		if err != nil {
			return core.Sample{}, false, fmt.Errorf("player %d: %w", j, err)
		}
		players = append(players, pitch.NormalizeLonLat(lon, lat))
	}

	return core.Sample{Time: rs.Time, Ball: ball, Players: players}, inside, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
