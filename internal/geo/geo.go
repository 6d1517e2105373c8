// Package geo maps raw tracking coordinates onto the normalized [0,1]
// pitch space the replay engine works in. Raw exports carry WGS84
// longitude/latitude per entity; we project to EPSG:3857 meters and
// normalize against a calibrated pitch rectangle.
package geo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"

	"github.com/matchview/replay/pkg/core"
)

// ErrInvalidCoordinates is returned when a coordinate string cannot be parsed.
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// ErrDegeneratePitch is returned when pitch calibration corners coincide.
var ErrDegeneratePitch = errors.New("degenerate pitch bounds")

// ParsePoint parses a string in the format "x,y" or "x,y,z" into its
// components. The z component defaults to 0.
func ParsePoint(coords string) (x, y, z float64, err error) {
	parts := strings.Split(coords, ",")
	if len(parts) < 2 {
		return 0, 0, 0, ErrInvalidCoordinates
	}
	x, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, 0, ErrInvalidCoordinates
	}
	y, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, 0, ErrInvalidCoordinates
	}
	if len(parts) > 2 {
		z, err = strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return 0, 0, 0, ErrInvalidCoordinates
		}
	}
	return x, y, z, nil
}

// ProjectLonLat projects a WGS84 (EPSG:4326) longitude/latitude onto
// EPSG:3857 meters.
func ProjectLonLat(longitude, latitude float64) (x, y float64) {
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	x, y, _ = f(longitude, latitude, 0)
	return x, y
}

// Pitch is the calibrated playing surface in projected meters. Its axes
// are aligned with the projection axes; rotated recordings must be
// calibrated upstream.
type Pitch struct {
	min, max geom.XY
	boundary geom.LineString
}

// NewPitch builds a pitch from two opposite corners in projected meters.
func NewPitch(minX, minY, maxX, maxY float64) (Pitch, error) {
	if minX >= maxX || minY >= maxY {
		return Pitch{}, ErrDegeneratePitch
	}

	// closed perimeter ring, corner order is significant for Length
	seq := geom.NewSequence([]float64{
		minX, minY,
		maxX, minY,
		maxX, maxY,
		minX, maxY,
		minX, minY,
	}, geom.DimXY)

	boundary, err := geom.NewLineString(seq)
	if err != nil {
		return Pitch{}, fmt.Errorf("building pitch boundary: %w", err)
	}

	return Pitch{
		min:      geom.XY{X: minX, Y: minY},
		max:      geom.XY{X: maxX, Y: maxY},
		boundary: boundary,
	}, nil
}

// NewPitchFromLonLat builds a pitch from two opposite corners given as
// WGS84 longitude/latitude, projecting them first.
func NewPitchFromLonLat(minLon, minLat, maxLon, maxLat float64) (Pitch, error) {
	minX, minY := ProjectLonLat(minLon, minLat)
	maxX, maxY := ProjectLonLat(maxLon, maxLat)
	return NewPitch(minX, minY, maxX, maxY)
}

// Contains reports whether a projected point lies within the pitch.
func (p Pitch) Contains(x, y float64) bool {
	return x >= p.min.X && x <= p.max.X && y >= p.min.Y && y <= p.max.Y
}

// ContainsLonLat projects a WGS84 coordinate and reports whether it lies
// within the pitch.
func (p Pitch) ContainsLonLat(lon, lat float64) bool {
	x, y := ProjectLonLat(lon, lat)
	return p.Contains(x, y)
}

// Perimeter returns the pitch perimeter length in projected meters.
func (p Pitch) Perimeter() float64 {
	return p.boundary.Length()
}

// Normalize maps a projected point into normalized [0,1] pitch space,
// clamping points that fall marginally outside the calibration bounds
// (tracking noise routinely places throw-in takers off the surface).
func (p Pitch) Normalize(x, y float64) core.Position {
	nx := (x - p.min.X) / (p.max.X - p.min.X)
	ny := (y - p.min.Y) / (p.max.Y - p.min.Y)
	return core.Position{X: clamp01(nx), Y: clamp01(ny)}
}

// NormalizeLonLat projects a WGS84 coordinate and normalizes it in one step.
func (p Pitch) NormalizeLonLat(lon, lat float64) core.Position {
	x, y := ProjectLonLat(lon, lat)
	return p.Normalize(x, y)
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
