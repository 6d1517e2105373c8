package interp

import (
	"math"
	"testing"

	"github.com/matchview/replay/pkg/core"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestLerp(t *testing.T) {
	tests := []struct {
		name    string
		a, b, t float64
		want    float64
	}{
		{"start", 0, 1, 0, 0},
		{"end", 0, 1, 1, 1},
		{"midpoint", 0, 1, 0.5, 0.5},
		{"descending", 1, 0, 0.25, 0.75},
		{"identical endpoints", 0.4, 0.4, 0.7, 0.4},
		{"negative range", -1, 1, 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lerp(tt.a, tt.b, tt.t); !approx(got, tt.want) {
				t.Errorf("Lerp(%g, %g, %g) = %g, want %g", tt.a, tt.b, tt.t, got, tt.want)
			}
		})
	}
}

func sampleAt(f float64) core.Sample {
	return core.Sample{
		Time: f,
		Ball: core.BallPosition{X: f, Y: 1 - f, Z: f / 2},
		Players: []core.Position{
			{X: f, Y: 0},
			{X: 0, Y: f},
		},
	}
}

func TestFrameWithoutLookahead(t *testing.T) {
	current := sampleAt(0.25)

	frame := Frame(current, nil, 0.9)

	if frame.Ball != current.Ball {
		t.Errorf("ball = %+v, want current sample's ball verbatim", frame.Ball)
	}
	for i, p := range frame.Players {
		if p != current.Players[i] {
			t.Errorf("player %d = %+v, want %+v verbatim", i, p, current.Players[i])
		}
	}
}

func TestFrameEndpoints(t *testing.T) {
	current := sampleAt(0)
	next := sampleAt(1)

	// progress 0 reproduces the current sample exactly
	frame := Frame(current, &next, 0)
	if frame.Ball != current.Ball {
		t.Errorf("ball at progress 0 = %+v, want %+v", frame.Ball, current.Ball)
	}
	for i, p := range frame.Players {
		if p != current.Players[i] {
			t.Errorf("player %d at progress 0 = %+v, want %+v", i, p, current.Players[i])
		}
	}

	// progress 1 reproduces the next sample exactly for every coordinate
	frame = Frame(current, &next, 1)
	if frame.Ball != next.Ball {
		t.Errorf("ball at progress 1 = %+v, want %+v", frame.Ball, next.Ball)
	}
	for i, p := range frame.Players {
		if p != next.Players[i] {
			t.Errorf("player %d at progress 1 = %+v, want %+v", i, p, next.Players[i])
		}
	}
}

func TestFrameMidpoint(t *testing.T) {
	current := sampleAt(0)
	next := sampleAt(1)

	frame := Frame(current, &next, 0.5)

	if !approx(frame.Ball.X, 0.5) || !approx(frame.Ball.Y, 0.5) || !approx(frame.Ball.Z, 0.25) {
		t.Errorf("ball = %+v, want midpoint (0.5, 0.5, 0.25)", frame.Ball)
	}
	if !approx(frame.Players[0].X, 0.5) || !approx(frame.Players[0].Y, 0) {
		t.Errorf("player 0 = %+v, want (0.5, 0)", frame.Players[0])
	}
	if !approx(frame.Players[1].X, 0) || !approx(frame.Players[1].Y, 0.5) {
		t.Errorf("player 1 = %+v, want (0, 0.5)", frame.Players[1])
	}
}

func TestBallRadius(t *testing.T) {
	tests := []struct {
		name         string
		base, max, z float64
		want         float64
	}{
		{"on the ground", 6, 20, 0, 6},
		{"maximum height", 6, 20, 1, 20},
		{"halfway up", 6, 20, 0.5, 13},
		{"degenerate range", 10, 10, 0.7, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BallRadius(tt.base, tt.max, tt.z); !approx(got, tt.want) {
				t.Errorf("BallRadius(%g, %g, %g) = %g, want %g", tt.base, tt.max, tt.z, got, tt.want)
			}
		})
	}
}
