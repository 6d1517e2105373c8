package geo

import (
	"errors"
	"math"
	"testing"
)

func TestParsePoint_ValidWithHeight(t *testing.T) {
	x, y, z, err := ParsePoint("100.5,200.25,50.0")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if x != 100.5 {
		t.Errorf("expected x=100.5, got %f", x)
	}
	if y != 200.25 {
		t.Errorf("expected y=200.25, got %f", y)
	}
	if z != 50.0 {
		t.Errorf("expected z=50.0, got %f", z)
	}
}

func TestParsePoint_ValidWithoutHeight(t *testing.T) {
	x, y, z, err := ParsePoint("-100.5, -200.25")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if x != -100.5 || y != -200.25 {
		t.Errorf("expected (-100.5, -200.25), got (%f, %f)", x, y)
	}
	if z != 0 {
		t.Errorf("expected z=0, got %f", z)
	}
}

func TestParsePoint_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single component", "100.5"},
		{"non-numeric x", "abc,200"},
		{"non-numeric y", "100,abc"},
		{"non-numeric z", "100,200,abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := ParsePoint(tt.input)
			if !errors.Is(err, ErrInvalidCoordinates) {
				t.Errorf("expected ErrInvalidCoordinates, got %v", err)
			}
		})
	}
}

func TestProjectLonLat_Origin(t *testing.T) {
	x, y := ProjectLonLat(0, 0)

	if math.Abs(x) > 1e-6 || math.Abs(y) > 1e-6 {
		t.Errorf("expected origin to project to (0,0), got (%f, %f)", x, y)
	}
}

func TestProjectLonLat_KnownPoint(t *testing.T) {
	// One degree of longitude at the equator is ~111.3 km in EPSG:3857.
	x, _ := ProjectLonLat(1, 0)

	if x < 111000 || x > 112000 {
		t.Errorf("expected x near 111320, got %f", x)
	}
}

func TestNewPitch_Degenerate(t *testing.T) {
	if _, err := NewPitch(0, 0, 0, 68); !errors.Is(err, ErrDegeneratePitch) {
		t.Errorf("expected ErrDegeneratePitch for zero width, got %v", err)
	}
	if _, err := NewPitch(0, 10, 105, 10); !errors.Is(err, ErrDegeneratePitch) {
		t.Errorf("expected ErrDegeneratePitch for zero height, got %v", err)
	}
}

func TestPitchNormalize(t *testing.T) {
	// FIFA-sized pitch: 105 m x 68 m, offset from the projection origin.
	pitch, err := NewPitch(1000, 2000, 1105, 2068)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name         string
		x, y         float64
		wantX, wantY float64
	}{
		{"min corner", 1000, 2000, 0, 0},
		{"max corner", 1105, 2068, 1, 1},
		{"center", 1052.5, 2034, 0.5, 0.5},
		{"clamped below", 990, 1990, 0, 0},
		{"clamped above", 1200, 2100, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := pitch.Normalize(tt.x, tt.y)
			if math.Abs(pos.X-tt.wantX) > 1e-9 || math.Abs(pos.Y-tt.wantY) > 1e-9 {
				t.Errorf("Normalize(%g, %g) = (%g, %g), want (%g, %g)",
					tt.x, tt.y, pos.X, pos.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestPitchContains(t *testing.T) {
	pitch, err := NewPitch(0, 0, 105, 68)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !pitch.Contains(52.5, 34) {
		t.Error("center should be inside the pitch")
	}
	if pitch.Contains(-1, 34) {
		t.Error("point left of the pitch should be outside")
	}
	if pitch.Contains(52.5, 70) {
		t.Error("point above the pitch should be outside")
	}
}

func TestPitchContainsLonLat(t *testing.T) {
	pitch, err := NewPitchFromLonLat(0, 0, 0.001, 0.001)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !pitch.ContainsLonLat(0.0005, 0.0005) {
		t.Error("mid-pitch coordinate should be inside")
	}
	if pitch.ContainsLonLat(10, 10) {
		t.Error("far-away coordinate should be outside")
	}
}

func TestPitchPerimeter(t *testing.T) {
	pitch, err := NewPitch(0, 0, 105, 68)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := 2 * (105.0 + 68.0)
	if got := pitch.Perimeter(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Perimeter() = %g, want %g", got, want)
	}
}
