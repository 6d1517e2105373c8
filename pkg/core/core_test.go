package core

import "testing"

func TestTeamOf(t *testing.T) {
	tests := []struct {
		index int
		want  int
	}{
		{0, 0},
		{10, 0},
		{11, 1},
		{21, 1},
	}
	for _, tt := range tests {
		if got := TeamOf(tt.index); got != tt.want {
			t.Errorf("TeamOf(%d) = %d, want %d", tt.index, got, tt.want)
		}
	}
}

func TestShirtNumber(t *testing.T) {
	tests := []struct {
		index int
		want  int
	}{
		{0, 1},
		{9, 10},
		{10, 11},
		{11, 1}, // away side restarts at 1
		{21, 11},
	}
	for _, tt := range tests {
		if got := ShirtNumber(tt.index); got != tt.want {
			t.Errorf("ShirtNumber(%d) = %d, want %d", tt.index, got, tt.want)
		}
	}
}

func TestTimelineAccessors(t *testing.T) {
	timeline := Timeline{
		{Time: 1.5, Players: []Position{{X: 0.1, Y: 0.2}, {X: 0.3, Y: 0.4}}},
		{Time: 2.0, Players: []Position{{X: 0.5, Y: 0.6}, {X: 0.7, Y: 0.8}}},
		{Time: 4.5, Players: []Position{{X: 0.9, Y: 0.1}, {X: 0.2, Y: 0.3}}},
	}

	if timeline.Empty() {
		t.Error("populated timeline reported empty")
	}
	if got := timeline.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
	if got := timeline.At(1).Time; got != 2.0 {
		t.Errorf("At(1).Time = %g, want 2.0", got)
	}
	if got := timeline.PlayersPerSample(); got != 2 {
		t.Errorf("PlayersPerSample() = %d, want 2", got)
	}
	if got := timeline.Duration(); got != 3.0 {
		t.Errorf("Duration() = %g, want 3.0", got)
	}
}

func TestTimelineDegenerateDurations(t *testing.T) {
	var empty Timeline
	if !empty.Empty() {
		t.Error("nil timeline should be empty")
	}
	if got := empty.Duration(); got != 0 {
		t.Errorf("empty Duration() = %g, want 0", got)
	}
	if got := empty.PlayersPerSample(); got != 0 {
		t.Errorf("empty PlayersPerSample() = %d, want 0", got)
	}

	single := Timeline{{Time: 7}}
	if got := single.Duration(); got != 0 {
		t.Errorf("single-sample Duration() = %g, want 0", got)
	}
}
