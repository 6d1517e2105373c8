package core

// Timeline is the ordered sequence of samples for one playback session.
// It is immutable once constructed; consumers only ever read it by index.
type Timeline []Sample

// Len returns the number of samples.
func (t Timeline) Len() int {
	return len(t)
}

// Empty returns true if the timeline holds no samples.
func (t Timeline) Empty() bool {
	return len(t) == 0
}

// At returns the sample at index i. The caller is responsible for bounds.
func (t Timeline) At(i int) Sample {
	return t[i]
}

// Duration returns the recorded time span covered by the timeline, in
// seconds. Zero for timelines with fewer than two samples.
func (t Timeline) Duration() float64 {
	if len(t) < 2 {
		return 0
	}
	return t[len(t)-1].Time - t[0].Time
}

// PlayersPerSample returns the player count of the first sample, or 0 for
// an empty timeline. Loaders guarantee the count is uniform across samples.
func (t Timeline) PlayersPerSample() int {
	if len(t) == 0 {
		return 0
	}
	return len(t[0].Players)
}
