// Package interp computes the sub-sample positions presented between two
// adjacent recorded samples. It is pure arithmetic with no state: the
// transport controller decides which samples and what progress to use.
package interp

import "github.com/matchview/replay/pkg/core"

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// RenderFrame carries the resolved positions for one presentation instant.
type RenderFrame struct {
	Ball    core.BallPosition
	Players []core.Position
}

// Frame resolves the positions to present. With a lookahead sample it
// interpolates ball and players component-wise by progress; without one
// (paused, scrubbing, or at the last sample) it returns the current
// sample's positions verbatim. Both samples must carry the same player
// count, a timeline invariant enforced by the loaders.
func Frame(current core.Sample, next *core.Sample, progress float64) RenderFrame {
	if next == nil {
		return RenderFrame{
			Ball:    current.Ball,
			Players: current.Players,
		}
	}

	frame := RenderFrame{
		Ball: core.BallPosition{
			X: Lerp(current.Ball.X, next.Ball.X, progress),
			Y: Lerp(current.Ball.Y, next.Ball.Y, progress),
			Z: Lerp(current.Ball.Z, next.Ball.Z, progress),
		},
		Players: make([]core.Position, len(current.Players)),
	}
	for i := range current.Players {
		frame.Players[i] = core.Position{
			X: Lerp(current.Players[i].X, next.Players[i].X, progress),
			Y: Lerp(current.Players[i].Y, next.Players[i].Y, progress),
		}
	}
	return frame
}

// BallRadius maps the normalized ball height z in [0,1] linearly onto
// the presentation radius range [base, max]. The ball is drawn larger
// the higher it is.
func BallRadius(base, max, z float64) float64 {
	return base + (max-base)*z
}
