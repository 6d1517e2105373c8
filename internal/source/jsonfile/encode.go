package jsonfile

import (
	"encoding/json"
	"io"

	"github.com/matchview/replay/pkg/core"
)

// Encode writes a timeline in the JSON recording format read by Loader.
// The ball always carries its height channel.
func Encode(w io.Writer, t core.Timeline) error {
	raw := make([]rawSample, 0, t.Len())
	for _, s := range t {
		players := make([][]float64, len(s.Players))
		for i, p := range s.Players {
			players[i] = []float64{p.X, p.Y}
		}
		raw = append(raw, rawSample{
			Time:    s.Time,
			Ball:    []float64{s.Ball.X, s.Ball.Y, s.Ball.Z},
			Players: players,
		})
	}
	return json.NewEncoder(w).Encode(raw)
}
