// Package render draws playback frames as ASCII onto an io.Writer. Home
// players appear as their shirt number's last digit, away players as the
// letters a through k, and the ball as a glyph that grows with height.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/matchview/replay/internal/config"
	"github.com/matchview/replay/internal/interp"
	"github.com/matchview/replay/internal/transport"
	"github.com/matchview/replay/pkg/core"
)

// Renderer draws frames at a fixed character resolution.
type Renderer struct {
	cfg config.DisplayConfig
}

// New creates a renderer using the display settings. Columns and rows
// below the minimum drawable size are raised to it.
func New(cfg config.DisplayConfig) *Renderer {
	if cfg.Columns < 20 {
		cfg.Columns = 20
	}
	if cfg.Rows < 8 {
		cfg.Rows = 8
	}
	return &Renderer{cfg: cfg}
}

// Render writes one frame plus the status line. The frame's normalized
// coordinates are mapped onto the character grid with y growing downward.
func (r *Renderer) Render(w io.Writer, frame interp.RenderFrame, info transport.Info) error {
	grid := r.pitch()

	for i, p := range frame.Players {
		r.plot(grid, p.X, p.Y, playerGlyph(i))
	}
	// Ball draws last so it stays visible in crowded goalmouths.
	r.plot(grid, frame.Ball.X, frame.Ball.Y, r.ballGlyph(frame.Ball.Z))

	var buf bytes.Buffer
	for _, row := range grid {
		buf.Write(row)
		buf.WriteByte('\n')
	}
	buf.WriteString(statusLine(info))
	buf.WriteByte('\n')

	_, err := w.Write(buf.Bytes())
	return err
}

// RenderNoData writes the placeholder shown when no timeline is loaded.
func (r *Renderer) RenderNoData(w io.Writer, info transport.Info) error {
	grid := r.pitch()
	msg := info.Label
	row := r.cfg.Rows / 2
	col := (r.cfg.Columns - len(msg)) / 2
	if col < 1 {
		col = 1
	}
	copy(grid[row][col:], msg)

	var buf bytes.Buffer
	for _, line := range grid {
		buf.Write(line)
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// pitch builds the empty grid with touchlines, the halfway line and the
// center spot.
func (r *Renderer) pitch() [][]byte {
	cols, rows := r.cfg.Columns, r.cfg.Rows
	grid := make([][]byte, rows)
	for y := range grid {
		grid[y] = bytes.Repeat([]byte{' '}, cols)
		if y == 0 || y == rows-1 {
			for x := range grid[y] {
				grid[y][x] = '-'
			}
		}
		grid[y][0] = '|'
		grid[y][cols-1] = '|'
		grid[y][cols/2] = '|'
	}
	grid[0][0], grid[0][cols-1] = '+', '+'
	grid[rows-1][0], grid[rows-1][cols-1] = '+', '+'
	grid[rows/2][cols/2] = 'o'
	return grid
}

func (r *Renderer) plot(grid [][]byte, x, y float64, glyph byte) {
	col := int(x * float64(r.cfg.Columns-1))
	row := int(y * float64(r.cfg.Rows-1))
	grid[row][col] = glyph
}

// ballGlyph scales the drawn ball with its height, mirroring the radius
// range used by graphical front ends.
func (r *Renderer) ballGlyph(z float64) byte {
	radius := interp.BallRadius(r.cfg.BallRadius, r.cfg.BallMaxRadius, z)
	span := r.cfg.BallMaxRadius - r.cfg.BallRadius
	if span <= 0 {
		return '*'
	}
	switch f := (radius - r.cfg.BallRadius) / span; {
	case f < 1.0/3:
		return '*'
	case f < 2.0/3:
		return 'o'
	default:
		return 'O'
	}
}

func playerGlyph(playerIndex int) byte {
	n := core.ShirtNumber(playerIndex)
	if core.TeamOf(playerIndex) == 0 {
		return byte('0' + n%10)
	}
	return byte('a' + n - 1)
}

func statusLine(info transport.Info) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", info.Label)
	fmt.Fprintf(&b, " sample %d/%d", info.CurrentSample, info.TotalSamples)
	fmt.Fprintf(&b, " t=%.2fs", info.Time)
	return b.String()
}
