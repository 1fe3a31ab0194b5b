// Package display renders world snapshots to a terminal.
package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"karel/internal/world"
)

var dirGlyphs = map[world.Direction]byte{
	world.North: '^',
	world.East:  '>',
	world.South: 'v',
	world.West:  '<',
}

// Render draws the grid with walls, marker counts, painted cells and
// the robot's orientation glyph. North is up.
func Render(s world.Snapshot) string {
	var b strings.Builder
	for y := s.Height - 1; y >= 0; y-- {
		wallRow(&b, s, y+1)
		for x := 0; x < s.Width; x++ {
			if s.Blocked(world.Position{X: x, Y: y}, world.West) {
				b.WriteByte('|')
			} else {
				b.WriteByte(' ')
			}
			b.WriteString(cell(s, x, y))
		}
		b.WriteString("|\n")
	}
	wallRow(&b, s, 0)
	return b.String()
}

// wallRow draws the horizontal edges below street y.
func wallRow(b *strings.Builder, s world.Snapshot, y int) {
	for x := 0; x < s.Width; x++ {
		b.WriteByte('+')
		if y == 0 || y == s.Height || s.HWalls[y-1][x] {
			b.WriteString("--")
		} else {
			b.WriteString("  ")
		}
	}
	b.WriteString("+\n")
}

func cell(s world.Snapshot, x, y int) string {
	p := world.Position{X: x, Y: y}
	var left, right byte = ' ', ' '
	if s.Robot.Pos == p {
		left = dirGlyphs[s.Robot.Dir]
	}
	switch n := s.Markers[y][x]; {
	case n > 9:
		right = '*'
	case n > 0:
		right = byte('0' + n)
	case s.Robot.Pos != p:
		left = '.'
	}
	out := string([]byte{left, right})
	if c := s.Colors[y][x]; c != world.White {
		out = fmt.Sprintf("\033[48;2;%d;%d;%dm%s\033[0m", c.R, c.G, c.B, out)
	}
	return out
}

// Renderer redraws the grid in place after each step, the way the
// batch runner animates a run.
type Renderer struct {
	Out   io.Writer
	Clear bool
	Delay time.Duration
}

func (r *Renderer) Show(s world.Snapshot) {
	if r.Clear {
		fmt.Fprint(r.Out, "\033[H\033[2J")
	}
	fmt.Fprint(r.Out, Render(s))
	fmt.Fprintln(r.Out, s.Robot)
	if r.Delay > 0 {
		time.Sleep(r.Delay)
	}
}
