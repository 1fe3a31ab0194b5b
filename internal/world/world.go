package world

import (
	"errors"
	"fmt"
)

// Faults a running program can hit. The interpreter reports these via
// StepResult and never retries them.
var (
	ErrWallCollision  = errors.New("wall collision")
	ErrNoMarkerToPick = errors.New("no marker to pick")
	ErrOutOfMarkers   = errors.New("out of markers")
)

// ErrInvalidWorldDefinition rejects a malformed Definition at build time.
var ErrInvalidWorldDefinition = errors.New("invalid world definition")

// Definition is the validated external description a World is built from.
// Wall matrices follow the edge layout: HWalls[y][x] is the edge between
// (x,y) and (x,y+1) and has height-1 rows; VWalls[y][x] is the edge
// between (x,y) and (x+1,y) and has width-1 columns. Nil matrices mean
// no interior walls. Nil Markers/Colors mean empty/white cells.
type Definition struct {
	Width   int
	Height  int
	HWalls  [][]bool
	VWalls  [][]bool
	Markers [][]int
	Colors  [][]RGB
	Robot   Robot
}

// World owns the grid and the robot for one run. It is not safe for
// concurrent use; parallel runs get independent Worlds.
type World struct {
	width   int
	height  int
	hwalls  [][]bool
	vwalls  [][]bool
	markers [][]int
	colors  [][]RGB
	robot   Robot
}

// New validates def and builds a World. All failures wrap
// ErrInvalidWorldDefinition.
func New(def Definition) (*World, error) {
	if def.Width <= 0 || def.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidWorldDefinition, def.Width, def.Height)
	}
	w := &World{
		width:  def.Width,
		height: def.Height,
		hwalls: make([][]bool, def.Height-1),
		vwalls: make([][]bool, def.Height),
		markers: make([][]int, def.Height),
		colors:  make([][]RGB, def.Height),
	}
	for y := range w.hwalls {
		w.hwalls[y] = make([]bool, def.Width)
	}
	for y := range w.vwalls {
		w.vwalls[y] = make([]bool, def.Width-1)
	}
	for y := range w.markers {
		w.markers[y] = make([]int, def.Width)
		w.colors[y] = make([]RGB, def.Width)
		for x := range w.colors[y] {
			w.colors[y][x] = White
		}
	}
	if err := copyMatrix("horizontal walls", w.hwalls, def.HWalls); err != nil {
		return nil, err
	}
	if err := copyMatrix("vertical walls", w.vwalls, def.VWalls); err != nil {
		return nil, err
	}
	if def.Markers != nil {
		if err := checkShape("markers", len(def.Markers), def.Height); err != nil {
			return nil, err
		}
		for y, row := range def.Markers {
			if err := checkShape("markers row", len(row), def.Width); err != nil {
				return nil, err
			}
			for x, n := range row {
				if n < 0 {
					return nil, fmt.Errorf("%w: negative marker count %d at (%d,%d)",
						ErrInvalidWorldDefinition, n, x, y)
				}
				w.markers[y][x] = n
			}
		}
	}
	if def.Colors != nil {
		if err := checkShape("colors", len(def.Colors), def.Height); err != nil {
			return nil, err
		}
		for y, row := range def.Colors {
			if err := checkShape("colors row", len(row), def.Width); err != nil {
				return nil, err
			}
			copy(w.colors[y], row)
		}
	}
	if def.Robot.Bag < 0 && def.Robot.Bag != InfiniteBag {
		return nil, fmt.Errorf("%w: bag %d", ErrInvalidWorldDefinition, def.Robot.Bag)
	}
	if !w.InBounds(def.Robot.Pos) {
		return nil, fmt.Errorf("%w: robot start %s out of bounds",
			ErrInvalidWorldDefinition, def.Robot.Pos)
	}
	w.robot = def.Robot
	return w, nil
}

func copyMatrix(name string, dst, src [][]bool) error {
	if src == nil {
		return nil
	}
	if err := checkShape(name, len(src), len(dst)); err != nil {
		return err
	}
	for y, row := range src {
		if err := checkShape(name+" row", len(row), len(dst[y])); err != nil {
			return err
		}
		copy(dst[y], row)
	}
	return nil
}

func checkShape(name string, got, want int) error {
	if got != want {
		return fmt.Errorf("%w: %s has %d entries, want %d",
			ErrInvalidWorldDefinition, name, got, want)
	}
	return nil
}

func (w *World) Width() int   { return w.width }
func (w *World) Height() int  { return w.height }
func (w *World) Robot() Robot { return w.robot }

func (w *World) InBounds(p Position) bool {
	return p.X >= 0 && p.X < w.width && p.Y >= 0 && p.Y < w.height
}

// MarkersAt returns the marker count at p; zero out of bounds.
func (w *World) MarkersAt(p Position) int {
	if !w.InBounds(p) {
		return 0
	}
	return w.markers[p.Y][p.X]
}

// ColorAt returns the color at p; white out of bounds.
func (w *World) ColorAt(p Position) RGB {
	if !w.InBounds(p) {
		return White
	}
	return w.colors[p.Y][p.X]
}

// Blocked reports whether a wall (or the grid boundary) blocks movement
// from p in dir.
func (w *World) Blocked(p Position, dir Direction) bool {
	switch dir {
	case North:
		if p.Y >= w.height-1 {
			return true
		}
		return w.hwalls[p.Y][p.X]
	case South:
		if p.Y <= 0 {
			return true
		}
		return w.hwalls[p.Y-1][p.X]
	case East:
		if p.X >= w.width-1 {
			return true
		}
		return w.vwalls[p.Y][p.X]
	case West:
		if p.X <= 0 {
			return true
		}
		return w.vwalls[p.Y][p.X-1]
	}
	return true
}

// FacingBoundary reports whether the robot faces the grid edge itself,
// wall or not.
func (w *World) FacingBoundary() bool {
	next := w.robot.Pos.Moved(w.robot.Dir)
	return !w.InBounds(next)
}

// Sensor queries, all pure reads.

func (w *World) FrontIsBlocked() bool { return w.Blocked(w.robot.Pos, w.robot.Dir) }
func (w *World) FrontIsClear() bool   { return !w.FrontIsBlocked() }

func (w *World) LeftIsBlocked() bool { return w.Blocked(w.robot.Pos, w.robot.Dir.TurnedLeft()) }
func (w *World) LeftIsClear() bool   { return !w.LeftIsBlocked() }

func (w *World) RightIsBlocked() bool { return w.Blocked(w.robot.Pos, w.robot.Dir.TurnedRight()) }
func (w *World) RightIsClear() bool   { return !w.RightIsBlocked() }

func (w *World) MarkersPresent() bool   { return w.MarkersAt(w.robot.Pos) > 0 }
func (w *World) NoMarkersPresent() bool { return !w.MarkersPresent() }

func (w *World) Facing(dir Direction) bool { return w.robot.Dir == dir }

func (w *World) ColorIs(c RGB) bool { return w.ColorAt(w.robot.Pos) == c }

// Move advances the robot one cell in its facing direction. A wall in
// the way is a fault and leaves the world untouched.
func (w *World) Move() (Delta, error) {
	if w.FrontIsBlocked() {
		return Delta{}, fmt.Errorf("%w: %s cannot move %s",
			ErrWallCollision, w.robot, w.robot.Dir)
	}
	d := Delta{
		Kind:    Moved,
		FromPos: w.robot.Pos,
		ToPos:   w.robot.Pos.Moved(w.robot.Dir),
		FromDir: w.robot.Dir,
		ToDir:   w.robot.Dir,
	}
	w.robot.Pos = d.ToPos
	return d, nil
}

func (w *World) turn(to Direction) Delta {
	d := Delta{
		Kind:    Turned,
		FromPos: w.robot.Pos,
		ToPos:   w.robot.Pos,
		FromDir: w.robot.Dir,
		ToDir:   to,
	}
	w.robot.Dir = to
	return d
}

// TurnLeft rotates the robot 90 degrees counter-clockwise. Never fails.
func (w *World) TurnLeft() Delta { return w.turn(w.robot.Dir.TurnedLeft()) }

func (w *World) TurnRight() Delta  { return w.turn(w.robot.Dir.TurnedRight()) }
func (w *World) TurnAround() Delta { return w.turn(w.robot.Dir.TurnedAround()) }

// PlaceMarker puts one marker on the robot's cell, debiting a finite bag.
func (w *World) PlaceMarker() (Delta, error) {
	if w.robot.Bag == 0 {
		return Delta{}, fmt.Errorf("%w: bag is empty at %s", ErrOutOfMarkers, w.robot.Pos)
	}
	p := w.robot.Pos
	d := Delta{
		Kind:          MarkerPlaced,
		FromPos:       p,
		ToPos:         p,
		FromDir:       w.robot.Dir,
		ToDir:         w.robot.Dir,
		Cell:          p,
		MarkersBefore: w.markers[p.Y][p.X],
		MarkersAfter:  w.markers[p.Y][p.X] + 1,
	}
	w.markers[p.Y][p.X]++
	if w.robot.Bag != InfiniteBag {
		w.robot.Bag--
	}
	return d, nil
}

// PickMarker takes one marker from the robot's cell into the bag.
func (w *World) PickMarker() (Delta, error) {
	p := w.robot.Pos
	if w.markers[p.Y][p.X] == 0 {
		return Delta{}, fmt.Errorf("%w: cell %s is empty", ErrNoMarkerToPick, p)
	}
	d := Delta{
		Kind:          MarkerPicked,
		FromPos:       p,
		ToPos:         p,
		FromDir:       w.robot.Dir,
		ToDir:         w.robot.Dir,
		Cell:          p,
		MarkersBefore: w.markers[p.Y][p.X],
		MarkersAfter:  w.markers[p.Y][p.X] - 1,
	}
	w.markers[p.Y][p.X]--
	if w.robot.Bag != InfiniteBag {
		w.robot.Bag++
	}
	return d, nil
}

// Paint colors the robot's cell.
func (w *World) Paint(c RGB) Delta {
	p := w.robot.Pos
	d := Delta{
		Kind:        Painted,
		FromPos:     p,
		ToPos:       p,
		FromDir:     w.robot.Dir,
		ToDir:       w.robot.Dir,
		Cell:        p,
		ColorBefore: w.colors[p.Y][p.X],
		ColorAfter:  c,
	}
	w.colors[p.Y][p.X] = c
	return d
}
