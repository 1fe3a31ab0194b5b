// Package worldfile reads the text world-definition format:
//
//	size 5 4
//	robot 2 1 east
//	bag 3
//	wall 1 1 north
//	markers 3 2 5
//	color 0 0 red
//
// size and robot are required; bag defaults to infinite; wall marks
// the edge on the given side of a cell; markers and color set a cell,
// last write wins.
package worldfile

import (
	"fmt"

	"github.com/alecthomas/participle/v2"

	"karel/internal/world"
)

type worldFile struct {
	Entries []*entry `parser:"@@*"`
}

type entry struct {
	Size    *sizeEntry    `parser:"'size' @@"`
	Robot   *robotEntry   `parser:"| 'robot' @@"`
	Bag     *bagEntry     `parser:"| 'bag' @@"`
	Wall    *wallEntry    `parser:"| 'wall' @@"`
	Markers *markersEntry `parser:"| 'markers' @@"`
	Color   *colorEntry   `parser:"| 'color' @@"`
}

type sizeEntry struct {
	Width  int `parser:"@Int"`
	Height int `parser:"@Int"`
}

type robotEntry struct {
	X   int    `parser:"@Int"`
	Y   int    `parser:"@Int"`
	Dir string `parser:"@Ident"`
}

type bagEntry struct {
	Infinite bool `parser:"@'infinite'"`
	Count    *int `parser:"| @Int"`
}

type wallEntry struct {
	X    int    `parser:"@Int"`
	Y    int    `parser:"@Int"`
	Side string `parser:"@Ident"`
}

type markersEntry struct {
	X     int `parser:"@Int"`
	Y     int `parser:"@Int"`
	Count int `parser:"@Int"`
}

type colorEntry struct {
	X    int    `parser:"@Int"`
	Y    int    `parser:"@Int"`
	Name string `parser:"@Ident"`
}

var parser = participle.MustBuild[worldFile]()

// Parse reads a world definition. Layout errors are reported here;
// everything else (robot bounds, counts) is left to world.New.
func Parse(data []byte) (world.Definition, error) {
	var def world.Definition
	file, err := parser.ParseBytes("world", data)
	if err != nil {
		return def, fmt.Errorf("%w: %v", world.ErrInvalidWorldDefinition, err)
	}
	sawSize := false
	sawRobot := false
	def.Robot.Bag = world.InfiniteBag
	for _, e := range file.Entries {
		switch {
		case e.Size != nil:
			if sawSize {
				return def, fmt.Errorf("%w: duplicate size", world.ErrInvalidWorldDefinition)
			}
			sawSize = true
			def.Width = e.Size.Width
			def.Height = e.Size.Height
			if def.Width <= 0 || def.Height <= 0 {
				return def, fmt.Errorf("%w: size %dx%d",
					world.ErrInvalidWorldDefinition, def.Width, def.Height)
			}
			def.HWalls = boolMatrix(def.Height-1, def.Width)
			def.VWalls = boolMatrix(def.Height, def.Width-1)
			def.Markers = intMatrix(def.Height, def.Width)
			def.Colors = colorMatrix(def.Height, def.Width)
		case !sawSize:
			return def, fmt.Errorf("%w: size must come first", world.ErrInvalidWorldDefinition)
		case e.Robot != nil:
			if sawRobot {
				return def, fmt.Errorf("%w: duplicate robot", world.ErrInvalidWorldDefinition)
			}
			sawRobot = true
			dir, err := world.ParseDirection(e.Robot.Dir)
			if err != nil {
				return def, fmt.Errorf("%w: %v", world.ErrInvalidWorldDefinition, err)
			}
			def.Robot.Pos = world.Position{X: e.Robot.X, Y: e.Robot.Y}
			def.Robot.Dir = dir
		case e.Bag != nil:
			if e.Bag.Infinite {
				def.Robot.Bag = world.InfiniteBag
			} else {
				def.Robot.Bag = *e.Bag.Count
			}
		case e.Wall != nil:
			if err := setWall(&def, e.Wall); err != nil {
				return def, err
			}
		case e.Markers != nil:
			if !inBounds(def, e.Markers.X, e.Markers.Y) {
				return def, fmt.Errorf("%w: markers at (%d,%d) out of bounds",
					world.ErrInvalidWorldDefinition, e.Markers.X, e.Markers.Y)
			}
			def.Markers[e.Markers.Y][e.Markers.X] = e.Markers.Count
		case e.Color != nil:
			if !inBounds(def, e.Color.X, e.Color.Y) {
				return def, fmt.Errorf("%w: color at (%d,%d) out of bounds",
					world.ErrInvalidWorldDefinition, e.Color.X, e.Color.Y)
			}
			c, err := world.ParseColor(e.Color.Name)
			if err != nil {
				return def, fmt.Errorf("%w: %v", world.ErrInvalidWorldDefinition, err)
			}
			def.Colors[e.Color.Y][e.Color.X] = c
		}
	}
	if !sawSize {
		return def, fmt.Errorf("%w: missing size", world.ErrInvalidWorldDefinition)
	}
	if !sawRobot {
		return def, fmt.Errorf("%w: missing robot", world.ErrInvalidWorldDefinition)
	}
	return def, nil
}

// setWall marks the edge on the given side of cell (x,y). The grid
// boundary is always a wall and may not be declared.
func setWall(def *world.Definition, w *wallEntry) error {
	if !inBounds(*def, w.X, w.Y) {
		return fmt.Errorf("%w: wall at (%d,%d) out of bounds",
			world.ErrInvalidWorldDefinition, w.X, w.Y)
	}
	bad := func() error {
		return fmt.Errorf("%w: wall %s of (%d,%d) is the grid boundary",
			world.ErrInvalidWorldDefinition, w.Side, w.X, w.Y)
	}
	switch w.Side {
	case "north":
		if w.Y >= def.Height-1 {
			return bad()
		}
		def.HWalls[w.Y][w.X] = true
	case "south":
		if w.Y == 0 {
			return bad()
		}
		def.HWalls[w.Y-1][w.X] = true
	case "east":
		if w.X >= def.Width-1 {
			return bad()
		}
		def.VWalls[w.Y][w.X] = true
	case "west":
		if w.X == 0 {
			return bad()
		}
		def.VWalls[w.Y][w.X-1] = true
	default:
		return fmt.Errorf("%w: unknown wall side %q", world.ErrInvalidWorldDefinition, w.Side)
	}
	return nil
}

func inBounds(def world.Definition, x, y int) bool {
	return x >= 0 && x < def.Width && y >= 0 && y < def.Height
}

func boolMatrix(rows, cols int) [][]bool {
	m := make([][]bool, rows)
	for i := range m {
		m[i] = make([]bool, cols)
	}
	return m
}

func intMatrix(rows, cols int) [][]int {
	m := make([][]int, rows)
	for i := range m {
		m[i] = make([]int, cols)
	}
	return m
}

func colorMatrix(rows, cols int) [][]world.RGB {
	m := make([][]world.RGB, rows)
	for i := range m {
		m[i] = make([]world.RGB, cols)
		for j := range m[i] {
			m[i][j] = world.White
		}
	}
	return m
}
