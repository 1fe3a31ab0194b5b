package world

import "fmt"

// Direction is one of the four compass directions the robot can face.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection reads a lowercase compass name.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "north":
		return North, nil
	case "east":
		return East, nil
	case "south":
		return South, nil
	case "west":
		return West, nil
	}
	return North, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) TurnedLeft() Direction {
	return (d + 3) % 4
}

func (d Direction) TurnedRight() Direction {
	return (d + 1) % 4
}

func (d Direction) TurnedAround() Direction {
	return (d + 2) % 4
}

// Delta returns the unit step for one move in this direction.
// North is +Y, east is +X.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	}
	return 0, 0
}

// Position is a cell coordinate. X counts avenues west to east,
// Y counts streets south to north, both from zero.
type Position struct {
	X, Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Moved returns the neighbouring position one cell away in dir.
func (p Position) Moved(dir Direction) Position {
	dx, dy := dir.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}
