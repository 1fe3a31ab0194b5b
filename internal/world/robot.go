package world

import "fmt"

// InfiniteBag marks a marker bag that never runs out.
const InfiniteBag = -1

// Robot is the robot's pose plus the marker bag it carries.
// Bag is a remaining count, or InfiniteBag.
type Robot struct {
	Pos Position
	Dir Direction
	Bag int
}

func (r Robot) String() string {
	if r.Bag == InfiniteBag {
		return fmt.Sprintf("robot at %s facing %s", r.Pos, r.Dir)
	}
	return fmt.Sprintf("robot at %s facing %s, %d markers in bag", r.Pos, r.Dir, r.Bag)
}
