package worldfile

import (
	"errors"
	"testing"

	"karel/internal/world"
)

const sample = `
size 5 4
robot 2 1 east
bag 3
wall 1 1 north
wall 0 0 east
markers 3 2 5
color 0 0 red
`

func TestParseSample(t *testing.T) {
	def, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if def.Width != 5 || def.Height != 4 {
		t.Errorf("size %dx%d", def.Width, def.Height)
	}
	if def.Robot.Pos != (world.Position{X: 2, Y: 1}) || def.Robot.Dir != world.East {
		t.Errorf("robot %+v", def.Robot)
	}
	if def.Robot.Bag != 3 {
		t.Errorf("bag %d", def.Robot.Bag)
	}
	if !def.HWalls[1][1] {
		t.Error("wall north of (1,1) missing")
	}
	if !def.VWalls[0][0] {
		t.Error("wall east of (0,0) missing")
	}
	if def.Markers[2][3] != 5 {
		t.Errorf("markers at (3,2): %d", def.Markers[2][3])
	}
	if def.Colors[0][0] != (world.RGB{R: 255}) {
		t.Errorf("color at (0,0): %v", def.Colors[0][0])
	}

	// The definition builds a valid world with matching walls.
	w, err := world.New(def)
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	if !w.Blocked(world.Position{X: 1, Y: 1}, world.North) {
		t.Error("world lost the north wall")
	}
	if !w.Blocked(world.Position{X: 1, Y: 2}, world.South) {
		t.Error("wall not visible from the far side")
	}
}

func TestParseDefaultsToInfiniteBag(t *testing.T) {
	def, err := Parse([]byte("size 2 2\nrobot 0 0 north\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if def.Robot.Bag != world.InfiniteBag {
		t.Errorf("bag %d", def.Robot.Bag)
	}
}

func TestParseExplicitInfiniteBag(t *testing.T) {
	def, err := Parse([]byte("size 2 2\nrobot 0 0 north\nbag infinite\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if def.Robot.Bag != world.InfiniteBag {
		t.Errorf("bag %d", def.Robot.Bag)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"missing robot", "size 2 2\n"},
		{"size not first", "robot 0 0 north\nsize 2 2\n"},
		{"duplicate size", "size 2 2\nsize 3 3\nrobot 0 0 north\n"},
		{"bad direction", "size 2 2\nrobot 0 0 up\n"},
		{"wall out of bounds", "size 2 2\nrobot 0 0 north\nwall 5 5 north\n"},
		{"wall on boundary", "size 2 2\nrobot 0 0 north\nwall 0 1 north\n"},
		{"bad wall side", "size 2 2\nrobot 0 0 north\nwall 0 0 diagonal\n"},
		{"markers out of bounds", "size 2 2\nrobot 0 0 north\nmarkers 9 9 1\n"},
		{"bad color", "size 2 2\nrobot 0 0 north\ncolor 0 0 mud\n"},
		{"garbage", "blorp\n"},
	}
	for _, tt := range tests {
		if _, err := Parse([]byte(tt.in)); !errors.Is(err, world.ErrInvalidWorldDefinition) {
			t.Errorf("%s: got %v", tt.name, err)
		}
	}
}
