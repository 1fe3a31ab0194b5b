package world

import (
	"errors"
	"testing"
)

func newTestWorld(t *testing.T, def Definition) *World {
	t.Helper()
	w, err := New(def)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

func open3x3(t *testing.T, robot Robot) *World {
	t.Helper()
	if robot.Bag == 0 {
		robot.Bag = InfiniteBag
	}
	return newTestWorld(t, Definition{Width: 3, Height: 3, Robot: robot})
}

func TestTurnLeftGroupOfFour(t *testing.T) {
	for _, start := range []Direction{North, East, South, West} {
		w := open3x3(t, Robot{Pos: Position{1, 1}, Dir: start})
		for i := 0; i < 4; i++ {
			w.TurnLeft()
		}
		if got := w.Robot().Dir; got != start {
			t.Errorf("four left turns from %s ended at %s", start, got)
		}
	}
}

func TestTurnSequences(t *testing.T) {
	tests := []struct {
		name string
		turn func(*World) Delta
		want Direction
	}{
		{"left", (*World).TurnLeft, North},
		{"right", (*World).TurnRight, South},
		{"around", (*World).TurnAround, West},
	}
	for _, tt := range tests {
		w := open3x3(t, Robot{Pos: Position{1, 1}, Dir: East})
		d := tt.turn(w)
		if w.Robot().Dir != tt.want {
			t.Errorf("%s from east: got %s, want %s", tt.name, w.Robot().Dir, tt.want)
		}
		if d.Kind != Turned || d.FromDir != East || d.ToDir != tt.want {
			t.Errorf("%s delta: %+v", tt.name, d)
		}
	}
}

func TestMoveThereAndBack(t *testing.T) {
	w := open3x3(t, Robot{Pos: Position{1, 1}, Dir: North})
	if _, err := w.Move(); err != nil {
		t.Fatalf("move: %v", err)
	}
	if got := w.Robot().Pos; got != (Position{1, 2}) {
		t.Fatalf("after move: %s", got)
	}
	w.TurnLeft()
	w.TurnLeft()
	if _, err := w.Move(); err != nil {
		t.Fatalf("move back: %v", err)
	}
	if got := w.Robot().Pos; got != (Position{1, 1}) {
		t.Errorf("after about-face and move: %s", got)
	}
}

func TestMoveDelta(t *testing.T) {
	w := open3x3(t, Robot{Pos: Position{0, 0}, Dir: East})
	d, err := w.Move()
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if d.Kind != Moved || d.FromPos != (Position{0, 0}) || d.ToPos != (Position{1, 0}) {
		t.Errorf("delta: %+v", d)
	}
}

func TestMoveIntoBoundary(t *testing.T) {
	w := open3x3(t, Robot{Pos: Position{2, 1}, Dir: East})
	if _, err := w.Move(); !errors.Is(err, ErrWallCollision) {
		t.Fatalf("move into boundary: %v", err)
	}
	if got := w.Robot().Pos; got != (Position{2, 1}) {
		t.Errorf("robot moved despite collision: %s", got)
	}
}

func TestMoveIntoInteriorWall(t *testing.T) {
	def := Definition{
		Width:  3,
		Height: 3,
		HWalls: [][]bool{
			{false, true, false},
			{false, false, false},
		},
		Robot: Robot{Pos: Position{1, 0}, Dir: North, Bag: InfiniteBag},
	}
	w := newTestWorld(t, def)
	if !w.FrontIsBlocked() {
		t.Fatal("wall north of (1,0) not seen")
	}
	if _, err := w.Move(); !errors.Is(err, ErrWallCollision) {
		t.Fatalf("move into wall: %v", err)
	}
	// The same edge blocks from the other side.
	w2 := newTestWorld(t, Definition{
		Width: 3, Height: 3,
		HWalls: def.HWalls,
		Robot:  Robot{Pos: Position{1, 1}, Dir: South, Bag: InfiniteBag},
	})
	if !w2.FrontIsBlocked() {
		t.Error("wall not seen from the north side")
	}
}

func TestPickMarkerOnEmptyCell(t *testing.T) {
	w := open3x3(t, Robot{Pos: Position{1, 1}, Dir: East})
	_, err := w.PickMarker()
	if !errors.Is(err, ErrNoMarkerToPick) {
		t.Fatalf("pick on empty cell: %v", err)
	}
	if got := w.MarkersAt(Position{1, 1}); got != 0 {
		t.Errorf("marker count changed on failed pick: %d", got)
	}
}

func TestPlaceAndPickMarkers(t *testing.T) {
	w := open3x3(t, Robot{Pos: Position{1, 1}, Dir: East})
	d, err := w.PlaceMarker()
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if d.Kind != MarkerPlaced || d.MarkersBefore != 0 || d.MarkersAfter != 1 {
		t.Errorf("place delta: %+v", d)
	}
	d, err = w.PickMarker()
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if d.Kind != MarkerPicked || d.MarkersBefore != 1 || d.MarkersAfter != 0 {
		t.Errorf("pick delta: %+v", d)
	}
}

func TestFiniteBag(t *testing.T) {
	w := newTestWorld(t, Definition{
		Width: 2, Height: 1,
		Robot: Robot{Pos: Position{0, 0}, Dir: East, Bag: 1},
	})
	if _, err := w.PlaceMarker(); err != nil {
		t.Fatalf("place with one in bag: %v", err)
	}
	if _, err := w.PlaceMarker(); !errors.Is(err, ErrOutOfMarkers) {
		t.Fatalf("place with empty bag: %v", err)
	}
	// Picking credits the bag back.
	if _, err := w.PickMarker(); err != nil {
		t.Fatalf("pick: %v", err)
	}
	if got := w.Robot().Bag; got != 1 {
		t.Errorf("bag after pick: %d", got)
	}
}

func TestSensors(t *testing.T) {
	def := Definition{
		Width:  2,
		Height: 2,
		VWalls: [][]bool{{true}, {false}},
		Robot:  Robot{Pos: Position{0, 0}, Dir: East, Bag: InfiniteBag},
	}
	w := newTestWorld(t, def)
	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"frontIsBlocked", w.FrontIsBlocked(), true},
		{"frontIsClear", w.FrontIsClear(), false},
		// North edge of (0,0) is open; south is the boundary.
		{"leftIsClear", w.LeftIsClear(), true},
		{"rightIsBlocked", w.RightIsBlocked(), true},
		{"markersPresent", w.MarkersPresent(), false},
		{"noMarkersPresent", w.NoMarkersPresent(), true},
		{"facing east", w.Facing(East), true},
		{"facing north", w.Facing(North), false},
		{"facingBoundary", w.FacingBoundary(), false},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestPaintAndColorIs(t *testing.T) {
	w := open3x3(t, Robot{Pos: Position{0, 0}, Dir: East})
	red := namedColors["red"]
	d := w.Paint(red)
	if d.Kind != Painted || d.ColorBefore != White || d.ColorAfter != red {
		t.Errorf("paint delta: %+v", d)
	}
	if !w.ColorIs(red) {
		t.Error("colorIs red false after paint")
	}
	if w.ColorIs(White) {
		t.Error("colorIs white true after paint")
	}
}

func TestInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{"zero size", Definition{Width: 0, Height: 3}},
		{"robot out of bounds", Definition{
			Width: 2, Height: 2,
			Robot: Robot{Pos: Position{2, 0}, Bag: InfiniteBag},
		}},
		{"negative markers", Definition{
			Width: 1, Height: 1,
			Markers: [][]int{{-1}},
			Robot:   Robot{Bag: InfiniteBag},
		}},
		{"bad hwall shape", Definition{
			Width: 2, Height: 2,
			HWalls: [][]bool{{true}},
			Robot:  Robot{Bag: InfiniteBag},
		}},
		{"bad bag", Definition{
			Width: 1, Height: 1,
			Robot: Robot{Bag: -5},
		}},
	}
	for _, tt := range tests {
		if _, err := New(tt.def); !errors.Is(err, ErrInvalidWorldDefinition) {
			t.Errorf("%s: got %v", tt.name, err)
		}
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	w := open3x3(t, Robot{Pos: Position{1, 1}, Dir: East})
	if _, err := w.PlaceMarker(); err != nil {
		t.Fatal(err)
	}
	snap := w.Snapshot()
	if _, err := w.PickMarker(); err != nil {
		t.Fatal(err)
	}
	if snap.Markers[1][1] != 1 {
		t.Errorf("snapshot mutated with the world: %d", snap.Markers[1][1])
	}
	if snap.Robot.Pos != (Position{1, 1}) {
		t.Errorf("snapshot robot: %+v", snap.Robot)
	}
}
